package models

// RawCandidate is a candidate town as stored by the surrounding application.
type RawCandidate struct {
	ID      string `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	Country string `json:"country" db:"country"`

	RegionTags         []string `json:"regionTags" db:"region_tags"`
	GeographicFeatures []string `json:"geographicFeatures" db:"geographic_features"`
	VegetationTypes    []string `json:"vegetationTypes" db:"vegetation_types"`

	AvgTempSummer            *float64 `json:"avgTempSummer" db:"avg_temp_summer"`
	AvgTempWinter            *float64 `json:"avgTempWinter" db:"avg_temp_winter"`
	SummerClimateActual      string   `json:"summerClimateActual" db:"summer_climate_actual"`
	WinterClimateActual      string   `json:"winterClimateActual" db:"winter_climate_actual"`
	HumidityLevelActual      string   `json:"humidityLevelActual" db:"humidity_level_actual"`
	SunshineLevelActual      string   `json:"sunshineLevelActual" db:"sunshine_level_actual"`
	PrecipitationLevelActual string   `json:"precipitationLevelActual" db:"precipitation_level_actual"`
	SeasonalVariationActual  string   `json:"seasonalVariationActual" db:"seasonal_variation_actual"`

	PaceOfLifeActual    string `json:"paceOfLifeActual" db:"pace_of_life_actual"`
	ExpatCommunitySize  string `json:"expatCommunitySize" db:"expat_community_size"`
	UrbanRuralCharacter string `json:"urbanRuralCharacter" db:"urban_rural_character"`
	EnglishProficiency  string `json:"englishProficiency" db:"english_proficiency"`
	PrimaryLanguage     string `json:"primaryLanguage" db:"primary_language"`

	// Amenity ratings run from 1 to 5.
	RestaurantsRating    *float64 `json:"restaurantsRating" db:"restaurants_rating"`
	NightlifeRating      *float64 `json:"nightlifeRating" db:"nightlife_rating"`
	CulturalEventsRating *float64 `json:"culturalEventsRating" db:"cultural_events_rating"`
	MuseumsRating        *float64 `json:"museumsRating" db:"museums_rating"`

	SupportedHobbies []string `json:"supportedHobbies" db:"supported_hobbies"`

	HealthcareScore            *float64 `json:"healthcareScore" db:"healthcare_score"`
	SafetyScore                *float64 `json:"safetyScore" db:"safety_score"`
	PoliticalStabilityRating   *float64 `json:"politicalStabilityRating" db:"political_stability_rating"`
	GovernmentEfficiencyRating *float64 `json:"governmentEfficiencyRating" db:"government_efficiency_rating"`
	VisaRequirementsText       string   `json:"visaRequirementsText" db:"visa_requirements_text"`
	RetirementVisaAvailable    *bool    `json:"retirementVisaAvailable" db:"retirement_visa_available"`
	// EnvironmentalHealthRating runs from 1 to 5 and is never rescaled.
	EnvironmentalHealthRating *float64 `json:"environmentalHealthRating" db:"environmental_health_rating"`
	// RatingScale is 10 for legacy rows whose ratings were stored out of 10.
	RatingScale *int `json:"ratingScale,omitempty" db:"rating_scale"`

	CostOfLivingUSD       *float64 `json:"costOfLivingUsd" db:"cost_of_living_usd"`
	TypicalRent1Bed       *float64 `json:"typicalRent1Bed" db:"typical_rent_1bed"`
	HealthcareCostMonthly *float64 `json:"healthcareCostMonthly" db:"healthcare_cost_monthly"`

	IncomeTaxRatePct   *float64 `json:"incomeTaxRatePct" db:"income_tax_rate_pct"`
	PropertyTaxRatePct *float64 `json:"propertyTaxRatePct" db:"property_tax_rate_pct"`
	SalesTaxRatePct    *float64 `json:"salesTaxRatePct" db:"sales_tax_rate_pct"`
	TaxTreatyUS        *bool    `json:"taxTreatyUs" db:"tax_treaty_us"`
	TaxHavenStatus     *bool    `json:"taxHavenStatus" db:"tax_haven_status"`
	ForeignIncomeTaxed *bool    `json:"foreignIncomeTaxed" db:"foreign_income_taxed"`
}

// Candidate is a normalized candidate location. Nil numbers and empty
// categorical values mean the data is unavailable.
type Candidate struct {
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	Country string `json:"country,omitempty"`

	RegionTags         []string     `json:"regionTags"`
	GeographicFeatures []GeoFeature `json:"geographicFeatures"`
	VegetationTypes    []Vegetation `json:"vegetationTypes"`

	AvgTempSummer     *float64          `json:"avgTempSummer,omitempty"`
	AvgTempWinter     *float64          `json:"avgTempWinter,omitempty"`
	Summer            SummerClimate     `json:"summerClimateActual,omitempty"`
	Winter            WinterClimate     `json:"winterClimateActual,omitempty"`
	Humidity          Humidity          `json:"humidityLevelActual,omitempty"`
	Sunshine          Sunshine          `json:"sunshineLevelActual,omitempty"`
	Precipitation     Precipitation     `json:"precipitationLevelActual,omitempty"`
	SeasonalVariation SeasonalVariation `json:"seasonalVariationActual,omitempty"`

	PaceOfLife         PaceOfLife         `json:"paceOfLifeActual,omitempty"`
	ExpatCommunity     ExpatCommunity     `json:"expatCommunitySize,omitempty"`
	UrbanRural         UrbanRural         `json:"urbanRuralCharacter,omitempty"`
	EnglishProficiency EnglishProficiency `json:"englishProficiency,omitempty"`
	PrimaryLanguage    string             `json:"primaryLanguage,omitempty"`

	Restaurants    *float64 `json:"restaurantsRating,omitempty"`
	Nightlife      *float64 `json:"nightlifeRating,omitempty"`
	CulturalEvents *float64 `json:"culturalEventsRating,omitempty"`
	Museums        *float64 `json:"museumsRating,omitempty"`

	SupportedHobbies []string `json:"supportedHobbies"`

	HealthcareScore         *float64 `json:"healthcareScore,omitempty"`
	SafetyScore             *float64 `json:"safetyScore,omitempty"`
	PoliticalStability      *float64 `json:"politicalStabilityRating,omitempty"`
	GovernmentEfficiency    *float64 `json:"governmentEfficiencyRating,omitempty"`
	EnvironmentalHealth     *float64 `json:"environmentalHealthRating,omitempty"`
	VisaRequirementsText    string   `json:"visaRequirementsText,omitempty"`
	RetirementVisaAvailable *bool    `json:"retirementVisaAvailable,omitempty"`

	CostOfLivingUSD       *float64 `json:"costOfLivingUsd,omitempty"`
	TypicalRent1Bed       *float64 `json:"typicalRent1Bed,omitempty"`
	HealthcareCostMonthly *float64 `json:"healthcareCostMonthly,omitempty"`

	IncomeTaxPct       *float64 `json:"incomeTaxRatePct,omitempty"`
	PropertyTaxPct     *float64 `json:"propertyTaxRatePct,omitempty"`
	SalesTaxPct        *float64 `json:"salesTaxRatePct,omitempty"`
	TaxTreatyUS        *bool    `json:"taxTreatyUs,omitempty"`
	TaxHaven           *bool    `json:"taxHavenStatus,omitempty"`
	ForeignIncomeTaxed *bool    `json:"foreignIncomeTaxed,omitempty"`
}
