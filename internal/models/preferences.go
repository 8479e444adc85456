package models

// RawPreferences is a user preference profile as supplied by the onboarding
// application. Categorical fields are free-form and must go through the
// normalizer before scoring.
type RawPreferences struct {
	UserID string `json:"userId,omitempty" db:"user_id"`

	Countries          []string `json:"countries" db:"countries"`
	Regions            []string `json:"regions" db:"regions"`
	GeographicFeatures []string `json:"geographicFeatures" db:"geographic_features"`
	VegetationTypes    []string `json:"vegetationTypes" db:"vegetation_types"`

	SummerClimatePref     string `json:"summerClimatePref" db:"summer_climate_pref"`
	WinterClimatePref     string `json:"winterClimatePref" db:"winter_climate_pref"`
	HumidityPref          string `json:"humidityPref" db:"humidity_pref"`
	SunshinePref          string `json:"sunshinePref" db:"sunshine_pref"`
	PrecipitationPref     string `json:"precipitationPref" db:"precipitation_pref"`
	SeasonalVariationPref string `json:"seasonalVariationPref" db:"seasonal_variation_pref"`

	ExpatCommunityPref string `json:"expatCommunityPref" db:"expat_community_pref"`
	PaceOfLifePref     string `json:"paceOfLifePref" db:"pace_of_life_pref"`
	UrbanRuralPref     string `json:"urbanRuralPref" db:"urban_rural_pref"`
	LanguageComfort    string `json:"languageComfort" db:"language_comfort"`

	// Importance ratings run from 1 (does not matter) to 5.
	DiningNightlifeImportance *int `json:"diningNightlifeImportance" db:"dining_nightlife_importance"`
	CulturalEventsImportance  *int `json:"culturalEventsImportance" db:"cultural_events_importance"`
	MuseumsArtsImportance     *int `json:"museumsArtsImportance" db:"museums_arts_importance"`

	Tier1Activities []string `json:"tier1Activities" db:"tier1_activities"`
	Tier2Activities []string `json:"tier2Activities" db:"tier2_activities"`
	Tier1Interests  []string `json:"tier1Interests" db:"tier1_interests"`
	Tier2Interests  []string `json:"tier2Interests" db:"tier2_interests"`

	HealthcareQualityPref    string `json:"healthcareQualityPref" db:"healthcare_quality_pref"`
	SafetyImportancePref     string `json:"safetyImportancePref" db:"safety_importance_pref"`
	PoliticalStabilityPref   string `json:"politicalStabilityPref" db:"political_stability_pref"`
	GovernmentEfficiencyPref string `json:"governmentEfficiencyPref" db:"government_efficiency_pref"`
	EnvironmentalHealthPref  string `json:"environmentalHealthPref" db:"environmental_health_pref"`
	VisaPreference           string `json:"visaPreference" db:"visa_preference"`

	TotalMonthlyBudget      *float64 `json:"totalMonthlyBudget" db:"total_monthly_budget"`
	MaxMonthlyRent          *float64 `json:"maxMonthlyRent" db:"max_monthly_rent"`
	MonthlyHealthcareBudget *float64 `json:"monthlyHealthcareBudget" db:"monthly_healthcare_budget"`
	HousingPreference       string   `json:"housingPreference" db:"housing_preference"`

	IncomeTaxSensitive   bool `json:"incomeTaxSensitive" db:"income_tax_sensitive"`
	PropertyTaxSensitive bool `json:"propertyTaxSensitive" db:"property_tax_sensitive"`
	SalesTaxSensitive    bool `json:"salesTaxSensitive" db:"sales_tax_sensitive"`
}

// WeightedHobby is one entry of the user's weighted hobby multiset. Tier-1
// quick picks weigh 1, tier-2 explicit picks weigh 2.
type WeightedHobby struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// Preferences is a normalized user preference profile. An empty value on any
// field means the user stated no preference for it.
type Preferences struct {
	UserID string `json:"userId,omitempty"`

	Countries          []string     `json:"countries"`
	Regions            []string     `json:"regions"`
	GeographicFeatures []GeoFeature `json:"geographicFeatures"`
	VegetationTypes    []Vegetation `json:"vegetationTypes"`

	Summer            SummerClimate     `json:"summerClimatePref,omitempty"`
	Winter            WinterClimate     `json:"winterClimatePref,omitempty"`
	Humidity          Humidity          `json:"humidityPref,omitempty"`
	Sunshine          Sunshine          `json:"sunshinePref,omitempty"`
	Precipitation     Precipitation     `json:"precipitationPref,omitempty"`
	SeasonalVariation SeasonalVariation `json:"seasonalVariationPref,omitempty"`

	ExpatCommunity  ExpatCommunity  `json:"expatCommunityPref,omitempty"`
	PaceOfLife      PaceOfLife      `json:"paceOfLifePref,omitempty"`
	UrbanRural      UrbanRural      `json:"urbanRuralPref,omitempty"`
	LanguageComfort LanguageComfort `json:"languageComfort,omitempty"`

	// Amenity importance from 2 to 5. Zero means no preference.
	DiningNightlife int `json:"diningNightlifeImportance,omitempty"`
	CulturalEvents  int `json:"culturalEventsImportance,omitempty"`
	MuseumsArts     int `json:"museumsArtsImportance,omitempty"`

	Hobbies []WeightedHobby `json:"hobbies"`

	HealthcareQuality      QualityLevel   `json:"healthcareQualityPref,omitempty"`
	SafetyImportance       QualityLevel   `json:"safetyImportancePref,omitempty"`
	PoliticalStability     QualityLevel   `json:"politicalStabilityPref,omitempty"`
	GovernmentEfficiency   QualityLevel   `json:"governmentEfficiencyPref,omitempty"`
	EnvironmentalSensitive bool           `json:"environmentalHealthSensitive,omitempty"`
	Visa                   VisaPreference `json:"visaPreference,omitempty"`

	TotalMonthlyBudget      *float64          `json:"totalMonthlyBudget,omitempty"`
	MaxMonthlyRent          *float64          `json:"maxMonthlyRent,omitempty"`
	MonthlyHealthcareBudget *float64          `json:"monthlyHealthcareBudget,omitempty"`
	Housing                 HousingPreference `json:"housingPreference,omitempty"`

	IncomeTaxSensitive   bool `json:"incomeTaxSensitive,omitempty"`
	PropertyTaxSensitive bool `json:"propertyTaxSensitive,omitempty"`
	SalesTaxSensitive    bool `json:"salesTaxSensitive,omitempty"`
}
