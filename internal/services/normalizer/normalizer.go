// Package normalizer canonicalizes raw preference and candidate records into
// the fixed vocabulary the scorers compare.
package normalizer

import (
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"retirement-match-engine/internal/config"
	"retirement-match-engine/internal/models"
)

// Warning describes a raw value that was dropped during normalization.
type Warning struct {
	Subject string `json:"subject"`
	Field   string `json:"field"`
	Value   string `json:"value"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s: unknown value %q dropped", w.Subject, w.Field, w.Value)
}

// Normalizer converts raw records to canonical ones. It is safe for
// concurrent use.
type Normalizer struct {
	logger      *zap.Logger
	tier1Weight float64
	tier2Weight float64
}

// New creates a normalizer. A nil logger disables logging.
func New(logger *zap.Logger, hobbies config.HobbyRules) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	n := &Normalizer{logger: logger, tier1Weight: hobbies.Tier1Weight, tier2Weight: hobbies.Tier2Weight}
	if n.tier1Weight <= 0 {
		n.tier1Weight = 1
	}
	if n.tier2Weight <= 0 {
		n.tier2Weight = 2
	}
	return n
}

// session collects warnings for one record.
type session struct {
	subject  string
	warnings []Warning
}

func (s *session) drop(field, value string) {
	s.warnings = append(s.warnings, Warning{Subject: s.subject, Field: field, Value: value})
}

// Preferences normalizes a raw preference profile.
func (n *Normalizer) Preferences(raw *models.RawPreferences) (*models.Preferences, []Warning) {
	if raw == nil {
		return nil, nil
	}
	s := &session{subject: "profile " + raw.UserID}
	if raw.UserID == "" {
		s.subject = "profile"
	}

	p := &models.Preferences{
		UserID:             strings.TrimSpace(raw.UserID),
		Countries:          countries(raw.Countries),
		Regions:            openSet(raw.Regions),
		GeographicFeatures: canonSet(s, "geographicFeatures", raw.GeographicFeatures, geoFeatureSynonyms, models.ValidGeoFeatures()),
		VegetationTypes:    canonSet(s, "vegetationTypes", raw.VegetationTypes, vegetationSynonyms, models.ValidVegetationTypes()),

		Summer:            canon(s, "summerClimatePref", raw.SummerClimatePref, summerSynonyms, models.ValidSummerClimates()),
		Winter:            canon(s, "winterClimatePref", raw.WinterClimatePref, winterSynonyms, models.ValidWinterClimates()),
		Humidity:          canon(s, "humidityPref", raw.HumidityPref, humiditySynonyms, models.ValidHumidityLevels()),
		Sunshine:          canon(s, "sunshinePref", raw.SunshinePref, sunshineSynonyms, models.ValidSunshineLevels()),
		Precipitation:     canon(s, "precipitationPref", raw.PrecipitationPref, precipitationSynonyms, models.ValidPrecipitationLevels()),
		SeasonalVariation: canon(s, "seasonalVariationPref", raw.SeasonalVariationPref, seasonalSynonyms, models.ValidSeasonalVariations()),

		ExpatCommunity:  canon(s, "expatCommunityPref", raw.ExpatCommunityPref, expatSynonyms, models.ValidExpatCommunities()),
		PaceOfLife:      canon(s, "paceOfLifePref", raw.PaceOfLifePref, paceSynonyms, models.ValidPaceOfLife()),
		UrbanRural:      canon(s, "urbanRuralPref", raw.UrbanRuralPref, urbanRuralSynonyms, models.ValidUrbanRural()),
		LanguageComfort: canon(s, "languageComfort", raw.LanguageComfort, languageComfortSynonyms, models.ValidLanguageComforts()),

		DiningNightlife: importance(s, "diningNightlifeImportance", raw.DiningNightlifeImportance),
		CulturalEvents:  importance(s, "culturalEventsImportance", raw.CulturalEventsImportance),
		MuseumsArts:     importance(s, "museumsArtsImportance", raw.MuseumsArtsImportance),

		HealthcareQuality:      canon(s, "healthcareQualityPref", raw.HealthcareQualityPref, qualitySynonyms, models.ValidQualityLevels()),
		SafetyImportance:       canon(s, "safetyImportancePref", raw.SafetyImportancePref, qualitySynonyms, models.ValidQualityLevels()),
		PoliticalStability:     canon(s, "politicalStabilityPref", raw.PoliticalStabilityPref, qualitySynonyms, models.ValidQualityLevels()),
		GovernmentEfficiency:   canon(s, "governmentEfficiencyPref", raw.GovernmentEfficiencyPref, qualitySynonyms, models.ValidQualityLevels()),
		EnvironmentalSensitive: sensitive(s, "environmentalHealthPref", raw.EnvironmentalHealthPref),
		Visa:                   canon(s, "visaPreference", raw.VisaPreference, visaSynonyms, models.ValidVisaPreferences()),

		TotalMonthlyBudget:      positive(s, "totalMonthlyBudget", raw.TotalMonthlyBudget),
		MaxMonthlyRent:          positive(s, "maxMonthlyRent", raw.MaxMonthlyRent),
		MonthlyHealthcareBudget: positive(s, "monthlyHealthcareBudget", raw.MonthlyHealthcareBudget),
		Housing:                 canon(s, "housingPreference", raw.HousingPreference, housingSynonyms, models.ValidHousingPreferences()),

		IncomeTaxSensitive:   raw.IncomeTaxSensitive,
		PropertyTaxSensitive: raw.PropertyTaxSensitive,
		SalesTaxSensitive:    raw.SalesTaxSensitive,
	}

	// Picking every option is the same as not caring.
	if len(p.GeographicFeatures) == len(models.ValidGeoFeatures()) {
		p.GeographicFeatures = nil
	}
	if len(p.VegetationTypes) == len(models.ValidVegetationTypes()) {
		p.VegetationTypes = nil
	}

	p.Hobbies = n.weightedHobbies(
		tier{raw.Tier1Activities, n.tier1Weight},
		tier{raw.Tier2Activities, n.tier2Weight},
		tier{raw.Tier1Interests, n.tier1Weight},
		tier{raw.Tier2Interests, n.tier2Weight},
	)

	n.report(s)
	return p, s.warnings
}

// Candidate normalizes a raw candidate town. Legacy 0..10 ratings are
// rescaled to 0..100 here so the scorers only ever see one scale.
func (n *Normalizer) Candidate(raw *models.RawCandidate) (*models.Candidate, []Warning) {
	if raw == nil {
		return nil, nil
	}
	s := &session{subject: "candidate " + raw.ID}

	c := &models.Candidate{
		ID:                 strings.TrimSpace(raw.ID),
		Name:               strings.TrimSpace(raw.Name),
		Country:            country(raw.Country),
		RegionTags:         openSet(raw.RegionTags),
		GeographicFeatures: canonSet(s, "geographicFeatures", raw.GeographicFeatures, geoFeatureSynonyms, models.ValidGeoFeatures()),
		VegetationTypes:    canonSet(s, "vegetationTypes", raw.VegetationTypes, vegetationSynonyms, models.ValidVegetationTypes()),

		AvgTempSummer:     clone(raw.AvgTempSummer),
		AvgTempWinter:     clone(raw.AvgTempWinter),
		Summer:            canon(s, "summerClimateActual", raw.SummerClimateActual, summerSynonyms, models.ValidSummerClimates()),
		Winter:            canon(s, "winterClimateActual", raw.WinterClimateActual, winterSynonyms, models.ValidWinterClimates()),
		Humidity:          canon(s, "humidityLevelActual", raw.HumidityLevelActual, humiditySynonyms, models.ValidHumidityLevels()),
		Sunshine:          canon(s, "sunshineLevelActual", raw.SunshineLevelActual, sunshineSynonyms, models.ValidSunshineLevels()),
		Precipitation:     canon(s, "precipitationLevelActual", raw.PrecipitationLevelActual, precipitationSynonyms, models.ValidPrecipitationLevels()),
		SeasonalVariation: canon(s, "seasonalVariationActual", raw.SeasonalVariationActual, seasonalSynonyms, models.ValidSeasonalVariations()),

		PaceOfLife:         canon(s, "paceOfLifeActual", raw.PaceOfLifeActual, paceSynonyms, models.ValidPaceOfLife()),
		ExpatCommunity:     canon(s, "expatCommunitySize", raw.ExpatCommunitySize, expatSynonyms, models.ValidExpatCommunities()),
		UrbanRural:         canon(s, "urbanRuralCharacter", raw.UrbanRuralCharacter, urbanRuralSynonyms, models.ValidUrbanRural()),
		EnglishProficiency: canon(s, "englishProficiency", raw.EnglishProficiency, englishSynonyms, models.ValidEnglishProficiencies()),
		PrimaryLanguage:    collapse(raw.PrimaryLanguage),

		Restaurants:    clone(raw.RestaurantsRating),
		Nightlife:      clone(raw.NightlifeRating),
		CulturalEvents: clone(raw.CulturalEventsRating),
		Museums:        clone(raw.MuseumsRating),

		SupportedHobbies: supportedHobbies(raw.SupportedHobbies),

		HealthcareScore:         clone(raw.HealthcareScore),
		SafetyScore:             clone(raw.SafetyScore),
		PoliticalStability:      clone(raw.PoliticalStabilityRating),
		GovernmentEfficiency:    clone(raw.GovernmentEfficiencyRating),
		EnvironmentalHealth:     clone(raw.EnvironmentalHealthRating),
		VisaRequirementsText:    strings.TrimSpace(raw.VisaRequirementsText),
		RetirementVisaAvailable: cloneBool(raw.RetirementVisaAvailable),

		CostOfLivingUSD:       clone(raw.CostOfLivingUSD),
		TypicalRent1Bed:       clone(raw.TypicalRent1Bed),
		HealthcareCostMonthly: clone(raw.HealthcareCostMonthly),

		IncomeTaxPct:       clone(raw.IncomeTaxRatePct),
		PropertyTaxPct:     clone(raw.PropertyTaxRatePct),
		SalesTaxPct:        clone(raw.SalesTaxRatePct),
		TaxTreatyUS:        cloneBool(raw.TaxTreatyUS),
		TaxHaven:           cloneBool(raw.TaxHavenStatus),
		ForeignIncomeTaxed: cloneBool(raw.ForeignIncomeTaxed),
	}

	if raw.RatingScale != nil {
		switch *raw.RatingScale {
		case 10:
			for _, r := range []*float64{c.HealthcareScore, c.SafetyScore, c.PoliticalStability, c.GovernmentEfficiency} {
				if r != nil {
					*r *= 10
				}
			}
		case 100:
		default:
			s.drop("ratingScale", fmt.Sprint(*raw.RatingScale))
		}
	}

	n.report(s)
	return c, s.warnings
}

func (n *Normalizer) report(s *session) {
	for _, w := range s.warnings {
		n.logger.Warn("Dropped unknown vocabulary value",
			zap.String("subject", w.Subject),
			zap.String("field", w.Field),
			zap.String("value", w.Value),
		)
	}
}

type tier struct {
	labels []string
	weight float64
}

// weightedHobbies builds the hobby multiset. A hobby picked in more than one
// tier keeps its largest weight.
func (n *Normalizer) weightedHobbies(tiers ...tier) []models.WeightedHobby {
	var out []models.WeightedHobby
	index := map[string]int{}

	add := func(name string, weight float64) {
		key := models.HobbyKey(name)
		if key == "" {
			return
		}
		if i, ok := index[key]; ok {
			if weight > out[i].Weight {
				out[i].Weight = weight
			}
			return
		}
		index[key] = len(out)
		out = append(out, models.WeightedHobby{Name: name, Weight: weight})
	}

	for _, t := range tiers {
		for _, label := range splitList(t.labels) {
			if members, ok := compoundHobbies[token(label)]; ok {
				for _, m := range members {
					add(m, n.tier1Weight)
				}
				continue
			}
			add(hobbyName(label), t.weight)
		}
	}
	return out
}

func supportedHobbies(labels []string) []string {
	var out []string
	seen := map[string]bool{}
	add := func(name string) {
		key := models.HobbyKey(name)
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		out = append(out, name)
	}
	for _, label := range splitList(labels) {
		if members, ok := compoundHobbies[token(label)]; ok {
			for _, m := range members {
				add(m)
			}
			continue
		}
		add(hobbyName(label))
	}
	slices.Sort(out)
	return out
}

// hobbyName returns the display form of a hobby label.
func hobbyName(label string) string {
	if alias, ok := hobbyAliases[token(label)]; ok {
		return alias
	}
	return collapse(strings.ReplaceAll(label, "_", " "))
}

// canon resolves one categorical value. Unknown values are dropped with a
// warning and placeholders silently become unset.
func canon[T ~string](s *session, field, raw string, synonyms map[string]T, valid []T) T {
	tok := token(raw)
	if placeholders[tok] {
		return ""
	}
	if v, ok := synonyms[tok]; ok {
		return v
	}
	if v := T(tok); slices.Contains(valid, v) {
		return v
	}
	s.drop(field, raw)
	return ""
}

// canonSet resolves a multi-valued field into a deduplicated set ordered by
// the vocabulary.
func canonSet[T ~string](s *session, field string, raws []string, synonyms map[string]T, valid []T) []T {
	var out []T
	for _, raw := range splitList(raws) {
		v := canon(s, field, raw, synonyms, valid)
		if v != "" && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	slices.SortFunc(out, func(a, b T) int {
		return models.Ordinal(a, valid) - models.Ordinal(b, valid)
	})
	return out
}

// importance keeps a 2..5 rating. A rating of 1 means the user does not
// care, which is the same as no preference.
func importance(s *session, field string, v *int) int {
	switch {
	case v == nil || *v == 1:
		return 0
	case *v < 1 || *v > 5:
		s.drop(field, fmt.Sprint(*v))
		return 0
	}
	return *v
}

func sensitive(s *session, field, raw string) bool {
	tok := token(raw)
	if placeholders[tok] {
		return false
	}
	v, ok := sensitivitySynonyms[tok]
	if !ok {
		s.drop(field, raw)
	}
	return v
}

func positive(s *session, field string, v *float64) *float64 {
	if v == nil {
		return nil
	}
	if *v == 0 {
		return nil
	}
	if *v < 0 {
		s.drop(field, fmt.Sprint(*v))
		return nil
	}
	return clone(v)
}

func countries(raws []string) []string {
	var out []string
	for _, raw := range splitList(raws) {
		if c := country(raw); c != "" && !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	slices.Sort(out)
	return out
}

func country(raw string) string {
	c := collapse(raw)
	if placeholders[token(c)] {
		return ""
	}
	if mapped, ok := countrySynonyms[c]; ok {
		return mapped
	}
	return c
}

// openSet normalizes values from an open vocabulary such as region names.
func openSet(raws []string) []string {
	var out []string
	for _, raw := range splitList(raws) {
		v := collapse(strings.ReplaceAll(raw, "_", " "))
		if v != "" && !placeholders[token(v)] && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return out
}

// splitList flattens comma separated cells into individual values.
func splitList(raws []string) []string {
	var out []string
	for _, raw := range raws {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// token lower-cases a value and joins its words with underscores.
func token(s string) string {
	t := strings.ToLower(strings.TrimSpace(s))
	t = strings.NewReplacer("-", " ", "_", " ").Replace(t)
	return strings.Join(strings.Fields(t), "_")
}

// collapse lower-cases a value and collapses internal whitespace.
func collapse(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func clone(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneBool(v *bool) *bool {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
