package normalizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"retirement-match-engine/internal/config"
	"retirement-match-engine/internal/models"
	"retirement-match-engine/internal/services/normalizer"
)

func newNormalizer() *normalizer.Normalizer {
	return normalizer.New(nil, config.DefaultScoring().Hobbies)
}

func ptr(v float64) *float64 { return &v }

func TestCandidate_EnglishProficiencySynonyms(t *testing.T) {
	n := newNormalizer()
	tests := []struct {
		input    string
		expected models.EnglishProficiency
	}{
		{"widespread", models.EnglishHigh},
		{"Good", models.EnglishHigh},
		{"EXCELLENT", models.EnglishHigh},
		{"high", models.EnglishHigh},
		{"native", models.EnglishNative},
		{"moderate", models.EnglishModerate},
		{"low", models.EnglishLow},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, warnings := n.Candidate(&models.RawCandidate{ID: "t1", EnglishProficiency: tt.input})
			assert.Empty(t, warnings)
			assert.Equal(t, tt.expected, c.EnglishProficiency)
		})
	}
}

func TestCandidate_PrecipitationSynonyms(t *testing.T) {
	n := newNormalizer()
	tests := []struct {
		input    string
		expected models.Precipitation
	}{
		{"dry", models.PrecipitationMostlyDry},
		{"mostly_dry", models.PrecipitationMostlyDry},
		{"Mostly Dry", models.PrecipitationMostlyDry},
		{"moderate", models.PrecipitationBalanced},
		{"often_rainy", models.PrecipitationLessDry},
		{"often-rainy", models.PrecipitationLessDry},
		{"less_dry", models.PrecipitationLessDry},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, _ := n.Candidate(&models.RawCandidate{ID: "t1", PrecipitationLevelActual: tt.input})
			assert.Equal(t, tt.expected, c.Precipitation)
		})
	}
}

func TestCandidate_GeographicFeatureVariants(t *testing.T) {
	n := newNormalizer()
	c, warnings := n.Candidate(&models.RawCandidate{
		ID:                 "t1",
		GeographicFeatures: []string{"Mountains", "COASTAL", "coast", "Islands", "river, Lakes"},
	})

	assert.Empty(t, warnings)
	assert.Equal(t, []models.GeoFeature{
		models.GeoFeatureCoastal,
		models.GeoFeatureMountain,
		models.GeoFeatureIsland,
		models.GeoFeatureLake,
		models.GeoFeatureRiver,
	}, c.GeographicFeatures)
}

func TestUnknownTokensDroppedWithWarning(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	n := normalizer.New(zap.New(core), config.DefaultScoring().Hobbies)

	c, warnings := n.Candidate(&models.RawCandidate{
		ID:                  "t1",
		HumidityLevelActual: "soggy",
		GeographicFeatures:  []string{"coastal", "volcano"},
	})

	assert.Equal(t, models.Humidity(""), c.Humidity)
	assert.Equal(t, []models.GeoFeature{models.GeoFeatureCoastal}, c.GeographicFeatures)
	require.Len(t, warnings, 2)
	assert.Equal(t, "geographicFeatures", warnings[0].Field)
	assert.Contains(t, warnings[0].String(), "volcano")
	assert.Equal(t, "humidityLevelActual", warnings[1].Field)
	assert.Equal(t, "soggy", warnings[1].Value)
	assert.Equal(t, 2, logs.FilterMessage("Dropped unknown vocabulary value").Len())
}

func TestPlaceholdersAreUnsetWithoutWarning(t *testing.T) {
	n := newNormalizer()
	p, warnings := n.Preferences(&models.RawPreferences{
		SummerClimatePref:  "optional",
		WinterClimatePref:  "Select Preference",
		HumidityPref:       "no_specific_preference",
		PaceOfLifePref:     "",
		Countries:          []string{"optional"},
		GeographicFeatures: []string{"no_preference"},
	})

	assert.Empty(t, warnings)
	assert.Empty(t, p.Summer)
	assert.Empty(t, p.Winter)
	assert.Empty(t, p.Humidity)
	assert.Empty(t, p.PaceOfLife)
	assert.Empty(t, p.Countries)
	assert.Empty(t, p.GeographicFeatures)
}

func TestPreferences_SameCanonicalFormAsCandidate(t *testing.T) {
	n := newNormalizer()
	p, _ := n.Preferences(&models.RawPreferences{
		PrecipitationPref: "Dry",
		SunshinePref:      "sunny",
		PaceOfLifePref:    "slow",
		UrbanRuralPref:    "remote",
	})
	c, _ := n.Candidate(&models.RawCandidate{
		ID:                       "t1",
		PrecipitationLevelActual: "mostly_dry",
		SunshineLevelActual:      "often_sunny",
		PaceOfLifeActual:         "Relaxed",
		UrbanRuralCharacter:      "rural",
	})

	assert.Equal(t, c.Precipitation, p.Precipitation)
	assert.Equal(t, c.Sunshine, p.Sunshine)
	assert.Equal(t, c.PaceOfLife, p.PaceOfLife)
	assert.Equal(t, c.UrbanRural, p.UrbanRural)
}

func TestPreferences_QualityPreferenceMapping(t *testing.T) {
	n := newNormalizer()
	p, warnings := n.Preferences(&models.RawPreferences{
		HealthcareQualityPref:  "basic",
		SafetyImportancePref:   "functional",
		PoliticalStabilityPref: "good",
		VisaPreference:         "Retirement Visa",
		HousingPreference:      "Rent",
	})

	assert.Empty(t, warnings)
	assert.Equal(t, models.QualityPoor, p.HealthcareQuality)
	assert.Equal(t, models.QualityModerate, p.SafetyImportance)
	assert.Equal(t, models.QualityGood, p.PoliticalStability)
	assert.Equal(t, models.VisaRetirement, p.Visa)
	assert.Equal(t, models.HousingRent, p.Housing)
}

func TestPreferences_EverythingSelectedIsNoPreference(t *testing.T) {
	n := newNormalizer()
	all := make([]string, 0)
	for _, f := range models.ValidGeoFeatures() {
		all = append(all, string(f))
	}
	p, _ := n.Preferences(&models.RawPreferences{GeographicFeatures: all})
	assert.Empty(t, p.GeographicFeatures)
}

func TestPreferences_OpenVocabularies(t *testing.T) {
	n := newNormalizer()
	p, _ := n.Preferences(&models.RawPreferences{
		Countries: []string{"Portugal", " portugal ", "USA"},
		Regions:   []string{"Mediterranean", "Southeast_Asia", "southeast  asia"},
	})

	assert.Equal(t, []string{"portugal", "united states"}, p.Countries)
	assert.Equal(t, []string{"mediterranean", "southeast asia"}, p.Regions)
}

func TestPreferences_WeightedHobbies(t *testing.T) {
	n := newNormalizer()
	p, _ := n.Preferences(&models.RawPreferences{
		Tier1Activities: []string{"Golf", "walking_cycling"},
		Tier2Activities: []string{"golf", "Sailing"},
		Tier1Interests:  []string{"wine"},
		Tier2Interests:  []string{"Mountain Biking"},
	})

	assert.Equal(t, []models.WeightedHobby{
		{Name: "golf", Weight: 2},
		{Name: "walking", Weight: 1},
		{Name: "cycling", Weight: 1},
		{Name: "hiking", Weight: 1},
		{Name: "mountain biking", Weight: 2},
		{Name: "sailing", Weight: 2},
		{Name: "wine tasting", Weight: 1},
	}, p.Hobbies)
}

func TestCandidate_SupportedHobbies(t *testing.T) {
	n := newNormalizer()
	c, _ := n.Candidate(&models.RawCandidate{
		ID:               "t1",
		SupportedHobbies: []string{"Mountain Biking", "mountain biking", "water_crafts", "Skiing"},
	})

	assert.Equal(t, []string{
		"boating", "canoeing", "downhill skiing", "kayaking", "mountain biking", "paddleboarding", "sailing",
	}, c.SupportedHobbies)
}

func TestCandidate_LegacyRatingScale(t *testing.T) {
	n := newNormalizer()
	scale := 10
	raw := &models.RawCandidate{
		ID:                         "t1",
		HealthcareScore:            ptr(8),
		SafetyScore:                ptr(7.5),
		PoliticalStabilityRating:   ptr(6),
		GovernmentEfficiencyRating: ptr(5.5),
		EnvironmentalHealthRating:  ptr(4),
		RatingScale:                &scale,
	}
	c, warnings := n.Candidate(raw)

	assert.Empty(t, warnings)
	assert.Equal(t, 80.0, *c.HealthcareScore)
	assert.Equal(t, 75.0, *c.SafetyScore)
	assert.Equal(t, 60.0, *c.PoliticalStability)
	assert.Equal(t, 55.0, *c.GovernmentEfficiency)
	assert.Equal(t, 4.0, *c.EnvironmentalHealth, "1-5 ratings keep their scale")
	assert.Equal(t, 8.0, *raw.HealthcareScore, "raw record must not change")
}

func TestCandidate_UnknownRatingScale(t *testing.T) {
	n := newNormalizer()
	scale := 5
	c, warnings := n.Candidate(&models.RawCandidate{ID: "t1", HealthcareScore: ptr(4), RatingScale: &scale})

	require.Len(t, warnings, 1)
	assert.Equal(t, "ratingScale", warnings[0].Field)
	assert.Equal(t, 4.0, *c.HealthcareScore)
}

func TestPreferences_BudgetValues(t *testing.T) {
	n := newNormalizer()
	p, warnings := n.Preferences(&models.RawPreferences{
		TotalMonthlyBudget:      ptr(3000),
		MaxMonthlyRent:          ptr(0),
		MonthlyHealthcareBudget: ptr(-5),
	})

	assert.Equal(t, 3000.0, *p.TotalMonthlyBudget)
	assert.Nil(t, p.MaxMonthlyRent)
	assert.Nil(t, p.MonthlyHealthcareBudget)
	require.Len(t, warnings, 1)
	assert.Equal(t, "monthlyHealthcareBudget", warnings[0].Field)
}

func TestPreferences_AmenityImportance(t *testing.T) {
	n := newNormalizer()
	one, three, nine := 1, 3, 9
	p, warnings := n.Preferences(&models.RawPreferences{
		DiningNightlifeImportance: &three,
		CulturalEventsImportance:  &one,
		MuseumsArtsImportance:     &nine,
	})

	assert.Equal(t, 3, p.DiningNightlife)
	assert.Zero(t, p.CulturalEvents, "1 means it does not matter")
	assert.Zero(t, p.MuseumsArts)
	require.Len(t, warnings, 1)
	assert.Equal(t, "museumsArtsImportance", warnings[0].Field)
}

func TestPreferences_AdminAndTaxFields(t *testing.T) {
	n := newNormalizer()
	p, warnings := n.Preferences(&models.RawPreferences{
		GovernmentEfficiencyPref: "functional",
		EnvironmentalHealthPref:  "Sensitive",
		IncomeTaxSensitive:       true,
		SalesTaxSensitive:        true,
	})

	assert.Empty(t, warnings)
	assert.Equal(t, models.QualityModerate, p.GovernmentEfficiency)
	assert.True(t, p.EnvironmentalSensitive)
	assert.True(t, p.IncomeTaxSensitive)
	assert.False(t, p.PropertyTaxSensitive)
	assert.True(t, p.SalesTaxSensitive)

	general, warnings := n.Preferences(&models.RawPreferences{EnvironmentalHealthPref: "general"})
	assert.Empty(t, warnings)
	assert.False(t, general.EnvironmentalSensitive)

	_, warnings = n.Preferences(&models.RawPreferences{EnvironmentalHealthPref: "allergic"})
	require.Len(t, warnings, 1)
	assert.Equal(t, "environmentalHealthPref", warnings[0].Field)
}

func TestCandidate_TaxFields(t *testing.T) {
	n := newNormalizer()
	haven, taxed := true, false
	c, warnings := n.Candidate(&models.RawCandidate{
		ID:                 "t1",
		IncomeTaxRatePct:   ptr(0),
		SalesTaxRatePct:    ptr(12),
		TaxHavenStatus:     &haven,
		ForeignIncomeTaxed: &taxed,
	})

	assert.Empty(t, warnings)
	assert.Equal(t, 0.0, *c.IncomeTaxPct, "a zero rate is data, not a gap")
	assert.Equal(t, 12.0, *c.SalesTaxPct)
	assert.Nil(t, c.PropertyTaxPct)
	assert.True(t, *c.TaxHaven)
	assert.False(t, *c.ForeignIncomeTaxed)
	assert.Nil(t, c.TaxTreatyUS)
}

func TestNilInputs(t *testing.T) {
	n := newNormalizer()
	p, w := n.Preferences(nil)
	assert.Nil(t, p)
	assert.Nil(t, w)
	c, w := n.Candidate(nil)
	assert.Nil(t, c)
	assert.Nil(t, w)
}
