package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retirement-match-engine/internal/config"
	"retirement-match-engine/internal/models"
)

func ptr(v float64) *float64 { return &v }

func boolPtr(v bool) *bool { return &v }

func newEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(config.DefaultScoring())
	require.NoError(t, err)
	return e
}

func factor(t *testing.T, r models.CategoryResult, name string) models.Factor {
	t.Helper()
	for _, f := range r.Factors {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("factor %q not found in %+v", name, r.Factors)
	return models.Factor{}
}

func fullProfile() *models.Preferences {
	return &models.Preferences{
		Countries:          []string{"portugal"},
		Regions:            []string{"mediterranean"},
		GeographicFeatures: []models.GeoFeature{models.GeoFeatureCoastal},
		VegetationTypes:    []models.Vegetation{models.VegetationMediterranean},
		Summer:             models.SummerWarm,
		Winter:             models.WinterMild,
		Humidity:           models.HumidityBalanced,
		Sunshine:           models.SunshineOftenSunny,
		Precipitation:      models.PrecipitationMostlyDry,
		SeasonalVariation:  models.SeasonalModerate,
		ExpatCommunity:     models.ExpatLarge,
		PaceOfLife:         models.PaceRelaxed,
		UrbanRural:         models.UrbanRuralSuburban,
		LanguageComfort:    models.LanguageEnglishOnly,
		Hobbies: []models.WeightedHobby{
			{Name: "golf", Weight: 1},
			{Name: "sailing", Weight: 2},
		},
		HealthcareQuality:  models.QualityGood,
		SafetyImportance:   models.QualityGood,
		PoliticalStability: models.QualityModerate,
		Visa:               models.VisaRetirement,
		TotalMonthlyBudget: ptr(3000),
		MaxMonthlyRent:     ptr(1200),
	}
}

func sampleCandidates() []*models.Candidate {
	return []*models.Candidate{
		{
			ID:                      "lagos",
			Name:                    "Lagos",
			Country:                 "portugal",
			RegionTags:              []string{"algarve", "mediterranean"},
			GeographicFeatures:      []models.GeoFeature{models.GeoFeatureCoastal},
			VegetationTypes:         []models.Vegetation{models.VegetationMediterranean},
			AvgTempSummer:           ptr(26),
			AvgTempWinter:           ptr(13),
			Humidity:                models.HumidityBalanced,
			Sunshine:                models.SunshineOftenSunny,
			Precipitation:           models.PrecipitationMostlyDry,
			SeasonalVariation:       models.SeasonalModerate,
			PaceOfLife:              models.PaceRelaxed,
			ExpatCommunity:          models.ExpatLarge,
			UrbanRural:              models.UrbanRuralSuburban,
			EnglishProficiency:      models.EnglishHigh,
			SupportedHobbies:        []string{"golf", "sailing"},
			HealthcareScore:         ptr(78),
			SafetyScore:             ptr(85),
			PoliticalStability:      ptr(80),
			RetirementVisaAvailable: boolPtr(true),
			CostOfLivingUSD:         ptr(2100),
			TypicalRent1Bed:         ptr(950),
		},
		{
			ID:                   "boulder",
			Country:              "united states",
			RegionTags:           []string{"rocky mountains"},
			GeographicFeatures:   []models.GeoFeature{models.GeoFeatureMountain},
			VegetationTypes:      []models.Vegetation{models.VegetationForest},
			Summer:               models.SummerMild,
			Winter:               models.WinterCold,
			Humidity:             models.HumidityDry,
			PaceOfLife:           models.PaceFast,
			UrbanRural:           models.UrbanRuralUrban,
			EnglishProficiency:   models.EnglishNative,
			SupportedHobbies:     []string{"hiking"},
			HealthcareScore:      ptr(8),
			SafetyScore:          ptr(140),
			VisaRequirementsText: "No retirement visa program",
			CostOfLivingUSD:      ptr(4800),
			TypicalRent1Bed:      ptr(2200),
		},
		{ID: "sparse"},
	}
}

func TestNew_RejectsInvalidScoring(t *testing.T) {
	s := config.DefaultScoring()
	s.Weights.Region = 90
	_, err := New(s)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidScoring)
}

func TestNew_NilScoringUsesDefaults(t *testing.T) {
	e, err := New(nil, WithConcurrency(3))
	require.NoError(t, err)
	assert.Equal(t, config.ScoringVersion, e.Version())
	assert.Equal(t, 3, e.Concurrency())
}

func TestScore_Errors(t *testing.T) {
	e := newEngine(t)

	_, err := e.Score(nil, &models.Candidate{ID: "x"})
	assert.ErrorIs(t, err, models.ErrNilPreferences)

	_, err = e.Score(&models.Preferences{}, nil)
	assert.ErrorIs(t, err, models.ErrNilCandidate)

	_, err = e.Score(&models.Preferences{}, &models.Candidate{ID: " "})
	assert.ErrorIs(t, err, models.ErrEmptyCandidateID)
}

func TestScore_Deterministic(t *testing.T) {
	e := newEngine(t)
	p := fullProfile()
	for _, c := range sampleCandidates() {
		first, err := e.Score(p, c)
		require.NoError(t, err)
		second, err := e.Score(p, c)
		require.NoError(t, err)
		assert.Equal(t, first, second, c.ID)
	}
}

func TestScore_Bounds(t *testing.T) {
	e := newEngine(t)
	profiles := []*models.Preferences{fullProfile(), {}}
	for _, p := range profiles {
		for _, c := range sampleCandidates() {
			r, err := e.Score(p, c)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, r.OverallPercent, 0)
			assert.LessOrEqual(t, r.OverallPercent, 100)
			require.Len(t, r.Categories, 6)
			for cat, cr := range r.Categories {
				assert.GreaterOrEqual(t, cr.Score, 0.0, "%s/%s", c.ID, cat)
				assert.LessOrEqual(t, cr.Score, cr.MaxScore, "%s/%s", c.ID, cat)

				var sum float64
				for _, f := range cr.Factors {
					sum += f.Points
				}
				assert.InDelta(t, cr.Score, sum, 1e-9, "%s/%s", c.ID, cat)
			}
		}
	}
}

func TestScore_StrongMatchRanksFirst(t *testing.T) {
	e := newEngine(t)
	p := fullProfile()
	cands := sampleCandidates()

	strong, err := e.Score(p, cands[0])
	require.NoError(t, err)
	weak, err := e.Score(p, cands[1])
	require.NoError(t, err)

	assert.Greater(t, strong.OverallPercent, weak.OverallPercent)
	assert.GreaterOrEqual(t, strong.OverallPercent, 90)
	assert.Equal(t, []string{"golf", "sailing"}, strong.MatchedHobbies)
	assert.Equal(t, []string{"golf", "sailing"}, weak.MissingHobbies)
}

func TestScore_RemovingPreferenceNeverLowersCategory(t *testing.T) {
	e := newEngine(t)
	removals := map[string]struct {
		cat    models.Category
		remove func(p *models.Preferences)
	}{
		"countries":  {models.CategoryRegion, func(p *models.Preferences) { p.Countries = nil }},
		"regions":    {models.CategoryRegion, func(p *models.Preferences) { p.Regions = nil }},
		"features":   {models.CategoryRegion, func(p *models.Preferences) { p.GeographicFeatures = nil }},
		"vegetation": {models.CategoryRegion, func(p *models.Preferences) { p.VegetationTypes = nil }},
		"summer":     {models.CategoryClimate, func(p *models.Preferences) { p.Summer = "" }},
		"winter":     {models.CategoryClimate, func(p *models.Preferences) { p.Winter = "" }},
		"humidity":   {models.CategoryClimate, func(p *models.Preferences) { p.Humidity = "" }},
		"sunshine":   {models.CategoryClimate, func(p *models.Preferences) { p.Sunshine = "" }},
		"pace":       {models.CategoryCulture, func(p *models.Preferences) { p.PaceOfLife = "" }},
		"urban":      {models.CategoryCulture, func(p *models.Preferences) { p.UrbanRural = "" }},
		"language":   {models.CategoryCulture, func(p *models.Preferences) { p.LanguageComfort = "" }},
		"expat":      {models.CategoryCulture, func(p *models.Preferences) { p.ExpatCommunity = "" }},
		"healthcare": {models.CategoryAdmin, func(p *models.Preferences) { p.HealthcareQuality = "" }},
		"safety":     {models.CategoryAdmin, func(p *models.Preferences) { p.SafetyImportance = "" }},
		"stability":  {models.CategoryAdmin, func(p *models.Preferences) { p.PoliticalStability = "" }},
		"visa":       {models.CategoryAdmin, func(p *models.Preferences) { p.Visa = "" }},
	}

	for name, tt := range removals {
		t.Run(name, func(t *testing.T) {
			for _, c := range sampleCandidates() {
				before, err := e.Score(fullProfile(), c)
				require.NoError(t, err)

				p := fullProfile()
				tt.remove(p)
				after, err := e.Score(p, c)
				require.NoError(t, err)

				assert.GreaterOrEqual(t, after.Categories[tt.cat].Score, before.Categories[tt.cat].Score, c.ID)
			}
		})
	}
}

func TestScore_EmptyProfile(t *testing.T) {
	e := newEngine(t)
	r, err := e.Score(&models.Preferences{}, sampleCandidates()[0])
	require.NoError(t, err)

	assert.Equal(t, 0.0, r.Categories[models.CategoryHobbies].MaxScore)
	assert.Equal(t, 1.0, r.Categories[models.CategoryRegion].Ratio())
	assert.Equal(t, 50.0, r.Categories[models.CategoryBudget].Score)
	// (20+15+15+20 + 0.5*20) / 90
	assert.Equal(t, 89, r.OverallPercent)
}

func TestScore_SparseCandidateDataQuality(t *testing.T) {
	e := newEngine(t)
	r, err := e.Score(fullProfile(), sampleCandidates()[1])
	require.NoError(t, err)

	assert.Contains(t, r.DataQuality, "healthcare rating 8 looks like a 0-10 value")
	assert.Contains(t, r.DataQuality, "safety rating 140 is outside 0-100")
	assert.True(t, factor(t, r.Categories[models.CategoryAdmin], "safety").Excluded)
}
