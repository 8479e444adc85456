package models_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"retirement-match-engine/internal/models"
)

func TestGeoFeature_IsValid(t *testing.T) {
	tests := []struct {
		feature  models.GeoFeature
		expected bool
	}{
		{models.GeoFeatureCoastal, true},
		{models.GeoFeatureMountain, true},
		{models.GeoFeaturePlains, true},
		{models.GeoFeature("Coastal"), false},
		{models.GeoFeature("mountains"), false},
		{models.GeoFeature(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.feature), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.feature.IsValid())
		})
	}
}

func TestValidGeoFeatures(t *testing.T) {
	features := models.ValidGeoFeatures()
	assert.Len(t, features, 9)
	assert.Contains(t, features, models.GeoFeatureIsland)
	assert.Contains(t, features, models.GeoFeatureValley)
}

func TestOrdinal(t *testing.T) {
	assert.Equal(t, 0, models.Ordinal(models.SummerCool, models.ValidSummerClimates()))
	assert.Equal(t, 3, models.Ordinal(models.SummerHot, models.ValidSummerClimates()))
	assert.Equal(t, 2, models.Ordinal(models.QualityGood, models.ValidQualityLevels()))
	assert.Equal(t, -1, models.Ordinal(models.SummerClimate("tepid"), models.ValidSummerClimates()))
}

func TestHobbyKey(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Mountain Biking", "mountainbiking"},
		{"mountain biking", "mountainbiking"},
		{"mountain-biking", "mountainbiking"},
		{"  MOUNTAIN_BIKING ", "mountainbiking"},
		{"Arts & Crafts", "artscrafts"},
		{"Cross-country Skiing", "crosscountryskiing"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, models.HobbyKey(tt.input))
		})
	}
}

func TestCategories(t *testing.T) {
	cats := models.Categories()
	assert.Equal(t, []models.Category{
		models.CategoryRegion,
		models.CategoryClimate,
		models.CategoryCulture,
		models.CategoryHobbies,
		models.CategoryAdmin,
		models.CategoryBudget,
	}, cats)
	assert.False(t, models.Category("weather").IsValid())
}

func TestCategoryResult_Ratio(t *testing.T) {
	assert.Equal(t, 0.5, models.CategoryResult{Score: 50, MaxScore: 100}.Ratio())
	assert.Equal(t, 0.0, models.CategoryResult{Score: 0, MaxScore: 0}.Ratio())
}

func ptr(v float64) *float64 { return &v }

func TestValidateCandidate(t *testing.T) {
	tests := []struct {
		name      string
		candidate *models.Candidate
		wantErr   error
	}{
		{"nil", nil, models.ErrNilCandidate},
		{"empty id", &models.Candidate{ID: "  "}, models.ErrEmptyCandidateID},
		{"minimal", &models.Candidate{ID: "t1"}, nil},
		{"nan temperature", &models.Candidate{ID: "t1", AvgTempSummer: ptr(math.NaN())}, models.ErrMalformedCandidate},
		{"infinite cost", &models.Candidate{ID: "t1", CostOfLivingUSD: ptr(math.Inf(1))}, models.ErrMalformedCandidate},
		{"negative rent", &models.Candidate{ID: "t1", TypicalRent1Bed: ptr(-1)}, models.ErrMalformedCandidate},
		{"negative tax rate", &models.Candidate{ID: "t1", SalesTaxPct: ptr(-5)}, models.ErrMalformedCandidate},
		{"infinite amenity rating", &models.Candidate{ID: "t1", Museums: ptr(math.Inf(1))}, models.ErrMalformedCandidate},
		{"negative temperature is fine", &models.Candidate{ID: "t1", AvgTempWinter: ptr(-12)}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := models.ValidateCandidate(tt.candidate)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}
