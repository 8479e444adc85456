package models

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"
)

// Common errors
var (
	ErrNilPreferences     = errors.New("preference profile cannot be nil")
	ErrNilCandidate       = errors.New("candidate cannot be nil")
	ErrEmptyCandidateID   = errors.New("candidate id cannot be empty")
	ErrMalformedCandidate = errors.New("malformed candidate")
	ErrProfileNotFound    = errors.New("preference profile not found")
)

// ValidateCandidate reports structural problems that make a candidate
// unscorable. Missing data is not a problem; impossible data is.
func ValidateCandidate(c *Candidate) error {
	if c == nil {
		return ErrNilCandidate
	}

	if strings.TrimSpace(c.ID) == "" {
		return ErrEmptyCandidateID
	}

	numbers := map[string]*float64{
		"avgTempSummer":              c.AvgTempSummer,
		"avgTempWinter":              c.AvgTempWinter,
		"restaurantsRating":          c.Restaurants,
		"nightlifeRating":            c.Nightlife,
		"culturalEventsRating":       c.CulturalEvents,
		"museumsRating":              c.Museums,
		"healthcareScore":            c.HealthcareScore,
		"safetyScore":                c.SafetyScore,
		"politicalStabilityRating":   c.PoliticalStability,
		"governmentEfficiencyRating": c.GovernmentEfficiency,
		"environmentalHealthRating":  c.EnvironmentalHealth,
		"costOfLivingUsd":            c.CostOfLivingUSD,
		"typicalRent1Bed":            c.TypicalRent1Bed,
		"healthcareCostMonthly":      c.HealthcareCostMonthly,
		"incomeTaxRatePct":           c.IncomeTaxPct,
		"propertyTaxRatePct":         c.PropertyTaxPct,
		"salesTaxRatePct":            c.SalesTaxPct,
	}
	for _, name := range sortedKeys(numbers) {
		v := numbers[name]
		if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0)) {
			return fmt.Errorf("%w: %s is not a finite number", ErrMalformedCandidate, name)
		}
	}

	costs := map[string]*float64{
		"costOfLivingUsd":       c.CostOfLivingUSD,
		"typicalRent1Bed":       c.TypicalRent1Bed,
		"healthcareCostMonthly": c.HealthcareCostMonthly,
		"incomeTaxRatePct":      c.IncomeTaxPct,
		"propertyTaxRatePct":    c.PropertyTaxPct,
		"salesTaxRatePct":       c.SalesTaxPct,
	}
	for _, name := range sortedKeys(costs) {
		if v := costs[name]; v != nil && *v < 0 {
			return fmt.Errorf("%w: %s cannot be negative", ErrMalformedCandidate, name)
		}
	}

	return nil
}

func sortedKeys(m map[string]*float64) []string {
	return slices.Sorted(maps.Keys(m))
}
