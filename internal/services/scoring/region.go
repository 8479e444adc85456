package scoring

import (
	"fmt"
	"slices"
	"strings"

	"retirement-match-engine/internal/config"
	"retirement-match-engine/internal/models"
)

// RegionScorer scores country, named region, geographic features and
// vegetation.
type RegionScorer struct {
	rules config.RegionRules
}

func NewRegionScorer(rules config.RegionRules) *RegionScorer {
	return &RegionScorer{rules: rules}
}

func (s *RegionScorer) Category() models.Category { return models.CategoryRegion }

func (s *RegionScorer) Score(p *models.Preferences, c *models.Candidate) Outcome {
	var b builder
	s.country(&b, p, c)
	s.region(&b, p, c)
	s.geographic(&b, p, c)
	s.vegetation(&b, p, c)
	return b.done()
}

func (s *RegionScorer) country(b *builder, p *models.Preferences, c *models.Candidate) {
	const name = "country"
	switch {
	case len(p.Countries) == 0:
		b.full(name, s.rules.CountryPoints, "no country preference")
	case c.Country == "":
		b.exclude(name, "candidate country unavailable")
	case slices.Contains(p.Countries, c.Country):
		b.full(name, s.rules.CountryPoints, fmt.Sprintf("%s is a preferred country", c.Country))
	default:
		if state := preferredState(p, c); state != "" {
			b.full(name, s.rules.CountryPoints, fmt.Sprintf("%s is a preferred state", state))
			return
		}
		b.award(name, s.rules.CountryPoints, 0, fmt.Sprintf("%s is not a preferred country", c.Country))
	}
}

// preferredState returns the US state, picked in place of a country, that a
// United States candidate is tagged with.
func preferredState(p *models.Preferences, c *models.Candidate) string {
	if c.Country != "united states" {
		return ""
	}
	for _, want := range p.Countries {
		if usStates[want] && slices.Contains(c.RegionTags, want) {
			return want
		}
	}
	return ""
}

// region grants full credit for any shared named region.
func (s *RegionScorer) region(b *builder, p *models.Preferences, c *models.Candidate) {
	const name = "region"
	switch {
	case len(p.Regions) == 0:
		b.full(name, s.rules.RegionPoints, "no region preference")
	case len(c.RegionTags) == 0:
		b.exclude(name, "candidate regions unavailable")
	default:
		if shared := intersect(p.Regions, c.RegionTags); len(shared) > 0 {
			b.full(name, s.rules.RegionPoints, "in preferred region "+strings.Join(shared, ", "))
			return
		}
		b.award(name, s.rules.RegionPoints, 0, "not in a preferred region")
	}
}

func (s *RegionScorer) geographic(b *builder, p *models.Preferences, c *models.Candidate) {
	const name = "geographic_features"
	if len(p.GeographicFeatures) == 0 {
		b.full(name, s.rules.GeographicPoints, "no geographic preference")
		return
	}

	actual := c.GeographicFeatures
	source := ""
	if len(actual) == 0 && slices.Contains(p.GeographicFeatures, models.GeoFeatureCoastal) && s.coastalByRegion(c) {
		actual = []models.GeoFeature{models.GeoFeatureCoastal}
		source = " (inferred from region)"
	}
	if len(actual) == 0 {
		b.exclude(name, "candidate geographic features unavailable")
		return
	}

	if shared := intersect(p.GeographicFeatures, actual); len(shared) > 0 {
		b.full(name, s.rules.GeographicPoints, "has preferred "+joinValues(shared)+source)
		return
	}
	if have, want, ok := related(s.rules.FeatureGroups, p.GeographicFeatures, actual); ok {
		b.award(name, s.rules.GeographicPoints, s.rules.RelatedCredit,
			fmt.Sprintf("%s is related to preferred %s", have, want))
		return
	}
	b.award(name, s.rules.GeographicPoints, 0, "none of the preferred features")
}

func (s *RegionScorer) vegetation(b *builder, p *models.Preferences, c *models.Candidate) {
	const name = "vegetation"
	if len(p.VegetationTypes) == 0 {
		for _, region := range p.Regions {
			implied := s.rules.RegionVegetation[region]
			if shared := intersect(implied, c.VegetationTypes); len(shared) > 0 {
				b.full(name, s.rules.VegetationPoints,
					fmt.Sprintf("%s vegetation implied by region %s", joinValues(shared), region))
				return
			}
		}
		b.full(name, s.rules.VegetationPoints, "no vegetation preference")
		return
	}

	if len(c.VegetationTypes) == 0 {
		b.exclude(name, "candidate vegetation unavailable")
		return
	}
	if shared := intersect(p.VegetationTypes, c.VegetationTypes); len(shared) > 0 {
		b.full(name, s.rules.VegetationPoints, "has preferred "+joinValues(shared))
		return
	}
	if have, want, ok := related(s.rules.RelatedVegetation, p.VegetationTypes, c.VegetationTypes); ok {
		b.award(name, s.rules.VegetationPoints, s.rules.RelatedCredit,
			fmt.Sprintf("%s is related to preferred %s", have, want))
		return
	}
	b.award(name, s.rules.VegetationPoints, 0, "none of the preferred vegetation")
}

func (s *RegionScorer) coastalByRegion(c *models.Candidate) bool {
	for _, tag := range c.RegionTags {
		for _, hint := range s.rules.CoastalIndicators {
			if strings.Contains(tag, hint) {
				return true
			}
		}
	}
	return false
}

// related finds a candidate value that shares a group with a preferred one.
func related[T comparable](groups [][]T, prefs, actual []T) (have, want T, ok bool) {
	for _, g := range groups {
		for _, a := range actual {
			if !slices.Contains(g, a) {
				continue
			}
			for _, w := range prefs {
				if slices.Contains(g, w) {
					return a, w, true
				}
			}
		}
	}
	return have, want, false
}

func joinValues[T ~string](vs []T) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

var usStates = map[string]bool{
	"alabama": true, "alaska": true, "arizona": true, "arkansas": true, "california": true,
	"colorado": true, "connecticut": true, "delaware": true, "florida": true, "georgia": true,
	"hawaii": true, "idaho": true, "illinois": true, "indiana": true, "iowa": true,
	"kansas": true, "kentucky": true, "louisiana": true, "maine": true, "maryland": true,
	"massachusetts": true, "michigan": true, "minnesota": true, "mississippi": true, "missouri": true,
	"montana": true, "nebraska": true, "nevada": true, "new hampshire": true, "new jersey": true,
	"new mexico": true, "new york": true, "north carolina": true, "north dakota": true, "ohio": true,
	"oklahoma": true, "oregon": true, "pennsylvania": true, "rhode island": true, "south carolina": true,
	"south dakota": true, "tennessee": true, "texas": true, "utah": true, "vermont": true,
	"virginia": true, "washington": true, "west virginia": true, "wisconsin": true, "wyoming": true,
}
