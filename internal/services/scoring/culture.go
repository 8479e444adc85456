package scoring

import (
	"fmt"
	"math"

	"retirement-match-engine/internal/config"
	"retirement-match-engine/internal/models"
)

// CultureScorer scores urban/rural character, pace of life, language, expat
// community and the importance of dining, cultural events and museums.
type CultureScorer struct {
	rules config.CultureRules
}

func NewCultureScorer(rules config.CultureRules) *CultureScorer {
	return &CultureScorer{rules: rules}
}

func (s *CultureScorer) Category() models.Category { return models.CategoryCulture }

func (s *CultureScorer) Score(p *models.Preferences, c *models.Candidate) Outcome {
	var b builder
	ordinalFactor(&b, "urban_rural", s.rules.UrbanRuralPoints, p.UrbanRural, c.UrbanRural, models.ValidUrbanRural(), s.rules.AdjacentCredit, "")
	ordinalFactor(&b, "pace_of_life", s.rules.PacePoints, p.PaceOfLife, c.PaceOfLife, models.ValidPaceOfLife(), s.rules.AdjacentCredit, "")
	s.language(&b, p, c)
	ordinalFactor(&b, "expat_community", s.rules.ExpatPoints, p.ExpatCommunity, c.ExpatCommunity, models.ValidExpatCommunities(), s.rules.AdjacentCredit, "")
	s.amenity(&b, "dining_nightlife", p.DiningNightlife, c.Restaurants, c.Nightlife)
	s.amenity(&b, "cultural_events", p.CulturalEvents, c.CulturalEvents)
	s.amenity(&b, "museums_arts", p.MuseumsArts, c.Museums)
	return b.done()
}

// amenity compares a 1-5 importance with the rounded mean of the candidate's
// 1-5 ratings. The closer the two, the more credit.
func (s *CultureScorer) amenity(b *builder, name string, importance int, ratings ...*float64) {
	if importance == 0 {
		b.full(name, s.rules.AmenityPoints, "no preference")
		return
	}

	var sum float64
	var n int
	for _, r := range ratings {
		if r == nil {
			continue
		}
		if *r < 1 || *r > 5 {
			b.note("%s rating %g is outside 1-5", name, *r)
			continue
		}
		sum += *r
		n++
	}
	if n == 0 {
		b.exclude(name, "candidate rating unavailable")
		return
	}

	rating := int(math.Round(sum / float64(n)))
	gap := importance - rating
	if gap < 0 {
		gap = -gap
	}
	var credit float64
	if gap < len(s.rules.AmenityCredit) {
		credit = s.rules.AmenityCredit[gap]
	}
	b.award(name, s.rules.AmenityPoints, credit, fmt.Sprintf("rated %d against importance %d", rating, importance))
}

func (s *CultureScorer) language(b *builder, p *models.Preferences, c *models.Candidate) {
	const name = "language"
	if p.LanguageComfort == "" {
		b.full(name, s.rules.LanguagePoints, "no language preference")
		return
	}

	level := c.EnglishProficiency
	if c.PrimaryLanguage == "english" {
		level = models.EnglishNative
	}
	if level == "" {
		b.exclude(name, "candidate english proficiency unavailable")
		return
	}

	credit := s.rules.LanguageCredit[p.LanguageComfort][level]
	b.award(name, s.rules.LanguagePoints, credit,
		fmt.Sprintf("english %s for a %s speaker", level, p.LanguageComfort))
}
