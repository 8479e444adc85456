package scoring

import (
	"retirement-match-engine/internal/config"
	"retirement-match-engine/internal/models"
)

// HobbyScorer scores the weighted share of the user's hobbies a candidate
// supports.
type HobbyScorer struct {
	rules     config.HobbyRules
	universal map[string]bool
}

func NewHobbyScorer(rules config.HobbyRules) *HobbyScorer {
	universal := make(map[string]bool, len(rules.Universal))
	for _, h := range rules.Universal {
		universal[models.HobbyKey(h)] = true
	}
	return &HobbyScorer{rules: rules, universal: universal}
}

func (s *HobbyScorer) Category() models.Category { return models.CategoryHobbies }

func (s *HobbyScorer) Score(p *models.Preferences, c *models.Candidate) Outcome {
	var b builder
	b.out.MatchedHobbies = []string{}
	b.out.MissingHobbies = []string{}

	var total float64
	for _, h := range p.Hobbies {
		if h.Weight > 0 {
			total += h.Weight
		}
	}
	if total == 0 {
		return b.done()
	}
	// Universal hobbies still match a candidate without hobby data; the
	// others are excluded.
	known := len(c.SupportedHobbies) > 0
	if !known {
		b.note("no supported hobby data")
	}

	supported := make(map[string]bool, len(c.SupportedHobbies))
	for _, h := range c.SupportedHobbies {
		supported[models.HobbyKey(h)] = true
	}

	for _, h := range p.Hobbies {
		if h.Weight <= 0 {
			continue
		}
		share := s.rules.MaxPoints * h.Weight / total
		key := models.HobbyKey(h.Name)
		switch {
		case supported[key]:
			b.full(h.Name, share, "supported")
			b.out.MatchedHobbies = append(b.out.MatchedHobbies, h.Name)
		case s.universal[key]:
			b.full(h.Name, share, "can be practised anywhere")
			b.out.MatchedHobbies = append(b.out.MatchedHobbies, h.Name)
		case !known:
			b.exclude(h.Name, "candidate hobby data unavailable")
		default:
			b.award(h.Name, share, 0, "not supported")
			b.out.MissingHobbies = append(b.out.MissingHobbies, h.Name)
		}
	}
	return b.done()
}
