package scoring

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"retirement-match-engine/internal/config"
	"retirement-match-engine/internal/models"
)

// AdminScorer scores healthcare, safety, political stability, government
// efficiency, retirement visa availability and environmental health.
type AdminScorer struct {
	rules config.AdminRules
}

func NewAdminScorer(rules config.AdminRules) *AdminScorer {
	return &AdminScorer{rules: rules}
}

func (s *AdminScorer) Category() models.Category { return models.CategoryAdmin }

func (s *AdminScorer) Score(p *models.Preferences, c *models.Candidate) Outcome {
	var b builder
	s.rating(&b, "healthcare", s.rules.HealthcarePoints, p.HealthcareQuality, c.HealthcareScore)
	s.rating(&b, "safety", s.rules.SafetyPoints, p.SafetyImportance, c.SafetyScore)
	s.rating(&b, "political_stability", s.rules.StabilityPoints, p.PoliticalStability, c.PoliticalStability)
	s.rating(&b, "government_efficiency", s.rules.GovernmentPoints, p.GovernmentEfficiency, c.GovernmentEfficiency)
	s.visa(&b, p, c)
	s.environment(&b, p, c)
	return b.done()
}

func (s *AdminScorer) rating(b *builder, name string, max float64, pref models.QualityLevel, value *float64) {
	valid := value != nil
	if valid {
		v := *value
		switch {
		case v < 0 || v > 100:
			b.note("%s rating %g is outside 0-100", name, v)
			valid = false
		case v > 0 && v <= s.rules.LegacyScaleMax:
			b.note("%s rating %g looks like a 0-10 value", name, v)
		}
	}

	switch {
	case pref == "":
		b.full(name, max, "no preference")
		return
	case !valid:
		b.exclude(name, "candidate rating unavailable")
		return
	}

	bucket := s.bucket(*value)
	gap := models.Ordinal(pref, models.ValidQualityLevels()) - models.Ordinal(bucket, models.ValidQualityLevels())
	detail := fmt.Sprintf("%s (%g)", bucket, *value)
	switch {
	case gap <= 0:
		b.full(name, max, fmt.Sprintf("%s meets preferred %s", detail, pref))
	case gap == 1:
		b.award(name, max, s.rules.AdjacentCredit, fmt.Sprintf("%s is one level below preferred %s", detail, pref))
	default:
		b.award(name, max, 0, fmt.Sprintf("%s is well below preferred %s", detail, pref))
	}
}

func (s *AdminScorer) bucket(v float64) models.QualityLevel {
	switch {
	case v >= s.rules.GoodFrom:
		return models.QualityGood
	case v >= s.rules.ModerateFrom:
		return models.QualityModerate
	default:
		return models.QualityPoor
	}
}

func (s *AdminScorer) visa(b *builder, p *models.Preferences, c *models.Candidate) {
	const name = "visa"
	if p.Visa != models.VisaRetirement {
		b.full(name, s.rules.VisaPoints, "no retirement visa requirement")
		return
	}
	available, known := s.visaAvailable(c)
	switch {
	case !known:
		b.exclude(name, "candidate visa information unavailable")
	case available:
		b.full(name, s.rules.VisaPoints, "retirement visa available")
	default:
		b.award(name, s.rules.VisaPoints, 0, "no retirement visa")
	}
}

// environment only matters to users sensitive to air and water quality.
func (s *AdminScorer) environment(b *builder, p *models.Preferences, c *models.Candidate) {
	const name = "environmental_health"
	if !p.EnvironmentalSensitive {
		b.full(name, s.rules.EnvironmentPoints, "no environmental sensitivity")
		return
	}
	v := c.EnvironmentalHealth
	switch {
	case v == nil:
		b.exclude(name, "candidate environmental health rating unavailable")
	case *v < 1 || *v > 5:
		b.note("environmental health rating %g is outside 1-5", *v)
		b.exclude(name, "candidate environmental health rating unusable")
	case *v >= s.rules.EnvironmentFrom:
		b.full(name, s.rules.EnvironmentPoints, fmt.Sprintf("environmental health %g suits a sensitive user", *v))
	default:
		b.award(name, s.rules.EnvironmentPoints, 0, fmt.Sprintf("environmental health %g is below %g", *v, s.rules.EnvironmentFrom))
	}
}

// visaAvailable prefers the explicit flag and falls back to reading the
// requirements text. A visa phrase counts only in a clause that carries no
// negation word.
func (s *AdminScorer) visaAvailable(c *models.Candidate) (available, known bool) {
	if c.RetirementVisaAvailable != nil {
		return *c.RetirementVisaAvailable, true
	}
	text := strings.ToLower(strings.TrimSpace(c.VisaRequirementsText))
	if text == "" {
		return false, false
	}
	for _, clause := range strings.FieldsFunc(text, isClauseBreak) {
		if s.mentionsVisa(clause) && !s.negated(clause) {
			return true, true
		}
	}
	return false, true
}

func (s *AdminScorer) mentionsVisa(clause string) bool {
	for _, phrase := range s.rules.VisaPhrases {
		if strings.Contains(clause, phrase) {
			return true
		}
	}
	return false
}

func (s *AdminScorer) negated(clause string) bool {
	clause = strings.ReplaceAll(clause, "\u2019", "'")
	words := strings.FieldsFunc(clause, func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
	for _, w := range words {
		if slices.Contains(s.rules.VisaNegations, w) {
			return true
		}
	}
	return false
}

func isClauseBreak(r rune) bool {
	switch r {
	case '.', ';', '!', '?', '\n':
		return true
	}
	return false
}
