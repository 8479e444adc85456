// Package scoring computes how well a candidate location fits a normalized
// preference profile. Everything in this package is pure: no I/O, no shared
// mutable state.
package scoring

import (
	"fmt"

	"retirement-match-engine/internal/models"
)

// Outcome is the output of one category scorer.
type Outcome struct {
	Result         models.CategoryResult
	DataQuality    []string
	MatchedHobbies []string
	MissingHobbies []string
}

// CategoryScorer scores one category.
type CategoryScorer interface {
	Category() models.Category
	Score(p *models.Preferences, c *models.Candidate) Outcome
}

// builder accumulates factors so that Score always equals the factor sum.
type builder struct {
	out Outcome
}

// award adds a sub-factor worth max points, of which credit is earned.
func (b *builder) award(name string, max, credit float64, rationale string) {
	if max <= 0 {
		return
	}
	pts := max * clamp01(credit)
	b.out.Result.Factors = append(b.out.Result.Factors, models.Factor{
		Name:      name,
		Points:    pts,
		MaxPoints: max,
		Rationale: rationale,
	})
	b.out.Result.Score += pts
	b.out.Result.MaxScore += max
}

// full is award with full credit.
func (b *builder) full(name string, max float64, rationale string) {
	b.award(name, max, 1, rationale)
}

// bonus adds points without growing the max score.
func (b *builder) bonus(name string, pts, max float64, rationale string) {
	b.out.Result.Factors = append(b.out.Result.Factors, models.Factor{
		Name:      name,
		Points:    pts,
		MaxPoints: max,
		Rationale: rationale,
	})
	b.out.Result.Score += pts
}

// exclude records a sub-factor that could not be scored for lack of
// candidate data. It contributes to neither score nor max.
func (b *builder) exclude(name, rationale string) {
	b.out.Result.Factors = append(b.out.Result.Factors, models.Factor{
		Name:      name,
		Rationale: rationale,
		Excluded:  true,
	})
}

func (b *builder) note(format string, args ...any) {
	b.out.DataQuality = append(b.out.DataQuality, fmt.Sprintf(format, args...))
}

func (b *builder) done() Outcome {
	r := &b.out.Result
	if r.Score > r.MaxScore {
		r.Score = r.MaxScore
	}
	if r.Score < 0 {
		r.Score = 0
	}
	if r.Factors == nil {
		r.Factors = []models.Factor{}
	}
	return b.out
}

// exactFactor scores a categorical sub-factor that is either an exact match
// or nothing.
func exactFactor[T ~string](b *builder, name string, max float64, pref, actual T) {
	switch {
	case pref == "":
		b.full(name, max, "no preference")
	case actual == "":
		b.exclude(name, "candidate data unavailable")
	case pref == actual:
		b.full(name, max, fmt.Sprintf("%s matches preference", actual))
	default:
		b.award(name, max, 0, fmt.Sprintf("%s, preferred %s", actual, pref))
	}
}

// ordinalFactor scores a sub-factor on an ordered scale: exact match earns
// full credit and a neighbouring value earns adjacent credit.
func ordinalFactor[T ~string](b *builder, name string, max float64, pref, actual T, ordered []T, adjacent float64, source string) {
	switch {
	case pref == "":
		b.full(name, max, "no preference")
		return
	case actual == "":
		b.exclude(name, "candidate data unavailable")
		return
	}

	detail := string(actual)
	if source != "" {
		detail += " (" + source + ")"
	}
	switch steps(pref, actual, ordered) {
	case 0:
		b.full(name, max, fmt.Sprintf("%s matches preference", detail))
	case 1:
		b.award(name, max, adjacent, fmt.Sprintf("%s is one step from preferred %s", detail, pref))
	default:
		b.award(name, max, 0, fmt.Sprintf("%s is far from preferred %s", detail, pref))
	}
}

// steps returns the distance between two values of an ordered vocabulary.
func steps[T comparable](a, b T, ordered []T) int {
	i, j := models.Ordinal(a, ordered), models.Ordinal(b, ordered)
	if i < 0 || j < 0 {
		return len(ordered)
	}
	if i > j {
		return i - j
	}
	return j - i
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func intersect[T comparable](a, b []T) []T {
	var out []T
	for _, x := range a {
		for _, y := range b {
			if x == y {
				out = append(out, x)
				break
			}
		}
	}
	return out
}
