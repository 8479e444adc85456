package models

// Category names one of the six scoring dimensions.
type Category string

const (
	CategoryRegion  Category = "region"
	CategoryClimate Category = "climate"
	CategoryCulture Category = "culture"
	CategoryHobbies Category = "hobbies"
	CategoryAdmin   Category = "admin"
	CategoryBudget  Category = "budget"
)

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{
		CategoryRegion,
		CategoryClimate,
		CategoryCulture,
		CategoryHobbies,
		CategoryAdmin,
		CategoryBudget,
	}
}

// IsValid checks if the category is known.
func (c Category) IsValid() bool { return oneOf(c, Categories()) }

// Factor is one auditable contribution to a category score.
type Factor struct {
	Name      string  `json:"name"`
	Points    float64 `json:"points"`
	MaxPoints float64 `json:"maxPoints"`
	Rationale string  `json:"rationale"`
	// Excluded factors had no candidate data and are left out of the
	// category's max score.
	Excluded bool `json:"excluded,omitempty"`
}

// CategoryResult is the score of a single category. Score never exceeds
// MaxScore and the factor points sum to Score.
type CategoryResult struct {
	Score    float64  `json:"score"`
	MaxScore float64  `json:"maxScore"`
	Factors  []Factor `json:"factors"`
}

// Ratio returns Score/MaxScore, or 0 for an excluded category.
func (r CategoryResult) Ratio() float64 {
	if r.MaxScore <= 0 {
		return 0
	}
	return r.Score / r.MaxScore
}

// MatchResult is the full compatibility breakdown of one candidate.
type MatchResult struct {
	CandidateID    string                      `json:"candidateId"`
	CandidateName  string                      `json:"candidateName,omitempty"`
	OverallPercent int                         `json:"overallPercent"`
	Categories     map[Category]CategoryResult `json:"categories"`
	MatchedHobbies []string                    `json:"matchedHobbies"`
	MissingHobbies []string                    `json:"missingHobbies"`
	// DataQuality lists anomalies found in the candidate record that did not
	// prevent scoring.
	DataQuality []string `json:"dataQuality,omitempty"`
	// Error is set when the candidate could not be scored.
	Error string `json:"error,omitempty"`
}

// Failed reports whether the candidate could not be scored.
func (m MatchResult) Failed() bool { return m.Error != "" }
