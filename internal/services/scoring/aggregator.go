package scoring

import (
	"math"

	"retirement-match-engine/internal/config"
	"retirement-match-engine/internal/models"
)

// Aggregator combines category results into an overall percentage.
type Aggregator struct {
	weights config.Weights
}

func NewAggregator(weights config.Weights) Aggregator {
	return Aggregator{weights: weights}
}

// OverallPercent is the weighted mean of category ratios, rounded to an
// integer in [0, 100]. Categories with no max score are left out and their
// weight is shared among the rest.
func (a Aggregator) OverallPercent(categories map[models.Category]models.CategoryResult) int {
	var sum, weight float64
	for _, cat := range models.Categories() {
		r, ok := categories[cat]
		if !ok || r.MaxScore <= 0 {
			continue
		}
		w := a.weights.For(cat)
		sum += r.Ratio() * w
		weight += w
	}
	if weight <= 0 {
		return 0
	}

	pct := int(math.Round(sum / weight * 100))
	return max(0, min(100, pct))
}
