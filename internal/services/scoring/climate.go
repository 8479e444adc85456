package scoring

import (
	"fmt"

	"retirement-match-engine/internal/config"
	"retirement-match-engine/internal/models"
)

// ClimateScorer scores summer, winter, humidity, sunshine, precipitation and
// seasonal variation. Temperatures fill in a missing season label.
type ClimateScorer struct {
	rules config.ClimateRules
}

func NewClimateScorer(rules config.ClimateRules) *ClimateScorer {
	return &ClimateScorer{rules: rules}
}

func (s *ClimateScorer) Category() models.Category { return models.CategoryClimate }

func (s *ClimateScorer) Score(p *models.Preferences, c *models.Candidate) Outcome {
	var b builder

	summer, source := season(&b, "summer", c.Summer, c.AvgTempSummer, s.rules.SummerThresholds, models.ValidSummerClimates())
	ordinalFactor(&b, "summer", s.rules.SummerPoints, p.Summer, summer, models.ValidSummerClimates(), s.rules.AdjacentCredit, source)

	winter, source := season(&b, "winter", c.Winter, c.AvgTempWinter, s.rules.WinterThresholds, models.ValidWinterClimates())
	ordinalFactor(&b, "winter", s.rules.WinterPoints, p.Winter, winter, models.ValidWinterClimates(), s.rules.AdjacentCredit, source)

	exactFactor(&b, "humidity", s.rules.HumidityPoints, p.Humidity, c.Humidity)
	exactFactor(&b, "sunshine", s.rules.SunshinePoints, p.Sunshine, c.Sunshine)
	exactFactor(&b, "precipitation", s.rules.PrecipitationPoints, p.Precipitation, c.Precipitation)
	exactFactor(&b, "seasonal_variation", s.rules.SeasonalPoints, p.SeasonalVariation, c.SeasonalVariation)

	return b.done()
}

// season resolves the climate label of one season. A stated label wins; the
// average temperature is used when the label is missing and is checked
// against the label when both exist.
func season[T ~string](b *builder, name string, label T, temp *float64, thresholds []float64, bands []T) (T, string) {
	var inferred T
	if temp != nil {
		inferred = bandFor(*temp, thresholds, bands)
	}
	if label != "" {
		if inferred != "" && inferred != label {
			b.note("%s labelled %s but average %.1f°C suggests %s", name, label, *temp, inferred)
		}
		return label, ""
	}
	if inferred == "" {
		return "", ""
	}
	return inferred, fmt.Sprintf("inferred from %.1f°C", *temp)
}

// bandFor places t in bands, where thresholds[i] is the exclusive upper
// bound of bands[i].
func bandFor[T any](t float64, thresholds []float64, bands []T) T {
	for i, limit := range thresholds {
		if i >= len(bands)-1 {
			break
		}
		if t < limit {
			return bands[i]
		}
	}
	return bands[len(bands)-1]
}
