package scoring

import (
	"fmt"
	"strings"

	"retirement-match-engine/internal/config"
	"retirement-match-engine/internal/models"
)

// BudgetScorer scores affordability. The base score comes from the
// budget/cost ratio band; rent, healthcare and taxes add bonuses, capped at
// the category maximum.
type BudgetScorer struct {
	rules config.BudgetRules
}

func NewBudgetScorer(rules config.BudgetRules) *BudgetScorer {
	return &BudgetScorer{rules: rules}
}

func (s *BudgetScorer) Category() models.Category { return models.CategoryBudget }

func (s *BudgetScorer) Score(p *models.Preferences, c *models.Candidate) Outcome {
	var b builder
	s.base(&b, p, c)
	s.rent(&b, p, c)
	s.healthcare(&b, p, c)
	s.tax(&b, p, c)

	b.out.Result.MaxScore = s.rules.MaxPoints
	trimToMax(&b.out.Result)
	return b.done()
}

func (s *BudgetScorer) base(b *builder, p *models.Preferences, c *models.Candidate) {
	const name = "cost_of_living"
	top := s.rules.NeutralPoints
	if len(s.rules.Bands) > 0 && s.rules.Bands[0].Points > top {
		top = s.rules.Bands[0].Points
	}

	switch {
	case p.TotalMonthlyBudget == nil:
		b.bonus(name, s.rules.NeutralPoints, top, "no budget given, neutral score")
		return
	case c.CostOfLivingUSD == nil || *c.CostOfLivingUSD <= 0:
		b.bonus(name, s.rules.NeutralPoints, top, "cost of living unavailable, neutral score")
		return
	}

	ratio := *p.TotalMonthlyBudget / *c.CostOfLivingUSD
	for _, band := range s.rules.Bands {
		if ratio >= band.MinRatio {
			b.bonus(name, band.Points, top, fmt.Sprintf("budget covers %.0f%% of cost of living (%s)", ratio*100, band.Label))
			return
		}
	}
	b.bonus(name, 0, top, fmt.Sprintf("budget covers %.0f%% of cost of living", ratio*100))
}

func (s *BudgetScorer) rent(b *builder, p *models.Preferences, c *models.Candidate) {
	const name = "rent"
	if p.MaxMonthlyRent == nil || p.Housing == models.HousingBuy || c.TypicalRent1Bed == nil {
		return
	}
	rent, limit := *c.TypicalRent1Bed, *p.MaxMonthlyRent
	switch {
	case rent <= limit:
		b.bonus(name, s.rules.RentWithinCapBonus, s.rules.RentWithinCapBonus,
			fmt.Sprintf("rent %.0f within cap %.0f", rent, limit))
	case rent <= limit*s.rules.RentNearCapFactor:
		b.bonus(name, s.rules.RentNearCapBonus, s.rules.RentWithinCapBonus,
			fmt.Sprintf("rent %.0f slightly above cap %.0f", rent, limit))
	default:
		b.bonus(name, 0, s.rules.RentWithinCapBonus, fmt.Sprintf("rent %.0f exceeds cap %.0f", rent, limit))
	}
}

func (s *BudgetScorer) healthcare(b *builder, p *models.Preferences, c *models.Candidate) {
	const name = "healthcare_cost"
	if p.MonthlyHealthcareBudget == nil || c.HealthcareCostMonthly == nil {
		return
	}
	have, cost := *p.MonthlyHealthcareBudget, *c.HealthcareCostMonthly
	if have >= cost {
		b.bonus(name, s.rules.HealthcareBonus, s.rules.HealthcareBonus,
			fmt.Sprintf("healthcare budget %.0f covers %.0f", have, cost))
		return
	}
	b.bonus(name, 0, s.rules.HealthcareBonus, fmt.Sprintf("healthcare budget %.0f below %.0f", have, cost))
}

// tax grades the rates the user is sensitive to and adds a share for treaty,
// haven and foreign income benefits. Users without tax sensitivity get no
// tax factor.
func (s *BudgetScorer) tax(b *builder, p *models.Preferences, c *models.Candidate) {
	const name = "tax"
	rates := []struct {
		kind      string
		sensitive bool
		rate      *float64
		bands     []float64
	}{
		{"income", p.IncomeTaxSensitive, c.IncomeTaxPct, s.rules.TaxBands.Income},
		{"property", p.PropertyTaxSensitive, c.PropertyTaxPct, s.rules.TaxBands.Property},
		{"sales", p.SalesTaxSensitive, c.SalesTaxPct, s.rules.TaxBands.Sales},
	}

	var (
		sensitive, graded int
		gradeSum          float64
		details           []string
	)
	for _, r := range rates {
		if !r.sensitive {
			continue
		}
		sensitive++
		if r.rate == nil {
			continue
		}
		g := taxGrade(*r.rate, r.bands)
		gradeSum += float64(g)
		graded++
		details = append(details, fmt.Sprintf("%s %g%% %s", r.kind, *r.rate, taxGradeLabels[g]))
	}
	if sensitive == 0 {
		return
	}

	var share float64
	if c.TaxTreatyUS != nil && *c.TaxTreatyUS {
		share += s.rules.TaxBenefits.Treaty
		details = append(details, "US tax treaty")
	}
	if c.TaxHaven != nil && *c.TaxHaven {
		share += s.rules.TaxBenefits.Haven
		details = append(details, "tax haven")
	}
	if c.ForeignIncomeTaxed != nil && !*c.ForeignIncomeTaxed {
		share += s.rules.TaxBenefits.ForeignIncomeExempt
		details = append(details, "foreign income untaxed")
	}
	knownBenefits := c.TaxTreatyUS != nil || c.TaxHaven != nil || c.ForeignIncomeTaxed != nil

	if graded == 0 && !knownBenefits {
		b.note("no tax data for a tax sensitive profile")
		return
	}

	var pts float64
	if graded > 0 {
		pts = gradeSum / float64(graded) / 5 * s.rules.TaxRatePoints
	}
	pts += min(share, 1) * s.rules.TaxBenefitPoints
	if len(details) == 0 {
		details = append(details, "no tax benefits")
	}
	b.bonus(name, pts, s.rules.TaxRatePoints+s.rules.TaxBenefitPoints, strings.Join(details, ", "))
}

var taxGradeLabels = map[int]string{5: "excellent", 4: "good", 3: "fair", 2: "high", 1: "very high"}

// taxGrade grades a rate from 5 (excellent) down to 1 (very high) against
// ascending upper bounds.
func taxGrade(rate float64, bands []float64) int {
	for i, upper := range bands {
		if rate <= upper {
			return 5 - i
		}
	}
	return max(5-len(bands), 1)
}

// trimToMax removes overflow from the latest bonus factors first so the
// factor sum stays equal to the capped score.
func trimToMax(r *models.CategoryResult) {
	over := r.Score - r.MaxScore
	for i := len(r.Factors) - 1; i >= 0 && over > 0; i-- {
		cut := min(r.Factors[i].Points, over)
		r.Factors[i].Points -= cut
		r.Score -= cut
		over -= cut
	}
}
