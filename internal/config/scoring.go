package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"retirement-match-engine/internal/models"
)

// ScoringVersion identifies the built-in scoring table.
const ScoringVersion = "2026.10"

// ErrInvalidScoring is returned when a scoring table fails validation.
var ErrInvalidScoring = errors.New("invalid scoring configuration")

// Scoring is the single versioned source of every weight, point band,
// partial-credit value and relation table the engine uses.
type Scoring struct {
	Version string       `yaml:"version" json:"version"`
	Weights Weights      `yaml:"weights" json:"weights"`
	Region  RegionRules  `yaml:"region" json:"region"`
	Climate ClimateRules `yaml:"climate" json:"climate"`
	Culture CultureRules `yaml:"culture" json:"culture"`
	Hobbies HobbyRules   `yaml:"hobbies" json:"hobbies"`
	Admin   AdminRules   `yaml:"admin" json:"admin"`
	Budget  BudgetRules  `yaml:"budget" json:"budget"`
	Batch   BatchRules   `yaml:"batch" json:"batch"`
}

// Weights are the category weights. They must sum to 100.
type Weights struct {
	Region  float64 `yaml:"region" json:"region"`
	Climate float64 `yaml:"climate" json:"climate"`
	Culture float64 `yaml:"culture" json:"culture"`
	Hobbies float64 `yaml:"hobbies" json:"hobbies"`
	Admin   float64 `yaml:"admin" json:"admin"`
	Budget  float64 `yaml:"budget" json:"budget"`
}

// For returns the weight of a category.
func (w Weights) For(c models.Category) float64 {
	switch c {
	case models.CategoryRegion:
		return w.Region
	case models.CategoryClimate:
		return w.Climate
	case models.CategoryCulture:
		return w.Culture
	case models.CategoryHobbies:
		return w.Hobbies
	case models.CategoryAdmin:
		return w.Admin
	case models.CategoryBudget:
		return w.Budget
	}
	return 0
}

// Total returns the sum of all category weights.
func (w Weights) Total() float64 {
	return w.Region + w.Climate + w.Culture + w.Hobbies + w.Admin + w.Budget
}

type RegionRules struct {
	CountryPoints    float64 `yaml:"country_points" json:"countryPoints"`
	RegionPoints     float64 `yaml:"region_points" json:"regionPoints"`
	GeographicPoints float64 `yaml:"geographic_points" json:"geographicPoints"`
	VegetationPoints float64 `yaml:"vegetation_points" json:"vegetationPoints"`
	// RelatedCredit is the share awarded for a related but different
	// feature or vegetation type.
	RelatedCredit     float64                        `yaml:"related_credit" json:"relatedCredit"`
	FeatureGroups     [][]models.GeoFeature          `yaml:"feature_groups" json:"featureGroups"`
	RelatedVegetation [][]models.Vegetation          `yaml:"related_vegetation" json:"relatedVegetation"`
	RegionVegetation  map[string][]models.Vegetation `yaml:"region_vegetation" json:"regionVegetation"`
	// CoastalIndicators are region tag fragments that imply a coastline when
	// a candidate carries no geographic features.
	CoastalIndicators []string `yaml:"coastal_indicators" json:"coastalIndicators"`
}

type ClimateRules struct {
	SummerPoints        float64 `yaml:"summer_points" json:"summerPoints"`
	WinterPoints        float64 `yaml:"winter_points" json:"winterPoints"`
	HumidityPoints      float64 `yaml:"humidity_points" json:"humidityPoints"`
	SunshinePoints      float64 `yaml:"sunshine_points" json:"sunshinePoints"`
	PrecipitationPoints float64 `yaml:"precipitation_points" json:"precipitationPoints"`
	SeasonalPoints      float64 `yaml:"seasonal_points" json:"seasonalPoints"`
	AdjacentCredit      float64 `yaml:"adjacent_credit" json:"adjacentCredit"`
	// SummerThresholds are the upper bounds in °C of cool, mild and warm.
	SummerThresholds []float64 `yaml:"summer_thresholds" json:"summerThresholds"`
	// WinterThresholds are the upper bounds in °C of cold and cool.
	WinterThresholds []float64 `yaml:"winter_thresholds" json:"winterThresholds"`
}

type CultureRules struct {
	UrbanRuralPoints float64                                                          `yaml:"urban_rural_points" json:"urbanRuralPoints"`
	PacePoints       float64                                                          `yaml:"pace_points" json:"pacePoints"`
	LanguagePoints   float64                                                          `yaml:"language_points" json:"languagePoints"`
	ExpatPoints      float64                                                          `yaml:"expat_points" json:"expatPoints"`
	AdjacentCredit   float64                                                          `yaml:"adjacent_credit" json:"adjacentCredit"`
	LanguageCredit   map[models.LanguageComfort]map[models.EnglishProficiency]float64 `yaml:"language_credit" json:"languageCredit"`
	// AmenityPoints is the worth of each amenity sub-factor. AmenityCredit[d]
	// is the share earned when the 1-5 importance and the candidate rating
	// differ by d; larger gaps earn nothing.
	AmenityPoints float64   `yaml:"amenity_points" json:"amenityPoints"`
	AmenityCredit []float64 `yaml:"amenity_credit" json:"amenityCredit"`
}

type HobbyRules struct {
	MaxPoints   float64 `yaml:"max_points" json:"maxPoints"`
	Tier1Weight float64 `yaml:"tier1_weight" json:"tier1Weight"`
	Tier2Weight float64 `yaml:"tier2_weight" json:"tier2Weight"`
	// Universal hobbies can be practised anywhere and match every candidate.
	Universal []string `yaml:"universal" json:"universal"`
}

type AdminRules struct {
	HealthcarePoints float64 `yaml:"healthcare_points" json:"healthcarePoints"`
	SafetyPoints     float64 `yaml:"safety_points" json:"safetyPoints"`
	StabilityPoints  float64 `yaml:"stability_points" json:"stabilityPoints"`
	VisaPoints       float64 `yaml:"visa_points" json:"visaPoints"`
	// ModerateFrom and GoodFrom bucket a 0..100 rating into poor, moderate
	// and good.
	ModerateFrom   float64 `yaml:"moderate_from" json:"moderateFrom"`
	GoodFrom       float64 `yaml:"good_from" json:"goodFrom"`
	AdjacentCredit float64 `yaml:"adjacent_credit" json:"adjacentCredit"`
	// LegacyScaleMax is the largest positive rating that is flagged as a
	// probable 0..10 value.
	LegacyScaleMax float64 `yaml:"legacy_scale_max" json:"legacyScaleMax"`
	// VisaPhrases mark a retirement visa in free text. VisaNegations are
	// whole words that cancel a phrase found in the same clause.
	VisaPhrases   []string `yaml:"visa_phrases" json:"visaPhrases"`
	VisaNegations []string `yaml:"visa_negations" json:"visaNegations"`
	// GovernmentPoints scores a 0..100 government efficiency rating with the
	// healthcare buckets. EnvironmentPoints is earned by an environmentally
	// sensitive user when the 1..5 environmental health rating reaches
	// EnvironmentFrom.
	GovernmentPoints  float64 `yaml:"government_points" json:"governmentPoints"`
	EnvironmentPoints float64 `yaml:"environment_points" json:"environmentPoints"`
	EnvironmentFrom   float64 `yaml:"environment_from" json:"environmentFrom"`
}

// BudgetBand awards Points when budget/cost is at least MinRatio.
type BudgetBand struct {
	Label    string  `yaml:"label" json:"label"`
	MinRatio float64 `yaml:"min_ratio" json:"minRatio"`
	Points   float64 `yaml:"points" json:"points"`
}

type BudgetRules struct {
	MaxPoints float64 `yaml:"max_points" json:"maxPoints"`
	// Bands are ordered from the highest MinRatio down; the last band should
	// start at 0.
	Bands              []BudgetBand `yaml:"bands" json:"bands"`
	NeutralPoints      float64      `yaml:"neutral_points" json:"neutralPoints"`
	RentWithinCapBonus float64      `yaml:"rent_within_cap_bonus" json:"rentWithinCapBonus"`
	RentNearCapBonus   float64      `yaml:"rent_near_cap_bonus" json:"rentNearCapBonus"`
	RentNearCapFactor  float64      `yaml:"rent_near_cap_factor" json:"rentNearCapFactor"`
	HealthcareBonus    float64      `yaml:"healthcare_bonus" json:"healthcareBonus"`
	// TaxRatePoints is earned in full when every tax the user is sensitive
	// to grades excellent. TaxBenefitPoints caps what the benefit shares add.
	TaxRatePoints    float64     `yaml:"tax_rate_points" json:"taxRatePoints"`
	TaxBenefitPoints float64     `yaml:"tax_benefit_points" json:"taxBenefitPoints"`
	TaxBands         TaxBands    `yaml:"tax_bands" json:"taxBands"`
	TaxBenefits      TaxBenefits `yaml:"tax_benefits" json:"taxBenefits"`
}

// TaxBands are the upper bounds in percent of the excellent, good, fair and
// high grades. A rate above the last bound grades very high.
type TaxBands struct {
	Income   []float64 `yaml:"income" json:"income"`
	Property []float64 `yaml:"property" json:"property"`
	Sales    []float64 `yaml:"sales" json:"sales"`
}

// TaxBenefits are shares of TaxBenefitPoints.
type TaxBenefits struct {
	Treaty              float64 `yaml:"treaty" json:"treaty"`
	Haven               float64 `yaml:"haven" json:"haven"`
	ForeignIncomeExempt float64 `yaml:"foreign_income_exempt" json:"foreignIncomeExempt"`
}

type BatchRules struct {
	Concurrency int `yaml:"concurrency" json:"concurrency"`
}

// DefaultScoring returns the built-in scoring table.
func DefaultScoring() *Scoring {
	return &Scoring{
		Version: ScoringVersion,
		Weights: Weights{
			Region:  20,
			Climate: 15,
			Culture: 15,
			Hobbies: 10,
			Admin:   20,
			Budget:  20,
		},
		Region: RegionRules{
			CountryPoints:    30,
			RegionPoints:     20,
			GeographicPoints: 30,
			VegetationPoints: 20,
			RelatedCredit:    0.5,
			FeatureGroups: [][]models.GeoFeature{
				{models.GeoFeatureCoastal, models.GeoFeatureIsland, models.GeoFeatureLake, models.GeoFeatureRiver},
				{models.GeoFeatureMountain, models.GeoFeatureValley, models.GeoFeatureForest},
			},
			RelatedVegetation: [][]models.Vegetation{
				{models.VegetationMediterranean, models.VegetationSubtropical},
			},
			RegionVegetation: map[string][]models.Vegetation{
				"mediterranean":  {models.VegetationMediterranean, models.VegetationSubtropical},
				"caribbean":      {models.VegetationTropical},
				"southeast asia": {models.VegetationTropical, models.VegetationSubtropical},
			},
			CoastalIndicators: []string{"coast", "sea", "ocean", "gulf", "beach", "atlantic", "pacific", "mediterranean", "caribbean"},
		},
		Climate: ClimateRules{
			SummerPoints:        25,
			WinterPoints:        25,
			HumidityPoints:      15,
			SunshinePoints:      15,
			PrecipitationPoints: 10,
			SeasonalPoints:      10,
			AdjacentCredit:      0.7,
			SummerThresholds:    []float64{15, 22, 28},
			WinterThresholds:    []float64{5, 12},
		},
		Culture: CultureRules{
			UrbanRuralPoints: 25,
			PacePoints:       25,
			LanguagePoints:   25,
			ExpatPoints:      25,
			AdjacentCredit:   0.5,
			LanguageCredit: map[models.LanguageComfort]map[models.EnglishProficiency]float64{
				models.LanguageEnglishOnly: {
					models.EnglishNative:   1,
					models.EnglishHigh:     0.75,
					models.EnglishModerate: 0.5,
					models.EnglishLow:      0,
				},
				models.LanguageWillingToLearn: {
					models.EnglishNative:   1,
					models.EnglishHigh:     1,
					models.EnglishModerate: 0.75,
					models.EnglishLow:      0.5,
				},
				models.LanguageComfortable: {
					models.EnglishNative:   1,
					models.EnglishHigh:     1,
					models.EnglishModerate: 1,
					models.EnglishLow:      1,
				},
			},
			AmenityPoints: 10,
			AmenityCredit: []float64{1, 0.7, 0.4},
		},
		Hobbies: HobbyRules{
			MaxPoints:   100,
			Tier1Weight: 1,
			Tier2Weight: 2,
			Universal: []string{
				"walking", "reading", "cooking",
				"creative writing", "crochet", "crossword puzzles", "drawing", "embroidery",
				"journaling", "jigsaw puzzles", "herb gardening", "genealogy",
				"digital photography", "film appreciation", "jazz appreciation", "jewelry making",
			},
		},
		Admin: AdminRules{
			HealthcarePoints:  35,
			SafetyPoints:      35,
			StabilityPoints:   10,
			VisaPoints:        20,
			ModerateFrom:      40,
			GoodFrom:          70,
			AdjacentCredit:    0.5,
			LegacyScaleMax:    10,
			VisaPhrases:       []string{"retirement visa available", "retirement visa", "retiree visa", "pensioner visa"},
			VisaNegations:     []string{"no", "not", "none", "never", "cannot", "unavailable", "isn't", "aren't", "isnt", "arent"},
			GovernmentPoints:  15,
			EnvironmentPoints: 15,
			EnvironmentFrom:   4,
		},
		Budget: BudgetRules{
			MaxPoints: 100,
			Bands: []BudgetBand{
				{Label: "full", MinRatio: 1.0, Points: 70},
				{Label: "high", MinRatio: 0.8, Points: 55},
				{Label: "moderate", MinRatio: 0.6, Points: 35},
				{Label: "low", MinRatio: 0, Points: 10},
			},
			NeutralPoints:      50,
			RentWithinCapBonus: 20,
			RentNearCapBonus:   10,
			RentNearCapFactor:  1.25,
			HealthcareBonus:    10,
			TaxRatePoints:      12,
			TaxBenefitPoints:   3,
			TaxBands: TaxBands{
				Income:   []float64{10, 20, 30, 40},
				Property: []float64{1, 2, 3, 4},
				Sales:    []float64{10, 17, 22, 27},
			},
			TaxBenefits: TaxBenefits{
				Treaty:              0.4,
				Haven:               0.5,
				ForeignIncomeExempt: 0.3,
			},
		},
		Batch: BatchRules{
			Concurrency: 8,
		},
	}
}

// LoadScoring reads a YAML scoring table. Keys absent from the file keep
// their built-in default.
func LoadScoring(path string) (*Scoring, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scoring config: %w", err)
	}
	return ParseScoring(b)
}

// ParseScoring decodes a YAML scoring table on top of the defaults. A table
// map present in the file replaces the default map instead of merging into
// it, so entries can be removed.
func ParseScoring(b []byte) (*Scoring, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse scoring config: %w", err)
	}

	s := DefaultScoring()
	if doc.Kind == 0 {
		return s, nil
	}
	if hasKey(&doc, "region", "region_vegetation") {
		s.Region.RegionVegetation = nil
	}
	if hasKey(&doc, "culture", "language_credit") {
		s.Culture.LanguageCredit = nil
	}
	if err := doc.Decode(s); err != nil {
		return nil, fmt.Errorf("failed to parse scoring config: %w", err)
	}
	return s, nil
}

// hasKey reports whether the nested mapping key path exists in a document.
func hasKey(doc *yaml.Node, path ...string) bool {
	n := doc
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	for _, key := range path {
		if n.Kind != yaml.MappingNode {
			return false
		}
		var next *yaml.Node
		for i := 0; i+1 < len(n.Content); i += 2 {
			if n.Content[i].Value == key {
				next = n.Content[i+1]
			}
		}
		if next == nil {
			return false
		}
		n = next
	}
	return true
}

// Validation collects problems found in a scoring table.
type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}

func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}

// OK reports whether the table has no errors.
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// Err returns nil or an ErrInvalidScoring listing every error.
func (v Validation) Err() error {
	if v.OK() {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidScoring, strings.Join(v.Errors, "; "))
}

// Validate checks the table for internal consistency.
func (s *Scoring) Validate() Validation {
	var res Validation

	if strings.TrimSpace(s.Version) == "" {
		res.addErr("version must be set")
	}

	// ---- weights ----
	for _, c := range models.Categories() {
		if s.Weights.For(c) < 0 {
			res.addErr("weights.%s must be >= 0", c)
		}
	}
	if total := s.Weights.Total(); math.Abs(total-100) > 1e-9 {
		res.addErr("weights must sum to 100, got %g", total)
	}

	// ---- points ----
	points := map[string]float64{
		"region.country_points":        s.Region.CountryPoints,
		"region.region_points":         s.Region.RegionPoints,
		"region.geographic_points":     s.Region.GeographicPoints,
		"region.vegetation_points":     s.Region.VegetationPoints,
		"climate.summer_points":        s.Climate.SummerPoints,
		"climate.winter_points":        s.Climate.WinterPoints,
		"climate.humidity_points":      s.Climate.HumidityPoints,
		"climate.sunshine_points":      s.Climate.SunshinePoints,
		"climate.precipitation_points": s.Climate.PrecipitationPoints,
		"climate.seasonal_points":      s.Climate.SeasonalPoints,
		"culture.urban_rural_points":   s.Culture.UrbanRuralPoints,
		"culture.pace_points":          s.Culture.PacePoints,
		"culture.language_points":      s.Culture.LanguagePoints,
		"culture.expat_points":         s.Culture.ExpatPoints,
		"culture.amenity_points":       s.Culture.AmenityPoints,
		"hobbies.max_points":           s.Hobbies.MaxPoints,
		"admin.healthcare_points":      s.Admin.HealthcarePoints,
		"admin.safety_points":          s.Admin.SafetyPoints,
		"admin.stability_points":       s.Admin.StabilityPoints,
		"admin.visa_points":            s.Admin.VisaPoints,
		"admin.government_points":      s.Admin.GovernmentPoints,
		"admin.environment_points":     s.Admin.EnvironmentPoints,
		"budget.max_points":            s.Budget.MaxPoints,
		"budget.tax_rate_points":       s.Budget.TaxRatePoints,
		"budget.tax_benefit_points":    s.Budget.TaxBenefitPoints,
	}
	for _, name := range sortedNames(points) {
		if points[name] < 0 {
			res.addErr("%s must be >= 0", name)
		}
	}

	// ---- partial credits ----
	credits := map[string]float64{
		"region.related_credit":                     s.Region.RelatedCredit,
		"climate.adjacent_credit":                   s.Climate.AdjacentCredit,
		"culture.adjacent_credit":                   s.Culture.AdjacentCredit,
		"admin.adjacent_credit":                     s.Admin.AdjacentCredit,
		"budget.tax_benefits.treaty":                s.Budget.TaxBenefits.Treaty,
		"budget.tax_benefits.haven":                 s.Budget.TaxBenefits.Haven,
		"budget.tax_benefits.foreign_income_exempt": s.Budget.TaxBenefits.ForeignIncomeExempt,
	}
	for _, name := range sortedNames(credits) {
		if c := credits[name]; c < 0 || c > 1 {
			res.addErr("%s must be within [0, 1], got %g", name, c)
		}
	}

	// ---- region tables ----
	for i, group := range s.Region.FeatureGroups {
		for _, f := range group {
			if !f.IsValid() {
				res.addWarn("region.feature_groups[%d] has unknown feature %q", i, f)
			}
		}
	}
	for i, group := range s.Region.RelatedVegetation {
		for _, v := range group {
			if !v.IsValid() {
				res.addWarn("region.related_vegetation[%d] has unknown vegetation %q", i, v)
			}
		}
	}
	for region, veg := range s.Region.RegionVegetation {
		if region != strings.ToLower(region) {
			res.addWarn("region.region_vegetation key %q should be lower case", region)
		}
		for _, v := range veg {
			if !v.IsValid() {
				res.addWarn("region.region_vegetation[%s] has unknown vegetation %q", region, v)
			}
		}
	}

	// ---- climate bands ----
	checkThresholds(&res, "climate.summer_thresholds", s.Climate.SummerThresholds, len(models.ValidSummerClimates())-1)
	checkThresholds(&res, "climate.winter_thresholds", s.Climate.WinterThresholds, len(models.ValidWinterClimates())-1)

	// ---- language table ----
	for _, comfort := range models.ValidLanguageComforts() {
		row, ok := s.Culture.LanguageCredit[comfort]
		if !ok {
			res.addErr("culture.language_credit is missing %q", comfort)
			continue
		}
		for _, level := range models.ValidEnglishProficiencies() {
			c, ok := row[level]
			if !ok {
				res.addErr("culture.language_credit[%s] is missing %q", comfort, level)
			} else if c < 0 || c > 1 {
				res.addErr("culture.language_credit[%s][%s] must be within [0, 1]", comfort, level)
			}
		}
	}

	// ---- amenities ----
	for i, c := range s.Culture.AmenityCredit {
		if c < 0 || c > 1 {
			res.addErr("culture.amenity_credit[%d] must be within [0, 1], got %g", i, c)
		} else if i > 0 && c > s.Culture.AmenityCredit[i-1] {
			res.addWarn("culture.amenity_credit[%d] rewards a larger gap more than a smaller one", i)
		}
	}

	// ---- hobbies ----
	if s.Hobbies.Tier1Weight <= 0 || s.Hobbies.Tier2Weight <= 0 {
		res.addErr("hobbies tier weights must be > 0")
	} else if s.Hobbies.Tier2Weight < s.Hobbies.Tier1Weight {
		res.addWarn("hobbies.tier2_weight (%g) is below tier1_weight (%g)", s.Hobbies.Tier2Weight, s.Hobbies.Tier1Weight)
	}

	// ---- admin buckets ----
	if s.Admin.ModerateFrom <= 0 || s.Admin.GoodFrom >= 100 || s.Admin.ModerateFrom >= s.Admin.GoodFrom {
		res.addErr("admin buckets need 0 < moderate_from < good_from < 100")
	}
	if s.Admin.LegacyScaleMax < 0 || s.Admin.LegacyScaleMax >= s.Admin.ModerateFrom {
		res.addWarn("admin.legacy_scale_max (%g) overlaps the moderate bucket", s.Admin.LegacyScaleMax)
	}
	if s.Admin.EnvironmentFrom < 1 || s.Admin.EnvironmentFrom > 5 {
		res.addErr("admin.environment_from must be within [1, 5]")
	}
	if len(s.Admin.VisaPhrases) == 0 {
		res.addWarn("admin.visa_phrases is empty; visa text will never match")
	}
	for _, w := range s.Admin.VisaNegations {
		if strings.ContainsAny(w, " \t") || w != strings.ToLower(w) {
			res.addWarn("admin.visa_negations entry %q should be a single lower case word", w)
		}
	}

	// ---- budget ----
	if len(s.Budget.Bands) == 0 {
		res.addErr("budget.bands must not be empty")
	}
	for i, b := range s.Budget.Bands {
		if b.Points < 0 || b.Points > s.Budget.MaxPoints {
			res.addErr("budget.bands[%d].points must be within [0, max_points]", i)
		}
		if i > 0 && b.MinRatio >= s.Budget.Bands[i-1].MinRatio {
			res.addErr("budget.bands must be ordered by descending min_ratio")
		}
	}
	if n := len(s.Budget.Bands); n > 0 && s.Budget.Bands[n-1].MinRatio > 0 {
		res.addWarn("budget.bands does not cover ratios below %g", s.Budget.Bands[n-1].MinRatio)
	}
	if s.Budget.NeutralPoints < 0 || s.Budget.NeutralPoints > s.Budget.MaxPoints {
		res.addErr("budget.neutral_points must be within [0, max_points]")
	}
	if s.Budget.RentWithinCapBonus < 0 || s.Budget.RentNearCapBonus < 0 || s.Budget.HealthcareBonus < 0 {
		res.addErr("budget bonuses must be >= 0")
	}
	if s.Budget.RentNearCapFactor < 1 {
		res.addErr("budget.rent_near_cap_factor must be >= 1")
	}
	checkThresholds(&res, "budget.tax_bands.income", s.Budget.TaxBands.Income, 4)
	checkThresholds(&res, "budget.tax_bands.property", s.Budget.TaxBands.Property, 4)
	checkThresholds(&res, "budget.tax_bands.sales", s.Budget.TaxBands.Sales, 4)

	// ---- batch ----
	if s.Batch.Concurrency < 1 {
		res.addErr("batch.concurrency must be >= 1")
	}

	return res
}

func checkThresholds(res *Validation, name string, ts []float64, want int) {
	if len(ts) != want {
		res.addErr("%s needs %d values, got %d", name, want, len(ts))
		return
	}
	for i := 1; i < len(ts); i++ {
		if ts[i] <= ts[i-1] {
			res.addErr("%s must be strictly ascending", name)
			return
		}
	}
}

func sortedNames(m map[string]float64) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}
