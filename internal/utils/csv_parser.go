package utils

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"retirement-match-engine/internal/models"
)

// CSVParser errors
var (
	ErrEmptyCSV       = errors.New("CSV content is empty")
	ErrMissingColumns = errors.New("missing required columns")
	ErrNoDataRows     = errors.New("CSV file contains no data rows")
	ErrInvalidRowData = errors.New("invalid row data")
)

// RequiredColumns defines the columns that must be present in the CSV.
var RequiredColumns = []string{"id"}

// ColumnAliases maps alternative column names to standard names. Keys are
// compared after lowercasing and removing spaces, underscores and dashes, so
// "Town Name", "town_name" and "townName" are the same header.
var ColumnAliases = map[string]string{
	"townid":         "id",
	"city_id":        "id",
	"townname":       "name",
	"town":           "name",
	"city":           "name",
	"regions":        "region_tags",
	"region":         "region_tags",
	"features":       "geographic_features",
	"geography":      "geographic_features",
	"vegetation":     "vegetation_types",
	"summertemp":     "avg_temp_summer",
	"wintertemp":     "avg_temp_winter",
	"summerclimate":  "summer_climate_actual",
	"winterclimate":  "winter_climate_actual",
	"humidity":       "humidity_level_actual",
	"sunshine":       "sunshine_level_actual",
	"precipitation":  "precipitation_level_actual",
	"seasons":        "seasonal_variation_actual",
	"pace":           "pace_of_life_actual",
	"paceoflife":     "pace_of_life_actual",
	"expats":         "expat_community_size",
	"character":      "urban_rural_character",
	"english":        "english_proficiency",
	"language":       "primary_language",
	"hobbies":        "supported_hobbies",
	"activities":     "supported_hobbies",
	"healthcare":     "healthcare_score",
	"safety":         "safety_score",
	"stability":      "political_stability_rating",
	"visa":           "visa_requirements_text",
	"retirementvisa": "retirement_visa_available",
	"costofliving":   "cost_of_living_usd",
	"monthlycost":    "cost_of_living_usd",
	"rent":           "typical_rent_1bed",
	"rent1bed":       "typical_rent_1bed",
	"healthcarecost": "healthcare_cost_monthly",
	"restaurants":    "restaurants_rating",
	"dining":         "restaurants_rating",
	"nightlife":      "nightlife_rating",
	"events":         "cultural_events_rating",
	"museums":        "museums_rating",
	"government":     "government_efficiency_rating",
	"environment":    "environmental_health_rating",
	"incometax":      "income_tax_rate_pct",
	"propertytax":    "property_tax_rate_pct",
	"salestax":       "sales_tax_rate_pct",
	"vat":            "sales_tax_rate_pct",
	"taxtreaty":      "tax_treaty_us",
	"taxhaven":       "tax_haven_status",
}

type columnSetter func(c *models.RawCandidate, v string) error

// candidateColumns are the standard columns, named like the towns table.
var candidateColumns = map[string]columnSetter{
	"id":                           text(func(c *models.RawCandidate) *string { return &c.ID }),
	"name":                         text(func(c *models.RawCandidate) *string { return &c.Name }),
	"country":                      text(func(c *models.RawCandidate) *string { return &c.Country }),
	"region_tags":                  list(func(c *models.RawCandidate) *[]string { return &c.RegionTags }),
	"geographic_features":          list(func(c *models.RawCandidate) *[]string { return &c.GeographicFeatures }),
	"vegetation_types":             list(func(c *models.RawCandidate) *[]string { return &c.VegetationTypes }),
	"avg_temp_summer":              number(func(c *models.RawCandidate) **float64 { return &c.AvgTempSummer }),
	"avg_temp_winter":              number(func(c *models.RawCandidate) **float64 { return &c.AvgTempWinter }),
	"summer_climate_actual":        text(func(c *models.RawCandidate) *string { return &c.SummerClimateActual }),
	"winter_climate_actual":        text(func(c *models.RawCandidate) *string { return &c.WinterClimateActual }),
	"humidity_level_actual":        text(func(c *models.RawCandidate) *string { return &c.HumidityLevelActual }),
	"sunshine_level_actual":        text(func(c *models.RawCandidate) *string { return &c.SunshineLevelActual }),
	"precipitation_level_actual":   text(func(c *models.RawCandidate) *string { return &c.PrecipitationLevelActual }),
	"seasonal_variation_actual":    text(func(c *models.RawCandidate) *string { return &c.SeasonalVariationActual }),
	"pace_of_life_actual":          text(func(c *models.RawCandidate) *string { return &c.PaceOfLifeActual }),
	"expat_community_size":         text(func(c *models.RawCandidate) *string { return &c.ExpatCommunitySize }),
	"urban_rural_character":        text(func(c *models.RawCandidate) *string { return &c.UrbanRuralCharacter }),
	"english_proficiency":          text(func(c *models.RawCandidate) *string { return &c.EnglishProficiency }),
	"primary_language":             text(func(c *models.RawCandidate) *string { return &c.PrimaryLanguage }),
	"restaurants_rating":           number(func(c *models.RawCandidate) **float64 { return &c.RestaurantsRating }),
	"nightlife_rating":             number(func(c *models.RawCandidate) **float64 { return &c.NightlifeRating }),
	"cultural_events_rating":       number(func(c *models.RawCandidate) **float64 { return &c.CulturalEventsRating }),
	"museums_rating":               number(func(c *models.RawCandidate) **float64 { return &c.MuseumsRating }),
	"supported_hobbies":            list(func(c *models.RawCandidate) *[]string { return &c.SupportedHobbies }),
	"healthcare_score":             number(func(c *models.RawCandidate) **float64 { return &c.HealthcareScore }),
	"safety_score":                 number(func(c *models.RawCandidate) **float64 { return &c.SafetyScore }),
	"political_stability_rating":   number(func(c *models.RawCandidate) **float64 { return &c.PoliticalStabilityRating }),
	"government_efficiency_rating": number(func(c *models.RawCandidate) **float64 { return &c.GovernmentEfficiencyRating }),
	"visa_requirements_text":       text(func(c *models.RawCandidate) *string { return &c.VisaRequirementsText }),
	"retirement_visa_available":    flag(func(c *models.RawCandidate) **bool { return &c.RetirementVisaAvailable }),
	"environmental_health_rating":  number(func(c *models.RawCandidate) **float64 { return &c.EnvironmentalHealthRating }),
	"rating_scale":                 integer(func(c *models.RawCandidate) **int { return &c.RatingScale }),
	"cost_of_living_usd":           number(func(c *models.RawCandidate) **float64 { return &c.CostOfLivingUSD }),
	"typical_rent_1bed":            number(func(c *models.RawCandidate) **float64 { return &c.TypicalRent1Bed }),
	"healthcare_cost_monthly":      number(func(c *models.RawCandidate) **float64 { return &c.HealthcareCostMonthly }),
	"income_tax_rate_pct":          number(func(c *models.RawCandidate) **float64 { return &c.IncomeTaxRatePct }),
	"property_tax_rate_pct":        number(func(c *models.RawCandidate) **float64 { return &c.PropertyTaxRatePct }),
	"sales_tax_rate_pct":           number(func(c *models.RawCandidate) **float64 { return &c.SalesTaxRatePct }),
	"tax_treaty_us":                flag(func(c *models.RawCandidate) **bool { return &c.TaxTreatyUS }),
	"tax_haven_status":             flag(func(c *models.RawCandidate) **bool { return &c.TaxHavenStatus }),
	"foreign_income_taxed":         flag(func(c *models.RawCandidate) **bool { return &c.ForeignIncomeTaxed }),
}

// CSVParser handles parsing of candidate town CSV files.
type CSVParser struct {
	columnMapping map[string]int
	unknown       []string
}

// NewCSVParser creates a new CSV parser instance.
func NewCSVParser() *CSVParser {
	return &CSVParser{columnMapping: make(map[string]int)}
}

// UnknownColumns returns the headers of the last parse that matched no
// standard column.
func (p *CSVParser) UnknownColumns() []string {
	return p.unknown
}

// ParseCandidates parses CSV content into raw candidates. Rows that fail to
// parse are reported with their line number and skipped.
func (p *CSVParser) ParseCandidates(content string) ([]models.RawCandidate, []error) {
	if strings.TrimSpace(content) == "" {
		return nil, []error{ErrEmptyCSV}
	}

	reader := csv.NewReader(strings.NewReader(content))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, []error{fmt.Errorf("failed to read header: %w", err)}
	}
	if err := p.buildColumnMapping(header); err != nil {
		return nil, []error{err}
	}

	var candidates []models.RawCandidate
	var parseErrors []error

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// csv.ParseError already carries the line number
			parseErrors = append(parseErrors, err)
			continue
		}
		if blank(record) {
			continue
		}

		c, err := p.parseRow(record)
		if err != nil {
			line, _ := reader.FieldPos(0)
			parseErrors = append(parseErrors, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		candidates = append(candidates, c)
	}

	if len(candidates) == 0 {
		return nil, append([]error{ErrNoDataRows}, parseErrors...)
	}
	return candidates, parseErrors
}

// buildColumnMapping maps standard column names to their indices.
func (p *CSVParser) buildColumnMapping(header []string) error {
	p.columnMapping = make(map[string]int)
	p.unknown = nil

	for i, col := range header {
		name, ok := standardColumn(col)
		if !ok {
			p.unknown = append(p.unknown, strings.TrimSpace(col))
			continue
		}
		if _, dup := p.columnMapping[name]; !dup {
			p.columnMapping[name] = i
		}
	}

	var missing []string
	for _, required := range RequiredColumns {
		if _, ok := p.columnMapping[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return nil
}

func (p *CSVParser) parseRow(record []string) (models.RawCandidate, error) {
	var c models.RawCandidate
	for column, idx := range p.columnMapping {
		if idx >= len(record) {
			continue
		}
		value := strings.TrimSpace(record[idx])
		if value == "" {
			continue
		}
		if err := candidateColumns[column](&c, value); err != nil {
			return models.RawCandidate{}, fmt.Errorf("invalid %s: %w", column, err)
		}
	}
	if c.ID == "" {
		return models.RawCandidate{}, fmt.Errorf("%w: id is empty", ErrInvalidRowData)
	}
	return c, nil
}

// standardColumn resolves a header to a standard column name.
func standardColumn(header string) (string, bool) {
	key := squash(header)
	for name := range candidateColumns {
		if squash(name) == key {
			return name, true
		}
	}
	for alias, name := range ColumnAliases {
		if squash(alias) == key {
			return name, true
		}
	}
	return "", false
}

func squash(s string) string {
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(strings.ToLower(strings.TrimSpace(s)))
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func text(field func(*models.RawCandidate) *string) columnSetter {
	return func(c *models.RawCandidate, v string) error {
		*field(c) = v
		return nil
	}
}

// list splits a multi-valued cell on semicolons, pipes or commas.
func list(field func(*models.RawCandidate) *[]string) columnSetter {
	return func(c *models.RawCandidate, v string) error {
		parts := strings.FieldsFunc(v, func(r rune) bool { return r == ';' || r == '|' || r == ',' })
		for _, part := range parts {
			if part = strings.TrimSpace(part); part != "" {
				*field(c) = append(*field(c), part)
			}
		}
		return nil
	}
}

func number(field func(*models.RawCandidate) **float64) columnSetter {
	return func(c *models.RawCandidate, v string) error {
		f, err := parseFloat(v)
		if err != nil {
			return err
		}
		*field(c) = &f
		return nil
	}
}

func integer(field func(*models.RawCandidate) **int) columnSetter {
	return func(c *models.RawCandidate, v string) error {
		n, err := parseInt(v)
		if err != nil {
			return err
		}
		*field(c) = &n
		return nil
	}
}

func flag(field func(*models.RawCandidate) **bool) columnSetter {
	return func(c *models.RawCandidate, v string) error {
		var b bool
		switch strings.ToLower(v) {
		case "true", "yes", "y", "1":
			b = true
		case "false", "no", "n", "0":
			b = false
		default:
			return fmt.Errorf("not a boolean: %q", v)
		}
		*field(c) = &b
		return nil
	}
}

// parseFloat parses a string to float64, handling common formats.
func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, errors.New("empty value")
	}

	// Remove thousands separators and currency symbols
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimLeft(s, "$€£")
	s = strings.TrimSpace(s)

	return strconv.ParseFloat(s, 64)
}

// parseInt parses a string to int, handling float strings such as "10.0".
func parseInt(s string) (int, error) {
	if s == "" {
		return 0, errors.New("empty value")
	}

	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if strings.Contains(s, ".") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, err
		}
		return int(f), nil
	}

	return strconv.Atoi(s)
}

// ValidateCSVStructure performs a quick validation of CSV structure without full parsing.
func ValidateCSVStructure(content string) (*CSVValidationResult, error) {
	result := &CSVValidationResult{
		Columns:        []string{},
		MissingColumns: []string{},
		UnknownColumns: []string{},
		Errors:         []string{},
	}

	if strings.TrimSpace(content) == "" {
		result.Errors = append(result.Errors, "empty file")
		return result, nil
	}

	reader := csv.NewReader(strings.NewReader(content))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("failed to read header: %v", err))
		return result, nil
	}

	found := make(map[string]bool)
	for _, col := range header {
		result.Columns = append(result.Columns, col)
		if name, ok := standardColumn(col); ok {
			found[name] = true
		} else {
			result.UnknownColumns = append(result.UnknownColumns, col)
		}
	}
	for _, required := range RequiredColumns {
		if !found[required] {
			result.MissingColumns = append(result.MissingColumns, required)
		}
	}

	for {
		_, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row error: %v", err))
			continue
		}
		result.RowCount++
	}

	result.Valid = len(result.MissingColumns) == 0 && result.RowCount > 0
	return result, nil
}

// CSVValidationResult contains the results of CSV validation.
type CSVValidationResult struct {
	Valid          bool     `json:"valid"`
	RowCount       int      `json:"rowCount"`
	Columns        []string `json:"columns"`
	MissingColumns []string `json:"missingColumns"`
	UnknownColumns []string `json:"unknownColumns"`
	Errors         []string `json:"errors"`
}
