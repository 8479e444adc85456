package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"retirement-match-engine/internal/models"
)

// townColumns selects every column of RawCandidate. Text columns are
// coalesced so NULLs scan into plain strings.
const townColumns = `
	id,
	COALESCE(name, '') AS name,
	COALESCE(country, '') AS country,
	region_tags,
	geographic_features,
	vegetation_types,
	avg_temp_summer::float8 AS avg_temp_summer,
	avg_temp_winter::float8 AS avg_temp_winter,
	COALESCE(summer_climate_actual, '') AS summer_climate_actual,
	COALESCE(winter_climate_actual, '') AS winter_climate_actual,
	COALESCE(humidity_level_actual, '') AS humidity_level_actual,
	COALESCE(sunshine_level_actual, '') AS sunshine_level_actual,
	COALESCE(precipitation_level_actual, '') AS precipitation_level_actual,
	COALESCE(seasonal_variation_actual, '') AS seasonal_variation_actual,
	COALESCE(pace_of_life_actual, '') AS pace_of_life_actual,
	COALESCE(expat_community_size, '') AS expat_community_size,
	COALESCE(urban_rural_character, '') AS urban_rural_character,
	COALESCE(english_proficiency, '') AS english_proficiency,
	COALESCE(primary_language, '') AS primary_language,
	restaurants_rating::float8 AS restaurants_rating,
	nightlife_rating::float8 AS nightlife_rating,
	cultural_events_rating::float8 AS cultural_events_rating,
	museums_rating::float8 AS museums_rating,
	supported_hobbies,
	healthcare_score::float8 AS healthcare_score,
	safety_score::float8 AS safety_score,
	political_stability_rating::float8 AS political_stability_rating,
	government_efficiency_rating::float8 AS government_efficiency_rating,
	COALESCE(visa_requirements_text, '') AS visa_requirements_text,
	retirement_visa_available,
	environmental_health_rating::float8 AS environmental_health_rating,
	rating_scale,
	cost_of_living_usd::float8 AS cost_of_living_usd,
	typical_rent_1bed::float8 AS typical_rent_1bed,
	healthcare_cost_monthly::float8 AS healthcare_cost_monthly,
	income_tax_rate_pct::float8 AS income_tax_rate_pct,
	property_tax_rate_pct::float8 AS property_tax_rate_pct,
	sales_tax_rate_pct::float8 AS sales_tax_rate_pct,
	tax_treaty_us,
	tax_haven_status,
	foreign_income_taxed`

// TownRepository handles town database operations.
type TownRepository struct {
	db *DB
}

// NewTownRepository creates a new town repository.
func NewTownRepository(db *DB) *TownRepository {
	return &TownRepository{db: db}
}

// GetAll retrieves every town ordered by ID.
func (r *TownRepository) GetAll(ctx context.Context) ([]models.RawCandidate, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+townColumns+` FROM towns ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query towns: %w", err)
	}

	towns, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.RawCandidate])
	if err != nil {
		return nil, fmt.Errorf("failed to scan towns: %w", err)
	}
	return towns, nil
}

// GetByIDs retrieves towns by ID. Unknown IDs are skipped.
func (r *TownRepository) GetByIDs(ctx context.Context, ids []string) ([]models.RawCandidate, error) {
	if len(ids) == 0 {
		return []models.RawCandidate{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `SELECT `+townColumns+` FROM towns WHERE id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query towns: %w", err)
	}

	towns, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.RawCandidate])
	if err != nil {
		return nil, fmt.Errorf("failed to scan towns: %w", err)
	}
	return towns, nil
}

const upsertTownSQL = `
	INSERT INTO towns (id, name, country, region_tags, geographic_features, vegetation_types,
		avg_temp_summer, avg_temp_winter, summer_climate_actual, winter_climate_actual,
		humidity_level_actual, sunshine_level_actual, precipitation_level_actual, seasonal_variation_actual,
		pace_of_life_actual, expat_community_size, urban_rural_character, english_proficiency, primary_language,
		supported_hobbies, healthcare_score, safety_score, political_stability_rating,
		visa_requirements_text, retirement_visa_available, rating_scale,
		cost_of_living_usd, typical_rent_1bed, healthcare_cost_monthly, updated_at,
		restaurants_rating, nightlife_rating, cultural_events_rating, museums_rating,
		government_efficiency_rating, environmental_health_rating,
		income_tax_rate_pct, property_tax_rate_pct, sales_tax_rate_pct,
		tax_treaty_us, tax_haven_status, foreign_income_taxed)
	VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6,
		$7, $8, NULLIF($9, ''), NULLIF($10, ''),
		NULLIF($11, ''), NULLIF($12, ''), NULLIF($13, ''), NULLIF($14, ''),
		NULLIF($15, ''), NULLIF($16, ''), NULLIF($17, ''), NULLIF($18, ''), NULLIF($19, ''),
		$20, $21, $22, $23,
		NULLIF($24, ''), $25, $26,
		$27, $28, $29, $30,
		$31, $32, $33, $34,
		$35, $36,
		$37, $38, $39,
		$40, $41, $42)
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		country = EXCLUDED.country,
		region_tags = EXCLUDED.region_tags,
		geographic_features = EXCLUDED.geographic_features,
		vegetation_types = EXCLUDED.vegetation_types,
		avg_temp_summer = EXCLUDED.avg_temp_summer,
		avg_temp_winter = EXCLUDED.avg_temp_winter,
		summer_climate_actual = EXCLUDED.summer_climate_actual,
		winter_climate_actual = EXCLUDED.winter_climate_actual,
		humidity_level_actual = EXCLUDED.humidity_level_actual,
		sunshine_level_actual = EXCLUDED.sunshine_level_actual,
		precipitation_level_actual = EXCLUDED.precipitation_level_actual,
		seasonal_variation_actual = EXCLUDED.seasonal_variation_actual,
		pace_of_life_actual = EXCLUDED.pace_of_life_actual,
		expat_community_size = EXCLUDED.expat_community_size,
		urban_rural_character = EXCLUDED.urban_rural_character,
		english_proficiency = EXCLUDED.english_proficiency,
		primary_language = EXCLUDED.primary_language,
		supported_hobbies = EXCLUDED.supported_hobbies,
		healthcare_score = EXCLUDED.healthcare_score,
		safety_score = EXCLUDED.safety_score,
		political_stability_rating = EXCLUDED.political_stability_rating,
		visa_requirements_text = EXCLUDED.visa_requirements_text,
		retirement_visa_available = EXCLUDED.retirement_visa_available,
		rating_scale = EXCLUDED.rating_scale,
		cost_of_living_usd = EXCLUDED.cost_of_living_usd,
		typical_rent_1bed = EXCLUDED.typical_rent_1bed,
		healthcare_cost_monthly = EXCLUDED.healthcare_cost_monthly,
		restaurants_rating = EXCLUDED.restaurants_rating,
		nightlife_rating = EXCLUDED.nightlife_rating,
		cultural_events_rating = EXCLUDED.cultural_events_rating,
		museums_rating = EXCLUDED.museums_rating,
		government_efficiency_rating = EXCLUDED.government_efficiency_rating,
		environmental_health_rating = EXCLUDED.environmental_health_rating,
		income_tax_rate_pct = EXCLUDED.income_tax_rate_pct,
		property_tax_rate_pct = EXCLUDED.property_tax_rate_pct,
		sales_tax_rate_pct = EXCLUDED.sales_tax_rate_pct,
		tax_treaty_us = EXCLUDED.tax_treaty_us,
		tax_haven_status = EXCLUDED.tax_haven_status,
		foreign_income_taxed = EXCLUDED.foreign_income_taxed,
		updated_at = EXCLUDED.updated_at`

// UpsertResult contains the results of a bulk upsert.
type UpsertResult struct {
	UpsertedCount int      `json:"upsertedCount"`
	FailedCount   int      `json:"failedCount"`
	Errors        []string `json:"errors,omitempty"`
}

// Upsert inserts or replaces towns in one transaction. Each row runs in its
// own savepoint so a rejected row does not abort the others.
func (r *TownRepository) Upsert(ctx context.Context, towns []models.RawCandidate) (*UpsertResult, error) {
	result := &UpsertResult{Errors: []string{}}
	now := time.Now().UTC()

	err := r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		for i := range towns {
			t := &towns[i]
			name := t.Name
			if name == "" {
				name = t.ID
			}

			sp, err := tx.Begin(ctx)
			if err != nil {
				return fmt.Errorf("failed to open savepoint: %w", err)
			}
			_, err = sp.Exec(ctx, upsertTownSQL,
				t.ID, name, t.Country, t.RegionTags, t.GeographicFeatures, t.VegetationTypes,
				t.AvgTempSummer, t.AvgTempWinter, t.SummerClimateActual, t.WinterClimateActual,
				t.HumidityLevelActual, t.SunshineLevelActual, t.PrecipitationLevelActual, t.SeasonalVariationActual,
				t.PaceOfLifeActual, t.ExpatCommunitySize, t.UrbanRuralCharacter, t.EnglishProficiency, t.PrimaryLanguage,
				t.SupportedHobbies, t.HealthcareScore, t.SafetyScore, t.PoliticalStabilityRating,
				t.VisaRequirementsText, t.RetirementVisaAvailable, t.RatingScale,
				t.CostOfLivingUSD, t.TypicalRent1Bed, t.HealthcareCostMonthly, now,
				t.RestaurantsRating, t.NightlifeRating, t.CulturalEventsRating, t.MuseumsRating,
				t.GovernmentEfficiencyRating, t.EnvironmentalHealthRating,
				t.IncomeTaxRatePct, t.PropertyTaxRatePct, t.SalesTaxRatePct,
				t.TaxTreatyUS, t.TaxHavenStatus, t.ForeignIncomeTaxed,
			)
			if err != nil {
				_ = sp.Rollback(ctx)
				result.FailedCount++
				result.Errors = append(result.Errors, fmt.Sprintf("town %s: %v", t.ID, err))
				continue
			}
			if err := sp.Commit(ctx); err != nil {
				return fmt.Errorf("failed to release savepoint: %w", err)
			}
			result.UpsertedCount++
		}
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("bulk upsert failed: %w", err)
	}
	return result, nil
}
