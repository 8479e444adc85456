package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"retirement-match-engine/internal/models"
)

const preferenceColumns = `
	user_id,
	countries,
	regions,
	geographic_features,
	vegetation_types,
	COALESCE(summer_climate_pref, '') AS summer_climate_pref,
	COALESCE(winter_climate_pref, '') AS winter_climate_pref,
	COALESCE(humidity_pref, '') AS humidity_pref,
	COALESCE(sunshine_pref, '') AS sunshine_pref,
	COALESCE(precipitation_pref, '') AS precipitation_pref,
	COALESCE(seasonal_variation_pref, '') AS seasonal_variation_pref,
	COALESCE(expat_community_pref, '') AS expat_community_pref,
	COALESCE(pace_of_life_pref, '') AS pace_of_life_pref,
	COALESCE(urban_rural_pref, '') AS urban_rural_pref,
	COALESCE(language_comfort, '') AS language_comfort,
	dining_nightlife_importance,
	cultural_events_importance,
	museums_arts_importance,
	tier1_activities,
	tier2_activities,
	tier1_interests,
	tier2_interests,
	COALESCE(healthcare_quality_pref, '') AS healthcare_quality_pref,
	COALESCE(safety_importance_pref, '') AS safety_importance_pref,
	COALESCE(political_stability_pref, '') AS political_stability_pref,
	COALESCE(government_efficiency_pref, '') AS government_efficiency_pref,
	COALESCE(environmental_health_pref, '') AS environmental_health_pref,
	COALESCE(visa_preference, '') AS visa_preference,
	total_monthly_budget::float8 AS total_monthly_budget,
	max_monthly_rent::float8 AS max_monthly_rent,
	monthly_healthcare_budget::float8 AS monthly_healthcare_budget,
	COALESCE(housing_preference, '') AS housing_preference,
	COALESCE(income_tax_sensitive, false) AS income_tax_sensitive,
	COALESCE(property_tax_sensitive, false) AS property_tax_sensitive,
	COALESCE(sales_tax_sensitive, false) AS sales_tax_sensitive`

// PreferenceRepository handles preference profile database operations.
type PreferenceRepository struct {
	db *DB
}

// NewPreferenceRepository creates a new preference repository.
func NewPreferenceRepository(db *DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// GetByUserID retrieves the raw profile of a user.
func (r *PreferenceRepository) GetByUserID(ctx context.Context, userID string) (*models.RawPreferences, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+preferenceColumns+` FROM user_preferences WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query preferences: %w", err)
	}

	prefs, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[models.RawPreferences])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", models.ErrProfileNotFound, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan preferences: %w", err)
	}
	return prefs, nil
}
