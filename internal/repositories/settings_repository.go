package repositories

import (
	"context"
	"encoding/json"
	"errors"

	"dental-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SettingsRepository stores the per-doctor settings as one JSONB document.
// A missing row means the doctor never saved settings; callers fall back to
// models.DefaultSettings.
type SettingsRepository struct {
	DB *pgxpool.Pool
}

func NewSettingsRepository(db *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{DB: db}
}

// Get returns the stored settings, or defaults when none exist yet.
func (r *SettingsRepository) Get(ctx context.Context, doctorID int) (*models.DoctorSettings, error) {
	var raw []byte
	err := r.DB.QueryRow(ctx,
		`SELECT document FROM doctor_settings WHERE doctor_id=$1`, doctorID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.DefaultSettings(doctorID), nil
	}
	if err != nil {
		return nil, err
	}

	var settings models.DoctorSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return nil, err
	}
	settings.DoctorID = doctorID
	return &settings, nil
}

// Save replaces the settings document wholesale.
func (r *SettingsRepository) Save(ctx context.Context, settings *models.DoctorSettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	_, err = r.DB.Exec(ctx,
		`INSERT INTO doctor_settings(doctor_id, document, updated_at)
         VALUES($1, $2, CURRENT_TIMESTAMP)
         ON CONFLICT (doctor_id) DO UPDATE
         SET document=EXCLUDED.document, updated_at=CURRENT_TIMESTAMP`,
		settings.DoctorID, raw)
	return err
}
