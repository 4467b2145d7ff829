package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"dental-backend/internal/cache"
	"dental-backend/internal/models"
	"dental-backend/internal/repositories"
	"dental-backend/internal/timeutil"
)

const settingsCacheTTL = 10 * time.Minute

type SettingsService struct {
	settingsRepo *repositories.SettingsRepository
}

func NewSettingsService(settingsRepo *repositories.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// Get returns the doctor's settings, defaults included on first read.
func (s *SettingsService) Get(ctx context.Context, doctorID int) (*models.DoctorSettings, error) {
	key := cache.SettingsKey(doctorID)
	if data, ok := cache.GetCached(ctx, key); ok {
		var settings models.DoctorSettings
		if err := json.Unmarshal(data, &settings); err == nil {
			return &settings, nil
		}
	}

	settings, err := s.settingsRepo.Get(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(settings); err == nil {
		cache.SetCached(ctx, key, data, settingsCacheTTL)
	}
	return settings, nil
}

// Update replaces the settings document. Procedures and prices are kept in
// step: every catalogue entry gets a price, defaulting to zero.
func (s *SettingsService) Update(ctx context.Context, doctorID int, req *models.UpdateSettingsRequest) (*models.DoctorSettings, error) {
	settings, err := s.settingsRepo.Get(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	if req.TreatmentProcedures != nil {
		cleaned := dedupeNames(req.TreatmentProcedures)
		if len(cleaned) == 0 {
			return nil, errors.New("at least one treatment procedure is required")
		}
		settings.TreatmentProcedures = cleaned
	}
	if req.PriceEstimates != nil {
		for name, price := range req.PriceEstimates {
			if price < 0 {
				return nil, errors.New("price estimates cannot be negative")
			}
			settings.PriceEstimates[name] = price
		}
	}
	for _, name := range settings.TreatmentProcedures {
		if _, ok := settings.PriceEstimates[name]; !ok {
			settings.PriceEstimates[name] = 0
		}
	}

	if req.HealthConditions != nil {
		cleaned := dedupeNames(req.HealthConditions)
		if !containsName(cleaned, "Healthy") {
			// Healthy is the chart default and can never be removed.
			cleaned = append([]string{"Healthy"}, cleaned...)
		}
		settings.HealthConditions = cleaned
	}
	if req.Currency != "" {
		settings.Currency = strings.ToUpper(strings.TrimSpace(req.Currency))
	}
	if req.LowStockThreshold != nil {
		if *req.LowStockThreshold < 0 {
			return nil, errors.New("low stock threshold cannot be negative")
		}
		settings.LowStockThreshold = *req.LowStockThreshold
	}
	if req.ExpiryWarningDays != nil {
		if *req.ExpiryWarningDays < 0 {
			return nil, errors.New("expiry warning days cannot be negative")
		}
		settings.ExpiryWarningDays = *req.ExpiryWarningDays
	}

	settings.UpdatedAt = timeutil.Now()
	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, err
	}
	cache.InvalidateSettings(ctx, doctorID)
	return settings, nil
}

// AddProcedure appends one procedure with its price estimate.
func (s *SettingsService) AddProcedure(ctx context.Context, doctorID int, req *models.AddProcedureSettingRequest) (*models.DoctorSettings, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.New("procedure name is required")
	}
	if req.Price < 0 {
		return nil, errors.New("price cannot be negative")
	}

	settings, err := s.settingsRepo.Get(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if settings.HasProcedure(name) {
		return nil, errors.New("procedure already exists")
	}

	settings.TreatmentProcedures = append(settings.TreatmentProcedures, name)
	settings.PriceEstimates[name] = req.Price
	settings.UpdatedAt = timeutil.Now()

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, err
	}
	cache.InvalidateSettings(ctx, doctorID)
	return settings, nil
}

// RemoveProcedure drops one procedure from the catalogue. Existing plan
// entries keep their snapshotted cost.
func (s *SettingsService) RemoveProcedure(ctx context.Context, doctorID int, name string) (*models.DoctorSettings, error) {
	settings, err := s.settingsRepo.Get(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if !settings.HasProcedure(name) {
		return nil, errors.New("procedure not found")
	}
	if len(settings.TreatmentProcedures) == 1 {
		return nil, errors.New("cannot remove the last procedure")
	}

	kept := settings.TreatmentProcedures[:0]
	for _, p := range settings.TreatmentProcedures {
		if p != name {
			kept = append(kept, p)
		}
	}
	settings.TreatmentProcedures = kept
	delete(settings.PriceEstimates, name)
	settings.UpdatedAt = timeutil.Now()

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, err
	}
	cache.InvalidateSettings(ctx, doctorID)
	return settings, nil
}

func dedupeNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	var out []string
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
