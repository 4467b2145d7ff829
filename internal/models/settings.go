package models

import "time"

// DoctorSettings is the per-doctor configuration document: the procedure
// catalogue, price estimates, chart condition set and alert thresholds.
type DoctorSettings struct {
	DoctorID            int                `json:"doctor_id"`
	TreatmentProcedures []string           `json:"treatment_procedures"`
	PriceEstimates      map[string]float64 `json:"price_estimates"`
	HealthConditions    []string           `json:"health_conditions"`
	Currency            string             `json:"currency"`
	LowStockThreshold   int                `json:"low_stock_threshold"`
	ExpiryWarningDays   int                `json:"expiry_warning_days"`
	UpdatedAt           time.Time          `json:"updated_at"`
}

// DefaultSettings are created on first read, matching the app's defaults.
func DefaultSettings(doctorID int) *DoctorSettings {
	return &DoctorSettings{
		DoctorID:            doctorID,
		TreatmentProcedures: []string{"Cleaning"},
		PriceEstimates:      map[string]float64{"Cleaning": 100},
		HealthConditions:    []string{"Healthy", "Cavity", "Root Canal", "Crown", "Missing", "Implant", "Extraction"},
		Currency:            "SAR",
		LowStockThreshold:   5,
		ExpiryWarningDays:   30,
	}
}

// PriceFor looks up the configured estimate for a procedure.
func (s *DoctorSettings) PriceFor(procedure string) (float64, bool) {
	price, ok := s.PriceEstimates[procedure]
	return price, ok
}

// HasProcedure reports whether the procedure is in the catalogue.
func (s *DoctorSettings) HasProcedure(procedure string) bool {
	for _, p := range s.TreatmentProcedures {
		if p == procedure {
			return true
		}
	}
	return false
}

// CurrencySymbol maps the currency code to its report symbol.
func (s *DoctorSettings) CurrencySymbol() string {
	symbols := map[string]string{
		"SAR": "SAR",
		"INR": "₹",
	}
	if symbol, ok := symbols[s.Currency]; ok {
		return symbol
	}
	return s.Currency
}

// UpdateSettingsRequest replaces the settings document
type UpdateSettingsRequest struct {
	TreatmentProcedures []string           `json:"treatment_procedures"`
	PriceEstimates      map[string]float64 `json:"price_estimates"`
	HealthConditions    []string           `json:"health_conditions,omitempty"`
	Currency            string             `json:"currency,omitempty"`
	LowStockThreshold   *int               `json:"low_stock_threshold,omitempty"`
	ExpiryWarningDays   *int               `json:"expiry_warning_days,omitempty"`
}

// AddProcedureSettingRequest adds one procedure to the catalogue
type AddProcedureSettingRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}
