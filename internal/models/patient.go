package models

import (
	"encoding/json"
	"fmt"
	"time"

	"dental-backend/internal/dental"
)

// Patient is one patient record owned by a doctor. FileID is unique per
// doctor, not globally. The dental chart and treatment plan are stored as
// JSONB documents and always written back wholesale.
type Patient struct {
	ID            int                     `json:"id"`
	DoctorID      int                     `json:"doctor_id"`
	FileID        string                  `json:"file_id"`
	Name          string                  `json:"name"`
	Age           int                     `json:"age"`
	Gender        string                  `json:"gender"`
	PatientType   string                  `json:"patient_type"` // adult or child
	DentalChart   dental.Chart            `json:"dental_chart"`
	TreatmentPlan []dental.ProcedureEntry `json:"treatment_plan"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
}

// SchemaError reports a stored patient document that failed validation on
// read, so malformed records are rejected up front instead of failing later
// at field access.
type SchemaError struct {
	FileID string
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("patient record %q: field %s: %s", e.FileID, e.Field, e.Reason)
}

// DecodeChart parses and validates a stored dental chart document.
func DecodeChart(fileID string, raw []byte) (dental.Chart, error) {
	if len(raw) == 0 {
		return dental.Chart{}, nil
	}
	var chart dental.Chart
	if err := json.Unmarshal(raw, &chart); err != nil {
		return nil, &SchemaError{FileID: fileID, Field: "dental_chart", Reason: err.Error()}
	}
	for tooth, condition := range chart {
		if tooth == "" || condition == "" {
			return nil, &SchemaError{FileID: fileID, Field: "dental_chart", Reason: "empty tooth or condition"}
		}
	}
	return chart, nil
}

// DecodePlan parses and validates a stored treatment plan document.
func DecodePlan(fileID string, raw []byte) ([]dental.ProcedureEntry, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var plan []dental.ProcedureEntry
	if err := json.Unmarshal(raw, &plan); err != nil {
		return nil, &SchemaError{FileID: fileID, Field: "treatment_plan", Reason: err.Error()}
	}
	for i, entry := range plan {
		if entry.Tooth == "" {
			return nil, &SchemaError{FileID: fileID, Field: fmt.Sprintf("treatment_plan[%d].tooth", i), Reason: "required"}
		}
		if entry.Procedure == "" {
			return nil, &SchemaError{FileID: fileID, Field: fmt.Sprintf("treatment_plan[%d].procedure", i), Reason: "required"}
		}
		if !dental.ValidStatus(entry.Status) {
			return nil, &SchemaError{FileID: fileID, Field: fmt.Sprintf("treatment_plan[%d].status", i), Reason: fmt.Sprintf("unknown status %q", entry.Status)}
		}
		if entry.DurationDays < 1 {
			return nil, &SchemaError{FileID: fileID, Field: fmt.Sprintf("treatment_plan[%d].duration_days", i), Reason: "must be at least 1"}
		}
	}
	return plan, nil
}

// RegisterPatientRequest represents the request body for registration
type RegisterPatientRequest struct {
	FileID      string `json:"file_id"`
	Name        string `json:"name"`
	Age         int    `json:"age"`
	Gender      string `json:"gender"`
	PatientType string `json:"patient_type"`
}

// UpdatePatientRequest updates demographics; the file ID is immutable.
type UpdatePatientRequest struct {
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Gender string `json:"gender"`
}

// ChartSelectionRequest records one tooth condition selection
type ChartSelectionRequest struct {
	Tooth     string `json:"tooth"`
	Condition string `json:"condition"`
}

// AddProcedureRequest appends one procedure to the treatment plan
type AddProcedureRequest struct {
	Tooth        string  `json:"tooth"`
	Procedure    string  `json:"procedure"`
	Cost         *float64 `json:"cost,omitempty"`       // Defaults to the configured price estimate
	StartDate    string  `json:"start_date,omitempty"`  // Defaults to today
	DurationDays int     `json:"duration_days,omitempty"` // Defaults to 7
}

// UpdateProcedureRequest patches one plan entry by position
type UpdateProcedureRequest struct {
	Procedure    *string  `json:"procedure,omitempty"`
	Cost         *float64 `json:"cost,omitempty"`
	Status       *string  `json:"status,omitempty"`
	StartDate    *string  `json:"start_date,omitempty"`
	DurationDays *int     `json:"duration_days,omitempty"`
}

// ManagePlanRequest is the batch treatment management update: the whole plan
// is replaced after validation, deletions included.
type ManagePlanRequest struct {
	Entries []dental.ProcedureEntry `json:"entries"`
}

// CostSummaryRequest carries the doctor's discount and tax inputs
type CostSummaryRequest struct {
	Discount   float64 `json:"discount"`
	ApplyTax   bool    `json:"apply_tax"`
}
