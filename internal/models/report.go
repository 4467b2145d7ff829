package models

import "dental-backend/internal/dental"

// TreatmentReport is everything the PDF generator needs for one patient.
type TreatmentReport struct {
	DoctorName     string
	PatientName    string
	Entries        []dental.ProcedureEntry
	Chart          dental.Chart
	Summary        dental.CostSummary
	CurrencySymbol string
	XRays          []XRayImage
}

// XRayImage is a stored radiograph reference attached to a report.
type XRayImage struct {
	Key     string `json:"key"` // object storage key
	Caption string `json:"caption,omitempty"`
}

// GenerateReportRequest carries the cost inputs for report generation
type GenerateReportRequest struct {
	Discount float64 `json:"discount"`
	ApplyTax bool    `json:"apply_tax"`
	Upload   bool    `json:"upload,omitempty"` // also push the PDF to object storage
}

// ReportHandle points at a generated document.
type ReportHandle struct {
	ReportID   string `json:"report_id"`
	FileName   string `json:"file_name"`
	StorageKey string `json:"storage_key,omitempty"`
}
