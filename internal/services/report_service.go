package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log"

	"dental-backend/internal/dental"
	"dental-backend/internal/models"
	"dental-backend/internal/repositories"
	"dental-backend/internal/storage"
	"dental-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

// ReportService generates treatment plan PDFs and inventory exports.
type ReportService struct {
	doctorRepo       *repositories.DoctorRepository
	patientService   *PatientService
	treatmentService *TreatmentService
	settingsService  *SettingsService
	stockService     *StockService
	store            *storage.ObjectStore
}

func NewReportService(
	doctorRepo *repositories.DoctorRepository,
	patientService *PatientService,
	treatmentService *TreatmentService,
	settingsService *SettingsService,
	stockService *StockService,
	store *storage.ObjectStore,
) *ReportService {
	return &ReportService{
		doctorRepo:       doctorRepo,
		patientService:   patientService,
		treatmentService: treatmentService,
		settingsService:  settingsService,
		stockService:     stockService,
		store:            store,
	}
}

// BuildTreatmentReport gathers everything the PDF needs for one patient.
func (s *ReportService) BuildTreatmentReport(ctx context.Context, doctorID int, fileID string, req *models.GenerateReportRequest) (*models.TreatmentReport, *models.Patient, error) {
	doctor, err := s.doctorRepo.Get(ctx, doctorID)
	if err != nil {
		return nil, nil, err
	}

	session, patient, err := s.patientService.Session(ctx, doctorID, fileID)
	if err != nil {
		return nil, nil, err
	}

	settings, err := s.settingsService.Get(ctx, doctorID)
	if err != nil {
		return nil, nil, err
	}

	summary, err := dental.ComputeSummary(session.Ledger.Entries, req.Discount, req.ApplyTax, dental.DefaultTaxRate)
	if err != nil {
		return nil, nil, err
	}

	report := &models.TreatmentReport{
		DoctorName:     doctor.Name,
		PatientName:    patient.Name,
		Entries:        session.Ledger.Entries,
		Chart:          session.Chart,
		Summary:        summary,
		CurrencySymbol: settings.CurrencySymbol(),
	}

	if s.store != nil {
		xrays, err := s.store.List(ctx, fmt.Sprintf("xrays/%d/%s/", doctorID, fileID))
		if err != nil {
			log.Printf("[Reports] Failed to list X-rays for %s: %v", fileID, err)
		}
		for _, obj := range xrays {
			report.XRays = append(report.XRays, models.XRayImage{Key: obj.Key})
		}
	}

	return report, patient, nil
}

// GenerateTreatmentPDF renders the treatment plan report. Discount and tax
// rows only appear when they carry an amount.
func (s *ReportService) GenerateTreatmentPDF(ctx context.Context, doctorID int, fileID string, req *models.GenerateReportRequest) ([]byte, *models.ReportHandle, error) {
	report, patient, err := s.BuildTreatmentReport(ctx, doctorID, fileID, req)
	if err != nil {
		return nil, nil, err
	}

	pdfBytes, err := renderTreatmentPDF(report, patient)
	if err != nil {
		return nil, nil, err
	}

	reportID := fmt.Sprintf("%s-%d", fileID, timeutil.Now().Unix())
	handle := &models.ReportHandle{
		ReportID: reportID,
		FileName: fmt.Sprintf("treatment-report-%s.pdf", fileID),
	}

	if req.Upload && s.store != nil {
		key := storage.ReportKey(doctorID, fileID, reportID)
		if err := s.store.Put(ctx, key, "application/pdf", pdfBytes); err != nil {
			log.Printf("[Reports] Upload failed for %s: %v", key, err)
		} else {
			handle.StorageKey = key
		}
	}

	return pdfBytes, handle, nil
}

func renderTreatmentPDF(report *models.TreatmentReport, patient *models.Patient) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Title
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Dental Treatment Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.FormatDisplay(timeutil.Now())), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Patient information
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Patient Information", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Name: %s", patient.Name), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("File ID: %s", patient.FileID), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Age: %d   Gender: %s", patient.Age, patient.Gender), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Doctor: %s", report.DoctorName), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Treatment plan table
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Treatment Plan", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(20, 7, "Tooth", "1", 0, "C", true, 0, "")
	pdf.CellFormat(55, 7, "Procedure", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Cost", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Status", "1", 0, "C", true, 0, "")
	pdf.CellFormat(27, 7, "Start", "1", 0, "C", true, 0, "")
	pdf.CellFormat(28, 7, "End", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, entry := range report.Entries {
		pdf.CellFormat(20, 6, entry.Tooth, "1", 0, "C", false, 0, "")
		pdf.CellFormat(55, 6, entry.Procedure, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%s %.2f", report.CurrencySymbol, entry.Cost), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, string(entry.Status), "1", 0, "C", false, 0, "")
		pdf.CellFormat(27, 6, entry.StartDate.String(), "1", 0, "C", false, 0, "")
		pdf.CellFormat(28, 6, entry.EndDate.String(), "1", 1, "C", false, 0, "")
	}
	pdf.Ln(5)

	// Cost summary: discount and tax rows only when they apply
	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(190, 8, "Cost Summary", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(135, 7, "Total", "LB", 0, "L", false, 0, "")
	pdf.CellFormat(55, 7, fmt.Sprintf("%s %.2f", report.CurrencySymbol, report.Summary.Total), "RB", 1, "R", false, 0, "")
	if report.Summary.Discount > 0 {
		pdf.CellFormat(135, 7, "Discount", "LB", 0, "L", false, 0, "")
		pdf.CellFormat(55, 7, fmt.Sprintf("- %s %.2f", report.CurrencySymbol, report.Summary.Discount), "RB", 1, "R", false, 0, "")
	}
	if report.Summary.Tax > 0 {
		pdf.CellFormat(135, 7, "VAT (15%)", "LB", 0, "L", false, 0, "")
		pdf.CellFormat(55, 7, fmt.Sprintf("+ %s %.2f", report.CurrencySymbol, report.Summary.Tax), "RB", 1, "R", false, 0, "")
	}
	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(200, 255, 200)
	pdf.CellFormat(135, 9, "Final Amount", "1", 0, "L", true, 0, "")
	pdf.CellFormat(55, 9, fmt.Sprintf("%s %.2f", report.CurrencySymbol, report.Summary.Final), "1", 1, "R", true, 0, "")

	// Footer
	pdf.Ln(10)
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(190, 6, "This report was generated by the clinic management system.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportInventoryCSV renders the inventory list as CSV for download.
func (s *ReportService) ExportInventoryCSV(ctx context.Context, doctorID int) ([]byte, error) {
	views, err := s.stockService.List(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"Item", "Quantity", "Expiry Date", "Days Until Expiry", "Status"})
	for _, view := range views {
		w.Write([]string{
			view.Name,
			fmt.Sprintf("%d", view.Quantity),
			view.ExpiryDate.Format(timeutil.DateLayout),
			fmt.Sprintf("%d", view.DaysUntilExpiry),
			string(view.Status),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UploadXRay stores a radiograph for a patient and returns its key.
func (s *ReportService) UploadXRay(ctx context.Context, doctorID int, fileID, imageName, contentType string, data []byte) (string, error) {
	if s.store == nil {
		return "", fmt.Errorf("object storage is not configured")
	}
	if _, err := s.patientService.Get(ctx, doctorID, fileID); err != nil {
		return "", err
	}

	key := storage.XRayKey(doctorID, fileID, imageName)
	if err := s.store.Put(ctx, key, contentType, data); err != nil {
		return "", err
	}
	log.Printf("[Reports] Stored X-ray %s", key)
	return key, nil
}

// GetXRay downloads a stored radiograph, checking the key belongs to the
// doctor's namespace.
func (s *ReportService) GetXRay(ctx context.Context, doctorID int, key string) ([]byte, error) {
	if s.store == nil {
		return nil, fmt.Errorf("object storage is not configured")
	}
	prefix := fmt.Sprintf("xrays/%d/", doctorID)
	if len(key) < len(prefix) || key[:len(prefix)] != prefix {
		return nil, fmt.Errorf("invalid X-ray key")
	}
	return s.store.Get(ctx, key)
}
