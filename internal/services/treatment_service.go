package services

import (
	"context"
	"errors"
	"log"

	"dental-backend/internal/dental"
	"dental-backend/internal/models"
	"dental-backend/internal/timeutil"
)

var ErrUnknownProcedure = errors.New("procedure is not in the treatment catalogue")

// PlanView is the treatment plan with its derived cost summary.
type PlanView struct {
	Entries        []dental.ProcedureEntry `json:"entries"`
	Summary        dental.CostSummary      `json:"summary"`
	CurrencySymbol string                  `json:"currency_symbol"`
}

type TreatmentService struct {
	patientService  *PatientService
	settingsService *SettingsService
}

func NewTreatmentService(patientService *PatientService, settingsService *SettingsService) *TreatmentService {
	return &TreatmentService{
		patientService:  patientService,
		settingsService: settingsService,
	}
}

// Plan returns the current treatment plan with a zero-discount summary.
func (s *TreatmentService) Plan(ctx context.Context, doctorID int, fileID string) (*PlanView, error) {
	session, _, err := s.patientService.Session(ctx, doctorID, fileID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, doctorID, session, 0, false)
}

// AddProcedure appends one procedure. The cost defaults to the configured
// price estimate, the start date to today and the duration to a week.
func (s *TreatmentService) AddProcedure(ctx context.Context, doctorID int, fileID string, req *models.AddProcedureRequest) (*PlanView, error) {
	session, _, err := s.patientService.Session(ctx, doctorID, fileID)
	if err != nil {
		return nil, err
	}

	if !session.Layout.Contains(req.Tooth) {
		return nil, &dental.UnknownToothError{Tooth: req.Tooth}
	}

	settings, err := s.settingsService.Get(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if !settings.HasProcedure(req.Procedure) {
		return nil, ErrUnknownProcedure
	}

	cost := 0.0
	if price, ok := settings.PriceFor(req.Procedure); ok {
		cost = price
	}
	if req.Cost != nil {
		if *req.Cost < 0 {
			return nil, errors.New("cost cannot be negative")
		}
		cost = *req.Cost
	}

	start := dental.DateOf(timeutil.Now())
	if req.StartDate != "" {
		start, err = dental.ParseDate(req.StartDate)
		if err != nil {
			return nil, err
		}
	}

	duration := dental.DefaultDurationDays
	if req.DurationDays != 0 {
		duration = req.DurationDays
	}

	if _, err := session.Ledger.Add(req.Tooth, req.Procedure, cost, start, duration); err != nil {
		return nil, err
	}

	if err := s.patientService.SavePlan(ctx, doctorID, session); err != nil {
		return nil, err
	}

	log.Printf("[Treatment] Added %s on tooth %s for patient %s", req.Procedure, req.Tooth, fileID)
	return s.view(ctx, doctorID, session, 0, false)
}

// UpdateProcedure patches one plan entry by position. Validation happens
// before any write, so a failed patch leaves the stored plan untouched.
func (s *TreatmentService) UpdateProcedure(ctx context.Context, doctorID int, fileID string, index int, req *models.UpdateProcedureRequest) (*PlanView, error) {
	session, _, err := s.patientService.Session(ctx, doctorID, fileID)
	if err != nil {
		return nil, err
	}

	settings, err := s.settingsService.Get(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	patch := dental.Patch{
		Procedure: req.Procedure,
		Cost:      req.Cost,
	}
	if req.Status != nil {
		status := dental.Status(*req.Status)
		patch.Status = &status
	}
	if req.StartDate != nil {
		start, err := dental.ParseDate(*req.StartDate)
		if err != nil {
			return nil, err
		}
		patch.StartDate = &start
	}
	if req.DurationDays != nil {
		patch.DurationDays = req.DurationDays
	}
	if req.Cost != nil && *req.Cost < 0 {
		return nil, errors.New("cost cannot be negative")
	}
	if req.Procedure != nil && !settings.HasProcedure(*req.Procedure) {
		return nil, ErrUnknownProcedure
	}

	if err := session.Ledger.Update(index, patch, settings.PriceFor); err != nil {
		return nil, err
	}

	if err := s.patientService.SavePlan(ctx, doctorID, session); err != nil {
		return nil, err
	}
	return s.view(ctx, doctorID, session, 0, false)
}

// RemoveProcedures deletes the entries at the given positions.
func (s *TreatmentService) RemoveProcedures(ctx context.Context, doctorID int, fileID string, indices ...int) (*PlanView, error) {
	session, _, err := s.patientService.Session(ctx, doctorID, fileID)
	if err != nil {
		return nil, err
	}

	session.Ledger.Remove(indices...)

	if err := s.patientService.SavePlan(ctx, doctorID, session); err != nil {
		return nil, err
	}
	return s.view(ctx, doctorID, session, 0, false)
}

// ManagePlan replaces the whole plan from the batch management screen. The
// replacement is validated as a unit; any bad entry rejects the batch and the
// stored plan is left as it was.
func (s *TreatmentService) ManagePlan(ctx context.Context, doctorID int, fileID string, req *models.ManagePlanRequest) (*PlanView, error) {
	session, _, err := s.patientService.Session(ctx, doctorID, fileID)
	if err != nil {
		return nil, err
	}

	if err := session.Ledger.BulkReplace(req.Entries); err != nil {
		return nil, err
	}

	if err := s.patientService.SavePlan(ctx, doctorID, session); err != nil {
		return nil, err
	}
	return s.view(ctx, doctorID, session, 0, false)
}

// CostSummary recomputes the cost breakdown for the doctor's discount and
// tax inputs. Nothing is persisted.
func (s *TreatmentService) CostSummary(ctx context.Context, doctorID int, fileID string, req *models.CostSummaryRequest) (*PlanView, error) {
	session, _, err := s.patientService.Session(ctx, doctorID, fileID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, doctorID, session, req.Discount, req.ApplyTax)
}

func (s *TreatmentService) view(ctx context.Context, doctorID int, session *dental.PatientSession, discount float64, applyTax bool) (*PlanView, error) {
	summary, err := dental.ComputeSummary(session.Ledger.Entries, discount, applyTax, dental.DefaultTaxRate)
	if err != nil {
		return nil, err
	}

	settings, err := s.settingsService.Get(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	return &PlanView{
		Entries:        session.Ledger.Entries,
		Summary:        summary,
		CurrencySymbol: settings.CurrencySymbol(),
	}, nil
}
