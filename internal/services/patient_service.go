package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"dental-backend/internal/cache"
	"dental-backend/internal/dental"
	"dental-backend/internal/models"
	"dental-backend/internal/repositories"
)

var (
	ErrFileIDTaken        = errors.New("a patient with this file ID already exists")
	ErrInvalidPatientType = errors.New("patient type must be adult or child")
)

const patientCacheTTL = 5 * time.Minute

type PatientService struct {
	patientRepo *repositories.PatientRepository
}

func NewPatientService(patientRepo *repositories.PatientRepository) *PatientService {
	return &PatientService{patientRepo: patientRepo}
}

// Register creates a new patient record with an empty chart and plan.
func (s *PatientService) Register(ctx context.Context, doctorID int, req *models.RegisterPatientRequest) (*models.Patient, error) {
	fileID := strings.TrimSpace(req.FileID)
	name := strings.TrimSpace(req.Name)
	if fileID == "" || name == "" {
		return nil, errors.New("file ID and name are required")
	}
	if req.Age < 0 || req.Age > 150 {
		return nil, errors.New("age out of range")
	}

	patientType := strings.ToLower(strings.TrimSpace(req.PatientType))
	if patientType != "adult" && patientType != "child" {
		return nil, ErrInvalidPatientType
	}

	if _, err := s.patientRepo.GetByFileID(ctx, doctorID, fileID); err == nil {
		return nil, ErrFileIDTaken
	} else if !errors.Is(err, repositories.ErrPatientNotFound) {
		return nil, err
	}

	patient := &models.Patient{
		DoctorID:    doctorID,
		FileID:      fileID,
		Name:        name,
		Age:         req.Age,
		Gender:      req.Gender,
		PatientType: patientType,
		DentalChart: dental.Chart{},
	}
	if err := s.patientRepo.Create(ctx, patient); err != nil {
		return nil, err
	}

	log.Printf("[Patient] Registered %s for doctor %d", fileID, doctorID)
	return patient, nil
}

// Get returns one patient, from cache when possible.
func (s *PatientService) Get(ctx context.Context, doctorID int, fileID string) (*models.Patient, error) {
	key := cache.PatientKey(doctorID, fileID)
	if data, ok := cache.GetCached(ctx, key); ok {
		var patient models.Patient
		if err := json.Unmarshal(data, &patient); err == nil {
			return &patient, nil
		}
	}

	patient, err := s.patientRepo.GetByFileID(ctx, doctorID, fileID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(patient); err == nil {
		cache.SetCached(ctx, key, data, patientCacheTTL)
	}
	return patient, nil
}

// List returns every patient owned by the doctor.
func (s *PatientService) List(ctx context.Context, doctorID int) ([]*models.Patient, error) {
	return s.patientRepo.List(ctx, doctorID)
}

// UpdateInfo changes demographics. The file ID and patient type are fixed at
// registration.
func (s *PatientService) UpdateInfo(ctx context.Context, doctorID int, fileID string, req *models.UpdatePatientRequest) (*models.Patient, error) {
	patient, err := s.patientRepo.GetByFileID(ctx, doctorID, fileID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		patient.Name = name
	}
	if req.Age > 0 {
		patient.Age = req.Age
	}
	if req.Gender != "" {
		patient.Gender = req.Gender
	}

	if err := s.patientRepo.UpdateInfo(ctx, patient); err != nil {
		return nil, err
	}
	cache.InvalidatePatient(ctx, doctorID, fileID)
	return patient, nil
}

// Session builds the working copy of the patient's chart and plan with the
// chart reconciled against the canonical layout for the patient type.
func (s *PatientService) Session(ctx context.Context, doctorID int, fileID string) (*dental.PatientSession, *models.Patient, error) {
	patient, err := s.patientRepo.GetByFileID(ctx, doctorID, fileID)
	if err != nil {
		return nil, nil, err
	}

	layout := dental.LayoutFor(patient.PatientType)
	return dental.NewPatientSession(fileID, layout, patient.DentalChart, patient.TreatmentPlan), patient, nil
}

// SaveChart persists the session's chart wholesale.
func (s *PatientService) SaveChart(ctx context.Context, doctorID int, session *dental.PatientSession) error {
	if err := s.patientRepo.ReplaceChart(ctx, doctorID, session.FileID, session.Chart); err != nil {
		return err
	}
	cache.InvalidatePatient(ctx, doctorID, session.FileID)
	return nil
}

// SavePlan persists the session's treatment plan wholesale.
func (s *PatientService) SavePlan(ctx context.Context, doctorID int, session *dental.PatientSession) error {
	if err := s.patientRepo.ReplacePlan(ctx, doctorID, session.FileID, session.Ledger.Entries); err != nil {
		return err
	}
	cache.InvalidatePatient(ctx, doctorID, session.FileID)
	return nil
}
