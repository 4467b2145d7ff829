package services

import (
	"context"

	"dental-backend/internal/dental"
	"dental-backend/internal/models"
)

// ChartView is the dental chart as the frontend renders it: the layout rows,
// the effective condition per tooth and the teeth needing attention.
type ChartView struct {
	Layout         dental.Layout `json:"layout"`
	Chart          dental.Chart  `json:"chart"`
	AttentionTeeth []string      `json:"attention_teeth"`
	Conditions     []string      `json:"conditions"`
}

type ChartService struct {
	patientService  *PatientService
	settingsService *SettingsService
}

func NewChartService(patientService *PatientService, settingsService *SettingsService) *ChartService {
	return &ChartService{
		patientService:  patientService,
		settingsService: settingsService,
	}
}

// View returns the reconciled chart. Missing teeth read as Healthy and teeth
// outside the layout are dropped, so a stored partial chart always renders
// complete.
func (s *ChartService) View(ctx context.Context, doctorID int, fileID string) (*ChartView, error) {
	session, _, err := s.patientService.Session(ctx, doctorID, fileID)
	if err != nil {
		return nil, err
	}

	settings, err := s.settingsService.Get(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	return &ChartView{
		Layout:         session.Layout,
		Chart:          session.Chart,
		AttentionTeeth: session.Chart.AttentionTeeth(session.Layout),
		Conditions:     settings.HealthConditions,
	}, nil
}

// Select records a condition for one tooth and persists the chart. The write
// is skipped when the selection matches the stored condition.
func (s *ChartService) Select(ctx context.Context, doctorID int, fileID string, req *models.ChartSelectionRequest) (*ChartView, error) {
	session, _, err := s.patientService.Session(ctx, doctorID, fileID)
	if err != nil {
		return nil, err
	}

	settings, err := s.settingsService.Get(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	changed, err := session.Chart.ApplySelection(session.Layout, settings.HealthConditions, req.Tooth, req.Condition)
	if err != nil {
		return nil, err
	}

	if changed {
		if err := s.patientService.SaveChart(ctx, doctorID, session); err != nil {
			return nil, err
		}
	}

	return &ChartView{
		Layout:         session.Layout,
		Chart:          session.Chart,
		AttentionTeeth: session.Chart.AttentionTeeth(session.Layout),
		Conditions:     settings.HealthConditions,
	}, nil
}
