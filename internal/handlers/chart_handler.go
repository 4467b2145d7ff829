package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"dental-backend/internal/dental"
	"dental-backend/internal/middleware"
	"dental-backend/internal/models"
	"dental-backend/internal/services"

	"github.com/gorilla/mux"
)

type ChartHandler struct {
	Service *services.ChartService
}

func NewChartHandler(s *services.ChartService) *ChartHandler {
	return &ChartHandler{Service: s}
}

// View returns the reconciled chart for a patient
func (h *ChartHandler) View(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetDoctorIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	fileID := mux.Vars(r)["fileID"]

	view, err := h.Service.View(r.Context(), doctorID, fileID)
	if err != nil {
		writePatientError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

// Select records one tooth condition
func (h *ChartHandler) Select(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetDoctorIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	fileID := mux.Vars(r)["fileID"]

	var req models.ChartSelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	view, err := h.Service.Select(r.Context(), doctorID, fileID, &req)
	if err != nil {
		var unknownTooth *dental.UnknownToothError
		var badCondition *dental.InvalidConditionError
		if errors.As(err, &unknownTooth) || errors.As(err, &badCondition) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writePatientError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}
