package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"dental-backend/internal/dental"
	"dental-backend/internal/middleware"
	"dental-backend/internal/models"
	"dental-backend/internal/services"

	"github.com/gorilla/mux"
)

type TreatmentHandler struct {
	Service *services.TreatmentService
}

func NewTreatmentHandler(s *services.TreatmentService) *TreatmentHandler {
	return &TreatmentHandler{Service: s}
}

// Plan returns the treatment plan with its derived cost summary
func (h *TreatmentHandler) Plan(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetDoctorIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	fileID := mux.Vars(r)["fileID"]

	view, err := h.Service.Plan(r.Context(), doctorID, fileID)
	if err != nil {
		writePatientError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

// AddProcedure appends one procedure to the plan
func (h *TreatmentHandler) AddProcedure(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetDoctorIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	fileID := mux.Vars(r)["fileID"]

	var req models.AddProcedureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	view, err := h.Service.AddProcedure(r.Context(), doctorID, fileID, &req)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(view)
}

// UpdateProcedure patches one plan entry by position
func (h *TreatmentHandler) UpdateProcedure(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetDoctorIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	vars := mux.Vars(r)
	fileID := vars["fileID"]
	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		http.Error(w, "Invalid entry index", http.StatusBadRequest)
		return
	}

	var req models.UpdateProcedureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	view, err := h.Service.UpdateProcedure(r.Context(), doctorID, fileID, index, &req)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

// RemoveProcedure deletes one plan entry by position
func (h *TreatmentHandler) RemoveProcedure(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetDoctorIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	vars := mux.Vars(r)
	fileID := vars["fileID"]
	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		http.Error(w, "Invalid entry index", http.StatusBadRequest)
		return
	}

	view, err := h.Service.RemoveProcedures(r.Context(), doctorID, fileID, index)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

// ManagePlan replaces the whole plan from the batch management screen
func (h *TreatmentHandler) ManagePlan(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetDoctorIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	fileID := mux.Vars(r)["fileID"]

	var req models.ManagePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	view, err := h.Service.ManagePlan(r.Context(), doctorID, fileID, &req)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

// CostSummary recomputes the cost breakdown for given discount/tax inputs
func (h *TreatmentHandler) CostSummary(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetDoctorIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	fileID := mux.Vars(r)["fileID"]

	var req models.CostSummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	view, err := h.Service.CostSummary(r.Context(), doctorID, fileID, &req)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

// writeLedgerError maps validation failures from the plan operations to
// client errors; duplicates get 409 so the frontend can highlight the pair.
func writeLedgerError(w http.ResponseWriter, err error) {
	var dup *dental.DuplicateProcedureError
	var badDuration *dental.InvalidDurationError
	var badDiscount *dental.InvalidDiscountError
	var badStatus *dental.InvalidStatusError
	var unknownTooth *dental.UnknownToothError

	switch {
	case errors.As(err, &dup):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.As(err, &badDuration),
		errors.As(err, &badDiscount),
		errors.As(err, &badStatus),
		errors.As(err, &unknownTooth),
		errors.Is(err, dental.ErrEntryNotFound),
		errors.Is(err, services.ErrUnknownProcedure):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		writePatientError(w, err)
	}
}
