package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"dental-backend/internal/middleware"
	"dental-backend/internal/models"
	"dental-backend/internal/repositories"
	"dental-backend/internal/services"

	"github.com/gorilla/mux"
)

type PatientHandler struct {
	Service *services.PatientService
}

func NewPatientHandler(s *services.PatientService) *PatientHandler {
	return &PatientHandler{Service: s}
}

func (h *PatientHandler) Register(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetDoctorIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.RegisterPatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	patient, err := h.Service.Register(r.Context(), doctorID, &req)
	if err != nil {
		if errors.Is(err, services.ErrFileIDTaken) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(patient)
}

func (h *PatientHandler) List(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetDoctorIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	patients, err := h.Service.List(r.Context(), doctorID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(patients)
}

func (h *PatientHandler) Get(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetDoctorIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	fileID := mux.Vars(r)["fileID"]

	patient, err := h.Service.Get(r.Context(), doctorID, fileID)
	if err != nil {
		writePatientError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(patient)
}

func (h *PatientHandler) Update(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetDoctorIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	fileID := mux.Vars(r)["fileID"]

	var req models.UpdatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	patient, err := h.Service.UpdateInfo(r.Context(), doctorID, fileID, &req)
	if err != nil {
		writePatientError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(patient)
}

// writePatientError maps lookup failures to the right status. A stored
// document that fails schema validation is a server-side data problem, not a
// bad request.
func writePatientError(w http.ResponseWriter, err error) {
	var schemaErr *models.SchemaError
	switch {
	case errors.Is(err, repositories.ErrPatientNotFound):
		http.Error(w, "Patient not found", http.StatusNotFound)
	case errors.As(err, &schemaErr):
		http.Error(w, schemaErr.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
