package handlers

import (
	"encoding/json"
	"net/http"

	"dental-backend/internal/middleware"
	"dental-backend/internal/models"
	"dental-backend/internal/repositories"
	"dental-backend/internal/services"
)

type TOTPHandler struct {
	Service    *services.TOTPService
	DoctorRepo *repositories.DoctorRepository
}

func NewTOTPHandler(s *services.TOTPService, doctorRepo *repositories.DoctorRepository) *TOTPHandler {
	return &TOTPHandler{Service: s, DoctorRepo: doctorRepo}
}

// Setup initiates 2FA setup, returning the secret and QR code
func (h *TOTPHandler) Setup(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetDoctorIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	doctor, err := h.DoctorRepo.Get(r.Context(), doctorID)
	if err != nil {
		http.Error(w, "Account not found", http.StatusNotFound)
		return
	}
	if doctor.TOTPEnabled {
		http.Error(w, "2FA is already enabled", http.StatusConflict)
		return
	}

	resp, err := h.Service.GenerateSetup(r.Context(), doctor)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// Enable verifies the code and turns on 2FA
func (h *TOTPHandler) Enable(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetDoctorIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.TOTPEnableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Service.VerifyAndEnable(r.Context(), doctorID, req.Code); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"enabled": true})
}

// Disable turns off 2FA after verifying password and code
func (h *TOTPHandler) Disable(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetDoctorIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.TOTPDisableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Service.Disable(r.Context(), doctorID, req.Password, req.Code); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"enabled": false})
}
