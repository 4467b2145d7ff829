package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"dental-backend/internal/middleware"
	"dental-backend/internal/models"
	"dental-backend/internal/services"

	"github.com/gorilla/mux"
)

// maxXRayUploadBytes caps radiograph uploads at 10 MB.
const maxXRayUploadBytes = 10 << 20

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(s *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: s}
}

// TreatmentPDF generates and streams the treatment plan report
func (h *ReportHandler) TreatmentPDF(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetDoctorIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	fileID := mux.Vars(r)["fileID"]

	var req models.GenerateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	pdfBytes, handle, err := h.Service.GenerateTreatmentPDF(r.Context(), doctorID, fileID, &req)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", handle.FileName))
	if handle.StorageKey != "" {
		w.Header().Set("X-Report-Storage-Key", handle.StorageKey)
	}
	w.Write(pdfBytes)
}

// InventoryCSV streams the inventory list as CSV
func (h *ReportHandler) InventoryCSV(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetDoctorIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	data, err := h.Service.ExportInventoryCSV(r.Context(), doctorID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="inventory.csv"`)
	w.Write(data)
}

// UploadXRay stores a radiograph for a patient
func (h *ReportHandler) UploadXRay(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetDoctorIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	fileID := mux.Vars(r)["fileID"]

	if err := r.ParseMultipartForm(maxXRayUploadBytes); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "image file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxXRayUploadBytes))
	if err != nil {
		http.Error(w, "Failed to read upload", http.StatusBadRequest)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key, err := h.Service.UploadXRay(r.Context(), doctorID, fileID, header.Filename, contentType, data)
	if err != nil {
		writePatientError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(models.XRayImage{Key: key})
}

// GetXRay streams a stored radiograph
func (h *ReportHandler) GetXRay(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetDoctorIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, "key parameter is required", http.StatusBadRequest)
		return
	}

	data, err := h.Service.GetXRay(r.Context(), doctorID, key)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Write(data)
}
