package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dental-backend/internal/handlers"
	"dental-backend/internal/middleware"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	totpHandler *handlers.TOTPHandler,
	patientHandler *handlers.PatientHandler,
	chartHandler *handlers.ChartHandler,
	treatmentHandler *handlers.TreatmentHandler,
	settingsHandler *handlers.SettingsHandler,
	stockHandler *handlers.StockHandler,
	reportHandler *handlers.ReportHandler,
	paymentHandler *handlers.PaymentHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public API routes - Authentication
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Payment webhook - unauthenticated, HMAC verified inside the handler
	r.HandleFunc("/webhooks/razorpay", paymentHandler.Webhook).Methods("POST")

	// Protected API routes - Account
	accountAPI := r.PathPrefix("/api/account").Subrouter()
	accountAPI.Use(authMiddleware.Authenticate)
	accountAPI.HandleFunc("/password", authHandler.ChangePassword).Methods("PUT")
	accountAPI.HandleFunc("/alert-email", authHandler.SetAlertEmail).Methods("PUT")
	accountAPI.HandleFunc("/login-history", authHandler.LoginHistory).Methods("GET")
	accountAPI.HandleFunc("/2fa/setup", totpHandler.Setup).Methods("POST")
	accountAPI.HandleFunc("/2fa/enable", totpHandler.Enable).Methods("POST")
	accountAPI.HandleFunc("/2fa/disable", totpHandler.Disable).Methods("POST")

	// Protected API routes - Patients
	patientsAPI := r.PathPrefix("/api/patients").Subrouter()
	patientsAPI.Use(authMiddleware.Authenticate)
	patientsAPI.HandleFunc("", patientHandler.List).Methods("GET")
	patientsAPI.HandleFunc("", patientHandler.Register).Methods("POST")
	patientsAPI.HandleFunc("/{fileID}", patientHandler.Get).Methods("GET")
	patientsAPI.HandleFunc("/{fileID}", patientHandler.Update).Methods("PUT")

	// Dental chart
	patientsAPI.HandleFunc("/{fileID}/chart", chartHandler.View).Methods("GET")
	patientsAPI.HandleFunc("/{fileID}/chart", chartHandler.Select).Methods("POST")

	// Treatment plan
	patientsAPI.HandleFunc("/{fileID}/plan", treatmentHandler.Plan).Methods("GET")
	patientsAPI.HandleFunc("/{fileID}/plan", treatmentHandler.AddProcedure).Methods("POST")
	patientsAPI.HandleFunc("/{fileID}/plan", treatmentHandler.ManagePlan).Methods("PUT")
	patientsAPI.HandleFunc("/{fileID}/plan/{index}", treatmentHandler.UpdateProcedure).Methods("PATCH")
	patientsAPI.HandleFunc("/{fileID}/plan/{index}", treatmentHandler.RemoveProcedure).Methods("DELETE")
	patientsAPI.HandleFunc("/{fileID}/plan/summary", treatmentHandler.CostSummary).Methods("POST")

	// Reports and X-rays
	patientsAPI.HandleFunc("/{fileID}/report", reportHandler.TreatmentPDF).Methods("POST")
	patientsAPI.HandleFunc("/{fileID}/xrays", reportHandler.UploadXRay).Methods("POST")

	// Payments
	patientsAPI.HandleFunc("/{fileID}/payments", paymentHandler.CreateLink).Methods("POST")
	patientsAPI.HandleFunc("/{fileID}/payments", paymentHandler.History).Methods("GET")

	// Protected API routes - Settings
	settingsAPI := r.PathPrefix("/api/settings").Subrouter()
	settingsAPI.Use(authMiddleware.Authenticate)
	settingsAPI.HandleFunc("", settingsHandler.Get).Methods("GET")
	settingsAPI.HandleFunc("", settingsHandler.Update).Methods("PUT")
	settingsAPI.HandleFunc("/procedures", settingsHandler.AddProcedure).Methods("POST")
	settingsAPI.HandleFunc("/procedures/{name}", settingsHandler.RemoveProcedure).Methods("DELETE")

	// Protected API routes - Inventory
	stockAPI := r.PathPrefix("/api/stock").Subrouter()
	stockAPI.Use(authMiddleware.Authenticate)
	stockAPI.HandleFunc("", stockHandler.List).Methods("GET")
	stockAPI.HandleFunc("", stockHandler.Add).Methods("POST")
	stockAPI.HandleFunc("/summary", stockHandler.Summary).Methods("GET")
	stockAPI.HandleFunc("/alerts", stockHandler.Alerts).Methods("GET")
	stockAPI.HandleFunc("/export", reportHandler.InventoryCSV).Methods("GET")
	stockAPI.HandleFunc("/{name}", stockHandler.Update).Methods("PUT")
	stockAPI.HandleFunc("/{name}/consume", stockHandler.Consume).Methods("POST")
	stockAPI.HandleFunc("/{name}", stockHandler.Delete).Methods("DELETE")

	// X-ray download (key in query, ownership checked in the handler)
	xrayAPI := r.PathPrefix("/api/xrays").Subrouter()
	xrayAPI.Use(authMiddleware.Authenticate)
	xrayAPI.HandleFunc("", reportHandler.GetXRay).Methods("GET")

	// Health endpoints (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
