package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dental-backend/internal/auth"
	"dental-backend/internal/cache"
	"dental-backend/internal/config"
	"dental-backend/internal/database"
	"dental-backend/internal/db"
	"dental-backend/internal/handlers"
	"dental-backend/internal/health"
	h "dental-backend/internal/http"
	"dental-backend/internal/mailer"
	"dental-backend/internal/middleware"
	"dental-backend/internal/monitoring"
	"dental-backend/internal/repositories"
	"dental-backend/internal/services"
	"dental-backend/internal/storage"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	pool := db.Connect(cfg)
	defer pool.Close()

	// Redis is optional - login falls back to bcrypt-only when unavailable
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (login will use bcrypt only)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	migrator := database.NewMigrator(pool)
	migCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := migrator.RunMigrations(migCtx); err != nil {
		cancel()
		log.Fatalf("Failed to run migrations: %v", err)
	}
	cancel()

	// Object storage for X-ray images and archived reports (optional)
	store, err := storage.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to init object storage: %v", err)
	}

	healthChecker := health.NewHealthChecker(pool)
	jwtManager := auth.NewJWTManager(cfg)

	// Monitoring server pushes stock and database alerts over websocket
	monitoringServer := monitoring.NewMonitoringServer(pool, cfg.Monitoring.Port)
	go monitoringServer.Start()

	// Repositories
	doctorRepo := repositories.NewDoctorRepository(pool)
	loginLogRepo := repositories.NewLoginLogRepository(pool)
	patientRepo := repositories.NewPatientRepository(pool)
	settingsRepo := repositories.NewSettingsRepository(pool)
	stockRepo := repositories.NewStockRepository(pool)
	paymentRepo := repositories.NewPaymentRepository(pool)

	// Services
	authService := services.NewAuthService(doctorRepo, loginLogRepo, jwtManager)
	totpService := services.NewTOTPService(doctorRepo)
	patientService := services.NewPatientService(patientRepo)
	settingsService := services.NewSettingsService(settingsRepo)
	chartService := services.NewChartService(patientService, settingsService)
	treatmentService := services.NewTreatmentService(patientService, settingsService)
	stockService := services.NewStockService(stockRepo, settingsService)
	paymentService := services.NewPaymentService(cfg, paymentRepo, treatmentService, patientService)
	reportService := services.NewReportService(doctorRepo, patientService, treatmentService, settingsService, stockService, store)

	// Daily inventory scan: expiry and low-stock alerts by email and websocket
	smtpMailer := mailer.NewSMTPMailer(cfg)
	alertService := services.NewAlertService(doctorRepo, stockService, smtpMailer, monitoringServer)
	alertService.Start()
	defer alertService.Stop()

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	totpHandler := handlers.NewTOTPHandler(totpService, doctorRepo)
	patientHandler := handlers.NewPatientHandler(patientService)
	chartHandler := handlers.NewChartHandler(chartService)
	treatmentHandler := handlers.NewTreatmentHandler(treatmentService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	stockHandler := handlers.NewStockHandler(stockService)
	reportHandler := handlers.NewReportHandler(reportService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, doctorRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	router := h.NewRouter(
		authHandler,
		totpHandler,
		patientHandler,
		chartHandler,
		treatmentHandler,
		settingsHandler,
		stockHandler,
		reportHandler,
		paymentHandler,
		healthHandler,
		authMiddleware,
	)

	handler := middleware.PanicRecovery(
		middleware.MetricsMiddleware(
			middleware.APILogging(
				corsMiddleware(router))))

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		log.Printf("Server running on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Block until interrupted, then drain in-flight requests
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
