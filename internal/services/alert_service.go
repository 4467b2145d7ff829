package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"dental-backend/internal/mailer"
	"dental-backend/internal/metrics"
	"dental-backend/internal/models"
	"dental-backend/internal/repositories"
	"dental-backend/internal/timeutil"
)

// AlertBroadcaster pushes inventory alerts to connected monitoring clients.
type AlertBroadcaster interface {
	BroadcastAlert(alert interface{})
}

// StockAlert is one alert event pushed over the monitoring socket and
// included in alert emails.
type StockAlert struct {
	DoctorID        int                `json:"doctor_id"`
	ItemName        string             `json:"item_name"`
	Status          models.StockStatus `json:"status"`
	Quantity        int                `json:"quantity"`
	DaysUntilExpiry int                `json:"days_until_expiry"`
	RaisedAt        time.Time          `json:"raised_at"`
}

// AlertService scans each doctor's inventory and raises expiry and low-stock
// alerts by email and over the monitoring socket.
type AlertService struct {
	doctorRepo   *repositories.DoctorRepository
	stockService *StockService
	mail         mailer.Mailer
	broadcaster  AlertBroadcaster

	interval time.Duration
	stop     chan struct{}
}

func NewAlertService(doctorRepo *repositories.DoctorRepository, stockService *StockService, mail mailer.Mailer, broadcaster AlertBroadcaster) *AlertService {
	return &AlertService{
		doctorRepo:   doctorRepo,
		stockService: stockService,
		mail:         mail,
		broadcaster:  broadcaster,
		interval:     24 * time.Hour,
		stop:         make(chan struct{}),
	}
}

// Start runs the daily inventory scan until Stop is called.
func (s *AlertService) Start() {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		// First scan shortly after boot so a restart doesn't skip a day.
		timer := time.NewTimer(time.Minute)
		defer timer.Stop()

		for {
			select {
			case <-timer.C:
				s.scanAll()
			case <-ticker.C:
				s.scanAll()
			case <-s.stop:
				return
			}
		}
	}()
}

func (s *AlertService) Stop() {
	close(s.stop)
}

func (s *AlertService) scanAll() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	doctorIDs, err := s.activeDoctorIDs(ctx)
	if err != nil {
		log.Printf("[Alerts] Failed to list doctors: %v", err)
		return
	}

	counts := make(map[models.StockStatus]int)
	for _, doctorID := range doctorIDs {
		alerts, err := s.ScanDoctor(ctx, doctorID)
		if err != nil {
			log.Printf("[Alerts] Scan failed for doctor %d: %v", doctorID, err)
			continue
		}
		for _, alert := range alerts {
			counts[alert.Status]++
		}
	}

	for _, status := range []models.StockStatus{
		models.StockStatusExpired,
		models.StockStatusOutOfStock,
		models.StockStatusLowStock,
		models.StockStatusExpiringSoon,
	} {
		metrics.StockAlertsActive.WithLabelValues(string(status)).Set(float64(counts[status]))
	}
}

// ScanDoctor checks one doctor's inventory, emails the alert address when
// configured and broadcasts each alert to monitoring clients.
func (s *AlertService) ScanDoctor(ctx context.Context, doctorID int) ([]StockAlert, error) {
	views, err := s.stockService.Alerts(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, nil
	}

	now := timeutil.Now()
	alerts := make([]StockAlert, 0, len(views))
	for _, view := range views {
		alert := StockAlert{
			DoctorID:        doctorID,
			ItemName:        view.Name,
			Status:          view.Status,
			Quantity:        view.Quantity,
			DaysUntilExpiry: view.DaysUntilExpiry,
			RaisedAt:        now,
		}
		alerts = append(alerts, alert)
		if s.broadcaster != nil {
			s.broadcaster.BroadcastAlert(alert)
		}
	}

	doctor, err := s.doctorRepo.Get(ctx, doctorID)
	if err != nil {
		return alerts, err
	}
	if doctor.AlertEmail == "" {
		return alerts, nil
	}

	subject := fmt.Sprintf("Inventory alerts: %d item(s) need attention", len(alerts))
	if err := s.mail.Send(doctor.AlertEmail, subject, renderAlertMail(doctor.Name, views)); err != nil {
		metrics.AlertEmailsTotal.WithLabelValues("failed").Inc()
		log.Printf("[Alerts] Failed to email doctor %d: %v", doctorID, err)
		return alerts, nil
	}
	metrics.AlertEmailsTotal.WithLabelValues("sent").Inc()
	log.Printf("[Alerts] Emailed %d alert(s) to doctor %d", len(alerts), doctorID)
	return alerts, nil
}

func (s *AlertService) activeDoctorIDs(ctx context.Context) ([]int, error) {
	rows, err := s.doctorRepo.DB.Query(ctx, `SELECT id FROM doctors WHERE is_active`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func renderAlertMail(doctorName string, views []models.StockItemView) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	fmt.Fprintf(&b, "<p>Dear Dr. %s,</p>", doctorName)
	b.WriteString("<p>The following inventory items need attention:</p>")
	b.WriteString("<table border=\"1\" cellpadding=\"6\" cellspacing=\"0\">")
	b.WriteString("<tr><th>Item</th><th>Status</th><th>Quantity</th><th>Expires</th></tr>")
	for _, view := range views {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%d</td><td>%s</td></tr>",
			view.Name, view.Status, view.Quantity,
			timeutil.FormatDisplay(view.ExpiryDate))
	}
	b.WriteString("</table>")
	b.WriteString("<p>This is an automated message from your clinic inventory system.</p>")
	b.WriteString("</body></html>")
	return b.String()
}
