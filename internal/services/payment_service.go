package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"

	"dental-backend/internal/config"
	"dental-backend/internal/dental"
	"dental-backend/internal/models"
	"dental-backend/internal/repositories"
	"dental-backend/internal/timeutil"

	razorpay "github.com/razorpay/razorpay-go"
)

// PaymentService issues Razorpay payment links for treatment plan totals and
// settles them from webhook events.
type PaymentService struct {
	paymentRepo      *repositories.PaymentRepository
	treatmentService *TreatmentService
	patientService   *PatientService

	keyID         string
	keySecret     string
	webhookSecret string
}

func NewPaymentService(cfg *config.Config, paymentRepo *repositories.PaymentRepository, treatmentService *TreatmentService, patientService *PatientService) *PaymentService {
	return &PaymentService{
		paymentRepo:      paymentRepo,
		treatmentService: treatmentService,
		patientService:   patientService,
		keyID:            cfg.Razorpay.KeyID,
		keySecret:        cfg.Razorpay.KeySecret,
		webhookSecret:    cfg.Razorpay.WebhookSecret,
	}
}

// Enabled reports whether payment credentials are configured.
func (s *PaymentService) Enabled() bool {
	return s.keyID != "" && s.keySecret != ""
}

func (s *PaymentService) client() *razorpay.Client {
	if !s.Enabled() {
		return nil
	}
	return razorpay.NewClient(s.keyID, s.keySecret)
}

// CreateLink computes the patient's final treatment total and issues a
// payment link for it.
func (s *PaymentService) CreateLink(ctx context.Context, doctorID int, fileID string, req *models.CreatePaymentLinkRequest) (*models.TreatmentPayment, error) {
	client := s.client()
	if client == nil {
		return nil, fmt.Errorf("online payments are not configured")
	}

	session, patient, err := s.patientService.Session(ctx, doctorID, fileID)
	if err != nil {
		return nil, err
	}

	summary, err := dental.ComputeSummary(session.Ledger.Entries, req.Discount, req.ApplyTax, dental.DefaultTaxRate)
	if err != nil {
		return nil, err
	}
	if summary.Final <= 0 {
		return nil, fmt.Errorf("treatment plan has no payable amount")
	}

	// Razorpay amounts are in the currency's minor unit.
	amountMinor := int(summary.Final*100 + 0.5)
	linkData := map[string]interface{}{
		"amount":      amountMinor,
		"currency":    "INR",
		"description": fmt.Sprintf("Dental treatment for %s", patient.Name),
		"reference_id": fmt.Sprintf("treat_%d_%s_%d",
			doctorID, fileID, timeutil.Now().Unix()),
		"notes": map[string]interface{}{
			"doctor_id":  doctorID,
			"patient_id": patient.ID,
			"file_id":    fileID,
		},
	}

	link, err := client.PaymentLink.Create(linkData, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment link: %w", err)
	}

	linkID, _ := link["id"].(string)
	shortURL, _ := link["short_url"].(string)

	payment := &models.TreatmentPayment{
		DoctorID:      doctorID,
		PatientID:     patient.ID,
		Amount:        summary.Final,
		Currency:      "INR",
		PaymentLinkID: linkID,
		ShortURL:      shortURL,
		Status:        "created",
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to store payment: %w", err)
	}

	log.Printf("[Payments] Created link %s for patient %s (%.2f)", linkID, fileID, summary.Final)
	return payment, nil
}

// VerifyWebhookSignature verifies the webhook HMAC.
func (s *PaymentService) VerifyWebhookSignature(body []byte, signature string) bool {
	if s.webhookSecret == "" {
		return true // Skip verification if not configured
	}

	h := hmac.New(sha256.New, []byte(s.webhookSecret))
	h.Write(body)
	expectedSignature := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expectedSignature), []byte(signature))
}

// HandleWebhook settles a payment link from a Razorpay webhook event.
func (s *PaymentService) HandleWebhook(ctx context.Context, body []byte) error {
	var event struct {
		Event   string `json:"event"`
		Payload struct {
			PaymentLink struct {
				Entity struct {
					ID     string `json:"id"`
					Status string `json:"status"`
				} `json:"entity"`
			} `json:"payment_link"`
		} `json:"payload"`
	}
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("invalid webhook payload: %w", err)
	}

	linkID := event.Payload.PaymentLink.Entity.ID
	if linkID == "" {
		return fmt.Errorf("webhook payload missing payment link id")
	}

	switch event.Event {
	case "payment_link.paid":
		now := timeutil.Now()
		if err := s.paymentRepo.MarkStatus(ctx, linkID, "paid", &now); err != nil {
			return err
		}
		log.Printf("[Payments] Link %s paid", linkID)
	case "payment_link.cancelled":
		if err := s.paymentRepo.MarkStatus(ctx, linkID, "cancelled", nil); err != nil {
			return err
		}
	case "payment_link.expired":
		if err := s.paymentRepo.MarkStatus(ctx, linkID, "expired", nil); err != nil {
			return err
		}
	default:
		log.Printf("[Payments] Ignoring webhook event %s", event.Event)
	}
	return nil
}

// History returns the payment links issued for one patient.
func (s *PaymentService) History(ctx context.Context, doctorID int, fileID string) ([]*models.TreatmentPayment, error) {
	patient, err := s.patientService.Get(ctx, doctorID, fileID)
	if err != nil {
		return nil, err
	}
	return s.paymentRepo.ListByPatient(ctx, doctorID, patient.ID)
}
