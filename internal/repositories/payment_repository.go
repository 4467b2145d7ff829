package repositories

import (
	"context"
	"errors"
	"time"

	"dental-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrPaymentNotFound is returned when no payment matches the link ID.
var ErrPaymentNotFound = errors.New("payment not found")

// PaymentRepository stores issued payment links and their state.
type PaymentRepository struct {
	DB *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *models.TreatmentPayment) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO treatment_payments(doctor_id, patient_id, amount, currency, payment_link_id, short_url, status)
         VALUES($1, $2, $3, $4, $5, $6, $7)
         RETURNING id, created_at, updated_at`,
		p.DoctorID, p.PatientID, p.Amount, p.Currency, p.PaymentLinkID, p.ShortURL, p.Status,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *PaymentRepository) GetByLinkID(ctx context.Context, linkID string) (*models.TreatmentPayment, error) {
	var p models.TreatmentPayment
	err := r.DB.QueryRow(ctx,
		`SELECT id, doctor_id, patient_id, amount, currency, payment_link_id, short_url, status, paid_at, created_at, updated_at
         FROM treatment_payments WHERE payment_link_id=$1`, linkID,
	).Scan(&p.ID, &p.DoctorID, &p.PatientID, &p.Amount, &p.Currency,
		&p.PaymentLinkID, &p.ShortURL, &p.Status, &p.PaidAt, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) ListByPatient(ctx context.Context, doctorID, patientID int) ([]*models.TreatmentPayment, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, doctor_id, patient_id, amount, currency, payment_link_id, short_url, status, paid_at, created_at, updated_at
         FROM treatment_payments WHERE doctor_id=$1 AND patient_id=$2
         ORDER BY created_at DESC`, doctorID, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.TreatmentPayment
	for rows.Next() {
		var p models.TreatmentPayment
		if err := rows.Scan(&p.ID, &p.DoctorID, &p.PatientID, &p.Amount, &p.Currency,
			&p.PaymentLinkID, &p.ShortURL, &p.Status, &p.PaidAt, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, &p)
	}
	return payments, rows.Err()
}

// MarkStatus updates the link state; paidAt may be nil for non-paid states.
func (r *PaymentRepository) MarkStatus(ctx context.Context, linkID, status string, paidAt *time.Time) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE treatment_payments SET status=$1, paid_at=$2, updated_at=CURRENT_TIMESTAMP
         WHERE payment_link_id=$3`, status, paidAt, linkID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPaymentNotFound
	}
	return nil
}
