package models

import "time"

// TreatmentPayment tracks a Razorpay payment link issued for a patient's
// final treatment total.
type TreatmentPayment struct {
	ID            int        `json:"id"`
	DoctorID      int        `json:"doctor_id"`
	PatientID     int        `json:"patient_id"`
	Amount        float64    `json:"amount"`
	Currency      string     `json:"currency"`
	PaymentLinkID string     `json:"payment_link_id"`
	ShortURL      string     `json:"short_url"`
	Status        string     `json:"status"` // created, paid, cancelled, expired
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// CreatePaymentLinkRequest issues a payment link for the current plan total
type CreatePaymentLinkRequest struct {
	Discount float64 `json:"discount"`
	ApplyTax bool    `json:"apply_tax"`
}
