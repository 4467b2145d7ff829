package mailer

import (
	"testing"

	"dental-backend/internal/config"
)

func TestMockMailerRecordsSends(t *testing.T) {
	m := NewMockMailer()

	if err := m.Send("doc@example.com", "Inventory alert", "<p>gloves low</p>"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(m.Sent) != 1 {
		t.Fatalf("expected 1 sent mail, got %d", len(m.Sent))
	}
	if m.Sent[0].To != "doc@example.com" || m.Sent[0].Subject != "Inventory alert" {
		t.Errorf("unexpected mail: %+v", m.Sent[0])
	}
}

func TestSMTPMailerUnconfigured(t *testing.T) {
	m := NewSMTPMailer(&config.Config{})

	if m.Configured() {
		t.Error("expected empty credentials to read unconfigured")
	}
	if err := m.Send("doc@example.com", "x", "y"); err == nil {
		t.Error("expected error sending without credentials")
	}
}
