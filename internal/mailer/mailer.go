package mailer

import (
	"fmt"

	"dental-backend/internal/config"

	gomail "gopkg.in/gomail.v2"
)

// Mailer is an interface for sending clinic emails
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// SMTPMailer sends mail through the configured SMTP relay.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		host:     cfg.SMTP.Host,
		port:     cfg.SMTP.Port,
		username: cfg.SMTP.Username,
		password: cfg.SMTP.Password,
		from:     cfg.SMTP.From,
	}
}

// Configured reports whether SMTP credentials are present. Alerts are
// skipped silently when they are not.
func (m *SMTPMailer) Configured() bool {
	return m.username != "" && m.password != ""
}

func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	if !m.Configured() {
		return fmt.Errorf("smtp credentials not configured")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	dialer := gomail.NewDialer(m.host, m.port, m.username, m.password)
	return dialer.DialAndSend(msg)
}

// MockMailer is a mock implementation for testing (prints to console)
type MockMailer struct {
	Sent []SentMail
}

type SentMail struct {
	To      string
	Subject string
	Body    string
}

func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) Send(to, subject, htmlBody string) error {
	m.Sent = append(m.Sent, SentMail{To: to, Subject: subject, Body: htmlBody})
	fmt.Printf("\n========== MOCK MAIL ==========\n")
	fmt.Printf("To: %s\n", to)
	fmt.Printf("Subject: %s\n", subject)
	fmt.Printf("===============================\n\n")
	return nil
}
