// Package mail sends transactional email over SMTP.
package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPMailer implements the auth usecase's Mailer over a gomail dialer.
type SMTPMailer struct {
	dialer      *gomail.Dialer
	from        string
	frontendURL string
}

// NewSMTPMailer creates a mailer for the given SMTP account. frontendURL
// is the dashboard origin the reset link points at.
func NewSMTPMailer(host string, port int, user, pass, frontendURL string) *SMTPMailer {
	return &SMTPMailer{
		dialer:      gomail.NewDialer(host, port, user, pass),
		from:        user,
		frontendURL: frontendURL,
	}
}

// SendPasswordReset mails the reset link for the given token.
func (m *SMTPMailer) SendPasswordReset(to, resetToken string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", m.frontendURL, resetToken)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Password Reset Request - Bug Dashboard")
	msg.SetBody("text/html", passwordResetBody(resetURL, to))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}
