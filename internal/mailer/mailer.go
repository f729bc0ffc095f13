package mailer

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
)

// Mailer delivers password-reset codes. Sending is fire-and-forget
// from the caller's perspective; failures are logged, not propagated.
type Mailer interface {
	SendPasswordResetCode(ctx context.Context, toEmail, code string) error
}

// SMTPMailer sends mail through a plain SMTP relay with AUTH.
type SMTPMailer struct {
	host     string
	port     string
	username string
	password string
}

func NewSMTP(host, port, username, password string) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, username: username, password: password}
}

func (m *SMTPMailer) SendPasswordResetCode(_ context.Context, toEmail, code string) error {
	body := fmt.Sprintf(
		"Subject: Password reset code\r\nFrom: Hotel Sibiria <%s>\r\nTo: %s\r\n\r\n"+
			"Hello!\r\n\r\nYour password reset code: %s\r\n\r\n"+
			"If you did not request a reset, just ignore this message.\r\n",
		m.username, toEmail, code,
	)

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	return smtp.SendMail(m.host+":"+m.port, auth, m.username, []string{toEmail}, []byte(body))
}

// DevConsoleMailer logs codes instead of sending them; used whenever
// SMTP credentials are absent.
type DevConsoleMailer struct{}

func NewDevConsole() *DevConsoleMailer { return &DevConsoleMailer{} }

func (m *DevConsoleMailer) SendPasswordResetCode(_ context.Context, toEmail, code string) error {
	log.Printf("[DEV-EMAIL] password reset code email=%s code=%s", toEmail, code)
	return nil
}
