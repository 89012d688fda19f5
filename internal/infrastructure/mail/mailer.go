package mail

import (
	"context"
	"fmt"
	"net/smtp"

	"go.uber.org/zap"
	"monkframe.backend/internal/config"
	"monkframe.backend/pkg/logger"
)

// Mailer sends emails.
type Mailer interface {
	SendEmail(to, subject, body string) error
}

type mailer struct {
	host     string
	port     string
	from     string
	username string
	password string
}

var smtpSendMail = smtp.SendMail

// NewMailer builds a mailer from config. Without SMTP credentials it falls
// back to a sink that only logs, so the OTP flow keeps working in dev.
func NewMailer(cfg *config.Config) Mailer {
	if !cfg.SMTP.Configured() {
		return &logMailer{}
	}
	return &mailer{
		host:     cfg.SMTP.Host,
		port:     cfg.SMTP.Port,
		from:     cfg.SMTP.From,
		username: cfg.SMTP.Username,
		password: cfg.SMTP.Password,
	}
}

func (m *mailer) SendEmail(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", m.from, to, subject, body)
	addr := fmt.Sprintf("%s:%s", m.host, m.port)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return smtpSendMail(addr, auth, m.from, []string{to}, []byte(msg))
}

type logMailer struct{}

func (l *logMailer) SendEmail(to, subject, _ string) error {
	logger.Warn(context.Background(), "SMTP not configured, email not sent",
		zap.String("to", to),
		zap.String("subject", subject),
	)
	return nil
}

// OTPBody formats the signup code email
func OTPBody(code string) string {
	return fmt.Sprintf("Your Monkframe verification code is %s. It expires in 10 minutes.\r\n\r\nIf you did not request this code, you can ignore this email.", code)
}
