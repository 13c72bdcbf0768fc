package services

import (
	"fmt"
	"net/smtp"
	"strings"

	"main/config"
)

// Mailer sends outbound email. Send failures are logged by callers and
// never surfaced to a user-facing request.
type Mailer interface {
	Send(subject string, body string, from string, to []string) error
}

type SMTPMailer struct {
	host     string
	addr     string
	username string
	password string
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		host:     cfg.Host,
		addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		username: cfg.Username,
		password: cfg.Password,
	}
}

func (m *SMTPMailer) Send(subject string, body string, from string, to []string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		from, strings.Join(to, ", "), subject, body)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return smtp.SendMail(m.addr, auth, from, to, []byte(msg))
}
