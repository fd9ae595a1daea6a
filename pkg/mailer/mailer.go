package mailer

import (
	"fmt"
	"net/smtp"

	"review-catalog/pkg/utils"

	"go.uber.org/zap"
)

// Mailer delivers outbound mail. The confirmation-code flow only ever
// needs plain-text messages to a single recipient.
type Mailer interface {
	Send(to, subject, body string) error
}

// New returns an SMTP mailer when a host is configured, otherwise a
// logging mailer so development setups work without a mail server.
func New(config utils.EmailConfig, log *zap.Logger) Mailer {
	if config.Host == "" {
		log.Warn("SMTP host not configured, mail will be logged instead of sent")
		return &logMailer{log: log}
	}
	return &smtpMailer{config: config, log: log}
}

type smtpMailer struct {
	config utils.EmailConfig
	log    *zap.Logger
}

func (m *smtpMailer) Send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)

	var auth smtp.Auth
	if m.config.User != "" {
		auth = smtp.PlainAuth("", m.config.User, m.config.Password, m.config.Host)
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		m.config.From, to, subject, body)

	if err := smtp.SendMail(addr, auth, m.config.From, []string{to}, []byte(msg)); err != nil {
		m.log.Error("Failed to send mail",
			zap.Error(err),
			zap.String("to", to),
			zap.String("subject", subject),
		)
		return fmt.Errorf("send mail to %s: %w", to, err)
	}

	return nil
}

// logMailer writes the message to the log. Used in development and in
// tests.
type logMailer struct {
	log *zap.Logger
}

func (m *logMailer) Send(to, subject, body string) error {
	m.log.Info("Mail (not sent)",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}
