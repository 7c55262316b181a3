package mailing

import (
	"fmt"
	"html"
	"recipe-catalog/internal/utils"
	"strconv"

	"gopkg.in/gomail.v2"
)

type (
	Mailer interface {
		SendMail(toEmail string, subject string, body string) error
	}

	MailConfig struct {
		SMTPHost     string
		SMTPPort     string
		SMTPSender   string
		SMTPEmail    string
		SMTPPassword string
	}

	smtpMailer struct {
		config MailConfig
	}

	nopMailer struct{}
)

func LoadMailConfig(config utils.Config) MailConfig {
	return MailConfig{
		SMTPHost:     config.SMTPHost,
		SMTPPort:     config.SMTPPort,
		SMTPSender:   config.SMTPSenderName,
		SMTPEmail:    config.SMTPAuthEmail,
		SMTPPassword: config.SMTPAuthPassword,
	}
}

// NewMailer returns an SMTP mailer, or a mailer that drops every message when
// no SMTP host is configured.
func NewMailer(config MailConfig) Mailer {
	if config.SMTPHost == "" {
		return nopMailer{}
	}
	return &smtpMailer{config: config}
}

func (m *smtpMailer) SendMail(toEmail string, subject string, body string) error {
	mailer := gomail.NewMessage()
	if m.config.SMTPSender != "" {
		mailer.SetAddressHeader("From", m.config.SMTPEmail, m.config.SMTPSender)
	} else {
		mailer.SetHeader("From", m.config.SMTPEmail)
	}
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)

	port, err := strconv.Atoi(m.config.SMTPPort)
	if err != nil {
		return fmt.Errorf("invalid SMTP port %q: %w", m.config.SMTPPort, err)
	}
	dialer := gomail.NewDialer(
		m.config.SMTPHost,
		port,
		m.config.SMTPEmail,
		m.config.SMTPPassword,
	)

	return dialer.DialAndSend(mailer)
}

func (nopMailer) SendMail(string, string, string) error {
	return nil
}

func WelcomeBody(fullName string) string {
	return fmt.Sprintf("<p>Hi %s,</p><p>Your recipe catalog account is ready.</p>", html.EscapeString(fullName))
}
