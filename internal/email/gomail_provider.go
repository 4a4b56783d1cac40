package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// GomailProvider отправляет письма через SMTP с помощью gomail
type GomailProvider struct {
	dialer   Dialer
	from     string
	fromName string
}

func NewGomailProvider(cfg SMTPConfig) *GomailProvider {
	return &GomailProvider{
		dialer:   gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:     cfg.FromEmail,
		fromName: cfg.FromName,
	}
}

// NewGomailProviderWithDialer позволяет подставить тестовый dialer
func NewGomailProviderWithDialer(d Dialer, from, fromName string) *GomailProvider {
	return &GomailProvider{dialer: d, from: from, fromName: fromName}
}

func (p *GomailProvider) Send(email *Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("email has no recipients")
	}

	m := gomail.NewMessage()
	from := email.From
	if from == "" {
		from = p.from
	}
	if p.fromName != "" && email.From == "" {
		m.SetAddressHeader("From", from, p.fromName)
	} else {
		m.SetHeader("From", from)
	}
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)

	if email.HTMLBody != "" {
		m.SetBody("text/html", email.HTMLBody)
		if email.Body != "" {
			m.AddAlternative("text/plain", email.Body)
		}
	} else {
		m.SetBody("text/plain", email.Body)
	}

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
