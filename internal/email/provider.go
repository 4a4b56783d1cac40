package email

import "gopkg.in/gomail.v2"

// Provider определяет интерфейс для отправки email
type Provider interface {
	Send(email *Email) error
}

// TemplateRenderer определяет интерфейс для рендеринга шаблонов
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
}

// Dialer - часть gomail.Dialer, которую мы используем. Подменяется в тестах.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}
