package app

import (
	"mwork_admission/internal/email"
	"mwork_admission/internal/logger"
)

// LogEmailProvider используется для тестов и локальной разработки, когда SMTP не настроен.
type LogEmailProvider struct{}

func (m *LogEmailProvider) Send(e *email.Email) error {
	logger.Debug("email skipped (smtp disabled)", "to", e.To, "subject", e.Subject)
	return nil
}
