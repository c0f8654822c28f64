package app

import (
	"strings"

	"docflow_backend/internal/config"
	"docflow_backend/internal/email"
	"docflow_backend/internal/logger"
)

// NewMailer возвращает nil, если SMTP не настроен: письма об ошибках бэкапа не отправляются
func NewMailer(cfg *config.Config) email.Provider {
	smtp := &email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
	}
	if !smtp.Enabled() {
		logger.Warn("SMTP is not configured, backup alerts are disabled")
		return nil
	}

	provider := email.NewGomailProvider(smtp, email.NewTemplateManager())
	if err := provider.Validate(); err != nil {
		logger.Warn("Invalid SMTP configuration, backup alerts are disabled", "error", err)
		return nil
	}
	return provider
}

func alertRecipients(list string) []string {
	var out []string
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
