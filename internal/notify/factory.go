package notify

import (
	"fmt"

	"go.uber.org/zap"

	"openday/internal/config"
	"openday/internal/notify/smtp"
	"openday/internal/notify/stub"
	"openday/internal/notify/telegram"
)

func NewRegistrantNotifier(cfg config.Config, logger *zap.Logger) (Notifier, error) {
	switch cfg.NotifyProvider {
	case config.NotifySMTP:
		return smtp.New(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailSender, cfg.EmailPassword), nil
	case config.NotifyStub:
		return stub.New(logger), nil
	default:
		return nil, fmt.Errorf("unknown notify provider: %s", cfg.NotifyProvider)
	}
}

// NewOrganizerNotifiers returns the configured organizer channels, possibly none.
func NewOrganizerNotifiers(cfg config.Config) ([]Notifier, error) {
	var out []Notifier
	if cfg.TelegramEnabled() {
		t, err := telegram.New(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			return nil, fmt.Errorf("telegram: %w", err)
		}
		out = append(out, t)
	}
	return out, nil
}
