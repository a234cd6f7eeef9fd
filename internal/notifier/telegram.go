// Package notifier delivers escalation alerts through Telegram. It is the
// messaging collaborator of the threat pipeline: the pipeline decides, the
// notifier sends.
package notifier

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"threatguard/internal/config"
	"threatguard/internal/models"
)

// Telegram pushes threat alerts to a configured chat.
type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
	logger *zap.Logger
}

// NewTelegram creates the notifier. Returns (nil, nil) when the notifier is
// disabled or no token is configured; callers skip delivery in that case.
func NewTelegram(cfg *config.Config, logger *zap.Logger) (*Telegram, error) {
	if !cfg.Notifier.Enabled || cfg.Notifier.TelegramBotToken == "" {
		logger.Info("Telegram notifier is disabled (notifier.enabled=false or token is empty)")
		return nil, nil
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.Notifier.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot API: %w", err)
	}

	logger.Info("Telegram notifier authorized", zap.String("username", botAPI.Self.UserName))

	return &Telegram{
		api:    botAPI,
		chatID: cfg.Notifier.ChatID,
		logger: logger,
	}, nil
}

// SendThreatAlert delivers one escalation notification.
func (t *Telegram) SendThreatAlert(n *models.Notification) error {
	text := fmt.Sprintf("⚠️ %s\n\n%s\n\nPriority: %s", n.Title, n.Message, n.Priority)

	msg := tgbotapi.NewMessage(t.chatID, text)
	if _, err := t.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send Telegram alert: %w", err)
	}

	t.logger.Info("Threat alert delivered",
		zap.String("notification_id", n.ID),
		zap.String("priority", n.Priority))
	return nil
}
