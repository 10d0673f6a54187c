// Package telegram posts organizer alerts to a fixed Telegram chat.
package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// sender is the part of *tgbotapi.BotAPI the alerter uses.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Alerter struct {
	bot    sender
	chatID int64
}

func New(token string, chatID int64) (*Alerter, error) {
	b, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	b.Debug = false
	return NewWithSender(b, chatID), nil
}

func NewWithSender(bot sender, chatID int64) *Alerter {
	return &Alerter{bot: bot, chatID: chatID}
}

func (a *Alerter) Name() string { return "telegram" }

// Send ignores to; alerts always go to the organizer chat.
func (a *Alerter) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	text := subject
	if body != "" {
		text += "\n" + body
	}
	msg := tgbotapi.NewMessage(a.chatID, text)
	msg.DisableWebPagePreview = true
	if _, err := a.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
