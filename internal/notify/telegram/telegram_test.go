package telegram

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBot struct {
	got []tgbotapi.MessageConfig
	err error
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.err != nil {
		return tgbotapi.Message{}, f.err
	}
	f.got = append(f.got, c.(tgbotapi.MessageConfig))
	return tgbotapi.Message{MessageID: len(f.got)}, nil
}

func TestSend(t *testing.T) {
	bot := &fakeBot{}
	a := NewWithSender(bot, -1001)

	require.NoError(t, a.Send(context.Background(), "ignored@x.com", "🆕 Nova inscrição", "Ana Silva <ana@x.com>"))
	require.Len(t, bot.got, 1)
	assert.Equal(t, int64(-1001), bot.got[0].ChatID)
	assert.Equal(t, "🆕 Nova inscrição\nAna Silva <ana@x.com>", bot.got[0].Text)
}

func TestSend_Errors(t *testing.T) {
	a := NewWithSender(&fakeBot{err: errors.New("Forbidden: bot was kicked")}, 1)
	err := a.Send(context.Background(), "", "s", "b")
	assert.ErrorContains(t, err, "bot was kicked")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, NewWithSender(&fakeBot{}, 1).Send(ctx, "", "s", ""), context.Canceled)
}
