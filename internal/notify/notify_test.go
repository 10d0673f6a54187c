package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"openday/internal/config"
	"openday/internal/models"
	"openday/internal/notify/smtp"
	"openday/internal/notify/stub"
)

func ana(challenge bool, team string) models.Registration {
	return models.Registration{Name: "Ana", Surname: "Silva", Email: "ana@x.com", Challenge: challenge, TeamName: team}
}

func TestRegistrantMessage(t *testing.T) {
	subject, body := RegistrantMessage(Event{Kind: KindConfirmed, Registration: ana(false, models.TeamPlaceholder)}, "https://openday.example.com")
	assert.Equal(t, "IBM Journey | Confirmação de inscrição", subject)
	assert.Contains(t, body, "Olá Ana,")
	assert.Contains(t, body, "Mode: Open Day only")
	assert.Contains(t, body, "Team: —")
	assert.Contains(t, body, "https://openday.example.com")

	subject, body = RegistrantMessage(Event{Kind: KindUpdated, Registration: ana(true, "Rocket"), Previous: models.ModeOpenDay}, "")
	assert.Equal(t, "IBM Journey | Inscrição atualizada", subject)
	assert.Contains(t, body, "Previous mode: Open Day only")
	assert.Contains(t, body, "New mode: Open Day + Challenge")
	assert.Contains(t, body, "Team: Rocket")
	assert.NotContains(t, body, "acede")

	subject, body = RegistrantMessage(Event{Kind: KindCancelled, Registration: ana(false, "")}, "https://x")
	assert.Equal(t, "IBM Journey | Inscrição cancelada", subject)
	assert.Contains(t, body, "cancelada")
}

func TestOrganizerMessage(t *testing.T) {
	_, body := OrganizerMessage(Event{Kind: KindUpdated, Registration: ana(true, "Rocket"), Previous: models.ModeOpenDay})
	assert.Equal(t, "Ana Silva <ana@x.com>\nOpen Day only → Open Day + Challenge · Rocket", body)
}

func TestDispatcher_RegistrantFailureIsReturned(t *testing.T) {
	registrant := stub.New(nil)
	registrant.FailWith(errors.New("535 auth failed"))
	organizer := stub.New(nil)

	d := NewDispatcher(registrant, "", nil, nil, organizer)
	err := d.Notify(context.Background(), Event{Kind: KindConfirmed, Registration: ana(false, "")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "535 auth failed")
	assert.Len(t, organizer.Sent(), 1, "organizers are alerted even when the email fails")
}

func TestDispatcher_OrganizerFailureIsOnlyLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	registrant := stub.New(nil)
	organizer := stub.New(nil)
	organizer.FailWith(errors.New("chat not found"))

	d := NewDispatcher(registrant, "https://x", zap.New(core), nil, organizer)
	require.NoError(t, d.Notify(context.Background(), Event{Kind: KindCancelled, Registration: ana(false, "")}))

	sent := registrant.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "ana@x.com", sent[0].To)
	assert.Equal(t, 1, logs.FilterMessage("organizer alert failed").Len())
}

func TestNewRegistrantNotifier(t *testing.T) {
	n, err := NewRegistrantNotifier(config.Config{NotifyProvider: config.NotifyStub}, nil)
	require.NoError(t, err)
	assert.IsType(t, &stub.Provider{}, n)

	n, err = NewRegistrantNotifier(config.Config{NotifyProvider: config.NotifySMTP, SMTPHost: "h", SMTPPort: 465}, nil)
	require.NoError(t, err)
	assert.IsType(t, &smtp.Sender{}, n)

	_, err = NewRegistrantNotifier(config.Config{NotifyProvider: "pigeon"}, nil)
	assert.Error(t, err)
}

func TestNewOrganizerNotifiers_NoneConfigured(t *testing.T) {
	out, err := NewOrganizerNotifiers(config.Config{})
	require.NoError(t, err)
	assert.Empty(t, out)
}
