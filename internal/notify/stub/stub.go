package stub

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Stub provider: logs each message instead of delivering it and keeps a copy.
// Used for local runs (NOTIFY_PROVIDER=stub) and tests.

type Message struct {
	To      string
	Subject string
	Body    string
}

type Provider struct {
	logger *zap.Logger

	mu   sync.Mutex
	sent []Message
	err  error
}

func New(logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{logger: logger}
}

func (p *Provider) Name() string { return "stub" }

func (p *Provider) Send(ctx context.Context, to, subject, body string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, Message{To: to, Subject: subject, Body: body})
	p.logger.Info("notification (stub)",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}

// FailWith makes every following Send return err. Nil restores delivery.
func (p *Provider) FailWith(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

func (p *Provider) Sent() []Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Message, len(p.sent))
	copy(out, p.sent)
	return out
}
