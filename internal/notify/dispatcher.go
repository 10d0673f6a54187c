package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"openday/internal/logging"
	"openday/internal/metrics"
)

// Dispatcher sends the registrant email and fans out organizer alerts.
// Only the registrant delivery result is returned; organizer failures are logged.
type Dispatcher struct {
	registrant Notifier
	organizers []Notifier
	appURL     string
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

func NewDispatcher(registrant Notifier, appURL string, logger *zap.Logger, m *metrics.Metrics, organizers ...Notifier) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		registrant: registrant,
		organizers: organizers,
		appURL:     appURL,
		logger:     logger,
		metrics:    m,
	}
}

func (d *Dispatcher) Notify(ctx context.Context, ev Event) error {
	logger := logging.FromContext(ctx, d.logger)

	subject, body := RegistrantMessage(ev, d.appURL)
	err := d.registrant.Send(ctx, ev.Registration.Email, subject, body)
	d.record(d.registrant.Name(), err)

	subject, body = OrganizerMessage(ev)
	for _, o := range d.organizers {
		oerr := o.Send(ctx, "", subject, body)
		d.record(o.Name(), oerr)
		if oerr != nil {
			logger.Warn("organizer alert failed", zap.String("channel", o.Name()), zap.Error(oerr))
		}
	}

	if err != nil {
		return fmt.Errorf("notify %s: %w", d.registrant.Name(), err)
	}
	return nil
}

func (d *Dispatcher) record(channel string, err error) {
	if err != nil {
		d.metrics.Notification(channel, "error")
		return
	}
	d.metrics.Notification(channel, "ok")
}
