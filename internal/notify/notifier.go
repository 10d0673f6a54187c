package notify

import "context"

// Notifier delivers one plain-text message over a single channel.
type Notifier interface {
	Name() string

	// Send delivers subject and body to the recipient. Channels that have a
	// fixed destination, like an organizer chat, ignore to.
	Send(ctx context.Context, to, subject, body string) error
}
