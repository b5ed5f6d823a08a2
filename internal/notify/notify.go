// Package notify delivers user-facing notifications. Only a log-backed
// implementation ships; real delivery plugs in behind Notifier.
package notify

import (
	"context"
	"log/slog"
)

type Message struct {
	To      string
	Subject string
	Body    string
	// Kind groups messages in logs, e.g. "invoice_sent".
	Kind string
}

type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// LogNotifier writes every message to the structured log instead of sending it.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, msg Message) error {
	n.logger.InfoContext(ctx, "notification",
		"kind", msg.Kind,
		"to", msg.To,
		"subject", msg.Subject,
		"body_len", len(msg.Body),
	)
	return nil
}
