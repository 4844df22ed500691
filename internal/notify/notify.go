// Package notify is the fire-and-forget user-facing notification
// channel. Rendering (toasts, banners) lives in the UI layer; this
// module only emits the outcome of each mutating operation.
package notify

import (
	"context"

	"finbook/internal/log"
)

// Level is the visual category of a notification.
type Level string

const (
	Positive Level = "positive"
	Negative Level = "negative"
)

// Notifier delivers success/failure messages to the user.
type Notifier interface {
	Notify(ctx context.Context, level Level, message string)
}

// LogNotifier renders notifications through the structured log, the
// default when no UI channel is wired in.
type LogNotifier struct {
	logger *log.Logger
}

var _ Notifier = (*LogNotifier)(nil)

func NewLogNotifier(logger *log.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.WithComponent(log.ComponentNotify)}
}

func (n *LogNotifier) Notify(ctx context.Context, level Level, message string) {
	if level == Negative {
		n.logger.WarnContext(ctx, message, "level", string(level))
		return
	}
	n.logger.InfoContext(ctx, message, "level", string(level))
}
