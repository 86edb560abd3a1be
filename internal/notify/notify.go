// Package notify surfaces user-visible notifications and provides the error interceptor that turns
// gateway failures into exactly one notification each.
package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Level classifies a notification.
type Level int

const (
	// LevelInfo is a neutral message.
	LevelInfo Level = iota
	// LevelSuccess confirms that an operation completed.
	LevelSuccess
	// LevelError reports a failed request.
	LevelError
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notification is a single message shown to the user.
type Notification struct {
	Level   Level
	Message string
}

// Notifier displays notifications.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// WriterNotifier renders notifications as lines on a writer, typically the terminal's stderr.
type WriterNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterNotifier creates a WriterNotifier writing to w.
func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{w: w}
}

// Notify implements Notifier.
func (n *WriterNotifier) Notify(_ context.Context, notification Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, _ = fmt.Fprintf(n.w, "[%s] %s\n", notification.Level, notification.Message)
}

// LogNotifier records notifications on a structured logger at debug level. The terminal copy comes
// from WriterNotifier, so a failure shows up once unless debug logging is on.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify implements Notifier.
func (n *LogNotifier) Notify(ctx context.Context, notification Notification) {
	n.logger.DebugContext(ctx, "notification",
		slog.String("kind", notification.Level.String()),
		slog.String("message", notification.Message),
	)
}

// Multi fans a notification out to every notifier.
type Multi []Notifier

// Notify implements Notifier.
func (m Multi) Notify(ctx context.Context, notification Notification) {
	for _, n := range m {
		n.Notify(ctx, notification)
	}
}

// Recorder keeps notifications in memory.
type Recorder struct {
	mu            sync.Mutex
	notifications []Notification
}

// Notify implements Notifier.
func (r *Recorder) Notify(_ context.Context, notification Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, notification)
}

// Notifications returns a copy of everything recorded so far.
func (r *Recorder) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.notifications))
	copy(out, r.notifications)
	return out
}
