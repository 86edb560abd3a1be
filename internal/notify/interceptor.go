package notify

import (
	"context"
	"errors"

	"github.com/allisson/rotator-admin/internal/gateway"
	"github.com/allisson/rotator-admin/internal/locale"
)

// MessageSource yields the fallback strings for the active locale.
type MessageSource interface {
	Messages(ctx context.Context) locale.Messages
}

// Interceptor reports gateway failures as notifications. It observes only: the failure is always
// returned to the caller and nothing is retried.
type Interceptor struct {
	notifier Notifier
	messages MessageSource
}

// NewInterceptor creates an Interceptor.
func NewInterceptor(notifier Notifier, messages MessageSource) *Interceptor {
	return &Interceptor{notifier: notifier, messages: messages}
}

// OnFailure emits one error notification for err and returns err.
func (i *Interceptor) OnFailure(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	i.notifier.Notify(ctx, Notification{Level: LevelError, Message: i.message(ctx, err)})
	return err
}

func (i *Interceptor) message(ctx context.Context, err error) string {
	fallback := i.messages.Messages(ctx)

	var network *gateway.NetworkFailure
	if errors.As(err, &network) {
		return fallback.NetworkFailure
	}

	var failure *gateway.RequestFailure
	if errors.As(err, &failure) && failure.Message != "" {
		return failure.Message
	}
	return fallback.RequestFailed
}
