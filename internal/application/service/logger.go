package service

import (
	"context"

	"github.com/garyjia/bill-review/internal/domain/event"
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// EventPublisher publishes bill events without waiting for subscribers
type EventPublisher interface {
	DispatchAsync(ctx context.Context, evt *event.Event)
}

func publish(ctx context.Context, publisher EventPublisher, evt *event.Event) {
	if publisher == nil {
		return
	}
	publisher.DispatchAsync(ctx, evt)
}

func navigateTo(navigate func(string), route string) {
	if navigate != nil {
		navigate(route)
	}
}
