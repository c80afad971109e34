package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/garyjia/bill-review/internal/domain/event"
)

// ErrClosed is returned when an event is dispatched after Close
var ErrClosed = errors.New("dispatcher is closed")

// Dispatcher fans bill events out to their subscribers
type Dispatcher interface {
	// Subscribe registers a named handler for an event type
	Subscribe(eventType event.Type, name string, handler Handler)

	// SubscribeAll registers the same handler for several event types
	SubscribeAll(eventTypes []event.Type, name string, handler Handler)

	// Unsubscribe removes a handler by name
	Unsubscribe(eventType event.Type, name string)

	// Dispatch runs the subscribers in registration order and stops at the first error
	Dispatch(ctx context.Context, evt *event.Event) error

	// DispatchAsync runs every subscriber in its own goroutine.
	// Handlers keep the context values but not its cancellation.
	DispatchAsync(ctx context.Context, evt *event.Event)

	// Subscriptions returns the handlers registered for an event type
	Subscriptions(eventType event.Type) []Subscription

	// Close rejects new events and waits for running async handlers
	Close() error
}

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

type eventDispatcher struct {
	mu            sync.RWMutex
	subscriptions map[event.Type][]Subscription
	logger        Logger

	wg     sync.WaitGroup
	closed atomic.Bool
}

// Option configures the dispatcher
type Option func(*eventDispatcher)

// WithLogger sets a logger for the dispatcher
func WithLogger(logger Logger) Option {
	return func(d *eventDispatcher) {
		d.logger = logger
	}
}

// NewDispatcher creates a new event dispatcher
func NewDispatcher(opts ...Option) Dispatcher {
	d := &eventDispatcher{
		subscriptions: make(map[event.Type][]Subscription),
		logger:        nopLogger{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *eventDispatcher) Subscribe(eventType event.Type, name string, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if name == "" {
		name = fmt.Sprintf("handler-%d", len(d.subscriptions[eventType]))
	}
	d.subscriptions[eventType] = append(d.subscriptions[eventType], Subscription{
		Name:      name,
		EventType: eventType,
		handler:   handler,
	})

	d.logger.Info("Handler registered", "event_type", eventType, "handler_name", name)
}

func (d *eventDispatcher) SubscribeAll(eventTypes []event.Type, name string, handler Handler) {
	for _, eventType := range eventTypes {
		d.Subscribe(eventType, name, handler)
	}
}

func (d *eventDispatcher) Unsubscribe(eventType event.Type, name string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.subscriptions[eventType] = slices.DeleteFunc(slices.Clone(d.subscriptions[eventType]), func(s Subscription) bool {
		return s.Name == name
	})

	d.logger.Info("Handler unregistered", "event_type", eventType, "handler_name", name)
}

func (d *eventDispatcher) Dispatch(ctx context.Context, evt *event.Event) error {
	if d.closed.Load() {
		return ErrClosed
	}

	subs := d.snapshot(evt.Type)
	d.logger.Info("Dispatching event", "event_type", evt.Type, "event_id", evt.ID, "bill_id", evt.BillID, "handler_count", len(subs))

	for _, sub := range subs {
		if err := d.safeExecute(ctx, evt, sub); err != nil {
			d.logger.Error("Handler error", "event_type", evt.Type, "event_id", evt.ID, "handler_name", sub.Name, "error", err)
			return fmt.Errorf("handler %s failed: %w", sub.Name, err)
		}
	}
	return nil
}

func (d *eventDispatcher) DispatchAsync(ctx context.Context, evt *event.Event) {
	if d.closed.Load() {
		d.logger.Error("Cannot dispatch async event, dispatcher is closed", "event_type", evt.Type, "event_id", evt.ID)
		return
	}

	subs := d.snapshot(evt.Type)
	d.logger.Info("Dispatching event asynchronously", "event_type", evt.Type, "event_id", evt.ID, "bill_id", evt.BillID, "handler_count", len(subs))

	// the request that produced the event usually ends before its handlers
	detached := context.WithoutCancel(ctx)
	for _, sub := range subs {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			if err := d.safeExecute(detached, evt, sub); err != nil {
				d.logger.Error("Async handler error", "event_type", evt.Type, "event_id", evt.ID, "handler_name", sub.Name, "error", err)
			}
		}()
	}
}

func (d *eventDispatcher) Subscriptions(eventType event.Type) []Subscription {
	subs := d.snapshot(eventType)
	for i := range subs {
		subs[i].handler = nil
	}
	return subs
}

func (d *eventDispatcher) Close() error {
	if !d.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}

	d.logger.Info("Closing dispatcher, waiting for async handlers")
	d.wg.Wait()
	d.logger.Info("Dispatcher closed")
	return nil
}

func (d *eventDispatcher) snapshot(eventType event.Type) []Subscription {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.subscriptions[eventType])
}

// safeExecute runs a handler with panic recovery
func (d *eventDispatcher) safeExecute(ctx context.Context, evt *event.Event, sub Subscription) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
			d.logger.Error("Handler panic recovered", "event_type", evt.Type, "event_id", evt.ID, "handler_name", sub.Name, "panic", r)
		}
	}()

	return sub.handler(ctx, evt)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
