package dispatcher

import (
	"context"

	"github.com/garyjia/bill-review/internal/domain/event"
)

// Handler processes one bill event
type Handler func(ctx context.Context, evt *event.Event) error

// Subscription describes a registered handler
type Subscription struct {
	Name      string     `json:"name"`
	EventType event.Type `json:"event_type"`
	handler   Handler
}
