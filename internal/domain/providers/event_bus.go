package providers

import (
	"context"

	"github.com/tricoghealth/intake-assistant/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to intake events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.IntakeEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.IntakeEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

const (
	// EventChannelIntakeCompleted is the channel completion events are
	// published on; the completion dispatcher is its consumer
	EventChannelIntakeCompleted = "intake:completed"
)
