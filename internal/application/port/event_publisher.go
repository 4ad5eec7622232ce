package port

import (
	"context"
)

// EventPublisher defines the interface for publishing events to a message broker
type EventPublisher interface {
	// Publish marshals event and publishes it to the publisher's subject
	Publish(ctx context.Context, event interface{}) error

	// Close flushes pending messages and closes the connection
	Close() error
}
