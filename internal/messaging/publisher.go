package messaging

import (
	"context"

	"github.com/propchain/propchain-api/internal/domain"
)

// Publisher defines the interface for publishing events to the message broker
type Publisher interface {
	// PublishEvent publishes a listing event
	PublishEvent(ctx context.Context, event *domain.ListingEvent) error
	// Close closes the connection
	Close()
}
