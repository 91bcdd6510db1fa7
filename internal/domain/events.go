package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// EventType identifies the kind of event published to the message broker
type EventType string

const (
	EventListingCreated EventType = "listing_created"
	EventListingUpdated EventType = "listing_updated"
	EventListingDeleted EventType = "listing_deleted"
	EventRatesUpdated   EventType = "rates_updated"
)

// ListingEvent is published when a listing changes or rates refresh.
// EventID is a ULID so consumers can order and deduplicate.
type ListingEvent struct {
	EventID    string     `json:"event_id"`
	EventType  EventType  `json:"event_type"`
	PropertyID *uuid.UUID `json:"property_id,omitempty"`
	OwnerID    *uuid.UUID `json:"owner_id,omitempty"`
	// Currencies lists the codes refreshed by a rates_updated event
	Currencies []Currency `json:"currencies,omitempty"`
	Timestamp  time.Time  `json:"timestamp"`
}

// NewListingEvent builds an event stamped with a fresh ULID
func NewListingEvent(eventType EventType, at time.Time) ListingEvent {
	return ListingEvent{
		EventID:   ulid.MustNewDefault(at).String(),
		EventType: eventType,
		Timestamp: at,
	}
}
