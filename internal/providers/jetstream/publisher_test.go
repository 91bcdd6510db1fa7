package jetstream

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/propchain/propchain-api/internal/domain"
)

func TestBuildSubject(t *testing.T) {
	now := time.Now()

	tests := []struct {
		eventType domain.EventType
		subject   string
	}{
		{domain.EventListingCreated, "propchain.listings.created"},
		{domain.EventListingUpdated, "propchain.listings.updated"},
		{domain.EventListingDeleted, "propchain.listings.deleted"},
		{domain.EventRatesUpdated, "propchain.rates.updated"},
		{domain.EventType("custom"), "propchain.events.custom"},
	}

	for _, tt := range tests {
		t.Run(string(tt.eventType), func(t *testing.T) {
			event := domain.NewListingEvent(tt.eventType, now)
			assert.Equal(t, tt.subject, buildSubject(&event))
		})
	}
}
