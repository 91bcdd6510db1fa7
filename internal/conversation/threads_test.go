package conversation

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propchain/propchain-api/internal/store/schema"
)

func buildMessage(propertyID, senderID, recipientID uuid.UUID, body string, at time.Time, read bool) *schema.Message {
	return &schema.Message{
		ID:          uuid.New(),
		PropertyID:  propertyID,
		SenderID:    senderID,
		RecipientID: recipientID,
		Body:        body,
		Read:        read,
		CreatedAt:   at,
	}
}

func TestProject(t *testing.T) {
	userID := uuid.New()
	buyerID := uuid.New()
	agentID := uuid.New()
	houseID := uuid.New()
	condoID := uuid.New()

	base := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	messages := []*schema.Message{
		buildMessage(houseID, buyerID, userID, "Is the house available?", base, false),
		buildMessage(houseID, userID, buyerID, "Yes it is", base.Add(time.Minute), false),
		buildMessage(houseID, buyerID, userID, "Great, when can I visit?", base.Add(2*time.Minute), false),
		// same counterpart, different property is a separate thread
		buildMessage(condoID, buyerID, userID, "And the condo?", base.Add(3*time.Minute), true),
		// different counterpart, same property is a separate thread
		buildMessage(houseID, agentID, userID, "I have a client", base.Add(4*time.Minute), false),
	}

	threads := Project(userID, messages)
	require.Len(t, threads, 3)

	// ordered by most recent last message
	assert.Equal(t, agentID, threads[0].CounterpartID)
	assert.Equal(t, houseID, threads[0].PropertyID)
	assert.Equal(t, condoID, threads[1].PropertyID)
	assert.Equal(t, buyerID, threads[2].CounterpartID)
	assert.Equal(t, houseID, threads[2].PropertyID)

	houseThread := threads[2]
	assert.Equal(t, 3, houseThread.MessageCount)
	// unread counts only messages sent to the user
	assert.Equal(t, 2, houseThread.UnreadCount)
	assert.Equal(t, "Great, when can I visit?", houseThread.LastMessage.Body)

	condoThread := threads[1]
	assert.Equal(t, 1, condoThread.MessageCount)
	assert.Equal(t, 0, condoThread.UnreadCount)
}

func TestProjectSkipsForeignMessages(t *testing.T) {
	userID := uuid.New()
	others := []*schema.Message{
		buildMessage(uuid.New(), uuid.New(), uuid.New(), "not yours", time.Now(), false),
	}

	assert.Empty(t, Project(userID, others))
}

func TestProjectSelfCounterpart(t *testing.T) {
	userID := uuid.New()
	propertyID := uuid.New()

	// a note to self groups under the user's own ID
	messages := []*schema.Message{
		buildMessage(propertyID, userID, userID, "reminder", time.Now(), false),
	}

	threads := Project(userID, messages)
	require.Len(t, threads, 1)
	assert.Equal(t, userID, threads[0].CounterpartID)
}
