// Package conversation derives message threads. Threads are never stored;
// they are a pure projection over a user's messages, grouped by the
// (property, counterpart) pair.
package conversation

import (
	"sort"

	"github.com/google/uuid"

	"github.com/propchain/propchain-api/internal/store/schema"
)

// Thread is one conversation between the viewing user and a counterpart
// about a single property.
type Thread struct {
	PropertyID    uuid.UUID       `json:"propertyId"`
	CounterpartID uuid.UUID       `json:"counterpartId"`
	LastMessage   *schema.Message `json:"lastMessage"`
	MessageCount  int             `json:"messageCount"`
	// UnreadCount counts messages sent to the viewing user not yet read
	UnreadCount int `json:"unreadCount"`
}

// threadKey identifies a thread from the viewing user's perspective
type threadKey struct {
	propertyID    uuid.UUID
	counterpartID uuid.UUID
}

// Project groups a user's messages into threads. Messages must belong to the
// user (sent or received); others are skipped. Threads are ordered by their
// last message, most recent first.
func Project(userID uuid.UUID, messages []*schema.Message) []*Thread {
	byKey := make(map[threadKey]*Thread)
	var order []threadKey

	for _, m := range messages {
		var counterpartID uuid.UUID
		switch userID {
		case m.SenderID:
			counterpartID = m.RecipientID
		case m.RecipientID:
			counterpartID = m.SenderID
		default:
			continue
		}

		key := threadKey{propertyID: m.PropertyID, counterpartID: counterpartID}
		thread, ok := byKey[key]
		if !ok {
			thread = &Thread{
				PropertyID:    m.PropertyID,
				CounterpartID: counterpartID,
			}
			byKey[key] = thread
			order = append(order, key)
		}

		thread.MessageCount++
		if m.RecipientID == userID && !m.Read {
			thread.UnreadCount++
		}
		if thread.LastMessage == nil || m.CreatedAt.After(thread.LastMessage.CreatedAt) {
			thread.LastMessage = m
		}
	}

	threads := make([]*Thread, 0, len(order))
	for _, key := range order {
		threads = append(threads, byKey[key])
	}
	sort.SliceStable(threads, func(i, j int) bool {
		return threads[i].LastMessage.CreatedAt.After(threads[j].LastMessage.CreatedAt)
	})

	return threads
}
