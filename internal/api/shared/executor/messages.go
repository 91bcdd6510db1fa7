package executor

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/propchain/propchain-api/internal/api/shared/dto"
	apierrors "github.com/propchain/propchain-api/internal/api/shared/errors"
	"github.com/propchain/propchain-api/internal/conversation"
	"github.com/propchain/propchain-api/internal/store"
)

// SendMessage records a message from the caller about a listing
func (e *executor) SendMessage(ctx context.Context, senderID uuid.UUID, req dto.MessageRequest) (*dto.MessageResponse, error) {
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return nil, apierrors.NewValidationError("message body must not be empty")
	}
	if req.RecipientID == senderID {
		return nil, apierrors.NewValidationError("cannot send a message to yourself")
	}

	property, err := e.store.GetPropertyByID(ctx, req.PropertyID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get property: %v", err))
	}
	if property == nil {
		return nil, apierrors.NewNotFoundError("Property not found")
	}

	recipient, err := e.store.GetUserByID(ctx, req.RecipientID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get recipient: %v", err))
	}
	if recipient == nil {
		return nil, apierrors.NewNotFoundError("Recipient not found")
	}

	message, err := e.store.CreateMessage(ctx, store.MessageInput{
		PropertyID:  req.PropertyID,
		SenderID:    senderID,
		RecipientID: req.RecipientID,
		Body:        body,
	})
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to create message: %v", err))
	}

	response := dto.MapMessageToDTO(message)
	return &response, nil
}

// ListThreads derives the caller's conversation threads from their messages
func (e *executor) ListThreads(ctx context.Context, userID uuid.UUID) (*dto.ThreadListResponse, error) {
	messages, err := e.store.ListMessagesByParticipant(ctx, userID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to list messages: %v", err))
	}

	threads := conversation.Project(userID, messages)

	responses := make([]dto.ThreadResponse, 0, len(threads))
	for _, thread := range threads {
		response := dto.ThreadResponse{
			PropertyID:    thread.PropertyID,
			CounterpartID: thread.CounterpartID,
			MessageCount:  thread.MessageCount,
			UnreadCount:   thread.UnreadCount,
		}
		if thread.LastMessage != nil {
			last := dto.MapMessageToDTO(thread.LastMessage)
			response.LastMessage = &last
		}
		responses = append(responses, response)
	}

	return &dto.ThreadListResponse{Threads: responses}, nil
}

// GetThreadMessages retrieves one thread's messages and marks those sent to
// the caller as read
func (e *executor) GetThreadMessages(ctx context.Context, userID, propertyID, counterpartID uuid.UUID) (*dto.MessageListResponse, error) {
	messages, err := e.store.ListThreadMessages(ctx, propertyID, userID, counterpartID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to list thread messages: %v", err))
	}

	if err := e.store.MarkThreadRead(ctx, propertyID, userID, counterpartID); err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to mark thread read: %v", err))
	}

	responses := make([]dto.MessageResponse, len(messages))
	for i, m := range messages {
		responses[i] = dto.MapMessageToDTO(m)
		if responses[i].RecipientID == userID {
			responses[i].Read = true
		}
	}

	return &dto.MessageListResponse{Messages: responses}, nil
}
