// Copyright 2026 The Driftline Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"

	"github.com/driftline-chat/driftline-go/batch"
)

// MessagesService groups the conversation-message endpoints.
type MessagesService struct {
	client *Client
}

// Get fetches one message by id.
func (s *MessagesService) Get(ctx context.Context, id int64) (*Message, error) {
	var message Message
	if err := s.client.get(ctx, "/conversation_messages/get_one", map[string]any{"id": id}, &message); err != nil {
		return nil, err
	}
	return &message, nil
}

// List returns the messages of a conversation in posting order.
func (s *MessagesService) List(ctx context.Context, conversationID int64) ([]Message, error) {
	params := map[string]any{"conversationId": conversationID}
	var messages []Message
	if err := s.client.get(ctx, "/conversation_messages/get", params, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// AddMessageRequest creates a message.
type AddMessageRequest struct {
	ConversationID int64  `json:"conversation_id"`
	Content        string `json:"content"`
}

// Add posts a message to a conversation and returns it.
func (s *MessagesService) Add(ctx context.Context, request AddMessageRequest) (*Message, error) {
	var message Message
	if err := s.client.post(ctx, "/conversation_messages/add", request, &message); err != nil {
		return nil, err
	}
	return &message, nil
}

// Remove permanently deletes a message.
func (s *MessagesService) Remove(ctx context.Context, id int64) error {
	return s.client.post(ctx, "/conversation_messages/remove", idParam{id}, nil)
}

// ListDeferred returns a batchable descriptor for
// [MessagesService.List].
func (s *MessagesService) ListDeferred(conversationID int64) batch.Request {
	return batch.Get("/conversation_messages/get", map[string]any{"conversationId": conversationID}).
		WithValidator(validateMessageList)
}
