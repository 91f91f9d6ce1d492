// Copyright 2026 The Driftline Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"

	"github.com/driftline-chat/driftline-go/batch"
)

// ConversationsService groups the private-conversation endpoints.
type ConversationsService struct {
	client *Client
}

// Get fetches one conversation by id.
func (s *ConversationsService) Get(ctx context.Context, id int64) (*Conversation, error) {
	var conversation Conversation
	if err := s.client.get(ctx, "/conversations/get_one", map[string]any{"id": id}, &conversation); err != nil {
		return nil, err
	}
	return &conversation, nil
}

// List returns the session user's conversations in a workspace.
func (s *ConversationsService) List(ctx context.Context, workspaceID int64) ([]Conversation, error) {
	var conversations []Conversation
	if err := s.client.get(ctx, "/conversations/get", map[string]any{"workspaceId": workspaceID}, &conversations); err != nil {
		return nil, err
	}
	return conversations, nil
}

// GetOrCreate returns the conversation between the given users,
// creating it if none exists. The session user is included implicitly.
func (s *ConversationsService) GetOrCreate(ctx context.Context, workspaceID int64, userIDs []int64) (*Conversation, error) {
	body := getOrCreateConversationParam{WorkspaceID: workspaceID, UserIDs: userIDs}
	var conversation Conversation
	if err := s.client.post(ctx, "/conversations/get_or_create", body, &conversation); err != nil {
		return nil, err
	}
	return &conversation, nil
}

// Archive hides a conversation from active lists.
func (s *ConversationsService) Archive(ctx context.Context, id int64) error {
	return s.client.post(ctx, "/conversations/archive", idParam{id}, nil)
}

// Unarchive restores an archived conversation.
func (s *ConversationsService) Unarchive(ctx context.Context, id int64) error {
	return s.client.post(ctx, "/conversations/unarchive", idParam{id}, nil)
}

// MarkRead moves the session user's read marker in a conversation.
func (s *ConversationsService) MarkRead(ctx context.Context, conversationID, lastReadMessageID int64) error {
	body := markConversationReadParam{ID: conversationID, LastReadMessageID: lastReadMessageID}
	return s.client.post(ctx, "/conversations/mark_read", body, nil)
}

// GetDeferred returns a batchable descriptor for
// [ConversationsService.Get].
func (s *ConversationsService) GetDeferred(id int64) batch.Request {
	return batch.Get("/conversations/get_one", map[string]any{"id": id}).
		WithValidator(validateConversation)
}

// ListDeferred returns a batchable descriptor for
// [ConversationsService.List].
func (s *ConversationsService) ListDeferred(workspaceID int64) batch.Request {
	return batch.Get("/conversations/get", map[string]any{"workspaceId": workspaceID}).
		WithValidator(validateConversationList)
}

type getOrCreateConversationParam struct {
	WorkspaceID int64   `json:"workspace_id"`
	UserIDs     []int64 `json:"user_ids"`
}

type markConversationReadParam struct {
	ID                int64 `json:"id"`
	LastReadMessageID int64 `json:"last_read_message_id"`
}
