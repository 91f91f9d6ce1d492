// Copyright 2026 The Driftline Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"

	"github.com/driftline-chat/driftline-go/batch"
)

// ChannelsService groups the channel endpoints.
type ChannelsService struct {
	client *Client
}

// Get fetches one channel by id.
func (s *ChannelsService) Get(ctx context.Context, id int64) (*Channel, error) {
	var channel Channel
	if err := s.client.get(ctx, "/channels/get_one", map[string]any{"id": id}, &channel); err != nil {
		return nil, err
	}
	return &channel, nil
}

// ListChannelsOptions filters [ChannelsService.List].
type ListChannelsOptions struct {
	// Archived includes archived channels when true.
	Archived bool
}

// List returns the channels of a workspace.
func (s *ChannelsService) List(ctx context.Context, workspaceID int64, options ListChannelsOptions) ([]Channel, error) {
	params := map[string]any{"workspaceId": workspaceID}
	if options.Archived {
		params["archived"] = true
	}
	var channels []Channel
	if err := s.client.get(ctx, "/channels/get", params, &channels); err != nil {
		return nil, err
	}
	return channels, nil
}

// AddChannelRequest creates a channel.
type AddChannelRequest struct {
	WorkspaceID int64   `json:"workspace_id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	UserIDs     []int64 `json:"user_ids,omitempty"`
	Public      *bool   `json:"public,omitempty"`
}

// Add creates a channel and returns it.
func (s *ChannelsService) Add(ctx context.Context, request AddChannelRequest) (*Channel, error) {
	var channel Channel
	if err := s.client.post(ctx, "/channels/add", request, &channel); err != nil {
		return nil, err
	}
	return &channel, nil
}

// UpdateChannelRequest carries the mutable channel fields. Nil
// pointers are omitted, leaving the field unchanged.
type UpdateChannelRequest struct {
	ID          int64   `json:"id"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Update changes a channel and returns the updated value.
func (s *ChannelsService) Update(ctx context.Context, request UpdateChannelRequest) (*Channel, error) {
	var channel Channel
	if err := s.client.post(ctx, "/channels/update", request, &channel); err != nil {
		return nil, err
	}
	return &channel, nil
}

// Archive hides a channel from active lists without deleting it.
func (s *ChannelsService) Archive(ctx context.Context, id int64) error {
	return s.client.post(ctx, "/channels/archive", idParam{id}, nil)
}

// Unarchive restores an archived channel.
func (s *ChannelsService) Unarchive(ctx context.Context, id int64) error {
	return s.client.post(ctx, "/channels/unarchive", idParam{id}, nil)
}

// Remove permanently deletes a channel and its threads.
func (s *ChannelsService) Remove(ctx context.Context, id int64) error {
	return s.client.post(ctx, "/channels/remove", idParam{id}, nil)
}

// AddUser adds a user to a channel.
func (s *ChannelsService) AddUser(ctx context.Context, channelID, userID int64) error {
	return s.client.post(ctx, "/channels/add_user", memberParam{channelID, userID}, nil)
}

// RemoveUser removes a user from a channel.
func (s *ChannelsService) RemoveUser(ctx context.Context, channelID, userID int64) error {
	return s.client.post(ctx, "/channels/remove_user", memberParam{channelID, userID}, nil)
}

// GetDeferred returns a batchable descriptor for
// [ChannelsService.Get].
func (s *ChannelsService) GetDeferred(id int64) batch.Request {
	return batch.Get("/channels/get_one", map[string]any{"id": id}).
		WithValidator(validateChannel)
}

// ListDeferred returns a batchable descriptor for
// [ChannelsService.List].
func (s *ChannelsService) ListDeferred(workspaceID int64) batch.Request {
	return batch.Get("/channels/get", map[string]any{"workspaceId": workspaceID}).
		WithValidator(validateChannelList)
}

// idParam is the request body of single-id mutations.
type idParam struct {
	ID int64 `json:"id"`
}

// memberParam is the request body of membership mutations.
type memberParam struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"user_id"`
}
