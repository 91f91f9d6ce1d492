// Copyright 2026 The Driftline Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"

	"github.com/driftline-chat/driftline-go/batch"
)

// GroupsService groups the user-group endpoints.
type GroupsService struct {
	client *Client
}

// Get fetches one group by id.
func (s *GroupsService) Get(ctx context.Context, id int64) (*Group, error) {
	var group Group
	if err := s.client.get(ctx, "/groups/get_one", map[string]any{"id": id}, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

// List returns the groups of a workspace.
func (s *GroupsService) List(ctx context.Context, workspaceID int64) ([]Group, error) {
	var groups []Group
	if err := s.client.get(ctx, "/groups/get", map[string]any{"workspaceId": workspaceID}, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// AddGroupRequest creates a group.
type AddGroupRequest struct {
	WorkspaceID int64   `json:"workspace_id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	UserIDs     []int64 `json:"user_ids,omitempty"`
}

// Add creates a group and returns it.
func (s *GroupsService) Add(ctx context.Context, request AddGroupRequest) (*Group, error) {
	var group Group
	if err := s.client.post(ctx, "/groups/add", request, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

// UpdateGroupRequest carries the mutable group fields. Nil pointers
// are omitted, leaving the field unchanged.
type UpdateGroupRequest struct {
	ID          int64   `json:"id"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Update changes a group and returns the updated value.
func (s *GroupsService) Update(ctx context.Context, request UpdateGroupRequest) (*Group, error) {
	var group Group
	if err := s.client.post(ctx, "/groups/update", request, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

// Remove permanently deletes a group. Channels and conversations that
// referenced it keep their expanded member lists.
func (s *GroupsService) Remove(ctx context.Context, id int64) error {
	return s.client.post(ctx, "/groups/remove", idParam{id}, nil)
}

// AddUser adds a user to a group.
func (s *GroupsService) AddUser(ctx context.Context, groupID, userID int64) error {
	return s.client.post(ctx, "/groups/add_user", memberParam{groupID, userID}, nil)
}

// RemoveUser removes a user from a group.
func (s *GroupsService) RemoveUser(ctx context.Context, groupID, userID int64) error {
	return s.client.post(ctx, "/groups/remove_user", memberParam{groupID, userID}, nil)
}

// GetDeferred returns a batchable descriptor for [GroupsService.Get].
func (s *GroupsService) GetDeferred(id int64) batch.Request {
	return batch.Get("/groups/get_one", map[string]any{"id": id}).
		WithValidator(validateGroup)
}

// ListDeferred returns a batchable descriptor for
// [GroupsService.List].
func (s *GroupsService) ListDeferred(workspaceID int64) batch.Request {
	return batch.Get("/groups/get", map[string]any{"workspaceId": workspaceID}).
		WithValidator(validateGroupList)
}
