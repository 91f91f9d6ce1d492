// Copyright 2026 The Driftline Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"

	"github.com/driftline-chat/driftline-go/batch"
)

// WorkspacesService groups the workspace endpoints.
type WorkspacesService struct {
	client *Client
}

// Get fetches one workspace by id.
func (s *WorkspacesService) Get(ctx context.Context, id int64) (*Workspace, error) {
	var workspace Workspace
	if err := s.client.get(ctx, "/workspaces/get_one", map[string]any{"id": id}, &workspace); err != nil {
		return nil, err
	}
	return &workspace, nil
}

// List returns every workspace the session user belongs to.
func (s *WorkspacesService) List(ctx context.Context) ([]Workspace, error) {
	var workspaces []Workspace
	if err := s.client.get(ctx, "/workspaces/get", nil, &workspaces); err != nil {
		return nil, err
	}
	return workspaces, nil
}

// Default returns the session user's default workspace.
func (s *WorkspacesService) Default(ctx context.Context) (*Workspace, error) {
	var workspace Workspace
	if err := s.client.get(ctx, "/workspaces/get_default", nil, &workspace); err != nil {
		return nil, err
	}
	return &workspace, nil
}

// Users returns the members of a workspace.
func (s *WorkspacesService) Users(ctx context.Context, id int64) ([]User, error) {
	var users []User
	if err := s.client.get(ctx, "/workspaces/get_users", map[string]any{"id": id}, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetDeferred returns a batchable descriptor for
// [WorkspacesService.Get].
func (s *WorkspacesService) GetDeferred(id int64) batch.Request {
	return batch.Get("/workspaces/get_one", map[string]any{"id": id}).
		WithValidator(validateWorkspace)
}

// UsersDeferred returns a batchable descriptor for
// [WorkspacesService.Users].
func (s *WorkspacesService) UsersDeferred(id int64) batch.Request {
	return batch.Get("/workspaces/get_users", map[string]any{"id": id}).
		WithValidator(validateUserList)
}
