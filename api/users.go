// Copyright 2026 The Driftline Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"

	"github.com/driftline-chat/driftline-go/batch"
)

// UsersService groups the user endpoints.
type UsersService struct {
	client *Client
}

// Current returns the account the client's token belongs to.
func (s *UsersService) Current(ctx context.Context) (*User, error) {
	var user User
	if err := s.client.get(ctx, "/users/get_session_user", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Get fetches one user by id.
func (s *UsersService) Get(ctx context.Context, id int64) (*User, error) {
	var user User
	if err := s.client.get(ctx, "/users/get_one", map[string]any{"id": id}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserRequest carries the mutable profile fields. Nil pointers
// are omitted from the request, leaving the field unchanged.
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Timezone *string `json:"timezone,omitempty"`
}

// Update changes the session user's profile and returns the updated
// account.
func (s *UsersService) Update(ctx context.Context, request UpdateUserRequest) (*User, error) {
	var user User
	if err := s.client.post(ctx, "/users/update", request, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetDeferred returns a batchable descriptor for [UsersService.Get].
func (s *UsersService) GetDeferred(id int64) batch.Request {
	return batch.Get("/users/get_one", map[string]any{"id": id}).
		WithValidator(validateUser)
}

// CurrentDeferred returns a batchable descriptor for
// [UsersService.Current].
func (s *UsersService) CurrentDeferred() batch.Request {
	return batch.Get("/users/get_session_user", nil).
		WithValidator(validateUser)
}
