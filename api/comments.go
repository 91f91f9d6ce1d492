// Copyright 2026 The Driftline Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"

	"github.com/driftline-chat/driftline-go/batch"
)

// CommentsService groups the comment endpoints.
type CommentsService struct {
	client *Client
}

// Get fetches one comment by id.
func (s *CommentsService) Get(ctx context.Context, id int64) (*Comment, error) {
	var comment Comment
	if err := s.client.get(ctx, "/comments/get_one", map[string]any{"id": id}, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// List returns the comments of a thread in posting order.
func (s *CommentsService) List(ctx context.Context, threadID int64) ([]Comment, error) {
	var comments []Comment
	if err := s.client.get(ctx, "/comments/get", map[string]any{"threadId": threadID}, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// AddCommentRequest creates a comment.
type AddCommentRequest struct {
	ThreadID int64  `json:"thread_id"`
	Content  string `json:"content"`
}

// Add posts a comment to a thread and returns it.
func (s *CommentsService) Add(ctx context.Context, request AddCommentRequest) (*Comment, error) {
	var comment Comment
	if err := s.client.post(ctx, "/comments/add", request, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateCommentRequest edits a comment's content.
type UpdateCommentRequest struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
}

// Update edits a comment and returns the updated value.
func (s *CommentsService) Update(ctx context.Context, request UpdateCommentRequest) (*Comment, error) {
	var comment Comment
	if err := s.client.post(ctx, "/comments/update", request, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// Remove permanently deletes a comment.
func (s *CommentsService) Remove(ctx context.Context, id int64) error {
	return s.client.post(ctx, "/comments/remove", idParam{id}, nil)
}

// GetDeferred returns a batchable descriptor for
// [CommentsService.Get].
func (s *CommentsService) GetDeferred(id int64) batch.Request {
	return batch.Get("/comments/get_one", map[string]any{"id": id}).
		WithValidator(validateComment)
}

// ListDeferred returns a batchable descriptor for
// [CommentsService.List].
func (s *CommentsService) ListDeferred(threadID int64) batch.Request {
	return batch.Get("/comments/get", map[string]any{"threadId": threadID}).
		WithValidator(validateCommentList)
}
