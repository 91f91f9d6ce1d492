// Copyright 2026 The Driftline Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"

	"github.com/driftline-chat/driftline-go/batch"
)

// ThreadsService groups the thread endpoints.
type ThreadsService struct {
	client *Client
}

// Get fetches one thread by id.
func (s *ThreadsService) Get(ctx context.Context, id int64) (*Thread, error) {
	var thread Thread
	if err := s.client.get(ctx, "/threads/get_one", map[string]any{"id": id}, &thread); err != nil {
		return nil, err
	}
	return &thread, nil
}

// ListThreadsOptions filters [ThreadsService.List].
type ListThreadsOptions struct {
	// Limit bounds the number of threads returned; zero means the
	// server default.
	Limit int
	// NewerThan restricts results to threads updated after the given
	// timestamp.
	NewerThan Timestamp
}

// List returns the threads of a channel, most recently updated first.
func (s *ThreadsService) List(ctx context.Context, channelID int64, options ListThreadsOptions) ([]Thread, error) {
	params := map[string]any{"channelId": channelID}
	if options.Limit > 0 {
		params["limit"] = options.Limit
	}
	if !options.NewerThan.IsZero() {
		params["newerThanTs"] = options.NewerThan.Time.Unix()
	}
	var threads []Thread
	if err := s.client.get(ctx, "/threads/get", params, &threads); err != nil {
		return nil, err
	}
	return threads, nil
}

// AddThreadRequest creates a thread.
type AddThreadRequest struct {
	ChannelID int64  `json:"channel_id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
}

// Add posts a new thread to a channel and returns it.
func (s *ThreadsService) Add(ctx context.Context, request AddThreadRequest) (*Thread, error) {
	var thread Thread
	if err := s.client.post(ctx, "/threads/add", request, &thread); err != nil {
		return nil, err
	}
	return &thread, nil
}

// UpdateThreadRequest carries the mutable thread fields. Nil pointers
// are omitted, leaving the field unchanged.
type UpdateThreadRequest struct {
	ID      int64   `json:"id"`
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// Update changes a thread and returns the updated value.
func (s *ThreadsService) Update(ctx context.Context, request UpdateThreadRequest) (*Thread, error) {
	var thread Thread
	if err := s.client.post(ctx, "/threads/update", request, &thread); err != nil {
		return nil, err
	}
	return &thread, nil
}

// Remove permanently deletes a thread and its comments.
func (s *ThreadsService) Remove(ctx context.Context, id int64) error {
	return s.client.post(ctx, "/threads/remove", idParam{id}, nil)
}

// MarkRead moves the session user's read marker in a thread.
func (s *ThreadsService) MarkRead(ctx context.Context, threadID, lastReadCommentID int64) error {
	body := markThreadReadParam{ID: threadID, LastReadCommentID: lastReadCommentID}
	return s.client.post(ctx, "/threads/mark_read", body, nil)
}

// GetDeferred returns a batchable descriptor for [ThreadsService.Get].
func (s *ThreadsService) GetDeferred(id int64) batch.Request {
	return batch.Get("/threads/get_one", map[string]any{"id": id}).
		WithValidator(validateThread)
}

// ListDeferred returns a batchable descriptor for
// [ThreadsService.List] with default options.
func (s *ThreadsService) ListDeferred(channelID int64) batch.Request {
	return batch.Get("/threads/get", map[string]any{"channelId": channelID}).
		WithValidator(validateThreadList)
}

// MarkReadDeferred returns a batchable descriptor for
// [ThreadsService.MarkRead]. Like every batched POST, its state rides
// in the sub-request URL.
func (s *ThreadsService) MarkReadDeferred(threadID, lastReadCommentID int64) batch.Request {
	return batch.Post("/threads/mark_read", map[string]any{
		"id":                threadID,
		"lastReadCommentId": lastReadCommentID,
	})
}

type markThreadReadParam struct {
	ID                int64 `json:"id"`
	LastReadCommentID int64 `json:"last_read_comment_id"`
}
