// Copyright 2026 The Driftline Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"testing"
)

func TestValidateThread(t *testing.T) {
	ctx := context.Background()

	t.Run("well-formed body decodes to a typed thread", func(t *testing.T) {
		raw := map[string]any{
			"id":         float64(7),
			"channel_id": float64(3),
			"title":      "release planning",
			"posted_ts":  float64(1700000000),
		}
		value, err := validateThread(ctx, raw)
		if err != nil {
			t.Fatalf("validateThread: %v", err)
		}
		thread, ok := value.(Thread)
		if !ok {
			t.Fatalf("value is %T, want Thread", value)
		}
		if thread.ID != 7 || thread.ChannelID != 3 || thread.Title != "release planning" {
			t.Errorf("thread = %+v", thread)
		}
		if thread.Posted.Time.Unix() != 1700000000 {
			t.Errorf("Posted = %v", thread.Posted)
		}
	})

	t.Run("missing required field fails", func(t *testing.T) {
		raw := map[string]any{
			"id":         float64(7),
			"channel_id": float64(3),
		}
		if _, err := validateThread(ctx, raw); err == nil {
			t.Fatal("expected an error for a thread without a title")
		}
	})

	t.Run("non-object body fails", func(t *testing.T) {
		if _, err := validateThread(ctx, "not a thread"); err == nil {
			t.Fatal("expected an error for a non-object body")
		}
	})

	t.Run("unknown fields are tolerated", func(t *testing.T) {
		raw := map[string]any{
			"id":                float64(7),
			"channel_id":        float64(3),
			"title":             "ok",
			"experimental_flag": true,
		}
		if _, err := validateThread(ctx, raw); err != nil {
			t.Fatalf("validateThread with surplus key: %v", err)
		}
	})
}

func TestValidateThreadList(t *testing.T) {
	ctx := context.Background()

	t.Run("array of threads decodes", func(t *testing.T) {
		raw := []any{
			map[string]any{"id": float64(1), "channel_id": float64(3), "title": "a"},
			map[string]any{"id": float64(2), "channel_id": float64(3), "title": "b"},
		}
		value, err := validateThreadList(ctx, raw)
		if err != nil {
			t.Fatalf("validateThreadList: %v", err)
		}
		threads, ok := value.([]Thread)
		if !ok {
			t.Fatalf("value is %T, want []Thread", value)
		}
		if len(threads) != 2 || threads[0].ID != 1 || threads[1].ID != 2 {
			t.Errorf("threads = %+v", threads)
		}
	})

	t.Run("one malformed element poisons the list", func(t *testing.T) {
		raw := []any{
			map[string]any{"id": float64(1), "channel_id": float64(3), "title": "a"},
			map[string]any{"id": float64(2)},
		}
		if _, err := validateThreadList(ctx, raw); err == nil {
			t.Fatal("expected an error for a list with a malformed element")
		}
	})

	t.Run("non-array body fails", func(t *testing.T) {
		raw := map[string]any{"id": float64(1), "channel_id": float64(3), "title": "a"}
		if _, err := validateThreadList(ctx, raw); err == nil {
			t.Fatal("expected an error for a non-array body")
		}
	})
}

func TestValidateUser(t *testing.T) {
	ctx := context.Background()
	raw := map[string]any{
		"id":        float64(42),
		"name":      "ada",
		"joined_ts": float64(1690000000),
	}
	value, err := validateUser(ctx, raw)
	if err != nil {
		t.Fatalf("validateUser: %v", err)
	}
	user, ok := value.(User)
	if !ok {
		t.Fatalf("value is %T, want User", value)
	}
	if user.ID != 42 || user.Name != "ada" {
		t.Errorf("user = %+v", user)
	}
}
