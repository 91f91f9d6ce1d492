// Copyright 2026 The Driftline Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
)

// TestBatchThroughClient runs deferred descriptors through the real
// form transport against a stub /batch endpoint.
func TestBatchThroughClient(t *testing.T) {
	var gotParallel string
	var gotURLs []string
	client, server := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/batch" {
			t.Errorf("unexpected path %q", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm: %v", err)
		}
		gotParallel = r.PostForm.Get("parallel")

		var items []struct {
			Method string `json:"method"`
			URL    string `json:"url"`
		}
		if err := json.Unmarshal([]byte(r.PostForm.Get("requests")), &items); err != nil {
			t.Errorf("requests field is not JSON: %v", err)
		}

		responses := make([]map[string]any, len(items))
		for i, item := range items {
			gotURLs = append(gotURLs, item.URL)
			responses[i] = map[string]any{
				"code":    200,
				"headers": "Content-Type: application/json",
				"body":    fmt.Sprintf(`{"id": %d, "channel_id": 3, "title": "thread"}`, i+1),
			}
		}
		encoded, _ := json.Marshal(responses)
		w.Write(encoded)
	}))

	results := client.Batch().Execute(context.Background(),
		client.Threads.GetDeferred(1),
		client.Threads.GetDeferred(2),
	)
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if gotParallel != "true" {
		t.Errorf("parallel = %q, want true for an all-GET batch", gotParallel)
	}
	for i, result := range results {
		if result.Err != nil {
			t.Fatalf("result %d: %v", i, result.Err)
		}
		if result.Code != 200 {
			t.Errorf("result %d code = %d", i, result.Code)
		}
		thread, ok := result.Data.(Thread)
		if !ok {
			t.Fatalf("result %d data is %T, want Thread", i, result.Data)
		}
		if thread.ID != int64(i+1) {
			t.Errorf("result %d thread.ID = %d, want %d", i, thread.ID, i+1)
		}
	}
	for i, u := range gotURLs {
		prefix := server.URL + "/threads/get_one?"
		if !strings.HasPrefix(u, prefix) {
			t.Errorf("sub-request %d url = %q, want prefix %q", i, u, prefix)
		}
		if !strings.Contains(u, fmt.Sprintf("id=%d", i+1)) {
			t.Errorf("sub-request %d url %q is missing its id", i, u)
		}
	}
}
