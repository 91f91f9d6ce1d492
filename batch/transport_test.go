// Copyright 2026 The Driftline Authors
// SPDX-License-Identifier: Apache-2.0

package batch

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"testing"

	json "github.com/goccy/go-json"
)

// envelopeCall records one PostForm invocation with its decoded
// sub-request list.
type envelopeCall struct {
	form  url.Values
	items []envelopeItem
}

// fakeTransport satisfies Transport for tests. respond produces the
// envelope response body; block, when set, runs before respond (used
// by the concurrency tests to hold calls open).
type fakeTransport struct {
	respond func(call envelopeCall) ([]byte, error)
	block   func(call envelopeCall)

	mu    sync.Mutex
	calls []envelopeCall
}

func (f *fakeTransport) BaseURL() string { return "https://api.driftline.test/api/v1" }

func (f *fakeTransport) PostForm(_ context.Context, path string, form url.Values) ([]byte, error) {
	if path != batchPath {
		return nil, fmt.Errorf("unexpected path %q", path)
	}
	var items []envelopeItem
	if err := json.Unmarshal([]byte(form.Get("requests")), &items); err != nil {
		return nil, fmt.Errorf("malformed requests field: %w", err)
	}
	call := envelopeCall{form: form, items: items}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()

	if f.block != nil {
		f.block(call)
	}
	return f.respond(call)
}

func (f *fakeTransport) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeTransport) call(i int) envelopeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[i]
}

// itemIndex extracts the "index" query parameter a test descriptor
// carries to identify itself.
func itemIndex(t *testing.T, item envelopeItem) int {
	t.Helper()
	parsed, err := url.Parse(item.URL)
	if err != nil {
		t.Fatalf("parsing sub-request URL %q: %v", item.URL, err)
	}
	index, err := strconv.Atoi(parsed.Query().Get("index"))
	if err != nil {
		t.Fatalf("sub-request URL %q has no index: %v", item.URL, err)
	}
	return index
}

// indexedRequests builds n GET descriptors whose position is encoded
// in their parameter bag.
func indexedRequests(n int) []Request {
	requests := make([]Request, n)
	for i := range requests {
		requests[i] = Get("/threads/get_one", map[string]any{"index": i})
	}
	return requests
}

// echoEnvelope answers each sub-request with a 200 whose body reports
// the item's index back.
func echoEnvelope(t *testing.T) func(envelopeCall) ([]byte, error) {
	return func(call envelopeCall) ([]byte, error) {
		raw := make([]rawResult, len(call.items))
		for i, item := range call.items {
			raw[i] = rawResult{
				Code:    200,
				Headers: "Content-Type: application/json",
				Body:    fmt.Sprintf(`{"item_index": %d}`, itemIndex(t, item)),
			}
		}
		return json.Marshal(raw)
	}
}

// resultIndex reads the echoed index back out of a transformed result.
func resultIndex(t *testing.T, result Result) int {
	t.Helper()
	data, ok := result.Data.(map[string]any)
	if !ok {
		t.Fatalf("result data is %T, want map", result.Data)
	}
	index, ok := data["itemIndex"].(float64)
	if !ok {
		t.Fatalf("result data has no itemIndex: %v", data)
	}
	return int(index)
}
