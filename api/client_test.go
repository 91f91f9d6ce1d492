// Copyright 2026 The Driftline Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewClient(ClientConfig{
		Token:   "test-token",
		BaseURL: server.URL,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client, server
}

func TestNewClientRequiresToken(t *testing.T) {
	if _, err := NewClient(ClientConfig{}); err == nil {
		t.Fatal("expected an error for an empty token")
	}
}

func TestNewClientTrimsBaseURL(t *testing.T) {
	client, err := NewClient(ClientConfig{
		Token:   "tok",
		BaseURL: "https://driftline.example/api/v1/",
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if got := client.BaseURL(); got != "https://driftline.example/api/v1" {
		t.Errorf("BaseURL() = %q, want trailing slash trimmed", got)
	}
}

func TestRequestHeaders(t *testing.T) {
	var captured http.Header
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Header.Clone()
		fmt.Fprint(w, `{"id": 1, "name": "ada"}`)
	}))

	if _, err := client.Users.Current(context.Background()); err != nil {
		t.Fatalf("Current: %v", err)
	}
	if got := captured.Get("Authorization"); got != "Bearer test-token" {
		t.Errorf("Authorization = %q", got)
	}
	if captured.Get("X-Request-Id") == "" {
		t.Error("expected an X-Request-Id header")
	}
}

func TestGetEncodesParamsInWireNaming(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, `[]`)
	}))

	_, err := client.Channels.List(context.Background(), 7, ListChannelsOptions{Archived: true})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if gotQuery != "archived=true&workspace_id=7" {
		t.Errorf("query = %q, want underscored keys", gotQuery)
	}
}

func TestAPIErrorMapping(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error_code": 130, "error_string": "no such thread"}`)
	}))

	_, err := client.Threads.Get(context.Background(), 999)
	if err == nil {
		t.Fatal("expected an error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error %v is not an *APIError", err)
	}
	if apiErr.Code != ErrCodeNotFound {
		t.Errorf("Code = %d, want %d", apiErr.Code, ErrCodeNotFound)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", apiErr.StatusCode)
	}
	if apiErr.Message != "no such thread" {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if !IsAPIError(err, ErrCodeNotFound) {
		t.Error("IsAPIError(err, ErrCodeNotFound) = false")
	}
	if IsAPIError(err, ErrCodeForbidden) {
		t.Error("IsAPIError matched the wrong code")
	}
}

func TestNonJSONErrorResponse(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "<html>upstream died</html>")
	}))

	_, err := client.Users.Current(context.Background())
	if err == nil {
		t.Fatal("expected an error")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Fatalf("non-JSON error body should not produce an *APIError, got %v", apiErr)
	}
}

// flakyTransport fails the first failures round trips at the network
// level, then passes requests through to the real transport.
type flakyTransport struct {
	mu       sync.Mutex
	failures int
	attempts int
	ids      []string
	inner    http.RoundTripper
}

func (f *flakyTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	f.mu.Lock()
	f.attempts++
	f.ids = append(f.ids, r.Header.Get("X-Request-Id"))
	fail := f.attempts <= f.failures
	f.mu.Unlock()
	if fail {
		return nil, errors.New("connection reset by peer")
	}
	return f.inner.RoundTrip(r)
}

func TestNetworkFailuresAreRetried(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id": 1, "name": "ada"}`)
	}))
	defer server.Close()

	flaky := &flakyTransport{failures: 2, inner: http.DefaultTransport}
	client, err := NewClient(ClientConfig{
		Token:      "tok",
		BaseURL:    server.URL,
		HTTPClient: &http.Client{Transport: flaky},
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	user, err := client.Users.Current(context.Background())
	if err != nil {
		t.Fatalf("Current after transient failures: %v", err)
	}
	if user.ID != 1 {
		t.Errorf("user.ID = %d, want 1", user.ID)
	}
	if flaky.attempts != 3 {
		t.Errorf("attempts = %d, want 3", flaky.attempts)
	}
	// Retries of one logical request share one correlation id.
	for i, id := range flaky.ids {
		if id != flaky.ids[0] {
			t.Errorf("attempt %d used X-Request-Id %q, want %q", i, id, flaky.ids[0])
		}
	}
}

func TestNegativeMaxRetriesDisablesRetrying(t *testing.T) {
	flaky := &flakyTransport{failures: 1, inner: http.DefaultTransport}
	client, err := NewClient(ClientConfig{
		Token:      "tok",
		BaseURL:    "http://driftline.invalid",
		HTTPClient: &http.Client{Transport: flaky},
		MaxRetries: -1,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	if _, err := client.Users.Current(context.Background()); err == nil {
		t.Fatal("expected an error")
	}
	if flaky.attempts != 1 {
		t.Errorf("attempts = %d, want 1", flaky.attempts)
	}
}

func TestHTTPErrorsAreNotRetried(t *testing.T) {
	var calls int
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error_code": 100, "error_string": "boom"}`)
	}))

	if _, err := client.Users.Current(context.Background()); err == nil {
		t.Fatal("expected an error")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (HTTP statuses are final)", calls)
	}
}
