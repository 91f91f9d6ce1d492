// Copyright 2026 The Driftline Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/driftline-chat/driftline-go/batch"
	"github.com/driftline-chat/driftline-go/lib/wirefmt"
)

// DefaultBaseURL is the production Driftline API root.
const DefaultBaseURL = "https://api.driftline.chat/api/v1"

const (
	defaultTimeout    = 30 * time.Second
	defaultMaxRetries = 3

	initialRetryDelay = 250 * time.Millisecond
	maxRetryDelay     = 2 * time.Second
)

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// Token is the OAuth bearer token. Required.
	Token string
	// BaseURL overrides DefaultBaseURL, e.g. for a staging deployment
	// or a test server.
	BaseURL string
	// HTTPClient is used for all requests. If nil, a client with a
	// 30-second timeout is used.
	HTTPClient *http.Client
	// Logger is used for structured logging. If nil, slog.Default()
	// is used.
	Logger *slog.Logger
	// RequestsPerSecond enables client-side rate limiting when
	// positive. Zero disables throttling.
	RequestsPerSecond float64
	// MaxRetries bounds retries after network failures. Zero means
	// the default of 3; negative disables retrying. HTTP error
	// statuses are never retried.
	MaxRetries int
}

// Client is an authenticated Driftline API client. It is safe for
// concurrent use; the resource service fields are request builders
// over the one shared transport.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
	limiter    *rate.Limiter
	maxRetries int

	Users         *UsersService
	Workspaces    *WorkspacesService
	Channels      *ChannelsService
	Threads       *ThreadsService
	Comments      *CommentsService
	Conversations *ConversationsService
	Messages      *MessagesService
	Groups        *GroupsService
}

// NewClient creates a Driftline API client.
func NewClient(config ClientConfig) (*Client, error) {
	if config.Token == "" {
		return nil, fmt.Errorf("api: Token is required")
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	// Validate the URL structure. The string form (trailing slash
	// stripped) is stored and request URLs are built by direct
	// concatenation, avoiding double-encoding of pre-encoded path
	// segments through url.URL round trips.
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("api: invalid BaseURL %q: %w", baseURL, err)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var limiter *rate.Limiter
	if config.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RequestsPerSecond), 1)
	}

	maxRetries := config.MaxRetries
	switch {
	case maxRetries == 0:
		maxRetries = defaultMaxRetries
	case maxRetries < 0:
		maxRetries = 0
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      config.Token,
		httpClient: httpClient,
		logger:     logger,
		limiter:    limiter,
		maxRetries: maxRetries,
	}
	c.Users = &UsersService{client: c}
	c.Workspaces = &WorkspacesService{client: c}
	c.Channels = &ChannelsService{client: c}
	c.Threads = &ThreadsService{client: c}
	c.Comments = &CommentsService{client: c}
	c.Conversations = &ConversationsService{client: c}
	c.Messages = &MessagesService{client: c}
	c.Groups = &GroupsService{client: c}
	return c, nil
}

// BaseURL returns the API base URL without a trailing slash. Batch
// envelope items carry fully-qualified sub-request URLs built on it.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Batch returns an executor that aggregates deferred descriptors into
// /batch envelope calls over this client's transport.
func (c *Client) Batch() *batch.Executor {
	return batch.NewExecutor(c, c.logger)
}

// CloseIdleConnections closes idle HTTP connections in the underlying
// transport's connection pool. Call this after a network disruption to
// force fresh TCP connections instead of reusing a poisoned pooled
// connection.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

// get performs a GET with the parameter bag query-encoded in wire
// naming and decodes the JSON response into out (which may be nil to
// discard the body).
func (c *Client) get(ctx context.Context, path string, params map[string]any, out any) error {
	body, err := c.do(ctx, http.MethodGet, path, wirefmt.Query(params), "", nil)
	if err != nil {
		return err
	}
	return decodeInto(path, body, out)
}

// post performs a JSON POST and decodes the response into out (which
// may be nil).
func (c *Client) post(ctx context.Context, path string, requestBody any, out any) error {
	var encoded []byte
	if requestBody != nil {
		var err error
		encoded, err = json.Marshal(requestBody)
		if err != nil {
			return fmt.Errorf("api: encoding %s request: %w", path, err)
		}
	}
	body, err := c.do(ctx, http.MethodPost, path, nil, "application/json", encoded)
	if err != nil {
		return err
	}
	return decodeInto(path, body, out)
}

// PostForm performs one form-encoded POST and returns the raw response
// body. This is the transport the batch executor rides on: it shares
// the credential injection, rate limiting, and network-failure retry
// of every other request.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values) ([]byte, error) {
	return c.do(ctx, http.MethodPost, path, nil, "application/x-www-form-urlencoded", []byte(form.Encode()))
}

func decodeInto(path string, body []byte, out any) error {
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("api: parsing %s response: %w", path, err)
	}
	return nil
}

// do performs an HTTP request and returns the response body. On 2xx,
// returns the body. On 4xx/5xx, returns the body alongside a
// *APIError. Network failures are retried with capped exponential
// backoff and jitter; HTTP statuses are final on first sight.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, contentType string, requestBody []byte) ([]byte, error) {
	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("api: rate limiter: %w", err)
		}
	}

	// One id across retries, so server-side logs can correlate the
	// attempts of a single logical request.
	requestID := uuid.NewString()

	for attempt := 0; ; attempt++ {
		request, err := http.NewRequestWithContext(ctx, method, requestURL, bytes.NewReader(requestBody))
		if err != nil {
			return nil, fmt.Errorf("api: failed to create request: %w", err)
		}
		if contentType != "" {
			request.Header.Set("Content-Type", contentType)
		}
		request.Header.Set("Authorization", "Bearer "+c.token)
		request.Header.Set("X-Request-Id", requestID)

		response, err := c.httpClient.Do(request)
		if err != nil {
			if attempt >= c.maxRetries {
				return nil, fmt.Errorf("api: request to %s %s failed after %d attempts: %w",
					method, path, attempt+1, err)
			}
			delay := retryDelay(attempt)
			c.logger.Debug("retrying after network failure",
				"method", method,
				"path", path,
				"attempt", attempt+1,
				"delay", delay,
				"error", err,
			)
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("api: request to %s %s cancelled: %w", method, path, ctx.Err())
			case <-time.After(delay):
			}
			continue
		}

		responseBody, err := io.ReadAll(response.Body)
		response.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("api: failed to read response body: %w", err)
		}

		if response.StatusCode >= 200 && response.StatusCode < 300 {
			return responseBody, nil
		}

		// All Driftline error responses use the same JSON shape.
		var apiErr APIError
		if jsonErr := json.Unmarshal(responseBody, &apiErr); jsonErr != nil {
			// Server returned a non-JSON error. Fail loud with the
			// raw body.
			return nil, fmt.Errorf("api: unexpected %d response from %s %s: %s",
				response.StatusCode, method, path, string(responseBody))
		}
		apiErr.StatusCode = response.StatusCode
		return responseBody, &apiErr
	}
}

// retryDelay computes the backoff before retry attempt+1: exponential
// growth capped at maxRetryDelay, with ±25% jitter so a burst of
// clients does not retry in lockstep.
func retryDelay(attempt int) time.Duration {
	delay := initialRetryDelay << attempt
	if delay > maxRetryDelay {
		delay = maxRetryDelay
	}
	jitter := time.Duration(rand.Int64N(int64(delay)/2)) - delay/4
	return delay + jitter
}
