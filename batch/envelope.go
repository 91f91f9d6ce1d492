// Copyright 2026 The Driftline Authors
// SPDX-License-Identifier: Apache-2.0

package batch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/driftline-chat/driftline-go/lib/wirefmt"
)

// batchPath is the envelope endpoint, relative to the client base URL.
const batchPath = "/batch"

// Transport issues the single aggregated HTTP call for one chunk. The
// api package's Client satisfies it: PostForm carries the bearer
// credential, retry-on-network-failure, and structured error mapping
// of the single-request path.
type Transport interface {
	// BaseURL returns the API base URL without a trailing slash.
	// Envelope items carry fully-qualified sub-request URLs.
	BaseURL() string

	// PostForm performs one form-encoded POST and returns the response
	// body. A non-2xx status is an error.
	PostForm(ctx context.Context, path string, form url.Values) ([]byte, error)
}

// envelopeItem is one sub-request in the wire envelope. The endpoint
// transmits method and URL only — sub-request state travels in the
// query string.
type envelopeItem struct {
	Method string `json:"method"`
	URL    string `json:"url"`
}

// rawResult is one sub-response as the server returns it: the body as
// an unparsed string and the headers as one newline-separated blob.
type rawResult struct {
	Code    int    `json:"code"`
	Headers string `json:"headers"`
	Body    string `json:"body"`
}

// executeChunk performs the single envelope call for one chunk and
// demultiplexes the per-item responses. The returned slice always has
// len(chunk) entries. An error means the envelope call itself failed
// before per-item responses existed; the caller substitutes
// placeholders — this function never synthesizes them.
func (e *Executor) executeChunk(ctx context.Context, chunk []Request) ([]Result, error) {
	items := make([]envelopeItem, len(chunk))
	parallel := true
	for i, request := range chunk {
		items[i] = envelopeItem{
			Method: request.Method,
			URL:    e.subRequestURL(request),
		}
		if request.Method != http.MethodGet {
			parallel = false
		}
	}

	encoded, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("batch: encoding envelope: %w", err)
	}
	form := url.Values{"requests": {string(encoded)}}
	if parallel {
		// All sub-requests are reads, so the server may run them
		// concurrently.
		form.Set("parallel", "true")
	}

	body, err := e.transport.PostForm(ctx, batchPath, form)
	if err != nil {
		return nil, err
	}

	var raw []rawResult
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("batch: parsing envelope response: %w", err)
	}

	results := make([]Result, len(chunk))
	for i, request := range chunk {
		if i >= len(raw) {
			// Server-contract violation: fewer items than submitted.
			// Missing trailing items become placeholder failures
			// rather than indexing out of bounds; excess items are
			// dropped by the loop bound.
			cause := fmt.Errorf("batch: server returned %d results for %d requests", len(raw), len(chunk))
			e.logger.Warn("short envelope response",
				"expected", len(chunk),
				"received", len(raw),
			)
			for j := i; j < len(chunk); j++ {
				results[j] = Result{
					Code:    http.StatusInternalServerError,
					Headers: map[string]string{},
					Err:     cause,
				}
			}
			break
		}
		results[i] = e.decodeItem(ctx, request, raw[i])
	}
	return results, nil
}

// subRequestURL builds the fully-qualified URL for one descriptor,
// query-encoding its parameter bag with wire naming. POST descriptors
// get the same treatment: the envelope has no per-item bodies, so all
// sub-request state must live in the URL.
func (e *Executor) subRequestURL(request Request) string {
	full := e.transport.BaseURL() + request.Path
	if len(request.Params) == 0 {
		return full
	}
	return full + "?" + wirefmt.Query(request.Params).Encode()
}

// decodeItem turns one raw sub-response into a Result. Every failure
// mode inside an item degrades rather than escalates: unparseable
// bodies pass through as strings, unparseable headers become an empty
// map, and validator rejections fall back to the transformed value.
func (e *Executor) decodeItem(ctx context.Context, request Request, raw rawResult) Result {
	result := Result{
		Code:    raw.Code,
		Headers: parseHeaderBlob(raw.Headers),
	}

	var parsed any
	if err := json.Unmarshal([]byte(raw.Body), &parsed); err != nil {
		// Best effort: keep the raw string rather than erroring.
		result.Data = raw.Body
		return result
	}

	if request.Validate != nil && raw.Code >= 200 && raw.Code < 300 {
		typed, err := request.Validate(ctx, parsed)
		if err == nil {
			result.Data = typed
			return result
		}
		// Trust the data, skip strict typing.
		e.logger.Warn("batch response failed validation",
			"path", request.Path,
			"code", raw.Code,
			"error", err,
		)
		result.Err = err
	}

	result.Data = wirefmt.FlattenTimestamps(wirefmt.CamelizeKeys(parsed))
	return result
}

// parseHeaderBlob parses the newline-separated "Name: value" blob the
// server attaches to each sub-response. Malformed lines are skipped;
// the map is never nil.
func parseHeaderBlob(blob string) map[string]string {
	headers := make(map[string]string)
	for _, line := range strings.Split(blob, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, value, found := strings.Cut(line, ":")
		if !found || strings.TrimSpace(name) == "" {
			continue
		}
		headers[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	return headers
}
