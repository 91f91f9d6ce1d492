// Copyright 2026 The Driftline Authors
// SPDX-License-Identifier: Apache-2.0

package batch

import (
	"context"
	"net/http"
)

// ChunkSize is the documented per-call maximum of the /batch endpoint.
// It is a protocol constant, not a tunable: the server rejects larger
// envelopes, and there is no runtime negotiation.
const ChunkSize = 10

// ValidateFunc checks a parsed sub-response body against an expected
// shape and returns the typed value. It receives the body in wire
// naming (as parsed, before any key transformation) so the same
// schemas serve both the direct and the batched request path.
type ValidateFunc func(ctx context.Context, raw any) (any, error)

// Request describes one deferred API call. It is an inert value:
// building one performs no I/O, and the executor consumes it exactly
// once. The zero Params map and a nil Validate are both valid.
type Request struct {
	// Method is the HTTP verb, GET or POST. The /batch endpoint
	// accepts no other verbs.
	Method string

	// Path is the operation path relative to the client's base URL,
	// e.g. "/channels/get_one".
	Path string

	// Params is the client-side parameter bag. Keys use client naming
	// and are underscored at the envelope boundary. Values may be
	// scalars, nil, or slices. Because envelope items carry no body,
	// params are query-encoded into the sub-request URL for POST
	// descriptors too.
	Params map[string]any

	// Validate, when set, is applied to 2xx sub-responses. A
	// validation failure never fails the item: the result degrades to
	// the transformed, unvalidated value and the error is recorded.
	Validate ValidateFunc
}

// Get builds a GET descriptor.
func Get(path string, params map[string]any) Request {
	return Request{Method: http.MethodGet, Path: path, Params: params}
}

// Post builds a POST descriptor.
func Post(path string, params map[string]any) Request {
	return Request{Method: http.MethodPost, Path: path, Params: params}
}

// WithValidator returns a copy of the descriptor carrying a response
// validator.
func (r Request) WithValidator(validate ValidateFunc) Request {
	r.Validate = validate
	return r
}

// Result is the outcome of one descriptor. The slice returned by
// [Executor.Execute] always has the same length and order as the
// submitted descriptors.
type Result struct {
	// Code is the HTTP-style status of this individual sub-request.
	// Placeholder failures report 500.
	Code int

	// Headers is the parsed sub-response header map. Absent or
	// unparseable headers yield an empty (never nil) map.
	Headers map[string]string

	// Data is the validated typed value, the best-effort transformed
	// value, the raw body string when JSON parsing failed, or nil for
	// a placeholder failure.
	Data any

	// Err records why a result is degraded: the envelope call error
	// for a placeholder, the validation error when Data fell back to
	// the unvalidated value, or nil for a strict success.
	Err error
}

// placeholderResults substitutes a failure result for every descriptor
// of a chunk whose envelope call failed outright.
func placeholderResults(chunk []Request, cause error) []Result {
	results := make([]Result, len(chunk))
	for i := range chunk {
		results[i] = Result{
			Code:    http.StatusInternalServerError,
			Headers: map[string]string{},
			Err:     cause,
		}
	}
	return results
}
