// Copyright 2026 The Driftline Authors
// SPDX-License-Identifier: Apache-2.0

// Package batch folds many independent Driftline API calls into few
// HTTP round trips via the server's /batch endpoint.
//
// Callers build [Request] descriptors (usually through the deferred
// constructors on the api package's resource services) and hand them
// to [Executor.Execute]. The executor splits them into positional
// chunks of at most [ChunkSize] descriptors, issues one envelope call
// per chunk — all chunks concurrently — and demultiplexes the per-item
// responses back into a [Result] slice with the exact length and order
// of the input, no matter how chunks complete or fail.
//
// Failure is contained at the smallest possible scope. A failed
// envelope call (network error, non-2xx on /batch itself) becomes a
// placeholder Result (code 500, nil data) for every item of that chunk
// and nothing else; sibling chunks are never cancelled or delayed. A
// sub-response body that fails JSON parsing is passed through as the
// raw string. A sub-response that fails its descriptor's validator
// degrades to the transformed-but-unvalidated value with the
// validation error recorded on [Result.Err]. Execute itself therefore
// has no error return: callers inspect each item's Code, Data, and Err.
//
// The envelope wire format is one form-encoded POST: field "requests"
// holds a JSON array of {method, url} pairs (parameter bags are
// query-encoded into each URL — the endpoint has no per-item bodies),
// and field "parallel" is set when every sub-request is a GET, letting
// the server run the chunk concurrently.
package batch
