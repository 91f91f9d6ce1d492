// Copyright 2026 The Driftline Authors
// SPDX-License-Identifier: Apache-2.0

// Package api is a typed client for the Driftline team-messaging REST
// API.
//
// [NewClient] builds a [Client] from a token and base URL. The client
// exposes one service per resource (Users, Workspaces, Channels,
// Threads, Comments, Conversations, Messages, Groups), each a group of
// methods that issue a single HTTP request and decode the typed
// response. The shared transport injects the bearer credential and a
// per-request id, applies optional client-side rate limiting, and
// retries network failures with exponential backoff — HTTP error
// statuses are never retried, they surface as [*APIError] carrying the
// platform error code and message. [IsAPIError] tests for a specific
// code.
//
// Request URLs are built by string concatenation on a base URL with
// the trailing slash stripped, avoiding the double-encoding problems
// of url.URL round trips on pre-encoded paths.
//
// Every read-style method has a deferred counterpart (GetDeferred,
// ListDeferred, ...) returning a batch.Request descriptor instead of
// executing. Descriptors are fed to the executor from [Client.Batch],
// which folds them into /batch envelope calls; see the batch package
// for ordering and failure semantics. Deferred descriptors carry
// schema validators (reoring/goskema) that check the wire shape of
// each sub-response before the typed decode, degrading gracefully on
// mismatch.
//
// The wire format uses snake_case keys and epoch-second "_ts"
// timestamp fields; typed structs decode them via tags and the
// [Timestamp] codec, while untyped batch data is converted by
// lib/wirefmt.
package api
