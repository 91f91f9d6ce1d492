// Copyright 2026 The Driftline Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for driftline-go
// packages.
//
// [RequireReceive] and [RequireClosed] encapsulate the timeout safety
// valve pattern (select with time.After fallback) so that individual
// tests do not need direct time.After calls. They are the only place
// in the test suite where real wall-clock timeouts appear.
//
// [UniqueID] generates monotonically increasing identifiers for test
// disambiguation. Use it instead of time.Now() when tests need unique
// thread titles or message bodies distinguishable in shared fixtures.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no driftline-go-internal dependencies.
package testutil
