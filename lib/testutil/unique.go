// Copyright 2026 The Driftline Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"sync/atomic"
)

var uniqueCounter atomic.Uint64

// UniqueID returns a string of the form "prefix-N" where N is a
// monotonically increasing integer. Use this instead of time.Now() when
// tests need unique identifiers for thread titles, request ids, or
// message bodies that must be distinguishable in shared fixtures.
//
//	title := testutil.UniqueID("thread")     // "thread-1", "thread-2", ...
//	body := testutil.UniqueID("hello-from")  // "hello-from-3", ...
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, uniqueCounter.Add(1))
}
