// Copyright 2026 The Driftline Authors
// SPDX-License-Identifier: Apache-2.0

package wirefmt

import (
	"strings"
	"time"
)

// timestampSuffix is the camelized form of the wire "_ts" suffix.
// FlattenTimestamps runs after CamelizeKeys, so it matches the
// camelized key ("postedTs"), not the wire key ("posted_ts").
const timestampSuffix = "Ts"

// altSuffix is appended when the de-suffixed name is already present
// on the object ("posted" exists, so "postedTs" becomes "postedDate").
const altSuffix = "Date"

// FlattenTimestamps walks v recursively and converts every numeric
// field whose key carries the timestamp suffix into a time.Time under
// the de-suffixed key. Non-numeric values with the suffix are left
// alone — the server uses "_ts" only for epoch seconds, but a
// malformed payload must not be corrupted here.
func FlattenTimestamps(v any) any {
	switch value := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(value))
		// Copy non-timestamp fields first so collision detection sees
		// the final set of plain keys regardless of map iteration order.
		for key, item := range value {
			if epochKey(key, item) {
				continue
			}
			out[key] = FlattenTimestamps(item)
		}
		for key, item := range value {
			if !epochKey(key, item) {
				continue
			}
			name := strings.TrimSuffix(key, timestampSuffix)
			if _, taken := out[name]; taken {
				name += altSuffix
			}
			out[name] = time.Unix(toInt64(item), 0).UTC()
		}
		return out
	case []any:
		out := make([]any, len(value))
		for i, item := range value {
			out[i] = FlattenTimestamps(item)
		}
		return out
	default:
		return v
	}
}

func epochKey(key string, value any) bool {
	if !strings.HasSuffix(key, timestampSuffix) || len(key) == len(timestampSuffix) {
		return false
	}
	switch value.(type) {
	case float64, int64, int:
		return true
	default:
		return false
	}
}

func toInt64(v any) int64 {
	switch value := v.(type) {
	case float64:
		return int64(value)
	case int64:
		return value
	case int:
		return int64(value)
	default:
		return 0
	}
}
