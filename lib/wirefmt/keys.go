// Copyright 2026 The Driftline Authors
// SPDX-License-Identifier: Apache-2.0

package wirefmt

import (
	"strings"
)

// Camelize converts a snake_case wire key to camelCase. Leading
// underscores are preserved so private-ish wire keys ("_internal")
// survive a round trip.
func Camelize(key string) string {
	leading := 0
	for leading < len(key) && key[leading] == '_' {
		leading++
	}
	rest := key[leading:]
	if rest == "" {
		return key
	}

	var b strings.Builder
	b.Grow(len(key))
	b.WriteString(key[:leading])
	upperNext := false
	for _, r := range rest {
		if r == '_' {
			upperNext = true
			continue
		}
		if upperNext {
			b.WriteString(strings.ToUpper(string(r)))
			upperNext = false
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Underscore converts a camelCase client key to the snake_case wire
// form. Runs of uppercase letters are treated as one word boundary
// ("avatarURL" becomes "avatar_url").
func Underscore(key string) string {
	var b strings.Builder
	b.Grow(len(key) + 4)
	runes := []rune(key)
	for i, r := range runes {
		if r >= 'A' && r <= 'Z' {
			prevLower := i > 0 && isLower(runes[i-1])
			nextLower := i+1 < len(runes) && isLower(runes[i+1])
			if i > 0 && (prevLower || nextLower) && runes[i-1] != '_' {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isLower(r rune) bool { return r >= 'a' && r <= 'z' }

// CamelizeKeys walks v recursively and renames every map key from the
// wire convention to the client convention. Slices are walked
// element-wise; non-container values pass through unchanged. The input
// is not mutated.
func CamelizeKeys(v any) any {
	return transformKeys(v, Camelize)
}

// UnderscoreKeys is the outbound counterpart of [CamelizeKeys].
func UnderscoreKeys(v any) any {
	return transformKeys(v, Underscore)
}

func transformKeys(v any, rename func(string) string) any {
	switch value := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(value))
		for key, item := range value {
			out[rename(key)] = transformKeys(item, rename)
		}
		return out
	case []any:
		out := make([]any, len(value))
		for i, item := range value {
			out[i] = transformKeys(item, rename)
		}
		return out
	default:
		return v
	}
}
