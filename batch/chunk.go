// Copyright 2026 The Driftline Authors
// SPDX-License-Identifier: Apache-2.0

package batch

// chunk splits items into ordered slices of at most size elements.
// Chunk boundaries are purely positional; concatenating the output in
// order reconstructs the input exactly. Empty input yields an empty
// list, not a list containing one empty chunk. The returned slices
// alias the input array — callers treat them as read-only.
func chunk[T any](items []T, size int) [][]T {
	if len(items) == 0 {
		return nil
	}
	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		chunks = append(chunks, items[start:end])
	}
	return chunks
}
