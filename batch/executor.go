// Copyright 2026 The Driftline Authors
// SPDX-License-Identifier: Apache-2.0

package batch

import (
	"context"
	"log/slog"
	"sync"
)

// Executor aggregates independent request descriptors into envelope
// calls. It holds no per-call state: one Executor is safe for
// concurrent use, and everything created during an Execute call dies
// with it.
type Executor struct {
	transport Transport
	logger    *slog.Logger
	chunkSize int
}

// NewExecutor creates an executor over the given transport. A nil
// logger falls back to slog.Default().
func NewExecutor(transport Transport, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		transport: transport,
		logger:    logger,
		chunkSize: ChunkSize,
	}
}

// Execute runs all descriptors through the /batch endpoint and returns
// one Result per descriptor, in submission order. It never fails as a
// whole: a failed envelope call degrades to placeholder results for
// that chunk only, and per-item problems are recorded on the item.
// Zero descriptors return an empty slice without network activity.
//
// Chunks run concurrently and are all joined before Execute returns.
// There is no throttling beyond the chunk size bounding the work per
// call, and no retries at this layer — a failed chunk is final.
func (e *Executor) Execute(ctx context.Context, requests ...Request) []Result {
	if len(requests) == 0 {
		return []Result{}
	}

	if len(requests) <= e.chunkSize {
		results, err := e.executeChunk(ctx, requests)
		if err != nil {
			e.logger.Warn("batch chunk failed", "size", len(requests), "error", err)
			return placeholderResults(requests, err)
		}
		return results
	}

	chunks := chunk(requests, e.chunkSize)

	// Fan out one goroutine per chunk. Each writes only its own slot,
	// so no synchronization beyond the join is needed; merging happens
	// strictly after all chunk work completes.
	perChunk := make([][]Result, len(chunks))
	var wg sync.WaitGroup
	for i, c := range chunks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results, err := e.executeChunk(ctx, c)
			if err != nil {
				// Containment: this chunk becomes placeholders;
				// sibling chunks are never cancelled or delayed.
				e.logger.Warn("batch chunk failed",
					"chunk", i,
					"size", len(c),
					"error", err,
				)
				results = placeholderResults(c, err)
			}
			perChunk[i] = results
		}()
	}
	wg.Wait()

	// Chunk boundaries are positional, so concatenating in chunk order
	// reconstructs the caller's submission order exactly.
	merged := make([]Result, 0, len(requests))
	for _, results := range perChunk {
		merged = append(merged, results...)
	}
	return merged
}
