package rag

import (
	"context"
	"log"
	"sync"
)

// Aggregator fans a query out to all configured sources and merges their
// results. Sources run concurrently; each slot in the results slice belongs
// to one source, so the merged pool always follows the configured priority
// order no matter which source finishes first.
type Aggregator struct {
	sources []Source
	logger  *log.Logger
}

// NewAggregator creates an aggregator. Source order is priority order for the
// merged pool.
func NewAggregator(logger *log.Logger, sources ...Source) *Aggregator {
	return &Aggregator{
		sources: sources,
		logger:  logger,
	}
}

// Retrieve queries every source with the given query. A failing source is
// logged and contributes zero documents; it never aborts its siblings.
func (a *Aggregator) Retrieve(ctx context.Context, query string) []Document {
	results := make([][]Document, len(a.sources))

	var wg sync.WaitGroup
	for i, src := range a.sources {
		wg.Add(1)
		go func(slot int, source Source) {
			defer wg.Done()

			docs, err := source.Retrieve(ctx, query)
			if err != nil {
				a.logger.Printf("[ERROR] Retrieval from %s failed: %v", source.Name(), err)
				return
			}

			a.logger.Printf("[RETRIEVAL] %s returned %d documents", source.Name(), len(docs))
			results[slot] = docs
		}(i, src)
	}
	wg.Wait()

	var pool []Document
	for _, docs := range results {
		pool = append(pool, docs...)
	}

	return pool
}
