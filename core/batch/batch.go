// Package batch fans a list of URLs out to the single-page pipeline
// under a caller-supplied admission ceiling.
//
// At most maxConcurrent pipelines are in flight at once; the rest wait
// for a slot. Completion order is arbitrary but results are written
// into indexed slots, so the returned list always matches input order
// and input length. One URL's failure or timeout never cancels its
// siblings.
package batch

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/gaurav-prasanna/webfetch/core"
)

// DefaultMaxConcurrent is the admission ceiling when the caller does
// not supply one.
const DefaultMaxConcurrent = 5

// FetchAll runs fn once per URL with bounded concurrency and
// aggregates the outcomes. fn must return failures as result values
// (Status "failed"), never panic; the aggregate counts are computed
// from the final per-item results.
func FetchAll(ctx context.Context, urls []string, maxConcurrent int, fn func(ctx context.Context, url string) core.FetchPageResult) core.FetchPagesResult {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}

	sem := semaphore.NewWeighted(int64(maxConcurrent))
	results := make([]core.FetchPageResult, len(urls))

	var wg sync.WaitGroup
	for i, u := range urls {
		wg.Add(1)
		go func(i int, u string) {
			defer wg.Done()
			// Acquire fails only on context cancellation; run fn anyway
			// so the slot still holds a structured failure, not a zero.
			if err := sem.Acquire(ctx, 1); err == nil {
				defer sem.Release(1)
			}
			results[i] = fn(ctx, u)
		}(i, u)
	}
	wg.Wait()

	out := core.FetchPagesResult{
		TotalURLs: len(urls),
		Results:   results,
	}
	for i := range results {
		if results[i].Failed() {
			out.Failed++
		} else {
			out.Successful++
		}
	}
	return out
}
