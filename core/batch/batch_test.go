package batch

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/webfetch/core"
)

func okResult(url string) core.FetchPageResult {
	return core.FetchPageResult{URL: url, StatusCode: 200}
}

func failResult(url string) core.FetchPageResult {
	return core.FetchPageResult{
		URL:    url,
		Error:  "boom",
		Status: core.StatusFailed,
	}
}

func TestFetchAllPreservesOrder(t *testing.T) {
	urls := []string{"u1", "u2", "u3", "u4"}

	// Later URLs finish first; results must still come back in input
	// order.
	got := FetchAll(context.Background(), urls, 4, func(_ context.Context, url string) core.FetchPageResult {
		switch url {
		case "u1":
			time.Sleep(80 * time.Millisecond)
		case "u2":
			time.Sleep(40 * time.Millisecond)
		}
		return okResult(url)
	})

	require.Len(t, got.Results, 4)
	for i, url := range urls {
		assert.Equal(t, url, got.Results[i].URL)
	}
	assert.Equal(t, 4, got.TotalURLs)
	assert.Equal(t, 4, got.Successful)
	assert.Equal(t, 0, got.Failed)
}

func TestFetchAllFailureIsolated(t *testing.T) {
	urls := []string{"u1", "u2", "u3"}

	got := FetchAll(context.Background(), urls, 1, func(_ context.Context, url string) core.FetchPageResult {
		if url == "u2" {
			return failResult(url)
		}
		return okResult(url)
	})

	require.Len(t, got.Results, 3)
	assert.Equal(t, "u1", got.Results[0].URL)
	assert.False(t, got.Results[0].Failed())
	assert.True(t, got.Results[1].Failed())
	assert.False(t, got.Results[2].Failed())
	assert.Equal(t, 2, got.Successful)
	assert.Equal(t, 1, got.Failed)
}

func TestFetchAllAdmissionCeiling(t *testing.T) {
	var inFlight, peak int64
	var mu sync.Mutex

	got := FetchAll(context.Background(), []string{"a", "b", "c", "d", "e", "f"}, 2, func(_ context.Context, url string) core.FetchPageResult {
		n := atomic.AddInt64(&inFlight, 1)
		mu.Lock()
		if n > peak {
			peak = n
		}
		mu.Unlock()
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt64(&inFlight, -1)
		return okResult(url)
	})

	assert.Equal(t, 6, got.Successful)
	mu.Lock()
	defer mu.Unlock()
	assert.LessOrEqual(t, peak, int64(2))
}

func TestFetchAllEmptyInput(t *testing.T) {
	got := FetchAll(context.Background(), nil, 5, func(_ context.Context, url string) core.FetchPageResult {
		return okResult(url)
	})
	assert.Equal(t, 0, got.TotalURLs)
	assert.Empty(t, got.Results)
}

func TestFetchAllDefaultCeiling(t *testing.T) {
	got := FetchAll(context.Background(), []string{"a"}, 0, func(_ context.Context, url string) core.FetchPageResult {
		return okResult(url)
	})
	assert.Equal(t, 1, got.Successful)
}
