package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/webfetch/core"
)

func TestFetchSuccess(t *testing.T) {
	const body = "<html><body><p>hello</p></body></html>"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		assert.NotEmpty(t, r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	f := New(Options{})
	defer f.Close()

	res := f.Fetch(context.Background(), srv.URL, 0)
	require.True(t, res.OK())
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", res.ContentType)
	assert.Equal(t, body, res.Body)
	assert.Greater(t, res.Elapsed, time.Duration(0))
}

func TestFetchHTTPStatusFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not here", http.StatusNotFound)
	}))
	defer srv.Close()

	f := New(Options{})
	defer f.Close()

	res := f.Fetch(context.Background(), srv.URL, 0)
	require.False(t, res.OK())
	assert.Equal(t, core.FailHTTPStatus, res.Failure.Kind)
	assert.Contains(t, res.Failure.Message, "404")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestFetchTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(500 * time.Millisecond)
		_, _ = w.Write([]byte("late"))
	}))
	defer srv.Close()

	f := New(Options{})
	defer f.Close()

	res := f.Fetch(context.Background(), srv.URL, 50*time.Millisecond)
	require.False(t, res.OK())
	assert.Equal(t, core.FailTimeout, res.Failure.Kind)
}

func TestFetchNetworkFailure(t *testing.T) {
	// Grab a URL, then close the server so the connection is refused.
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	f := New(Options{})
	defer f.Close()

	res := f.Fetch(context.Background(), url, 0)
	require.False(t, res.OK())
	assert.Equal(t, core.FailNetwork, res.Failure.Kind)
}

func TestFetchMissingURL(t *testing.T) {
	f := New(Options{})
	defer f.Close()

	res := f.Fetch(context.Background(), "  ", 0)
	require.False(t, res.OK())
	assert.Equal(t, core.FailInvalidInput, res.Failure.Kind)
}

func TestFetchIndependentResults(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 1 {
			_, _ = w.Write([]byte("first"))
			return
		}
		_, _ = w.Write([]byte("second"))
	}))
	defer srv.Close()

	f := New(Options{})
	defer f.Close()

	a := f.Fetch(context.Background(), srv.URL, 0)
	b := f.Fetch(context.Background(), srv.URL, 0)
	require.True(t, a.OK())
	require.True(t, b.OK())
	assert.Equal(t, "first", a.Body)
	assert.Equal(t, "second", b.Body)
}

func TestFetchHeaderOverride(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "custom-agent", r.Header.Get("User-Agent"))
		assert.Equal(t, "value", r.Header.Get("X-Extra"))
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	f := New(Options{
		UserAgent: "custom-agent",
		Headers:   map[string]string{"X-Extra": "value"},
	})
	defer f.Close()

	res := f.Fetch(context.Background(), srv.URL, 0)
	require.True(t, res.OK())
}
