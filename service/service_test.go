package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/webfetch/config"
	"github.com/gaurav-prasanna/webfetch/core"
)

const testPage = `<!DOCTYPE html>
<html lang="en">
<head>
<title>Test Page</title>
<meta name="description" content="A page for tests">
<meta property="og:title" content="OG Test Page">
</head>
<body>
<p>Alpha beta gamma delta. The quick brown fox jumps over the lazy dog.</p>
<a href="/internal">in</a>
<a href="https://other.example/out">out</a>
<a href="#top">anchor</a>
</body>
</html>`

func newTestService(t *testing.T) (*Service, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			http.NotFound(w, r)
		default:
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(testPage))
		}
	}))
	t.Cleanup(srv.Close)

	svc := New(config.Default(), nil)
	t.Cleanup(svc.Close)

	return svc, srv
}

func TestFetchWebpageContentLengthInvariant(t *testing.T) {
	svc, srv := newTestService(t)

	got, err := svc.FetchWebpage(context.Background(), core.FetchPageRequest{URL: srv.URL})
	require.NoError(t, err)
	require.False(t, got.Failed())

	// content_length reports the raw body length even when content
	// extraction replaced the body in the response.
	assert.Equal(t, len(testPage), got.ContentLength)
	assert.Equal(t, http.StatusOK, got.StatusCode)
	assert.NotEmpty(t, got.Content)
	assert.Empty(t, got.RawHTML)
}

func TestFetchWebpageRawHTML(t *testing.T) {
	svc, srv := newTestService(t)

	extract := false
	got, err := svc.FetchWebpage(context.Background(), core.FetchPageRequest{
		URL:            srv.URL,
		ExtractContent: &extract,
	})
	require.NoError(t, err)
	assert.Equal(t, testPage, got.RawHTML)
	assert.Empty(t, got.Content)
}

func TestFetchWebpageMetadata(t *testing.T) {
	svc, srv := newTestService(t)

	got, err := svc.FetchWebpage(context.Background(), core.FetchPageRequest{URL: srv.URL})
	require.NoError(t, err)
	require.NotNil(t, got.Metadata)
	assert.Equal(t, "Test Page", got.Metadata.Title)
	assert.Equal(t, "A page for tests", got.Metadata.Description)
	assert.Equal(t, "OG Test Page", got.Metadata.OGTitle)

	include := false
	got, err = svc.FetchWebpage(context.Background(), core.FetchPageRequest{
		URL:             srv.URL,
		IncludeMetadata: &include,
	})
	require.NoError(t, err)
	assert.Nil(t, got.Metadata)
}

func TestFetchWebpageHTTPStatusFailure(t *testing.T) {
	svc, srv := newTestService(t)

	got, err := svc.FetchWebpage(context.Background(), core.FetchPageRequest{URL: srv.URL + "/missing"})
	require.NoError(t, err)
	require.True(t, got.Failed())
	assert.Equal(t, core.FailHTTPStatus, got.ErrorKind)
	assert.Contains(t, got.Error, "404")
}

func TestFetchWebpageMissingURL(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.FetchWebpage(context.Background(), core.FetchPageRequest{})
	assert.ErrorIs(t, err, ErrMissingURL)
}

func TestFetchMultiplePages(t *testing.T) {
	svc, srv := newTestService(t)

	urls := []string{srv.URL, srv.URL + "/missing", srv.URL + "/other"}
	got, err := svc.FetchMultiplePages(context.Background(), core.FetchPagesRequest{
		URLs:          urls,
		MaxConcurrent: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, got.TotalURLs)
	assert.Equal(t, 2, got.Successful)
	assert.Equal(t, 1, got.Failed)
	require.Len(t, got.Results, 3)
	for i, url := range urls {
		assert.Equal(t, url, got.Results[i].URL)
	}
	assert.True(t, got.Results[1].Failed())
}

func TestFetchMultiplePagesMissingURLs(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.FetchMultiplePages(context.Background(), core.FetchPagesRequest{})
	assert.ErrorIs(t, err, ErrMissingURLs)
}

func TestSearchWebpageContent(t *testing.T) {
	svc, srv := newTestService(t)

	got, err := svc.SearchWebpageContent(context.Background(), core.SearchRequest{
		URL:         srv.URL,
		SearchTerms: []string{"quick brown"},
	})
	require.NoError(t, err)
	require.False(t, got.Status == core.StatusFailed)

	assert.Equal(t, []string{"quick brown"}, got.SearchTerms)
	require.Equal(t, 1, got.TotalMatches)
	assert.Contains(t, got.Matches[0].Context, "quick brown fox")
	assert.Greater(t, got.ContentLength, 0)
}

func TestSearchWebpageContentFetchFailure(t *testing.T) {
	svc, srv := newTestService(t)

	got, err := svc.SearchWebpageContent(context.Background(), core.SearchRequest{
		URL:         srv.URL + "/missing",
		SearchTerms: []string{"x"},
	})
	require.NoError(t, err)
	assert.Equal(t, core.StatusFailed, got.Status)
	assert.Equal(t, core.FailHTTPStatus, got.ErrorKind)
}

func TestExtractLinks(t *testing.T) {
	svc, srv := newTestService(t)

	got, err := svc.ExtractLinks(context.Background(), core.LinksRequest{URL: srv.URL})
	require.NoError(t, err)

	// The anchor-only link is excluded by default.
	assert.Equal(t, 2, got.TotalLinks)
	assert.Equal(t, 1, got.InternalCount)
	assert.Equal(t, 1, got.ExternalCount)
}

func TestGetPageMetadataIdempotent(t *testing.T) {
	svc, srv := newTestService(t)

	first, err := svc.GetPageMetadata(context.Background(), core.MetadataRequest{URL: srv.URL})
	require.NoError(t, err)
	second, err := svc.GetPageMetadata(context.Background(), core.MetadataRequest{URL: srv.URL})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "Test Page", first.Title)
	assert.Equal(t, len(testPage), first.ContentLength)
	assert.Equal(t, http.StatusOK, first.StatusCode)
}
