// Package service binds the pipeline components into the five
// WebFetch operations. Each operation is an idempotent read: failures
// are captured as structured result values, never returned as Go
// errors, except for invalid_input on required fields, which is
// rejected before any fetch is attempted.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gaurav-prasanna/webfetch/config"
	"github.com/gaurav-prasanna/webfetch/core"
	"github.com/gaurav-prasanna/webfetch/core/batch"
	"github.com/gaurav-prasanna/webfetch/core/extract"
	"github.com/gaurav-prasanna/webfetch/core/fetch"
	"github.com/gaurav-prasanna/webfetch/core/links"
	"github.com/gaurav-prasanna/webfetch/core/meta"
	"github.com/gaurav-prasanna/webfetch/core/normalize"
	"github.com/gaurav-prasanna/webfetch/core/search"
)

// FormatMarkdown selects Markdown content output on fetch requests.
const FormatMarkdown = "markdown"

// ErrMissingURL is returned when a request omits its required URL.
var ErrMissingURL = errors.New("url is required")

// ErrMissingURLs is returned when a batch request has no URLs.
var ErrMissingURLs = errors.New("urls is required")

// Service executes WebFetch operations. The only state shared across
// concurrent calls is the fetcher's connection pool, which is safe for
// concurrent use; every result is a private value owned by its caller.
type Service struct {
	fetcher       *fetch.Fetcher
	extractor     *extract.Extractor
	normalizer    *normalize.MarkdownNormalizer
	log           *zap.Logger
	timeout       time.Duration
	maxConcurrent int
}

// New builds a Service from configuration. Close releases the
// connection pool.
func New(cfg *config.Config, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		fetcher: fetch.New(fetch.Options{
			UserAgent:           cfg.Fetch.UserAgent,
			Timeout:             time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second,
			MaxBodyBytes:        cfg.Fetch.MaxBodyBytes,
			MaxIdleConns:        cfg.Fetch.MaxIdleConns,
			MaxIdleConnsPerHost: cfg.Fetch.MaxIdleConnsPerHost,
		}),
		extractor:     extract.New(),
		normalizer:    normalize.New(),
		log:           log,
		timeout:       time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second,
		maxConcurrent: cfg.Batch.MaxConcurrent,
	}
}

// Close releases the shared connection pool.
func (s *Service) Close() {
	s.fetcher.Close()
}

// FetchWebpage fetches one URL and derives content and/or metadata
// from the document.
func (s *Service) FetchWebpage(ctx context.Context, req core.FetchPageRequest) (core.FetchPageResult, error) {
	if strings.TrimSpace(req.URL) == "" {
		return core.FetchPageResult{}, ErrMissingURL
	}
	return s.fetchPage(ctx, req), nil
}

// fetchPage is the single-page pipeline shared by FetchWebpage and
// FetchMultiplePages. URL presence has already been validated.
func (s *Service) fetchPage(ctx context.Context, req core.FetchPageRequest) core.FetchPageResult {
	res := s.fetcher.Fetch(ctx, req.URL, secondsToDuration(req.Timeout))
	if !res.OK() {
		s.log.Warn("fetch failed",
			zap.String("url", req.URL),
			zap.String("kind", string(res.Failure.Kind)),
			zap.String("message", res.Failure.Message))
		return pageFailure(req.URL, res.Failure)
	}

	s.log.Debug("fetched",
		zap.String("url", req.URL),
		zap.Int("status", res.StatusCode),
		zap.Int("bytes", len(res.Body)),
		zap.Duration("elapsed", res.Elapsed))

	out := core.FetchPageResult{
		URL:           req.URL,
		StatusCode:    res.StatusCode,
		ContentType:   res.ContentType,
		ContentLength: len(res.Body),
	}

	if boolOr(req.IncludeMetadata, true) {
		m := meta.Extract(res.Body)
		out.Metadata = &m
	}

	if boolOr(req.ExtractContent, true) {
		out.Content = s.contentFor(res.Body, req.URL, req.Format)
	} else {
		out.RawHTML = res.Body
	}

	return out
}

// contentFor extracts content in the requested format. Markdown is
// only possible when the primary extractor produced a content region;
// the fallback's output is already plain text.
func (s *Service) contentFor(html, pageURL, format string) string {
	ec := s.extractor.Extract(html, pageURL)
	if format == FormatMarkdown && ec.HTML != "" {
		md, err := s.normalizer.Normalize(ec.HTML)
		if err == nil && md != "" {
			return md
		}
		s.log.Warn("markdown conversion failed, returning text", zap.String("url", pageURL), zap.Error(err))
	}
	return ec.Text
}

// FetchMultiplePages fans the URL list out to the single-page
// pipeline under the admission ceiling. Results keep input order and
// per-URL failures never abort siblings.
func (s *Service) FetchMultiplePages(ctx context.Context, req core.FetchPagesRequest) (core.FetchPagesResult, error) {
	if len(req.URLs) == 0 {
		return core.FetchPagesResult{}, ErrMissingURLs
	}

	maxConcurrent := req.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = s.maxConcurrent
	}

	return batch.FetchAll(ctx, req.URLs, maxConcurrent, func(ctx context.Context, url string) core.FetchPageResult {
		if strings.TrimSpace(url) == "" {
			return pageFailure(url, &core.Failure{Kind: core.FailInvalidInput, Message: "url is required"})
		}
		return s.fetchPage(ctx, core.FetchPageRequest{
			URL:             url,
			ExtractContent:  req.ExtractContent,
			IncludeMetadata: req.IncludeMetadata,
			Timeout:         req.Timeout,
			Format:          req.Format,
		})
	}), nil
}

// SearchWebpageContent fetches the URL, extracts its content, and
// reports every term occurrence with a context window.
func (s *Service) SearchWebpageContent(ctx context.Context, req core.SearchRequest) (core.SearchResult, error) {
	if strings.TrimSpace(req.URL) == "" {
		return core.SearchResult{}, ErrMissingURL
	}

	page := s.fetchPage(ctx, core.FetchPageRequest{
		URL:             req.URL,
		IncludeMetadata: boolPtr(false),
	})
	if page.Failed() {
		return core.SearchResult{
			URL:       req.URL,
			Error:     page.Error,
			ErrorKind: page.ErrorKind,
			Status:    core.StatusFailed,
		}, nil
	}

	matches := search.Find(page.Content, req.SearchTerms, req.CaseSensitive, req.ContextChars)

	return core.SearchResult{
		URL:           req.URL,
		SearchTerms:   req.SearchTerms,
		TotalMatches:  len(matches),
		Matches:       matches,
		ContentLength: len(page.Content),
	}, nil
}

// ExtractLinks fetches the URL and returns its classified links.
func (s *Service) ExtractLinks(ctx context.Context, req core.LinksRequest) (core.LinksResult, error) {
	if strings.TrimSpace(req.URL) == "" {
		return core.LinksResult{}, ErrMissingURL
	}

	res := s.fetcher.Fetch(ctx, req.URL, 0)
	if !res.OK() {
		return core.LinksResult{
			SourceURL: req.URL,
			Error:     res.Failure.Message,
			ErrorKind: res.Failure.Kind,
			Status:    core.StatusFailed,
		}, nil
	}

	found := links.Extract(res.Body, req.URL, links.Options{
		IncludeAnchors: req.IncludeAnchors,
		FilterInternal: req.FilterInternal,
		FilterExternal: req.FilterExternal,
	})

	out := core.LinksResult{
		SourceURL:  req.URL,
		TotalLinks: len(found),
		Links:      found,
	}
	for i := range found {
		if found[i].IsInternal {
			out.InternalCount++
		}
		if found[i].IsExternal {
			out.ExternalCount++
		}
	}
	return out, nil
}

// GetPageMetadata fetches the URL and returns its flattened metadata.
// The operation is a pure function of the document text: fetching an
// unchanged document twice yields identical metadata.
func (s *Service) GetPageMetadata(ctx context.Context, req core.MetadataRequest) (core.MetadataResult, error) {
	if strings.TrimSpace(req.URL) == "" {
		return core.MetadataResult{}, ErrMissingURL
	}

	res := s.fetcher.Fetch(ctx, req.URL, 0)
	if !res.OK() {
		return core.MetadataResult{
			URL:       req.URL,
			Error:     res.Failure.Message,
			ErrorKind: res.Failure.Kind,
			Status:    core.StatusFailed,
		}, nil
	}

	return core.MetadataResult{
		PageMetadata:  meta.Extract(res.Body),
		URL:           req.URL,
		StatusCode:    res.StatusCode,
		ContentType:   res.ContentType,
		ContentLength: len(res.Body),
	}, nil
}

func pageFailure(url string, f *core.Failure) core.FetchPageResult {
	return core.FetchPageResult{
		URL:       url,
		Error:     f.Message,
		ErrorKind: f.Kind,
		Status:    core.StatusFailed,
	}
}

// secondsToDuration converts the wire-level timeout (seconds, possibly
// fractional) into a Duration; zero means "use the default".
func secondsToDuration(seconds float64) time.Duration {
	if seconds <= 0 {
		return 0
	}
	return time.Duration(seconds * float64(time.Second))
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func boolPtr(b bool) *bool { return &b }
