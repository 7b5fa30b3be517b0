// Package fetch implements HTTP retrieval over a shared connection pool.
// A single Fetcher owns one pooled http.Client reused by every call;
// per-call behaviour (timeout) never mutates the shared configuration.
//
// Fetch never returns a Go error: every failure path is represented as
// a classified core.Failure value so callers need no error handling to
// consume an outcome.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/gaurav-prasanna/webfetch/core"
)

const (
	// DefaultTimeout applies when the caller does not supply one.
	DefaultTimeout = 30 * time.Second

	// defaultUserAgent is a realistic browser string; many sites serve
	// degraded or empty pages to obvious bot agents.
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	defaultMaxBodyBytes = 10 * 1024 * 1024 // 10MB cap
)

// Options controls fetching behaviour. Zero values take defaults.
type Options struct {
	UserAgent           string
	Headers             map[string]string // extra headers, override defaults per key
	Timeout             time.Duration     // default per-call timeout
	MaxBodyBytes        int64
	MaxIdleConns        int
	MaxIdleConnsPerHost int
}

// Fetcher performs GETs over a long-lived, pooled HTTP client.
// It is safe for concurrent use.
type Fetcher struct {
	client         *http.Client
	transport      *http.Transport
	userAgent      string
	extraHeaders   map[string]string
	defaultTimeout time.Duration
	maxBodyBytes   int64
}

// New constructs a Fetcher with a tuned transport. The pool is shared
// across all calls for the life of the Fetcher; release it with Close.
func New(opts Options) *Fetcher {
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	if opts.MaxIdleConns <= 0 {
		opts.MaxIdleConns = 50
	}
	if opts.MaxIdleConnsPerHost <= 0 {
		opts.MaxIdleConnsPerHost = 10
	}

	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		MaxIdleConns:          opts.MaxIdleConns,
		MaxIdleConnsPerHost:   opts.MaxIdleConnsPerHost,
		IdleConnTimeout:       90 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &Fetcher{
		client:         &http.Client{Transport: transport},
		transport:      transport,
		userAgent:      opts.UserAgent,
		extraHeaders:   opts.Headers,
		defaultTimeout: opts.Timeout,
		maxBodyBytes:   opts.MaxBodyBytes,
	}
}

// Fetch performs a single GET. A non-positive timeout takes the
// Fetcher default. The returned result is a private value owned by the
// caller; two fetches of the same URL share nothing.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, timeout time.Duration) *core.FetchResult {
	if strings.TrimSpace(rawURL) == "" {
		return failure(rawURL, core.FailInvalidInput, "url is required")
	}
	if timeout <= 0 {
		timeout = f.defaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return failure(rawURL, core.FailInvalidInput, fmt.Sprintf("invalid URL: %v", err))
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	for k, v := range f.extraHeaders {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return failure(rawURL, classify(err), err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		res := failure(rawURL, core.FailHTTPStatus, fmt.Sprintf("HTTP status %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)))
		res.StatusCode = resp.StatusCode
		return res
	}

	// Decode non-UTF-8 bodies; charset.NewReader sniffs the BOM, the
	// Content-Type header, and the document's meta tags.
	reader, err := charset.NewReader(io.LimitReader(resp.Body, f.maxBodyBytes), resp.Header.Get("Content-Type"))
	if err != nil {
		return failure(rawURL, classify(err), fmt.Sprintf("reading body: %v", err))
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return failure(rawURL, classify(err), fmt.Sprintf("reading body: %v", err))
	}

	return &core.FetchResult{
		URL:         rawURL,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        string(body),
		Elapsed:     time.Since(start),
	}
}

// Close releases idle pooled connections. The Fetcher must not be
// used afterwards.
func (f *Fetcher) Close() {
	f.transport.CloseIdleConnections()
}

// classify maps a transport error to a failure kind. Deadline and
// net-level timeouts are reported as timeout, everything else as
// network (DNS, connect, TLS).
func classify(err error) core.FailureKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return core.FailTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return core.FailTimeout
	}
	return core.FailNetwork
}

func failure(url string, kind core.FailureKind, msg string) *core.FetchResult {
	return &core.FetchResult{
		URL:     url,
		Failure: &core.Failure{Kind: kind, Message: msg},
	}
}
