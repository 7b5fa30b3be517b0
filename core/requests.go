package core

// Request and response shapes for the five WebFetch operations.
// These are the wire-level contracts shared by every transport (MCP,
// HTTP, CLI); the transports marshal them without reinterpretation.
// Boolean option fields use *bool so an absent JSON field can take a
// non-false default (extract_content and include_metadata default to
// true, the filter flags to false).

// FetchPageRequest are the arguments for fetch_webpage.
type FetchPageRequest struct {
	URL             string  `json:"url"`
	ExtractContent  *bool   `json:"extract_content,omitempty"`
	IncludeMetadata *bool   `json:"include_metadata,omitempty"`
	Timeout         float64 `json:"timeout,omitempty"` // seconds
	Format          string  `json:"format,omitempty"`  // "text" (default) or "markdown"
}

// FetchPageResult is the outcome of fetch_webpage for one URL.
// On failure only URL, Error, ErrorKind, and Status are set.
type FetchPageResult struct {
	URL           string        `json:"url"`
	StatusCode    int           `json:"status_code,omitempty"`
	ContentType   string        `json:"content_type,omitempty"`
	ContentLength int           `json:"content_length,omitempty"`
	Metadata      *PageMetadata `json:"metadata,omitempty"`
	Content       string        `json:"content,omitempty"`
	RawHTML       string        `json:"raw_html,omitempty"`
	Error         string        `json:"error,omitempty"`
	ErrorKind     FailureKind   `json:"error_kind,omitempty"`
	Status        string        `json:"status,omitempty"` // "failed" on error
}

// Failed reports whether the result represents a per-URL failure.
func (r *FetchPageResult) Failed() bool {
	return r.Status == StatusFailed
}

// StatusFailed marks a per-URL failure result.
const StatusFailed = "failed"

// FetchPagesRequest are the arguments for fetch_multiple_pages.
type FetchPagesRequest struct {
	URLs            []string `json:"urls"`
	ExtractContent  *bool    `json:"extract_content,omitempty"`
	IncludeMetadata *bool    `json:"include_metadata,omitempty"`
	MaxConcurrent   int      `json:"max_concurrent,omitempty"` // default 5
	Timeout         float64  `json:"timeout,omitempty"`
	Format          string   `json:"format,omitempty"`
}

// FetchPagesResult aggregates per-URL outcomes in input order.
// len(Results) always equals the number of input URLs.
type FetchPagesResult struct {
	TotalURLs  int               `json:"total_urls"`
	Successful int               `json:"successful"`
	Failed     int               `json:"failed"`
	Results    []FetchPageResult `json:"results"`
}

// SearchRequest are the arguments for search_webpage_content.
type SearchRequest struct {
	URL           string   `json:"url"`
	SearchTerms   []string `json:"search_terms"`
	CaseSensitive bool     `json:"case_sensitive,omitempty"`
	ContextChars  int      `json:"context_chars,omitempty"` // default 200
}

// SearchResult reports every term occurrence with its context window.
// ContentLength is the length of the extracted content that was
// searched, not of the raw HTML.
type SearchResult struct {
	URL           string        `json:"url"`
	SearchTerms   []string      `json:"search_terms,omitempty"`
	TotalMatches  int           `json:"total_matches"`
	Matches       []SearchMatch `json:"matches"`
	ContentLength int           `json:"content_length,omitempty"`
	Error         string        `json:"error,omitempty"`
	ErrorKind     FailureKind   `json:"error_kind,omitempty"`
	Status        string        `json:"status,omitempty"`
}

// LinksRequest are the arguments for extract_links.
type LinksRequest struct {
	URL            string `json:"url"`
	FilterInternal bool   `json:"filter_internal,omitempty"`
	FilterExternal bool   `json:"filter_external,omitempty"`
	IncludeAnchors bool   `json:"include_anchors,omitempty"`
}

// LinksResult lists discovered links in document order.
type LinksResult struct {
	SourceURL     string      `json:"source_url"`
	TotalLinks    int         `json:"total_links"`
	InternalCount int         `json:"internal_count"`
	ExternalCount int         `json:"external_count"`
	Links         []Link      `json:"links"`
	Error         string      `json:"error,omitempty"`
	ErrorKind     FailureKind `json:"error_kind,omitempty"`
	Status        string      `json:"status,omitempty"`
}

// MetadataRequest are the arguments for get_page_metadata.
type MetadataRequest struct {
	URL string `json:"url"`
}

// MetadataResult is the flattened PageMetadata plus response details.
type MetadataResult struct {
	PageMetadata
	URL           string      `json:"url"`
	StatusCode    int         `json:"status_code,omitempty"`
	ContentType   string      `json:"content_type,omitempty"`
	ContentLength int         `json:"content_length,omitempty"`
	Error         string      `json:"error,omitempty"`
	ErrorKind     FailureKind `json:"error_kind,omitempty"`
	Status        string      `json:"status,omitempty"`
}
