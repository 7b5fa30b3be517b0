// Package core defines the shared data model for WebFetch.
// Every value here is produced by exactly one fetch and never mutated
// after creation; callers receive independent copies, not shared state.
package core

import "time"

// FailureKind classifies why an operation could not produce a document.
type FailureKind string

const (
	// FailNetwork covers DNS, connect, and TLS failures.
	FailNetwork FailureKind = "network"
	// FailTimeout means the per-call deadline was exceeded.
	FailTimeout FailureKind = "timeout"
	// FailHTTPStatus means the server answered with a non-2xx status.
	FailHTTPStatus FailureKind = "http_status"
	// FailInvalidInput means a required field was missing or malformed.
	FailInvalidInput FailureKind = "invalid_input"
)

// Failure describes a classified fetch failure.
type Failure struct {
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`
}

// FetchResult is the outcome of one HTTP retrieval attempt.
// Either Failure is nil and the remaining fields describe a 2xx
// response, or Failure is set and only URL (plus StatusCode for
// http_status failures) is meaningful.
type FetchResult struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        string
	Elapsed     time.Duration
	Failure     *Failure
}

// OK reports whether the fetch produced a usable document.
func (r *FetchResult) OK() bool {
	return r.Failure == nil
}

// PageMetadata holds the fixed set of head-level fields extracted from
// a document. Absent fields are omitted from JSON, never null-filled.
type PageMetadata struct {
	Title              string `json:"title,omitempty"`
	Description        string `json:"description,omitempty"`
	Keywords           string `json:"keywords,omitempty"`
	Author             string `json:"author,omitempty"`
	CanonicalURL       string `json:"canonical_url,omitempty"`
	Language           string `json:"language,omitempty"`
	OGTitle            string `json:"og_title,omitempty"`
	OGDescription      string `json:"og_description,omitempty"`
	OGImage            string `json:"og_image,omitempty"`
	OGURL              string `json:"og_url,omitempty"`
	OGType             string `json:"og_type,omitempty"`
	TwitterCard        string `json:"twitter_card,omitempty"`
	TwitterTitle       string `json:"twitter_title,omitempty"`
	TwitterDescription string `json:"twitter_description,omitempty"`
	TwitterImage       string `json:"twitter_image,omitempty"`
}

// ExtractedContent is the derived main text of a document.
// Text never contains markup. HTML holds the content region as HTML
// when the primary extractor produced it (used for Markdown output);
// it is empty when the fallback ran.
type ExtractedContent struct {
	Text         string
	HTML         string
	UsedFallback bool
}

// Link is one classified hyperlink discovered on a page.
// IsInternal and IsExternal are mutually exclusive; a link whose host
// cannot be determined is neither.
type Link struct {
	URL        string `json:"url"`
	Text       string `json:"text"`
	Title      string `json:"title"`
	IsInternal bool   `json:"is_internal"`
	IsExternal bool   `json:"is_external"`
}

// SearchMatch is one occurrence of a search term within extracted
// content. Position is an offset into the extracted text, not the raw
// HTML; Context is cut from the original (unlowered) content.
type SearchMatch struct {
	Term         string `json:"term"`
	Position     int    `json:"position"`
	Context      string `json:"context"`
	ContextStart int    `json:"context_start"`
	ContextEnd   int    `json:"context_end"`
}
