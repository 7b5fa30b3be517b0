// Package extract derives the main content text of an HTML document.
//
// Extraction is two-stage:
//  1. A readability heuristic that removes boilerplate (navigation,
//     ads, footers) while keeping links and images inside the content
//     region.
//  2. A structural fallback, used only when stage 1 yields nothing:
//     strip <script>/<style> subtrees, take the visible text, and
//     collapse whitespace into single-newline-separated fragments.
package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/gaurav-prasanna/webfetch/core"
)

// Extractor turns raw HTML into plain main-content text.
// It is stateless and safe for concurrent use.
type Extractor struct{}

// New creates an Extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract runs the two-stage extraction. pageURL is used by the
// readability stage to resolve relative references inside the content;
// it may be empty. If both stages yield nothing the result is an empty
// string, not an error.
func (e *Extractor) Extract(html, pageURL string) core.ExtractedContent {
	if text, contentHTML, ok := primary(html, pageURL); ok {
		return core.ExtractedContent{Text: text, HTML: contentHTML}
	}
	return core.ExtractedContent{Text: Fallback(html), UsedFallback: true}
}

// primary runs the readability heuristic. ok is false when the
// extractor errors or produces empty text, which triggers the fallback.
func primary(html, pageURL string) (text, contentHTML string, ok bool) {
	base, err := url.Parse(pageURL)
	if err != nil {
		base = &url.URL{}
	}

	article, err := readability.FromReader(strings.NewReader(html), base)
	if err != nil {
		return "", "", false
	}

	text = strings.TrimSpace(article.TextContent)
	if text == "" {
		return "", "", false
	}
	return text, article.Content, true
}

// Fallback strips <script> and <style> subtrees, takes the remaining
// visible text, and normalizes it: lines are trimmed, further split on
// runs of two-or-more spaces, empty fragments dropped, and survivors
// rejoined with single newlines. This deliberately collapses layout
// whitespace; it is not a layout-preserving transform.
func Fallback(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	doc.Find("script, style").Remove()
	raw := doc.Text()

	var fragments []string
	for _, line := range strings.Split(raw, "\n") {
		for _, phrase := range strings.Split(strings.TrimSpace(line), "  ") {
			phrase = strings.TrimSpace(phrase)
			if phrase != "" {
				fragments = append(fragments, phrase)
			}
		}
	}
	return strings.Join(fragments, "\n")
}
