// Package meta extracts the fixed head-level metadata field set from
// an HTML document. Extraction is a pure function of the input text:
// no network access, no retries, identical input yields identical
// output.
package meta

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/webfetch/core"
)

// nameFields maps recognized <meta name=...> values (lowercased) to
// setters on PageMetadata. First occurrence wins when a name repeats.
var nameFields = map[string]func(*core.PageMetadata, string){
	"description":         func(m *core.PageMetadata, v string) { m.Description = v },
	"keywords":            func(m *core.PageMetadata, v string) { m.Keywords = v },
	"author":              func(m *core.PageMetadata, v string) { m.Author = v },
	"twitter:card":        func(m *core.PageMetadata, v string) { m.TwitterCard = v },
	"twitter:title":       func(m *core.PageMetadata, v string) { m.TwitterTitle = v },
	"twitter:description": func(m *core.PageMetadata, v string) { m.TwitterDescription = v },
	"twitter:image":       func(m *core.PageMetadata, v string) { m.TwitterImage = v },
}

// propertyFields maps recognized <meta property=...> values.
var propertyFields = map[string]func(*core.PageMetadata, string){
	"og:title":       func(m *core.PageMetadata, v string) { m.OGTitle = v },
	"og:description": func(m *core.PageMetadata, v string) { m.OGDescription = v },
	"og:image":       func(m *core.PageMetadata, v string) { m.OGImage = v },
	"og:url":         func(m *core.PageMetadata, v string) { m.OGURL = v },
	"og:type":        func(m *core.PageMetadata, v string) { m.OGType = v },
}

// Extract parses head-level tags and returns the recognized fields.
// A document that fails to parse yields zero-valued metadata, not an
// error.
//
// The canonical URL is returned exactly as it appears in the href
// attribute, unresolved against the page's base URL.
func Extract(html string) core.PageMetadata {
	var m core.PageMetadata

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return m
	}

	m.Title = strings.TrimSpace(doc.Find("title").First().Text())

	seen := map[string]bool{}
	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		content := s.AttrOr("content", "")

		if name := strings.ToLower(s.AttrOr("name", "")); name != "" {
			if set, ok := nameFields[name]; ok && !seen["name:"+name] {
				seen["name:"+name] = true
				set(&m, content)
			}
		}
		if prop := strings.ToLower(s.AttrOr("property", "")); prop != "" {
			if set, ok := propertyFields[prop]; ok && !seen["property:"+prop] {
				seen["property:"+prop] = true
				set(&m, content)
			}
		}
	})

	if canonical := doc.Find(`link[rel="canonical"]`).First(); canonical.Length() > 0 {
		m.CanonicalURL = canonical.AttrOr("href", "")
	}

	m.Language = doc.Find("html").AttrOr("lang", "")

	return m
}
