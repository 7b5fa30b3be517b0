// Package links discovers and classifies the hyperlinks of a page.
// Every anchor carrying an href is reported in document order, with
// the href resolved to absolute form against the source URL and
// classified as internal or external by host comparison.
package links

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/webfetch/core"
)

// Options are the optional link filters. The filters are independent
// inclusion filters; setting both yields an empty result since no link
// is ever internal and external at once.
type Options struct {
	IncludeAnchors bool // keep pure #fragment references
	FilterInternal bool // only same-host links
	FilterExternal bool // only other-host links
}

// Extract returns the classified links of the document in document
// order. Duplicate hrefs are preserved as separate records. A document
// that fails to parse yields an empty list.
func Extract(html, sourceURL string, opts Options) []core.Link {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	base, err := url.Parse(sourceURL)
	if err != nil {
		base = nil
	}
	baseHost := ""
	if base != nil {
		baseHost = base.Host
	}

	var out []core.Link
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")

		if strings.HasPrefix(href, "#") && !opts.IncludeAnchors {
			return
		}

		resolved := resolve(href, base)
		if resolved == "" {
			return
		}

		linkHost := hostOf(resolved)
		isInternal := linkHost != "" && linkHost == baseHost
		isExternal := linkHost != "" && linkHost != baseHost

		if opts.FilterInternal && !isInternal {
			return
		}
		if opts.FilterExternal && !isExternal {
			return
		}

		out = append(out, core.Link{
			URL:        resolved,
			Text:       strings.TrimSpace(s.Text()),
			Title:      s.AttrOr("title", ""),
			IsInternal: isInternal,
			IsExternal: isExternal,
		})
	})

	return out
}

// resolve joins a possibly relative href against the base URL.
// Fragments are kept: "#frag" resolves to the page URL plus fragment.
func resolve(href string, base *url.URL) string {
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base == nil {
		return parsed.String()
	}
	return base.ResolveReference(parsed).String()
}

func hostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Host
}
