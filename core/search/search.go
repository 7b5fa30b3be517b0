// Package search finds term occurrences in extracted content and
// returns each with a bounded context window.
package search

import (
	"strings"

	"github.com/gaurav-prasanna/webfetch/core"
)

// DefaultContextChars is the context window budget when the caller
// does not supply one.
const DefaultContextChars = 200

// Find scans content for every occurrence of every term. The scan
// advances one position past each hit, so overlapping occurrences of
// the same term are all reported. Terms are processed in caller order;
// within a term, matches are in increasing offset order.
//
// In case-insensitive mode both content and terms are lowercased for
// scanning, but context windows are cut from the original content,
// preserving source casing. Empty terms are skipped. An empty term
// list yields an empty result, not an error.
func Find(content string, terms []string, caseSensitive bool, contextChars int) []core.SearchMatch {
	if contextChars <= 0 {
		contextChars = DefaultContextChars
	}

	haystack := content
	if !caseSensitive {
		haystack = strings.ToLower(content)
	}

	var matches []core.SearchMatch
	for _, term := range terms {
		needle := term
		if !caseSensitive {
			needle = strings.ToLower(term)
		}
		if needle == "" {
			continue
		}

		start := 0
		for {
			pos := strings.Index(haystack[start:], needle)
			if pos < 0 {
				break
			}
			pos += start

			// Lowercasing can change byte length (e.g. U+023A grows a
			// byte), so offsets from the lowered haystack may exceed
			// len(content). Clamp everything to the original's bounds.
			winStart := clamp(pos-contextChars/2, 0, len(content))
			winEnd := clamp(pos+len(needle)+contextChars/2, winStart, len(content))

			matches = append(matches, core.SearchMatch{
				Term:         needle,
				Position:     min(pos, len(content)),
				Context:      content[winStart:winEnd],
				ContextStart: winStart,
				ContextEnd:   winEnd,
			})

			start = pos + 1
		}
	}

	return matches
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
