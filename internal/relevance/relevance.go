// Package relevance implements the lexical-overlap heuristic that decides
// whether scraped text plausibly answers a query. It is a cheap proxy for
// semantic similarity: no stemming, no synonym expansion.
package relevance

import "strings"

// significantLength is the minimum token length (exclusive) for a query word
// to count toward the match threshold. Short words like "the" or "is" carry
// no signal.
const significantLength = 3

// Match reports whether enough significant words from the query appear in the
// text. Words longer than three characters are significant; at least half of
// them (and always at least one) must occur, case-insensitively, anywhere in
// the text. A query with no significant words degrades to a substring test of
// the full query.
func Match(query, text string) bool {
	lowerText := strings.ToLower(text)

	var words []string
	for _, w := range strings.Fields(strings.ToLower(query)) {
		if len(w) > significantLength {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return strings.Contains(lowerText, strings.ToLower(query))
	}

	count := 0
	for _, w := range words {
		if strings.Contains(lowerText, w) {
			count++
		}
	}
	return count >= max(1, len(words)/2)
}
