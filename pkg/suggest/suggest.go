// Package suggest ranks known names by their similarity to a mistyped one.
package suggest

import (
	"cmp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// threshold is the minimum similarity score required for a string to be considered similar.
const threshold = 0.5

// FindSimilar returns up to maxResults candidates similar to target, most similar first.
func FindSimilar(target string, candidates []string, maxResults int) []string {
	if target == "" || maxResults <= 0 {
		return []string{}
	}

	type scored struct {
		name  string
		score float64
	}
	suggestions := make([]scored, 0, len(candidates))
	for _, name := range candidates {
		if score := calculateSimilarity(target, name); score > threshold {
			suggestions = append(suggestions, scored{name, score})
		}
	}

	slices.SortFunc(suggestions, func(a, b scored) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		return cmp.Compare(a.name, b.name)
	})

	result := make([]string, 0, maxResults)
	for i := 0; i < len(suggestions) && i < maxResults; i++ {
		result = append(result, suggestions[i].name)
	}
	return result
}

func calculateSimilarity(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	switch {
	case a == b:
		return 1.0
	case strings.HasPrefix(b, a):
		return 0.9
	case fuzzy.Match(a, b):
		// Every character of a appears in b, in order.
		return 0.75
	}
	distance := fuzzy.LevenshteinDistance(a, b)
	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	return 1.0 - float64(distance)/float64(maxLen)
}
