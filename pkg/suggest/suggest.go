// Package suggest finds likely intended names for a mistyped command.
package suggest

import (
	"cmp"
	"slices"
	"strings"
)

// threshold is the minimum similarity score required for a string to be considered similar.
const threshold = 0.5

type scored struct {
	name  string
	score float64
}

// FindSimilar returns up to maxResults candidates similar to target, most similar first. Ties are
// broken alphabetically. Comparison ignores case.
func FindSimilar(target string, candidates []string, maxResults int) []string {
	if target == "" || maxResults <= 0 {
		return []string{}
	}

	matches := make([]scored, 0, len(candidates))
	for _, name := range candidates {
		if score := calculateSimilarity(target, name); score > threshold {
			matches = append(matches, scored{name: name, score: score})
		}
	}
	slices.SortFunc(matches, func(a, b scored) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		return cmp.Compare(a.name, b.name)
	})

	result := make([]string, 0, min(maxResults, len(matches)))
	for _, m := range matches[:min(maxResults, len(matches))] {
		result = append(result, m.name)
	}
	return result
}

// calculateSimilarity scores a and b between 0 and 1. A prefix match scores 0.9; otherwise the
// score is derived from the Levenshtein distance relative to the longer string.
func calculateSimilarity(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	if a == b {
		return 1.0
	}
	if strings.HasPrefix(b, a) {
		return 0.9
	}
	distance := levenshteinDistance(a, b)
	longest := float64(max(len(a), len(b)))
	return 1.0 - float64(distance)/longest
}

func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// Two rows of the distance matrix are enough.
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
