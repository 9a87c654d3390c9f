// Package fuzzymatch ranks identifier names against a mistyped query.
//
// Two signals are combined: subsequence matching ("branch" finds
// "git_branch") and edit distance ("git_brnach" finds "git_branch").
package fuzzymatch

import (
	"sort"
	"strings"

	"github.com/agext/levenshtein"
)

// maxSuggestDistance is the largest edit distance still worth suggesting.
const maxSuggestDistance = 2

// FuzzyMatch represents a fuzzy match result
type FuzzyMatch struct {
	Text     string
	Score    int
	Indices  []int // positions of matched characters
	Original int   // original index in the input slice
}

// FuzzyMatcher provides fuzzy matching capabilities
type FuzzyMatcher struct {
	caseSensitive bool
}

// NewFuzzyMatcher creates a new fuzzy matcher
func NewFuzzyMatcher(caseSensitive bool) *FuzzyMatcher {
	return &FuzzyMatcher{
		caseSensitive: caseSensitive,
	}
}

// Match returns the candidates containing query as a subsequence, best
// score first. Ties keep input order.
func (fm *FuzzyMatcher) Match(query string, candidates []string) []FuzzyMatch {
	var results []FuzzyMatch

	for i, candidate := range candidates {
		if match := fm.matchString(query, candidate, i); match != nil {
			results = append(results, *match)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results
}

// matchString performs subsequence matching on a single candidate
func (fm *FuzzyMatcher) matchString(query, candidate string, originalIndex int) *FuzzyMatch {
	if query == "" {
		return nil
	}

	queryRunes := []rune(query)
	candidateRunes := []rune(candidate)

	if !fm.caseSensitive {
		queryRunes = []rune(strings.ToLower(query))
		candidateRunes = []rune(strings.ToLower(candidate))
	}

	queryIdx := 0
	var indices []int
	score := 0

	for i, candidateRune := range candidateRunes {
		if queryIdx >= len(queryRunes) || candidateRune != queryRunes[queryIdx] {
			continue
		}

		indices = append(indices, i)
		queryIdx++

		switch {
		case queryIdx == 1 && i == 0:
			score += 100
		case queryIdx == 1:
			score += 50
		case indices[len(indices)-2]+1 == i:
			// Consecutive matches are better
			score += 50
		default:
			score += 20
		}

		if i > 0 && candidateRunes[i-1] == '_' {
			// Word boundary in a snake_case name
			score += 15
		}
	}

	if queryIdx < len(queryRunes) {
		return nil
	}

	// Prefer candidates that leave little unmatched
	score -= (len(candidateRunes) - len(queryRunes)) * 5

	return &FuzzyMatch{
		Text:     candidate,
		Score:    score,
		Indices:  indices,
		Original: originalIndex,
	}
}

// Suggest returns the candidate the user most likely meant by query.
//
// Candidates within a small edit distance win first, closest first. Failing
// that, the best subsequence match is used.
func Suggest(query string, candidates []string) (string, bool) {
	if query == "" || len(candidates) == 0 {
		return "", false
	}

	best := ""
	bestDistance := maxSuggestDistance + 1
	for _, candidate := range candidates {
		if candidate == query {
			continue
		}
		distance := levenshtein.Distance(query, candidate, nil)
		if distance < bestDistance {
			best, bestDistance = candidate, distance
		}
	}
	if best != "" {
		return best, true
	}

	matches := NewFuzzyMatcher(false).Match(query, candidates)
	if len(matches) > 0 {
		return matches[0].Text, true
	}

	return "", false
}
