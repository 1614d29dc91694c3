// Package strutil provides case-insensitive string similarity helpers used
// by search code.
package strutil

import "strings"

// Similarity measures how alike two strings are using Levenshtein distance,
// normalized by the longer string's length. Identical strings (ignoring
// case) score 1.0; strings with nothing in common score 0.0.
func Similarity(first, second string) float64 {
	// Rune counts, matching the rune-based distance below
	longLen := len([]rune(first))
	if l := len([]rune(second)); l > longLen {
		longLen = l
	}
	if longLen == 0 {
		return 1.0
	}
	return float64(longLen-LevenshteinDistance(first, second)) / float64(longLen)
}

// LevenshteinDistance returns the number of single-character edits needed to
// turn one string into the other, ignoring case.
func LevenshteinDistance(s1, s2 string) int {
	a := []rune(strings.ToLower(s1))
	b := []rune(strings.ToLower(s2))

	costs := make([]int, len(b)+1)
	for j := range costs {
		costs[j] = j
	}

	for i := 1; i <= len(a); i++ {
		lastValue := i
		for j := 1; j <= len(b); j++ {
			newValue := costs[j-1]
			if a[i-1] != b[j-1] {
				newValue = min(min(newValue, lastValue), costs[j]) + 1
			}
			costs[j-1] = lastValue
			lastValue = newValue
		}
		costs[len(b)] = lastValue
	}
	return costs[len(b)]
}

// Truncate cuts a string down to maxLength characters and appends trailing
// periods. Strings at or under the limit come back unchanged.
func Truncate(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	return strings.TrimSpace(string(runes[:maxLength])) + "..."
}
