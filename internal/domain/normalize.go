package domain

import (
	"strings"
	"unicode"
)

// NormalizeWord turns user input into the canonical store key:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - collapses any run of whitespace into a single space
//
// Diacritics, hyphens, and apostrophes are preserved.
func NormalizeWord(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	text = strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(text))
	prevSpace := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			if prevSpace {
				continue
			}
			prevSpace = true
			b.WriteByte(' ')
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// Preload accepts only plain ASCII letters within these bounds.
const (
	preloadMinLen = 2
	preloadMaxLen = 20
)

// IsPreloadCandidate reports whether a normalized line from a word list is
// imported by the bulk preload.
func IsPreloadCandidate(word string) bool {
	if len(word) < preloadMinLen || len(word) > preloadMaxLen {
		return false
	}
	for i := 0; i < len(word); i++ {
		if word[i] < 'a' || word[i] > 'z' {
			return false
		}
	}
	return true
}

var (
	commonEndings  = []string{"ing", "ed", "er", "es", "ly", "tion", "ment", "ness"}
	commonPrefixes = []string{"un", "re", "pre", "dis", "mis", "over"}
)

// FrequencyScore is the sort heuristic assigned at preload time: shorter
// words and words with common affixes rank higher. Minimum is 10.
func FrequencyScore(word string) int {
	score := 100 - len(word)*2

	for _, e := range commonEndings {
		if strings.HasSuffix(word, e) {
			score += 20
			break
		}
	}
	for _, p := range commonPrefixes {
		if strings.HasPrefix(word, p) {
			score += 15
			break
		}
	}

	return max(10, score)
}
