// Package tokenizer normalises raw text into index terms. Hyphen, dash, and
// underscore variants are treated as word boundaries, all other punctuation
// is stripped, and the result is lower-cased. No stemming or stop-word
// removal is applied: the same terms must come out of a query string as out
// of a document body, and any asymmetry here breaks term matching.
package tokenizer

import (
	"strings"
	"unicode"
)

// isWordSplitter reports whether r separates two words: hyphen, en dash,
// em dash, and underscore all split compounds into their parts.
func isWordSplitter(r rune) bool {
	switch r {
	case '-', '_', '–', '—':
		return true
	}
	return false
}

// Tokenize breaks text into a slice of normalised lowercase terms. Empty
// terms are discarded.
func Tokenize(text string) []string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case isWordSplitter(r):
			b.WriteRune(' ')
		case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r):
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return strings.Fields(b.String())
}

// TermFrequencies tokenizes text and counts occurrences of each term.
func TermFrequencies(text string) map[string]int {
	freqs := make(map[string]int)
	for _, term := range Tokenize(text) {
		freqs[term]++
	}
	return freqs
}
