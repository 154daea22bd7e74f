package classify

import (
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	"github.com/surgebase/porter2"
)

// defaultFuzzyThreshold is the Jaro-Winkler similarity above which a
// name word counts as a near-miss of a business pattern. High on
// purpose: fuzzy matching exists for typos, not for loose association.
const defaultFuzzyThreshold = 0.92

// nameSplitter breaks variable names into constituent words. Handles
// camelCase, PascalCase, snake_case, kebab-case and digit boundaries.
// Stateless and safe for concurrent use.
type nameSplitter struct{}

func newNameSplitter() *nameSplitter {
	return &nameSplitter{}
}

func (s *nameSplitter) split(name string) []string {
	var words []string
	var buf strings.Builder

	flushWord := func() {
		if buf.Len() > 0 {
			words = append(words, strings.ToLower(buf.String()))
			buf.Reset()
		}
	}

	runes := []rune(name)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == '.' || r == '$':
			flushWord()
		case unicode.IsUpper(r):
			// Boundary before an upper rune, except inside an acronym run
			// (HTTPServer splits as http, server).
			if i > 0 && (unicode.IsLower(runes[i-1]) ||
				(i+1 < len(runes) && unicode.IsLower(runes[i+1]) && unicode.IsUpper(runes[i-1]))) {
				flushWord()
			}
			buf.WriteRune(r)
		case unicode.IsDigit(r):
			if i > 0 && !unicode.IsDigit(runes[i-1]) {
				flushWord()
			}
			buf.WriteRune(r)
		default:
			buf.WriteRune(r)
		}
	}
	flushWord()
	return words
}

// stemWord reduces an English word to its Porter2 stem. Words shorter
// than three characters are returned unchanged; stemming "id" or "ok"
// only destroys them.
func stemWord(word string) string {
	if len(word) < 3 {
		return word
	}
	return porter2.Stem(word)
}

// fuzzyNameMatcher checks name words against pattern words with
// Jaro-Winkler similarity, catching typo'd business names
// ("usrAccount" vs "user").
type fuzzyNameMatcher struct {
	threshold float32
}

func newFuzzyNameMatcher(threshold float64) *fuzzyNameMatcher {
	if threshold <= 0 || threshold > 1 {
		threshold = defaultFuzzyThreshold
	}
	return &fuzzyNameMatcher{threshold: float32(threshold)}
}

// anyClose reports whether any word is a fuzzy match of any plain
// pattern. Glob patterns and short words are skipped; similarity on
// two-character strings is noise.
func (m *fuzzyNameMatcher) anyClose(words, pats []string) bool {
	for _, w := range words {
		if len(w) < 4 {
			continue
		}
		for _, p := range pats {
			if len(p) < 4 || strings.ContainsAny(p, "*?[") {
				continue
			}
			score, err := edlib.StringsSimilarity(w, strings.ToLower(p), edlib.JaroWinkler)
			if err == nil && score >= m.threshold {
				return true
			}
		}
	}
	return false
}
