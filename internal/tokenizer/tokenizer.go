// Package tokenizer implements the shared depth-and-quote-aware
// splitting algorithm used by every language handler to break aggregate
// raw values into top-level segments. It is a single left-to-right scan
// with an explicit two-state machine (normal / in-quote) plus an integer
// bracket depth counter; linear time, no regex, no recursion.
package tokenizer

import "strings"

// scanState is the tokenizer state machine state.
type scanState int

const (
	stateNormal scanState = iota
	stateInQuote
)

// Config parameterizes the scan per language variant.
type Config struct {
	// Quotes lists the quote characters that open a quoted region.
	// A region is closed only by the same character that opened it.
	Quotes []rune

	// EscapeQuotes honors backslash escapes inside quoted regions, so
	// an escaped quote does not close the region. Only variants whose
	// grammar defines escaping set this.
	EscapeQuotes bool
}

// Tokenizer splits delimited raw strings while respecting nesting and
// quoting. Safe for unsynchronized concurrent use; it holds no state
// between calls.
type Tokenizer struct {
	cfg Config
}

// New builds a tokenizer for one variant's delimiters.
func New(cfg Config) *Tokenizer {
	return &Tokenizer{cfg: cfg}
}

func (t *Tokenizer) isQuote(r rune) bool {
	for _, q := range t.cfg.Quotes {
		if r == q {
			return true
		}
	}
	return false
}

// SplitTopLevel splits s on the delimiter, recognizing it only at
// bracket depth zero outside quoted regions. Brackets are {, [ and (
// with their closers. Unbalanced input never aborts the scan: depth may
// go negative and the trailing buffer is always flushed. Segments are
// trimmed; empty segments are dropped.
func (t *Tokenizer) SplitTopLevel(s string, delim rune) []string {
	var segments []string
	var buf strings.Builder

	state := stateNormal
	var quoteCh rune
	depth := 0

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		switch state {
		case stateInQuote:
			buf.WriteRune(r)
			if t.cfg.EscapeQuotes && r == '\\' && i+1 < len(runes) {
				buf.WriteRune(runes[i+1])
				i++
				continue
			}
			if r == quoteCh {
				state = stateNormal
			}

		case stateNormal:
			switch {
			case t.isQuote(r):
				state = stateInQuote
				quoteCh = r
				buf.WriteRune(r)
			case r == '{' || r == '[' || r == '(':
				depth++
				buf.WriteRune(r)
			case r == '}' || r == ']' || r == ')':
				depth--
				buf.WriteRune(r)
			case r == delim && depth <= 0:
				flush(&segments, &buf)
			default:
				buf.WriteRune(r)
			}
		}
	}
	flush(&segments, &buf)
	return segments
}

func flush(segments *[]string, buf *strings.Builder) {
	seg := strings.TrimSpace(buf.String())
	if seg != "" {
		*segments = append(*segments, seg)
	}
	buf.Reset()
}

// SplitKeyValue splits a struct-field segment into key and value on the
// first top-level ':' or '=' outside quotes and brackets. Returns false
// when no separator is found at depth zero.
func (t *Tokenizer) SplitKeyValue(s string) (key, value string, ok bool) {
	state := stateNormal
	var quoteCh rune
	depth := 0

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		switch state {
		case stateInQuote:
			if t.cfg.EscapeQuotes && r == '\\' && i+1 < len(runes) {
				i++
				continue
			}
			if r == quoteCh {
				state = stateNormal
			}

		case stateNormal:
			switch {
			case t.isQuote(r):
				state = stateInQuote
				quoteCh = r
			case r == '{' || r == '[' || r == '(':
				depth++
			case r == '}' || r == ']' || r == ')':
				depth--
			case (r == ':' || r == '=') && depth <= 0:
				return strings.TrimSpace(string(runes[:i])), strings.TrimSpace(string(runes[i+1:])), true
			}
		}
	}
	return "", "", false
}

// StripOuter removes one matching pair of outer delimiters from s, e.g.
// "{a, b}" -> "a, b". Returns s unchanged (and false) when the outer
// characters do not match the requested pair.
func StripOuter(s string, open, close byte) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == open && s[len(s)-1] == close {
		return s[1 : len(s)-1], true
	}
	return s, false
}

// Balanced reports whether the bracket depth of s returns to zero at
// end of input, ignoring brackets inside quoted regions. Used only as a
// soft signal; unbalanced input is still split best-effort.
func (t *Tokenizer) Balanced(s string) bool {
	state := stateNormal
	var quoteCh rune
	depth := 0

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch state {
		case stateInQuote:
			if t.cfg.EscapeQuotes && r == '\\' && i+1 < len(runes) {
				i++
				continue
			}
			if r == quoteCh {
				state = stateNormal
			}
		case stateNormal:
			switch {
			case t.isQuote(r):
				state = stateInQuote
				quoteCh = r
			case r == '{' || r == '[' || r == '(':
				depth++
			case r == '}' || r == ']' || r == ')':
				depth--
			}
		}
	}
	return depth == 0 && state == stateNormal
}
