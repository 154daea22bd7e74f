// Package handler defines the language handler contract: the single
// seam carrying all variant-specific knowledge about debugger raw value
// grammars. Five implementations (C++, Go, Python, Java, JavaScript)
// compose the shared tokenizer, pattern tables, inference cascade and
// classifier behind one interface.
package handler

import (
	"strings"

	"github.com/standardbeagle/varlens/internal/classify"
	"github.com/standardbeagle/varlens/internal/inference"
	"github.com/standardbeagle/varlens/internal/patterns"
	"github.com/standardbeagle/varlens/internal/tokenizer"
	"github.com/standardbeagle/varlens/internal/types"
)

// Field is one ordered struct field: the raw child value stays
// unparsed, simplification recurses into it separately.
type Field struct {
	Name string
	Raw  string
}

// LanguageHandler is the strategy contract. Every operation is pure and
// total: malformed input degrades to a conservative result, never an
// error. Implementations are immutable after construction and safe for
// unsynchronized concurrent use.
type LanguageHandler interface {
	// Language returns the variant tag.
	Language() types.Language

	// InferType maps (name, raw value, context) to a semantic type
	// label, falling back to the variant's generic marker.
	InferType(name, raw string, ctx types.TypeContext) string

	// ParseVariableValue interprets one raw value. Unparsable input
	// yields IsExpandable=false with the raw text echoed as display.
	ParseVariableValue(raw, declaredType string) types.ParsedValue

	// Classification predicates.
	IsSystemVariable(name, value string) bool
	IsApplicationRelevant(name, value string) bool
	IsControlFlowVariable(name string) bool

	// Category heuristics. May overlap on ambiguous input; the
	// simplifier resolves structured over collection over primitive.
	IsPrimitiveType(value, typ string) bool
	IsCollectionType(value, typ string) bool
	IsStructuredType(value, typ string) bool

	// ParseStructFields splits a brace-delimited aggregate one level
	// deep into ordered raw fields.
	ParseStructFields(raw string) []Field

	// ParseArrayElements splits a bracket-delimited sequence one level
	// deep into ordered raw elements.
	ParseArrayElements(raw string) []string

	// IsNilValue matches the variant's fixed nil literal spellings.
	IsNilValue(raw string) bool

	// FormatDisplayValue performs cosmetic cleanup. Idempotent:
	// applying it twice equals applying it once.
	FormatDisplayValue(raw, typ string) string

	// CalculateVariableImportance returns the weighted heuristic score.
	// Relative ranking only; no fixed scale.
	CalculateVariableImportance(name, value string) int

	// Classifier exposes the underlying classifier for snapshot ranking.
	Classifier() *classify.Classifier

	// GetDefaultConfig returns the variant's simplification defaults.
	GetDefaultConfig() types.SimplificationOptions
}

// core is the shared composition every variant embeds: pattern tables,
// tokenizer, inference engine and classifier wired for one language.
type core struct {
	lang types.Language
	ps   patterns.PatternSet
	tok  *tokenizer.Tokenizer
	inf  *inference.Engine
	cls  *classify.Classifier
}

func newCore(lang types.Language, ps patterns.PatternSet, escapeQuotes bool) core {
	return core{
		lang: lang,
		ps:   ps,
		tok: tokenizer.New(tokenizer.Config{
			Quotes:       inference.QuoteRunes(lang),
			EscapeQuotes: escapeQuotes,
		}),
		inf: inference.New(lang),
		cls: classify.New(lang, ps),
	}
}

func (c *core) Language() types.Language {
	return c.lang
}

func (c *core) InferType(name, raw string, ctx types.TypeContext) string {
	return c.inf.Infer(name, raw, ctx)
}

func (c *core) IsSystemVariable(name, value string) bool {
	return c.cls.IsSystemVariable(name, value)
}

func (c *core) IsApplicationRelevant(name, value string) bool {
	return c.cls.IsApplicationRelevant(name, value)
}

func (c *core) IsControlFlowVariable(name string) bool {
	return c.cls.IsControlFlowVariable(name)
}

func (c *core) IsNilValue(raw string) bool {
	return inference.IsNilLiteral(c.lang, raw)
}

func (c *core) CalculateVariableImportance(name, value string) int {
	return c.cls.Importance(name, value)
}

// Classifier exposes the underlying classifier for snapshot ranking.
func (c *core) Classifier() *classify.Classifier {
	return c.cls
}

// splitFields is the shared one-level struct split: strip an optional
// leading type name, strip the outer braces, split on top-level commas,
// then split each segment on the first top-level ':' or '='. Segments
// without a separator get positional names.
func (c *core) splitFields(raw string) []Field {
	body := strings.TrimSpace(raw)
	if i := strings.IndexByte(body, '{'); i > 0 {
		body = body[i:]
	}
	body, ok := tokenizer.StripOuter(body, '{', '}')
	if !ok {
		return nil
	}

	segments := c.tok.SplitTopLevel(body, ',')
	fields := make([]Field, 0, len(segments))
	for i, seg := range segments {
		if key, val, ok := c.tok.SplitKeyValue(seg); ok && key != "" {
			fields = append(fields, Field{Name: stripQuotes(key), Raw: val})
			continue
		}
		fields = append(fields, Field{Name: positionalName(i), Raw: seg})
	}
	return fields
}

// splitElements is the shared one-level sequence split over an already
// unwrapped body.
func (c *core) splitElements(body string) []string {
	return c.tok.SplitTopLevel(body, ',')
}

func positionalName(i int) string {
	const digits = "0123456789"
	if i < 10 {
		return digits[i : i+1]
	}
	return itoa(i)
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var buf [8]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	return string(buf[pos:])
}

// stripQuotes removes one layer of matching outer quotes. Idempotent:
// the result never starts with the quote that was stripped.
func stripQuotes(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'' || first == '`') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// baseTypeWord extracts the leading identifier of a type expression,
// lowering "std::vector<int>" to "std::vector" and "map[string]int" to
// "map".
func baseTypeWord(typ string) string {
	typ = strings.TrimSpace(typ)
	for i, r := range typ {
		switch r {
		case '<', '[', '(', ' ', '{':
			return typ[:i]
		}
	}
	return typ
}

// typeInList reports whether the base word of typ matches any entry,
// case-insensitively.
func typeInList(typ string, list []string) bool {
	base := strings.ToLower(baseTypeWord(typ))
	if base == "" {
		return false
	}
	for _, t := range list {
		if base == strings.ToLower(t) {
			return true
		}
	}
	return false
}

// typeContainsAny reports whether typ contains any marker substring.
func typeContainsAny(typ string, markers ...string) bool {
	lower := strings.ToLower(typ)
	for _, m := range markers {
		if strings.Contains(lower, strings.ToLower(m)) {
			return true
		}
	}
	return false
}
