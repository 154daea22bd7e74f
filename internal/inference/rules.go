package inference

import (
	"strings"

	"github.com/standardbeagle/varlens/internal/types"
)

// labelTable holds the variant-specific type labels the cascade emits.
type labelTable struct {
	boolT    string
	intT     string
	int64T   string
	floatT   string
	stringT  string
	arrayT   string
	mapT     string
	structT  string
	pointerT string
	nilT     string
	timeT    string
}

func labelsFor(lang types.Language) labelTable {
	switch lang {
	case types.LanguageCPP:
		return labelTable{
			boolT: "bool", intT: "int", int64T: "int64_t", floatT: "double",
			stringT: "std::string", arrayT: "std::vector", mapT: "std::map",
			structT: "struct", pointerT: "pointer", nilT: "nullptr_t",
			timeT: "std::chrono::time_point",
		}
	case types.LanguageGo:
		return labelTable{
			boolT: "bool", intT: "int", int64T: "int64", floatT: "float64",
			stringT: "string", arrayT: "slice", mapT: "map",
			structT: "struct", pointerT: "pointer", nilT: "nil",
			timeT: "time.Time",
		}
	case types.LanguagePython:
		return labelTable{
			boolT: "bool", intT: "int", int64T: "int", floatT: "float",
			stringT: "str", arrayT: "list", mapT: "dict",
			structT: "object", pointerT: "object", nilT: "NoneType",
			timeT: "datetime",
		}
	case types.LanguageJava:
		return labelTable{
			boolT: "boolean", intT: "int", int64T: "long", floatT: "double",
			stringT: "String", arrayT: "Object[]", mapT: "Map",
			structT: "Object", pointerT: "reference", nilT: "null",
			timeT: "java.time.Instant",
		}
	default: // JavaScript
		return labelTable{
			boolT: "boolean", intT: "number", int64T: "number", floatT: "number",
			stringT: "string", arrayT: "Array", mapT: "Map",
			structT: "Object", pointerT: "reference", nilT: "null",
			timeT: "Date",
		}
	}
}

// nilLiteralTable is the fixed per-variant nil spelling set. Spellings
// from one variant are deliberately absent from the others, e.g. Go's
// "nil" is not a Python nil.
var nilLiteralTable = map[types.Language][]string{
	types.LanguageCPP:        {"nullptr", "NULL", "0x0"},
	types.LanguageGo:         {"nil", "<nil>"},
	types.LanguagePython:     {"None"},
	types.LanguageJava:       {"null"},
	types.LanguageJavaScript: {"null", "undefined"},
}

// NilLiterals returns the fixed nil spelling set for a variant.
func NilLiterals(lang types.Language) []string {
	return nilLiteralTable[lang]
}

// IsNilLiteral reports whether raw is one of the variant's exact nil
// spellings, after trimming surrounding space.
func IsNilLiteral(lang types.Language, raw string) bool {
	trimmed := strings.TrimSpace(raw)
	for _, lit := range nilLiteralTable[lang] {
		if trimmed == lit {
			return true
		}
	}
	return false
}

// numericSuffixes lists the single/double character literal suffixes a
// variant's numeric grammar allows.
var numericSuffixes = map[types.Language][]string{
	types.LanguageCPP:        {"ull", "ll", "ul", "u", "l", "f"},
	types.LanguageGo:         {"i"},
	types.LanguagePython:     {"j"},
	types.LanguageJava:       {"l", "f", "d"},
	types.LanguageJavaScript: {"n"},
}

// boolLiterals per variant; Python capitalizes.
var boolLiterals = map[types.Language][]string{
	types.LanguageCPP:        {"true", "false"},
	types.LanguageGo:         {"true", "false"},
	types.LanguagePython:     {"True", "False"},
	types.LanguageJava:       {"true", "false"},
	types.LanguageJavaScript: {"true", "false"},
}

// quoteChars per variant grammar.
var quoteChars = map[types.Language]string{
	types.LanguageCPP:        `"`,
	types.LanguageGo:         "\"`",
	types.LanguagePython:     `'"`,
	types.LanguageJava:       `"`,
	types.LanguageJavaScript: "'\"`",
}

// QuoteRunes returns the quote characters of a variant's grammar, for
// tokenizer construction.
func QuoteRunes(lang types.Language) []rune {
	return []rune(quoteChars[lang])
}

// IsQuotedString reports whether raw is wrapped in one of the variant's
// quote characters.
func IsQuotedString(lang types.Language, raw string) bool {
	raw = strings.TrimSpace(raw)
	if len(raw) < 2 {
		return false
	}
	for _, q := range quoteChars[lang] {
		if rune(raw[0]) == q && rune(raw[len(raw)-1]) == q {
			return true
		}
	}
	return false
}

// IsAddressToken reports whether raw looks like a bare memory address
// (0x followed by hex digits).
func IsAddressToken(raw string) bool {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "0x") && !strings.HasPrefix(raw, "0X") {
		return false
	}
	rest := raw[2:]
	if rest == "" {
		return false
	}
	for _, r := range rest {
		if !isHexDigit(r) {
			return false
		}
	}
	return true
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// IsNumericLiteral reports whether raw is an integer or floating
// literal under the variant's grammar, suffixes included.
func IsNumericLiteral(lang types.Language, raw string) bool {
	_, ok := isNumericLiteral(lang, raw)
	return ok
}

// isNumericLiteral recognizes integer and floating literals, including
// the variant's suffixes. Returns whether the literal is floating.
func isNumericLiteral(lang types.Language, raw string) (isFloat, ok bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return false, false
	}
	if s[0] == '+' || s[0] == '-' {
		s = s[1:]
	}
	if s == "" {
		return false, false
	}

	lower := strings.ToLower(s)
	for _, suf := range numericSuffixes[lang] {
		if strings.HasSuffix(lower, suf) && len(s) > len(suf) {
			s = s[:len(s)-len(suf)]
			break
		}
	}

	digits, dot, exp := 0, false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == '.' && !dot && !exp:
			dot = true
		case (c == 'e' || c == 'E') && digits > 0 && !exp:
			exp = true
			if i+1 < len(s) && (s[i+1] == '+' || s[i+1] == '-') {
				i++
			}
		case c == '_' && digits > 0:
			// digit group separator
		default:
			return false, false
		}
	}
	if digits == 0 {
		return false, false
	}
	return dot || exp, true
}

// keywordRule is one entry of the ordered name-keyword table.
type keywordRule struct {
	keywords     []string
	prefixOnly   bool
	needsNumeric bool
	label        func(labelTable) string
}

// keywordRules is the fixed, ordered name-keyword heuristic table.
// Evaluation order is load-bearing: "timeoutCount" is a count, not a
// timestamp, because the count rule comes first.
var keywordRules = []keywordRule{
	{keywords: []string{"count", "size", "len", "total", "num"}, label: func(l labelTable) string { return l.intT }},
	{keywords: []string{"time", "date", "timestamp", "duration", "elapsed"}, label: func(l labelTable) string { return l.timeT }},
	{keywords: []string{"id", "uid", "key"}, needsNumeric: true, label: func(l labelTable) string { return l.int64T }},
	{keywords: []string{"name", "title", "desc", "label", "msg", "message", "text", "path", "url"}, label: func(l labelTable) string { return l.stringT }},
	{keywords: []string{"is", "has", "should", "can", "enable", "disable", "allow"}, prefixOnly: true, label: func(l labelTable) string { return l.boolT }},
	{keywords: []string{"map", "dict", "lookup", "index"}, label: func(l labelTable) string { return l.mapT }},
	{keywords: []string{"list", "array", "items", "elements", "entries", "queue"}, label: func(l labelTable) string { return l.arrayT }},
}

// buildRules assembles the full cascade for one variant in contract
// order: literal forms first, then the declared type, then name
// keywords. (The parent-type/generic fallback lives in Engine.infer.)
func buildRules(lang types.Language) []Rule {
	lt := labelsFor(lang)

	return []Rule{
		{
			Name: "nil-literal",
			Match: func(name, raw string, ctx types.TypeContext) (string, bool) {
				if IsNilLiteral(lang, raw) {
					return lt.nilT, true
				}
				return "", false
			},
		},
		{
			Name: "bool-literal",
			Match: func(name, raw string, ctx types.TypeContext) (string, bool) {
				trimmed := strings.TrimSpace(raw)
				for _, b := range boolLiterals[lang] {
					if trimmed == b {
						return lt.boolT, true
					}
				}
				return "", false
			},
		},
		{
			Name: "address-literal",
			Match: func(name, raw string, ctx types.TypeContext) (string, bool) {
				if IsAddressToken(raw) {
					return lt.pointerT, true
				}
				return "", false
			},
		},
		{
			Name: "numeric-literal",
			Match: func(name, raw string, ctx types.TypeContext) (string, bool) {
				if isFloat, ok := isNumericLiteral(lang, raw); ok {
					if isFloat {
						return lt.floatT, true
					}
					return lt.intT, true
				}
				return "", false
			},
		},
		{
			Name: "quoted-string",
			Match: func(name, raw string, ctx types.TypeContext) (string, bool) {
				if IsQuotedString(lang, raw) {
					return lt.stringT, true
				}
				return "", false
			},
		},
		{
			Name: "bracket-shape",
			Match: func(name, raw string, ctx types.TypeContext) (string, bool) {
				return bracketShape(lang, lt, raw)
			},
		},
		{
			Name: "declared-type",
			Match: func(name, raw string, ctx types.TypeContext) (string, bool) {
				if ctx.DeclaredType != "" && !isPlaceholder(ctx.DeclaredType) {
					return ctx.DeclaredType, true
				}
				return "", false
			},
		},
		{
			Name: "name-keywords",
			Match: func(name, raw string, ctx types.TypeContext) (string, bool) {
				return matchKeywords(name, raw, lang, lt)
			},
		},
	}
}

// bracketShape maps aggregate literal shapes to type labels. The
// structured-over-collection tie break does not apply here: a leading
// '{' is a struct/map shape, a leading '[' a sequence shape.
func bracketShape(lang types.Language, lt labelTable, raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}
	switch lang {
	case types.LanguageGo:
		if strings.HasPrefix(s, "map[") {
			return lt.mapT, true
		}
		if strings.HasPrefix(s, "[]") || strings.HasPrefix(s, "[") {
			return lt.arrayT, true
		}
		if strings.HasPrefix(s, "&") || strings.HasPrefix(s, "*") {
			return lt.pointerT, true
		}
		if strings.HasPrefix(s, "{") {
			return lt.structT, true
		}
	case types.LanguagePython:
		if strings.HasPrefix(s, "{") {
			// Bare braces are a dict or set; dict wins as the common case.
			return lt.mapT, true
		}
		if strings.HasPrefix(s, "[") {
			return lt.arrayT, true
		}
		if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
			return "tuple", true
		}
		if strings.HasPrefix(s, "<") && strings.HasSuffix(s, ">") {
			return lt.structT, true
		}
	case types.LanguageJavaScript:
		if strings.HasPrefix(s, "Map(") {
			return lt.mapT, true
		}
		if strings.HasPrefix(s, "Set(") {
			return "Set", true
		}
		if strings.HasPrefix(s, "[") {
			return lt.arrayT, true
		}
		if strings.HasPrefix(s, "{") {
			return lt.structT, true
		}
	default: // C++, Java
		if strings.HasPrefix(s, "{") {
			return lt.structT, true
		}
		if strings.HasPrefix(s, "[") {
			return lt.arrayT, true
		}
	}
	return "", false
}

func matchKeywords(name, raw string, lang types.Language, lt labelTable) (string, bool) {
	lower := strings.ToLower(name)
	if lower == "" {
		return "", false
	}
	for _, kr := range keywordRules {
		for _, kw := range kr.keywords {
			var hit bool
			if kr.prefixOnly {
				hit = strings.HasPrefix(lower, kw)
			} else {
				hit = strings.Contains(lower, kw)
			}
			if !hit {
				continue
			}
			if kr.needsNumeric {
				if _, ok := isNumericLiteral(lang, raw); !ok {
					continue
				}
			}
			return kr.label(lt), true
		}
	}
	return "", false
}
