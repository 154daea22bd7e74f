package handler

import (
	"strings"

	"github.com/standardbeagle/varlens/internal/inference"
	"github.com/standardbeagle/varlens/internal/patterns"
	"github.com/standardbeagle/varlens/internal/tokenizer"
	"github.com/standardbeagle/varlens/internal/types"
)

// JavaScriptHandler interprets inspector-style raw values:
// `{a: 1, b: {c: 2}}` objects, `Array(3) [1, 2, 3]` and `[1, 2, 3]`
// arrays, `Map(2) {'a' => 1}` maps, `'text'` strings, `null` and
// `undefined`, and function source previews.
type JavaScriptHandler struct {
	core
}

// NewJavaScriptHandler builds the JavaScript variant over the given
// pattern set.
func NewJavaScriptHandler(ps patterns.PatternSet) *JavaScriptHandler {
	return &JavaScriptHandler{core: newCore(types.LanguageJavaScript, ps, true)}
}

func (h *JavaScriptHandler) ParseVariableValue(raw, declaredType string) types.ParsedValue {
	trimmed := strings.TrimSpace(raw)

	if h.IsNilValue(trimmed) {
		return types.ParsedValue{
			DisplayValue: trimmed, ActualValue: trimmed, IsNil: true,
			ArrayLength: types.CountUnknown, ObjectKeyCount: types.CountUnknown,
		}
	}

	// Function previews are opaque primitives.
	if strings.HasPrefix(trimmed, "function") || strings.HasPrefix(trimmed, "ƒ") ||
		strings.HasPrefix(trimmed, "class ") || strings.HasPrefix(trimmed, "() =>") {
		return types.ParsedValue{
			DisplayValue: trimmed, ActualValue: trimmed,
			ArrayLength: types.CountUnknown, ObjectKeyCount: types.CountUnknown,
		}
	}

	body := stripConstructorPrefix(trimmed)

	if inner, ok := tokenizer.StripOuter(body, '[', ']'); ok {
		elems := h.splitElements(inner)
		n := declaredCount(trimmed)
		if n == types.CountUnknown {
			n = len(elems)
		}
		return types.ParsedValue{
			DisplayValue: trimmed, ActualValue: trimmed,
			IsExpandable: len(elems) > 0,
			ArrayLength:  n, ObjectKeyCount: types.CountUnknown,
		}
	}
	if _, ok := tokenizer.StripOuter(body, '{', '}'); ok {
		fields := h.ParseStructFields(trimmed)
		n := declaredCount(trimmed)
		if n == types.CountUnknown {
			n = len(fields)
		}
		return types.ParsedValue{
			DisplayValue: trimmed, ActualValue: trimmed,
			IsExpandable: len(fields) > 0,
			ArrayLength:  types.CountUnknown, ObjectKeyCount: n,
		}
	}
	if inference.IsAddressToken(trimmed) {
		return types.ParsedValue{
			DisplayValue: trimmed, ActualValue: trimmed,
			IsPointer: true, MemoryAddress: trimmed,
			ArrayLength: types.CountUnknown, ObjectKeyCount: types.CountUnknown,
		}
	}

	return types.ParsedValue{
		DisplayValue: h.FormatDisplayValue(trimmed, declaredType),
		ActualValue:  trimmed,
		ArrayLength:  types.CountUnknown, ObjectKeyCount: types.CountUnknown,
	}
}

func (h *JavaScriptHandler) ParseStructFields(raw string) []Field {
	body := stripConstructorPrefix(strings.TrimSpace(raw))
	inner, ok := tokenizer.StripOuter(body, '{', '}')
	if !ok {
		return nil
	}
	segments := h.splitElements(inner)
	fields := make([]Field, 0, len(segments))
	for i, seg := range segments {
		// Map entries use `key => value`; object fields use `key: value`.
		if k, v, ok := splitArrow(seg); ok {
			fields = append(fields, Field{Name: stripQuotes(k), Raw: v})
			continue
		}
		if k, v, ok := h.tok.SplitKeyValue(seg); ok && k != "" {
			fields = append(fields, Field{Name: stripQuotes(k), Raw: v})
			continue
		}
		fields = append(fields, Field{Name: positionalName(i), Raw: seg})
	}
	return fields
}

func (h *JavaScriptHandler) ParseArrayElements(raw string) []string {
	body := stripConstructorPrefix(strings.TrimSpace(raw))
	inner, ok := tokenizer.StripOuter(body, '[', ']')
	if !ok {
		// Set(2) {1, 2} renders with braces.
		inner, ok = tokenizer.StripOuter(body, '{', '}')
		if !ok {
			return nil
		}
	}
	return h.splitElements(inner)
}

func (h *JavaScriptHandler) FormatDisplayValue(raw, typ string) string {
	trimmed := strings.TrimSpace(raw)
	if typ == "string" || inference.IsQuotedString(types.LanguageJavaScript, trimmed) {
		return stripQuotes(trimmed)
	}
	return trimmed
}

func (h *JavaScriptHandler) IsPrimitiveType(value, typ string) bool {
	if typeInList(typ, h.ps.PrimitiveTypes) {
		return true
	}
	v := strings.TrimSpace(value)
	if v == "NaN" || v == "Infinity" || v == "-Infinity" {
		return true
	}
	return inference.IsNumericLiteral(types.LanguageJavaScript, v) ||
		v == "true" || v == "false" ||
		inference.IsQuotedString(types.LanguageJavaScript, v)
}

func (h *JavaScriptHandler) IsCollectionType(value, typ string) bool {
	if typeInList(typ, []string{"Array", "Set", "TypedArray", "Buffer"}) {
		return true
	}
	v := stripConstructorPrefix(strings.TrimSpace(value))
	return strings.HasPrefix(v, "[") ||
		strings.HasPrefix(strings.TrimSpace(value), "Set(")
}

func (h *JavaScriptHandler) IsStructuredType(value, typ string) bool {
	if typeInList(typ, []string{"Object", "Map", "WeakMap"}) {
		return true
	}
	v := strings.TrimSpace(value)
	if strings.HasPrefix(v, "Map(") {
		return true
	}
	body := stripConstructorPrefix(v)
	if strings.HasPrefix(body, "{") && strings.HasSuffix(body, "}") {
		return len(h.ParseStructFields(v)) > 0
	}
	return false
}

func (h *JavaScriptHandler) GetDefaultConfig() types.SimplificationOptions {
	opts := types.DefaultSimplificationOptions()
	// Inspector previews already truncate strings around this point.
	opts.MaxStringLength = 160
	opts.MaxObjectKeys = 40
	return opts
}

// stripConstructorPrefix drops "Object ", "Array(3) ", "Map(2) " style
// prefixes, leaving the bracket body.
func stripConstructorPrefix(raw string) string {
	for _, p := range []string{"Object", "Array", "Map", "Set", "WeakMap", "WeakSet"} {
		if !strings.HasPrefix(raw, p) {
			continue
		}
		rest := raw[len(p):]
		if strings.HasPrefix(rest, "(") {
			if i := strings.Index(rest, ") "); i >= 0 {
				return strings.TrimSpace(rest[i+2:])
			}
			continue
		}
		if strings.HasPrefix(rest, " {") || strings.HasPrefix(rest, " [") {
			return strings.TrimSpace(rest)
		}
	}
	return raw
}

// splitArrow splits a Map entry on the first top-level "=>".
func splitArrow(seg string) (key, value string, ok bool) {
	depth := 0
	inQuote := byte(0)
	for i := 0; i+1 < len(seg); i++ {
		c := seg[i]
		switch {
		case inQuote != 0:
			if c == '\\' {
				i++
			} else if c == inQuote {
				inQuote = 0
			}
		case c == '\'' || c == '"' || c == '`':
			inQuote = c
		case c == '{' || c == '[' || c == '(':
			depth++
		case c == '}' || c == ']' || c == ')':
			depth--
		case c == '=' && seg[i+1] == '>' && depth <= 0:
			return strings.TrimSpace(seg[:i]), strings.TrimSpace(seg[i+2:]), true
		}
	}
	return "", "", false
}

// declaredCount extracts N from constructor prefixes like "Array(3)".
func declaredCount(raw string) int {
	i := strings.IndexByte(raw, '(')
	if i <= 0 {
		return types.CountUnknown
	}
	head := raw[:i]
	switch head {
	case "Array", "Map", "Set", "WeakMap", "WeakSet":
		if n, ok := leadingInt(raw[i+1:]); ok {
			return n
		}
	}
	return types.CountUnknown
}
