package handler

import (
	"strings"

	"github.com/standardbeagle/varlens/internal/inference"
	"github.com/standardbeagle/varlens/internal/patterns"
	"github.com/standardbeagle/varlens/internal/tokenizer"
	"github.com/standardbeagle/varlens/internal/types"
)

// JavaHandler interprets JDI/toString-style raw values:
// `User{name=Alice, age=30}` aggregates, `[1, 2, 3]` arrays,
// `"text"` strings, `User@1f2a` and `instance of User (id=42)`
// object references, and `null`.
type JavaHandler struct {
	core
}

// NewJavaHandler builds the Java variant over the given pattern set.
func NewJavaHandler(ps patterns.PatternSet) *JavaHandler {
	return &JavaHandler{core: newCore(types.LanguageJava, ps, true)}
}

func (h *JavaHandler) ParseVariableValue(raw, declaredType string) types.ParsedValue {
	trimmed := strings.TrimSpace(raw)

	if h.IsNilValue(trimmed) {
		return types.ParsedValue{
			DisplayValue: trimmed, ActualValue: trimmed, IsNil: true,
			ArrayLength: types.CountUnknown, ObjectKeyCount: types.CountUnknown,
		}
	}

	// "instance of User (id=42)" and "User@1f2a" opaque references.
	if id, ok := instanceRef(trimmed); ok {
		return types.ParsedValue{
			DisplayValue: trimmed, ActualValue: trimmed,
			IsPointer: true, MemoryAddress: id,
			ArrayLength: types.CountUnknown, ObjectKeyCount: types.CountUnknown,
		}
	}

	if strings.Contains(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
		fields := h.ParseStructFields(trimmed)
		return types.ParsedValue{
			DisplayValue: trimmed, ActualValue: trimmed,
			IsExpandable: len(fields) > 0,
			ArrayLength:  types.CountUnknown, ObjectKeyCount: len(fields),
		}
	}
	if body, ok := tokenizer.StripOuter(trimmed, '[', ']'); ok {
		elems := h.splitElements(body)
		return types.ParsedValue{
			DisplayValue: trimmed, ActualValue: trimmed,
			IsExpandable: len(elems) > 0,
			ArrayLength:  len(elems), ObjectKeyCount: types.CountUnknown,
		}
	}

	return types.ParsedValue{
		DisplayValue: h.FormatDisplayValue(trimmed, declaredType),
		ActualValue:  trimmed,
		ArrayLength:  types.CountUnknown, ObjectKeyCount: types.CountUnknown,
	}
}

func (h *JavaHandler) ParseStructFields(raw string) []Field {
	return h.splitFields(raw)
}

func (h *JavaHandler) ParseArrayElements(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	body, ok := tokenizer.StripOuter(trimmed, '[', ']')
	if !ok {
		// Arrays sometimes render with braces via Arrays.toString copies.
		body, ok = tokenizer.StripOuter(trimmed, '{', '}')
		if !ok {
			return nil
		}
	}
	return h.splitElements(body)
}

func (h *JavaHandler) FormatDisplayValue(raw, typ string) string {
	trimmed := strings.TrimSpace(raw)
	if typ == "String" || typ == "java.lang.String" || inference.IsQuotedString(types.LanguageJava, trimmed) {
		return stripQuotes(trimmed)
	}
	// 42L and 42 display the same; drop the literal suffix.
	if inference.IsNumericLiteral(types.LanguageJava, trimmed) {
		return strings.TrimRight(trimmed, "lLfFdD")
	}
	return trimmed
}

func (h *JavaHandler) IsPrimitiveType(value, typ string) bool {
	if typeInList(typ, h.ps.PrimitiveTypes) {
		return true
	}
	v := strings.TrimSpace(value)
	return inference.IsNumericLiteral(types.LanguageJava, v) ||
		v == "true" || v == "false" ||
		inference.IsQuotedString(types.LanguageJava, v)
}

func (h *JavaHandler) IsCollectionType(value, typ string) bool {
	if strings.HasSuffix(strings.TrimSpace(typ), "[]") {
		return true
	}
	if typeInList(typ, []string{
		"List", "ArrayList", "LinkedList", "Set", "HashSet", "TreeSet",
		"Collection", "Iterable", "Queue", "Deque",
	}) {
		return true
	}
	v := strings.TrimSpace(value)
	return strings.HasPrefix(v, "[") && strings.HasSuffix(v, "]")
}

func (h *JavaHandler) IsStructuredType(value, typ string) bool {
	if typeInList(typ, []string{"Map", "HashMap", "TreeMap", "LinkedHashMap"}) {
		return true
	}
	v := strings.TrimSpace(value)
	if strings.Contains(v, "{") && strings.HasSuffix(v, "}") {
		return len(h.splitFields(v)) > 0
	}
	return false
}

func (h *JavaHandler) GetDefaultConfig() types.SimplificationOptions {
	opts := types.DefaultSimplificationOptions()
	// Framework objects nest deeply; cap keys a little tighter.
	opts.MaxObjectKeys = 25
	return opts
}

// instanceRef matches "instance of User (id=42)" and "User@1f2a",
// returning the object id token.
func instanceRef(raw string) (string, bool) {
	if strings.HasPrefix(raw, "instance of ") {
		if i := strings.Index(raw, "(id="); i >= 0 {
			id := strings.TrimSuffix(raw[i+len("(id="):], ")")
			return id, true
		}
		return "", true
	}
	at := strings.LastIndexByte(raw, '@')
	if at > 0 && !strings.ContainsAny(raw, " {}[]()\"") {
		return raw[at+1:], true
	}
	return "", false
}
