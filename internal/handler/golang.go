package handler

import (
	"strings"

	"github.com/standardbeagle/varlens/internal/inference"
	"github.com/standardbeagle/varlens/internal/patterns"
	"github.com/standardbeagle/varlens/internal/tokenizer"
	"github.com/standardbeagle/varlens/internal/types"
)

// GoHandler interprets Delve-style raw values: `{Name: "Alice", Age: 30}`
// structs, `[]int len: 3, cap: 4, [1,2,3]` slices, `map[string]int
// [k: 1]` maps, bare `0xc0000140a0` pointers and `nil` / `<nil>`.
type GoHandler struct {
	core
}

// NewGoHandler builds the Go variant over the given pattern set.
func NewGoHandler(ps patterns.PatternSet) *GoHandler {
	return &GoHandler{core: newCore(types.LanguageGo, ps, true)}
}

func (h *GoHandler) ParseVariableValue(raw, declaredType string) types.ParsedValue {
	trimmed := strings.TrimSpace(raw)

	if h.IsNilValue(trimmed) {
		return types.ParsedValue{
			DisplayValue: trimmed, ActualValue: trimmed, IsNil: true,
			ArrayLength: types.CountUnknown, ObjectKeyCount: types.CountUnknown,
		}
	}
	if inference.IsAddressToken(trimmed) {
		return types.ParsedValue{
			DisplayValue: trimmed, ActualValue: trimmed,
			IsPointer: true, MemoryAddress: trimmed,
			ArrayLength: types.CountUnknown, ObjectKeyCount: types.CountUnknown,
		}
	}

	pointer := false
	body := trimmed
	// Delve renders dereferenced pointers as &{...} or *main.T {...}.
	if strings.HasPrefix(body, "&") {
		pointer = true
		body = strings.TrimSpace(body[1:])
	} else if strings.HasPrefix(body, "*") && strings.Contains(body, "{") {
		pointer = true
		body = strings.TrimSpace(body[1:])
	}

	if addr, inner, ok := splitAddressPrefix(body); ok {
		// "(*main.User)(0xc000010020)" or "0xc000010020 {...}" forms.
		pv := h.ParseVariableValue(inner, declaredType)
		pv.IsPointer = true
		pv.MemoryAddress = addr
		return pv
	}

	if n, elems, ok := h.sliceBody(body); ok {
		return types.ParsedValue{
			DisplayValue: trimmed, ActualValue: trimmed,
			IsExpandable: len(elems) > 0, IsPointer: pointer,
			ArrayLength: n, ObjectKeyCount: types.CountUnknown,
		}
	}
	if fields := h.ParseStructFields(body); len(fields) > 0 {
		return types.ParsedValue{
			DisplayValue: trimmed, ActualValue: trimmed,
			IsExpandable: true, IsPointer: pointer,
			ArrayLength: types.CountUnknown, ObjectKeyCount: len(fields),
		}
	}
	if strings.HasPrefix(body, "[") && strings.HasSuffix(body, "]") {
		elems := h.ParseArrayElements(body)
		return types.ParsedValue{
			DisplayValue: trimmed, ActualValue: trimmed,
			IsExpandable: len(elems) > 0, IsPointer: pointer,
			ArrayLength: len(elems), ObjectKeyCount: types.CountUnknown,
		}
	}

	return types.ParsedValue{
		DisplayValue: h.FormatDisplayValue(trimmed, declaredType),
		ActualValue:  trimmed,
		IsPointer:    pointer,
		ArrayLength:  types.CountUnknown, ObjectKeyCount: types.CountUnknown,
	}
}

// sliceBody recognizes Delve's "len: N, cap: M, [...]" slice rendering
// and returns the true length plus the printed elements.
func (h *GoHandler) sliceBody(raw string) (length int, elems []string, ok bool) {
	i := strings.Index(raw, "len:")
	if i < 0 {
		return 0, nil, false
	}
	length, ok = leadingInt(strings.TrimSpace(raw[i+len("len:"):]))
	if !ok {
		return 0, nil, false
	}
	j := strings.Index(raw, ", [")
	if j < 0 {
		return 0, nil, false
	}
	body, _ := tokenizer.StripOuter(strings.TrimSpace(raw[j+2:]), '[', ']')
	return length, h.splitElements(body), true
}

func (h *GoHandler) ParseStructFields(raw string) []Field {
	trimmed := strings.TrimSpace(raw)
	// Delve map rendering: map[string]int [one: 1, two: 2]
	if strings.HasPrefix(trimmed, "map[") {
		if i := strings.Index(trimmed, " ["); i >= 0 {
			body, _ := tokenizer.StripOuter(trimmed[i+1:], '[', ']')
			segments := h.splitElements(body)
			fields := make([]Field, 0, len(segments))
			for n, seg := range segments {
				if k, v, ok := h.tok.SplitKeyValue(seg); ok && k != "" {
					fields = append(fields, Field{Name: stripQuotes(k), Raw: v})
				} else {
					fields = append(fields, Field{Name: positionalName(n), Raw: seg})
				}
			}
			return fields
		}
		return nil
	}
	return h.splitFields(trimmed)
}

func (h *GoHandler) ParseArrayElements(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	if _, elems, ok := h.sliceBody(trimmed); ok {
		return elems
	}
	body, ok := tokenizer.StripOuter(trimmed, '[', ']')
	if !ok {
		return nil
	}
	return h.splitElements(body)
}

func (h *GoHandler) FormatDisplayValue(raw, typ string) string {
	trimmed := strings.TrimSpace(raw)
	if typ == "string" || inference.IsQuotedString(types.LanguageGo, trimmed) {
		return stripQuotes(trimmed)
	}
	return trimmed
}

func (h *GoHandler) IsPrimitiveType(value, typ string) bool {
	if typeInList(typ, h.ps.PrimitiveTypes) {
		return true
	}
	v := strings.TrimSpace(value)
	return inference.IsNumericLiteral(types.LanguageGo, v) ||
		v == "true" || v == "false" ||
		inference.IsQuotedString(types.LanguageGo, v)
}

func (h *GoHandler) IsCollectionType(value, typ string) bool {
	t := strings.TrimSpace(typ)
	if strings.HasPrefix(t, "[]") || strings.HasPrefix(t, "[") || strings.HasPrefix(t, "map[") {
		return true
	}
	if typeInList(typ, []string{"slice", "map", "array"}) {
		return true
	}
	v := strings.TrimSpace(value)
	return strings.HasPrefix(v, "[") || strings.HasPrefix(v, "map[") ||
		strings.Contains(v, "len:") && strings.Contains(v, "cap:")
}

func (h *GoHandler) IsStructuredType(value, typ string) bool {
	t := strings.TrimSpace(typ)
	if baseTypeWord(t) == "struct" || typeContainsAny(t, "struct {") {
		return true
	}
	// Named types (main.User) rendering as brace aggregates.
	v := strings.TrimSpace(value)
	if strings.HasPrefix(v, "&") {
		v = strings.TrimSpace(v[1:])
	}
	if strings.Contains(v, "{") && strings.HasSuffix(v, "}") && !strings.HasPrefix(v, "map[") {
		return len(h.splitFields(v)) > 0
	}
	return false
}

func (h *GoHandler) GetDefaultConfig() types.SimplificationOptions {
	opts := types.DefaultSimplificationOptions()
	opts.MaxArrayLength = 32
	return opts
}

// splitAddressPrefix recognizes "0xADDR {...}" and "(*T)(0xADDR)"
// pointer renderings, returning the address and the remaining body.
func splitAddressPrefix(raw string) (addr, body string, ok bool) {
	if strings.HasPrefix(raw, "(*") {
		if i := strings.Index(raw, ")(0x"); i >= 0 && strings.HasSuffix(raw, ")") {
			return raw[i+2 : len(raw)-1], "", true
		}
	}
	if strings.HasPrefix(raw, "0x") {
		if i := strings.IndexByte(raw, ' '); i > 0 && inference.IsAddressToken(raw[:i]) {
			return raw[:i], strings.TrimSpace(raw[i+1:]), true
		}
	}
	return "", "", false
}

// leadingInt parses the leading decimal digits of s.
func leadingInt(s string) (int, bool) {
	n, seen := 0, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
		seen = true
	}
	return n, seen
}
