package handler

import (
	"strings"

	"github.com/standardbeagle/varlens/internal/inference"
	"github.com/standardbeagle/varlens/internal/patterns"
	"github.com/standardbeagle/varlens/internal/tokenizer"
	"github.com/standardbeagle/varlens/internal/types"
)

// CPPHandler interprets GDB-style raw values: `{x = 1, y = 2}`
// aggregates, `{1, 2, 3}` arrays, STL pretty-printer renderings like
// `std::vector of length 3, capacity 4 = {1, 2, 3}`, and
// `(User *) 0x7ffe...` pointers.
type CPPHandler struct {
	core
}

// NewCPPHandler builds the C++ variant over the given pattern set.
func NewCPPHandler(ps patterns.PatternSet) *CPPHandler {
	return &CPPHandler{core: newCore(types.LanguageCPP, ps, true)}
}

func (h *CPPHandler) ParseVariableValue(raw, declaredType string) types.ParsedValue {
	trimmed := strings.TrimSpace(raw)

	if h.IsNilValue(trimmed) {
		return types.ParsedValue{
			DisplayValue: trimmed, ActualValue: trimmed, IsNil: true,
			ArrayLength: types.CountUnknown, ObjectKeyCount: types.CountUnknown,
		}
	}

	// "(User *) 0x7ffe..." cast-prefixed pointer.
	if addr, rest, ok := castPointer(trimmed); ok {
		pv := types.ParsedValue{
			DisplayValue: trimmed, ActualValue: trimmed,
			IsPointer: true, MemoryAddress: addr,
			ArrayLength: types.CountUnknown, ObjectKeyCount: types.CountUnknown,
		}
		if rest != "" {
			inner := h.ParseVariableValue(rest, declaredType)
			pv.IsExpandable = inner.IsExpandable
			pv.ArrayLength = inner.ArrayLength
			pv.ObjectKeyCount = inner.ObjectKeyCount
		}
		return pv
	}
	if inference.IsAddressToken(trimmed) {
		return types.ParsedValue{
			DisplayValue: trimmed, ActualValue: trimmed,
			IsPointer: true, MemoryAddress: trimmed,
			ArrayLength: types.CountUnknown, ObjectKeyCount: types.CountUnknown,
		}
	}
	// "0x5555 \"text\"" char pointer rendering.
	if strings.HasPrefix(trimmed, "0x") {
		if i := strings.IndexByte(trimmed, ' '); i > 0 && inference.IsAddressToken(trimmed[:i]) {
			return types.ParsedValue{
				DisplayValue: stripQuotes(strings.TrimSpace(trimmed[i+1:])),
				ActualValue:  trimmed,
				IsPointer:    true, MemoryAddress: trimmed[:i],
				ArrayLength: types.CountUnknown, ObjectKeyCount: types.CountUnknown,
			}
		}
	}

	if n, ok := stlLength(trimmed); ok {
		elems := h.ParseArrayElements(trimmed)
		return types.ParsedValue{
			DisplayValue: trimmed, ActualValue: trimmed,
			IsExpandable: len(elems) > 0,
			ArrayLength:  n, ObjectKeyCount: types.CountUnknown,
		}
	}

	if body, ok := tokenizer.StripOuter(trimmed, '{', '}'); ok {
		if fields := h.namedFields(trimmed); len(fields) > 0 {
			return types.ParsedValue{
				DisplayValue: trimmed, ActualValue: trimmed,
				IsExpandable: true,
				ArrayLength:  types.CountUnknown, ObjectKeyCount: len(fields),
			}
		}
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

// namedFields returns struct fields only when the brace body actually
// carries `name = value` pairs; GDB prints plain arrays with the same
// braces.
func (h *CPPHandler) namedFields(raw string) []Field {
	fields := h.splitFields(raw)
	for _, f := range fields {
		if !isPositional(f.Name) {
			return fields
		}
	}
	return nil
}

func (h *CPPHandler) ParseStructFields(raw string) []Field {
	trimmed := strings.TrimSpace(raw)
	// STL pretty printers append " = {...}" after the summary.
	if i := strings.Index(trimmed, "= {"); i >= 0 && stlSummary(trimmed) {
		trimmed = strings.TrimSpace(trimmed[i+2:])
	}
	return h.splitFields(trimmed)
}

func (h *CPPHandler) ParseArrayElements(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	if i := strings.Index(trimmed, "= {"); i >= 0 && stlSummary(trimmed) {
		trimmed = strings.TrimSpace(trimmed[i+2:])
	}
	body, ok := tokenizer.StripOuter(trimmed, '{', '}')
	if !ok {
		body, ok = tokenizer.StripOuter(trimmed, '[', ']')
		if !ok {
			return nil
		}
	}
	return h.splitElements(body)
}

func (h *CPPHandler) FormatDisplayValue(raw, typ string) string {
	trimmed := strings.TrimSpace(raw)
	if typeContainsAny(typ, "string", "char") || inference.IsQuotedString(types.LanguageCPP, trimmed) {
		return stripQuotes(trimmed)
	}
	// 42u and 42 display the same; drop the literal suffix.
	if inference.IsNumericLiteral(types.LanguageCPP, trimmed) {
		return strings.TrimRight(trimmed, "uUlLfF")
	}
	return trimmed
}

func (h *CPPHandler) IsPrimitiveType(value, typ string) bool {
	if typeInList(typ, h.ps.PrimitiveTypes) {
		return true
	}
	v := strings.TrimSpace(value)
	return inference.IsNumericLiteral(types.LanguageCPP, v) ||
		v == "true" || v == "false" ||
		inference.IsQuotedString(types.LanguageCPP, v)
}

func (h *CPPHandler) IsCollectionType(value, typ string) bool {
	if typeContainsAny(typ, "std::vector", "std::list", "std::deque", "std::array", "std::set", "std::map", "[]") {
		return true
	}
	if strings.Contains(typ, "[") && strings.Contains(typ, "]") {
		return true
	}
	v := strings.TrimSpace(value)
	if stlSummary(v) {
		return true
	}
	// A brace body with only positional segments is an array rendering.
	if body, ok := tokenizer.StripOuter(v, '{', '}'); ok {
		return len(h.namedFields(v)) == 0 && len(h.splitElements(body)) > 0
	}
	return false
}

func (h *CPPHandler) IsStructuredType(value, typ string) bool {
	if baseTypeWord(typ) == "struct" || baseTypeWord(typ) == "class" {
		return true
	}
	if typeContainsAny(typ, "std::pair", "std::tuple", "std::optional") {
		return true
	}
	return len(h.namedFields(value)) > 0
}

func (h *CPPHandler) GetDefaultConfig() types.SimplificationOptions {
	opts := types.DefaultSimplificationOptions()
	// Deep template types blow up fast; keep the tree shallower.
	opts.MaxDepth = 4
	opts.MaxArrayLength = 20
	return opts
}

// castPointer matches "(Type *) 0xADDR" and an optional trailing body.
func castPointer(raw string) (addr, rest string, ok bool) {
	if !strings.HasPrefix(raw, "(") {
		return "", "", false
	}
	i := strings.Index(raw, ") ")
	if i < 0 || !strings.Contains(raw[:i], "*") {
		return "", "", false
	}
	after := strings.TrimSpace(raw[i+2:])
	j := strings.IndexByte(after, ' ')
	if j < 0 {
		if inference.IsAddressToken(after) {
			return after, "", true
		}
		return "", "", false
	}
	if inference.IsAddressToken(after[:j]) {
		return after[:j], strings.TrimSpace(after[j+1:]), true
	}
	return "", "", false
}

// stlSummary recognizes pretty-printer prefixes like
// "std::vector of length 3".
func stlSummary(raw string) bool {
	return strings.HasPrefix(raw, "std::") && strings.Contains(raw, " of length ")
}

// stlLength extracts N from "... of length N ...".
func stlLength(raw string) (int, bool) {
	if !stlSummary(raw) {
		return 0, false
	}
	i := strings.Index(raw, " of length ")
	return leadingInt(raw[i+len(" of length "):])
}

// isPositional reports whether a field name was synthesized by the
// splitter rather than parsed from the input.
func isPositional(name string) bool {
	if name == "" {
		return true
	}
	for i := 0; i < len(name); i++ {
		if name[i] < '0' || name[i] > '9' {
			return false
		}
	}
	return true
}
