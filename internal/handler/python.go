package handler

import (
	"strings"

	"github.com/standardbeagle/varlens/internal/inference"
	"github.com/standardbeagle/varlens/internal/patterns"
	"github.com/standardbeagle/varlens/internal/tokenizer"
	"github.com/standardbeagle/varlens/internal/types"
)

// PythonHandler interprets repr-style raw values emitted by debugpy:
// `{'a': 1}` dicts, `[1, 2]` lists, `(1, 2)` tuples, `{1, 2}` sets,
// `'text'` strings, `True`/`False`/`None`, and
// `<MyClass object at 0x7f...>` opaque object references.
type PythonHandler struct {
	core
}

// NewPythonHandler builds the Python variant over the given pattern set.
func NewPythonHandler(ps patterns.PatternSet) *PythonHandler {
	return &PythonHandler{core: newCore(types.LanguagePython, ps, true)}
}

func (h *PythonHandler) ParseVariableValue(raw, declaredType string) types.ParsedValue {
	trimmed := strings.TrimSpace(raw)

	if h.IsNilValue(trimmed) {
		return types.ParsedValue{
			DisplayValue: trimmed, ActualValue: trimmed, IsNil: true,
			ArrayLength: types.CountUnknown, ObjectKeyCount: types.CountUnknown,
		}
	}

	// "<MyClass object at 0x7fab...>" opaque reference.
	if addr, ok := objectRepr(trimmed); ok {
		return types.ParsedValue{
			DisplayValue: trimmed, ActualValue: trimmed,
			IsPointer: true, MemoryAddress: addr,
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

	if body, ok := tokenizer.StripOuter(trimmed, '{', '}'); ok {
		if fields := h.dictFields(body); len(fields) > 0 {
			return types.ParsedValue{
				DisplayValue: trimmed, ActualValue: trimmed, IsExpandable: true,
				ArrayLength: types.CountUnknown, ObjectKeyCount: len(fields),
			}
		}
		// Brace body without ':' pairs is a set literal.
		elems := h.splitElements(body)
		return types.ParsedValue{
			DisplayValue: trimmed, ActualValue: trimmed,
			IsExpandable: len(elems) > 0,
			ArrayLength:  len(elems), ObjectKeyCount: types.CountUnknown,
		}
	}
	for _, pair := range [][2]byte{{'[', ']'}, {'(', ')'}} {
		if body, ok := tokenizer.StripOuter(trimmed, pair[0], pair[1]); ok {
			elems := h.splitElements(body)
			return types.ParsedValue{
				DisplayValue: trimmed, ActualValue: trimmed,
				IsExpandable: len(elems) > 0,
				ArrayLength:  len(elems), ObjectKeyCount: types.CountUnknown,
			}
		}
	}

	return types.ParsedValue{
		DisplayValue: h.FormatDisplayValue(trimmed, declaredType),
		ActualValue:  trimmed,
		ArrayLength:  types.CountUnknown, ObjectKeyCount: types.CountUnknown,
	}
}

// dictFields returns kv fields only when the body carries top-level ':'
// separators; sets share the brace shape but have none.
func (h *PythonHandler) dictFields(body string) []Field {
	segments := h.splitElements(body)
	fields := make([]Field, 0, len(segments))
	named := false
	for i, seg := range segments {
		if k, v, ok := h.tok.SplitKeyValue(seg); ok && k != "" {
			fields = append(fields, Field{Name: stripQuotes(k), Raw: v})
			named = true
			continue
		}
		fields = append(fields, Field{Name: positionalName(i), Raw: seg})
	}
	if !named {
		return nil
	}
	return fields
}

func (h *PythonHandler) ParseStructFields(raw string) []Field {
	trimmed := strings.TrimSpace(raw)
	body, ok := tokenizer.StripOuter(trimmed, '{', '}')
	if !ok {
		return h.splitFields(trimmed)
	}
	return h.dictFields(body)
}

func (h *PythonHandler) ParseArrayElements(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	for _, pair := range [][2]byte{{'[', ']'}, {'(', ')'}, {'{', '}'}} {
		if body, ok := tokenizer.StripOuter(trimmed, pair[0], pair[1]); ok {
			return h.splitElements(body)
		}
	}
	return nil
}

func (h *PythonHandler) FormatDisplayValue(raw, typ string) string {
	trimmed := strings.TrimSpace(raw)
	if typ == "str" || inference.IsQuotedString(types.LanguagePython, trimmed) {
		return stripQuotes(trimmed)
	}
	return trimmed
}

func (h *PythonHandler) IsPrimitiveType(value, typ string) bool {
	if typeInList(typ, h.ps.PrimitiveTypes) {
		return true
	}
	v := strings.TrimSpace(value)
	return inference.IsNumericLiteral(types.LanguagePython, v) ||
		v == "True" || v == "False" ||
		inference.IsQuotedString(types.LanguagePython, v)
}

func (h *PythonHandler) IsCollectionType(value, typ string) bool {
	if typeInList(typ, []string{"list", "tuple", "set", "frozenset", "deque"}) {
		return true
	}
	v := strings.TrimSpace(value)
	if strings.HasPrefix(v, "[") || (strings.HasPrefix(v, "(") && strings.HasSuffix(v, ")")) {
		return true
	}
	if body, ok := tokenizer.StripOuter(v, '{', '}'); ok {
		return h.dictFields(body) == nil && len(h.splitElements(body)) > 0
	}
	return false
}

func (h *PythonHandler) IsStructuredType(value, typ string) bool {
	if typeInList(typ, []string{"dict", "OrderedDict", "defaultdict", "Counter"}) {
		return true
	}
	v := strings.TrimSpace(value)
	if body, ok := tokenizer.StripOuter(v, '{', '}'); ok {
		return h.dictFields(body) != nil
	}
	return false
}

func (h *PythonHandler) GetDefaultConfig() types.SimplificationOptions {
	opts := types.DefaultSimplificationOptions()
	// Dict-heavy payloads are the common case in Python sessions.
	opts.MaxObjectKeys = 40
	return opts
}

// objectRepr matches "<Class object at 0xADDR>" and returns the address.
func objectRepr(raw string) (string, bool) {
	if !strings.HasPrefix(raw, "<") || !strings.HasSuffix(raw, ">") {
		return "", false
	}
	i := strings.Index(raw, " at 0x")
	if i < 0 {
		return "", strings.Contains(raw, " object")
	}
	addr := strings.TrimSuffix(raw[i+len(" at "):], ">")
	if inference.IsAddressToken(addr) {
		return addr, true
	}
	return "", true
}
