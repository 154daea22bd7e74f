// Package simplify builds the bounded display tree from raw variable
// values. It is the one consumer-facing composition of a language
// handler: type inference, parsing, category resolution and recursive
// descent, capped by depth, width and memory bounds.
package simplify

import (
	"strings"

	"github.com/standardbeagle/varlens/internal/handler"
	"github.com/standardbeagle/varlens/internal/types"
)

// Simplifier converts one variable at a time into a SimplifiedValue.
// Immutable after construction and safe for concurrent use; every call
// gets its own traversal state.
type Simplifier struct {
	h    handler.LanguageHandler
	opts types.SimplificationOptions
}

// New builds a simplifier over a handler. Options are clamped once
// here, so traversal never re-checks bounds.
func New(h handler.LanguageHandler, opts types.SimplificationOptions) *Simplifier {
	return &Simplifier{h: h, opts: opts.Clamped()}
}

// Options returns the clamped options in effect.
func (s *Simplifier) Options() types.SimplificationOptions {
	return s.opts
}

// Simplify builds the display tree for one variable. Total: malformed
// input degrades to an opaque primitive leaf, never an error.
func (s *Simplifier) Simplify(v types.Variable) *types.SimplifiedValue {
	r := &run{s: s, budget: s.opts.MemoryLimitKB * 1024}
	return r.node(v.Name, v.Value, v.Type, "", 1)
}

// Parse exposes the handler's single-value interpretation, resolving
// the type label first. Used by consumers that want the flat form.
func (s *Simplifier) Parse(v types.Variable) (types.ParsedValue, string) {
	label := s.h.InferType(v.Name, v.Value, types.TypeContext{
		VariableName: v.Name,
		ScopeName:    v.Scope,
		DeclaredType: v.Type,
	})
	return s.h.ParseVariableValue(v.Value, label), label
}

// run carries per-traversal state: the remaining memory budget shared
// across the whole tree.
type run struct {
	s      *Simplifier
	budget int
}

func (r *run) spend(n int) bool {
	r.budget -= n
	return r.budget >= 0
}

func (r *run) node(name, raw, declaredType, parentType string, depth int) *types.SimplifiedValue {
	s := r.s
	opts := s.opts

	// Oversized raw values are cut before any parsing; a multi-megabyte
	// buffer dump has no interpretable structure worth walking.
	if len(raw) > opts.TruncateThreshold {
		raw = raw[:opts.TruncateThreshold]
		return leaf(truncateString(raw, opts.MaxStringLength), declaredType, types.ValueMetadata{
			ArrayLength: types.CountUnknown, ObjectKeyCount: types.CountUnknown,
		})
	}

	label := s.h.InferType(name, raw, types.TypeContext{
		VariableName: name,
		ParentType:   parentType,
		DeclaredType: declaredType,
	})
	pv := s.h.ParseVariableValue(raw, label)

	meta := types.ValueMetadata{
		IsPointer:      pv.IsPointer,
		IsNil:          pv.IsNil,
		MemoryAddress:  pv.MemoryAddress,
		ArrayLength:    pv.ArrayLength,
		ObjectKeyCount: pv.ObjectKeyCount,
	}

	// Category precedence: nil first, then unexpandable pointers, then
	// primitives; structured wins over collection on heuristic overlap.
	if pv.IsNil {
		return leaf(pv.DisplayValue, label, meta)
	}
	if pv.IsPointer && !pv.IsExpandable {
		display := pv.DisplayValue
		if !opts.ShowPointerAddresses && pv.MemoryAddress != "" {
			display = "<pointer>"
			meta.MemoryAddress = ""
		}
		return leaf(display, label, meta)
	}

	structured := s.h.IsStructuredType(raw, label)
	collection := s.h.IsCollectionType(raw, label)

	if !structured && !collection {
		if !pv.IsExpandable || s.h.IsPrimitiveType(raw, label) {
			display := truncateString(s.h.FormatDisplayValue(raw, label), opts.MaxStringLength)
			return leaf(display, label, meta)
		}
		// Expandable but uncategorized: fall back on the parsed counts.
		structured = pv.ObjectKeyCount != types.CountUnknown
		collection = !structured
	}

	// Recognized container renderings collapse to their summary when
	// known-type expansion is disabled; structs still expand.
	if collection && !structured && !opts.ExpandKnownTypes {
		return leaf(summarize(pv.DisplayValue, opts.MaxStringLength), label, meta)
	}

	// The sanctioned depth cut: a would-be aggregate at the bound
	// becomes an explicit marker leaf, never silently a plain leaf.
	if depth >= opts.MaxDepth {
		return leaf(types.MaxDepthMarker, label, meta)
	}

	if structured {
		return r.structNode(raw, label, pv, meta, depth)
	}
	return r.arrayNode(raw, label, pv, meta, depth)
}

func (r *run) structNode(raw, label string, pv types.ParsedValue, meta types.ValueMetadata, depth int) *types.SimplifiedValue {
	s := r.s
	fields := s.h.ParseStructFields(raw)
	if len(fields) == 0 {
		return leaf(truncateString(pv.DisplayValue, s.opts.MaxStringLength), label, meta)
	}

	meta.ObjectKeyCount = len(fields)
	node := &types.SimplifiedValue{
		DisplayValue: summarize(pv.DisplayValue, s.opts.MaxStringLength),
		OriginalType: label,
		Metadata:     meta,
	}

	kept := 0
	for _, f := range fields {
		over := kept >= s.opts.MaxObjectKeys
		if over && !isPreserved(f.Name, s.opts.PreserveBusinessFields) {
			continue
		}
		if !r.spend(len(f.Name) + len(f.Raw)) {
			break
		}
		child := r.node(f.Name, f.Raw, "", label, depth+1)
		node.Children = append(node.Children, types.ChildValue{Key: f.Name, Value: child})
		kept++
	}
	return node
}

func (r *run) arrayNode(raw, label string, pv types.ParsedValue, meta types.ValueMetadata, depth int) *types.SimplifiedValue {
	s := r.s
	elems := s.h.ParseArrayElements(raw)
	if len(elems) == 0 {
		return leaf(truncateString(pv.DisplayValue, s.opts.MaxStringLength), label, meta)
	}

	if meta.ArrayLength == types.CountUnknown {
		meta.ArrayLength = len(elems)
	}
	node := &types.SimplifiedValue{
		DisplayValue: summarize(pv.DisplayValue, s.opts.MaxStringLength),
		OriginalType: label,
		Metadata:     meta,
	}

	for i, elem := range elems {
		if i >= s.opts.MaxArrayLength {
			break
		}
		if !r.spend(len(elem)) {
			break
		}
		key := "[" + itoa(i) + "]"
		child := r.node(key, elem, "", label, depth+1)
		node.Children = append(node.Children, types.ChildValue{Key: key, Value: child})
	}
	return node
}

func leaf(display, label string, meta types.ValueMetadata) *types.SimplifiedValue {
	return &types.SimplifiedValue{
		DisplayValue: display,
		OriginalType: label,
		Metadata:     meta,
	}
}

// truncateString cuts s to max runes with the truncation marker.
func truncateString(s string, max int) string {
	if max < 1 {
		max = 1
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + types.TruncationMarker
}

// summarize keeps aggregate display values short; the children carry
// the detail.
func summarize(display string, max int) string {
	if max > 64 {
		max = 64
	}
	return truncateString(display, max)
}

func isPreserved(name string, preserved []string) bool {
	for _, p := range preserved {
		if strings.EqualFold(name, p) {
			return true
		}
	}
	return false
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
