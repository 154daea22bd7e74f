// Package patterns holds the per-variant constant name tables used by
// classification and type inference: application-relevant names, system
// noise names, control-flow names, and primitive/complex type names.
// Built-in tables match by case-insensitive substring; user-supplied
// patterns may additionally use glob syntax.
package patterns

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/standardbeagle/varlens/internal/types"
)

// PatternSet is the immutable per-variant pattern table. Constructed
// once per handler instance and never mutated afterwards, so it is safe
// for unsynchronized concurrent reads.
type PatternSet struct {
	ApplicationNames []string
	SystemNames      []string
	ControlFlowNames []string
	PrimitiveTypes   []string
	ComplexTypes     []string

	// InternalPrefixes are well-known runtime-internal name prefixes
	// that carry a heavy importance penalty (compiler temporaries,
	// vtable slots, prototype plumbing).
	InternalPrefixes []string

	// LongNameThreshold is the name length past which a small
	// importance penalty applies.
	LongNameThreshold int
}

// sharedApplicationNames are business-domain tokens common to every
// variant; variant tables append runtime-specific additions.
var sharedApplicationNames = []string{
	"user", "account", "customer", "order", "payment", "product",
	"item", "invoice", "session", "token", "request", "response",
	"result", "data", "config", "service", "handler", "manager",
	"client", "server", "message", "event", "status", "record",
	"entity", "model", "repository", "controller",
}

var sharedControlFlowNames = []string{
	"i", "j", "k", "idx", "index", "iter", "loop", "counter", "count",
	"flag", "done", "found", "ok", "err", "error", "retry", "attempt",
	"state", "step", "phase", "cond", "condition",
}

// ForLanguage returns the built-in pattern table for one variant.
func ForLanguage(lang types.Language) PatternSet {
	switch lang {
	case types.LanguageCPP:
		return PatternSet{
			ApplicationNames: sharedApplicationNames,
			SystemNames: []string{
				"std::", "__gnu", "_M_", "__builtin", "_IO_",
				"vtable", "__vptr", "_vptr", "operator", "__cxx",
			},
			ControlFlowNames: sharedControlFlowNames,
			PrimitiveTypes: []string{
				"int", "unsigned", "long", "short", "char", "float",
				"double", "bool", "size_t", "ssize_t", "wchar_t",
				"int8_t", "int16_t", "int32_t", "int64_t",
				"uint8_t", "uint16_t", "uint32_t", "uint64_t",
			},
			ComplexTypes: []string{
				"std::vector", "std::map", "std::unordered_map",
				"std::set", "std::unordered_set", "std::list",
				"std::deque", "std::pair", "std::tuple", "std::array",
				"std::string", "std::shared_ptr", "std::unique_ptr",
				"std::weak_ptr", "std::optional",
			},
			InternalPrefixes:  []string{"__", "_M_", "_vptr", "$"},
			LongNameThreshold: 24,
		}
	case types.LanguageGo:
		return PatternSet{
			ApplicationNames: append([]string{"ctx", "tx", "conn", "db"}, sharedApplicationNames...),
			SystemNames: []string{
				"runtime.", "sync.", "internal/", "goroutine",
				"gopark", "mcache", "mheap", "g0", "m0", "~r",
				".autotmp_", "GOMAXPROCS",
			},
			ControlFlowNames: sharedControlFlowNames,
			PrimitiveTypes: []string{
				"int", "int8", "int16", "int32", "int64",
				"uint", "uint8", "uint16", "uint32", "uint64", "uintptr",
				"float32", "float64", "complex64", "complex128",
				"string", "bool", "byte", "rune",
			},
			ComplexTypes: []string{
				"slice", "map", "chan", "struct", "interface",
				"func", "error", "[]", "map[",
			},
			InternalPrefixes:  []string{"~", ".autotmp", "runtime."},
			LongNameThreshold: 20,
		}
	case types.LanguagePython:
		return PatternSet{
			ApplicationNames: append([]string{"self", "cls", "df", "conn"}, sharedApplicationNames...),
			SystemNames: []string{
				"__builtins__", "__name__", "__file__", "__doc__",
				"__loader__", "__spec__", "__package__", "__cached__",
				"__module__", "__dict__", "__weakref__", "__class__",
			},
			ControlFlowNames: sharedControlFlowNames,
			PrimitiveTypes: []string{
				"int", "float", "str", "bool", "bytes", "complex",
				"NoneType",
			},
			ComplexTypes: []string{
				"list", "dict", "tuple", "set", "frozenset",
				"object", "type", "deque", "OrderedDict", "defaultdict",
				"Counter", "namedtuple", "dataclass",
			},
			InternalPrefixes:  []string{"__", "_abc_", "_lru_"},
			LongNameThreshold: 30,
		}
	case types.LanguageJava:
		return PatternSet{
			ApplicationNames: append([]string{"dao", "dto", "bean"}, sharedApplicationNames...),
			SystemNames: []string{
				"this$", "$assertionsDisabled", "serialVersionUID",
				"java.lang.", "java.util.concurrent.", "sun.",
				"jdk.internal", "$VALUES", "COMPACT_STRINGS",
			},
			ControlFlowNames: sharedControlFlowNames,
			PrimitiveTypes: []string{
				"int", "long", "short", "byte", "char", "float",
				"double", "boolean", "Integer", "Long", "Short",
				"Byte", "Character", "Float", "Double", "Boolean",
				"String",
			},
			ComplexTypes: []string{
				"List", "ArrayList", "LinkedList", "Map", "HashMap",
				"TreeMap", "Set", "HashSet", "TreeSet", "Collection",
				"Optional", "Object[]", "Iterable",
			},
			InternalPrefixes:  []string{"$", "this$", "val$", "access$"},
			LongNameThreshold: 24,
		}
	case types.LanguageJavaScript:
		return PatternSet{
			ApplicationNames: append([]string{"props", "state", "store", "dispatch"}, sharedApplicationNames...),
			SystemNames: []string{
				"__proto__", "prototype", "constructor", "arguments",
				"globalThis", "process.", "module", "exports",
				"require", "Symbol(", "[[",
			},
			ControlFlowNames: sharedControlFlowNames,
			PrimitiveTypes: []string{
				"number", "string", "boolean", "bigint", "symbol",
				"undefined", "null",
			},
			ComplexTypes: []string{
				"Array", "Object", "Map", "Set", "WeakMap", "WeakSet",
				"Promise", "Function", "Date", "RegExp", "Error",
				"Buffer", "TypedArray",
			},
			InternalPrefixes:  []string{"__", "_$", "Symbol("},
			LongNameThreshold: 30,
		}
	}
	// Unknown variant degrades to the shared tables rather than failing.
	return PatternSet{
		ApplicationNames:  sharedApplicationNames,
		ControlFlowNames:  sharedControlFlowNames,
		LongNameThreshold: 24,
	}
}

// Extend returns a copy of ps with user-supplied patterns appended.
// The receiver is never mutated.
func (ps PatternSet) Extend(application, system, controlFlow []string) PatternSet {
	out := ps
	out.ApplicationNames = appendCopy(ps.ApplicationNames, application)
	out.SystemNames = appendCopy(ps.SystemNames, system)
	out.ControlFlowNames = appendCopy(ps.ControlFlowNames, controlFlow)
	return out
}

func appendCopy(base, extra []string) []string {
	if len(extra) == 0 {
		return base
	}
	out := make([]string, 0, len(base)+len(extra))
	out = append(out, base...)
	out = append(out, extra...)
	return out
}

// isGlob reports whether a pattern uses glob metacharacters. Plain
// patterns match by substring; globby ones go through doublestar.
func isGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[")
}

// MatchesAny reports whether name matches any pattern in the list.
// Plain patterns match case-insensitively in either direction (pattern
// in name or name in pattern) per the classification convention; glob
// patterns match the whole name.
func MatchesAny(name string, pats []string) bool {
	lower := strings.ToLower(name)
	for _, p := range pats {
		if isGlob(p) {
			if ok, err := doublestar.Match(strings.ToLower(p), lower); err == nil && ok {
				return true
			}
			continue
		}
		pl := strings.ToLower(p)
		// Bidirectional containment, but only for names long enough to
		// be meaningful; "i" is inside "invoice" yet is not business.
		if strings.Contains(lower, pl) {
			return true
		}
		if len(lower) >= 3 && strings.Contains(pl, lower) {
			return true
		}
	}
	return false
}

// ContainsAny reports whether name contains any pattern as a substring
// (one direction only). Used for system and control-flow tables where
// the pattern is the noise marker, not the whole name. Patterns of two
// characters or fewer ("i", "g0") match only exactly, otherwise they
// would match nearly every name.
func ContainsAny(name string, pats []string) bool {
	lower := strings.ToLower(name)
	for _, p := range pats {
		if isGlob(p) {
			if ok, err := doublestar.Match(strings.ToLower(p), lower); err == nil && ok {
				return true
			}
			continue
		}
		pl := strings.ToLower(p)
		if len(pl) <= 2 {
			if lower == pl {
				return true
			}
			continue
		}
		if strings.Contains(lower, pl) {
			return true
		}
	}
	return false
}

// HasAnyPrefix reports whether name starts with any of the prefixes.
func HasAnyPrefix(name string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}
