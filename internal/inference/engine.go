// Package inference implements the per-variant type inference cascade:
// an ordered list of (predicate, result) rules evaluated first-match-wins
// over (name, raw value, context). The ordering is part of the behavioral
// contract and is enforced by construction of the rule slice.
package inference

import (
	"github.com/standardbeagle/varlens/internal/types"
)

// Rule is one step of the cascade. Match returns the inferred type
// label and true when the rule fires.
type Rule struct {
	Name  string
	Match func(name, raw string, ctx types.TypeContext) (string, bool)
}

// Engine evaluates the rule cascade for one language variant. Pure and
// total: Infer never fails, falling back to the variant's generic
// marker. Safe for unsynchronized concurrent use; the memo cache is
// internally synchronized.
type Engine struct {
	lang     types.Language
	rules    []Rule
	fallback string
	cache    *memoCache
}

// New builds the inference engine for the given variant. The rule list
// order is fixed: literal forms, declared type, name keywords, context
// fallback.
func New(lang types.Language) *Engine {
	e := &Engine{
		lang:     lang,
		fallback: genericMarker(lang),
		cache:    newMemoCache(defaultMemoSize),
	}
	e.rules = buildRules(lang)
	return e
}

// Language returns the variant this engine serves.
func (e *Engine) Language() types.Language {
	return e.lang
}

// Infer maps (name, raw value, context) to a semantic type label.
// First matching rule wins; no rule firing yields the context's parent
// type, else the variant's generic marker.
func (e *Engine) Infer(name, raw string, ctx types.TypeContext) string {
	key := memoKey(name, raw, ctx)
	if label, ok := e.cache.get(key); ok {
		return label
	}

	label := e.infer(name, raw, ctx)
	e.cache.set(key, label)
	return label
}

func (e *Engine) infer(name, raw string, ctx types.TypeContext) string {
	for _, r := range e.rules {
		if label, ok := r.Match(name, raw, ctx); ok {
			return label
		}
	}
	if ctx.ParentType != "" && !isPlaceholder(ctx.ParentType) {
		return ctx.ParentType
	}
	return e.fallback
}

// Rules exposes the ordered rule names, so tests can assert the cascade
// ordering contract.
func (e *Engine) Rules() []string {
	names := make([]string, len(e.rules))
	for i, r := range e.rules {
		names[i] = r.Name
	}
	return names
}

// genericMarker is the variant-specific "could not interpret" label.
func genericMarker(lang types.Language) string {
	switch lang {
	case types.LanguageCPP:
		return "auto"
	case types.LanguageGo:
		return "interface {}"
	case types.LanguagePython:
		return "object"
	case types.LanguageJava:
		return "Object"
	case types.LanguageJavaScript:
		return "any"
	}
	return "unknown"
}

// placeholder types carry no information and never win the cascade.
var placeholders = map[string]bool{
	"":             true,
	"any":          true,
	"unknown":      true,
	"auto":         true,
	"object":       true,
	"Object":       true,
	"var":          true,
	"interface {}": true,
	"interface{}":  true,
}

func isPlaceholder(t string) bool {
	return placeholders[t]
}
