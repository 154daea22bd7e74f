// Package classify implements the signal/noise predicates and the
// relative importance scorer layered over the per-variant pattern
// tables. Scores have no fixed scale; consumers compare order only.
package classify

import (
	"strings"

	"github.com/standardbeagle/varlens/internal/inference"
	"github.com/standardbeagle/varlens/internal/patterns"
	"github.com/standardbeagle/varlens/internal/types"
)

// Importance weight constants. These values are part of the scoring
// contract; change them only together with the ranking tests.
const (
	WeightApplicationMatch = 100
	WeightControlFlow      = 75
	WeightSystemPenalty    = -50
	WeightInternalPrefix   = -75
	WeightSevereInternal   = -100
	WeightMeaningfulValue  = 25
	WeightAggregateValue   = 10
	WeightLongNamePenalty  = -10
	WeightRoleKeyword      = 15
)

// roleKeywords earn a variant-independent bonus: these names usually
// point at the objects a developer is actually debugging.
var roleKeywords = []string{"handler", "service", "manager", "controller", "client", "worker"}

// severeInternal lists per-variant name fragments that mark pure
// machinery (vtable slots, compiler temporaries, prototype plumbing).
var severeInternal = map[types.Language][]string{
	types.LanguageCPP:        {"_vptr", "vtable", "__cxa"},
	types.LanguageGo:         {".autotmp_", "~r", "~b"},
	types.LanguagePython:     {"__pycache__", "_abc_impl"},
	types.LanguageJava:       {"access$", "val$", "this$"},
	types.LanguageJavaScript: {"__proto__", "prototype", "[[", "Symbol("},
}

// Classifier evaluates the noise/signal predicates for one variant.
// Immutable after construction; safe for concurrent use.
type Classifier struct {
	lang     types.Language
	ps       patterns.PatternSet
	splitter *nameSplitter
	matcher  *fuzzyNameMatcher
}

// New builds a classifier over the given pattern set.
func New(lang types.Language, ps patterns.PatternSet) *Classifier {
	return &Classifier{
		lang:     lang,
		ps:       ps,
		splitter: newNameSplitter(),
		matcher:  newFuzzyNameMatcher(defaultFuzzyThreshold),
	}
}

// IsSystemVariable reports whether the name or value matches a system
// noise pattern for the variant.
func (c *Classifier) IsSystemVariable(name, value string) bool {
	if patterns.ContainsAny(name, c.ps.SystemNames) {
		return true
	}
	return patterns.ContainsAny(value, c.ps.SystemNames)
}

// IsApplicationRelevant reports whether a variable is likely business
// signal: not system noise, and either its name matches an application
// pattern (exact, stemmed or fuzzy) or its value is meaningful.
func (c *Classifier) IsApplicationRelevant(name, value string) bool {
	if c.IsSystemVariable(name, value) {
		return false
	}
	if c.matchesApplicationName(name) {
		return true
	}
	return c.isMeaningfulValue(value)
}

// IsControlFlowVariable reports whether the name matches a control-flow
// pattern. This tags the variable; it never excludes it.
func (c *Classifier) IsControlFlowVariable(name string) bool {
	return patterns.ContainsAny(name, c.ps.ControlFlowNames)
}

// matchesApplicationName runs the three-layer name match: direct
// bidirectional containment, stemmed word match (tokens -> token), then
// fuzzy near-miss (Jaro-Winkler) for typo'd business names.
func (c *Classifier) matchesApplicationName(name string) bool {
	if patterns.MatchesAny(name, c.ps.ApplicationNames) {
		return true
	}
	words := c.splitter.split(name)
	for _, w := range words {
		stemmed := stemWord(w)
		if stemmed != w && patterns.MatchesAny(stemmed, c.ps.ApplicationNames) {
			return true
		}
	}
	return c.matcher.anyClose(words, c.ps.ApplicationNames)
}

// isMeaningfulValue applies the three mandatory checks (non-nil, not a
// bare address token, length > 1) plus the shared optimized-out guard.
func (c *Classifier) isMeaningfulValue(value string) bool {
	v := strings.TrimSpace(value)
	if len(v) <= 1 {
		return false
	}
	if inference.IsNilLiteral(c.lang, v) {
		return false
	}
	if inference.IsAddressToken(v) {
		return false
	}
	if v == "<optimized out>" || v == "<unavailable>" || v == "<unreadable>" {
		return false
	}
	return true
}

// Importance computes the weighted heuristic score for one variable.
// Relative ranking only; there is no fixed range.
func (c *Classifier) Importance(name, value string) int {
	score := 0

	if c.matchesApplicationName(name) {
		score += WeightApplicationMatch
	}
	if c.IsControlFlowVariable(name) {
		score += WeightControlFlow
	}
	if c.IsSystemVariable(name, "") {
		score += WeightSystemPenalty
	}

	switch {
	case containsAnyFragment(name, severeInternal[c.lang]):
		score += WeightSevereInternal
	case patterns.HasAnyPrefix(name, c.ps.InternalPrefixes):
		score += WeightInternalPrefix
	}

	if c.isMeaningfulValue(value) && !inference.IsAddressToken(value) {
		score += WeightMeaningfulValue
	}
	trimmed := strings.TrimSpace(value)
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		score += WeightAggregateValue
	}
	if len(name) > c.longNameThreshold() {
		score += WeightLongNamePenalty
	}
	if patterns.ContainsAny(name, roleKeywords) {
		score += WeightRoleKeyword
	}

	return score
}

func (c *Classifier) longNameThreshold() int {
	if c.ps.LongNameThreshold > 0 {
		return c.ps.LongNameThreshold
	}
	return 24
}

func containsAnyFragment(name string, fragments []string) bool {
	for _, f := range fragments {
		if strings.Contains(name, f) {
			return true
		}
	}
	return false
}
