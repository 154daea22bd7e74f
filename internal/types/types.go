// Package types defines the shared data model for the raw-value
// normalization engine: the language tag, the parsed/simplified value
// structures exchanged with consumers, and the simplification options.
package types

// Language identifies which source-runtime strategy is active.
type Language string

const (
	LanguageCPP        Language = "cpp"
	LanguageGo         Language = "go"
	LanguagePython     Language = "python"
	LanguageJava       Language = "java"
	LanguageJavaScript Language = "javascript"
)

// AllLanguages lists every supported language in registry order.
var AllLanguages = []Language{
	LanguageCPP,
	LanguageGo,
	LanguagePython,
	LanguageJava,
	LanguageJavaScript,
}

// ParseLanguage resolves a user-facing language name (including common
// aliases) to a Language tag. Returns false for unrecognized names.
func ParseLanguage(name string) (Language, bool) {
	switch name {
	case "cpp", "c++", "c", "cxx":
		return LanguageCPP, true
	case "go", "golang":
		return LanguageGo, true
	case "python", "py", "python3":
		return LanguagePython, true
	case "java", "kotlin":
		return LanguageJava, true
	case "javascript", "js", "node", "typescript", "ts":
		return LanguageJavaScript, true
	}
	return "", false
}

// Valid reports whether l is one of the five supported tags.
func (l Language) Valid() bool {
	switch l {
	case LanguageCPP, LanguageGo, LanguagePython, LanguageJava, LanguageJavaScript:
		return true
	}
	return false
}

// CountUnknown marks an absent ArrayLength/ObjectKeyCount.
const CountUnknown = -1

// TypeContext carries ephemeral per-call hints for type inference.
// It is never retained beyond a single inference call.
type TypeContext struct {
	ScopeName    string
	ParentType   string
	VariableName string

	// DeclaredType is the type the debug backend already reported for
	// the variable, if any. Placeholder types ("any", "object",
	// "interface {}") are ignored by the inference cascade.
	DeclaredType string
}

// ParsedValue is the structured interpretation of one raw value.
// Immutable once constructed; one per variable per snapshot.
type ParsedValue struct {
	DisplayValue   string
	ActualValue    string
	IsExpandable   bool
	IsNil          bool
	IsPointer      bool
	MemoryAddress  string
	ArrayLength    int // CountUnknown when not a sequence
	ObjectKeyCount int // CountUnknown when not an aggregate
}

// ValueMetadata is the per-node metadata attached to a SimplifiedValue.
// ArrayLength and ObjectKeyCount always report the true original counts,
// even when children were truncated to a cap.
type ValueMetadata struct {
	IsPointer      bool
	IsNil          bool
	MemoryAddress  string
	ArrayLength    int
	ObjectKeyCount int
}

// ChildValue is one ordered child of a simplified aggregate. Order is
// the tokenizer emission order of the source text, never sorted.
type ChildValue struct {
	Key   string
	Value *SimplifiedValue
}

// SimplifiedValue is the bounded display tree built from one variable.
// Depth never exceeds SimplificationOptions.MaxDepth. Owned exclusively
// by the caller for one snapshot.
type SimplifiedValue struct {
	DisplayValue string
	OriginalType string
	Metadata     ValueMetadata
	Children     []ChildValue
}

// Depth returns the height of the tree rooted at v (a leaf has depth 1).
func (v *SimplifiedValue) Depth() int {
	if v == nil {
		return 0
	}
	deepest := 0
	for _, c := range v.Children {
		if d := c.Value.Depth(); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}

// Child returns the child with the given key, or nil.
func (v *SimplifiedValue) Child(key string) *SimplifiedValue {
	for _, c := range v.Children {
		if c.Key == key {
			return c.Value
		}
	}
	return nil
}

// Markers emitted into display values for sanctioned information loss.
// Consumers match on these verbatim.
const (
	MaxDepthMarker   = "... (max depth reached)"
	TruncationMarker = "..."
)

// Default simplification bounds shared by all variants. Individual
// handlers override some of these in their GetDefaultConfig.
const (
	DefaultMaxDepth        = 5
	DefaultMaxArrayLength  = 25
	DefaultMaxStringLength = 200
	DefaultMaxObjectKeys   = 30
	DefaultMemoryLimitKB   = 1024
	DefaultTruncateAt      = 4096
)

// SimplificationOptions bounds the simplifier. All numeric bounds are
// clamped to >= 1 at use sites, never rejected.
type SimplificationOptions struct {
	MaxDepth               int
	MaxArrayLength         int
	MaxStringLength        int
	MaxObjectKeys          int
	ShowPointerAddresses   bool
	PreserveBusinessFields []string
	ExpandKnownTypes       bool
	MemoryLimitKB          int
	TruncateThreshold      int
}

// DefaultSimplificationOptions returns the variant-independent defaults.
func DefaultSimplificationOptions() SimplificationOptions {
	return SimplificationOptions{
		MaxDepth:             DefaultMaxDepth,
		MaxArrayLength:       DefaultMaxArrayLength,
		MaxStringLength:      DefaultMaxStringLength,
		MaxObjectKeys:        DefaultMaxObjectKeys,
		ShowPointerAddresses: true,
		ExpandKnownTypes:     true,
		MemoryLimitKB:        DefaultMemoryLimitKB,
		TruncateThreshold:    DefaultTruncateAt,
	}
}

// Clamped returns a copy with every numeric bound raised to at least 1.
// Invalid bounds are a caller mistake we absorb rather than reject.
func (o SimplificationOptions) Clamped() SimplificationOptions {
	clamp := func(v int) int {
		if v < 1 {
			return 1
		}
		return v
	}
	o.MaxDepth = clamp(o.MaxDepth)
	o.MaxArrayLength = clamp(o.MaxArrayLength)
	o.MaxStringLength = clamp(o.MaxStringLength)
	o.MaxObjectKeys = clamp(o.MaxObjectKeys)
	o.MemoryLimitKB = clamp(o.MemoryLimitKB)
	o.TruncateThreshold = clamp(o.TruncateThreshold)
	return o
}

// Variable is the per-variable input triple resolved by the debug
// session adapter: name, raw value text and declared (or empty) type.
type Variable struct {
	Name  string
	Value string
	Type  string
	Scope string
}
