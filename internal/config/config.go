// Package config loads simplification settings and pattern table
// extensions from .varlens.kdl files. A global file in the user's home
// directory provides the base; a project-local file overrides it.
// Settings are overlay-style: only keys present in a file override the
// variant defaults.
package config

import (
	"os"
	"path/filepath"

	"github.com/standardbeagle/varlens/internal/types"
)

// FileName is the config file looked up in the home and project dirs.
const FileName = ".varlens.kdl"

// OptionsOverride is a partial SimplificationOptions: nil fields leave
// the variant default untouched.
type OptionsOverride struct {
	MaxDepth               *int
	MaxArrayLength         *int
	MaxStringLength        *int
	MaxObjectKeys          *int
	ShowPointerAddresses   *bool
	ExpandKnownTypes       *bool
	MemoryLimitKB          *int
	TruncateThreshold      *int
	PreserveBusinessFields []string
}

// Apply overlays the override onto base. Numeric bounds are clamped,
// never rejected.
func (o OptionsOverride) Apply(base types.SimplificationOptions) types.SimplificationOptions {
	out := base
	if o.MaxDepth != nil {
		out.MaxDepth = *o.MaxDepth
	}
	if o.MaxArrayLength != nil {
		out.MaxArrayLength = *o.MaxArrayLength
	}
	if o.MaxStringLength != nil {
		out.MaxStringLength = *o.MaxStringLength
	}
	if o.MaxObjectKeys != nil {
		out.MaxObjectKeys = *o.MaxObjectKeys
	}
	if o.ShowPointerAddresses != nil {
		out.ShowPointerAddresses = *o.ShowPointerAddresses
	}
	if o.ExpandKnownTypes != nil {
		out.ExpandKnownTypes = *o.ExpandKnownTypes
	}
	if o.MemoryLimitKB != nil {
		out.MemoryLimitKB = *o.MemoryLimitKB
	}
	if o.TruncateThreshold != nil {
		out.TruncateThreshold = *o.TruncateThreshold
	}
	if len(o.PreserveBusinessFields) > 0 {
		out.PreserveBusinessFields = append(out.PreserveBusinessFields, o.PreserveBusinessFields...)
	}
	return out.Clamped()
}

// merge overlays other onto o field by field.
func (o OptionsOverride) merge(other OptionsOverride) OptionsOverride {
	out := o
	if other.MaxDepth != nil {
		out.MaxDepth = other.MaxDepth
	}
	if other.MaxArrayLength != nil {
		out.MaxArrayLength = other.MaxArrayLength
	}
	if other.MaxStringLength != nil {
		out.MaxStringLength = other.MaxStringLength
	}
	if other.MaxObjectKeys != nil {
		out.MaxObjectKeys = other.MaxObjectKeys
	}
	if other.ShowPointerAddresses != nil {
		out.ShowPointerAddresses = other.ShowPointerAddresses
	}
	if other.ExpandKnownTypes != nil {
		out.ExpandKnownTypes = other.ExpandKnownTypes
	}
	if other.MemoryLimitKB != nil {
		out.MemoryLimitKB = other.MemoryLimitKB
	}
	if other.TruncateThreshold != nil {
		out.TruncateThreshold = other.TruncateThreshold
	}
	out.PreserveBusinessFields = append(out.PreserveBusinessFields, other.PreserveBusinessFields...)
	return out
}

// PatternOverrides are user-supplied additions to the built-in pattern
// tables. Entries may use glob syntax.
type PatternOverrides struct {
	Application []string
	System      []string
	ControlFlow []string
}

func (p PatternOverrides) merge(other PatternOverrides) PatternOverrides {
	return PatternOverrides{
		Application: append(append([]string{}, p.Application...), other.Application...),
		System:      append(append([]string{}, p.System...), other.System...),
		ControlFlow: append(append([]string{}, p.ControlFlow...), other.ControlFlow...),
	}
}

// Config is the parsed .varlens.kdl content.
type Config struct {
	Defaults  OptionsOverride
	Languages map[types.Language]OptionsOverride
	Patterns  PatternOverrides
}

// NewConfig returns an empty config that overrides nothing.
func NewConfig() *Config {
	return &Config{Languages: make(map[types.Language]OptionsOverride)}
}

// OptionsFor resolves the effective options for one language: variant
// defaults, then the defaults block, then the language block.
func (c *Config) OptionsFor(lang types.Language, variantDefaults types.SimplificationOptions) types.SimplificationOptions {
	opts := c.Defaults.Apply(variantDefaults)
	if langOverride, ok := c.Languages[lang]; ok {
		opts = langOverride.Apply(opts)
	}
	return opts
}

// Load reads the global config from the home directory and the project
// config from projectDir, merging project over global. A missing file
// is not an error; a malformed one is.
func Load(projectDir string) (*Config, error) {
	cfg := NewConfig()

	if home, err := os.UserHomeDir(); err == nil {
		global, err := LoadFile(filepath.Join(home, FileName))
		if err != nil {
			return nil, err
		}
		if global != nil {
			cfg = cfg.mergeConfig(global)
		}
	}

	if projectDir != "" {
		project, err := LoadFile(filepath.Join(projectDir, FileName))
		if err != nil {
			return nil, err
		}
		if project != nil {
			cfg = cfg.mergeConfig(project)
		}
	}

	return cfg, nil
}

func (c *Config) mergeConfig(other *Config) *Config {
	merged := NewConfig()
	merged.Defaults = c.Defaults.merge(other.Defaults)
	merged.Patterns = c.Patterns.merge(other.Patterns)
	for lang, o := range c.Languages {
		merged.Languages[lang] = o
	}
	for lang, o := range other.Languages {
		if existing, ok := merged.Languages[lang]; ok {
			merged.Languages[lang] = existing.merge(o)
		} else {
			merged.Languages[lang] = o
		}
	}
	return merged
}
