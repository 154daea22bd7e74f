package config

import (
	"os"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"

	"github.com/standardbeagle/varlens/internal/errors"
	"github.com/standardbeagle/varlens/internal/types"
)

// LoadFile parses one .varlens.kdl file. Returns (nil, nil) when the
// file does not exist.
func LoadFile(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.NewConfigError(path, "", err)
	}
	cfg, err := ParseKDL(string(content))
	if err != nil {
		return nil, errors.NewConfigError(path, "", err)
	}
	return cfg, nil
}

// ParseKDL parses .varlens.kdl content:
//
//	defaults {
//	    max_depth 5
//	    show_pointer_addresses false
//	}
//	language "go" {
//	    max_array_length 50
//	    preserve_fields "UserID" "OrderID"
//	}
//	patterns {
//	    application "invoice" "shipment*"
//	    system "glib*"
//	}
func ParseKDL(content string) (*Config, error) {
	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return nil, err
	}

	cfg := NewConfig()
	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "defaults":
			cfg.Defaults = parseOptionsBlock(n)
		case "language":
			name, ok := firstStringArg(n)
			if !ok {
				continue
			}
			lang, ok := types.ParseLanguage(name)
			if !ok {
				// Unknown language names are skipped, not fatal.
				continue
			}
			override := parseOptionsBlock(n)
			if existing, ok := cfg.Languages[lang]; ok {
				override = existing.merge(override)
			}
			cfg.Languages[lang] = override
		case "patterns":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "application":
					cfg.Patterns.Application = append(cfg.Patterns.Application, collectStringArgs(cn)...)
				case "system":
					cfg.Patterns.System = append(cfg.Patterns.System, collectStringArgs(cn)...)
				case "control_flow":
					cfg.Patterns.ControlFlow = append(cfg.Patterns.ControlFlow, collectStringArgs(cn)...)
				}
			}
		}
	}
	return cfg, nil
}

func parseOptionsBlock(n *document.Node) OptionsOverride {
	var o OptionsOverride
	for _, cn := range n.Children {
		switch nodeName(cn) {
		case "max_depth":
			if v, ok := firstIntArg(cn); ok {
				o.MaxDepth = &v
			}
		case "max_array_length":
			if v, ok := firstIntArg(cn); ok {
				o.MaxArrayLength = &v
			}
		case "max_string_length":
			if v, ok := firstIntArg(cn); ok {
				o.MaxStringLength = &v
			}
		case "max_object_keys":
			if v, ok := firstIntArg(cn); ok {
				o.MaxObjectKeys = &v
			}
		case "show_pointer_addresses":
			if b, ok := firstBoolArg(cn); ok {
				o.ShowPointerAddresses = &b
			}
		case "expand_known_types":
			if b, ok := firstBoolArg(cn); ok {
				o.ExpandKnownTypes = &b
			}
		case "memory_limit_kb":
			if v, ok := firstIntArg(cn); ok {
				o.MemoryLimitKB = &v
			}
		case "truncate_threshold":
			if v, ok := firstIntArg(cn); ok {
				o.TruncateThreshold = &v
			}
		case "preserve_fields":
			o.PreserveBusinessFields = append(o.PreserveBusinessFields, collectStringArgs(cn)...)
		}
	}
	return o
}

// Helpers over the kdl-go document model.

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	if b, ok := n.Arguments[0].Value.(bool); ok {
		return b, true
	}
	return false, false
}

func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
