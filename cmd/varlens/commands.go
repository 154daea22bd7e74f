package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/varlens/internal/errors"
	"github.com/standardbeagle/varlens/internal/simplify"
	"github.com/standardbeagle/varlens/internal/types"
)

// variableInput is the wire form of one debugger variable. Input is a
// JSON array of these.
type variableInput struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Type  string `json:"type,omitempty"`
	Scope string `json:"scope,omitempty"`
}

func (v variableInput) toVariable() types.Variable {
	return types.Variable{Name: v.Name, Value: v.Value, Type: v.Type, Scope: v.Scope}
}

// valueOutput is the wire form of a simplified tree node.
type valueOutput struct {
	Display  string        `json:"display"`
	Type     string        `json:"type,omitempty"`
	Pointer  bool          `json:"pointer,omitempty"`
	Nil      bool          `json:"nil,omitempty"`
	Address  string        `json:"address,omitempty"`
	Length   int           `json:"length,omitempty"`
	Keys     int           `json:"keys,omitempty"`
	Children []childOutput `json:"children,omitempty"`
}

type childOutput struct {
	Key   string      `json:"key"`
	Value valueOutput `json:"value"`
}

func toOutput(v *types.SimplifiedValue) valueOutput {
	out := valueOutput{
		Display: v.DisplayValue,
		Type:    v.OriginalType,
		Pointer: v.Metadata.IsPointer,
		Nil:     v.Metadata.IsNil,
		Address: v.Metadata.MemoryAddress,
	}
	if v.Metadata.ArrayLength != types.CountUnknown {
		out.Length = v.Metadata.ArrayLength
	}
	if v.Metadata.ObjectKeyCount != types.CountUnknown {
		out.Keys = v.Metadata.ObjectKeyCount
	}
	for _, c := range v.Children {
		out.Children = append(out.Children, childOutput{Key: c.Key, Value: toOutput(c.Value)})
	}
	return out
}

// readVariables reads a JSON array of variables from the file argument
// or stdin.
func readVariables(c *cli.Context) ([]types.Variable, error) {
	var r io.Reader = os.Stdin
	if path := c.Args().First(); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	dec := json.NewDecoder(r)
	var inputs []variableInput

	tok, err := dec.Token()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewInputError(1, err)
	}
	d, ok := tok.(json.Delim)
	if !ok || d != '[' {
		return nil, errors.NewInputError(1, fmt.Errorf("input must be a JSON array of variables"))
	}
	for dec.More() {
		var in variableInput
		if err := dec.Decode(&in); err != nil {
			return nil, errors.NewInputError(len(inputs)+1, err)
		}
		inputs = append(inputs, in)
	}

	vars := make([]types.Variable, len(inputs))
	for i, in := range inputs {
		vars[i] = in.toVariable()
	}
	return vars, nil
}

func simplifyCommand() *cli.Command {
	return &cli.Command{
		Name:    "simplify",
		Aliases: []string{"s"},
		Usage:   "Simplify raw variable values into bounded trees",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   "Parallel workers (0 = one per CPU)",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Indent JSON output",
			},
		},
		ArgsUsage: "[variables.json]",
		Action: func(c *cli.Context) error {
			reg, _, err := loadRegistry(c)
			if err != nil {
				return err
			}
			lang, err := resolveLanguage(c)
			if err != nil {
				return err
			}
			h, err := reg.Handler(lang)
			if err != nil {
				return err
			}
			vars, err := readVariables(c)
			if err != nil {
				return err
			}

			s := simplify.New(h, reg.Options(lang))
			var entries []simplify.SnapshotEntry
			if w := c.Int("workers"); w > 0 {
				entries, err = s.SimplifySnapshotN(c.Context, vars, w)
			} else {
				entries, err = s.SimplifySnapshot(c.Context, vars)
			}
			if err != nil {
				return err
			}

			type row struct {
				Name  string      `json:"name"`
				Value valueOutput `json:"value"`
			}
			rows := make([]row, len(entries))
			for i, e := range entries {
				rows[i] = row{Name: e.Variable.Name, Value: toOutput(e.Simplified)}
			}
			return writeJSON(c, rows, c.Bool("pretty"))
		},
	}
}

func rankCommand() *cli.Command {
	return &cli.Command{
		Name:  "rank",
		Usage: "Score variables by debugging relevance",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "top",
				Aliases: []string{"n"},
				Usage:   "Keep only the N highest scored variables (0 = all)",
			},
		},
		ArgsUsage: "[variables.json]",
		Action: func(c *cli.Context) error {
			reg, _, err := loadRegistry(c)
			if err != nil {
				return err
			}
			lang, err := resolveLanguage(c)
			if err != nil {
				return err
			}
			h, err := reg.Handler(lang)
			if err != nil {
				return err
			}
			vars, err := readVariables(c)
			if err != nil {
				return err
			}

			scored := h.Classifier().RankVariables(vars, c.Int("top"))
			type row struct {
				Name        string `json:"name"`
				Score       int    `json:"score"`
				System      bool   `json:"system,omitempty"`
				Application bool   `json:"application,omitempty"`
				ControlFlow bool   `json:"controlFlow,omitempty"`
			}
			rows := make([]row, len(scored))
			for i, sv := range scored {
				rows[i] = row{
					Name:        sv.Variable.Name,
					Score:       sv.Score,
					System:      sv.System,
					Application: sv.Application,
					ControlFlow: sv.ControlFlow,
				}
			}
			return writeJSON(c, rows, true)
		},
	}
}

func inferCommand() *cli.Command {
	return &cli.Command{
		Name:      "infer",
		Usage:     "Infer the type label for one name/value pair",
		ArgsUsage: "NAME RAW_VALUE",
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return fmt.Errorf("usage: varlens infer NAME RAW_VALUE")
			}
			reg, _, err := loadRegistry(c)
			if err != nil {
				return err
			}
			lang, err := resolveLanguage(c)
			if err != nil {
				return err
			}
			h, err := reg.Handler(lang)
			if err != nil {
				return err
			}
			label := h.InferType(c.Args().Get(0), c.Args().Get(1), types.TypeContext{})
			fmt.Fprintln(c.App.Writer, label)
			return nil
		},
	}
}

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Show the effective simplification options per language",
		Action: func(c *cli.Context) error {
			reg, _, err := loadRegistry(c)
			if err != nil {
				return err
			}
			type row struct {
				Language        string `json:"language"`
				MaxDepth        int    `json:"maxDepth"`
				MaxArrayLength  int    `json:"maxArrayLength"`
				MaxStringLength int    `json:"maxStringLength"`
				MaxObjectKeys   int    `json:"maxObjectKeys"`
				ShowPointers    bool   `json:"showPointerAddresses"`
			}
			rows := make([]row, 0, len(types.AllLanguages))
			for _, lang := range types.AllLanguages {
				opts := reg.Options(lang)
				rows = append(rows, row{
					Language:        string(lang),
					MaxDepth:        opts.MaxDepth,
					MaxArrayLength:  opts.MaxArrayLength,
					MaxStringLength: opts.MaxStringLength,
					MaxObjectKeys:   opts.MaxObjectKeys,
					ShowPointers:    opts.ShowPointerAddresses,
				})
			}
			return writeJSON(c, rows, true)
		},
	}
}

func writeJSON(c *cli.Context, v any, pretty bool) error {
	enc := json.NewEncoder(c.App.Writer)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
