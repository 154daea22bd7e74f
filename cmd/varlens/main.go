package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/varlens/internal/config"
	"github.com/standardbeagle/varlens/internal/debug"
	"github.com/standardbeagle/varlens/internal/handler"
	"github.com/standardbeagle/varlens/internal/types"
	"github.com/standardbeagle/varlens/internal/version"
)

var Version = version.Version

// loadRegistry loads the merged config for the project root and builds
// the handler registry from it. CLI flag overrides win over file config.
func loadRegistry(c *cli.Context) (*handler.Registry, *config.Config, error) {
	root := c.String("root")
	if root == "" {
		root = "."
	}
	cfg, err := config.Load(root)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config from %s: %w", root, err)
	}
	applyFlagOverrides(c, cfg)
	return handler.NewRegistry(cfg), cfg, nil
}

func applyFlagOverrides(c *cli.Context, cfg *config.Config) {
	set := func(name string, dst **int) {
		if c.IsSet(name) {
			v := c.Int(name)
			*dst = &v
		}
	}
	set("max-depth", &cfg.Defaults.MaxDepth)
	set("max-array-length", &cfg.Defaults.MaxArrayLength)
	set("max-string-length", &cfg.Defaults.MaxStringLength)
	set("max-object-keys", &cfg.Defaults.MaxObjectKeys)
	if c.IsSet("show-pointers") {
		v := c.Bool("show-pointers")
		cfg.Defaults.ShowPointerAddresses = &v
	}
}

func resolveLanguage(c *cli.Context) (types.Language, error) {
	name := c.String("lang")
	lang, ok := types.ParseLanguage(name)
	if !ok {
		return "", fmt.Errorf("unknown language %q (want one of cpp, go, python, java, javascript)", name)
	}
	return lang, nil
}

func main() {
	app := &cli.App{
		Name:                   "varlens",
		Usage:                  "Normalize raw debugger values into bounded display trees",
		Version:                Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Project directory holding " + config.FileName,
			},
			&cli.StringFlag{
				Name:  "lang",
				Usage: "Language variant: cpp, go, python, java, javascript",
				Value: "go",
			},
			&cli.IntFlag{Name: "max-depth", Usage: "Override max recursion depth"},
			&cli.IntFlag{Name: "max-array-length", Usage: "Override max array children"},
			&cli.IntFlag{Name: "max-string-length", Usage: "Override max string display length"},
			&cli.IntFlag{Name: "max-object-keys", Usage: "Override max object children"},
			&cli.BoolFlag{Name: "show-pointers", Usage: "Keep raw memory addresses in output"},
			&cli.BoolFlag{
				Name:  "debug-log",
				Usage: "Write a debug log to the system temp directory",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("debug-log") {
				path, err := debug.InitDebugLogFile()
				if err != nil {
					return err
				}
				fmt.Fprintf(os.Stderr, "debug log: %s\n", path)
			}
			return nil
		},
		After: func(c *cli.Context) error {
			return debug.CloseDebugLog()
		},
		Commands: []*cli.Command{
			simplifyCommand(),
			rankCommand(),
			inferCommand(),
			configCommand(),
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
