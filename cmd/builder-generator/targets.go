package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"builder-generator/internal/config"
	"builder-generator/internal/engine"
)

// targetFlags select what to generate, either from flags or a config file.
type targetFlags struct {
	pkg        string
	types      []string
	configPath string
	output     string
	noComments bool
}

func (f *targetFlags) register(flags *pflag.FlagSet) {
	flags.StringVarP(&f.pkg, "pkg", "p", ".", "package pattern to load")
	flags.StringSliceVarP(&f.types, "type", "t", nil, "record types, comma separated (default: types marked "+
		"//builder:derive)")
	flags.StringVarP(&f.configPath, "config", "c", "", "YAML or HCL config file listing targets")
	flags.StringVarP(&f.output, "out", "o", config.DefaultOutput, "generated file name")
	flags.BoolVar(&f.noComments, "no-comments", false, "omit doc comments from generated code")
}

// resolve returns the targets to process and the engine they run on.
func (f *targetFlags) resolve(ctx context.Context, cmd *cobra.Command, dir string) (*engine.Engine, []config.Target, error) {
	comments := !f.noComments
	targets := engine.Targets(f.pkg, f.output, f.types)

	if f.configPath == "" {
		if err := config.ValidateOutput(f.output); err != nil {
			return nil, nil, fmt.Errorf("invalid --out: %w", err)
		}
	} else {
		flags := cmd.Flags()
		if flags.Changed("pkg") || flags.Changed("type") || flags.Changed("out") {
			return nil, nil, errors.New("--config cannot be combined with --pkg, --type or --out")
		}

		file, err := engine.LoadConfig(ctx, f.configPath)
		if err != nil {
			return nil, nil, err
		}

		targets = file.Targets
		comments = comments && file.Comments()
	}

	return engine.New(engine.WithDir(dir), engine.WithComments(comments)), targets, nil
}
