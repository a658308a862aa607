package engine

import (
	"context"
	"fmt"

	"builder-generator/internal/config"
	"builder-generator/internal/ctxlog"
)

// LoadConfig reads and validates a configuration file. Info diagnostics are
// logged; any error diagnostic fails the load.
func LoadConfig(ctx context.Context, path string) (*config.File, error) {
	f, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}

	diags := config.Validate(f)

	logger := ctxlog.FromContext(ctx)
	for _, d := range diags.Infos {
		logger.Info(d.String(), "config", path)
	}

	for _, d := range diags.Warnings {
		logger.Warn(d.String(), "config", path)
	}

	if err := diags.Error(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return f, nil
}

// Targets builds the target list of a single package pattern given on the
// command line.
func Targets(pattern, output string, types []string) []config.Target {
	if output == "" {
		output = config.DefaultOutput
	}

	return []config.Target{{
		Package: pattern,
		Output:  output,
		Types:   types,
	}}
}
