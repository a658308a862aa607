package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"builder-generator/internal/ctxlog"
)

type cli struct {
	stdout    io.Writer
	stderr    io.Writer
	logLevel  string
	logFormat string
	dir       string
	logger    *slog.Logger
}

func newCLI(stdout, stderr io.Writer) *cli {
	return &cli{stdout: stdout, stderr: stderr}
}

// log returns the configured logger, or a default one before flags are parsed.
func (c *cli) log() *slog.Logger {
	if c.logger == nil {
		c.logger = ctxlog.New("info", "text", c.stderr)
	}

	return c.logger
}

// rootCmd represents the base command when called without any subcommands.
func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "builder-generator",
		Short: "Generate builder types for Go structs.",
		Long: `builder-generator derives a builder for every selected struct: a type with ` +
			`one chaining setter per field and a Build method that fails with a ` +
			`record-specific error naming the first field that was never set.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := ctxlog.ParseLevel(c.logLevel); err != nil {
				return err
			}

			if _, err := ctxlog.ParseFormat(c.logFormat); err != nil {
				return err
			}

			c.logger = ctxlog.New(c.logLevel, c.logFormat, c.stderr)
			cmd.SetContext(ctxlog.WithLogger(cmd.Context(), c.logger))

			return nil
		},
	}

	root.SetOut(c.stdout)
	root.SetErr(c.stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&c.logLevel, "log-level", "info", "logging level: debug, info, warn or error")
	flags.StringVar(&c.logFormat, "log-format", "text", "log output format: text or json")
	flags.StringVarP(&c.dir, "dir", "C", "", "directory package patterns are resolved from")

	root.AddCommand(c.genCmd(), c.checkCmd(), c.inspectCmd())

	return root
}
