package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"builder-generator/internal/config"
	"builder-generator/internal/plan"
)

func (c *cli) inspectCmd() *cobra.Command {
	var (
		flags      targetFlags
		emitConfig bool
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the records and derived builder names as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			e, targets, err := flags.resolve(ctx, cmd, c.dir)
			if err != nil {
				return err
			}

			p, err := e.Plan(ctx, targets)
			if err != nil {
				return err
			}

			var out []byte
			if emitConfig {
				out, err = config.Marshal(plan.ExportConfig(p))
			} else {
				out, err = plan.ExportReportYAML(p)
			}

			if err != nil {
				return fmt.Errorf("rendering YAML: %w", err)
			}

			_, err = cmd.OutOrStdout().Write(out)

			return err
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().BoolVar(&emitConfig, "emit-config", false, "print a config file pinning the selected types instead")

	return cmd
}
