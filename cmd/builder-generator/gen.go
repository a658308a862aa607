package main

import (
	"github.com/spf13/cobra"

	"builder-generator/internal/ctxlog"
)

func (c *cli) genCmd() *cobra.Command {
	var flags targetFlags

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate builders and write them into their packages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			e, targets, err := flags.resolve(ctx, cmd, c.dir)
			if err != nil {
				return err
			}

			files, err := e.Derive(ctx, targets)
			if err != nil {
				return err
			}

			if len(files) == 0 {
				ctxlog.FromContext(ctx).Warn("nothing to generate")
			}

			return nil
		},
	}

	flags.register(cmd.Flags())

	return cmd
}
