package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errStale = errors.New("generated builders are out of date")

func (c *cli) checkCmd() *cobra.Command {
	var flags targetFlags

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Fail if generated builders are missing or out of date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			e, targets, err := flags.resolve(ctx, cmd, c.dir)
			if err != nil {
				return err
			}

			stale, err := e.Check(ctx, targets)
			if err != nil {
				return err
			}

			for _, s := range stale {
				fmt.Fprintln(cmd.OutOrStdout(), s.String())
			}

			if len(stale) > 0 {
				return errStale
			}

			return nil
		},
	}

	flags.register(cmd.Flags())

	return cmd
}
