package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func refreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Exchange the refresh token for a new token pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.Session.Refresh(cmd.Context()); err != nil {
				return notFoundHint(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Session refreshed")
			return nil
		},
	}
}
