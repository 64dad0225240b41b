package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"stayreal/internal/domain"
)

func regionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "region",
		Short: "Manage the moment region",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "set [region]",
			Short: "Set the region, e.g. europe-west",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := wire.Preferences.SetRegion(domain.Region(args[0])); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Region set to %s\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Print the stored region",
			RunE: func(cmd *cobra.Command, args []string) error {
				prefs, err := wire.Preferences.GetPreferences()
				if err != nil {
					return err
				}
				if prefs.Region == "" {
					return domain.ErrRegionNotSet
				}
				fmt.Fprintln(cmd.OutOrStdout(), prefs.Region)
				return nil
			},
		},
	)
	return cmd
}
