package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"stayreal/internal/domain"
)

func balancesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balances",
		Short: "Manage balance records",
	}
	cmd.AddCommand(balancesSettingsCmd(), balancesSetCmd(), balancesDownloadCmd(), balancesListCmd())
	return cmd
}

func balancesSettingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Print the download folder and people ids",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := wire.Balances.GetBalancesSettings()
			if err != nil {
				return err
			}
			folder := s.Folder
			if folder == "" {
				folder = "(not set)"
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Folder: %s\n", folder)
			fmt.Fprintf(out, "People: %s\n", strings.Join(s.PeopleIDs, ", "))
			return nil
		},
	}
}

func balancesSetCmd() *cobra.Command {
	var (
		folder string
		people []string
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set the download folder and people ids",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := wire.Balances.SetBalancesSettings(domain.BalancesSettings{
				Folder:    folder,
				PeopleIDs: people,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Balances settings saved")
			return nil
		},
	}
	cmd.Flags().StringVar(&folder, "folder", "", "download folder (empty clears it)")
	cmd.Flags().StringSliceVar(&people, "people", nil, "comma-separated person ids")
	return cmd
}

func balancesDownloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "download",
		Short: "Write one balance record per configured person",
		RunE: func(cmd *cobra.Command, args []string) error {
			written, err := wire.Balances.DownloadBalances()
			if err != nil {
				return err
			}
			for _, name := range written {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func balancesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List balance record files",
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := wire.Balances.ListBalances()
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
