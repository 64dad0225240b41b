package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const envBackupPassphrase = "STAYREAL_BACKUP_PASSPHRASE"

func backupCmd() *cobra.Command {
	var passphrase string
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Seal or restore local state",
	}
	cmd.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "",
		"passphrase protecting the backup (default $"+envBackupPassphrase+")")

	pass := func() string {
		if passphrase != "" {
			return passphrase
		}
		return os.Getenv(envBackupPassphrase)
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "export [path]",
			Short: "Write credentials and preferences to a sealed file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := wire.Backup.Export(args[0], pass()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "import [path]",
			Short: "Restore credentials and preferences from a sealed file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := wire.Backup.Import(args[0], pass()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Backup restored")
				return nil
			},
		},
	)
	return cmd
}
