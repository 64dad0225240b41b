package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the device id and access token expiry",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := wire.Session.Status()
			if err != nil {
				return notFoundHint(err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Device ID: %s\n", st.DeviceID)
			switch {
			case st.ExpiresAt == nil:
				fmt.Fprintln(out, "Expiry:    unknown")
			case st.Expired:
				fmt.Fprintf(out, "Expiry:    %s (expired, run `stayreal refresh`)\n", st.ExpiresAt.Format(time.RFC3339))
			default:
				left := st.ExpiresAt.Sub(wire.Clock.Now()).Round(time.Second)
				fmt.Fprintf(out, "Expiry:    %s (in %s)\n", st.ExpiresAt.Format(time.RFC3339), left)
			}
			return nil
		},
	}
}
