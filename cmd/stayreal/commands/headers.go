package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"stayreal/internal/domain"
)

func headersCmd() *cobra.Command {
	var deviceID string
	cmd := &cobra.Command{
		Use:   "headers",
		Short: "Print a freshly signed header set",
		Long: "Print the header set the client would send right now. The device id\n" +
			"defaults to the one of the stored session.",
		RunE: func(cmd *cobra.Command, args []string) error {
			id := domain.DeviceID(deviceID)
			if id == "" {
				creds, err := wire.Session.GetCredentials()
				if err != nil {
					return notFoundHint(err)
				}
				id = creds.DeviceID
			}
			h, err := wire.Headers.Build(id)
			if err != nil {
				return err
			}
			for _, hd := range h {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", hd.Name, hd.Value)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&deviceID, "device-id", "", "device id to sign for")
	return cmd
}
