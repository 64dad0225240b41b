package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"stayreal/internal/crypto"
	"stayreal/internal/domain"
)

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the stored session",
	}
	cmd.AddCommand(authSetCmd(), authShowCmd(), authClearCmd(), authNewDeviceIDCmd())
	return cmd
}

func authSetCmd() *cobra.Command {
	var (
		deviceID     string
		accessToken  string
		refreshToken string
		file         string
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store credentials obtained from a login",
		Long: "Store credentials obtained from a login, either from flags or from a JSON\n" +
			"file in the credentials.json format (use --file - for stdin).",
		RunE: func(cmd *cobra.Command, args []string) error {
			creds := domain.Credentials{
				DeviceID:     domain.DeviceID(deviceID),
				AccessToken:  accessToken,
				RefreshToken: refreshToken,
			}
			if file != "" {
				var err error
				if creds, err = readCredentials(cmd.InOrStdin(), file); err != nil {
					return err
				}
			}
			if err := wire.Session.SetCredentials(creds); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stored session for device %s\n", creds.DeviceID)
			return nil
		},
	}
	cmd.Flags().StringVar(&deviceID, "device-id", "", "device id")
	cmd.Flags().StringVar(&accessToken, "access-token", "", "access token")
	cmd.Flags().StringVar(&refreshToken, "refresh-token", "", "refresh token")
	cmd.Flags().StringVar(&file, "file", "", "read credentials JSON from this file")
	cmd.MarkFlagsMutuallyExclusive("file", "device-id")
	return cmd
}

func readCredentials(stdin io.Reader, file string) (domain.Credentials, error) {
	r := stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return domain.Credentials{}, err
		}
		defer f.Close()
		r = f
	}
	var creds domain.Credentials
	if err := json.NewDecoder(r).Decode(&creds); err != nil {
		return domain.Credentials{}, fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, err)
	}
	return creds, nil
}

func authShowCmd() *cobra.Command {
	var reveal bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the stored session (tokens as fingerprints unless --reveal)",
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := wire.Session.GetCredentials()
			if err != nil {
				return notFoundHint(err)
			}
			out := cmd.OutOrStdout()
			if reveal {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(creds)
			}
			fmt.Fprintf(out, "Device ID:     %s\n", creds.DeviceID)
			fmt.Fprintf(out, "Access token:  %s\n", crypto.Fingerprint(creds.AccessToken))
			fmt.Fprintf(out, "Refresh token: %s\n", crypto.Fingerprint(creds.RefreshToken))
			return nil
		},
	}
	cmd.Flags().BoolVar(&reveal, "reveal", false, "print the raw credentials JSON")
	return cmd
}

func authClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.Session.ClearCredentials(); err != nil {
				return notFoundHint(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Session cleared")
			return nil
		},
	}
}

func authNewDeviceIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new-device-id",
		Short: "Print a new random device id",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), domain.NewDeviceID())
			return nil
		},
	}
}
