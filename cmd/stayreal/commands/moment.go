package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func momentCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "moment",
		Short: "Fetch the last moment of the stored region",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := wire.Moment.FetchLastMoment(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return json.NewEncoder(out).Encode(m)
			}
			fmt.Fprintf(out, "Moment %s (%s)\n", m.ID, m.Region)
			fmt.Fprintf(out, "  start: %s\n", m.StartDate)
			fmt.Fprintf(out, "  end:   %s\n", m.EndDate)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the moment as JSON")
	return cmd
}
