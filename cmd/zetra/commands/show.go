package commands

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"zetra/internal/domain"
	"zetra/internal/services/identity"
	"zetra/internal/ui"
)

func showCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the stored profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok, err := wire.Identity.Current(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !ok {
				if asJSON {
					return domain.ErrNoProfile
				}
				fmt.Fprintln(out, ui.EmptyCard(identity.Notice(domain.ErrNoProfile)))
				return nil
			}
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(p.View())
			}
			fmt.Fprintln(out, ui.Card(p.View(), time.Local))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the public profile as JSON")
	return cmd
}
