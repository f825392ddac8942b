package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"zetra/internal/domain"
)

func idCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "id",
		Short: "Print the identity string",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok, err := wire.Identity.Current(cmd.Context())
			if err != nil {
				return err
			}
			if !ok {
				return domain.ErrNoProfile
			}
			fmt.Fprintln(cmd.OutOrStdout(), p.ID)
			return nil
		},
	}
}
