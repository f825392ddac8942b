package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"zetra/internal/domain"
	"zetra/internal/services/identity"
	"zetra/internal/ui"
)

func createCmd() *cobra.Command {
	var name, color string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Generate a new identity (replaces any existing one)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if prev, ok, err := wire.Identity.Current(ctx); err == nil && ok {
				wire.Log.Warn().Str("id", prev.ID.String()).Msg("replacing existing identity")
			}

			fmt.Fprintln(cmd.ErrOrStderr(), ui.Notice(identity.NoticeCreating, false))
			p, err := wire.Identity.Create(ctx, domain.CreateRequest{DisplayName: name, Color: color})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Card(p.View(), time.Local))
			fmt.Fprintln(cmd.ErrOrStderr(), ui.Notice(identity.NoticeCreated, false))
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "display name (up to 64 characters)")
	cmd.Flags().StringVarP(&color, "color", "c", "", "avatar color as #rrggbb (default "+identity.DefaultColor+")")
	return cmd
}
