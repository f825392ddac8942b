package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"zetra/internal/domain"
	"zetra/internal/services/identity"
	"zetra/internal/ui"
)

func copyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "copy",
		Short: "Copy the identity string to the clipboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := wire.Identity.Copy(cmd.Context())
			if errors.Is(err, domain.ErrClipboard) {
				// Still useful: print the id so it can be copied by hand.
				wire.Log.Debug().Err(err).Msg("clipboard write failed")
				fmt.Fprintln(cmd.OutOrStdout(), id)
				fmt.Fprintln(cmd.ErrOrStderr(), ui.Notice(identity.Notice(err), true))
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			fmt.Fprintln(cmd.ErrOrStderr(), ui.Notice(identity.NoticeCopied, false))
			return nil
		},
	}
}
