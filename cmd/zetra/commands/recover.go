package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"zetra/internal/services/identity"
	"zetra/internal/ui"
)

func recoverCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "recover [file]",
		Aliases: []string{"import"},
		Short:   "Restore a profile from an export file (- reads stdin)",
		Long: "Restore a profile from a .zetra.json export file. The stored profile is\n" +
			"replaced only if the file is valid. Sealed files need --passphrase.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var file io.Reader
			if len(args) == 1 {
				if args[0] == "-" {
					file = cmd.InOrStdin()
				} else {
					f, err := os.Open(args[0])
					if err != nil {
						return err
					}
					defer f.Close()
					file = f
				}
			}

			p, err := wire.Identity.Recover(cmd.Context(), file, passphrase)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Card(p.View(), time.Local))
			fmt.Fprintln(cmd.ErrOrStderr(), ui.Notice(identity.NoticeRecovered, false))
			return nil
		},
	}
}
