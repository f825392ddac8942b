package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"zetra/internal/domain"
	"zetra/internal/services/identity"
	"zetra/internal/ui"
)

func exportCmd() *cobra.Command {
	var out string
	var seal bool
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the profile to a .zetra.json file",
		Long: "Write the profile, including its private key, to a .zetra.json file.\n" +
			"Without --seal the file is plain JSON; anyone holding it can use the identity.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pass := ""
			if seal {
				if passphrase == "" {
					return domain.ErrPassphraseRequired
				}
				pass = passphrase
			}
			data, filename, err := wire.Identity.Export(cmd.Context(), pass)
			if err != nil {
				return err
			}
			if out == "-" {
				_, err := cmd.OutOrStdout().Write(append(data, '\n'))
				return err
			}

			path, err := exportPath(out, filename)
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, data, 0o600); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			fmt.Fprintln(cmd.ErrOrStderr(), ui.Notice(identity.NoticeExported, false))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file or directory, - for stdout (default current directory)")
	cmd.Flags().BoolVar(&seal, "seal", false, "encrypt the file with --passphrase")
	return cmd
}

// exportPath resolves --out: empty means the working directory, an existing
// directory receives filename, anything else is used as the file path.
func exportPath(out, filename string) (string, error) {
	if out == "" {
		return filename, nil
	}
	info, err := os.Stat(out)
	switch {
	case err == nil && info.IsDir():
		return filepath.Join(out, filename), nil
	case err == nil || errors.Is(err, os.ErrNotExist):
		return out, nil
	default:
		return "", err
	}
}
