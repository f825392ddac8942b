package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"zetra/internal/app"
	"zetra/internal/clipboard"
	"zetra/internal/domain"
	"zetra/internal/logging"
	"zetra/internal/services/identity"
	"zetra/internal/ui"
)

var (
	home       string
	backend    string
	storageKey string
	logLevel   string
	passphrase string
	wire       *app.Wire

	// clip is swapped out by tests.
	clip domain.Clipboard = clipboard.System{}
)

// Execute runs the CLI with the process arguments.
func Execute(ctx context.Context) error {
	return run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	defer func() { _ = closeWire() }()

	err := root.ExecuteContext(ctx)
	if errors.Is(err, domain.ErrCancelled) {
		fmt.Fprintln(stderr, ui.Notice(identity.Notice(err), false))
		return nil
	}
	if err != nil {
		fmt.Fprintln(stderr, ui.Notice(describe(err), true))
	}
	return err
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "zetra",
		Short:         "Local identity engine: one key pair, one human-readable ID",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Load(app.LoadOptions{
				Overrides: app.Config{
					Home:    home,
					Storage: app.StorageConfig{Backend: backend, Key: storageKey},
					Log:     app.LogConfig{Level: logLevel},
				},
			})
			if err != nil {
				return err
			}
			log := logging.New(logging.Options{
				Level:  cfg.Log.Level,
				Format: logging.Console,
				Output: cmd.ErrOrStderr(),
			})
			wire, err = app.NewWire(cfg, log, clip)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return closeWire()
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "data dir (default ~/.zetra)")
	root.PersistentFlags().StringVar(&backend, "storage", "", "storage backend: file, sqlite or memory (default file)")
	root.PersistentFlags().StringVar(&storageKey, "storage-key", "", "storage key of the profile (default zetra_profile_v_final)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase for sealed export files")

	root.AddCommand(createCmd(), showCmd(), idCmd(), copyCmd(), exportCmd(), recoverCmd(), resetCmd(), healthCmd())
	return root
}

func closeWire() error {
	if wire == nil {
		return nil
	}
	err := wire.Close()
	wire = nil
	return err
}

// describe returns the user-facing text for err: the identity notice when
// there is one, the raw error otherwise.
func describe(err error) string {
	if msg := identity.Notice(err); msg != identity.NoticeUnknown {
		return msg
	}
	return err.Error()
}
