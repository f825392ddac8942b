package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"zetra/internal/app"
	"zetra/internal/clipboard"
	"zetra/internal/httpapi"
	"zetra/internal/logging"
)

const shutdownTimeout = 5 * time.Second

// listening, when set, is called with the bound address once the server
// accepts connections.
var listening func(addr string)

func newRootCmd() *cobra.Command {
	var overrides app.Config
	root := &cobra.Command{
		Use:           "zetra-server",
		Short:         "Loopback HTTP shell over the local zetra identity",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Load(app.LoadOptions{Overrides: overrides})
			if err != nil {
				return err
			}
			log := logging.New(logging.Options{
				Level:  cfg.Log.Level,
				Format: logging.JSON,
				Output: cmd.ErrOrStderr(),
			})

			// The server has no desktop session to copy into.
			w, err := app.NewWire(cfg, log, clipboard.Noop{})
			if err != nil {
				return err
			}
			defer w.Close()

			return serve(cmd.Context(), cfg, w, log)
		},
	}

	f := root.Flags()
	f.StringVar(&overrides.Home, "home", "", "data dir (default ~/.zetra)")
	f.StringVar(&overrides.Storage.Backend, "storage", "", "storage backend: file, sqlite or memory (default file)")
	f.StringVar(&overrides.Storage.Key, "storage-key", "", "storage key of the profile (default zetra_profile_v_final)")
	f.StringVar(&overrides.Log.Level, "log-level", "", "log level: debug, info, warn or error")
	f.StringVar(&overrides.Server.Listen, "listen", "", "listen address (default 127.0.0.1:3000, PORT honoured)")
	return root
}

// serve runs the HTTP server until ctx is cancelled, then shuts it down
// gracefully.
func serve(ctx context.Context, cfg app.Config, w *app.Wire, log zerolog.Logger) error {
	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Handler:           httpapi.New(w.Identity, httpapi.WithLogger(log)).Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	ln, err := net.Listen("tcp", cfg.Server.Listen)
	if err != nil {
		return err
	}
	addr := ln.Addr().String()
	log.Info().Str("addr", addr).Str("backend", cfg.Storage.Backend).Msg("zetra server running")
	if listening != nil {
		listening(addr)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
