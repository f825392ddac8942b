package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"zetra/internal/domain"
	"zetra/internal/services/identity"
	"zetra/internal/store"
)

// Wire bundles the store and services built from a Config.
type Wire struct {
	Config   Config
	Log      zerolog.Logger
	KV       domain.KeyValueStore
	Profiles *store.ProfileStore
	Identity *identity.Service

	closers []func() error
}

// NewWire constructs the dependency graph from cfg. clip may be nil.
func NewWire(cfg Config, log zerolog.Logger, clip domain.Clipboard) (*Wire, error) {
	w := &Wire{Config: cfg, Log: log}

	kv, err := w.openKV()
	if err != nil {
		return nil, err
	}
	w.KV = kv
	w.Profiles = store.NewProfileStore(kv, domain.StorageKey(cfg.Storage.Key), log)
	w.Identity = identity.New(w.Profiles, clip, identity.WithLogger(log))

	log.Debug().
		Str("backend", cfg.Storage.Backend).
		Str("home", cfg.Home).
		Msg("wired")
	return w, nil
}

func (w *Wire) openKV() (domain.KeyValueStore, error) {
	switch w.Config.Storage.Backend {
	case BackendMemory:
		return store.NewMemoryKV(), nil
	case BackendSQLite:
		if err := os.MkdirAll(w.Config.Home, 0o700); err != nil {
			return nil, err
		}
		kv, err := store.OpenSQLKV(w.Config.Storage.DSN)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store %s: %w", w.Config.Storage.DSN, err)
		}
		w.closers = append(w.closers, kv.Close)
		return kv, nil
	case BackendFile, "":
		if err := os.MkdirAll(w.Config.Home, 0o700); err != nil {
			return nil, err
		}
		return store.NewFileKV(w.Config.Home), nil
	default:
		return nil, fmt.Errorf("%w: unknown storage backend %q", ErrInvalidConfig, w.Config.Storage.Backend)
	}
}

// Close releases backend resources.
func (w *Wire) Close() error {
	var errs []error
	for _, c := range w.closers {
		errs = append(errs, c())
	}
	w.closers = nil
	return errors.Join(errs...)
}
