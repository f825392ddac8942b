package store

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"zetra/internal/codec"
	"zetra/internal/domain"
)

// DefaultStorageKey is the key the profile is saved under unless configured
// otherwise.
const DefaultStorageKey domain.StorageKey = "zetra_profile_v_final"

// ProfileStore keeps one profile document under a single key.
type ProfileStore struct {
	kv  domain.KeyValueStore
	key domain.StorageKey
	log zerolog.Logger
}

var _ domain.ProfileStore = (*ProfileStore)(nil)

// NewProfileStore returns a store writing to kv under key. An empty key
// selects DefaultStorageKey.
func NewProfileStore(kv domain.KeyValueStore, key domain.StorageKey, log zerolog.Logger) *ProfileStore {
	if key == "" {
		key = DefaultStorageKey
	}
	return &ProfileStore{kv: kv, key: key, log: log.With().Str("component", "profile_store").Logger()}
}

// Key returns the storage key in use.
func (s *ProfileStore) Key() domain.StorageKey { return s.key }

// Save replaces the stored profile with p.
func (s *ProfileStore) Save(p domain.Profile) error {
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", domain.ErrStorageWrite, err)
	}
	if err := s.kv.SetItem(s.key.String(), string(b)); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorageWrite, err)
	}
	s.log.Debug().Str("id", p.ID.String()).Msg("profile saved")
	return nil
}

// Load returns the stored profile. A missing or undecodable document reads
// as absent; only backend failures are errors.
func (s *ProfileStore) Load() (domain.Profile, bool, error) {
	raw, ok, err := s.kv.GetItem(s.key.String())
	if err != nil {
		return domain.Profile{}, false, err
	}
	if !ok {
		return domain.Profile{}, false, nil
	}

	p, err := codec.DecodeProfile([]byte(raw))
	if err == nil && p.ID == "" {
		err = fmt.Errorf("%w: missing id", domain.ErrStorageCorrupt)
	}
	if err != nil {
		s.log.Warn().Err(err).Str("key", s.key.String()).Msg("ignoring unreadable stored profile")
		return domain.Profile{}, false, nil
	}
	return p, true, nil
}

// Clear removes the stored profile. Clearing an empty store is a no-op.
func (s *ProfileStore) Clear() error {
	if err := s.kv.RemoveItem(s.key.String()); err != nil {
		return err
	}
	s.log.Debug().Msg("profile cleared")
	return nil
}
