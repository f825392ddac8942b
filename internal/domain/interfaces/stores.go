package interfaces

import domaintypes "zetra/internal/domain/types"

// KeyValueStore is a local persistent key-value facility holding one string
// value per key. SetItem replaces the value atomically: a failed write leaves
// the previous value intact.
type KeyValueStore interface {
	GetItem(key string) (value string, ok bool, err error)
	SetItem(key, value string) error
	RemoveItem(key string) error
}

// ProfileStore persists the single device profile.
type ProfileStore interface {
	Save(profile domaintypes.Profile) error
	// Load returns ok=false when nothing usable is stored, including when the
	// stored document is corrupt.
	Load() (profile domaintypes.Profile, ok bool, err error)
	Clear() error
}
