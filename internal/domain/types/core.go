package types

// ProfileID is the formatted, human-shareable identifier of a profile,
// e.g. "ZET-819B-F128-E98".
type ProfileID string

// String returns the string form of the profile identifier.
func (id ProfileID) String() string { return string(id) }

// StorageKey names the single slot a profile document is written under.
type StorageKey string

// String returns the string form of the storage key.
func (k StorageKey) String() string { return string(k) }
