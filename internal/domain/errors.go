package domain

import "errors"

// Error taxonomy. Every error surfaced by the core wraps exactly one of these,
// so callers match with errors.Is and map them to user-visible notices.
var (
	// ErrCryptoUnavailable is returned when no secure random source or key
	// generation primitive is usable.
	ErrCryptoUnavailable = errors.New("crypto unavailable")

	// ErrMalformedDigest is returned when a digest is too short or not hex.
	ErrMalformedDigest = errors.New("malformed digest")

	// ErrStorageWrite is returned when the backing store rejects a write.
	ErrStorageWrite = errors.New("storage write failed")

	// ErrStorageCorrupt marks a stored document that cannot be decoded. The
	// profile store treats it as absence and never returns it from Load.
	ErrStorageCorrupt = errors.New("stored profile is corrupt")

	// ErrInvalidProfileFile is returned when an imported file is not a valid
	// profile.
	ErrInvalidProfileFile = errors.New("invalid profile file")

	// ErrClipboard is returned when the clipboard rejects a write. Non-fatal.
	ErrClipboard = errors.New("clipboard write failed")

	// ErrNoProfile is returned by operations that need a stored profile.
	ErrNoProfile = errors.New("no profile on this device")

	// ErrCancelled is returned when the user dismissed a file picker.
	ErrCancelled = errors.New("cancelled")

	// ErrPassphraseRequired is returned when a sealed export is imported
	// without a passphrase.
	ErrPassphraseRequired = errors.New("passphrase required")

	// ErrWrongPassphrase is returned when a sealed export cannot be opened.
	ErrWrongPassphrase = errors.New("wrong passphrase or corrupted file")
)
