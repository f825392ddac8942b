package identity

import (
	"context"
	"errors"

	"zetra/internal/domain"
)

// Status line shown when nothing else is being reported.
const IdleNotice = "No account required. Your identity stays on your device unless you choose to share it."

// Notices for successful operations.
const (
	NoticeCreating  = "Generating secure identity locally..."
	NoticeCreated   = "Identity created. Export your profile to backup."
	NoticeRecovered = "Profile restored from file."
	NoticeCopied    = "ID copied to clipboard."
	NoticeExported  = "Exported profile. Keep the file safe."
	NoticeRemoved   = "Profile removed."
)

// NoticeUnknown is returned by Notice for errors outside the taxonomy.
const NoticeUnknown = "Something went wrong."

// Notice returns the message to show the user for err. A nil error yields
// the idle notice.
func Notice(err error) string {
	switch {
	case err == nil:
		return IdleNotice
	case errors.Is(err, domain.ErrCancelled):
		return IdleNotice
	case errors.Is(err, ErrInvalidRequest):
		return "Please enter a valid display name and color."
	case errors.Is(err, domain.ErrCryptoUnavailable), errors.Is(err, domain.ErrMalformedDigest):
		return "Failed to generate identity."
	case errors.Is(err, domain.ErrStorageWrite):
		return "Unable to save profile locally."
	case errors.Is(err, domain.ErrPassphraseRequired):
		return "This profile file is sealed. Enter its passphrase."
	case errors.Is(err, domain.ErrWrongPassphrase):
		return "Wrong passphrase for this profile file."
	case errors.Is(err, domain.ErrInvalidProfileFile):
		return "Invalid profile file."
	case errors.Is(err, domain.ErrClipboard):
		return "Copy failed."
	case errors.Is(err, domain.ErrNoProfile):
		return "No saved identity found on this device."
	case errors.Is(err, domain.ErrStorageCorrupt):
		return "Saved profile could not be read."
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "Operation cancelled."
	default:
		return NoticeUnknown
	}
}
