package codec

import (
	"encoding/json"
	"errors"
	"fmt"

	"zetra/internal/crypto"
	"zetra/internal/domain"
)

const (
	// EnvelopeField is the member an exported profile is wrapped in.
	EnvelopeField = "zetra_profile"

	// SealedField is the member a passphrase-sealed export is wrapped in.
	SealedField = "zetra_sealed"

	// FileSuffix is appended to the profile id to name export files.
	FileSuffix = ".zetra.json"
)

type envelope struct {
	Profile domain.Profile `json:"zetra_profile"`
}

type sealedEnvelope struct {
	Sealed crypto.SealedBlob `json:"zetra_sealed"`
}

// Filename returns the export file name for id.
func Filename(id domain.ProfileID) string {
	if id == "" {
		return "zetra" + FileSuffix
	}
	return id.String() + FileSuffix
}

// Export wraps p in the export envelope and pretty-prints it.
func Export(p domain.Profile) (data []byte, filename string, err error) {
	data, err = json.MarshalIndent(envelope{Profile: p}, "", "  ")
	if err != nil {
		return nil, "", err
	}
	return data, Filename(p.ID), nil
}

// ExportSealed encrypts the export envelope under passphrase.
func ExportSealed(p domain.Profile, passphrase string) (data []byte, filename string, err error) {
	if passphrase == "" {
		return nil, "", domain.ErrPassphraseRequired
	}
	plain, err := json.Marshal(envelope{Profile: p})
	if err != nil {
		return nil, "", err
	}
	defer crypto.Wipe(plain)

	blob, err := crypto.Seal(passphrase, plain)
	if err != nil {
		return nil, "", err
	}
	data, err = json.MarshalIndent(sealedEnvelope{Sealed: blob}, "", "  ")
	if err != nil {
		return nil, "", err
	}
	return data, Filename(p.ID), nil
}

// Import parses an export file. It accepts the envelope, a bare profile and
// a sealed export (which needs passphrase). The returned profile has passed
// Validate; nothing is persisted here.
func Import(data []byte, passphrase string) (domain.Profile, error) {
	var top document
	if err := json.Unmarshal(data, &top); err != nil || top == nil {
		return domain.Profile{}, invalid("not a JSON object")
	}

	if raw, ok := top[SealedField]; ok {
		if passphrase == "" {
			return domain.Profile{}, domain.ErrPassphraseRequired
		}
		var blob crypto.SealedBlob
		if err := json.Unmarshal(raw, &blob); err != nil {
			return domain.Profile{}, invalid("sealed payload: %v", err)
		}
		plain, err := crypto.Open(passphrase, blob)
		if err != nil {
			return domain.Profile{}, err
		}
		defer crypto.Wipe(plain)

		var inner document
		if err := json.Unmarshal(plain, &inner); err != nil || inner == nil {
			return domain.Profile{}, invalid("sealed payload is not a JSON object")
		}
		if _, nested := inner[SealedField]; nested {
			return domain.Profile{}, invalid("nested sealed payload")
		}
		return importDocument(inner, plain)
	}
	return importDocument(top, data)
}

func importDocument(top document, raw []byte) (domain.Profile, error) {
	if inner, ok := top[EnvelopeField]; ok && string(inner) != "null" {
		raw = inner
	}
	p, err := DecodeProfile(raw)
	if err != nil {
		return domain.Profile{}, invalid("%v", err)
	}
	if err := Validate(p); err != nil {
		return domain.Profile{}, err
	}
	return p, nil
}

// DecodeProfile migrates a raw profile document and decodes it. It does not
// validate.
func DecodeProfile(raw []byte) (domain.Profile, error) {
	migrated, err := Migrate(raw)
	if err != nil {
		return domain.Profile{}, err
	}
	var p domain.Profile
	if err := json.Unmarshal(migrated, &p); err != nil {
		return domain.Profile{}, err
	}
	return p, nil
}

// Validate checks that p is complete and internally consistent: required
// fields present, id in canonical form and derived from the public key, and
// the private key belonging to the public key.
func Validate(p domain.Profile) error {
	switch {
	case p.ID == "":
		return invalid("missing id")
	case p.PublicKey.IsZero():
		return invalid("missing publicKey")
	case p.PrivateKey.IsZero() || !p.PrivateKey.IsPrivate():
		return invalid("missing privateKey")
	}
	if p.Meta.Alg != "" && p.Meta.Alg != domain.AlgorithmECDSAP256 {
		return invalid("unsupported algorithm %q", p.Meta.Alg)
	}
	if !crypto.ValidID(p.ID.String()) {
		return invalid("malformed id %q", p.ID)
	}
	if err := crypto.VerifyID(p); err != nil {
		if errors.Is(err, crypto.ErrIDMismatch) {
			return invalid("id %q does not match publicKey", p.ID)
		}
		return invalid("publicKey: %v", err)
	}
	if err := crypto.MatchKeyPair(p.PublicKey, p.PrivateKey); err != nil {
		return invalid("privateKey: %v", err)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{domain.ErrInvalidProfileFile}, args...)...)
}
