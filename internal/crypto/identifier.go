package crypto

import (
	stdcrypto "crypto"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"zetra/internal/domain"
)

const (
	idPrefix = "ZET"

	// digest hex is sliced [0:4], [4:8], [8:11]
	minDigestHexLen = 11
)

var (
	idPattern = regexp.MustCompile(`^ZET-[0-9A-F]{4}-[0-9A-F]{4}-[0-9A-F]{3}$`)

	// ErrIDMismatch is returned when a profile id was not derived from its
	// public key.
	ErrIDMismatch = errors.New("profile id does not match public key")
)

// DeriveID returns the display identifier for pub.
//
// The public key is canonicalised as its RFC 7638 thumbprint input (only crv,
// kty, x and y, in lexicographic order, no whitespace) and hashed with
// SHA-256. Members such as key_ops or ext never influence the result.
func DeriveID(pub domain.JWK) (domain.ProfileID, error) {
	key, err := toJWXKey(pub.Public())
	if err != nil {
		return "", err
	}
	sum, err := key.Thumbprint(stdcrypto.SHA256)
	if err != nil {
		return "", fmt.Errorf("thumbprint: %w", err)
	}
	return FormatID(hex.EncodeToString(sum))
}

// FormatID slices a hex digest into the ZET-XXXX-XXXX-XXX display form.
func FormatID(digest string) (domain.ProfileID, error) {
	if len(digest) < minDigestHexLen {
		return "", fmt.Errorf("%w: need %d hex characters, got %d",
			domain.ErrMalformedDigest, minDigestHexLen, len(digest))
	}
	if i := strings.IndexFunc(digest, func(r rune) bool { return !isHex(r) }); i >= 0 {
		return "", fmt.Errorf("%w: non-hex character at %d", domain.ErrMalformedDigest, i)
	}
	d := strings.ToUpper(digest)
	return domain.ProfileID(fmt.Sprintf("%s-%s-%s-%s", idPrefix, d[0:4], d[4:8], d[8:11])), nil
}

// ValidID reports whether id has the canonical display form.
func ValidID(id string) bool { return idPattern.MatchString(id) }

// VerifyID checks that p.ID was derived from p.PublicKey.
func VerifyID(p domain.Profile) error {
	want, err := DeriveID(p.PublicKey)
	if err != nil {
		return err
	}
	if want != p.ID {
		return ErrIDMismatch
	}
	return nil
}

func isHex(r rune) bool {
	return ('0' <= r && r <= '9') || ('a' <= r && r <= 'f') || ('A' <= r && r <= 'F')
}
