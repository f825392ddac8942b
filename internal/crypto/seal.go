package crypto

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"zetra/internal/domain"
)

// The current supported version of the sealed blob format.
const sealedFormatVersion = 1

const (
	saltSize = 16

	// Upper bounds on the scrypt cost a sealed file may request. Memory use
	// is 128*N*r*p bytes; the caps keep it at 128 MiB per derivation.
	maxScryptN      = 1 << 20
	maxScryptR      = 16
	maxScryptP      = 4
	maxScryptMemory = 128 << 20
)

// SealedBlob is the JSON structure holding a passphrase-sealed payload and
// its KDF parameters.
type SealedBlob struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Cipher []byte `json:"cipher"`
}

// Seal derives a key from passphrase and seals plaintext.
func Seal(passphrase string, plaintext []byte) (SealedBlob, error) {
	N, r, p := scryptParamsDefault()
	return sealWithParams(passphrase, plaintext, N, r, p)
}

func sealWithParams(passphrase string, plaintext []byte, N, r, p int) (SealedBlob, error) {
	var salt [saltSize]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return SealedBlob{}, fmt.Errorf("%w: %v", domain.ErrCryptoUnavailable, err)
	}
	key, err := scrypt.Key([]byte(passphrase), salt[:], N, r, p, chacha20poly1305.KeySize)
	if err != nil {
		return SealedBlob{}, err
	}
	defer Wipe(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return SealedBlob{}, err
	}
	var nonce [chacha20poly1305.NonceSize]byte // zero nonce; salt-bound key is single use
	ct := aead.Seal(nil, nonce[:], plaintext, salt[:])

	return SealedBlob{V: sealedFormatVersion, Salt: salt[:], N: N, R: r, P: p, Cipher: ct}, nil
}

// Open reverses Seal. A wrong passphrase or modified blob yields
// domain.ErrWrongPassphrase. A blob whose header is malformed or asks for
// more KDF work than Seal would ever use yields domain.ErrInvalidProfileFile
// without running the KDF.
func Open(passphrase string, b SealedBlob) ([]byte, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}
	key, err := scrypt.Key([]byte(passphrase), b.Salt, b.N, b.R, b.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidProfileFile, err)
	}
	defer Wipe(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte
	pt, err := aead.Open(nil, nonce[:], b.Cipher, b.Salt)
	if err != nil {
		return nil, domain.ErrWrongPassphrase
	}
	return pt, nil
}

// validate checks the header fields read from an untrusted file.
func (b SealedBlob) validate() error {
	switch {
	case b.V != sealedFormatVersion:
		return fmt.Errorf("%w: unsupported sealed format version %d", domain.ErrInvalidProfileFile, b.V)
	case len(b.Salt) != saltSize:
		return fmt.Errorf("%w: salt must be %d bytes", domain.ErrInvalidProfileFile, saltSize)
	case b.N < 2 || b.N > maxScryptN || b.N&(b.N-1) != 0:
		return fmt.Errorf("%w: scrypt N %d out of range", domain.ErrInvalidProfileFile, b.N)
	case b.R < 1 || b.R > maxScryptR:
		return fmt.Errorf("%w: scrypt r %d out of range", domain.ErrInvalidProfileFile, b.R)
	case b.P < 1 || b.P > maxScryptP:
		return fmt.Errorf("%w: scrypt p %d out of range", domain.ErrInvalidProfileFile, b.P)
	case 128*int64(b.N)*int64(b.R)*int64(b.P) > maxScryptMemory:
		return fmt.Errorf("%w: scrypt parameters need too much memory", domain.ErrInvalidProfileFile)
	case len(b.Cipher) < chacha20poly1305.Overhead:
		return fmt.Errorf("%w: sealed payload too short", domain.ErrInvalidProfileFile)
	}
	return nil
}

// Tunables for scrypt key derivation.
func scryptParamsDefault() (N, r, p int) { return 1 << 15, 8, 1 }
