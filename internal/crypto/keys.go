package crypto

import (
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/lestrrat-go/jwx/v2/jwk"

	"zetra/internal/domain"
)

const (
	keyTypeEC = "EC"
	curveP256 = "P-256"
	opSign    = "sign"
	opVerify  = "verify"

	p256ScalarSize = 32
)

var (
	// ErrUnsupportedKey is returned for JWKs that are not EC P-256 keys.
	ErrUnsupportedKey = errors.New("unsupported key: want EC P-256 JWK")

	// ErrKeyMismatch is returned when a private key does not belong to the
	// public key it is paired with.
	ErrKeyMismatch = errors.New("private key does not match public key")
)

// KeyGenerator produces ECDSA P-256 signing key pairs from a random source.
type KeyGenerator struct {
	rand io.Reader
}

// NewKeyGenerator returns a generator reading entropy from r. A nil r makes
// every call fail with domain.ErrCryptoUnavailable.
func NewKeyGenerator(r io.Reader) *KeyGenerator { return &KeyGenerator{rand: r} }

// GenerateKeyPair returns a fresh key pair using crypto/rand.
func GenerateKeyPair() (domain.KeyPair, error) {
	return NewKeyGenerator(rand.Reader).GenerateKeyPair()
}

// GenerateKeyPair returns a fresh ECDSA P-256 key pair exported as JWKs.
// Both halves are marked extractable with their sign/verify usages, matching
// what WebCrypto exports, so files move freely between implementations.
func (g *KeyGenerator) GenerateKeyPair() (domain.KeyPair, error) {
	if g == nil || g.rand == nil {
		return domain.KeyPair{}, fmt.Errorf("%w: no random source", domain.ErrCryptoUnavailable)
	}
	priv, err := ecdsa.GenerateKey(elliptic.P256(), g.rand)
	if err != nil {
		return domain.KeyPair{}, fmt.Errorf("%w: %v", domain.ErrCryptoUnavailable, err)
	}

	privJWK, err := exportJWK(priv)
	if err != nil {
		return domain.KeyPair{}, err
	}
	pubJWK, err := exportJWK(&priv.PublicKey)
	if err != nil {
		return domain.KeyPair{}, err
	}

	extractable := true
	privJWK.KeyOps, privJWK.Ext = []string{opSign}, &extractable
	pubJWK.KeyOps, pubJWK.Ext = []string{opVerify}, &extractable

	return domain.KeyPair{Public: pubJWK, Private: privJWK}, nil
}

// ParsePublicKey converts the public members of k to an *ecdsa.PublicKey.
func ParsePublicKey(k domain.JWK) (*ecdsa.PublicKey, error) {
	key, err := toJWXKey(k.Public())
	if err != nil {
		return nil, err
	}
	var pub ecdsa.PublicKey
	if err := key.Raw(&pub); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedKey, err)
	}
	return &pub, nil
}

// ParsePrivateKey converts k to an *ecdsa.PrivateKey. k must carry "d".
func ParsePrivateKey(k domain.JWK) (*ecdsa.PrivateKey, error) {
	if !k.IsPrivate() {
		return nil, fmt.Errorf("%w: missing private scalar", ErrUnsupportedKey)
	}
	key, err := toJWXKey(k)
	if err != nil {
		return nil, err
	}
	var priv ecdsa.PrivateKey
	if err := key.Raw(&priv); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedKey, err)
	}
	return &priv, nil
}

// MatchKeyPair checks that priv is the private half of pub. The public
// point is recomputed from the scalar d; the x/y members a private JWK
// carries are not trusted.
func MatchKeyPair(pub, priv domain.JWK) error {
	pk, err := ParsePublicKey(pub)
	if err != nil {
		return err
	}
	sk, err := ParsePrivateKey(priv)
	if err != nil {
		return err
	}
	if !pk.Equal(&sk.PublicKey) {
		return ErrKeyMismatch
	}

	if sk.D == nil || sk.D.Sign() <= 0 || sk.D.Cmp(elliptic.P256().Params().N) >= 0 {
		return fmt.Errorf("%w: private scalar out of range", ErrKeyMismatch)
	}
	derived, err := ecdh.P256().NewPrivateKey(sk.D.FillBytes(make([]byte, p256ScalarSize)))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrKeyMismatch, err)
	}
	want, err := pk.ECDH()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedKey, err)
	}
	if !derived.PublicKey().Equal(want) {
		return ErrKeyMismatch
	}
	return nil
}

// exportJWK converts a raw ecdsa key to the domain JWK via jwx.
func exportJWK(raw any) (domain.JWK, error) {
	key, err := jwk.FromRaw(raw)
	if err != nil {
		return domain.JWK{}, fmt.Errorf("jwk from raw: %w", err)
	}
	b, err := json.Marshal(key)
	if err != nil {
		return domain.JWK{}, fmt.Errorf("jwk marshal: %w", err)
	}
	var out domain.JWK
	if err := json.Unmarshal(b, &out); err != nil {
		return domain.JWK{}, fmt.Errorf("jwk decode: %w", err)
	}
	return out, nil
}

// toJWXKey checks k is an EC P-256 key and parses it with jwx.
func toJWXKey(k domain.JWK) (jwk.Key, error) {
	if k.Kty != keyTypeEC || k.Crv != curveP256 || k.X == "" || k.Y == "" {
		return nil, ErrUnsupportedKey
	}
	b, err := json.Marshal(k)
	if err != nil {
		return nil, err
	}
	key, err := jwk.ParseKey(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedKey, err)
	}
	return key, nil
}
