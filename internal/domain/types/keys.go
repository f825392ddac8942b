package types

// JWK is the portable JSON Web Key encoding of one half of an ECDSA key pair.
//
// Only the members used by EC keys are modelled. KeyOps and Ext are carried so
// that keys exported by a browser's WebCrypto round-trip unchanged.
type JWK struct {
	Kty    string   `json:"kty"`
	Crv    string   `json:"crv"`
	X      string   `json:"x"`
	Y      string   `json:"y"`
	D      string   `json:"d,omitempty"`
	KeyOps []string `json:"key_ops,omitempty"`
	Ext    *bool    `json:"ext,omitempty"`
}

// IsZero reports whether the key carries no material at all.
func (k JWK) IsZero() bool {
	return k.Kty == "" && k.Crv == "" && k.X == "" && k.Y == "" && k.D == ""
}

// IsPrivate reports whether the key carries the private scalar.
func (k JWK) IsPrivate() bool { return k.D != "" }

// Public returns a copy of k with the private scalar removed.
func (k JWK) Public() JWK {
	out := k
	out.D = ""
	if k.KeyOps != nil {
		out.KeyOps = append([]string(nil), k.KeyOps...)
	}
	return out
}

// KeyPair holds both halves of a freshly generated signing key pair.
type KeyPair struct {
	Public  JWK
	Private JWK
}
