// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"testing"
	"time"

	"zetra/internal/crypto"
	"zetra/internal/domain"
)

// Fixed P-256 key pair and the id derived from it.
const (
	VectorX  = "wEWLfxXygnBXBnwfpKACmzdsAick-67eNulAF2bZTns"
	VectorY  = "VLs95oQeDNBareS_fNf97He--6D1zSpvPFTZR5kjwUw"
	VectorD  = "KNUPKK7NRvap_3-VTdYtDYaS4NwspnJ20ebDBDkJRuA"
	VectorID = domain.ProfileID("ZET-819B-F128-E98")
)

// VectorProfile returns a valid profile built from the fixed key pair.
func VectorProfile() domain.Profile {
	pub := domain.JWK{Kty: "EC", Crv: "P-256", X: VectorX, Y: VectorY}
	priv := pub
	priv.D = VectorD
	return domain.Profile{
		ID:          VectorID,
		DisplayName: "Ada",
		Color:       "#0ea5ff",
		CreatedAt:   time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC).UnixMilli(),
		PublicKey:   pub,
		PrivateKey:  priv,
		Meta:        domain.Meta{Alg: domain.AlgorithmECDSAP256, Version: domain.SchemaVersion},
	}
}

// NewProfile returns a valid profile with freshly generated keys.
func NewProfile(t testing.TB, displayName string) domain.Profile {
	t.Helper()
	kp, err := crypto.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	id, err := crypto.DeriveID(kp.Public)
	if err != nil {
		t.Fatalf("DeriveID: %v", err)
	}
	return domain.Profile{
		ID:          id,
		DisplayName: displayName,
		CreatedAt:   time.Now().UnixMilli(),
		PublicKey:   kp.Public,
		PrivateKey:  kp.Private,
		Meta:        domain.Meta{Alg: domain.AlgorithmECDSAP256, Version: domain.SchemaVersion},
	}
}
