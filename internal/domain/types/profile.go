package types

import "time"

const (
	// AlgorithmECDSAP256 names the signing algorithm recorded in Meta.Alg.
	AlgorithmECDSAP256 = "ECDSA-P256"

	// SchemaVersion is the current on-disk/export schema version.
	SchemaVersion = 2
)

// Meta records the algorithm and schema version of a profile document.
type Meta struct {
	Alg     string `json:"alg"`
	Version int    `json:"version"`
}

// Profile is the single persisted identity record.
//
// ID is a pure function of PublicKey. The record is only ever replaced as a
// whole; there are no partial updates.
type Profile struct {
	ID          ProfileID `json:"id"`
	DisplayName string    `json:"displayName,omitempty"`
	Color       string    `json:"color,omitempty"`
	CreatedAt   int64     `json:"createdAt"` // epoch milliseconds
	PublicKey   JWK       `json:"publicKey"`
	PrivateKey  JWK       `json:"privateKey"`
	Meta        Meta      `json:"meta"`

	// LegacyID keeps the identifier a pre-v2 document carried when schema
	// migration re-derived ID in the canonical format.
	LegacyID string `json:"legacyId,omitempty"`
}

// Created returns CreatedAt as a time.Time.
func (p Profile) Created() time.Time { return time.UnixMilli(p.CreatedAt) }

// PublicView is the profile with the private key stripped, safe to render or
// return over an API.
type PublicView struct {
	ID          ProfileID `json:"id"`
	DisplayName string    `json:"displayName,omitempty"`
	Color       string    `json:"color,omitempty"`
	CreatedAt   int64     `json:"createdAt"`
	PublicKey   JWK       `json:"publicKey"`
	Meta        Meta      `json:"meta"`
	LegacyID    string    `json:"legacyId,omitempty"`
}

// View returns the public view of p.
func (p Profile) View() PublicView {
	return PublicView{
		ID:          p.ID,
		DisplayName: p.DisplayName,
		Color:       p.Color,
		CreatedAt:   p.CreatedAt,
		PublicKey:   p.PublicKey.Public(),
		Meta:        p.Meta,
		LegacyID:    p.LegacyID,
	}
}

// CreateRequest carries the user-supplied inputs of a create flow.
type CreateRequest struct {
	DisplayName string `json:"displayName"`
	Color       string `json:"color"`
}
