package domain

import (
	interfaces "zetra/internal/domain/interfaces"
	types "zetra/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	ProfileID     = types.ProfileID
	StorageKey    = types.StorageKey
	Profile       = types.Profile
	PublicView    = types.PublicView
	Meta          = types.Meta
	JWK           = types.JWK
	KeyPair       = types.KeyPair
	CreateRequest = types.CreateRequest
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	KeyValueStore   = interfaces.KeyValueStore
	ProfileStore    = interfaces.ProfileStore
	Clipboard       = interfaces.Clipboard
	IdentityService = interfaces.IdentityService
)

// Re-exported constants.
const (
	AlgorithmECDSAP256 = types.AlgorithmECDSAP256
	SchemaVersion      = types.SchemaVersion
)
