// Package crypto exposes the primitives behind a zetra identity.
//
// Contents
//
//   - ECDSA P-256 key generation and JWK export/import (GenerateKeyPair,
//     ParsePublicKey, ParsePrivateKey, MatchKeyPair)
//   - Identifier derivation from the public key's RFC 7638 thumbprint
//     (DeriveID, FormatID, ValidID, VerifyID)
//   - Passphrase sealing for exported profiles (Seal, Open)
//   - Best-effort memory wiping for sensitive byte slices (Wipe)
//
// # Identifier format
//
// The SHA-256 thumbprint is hex encoded and sliced into 4, 4 and 3
// characters, upper-cased and joined as ZET-XXXX-XXXX-XXX. The format is
// fixed; changing it would change every existing identifier.
package crypto
