// Package codec converts profiles to and from their portable file form.
//
// Exports wrap the profile in a {"zetra_profile": …} envelope, pretty-printed
// and named <id>.zetra.json. Imports accept the envelope, a bare profile
// object, or a passphrase-sealed {"zetra_sealed": …} export, migrate older
// schema versions, and validate before anything is committed.
package codec
