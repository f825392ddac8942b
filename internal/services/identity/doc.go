// Package identity is the presentation-facing API over the local profile.
//
// A Service creates a profile from a fresh ECDSA P-256 key pair, recovers one
// from an export file, copies its id to the clipboard, exports it and resets
// the device. Calls are serialised, so overlapping requests never interleave
// their store writes. Notice maps any error returned here to the short
// message shown to the user.
package identity
