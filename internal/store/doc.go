// Package store persists zetra's profile.
//
// A ProfileStore keeps exactly one serialised profile under a single storage
// key in a key-value backend. Three backends implement domain.KeyValueStore:
//   - FileKV: one file per key in the zetra home directory (default)
//   - SQLKV: a SQLite table through gorm
//   - MemoryKV: an in-process map for tests and throwaway sessions
//
// Every backend replaces a value atomically, so a failed write leaves the
// previous value in place.
package store
