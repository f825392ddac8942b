package codec

import (
	"encoding/json"
	"errors"
	"fmt"

	"zetra/internal/crypto"
	"zetra/internal/domain"
)

// ErrUnsupportedVersion is returned for documents newer than this build.
var ErrUnsupportedVersion = errors.New("unsupported profile schema version")

// document is a profile in its raw, not yet typed, JSON form.
type document map[string]json.RawMessage

// migration upgrades a document from version n to n+1 in place.
type migration func(doc document) error

// migrations is keyed by the version a step upgrades from.
var migrations = map[int]migration{
	1: migrateV1ToV2,
}

// Migrate upgrades a raw profile document to domain.SchemaVersion.
func Migrate(raw []byte) ([]byte, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, errors.New("profile document is null")
	}

	meta, err := readMeta(doc)
	if err != nil {
		return nil, err
	}
	if meta.Version > domain.SchemaVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, meta.Version)
	}
	if meta.Version == domain.SchemaVersion {
		return raw, nil
	}

	for v := meta.Version; v < domain.SchemaVersion; v++ {
		step, ok := migrations[v]
		if !ok {
			return nil, fmt.Errorf("no migration from schema version %d", v)
		}
		if err := step(doc); err != nil {
			return nil, fmt.Errorf("migrate v%d: %w", v, err)
		}
		meta.Version = v + 1
		if err := doc.set("meta", meta); err != nil {
			return nil, err
		}
	}
	return json.Marshal(doc)
}

// readMeta returns the document's meta, treating a missing meta or version
// as the first schema version.
func readMeta(doc document) (domain.Meta, error) {
	meta := domain.Meta{Version: 1}
	if raw, ok := doc["meta"]; ok && string(raw) != "null" {
		if err := json.Unmarshal(raw, &meta); err != nil {
			return domain.Meta{}, fmt.Errorf("meta: %w", err)
		}
	}
	if meta.Version < 1 {
		meta.Version = 1
	}
	return meta, nil
}

// migrateV1ToV2 upgrades the browser-era layout: keys were stored as
// publicKeyJwk/privateKeyJwk and the id format differed between builds. The
// id is re-derived in the canonical format and the old one kept as legacyId.
func migrateV1ToV2(doc document) error {
	doc.rename("publicKeyJwk", "publicKey")
	doc.rename("privateKeyJwk", "privateKey")

	meta, err := readMeta(doc)
	if err != nil {
		return err
	}
	if meta.Alg == "" {
		meta.Alg = domain.AlgorithmECDSAP256
		if err := doc.set("meta", meta); err != nil {
			return err
		}
	}

	rawPub, ok := doc["publicKey"]
	if !ok {
		return nil
	}
	var pub domain.JWK
	if err := json.Unmarshal(rawPub, &pub); err != nil {
		return fmt.Errorf("publicKey: %w", err)
	}
	id, err := crypto.DeriveID(pub)
	if err != nil {
		return err
	}

	var oldID string
	if raw, ok := doc["id"]; ok {
		if err := json.Unmarshal(raw, &oldID); err != nil {
			return fmt.Errorf("id: %w", err)
		}
	}
	if oldID != "" && oldID != id.String() {
		if err := doc.set("legacyId", oldID); err != nil {
			return err
		}
	}
	return doc.set("id", id)
}

func (d document) rename(from, to string) {
	v, ok := d[from]
	if !ok {
		return
	}
	if _, exists := d[to]; !exists {
		d[to] = v
	}
	delete(d, from)
}

func (d document) set(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	d[key] = b
	return nil
}
