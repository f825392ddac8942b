package store_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zetra/internal/domain"
	"zetra/internal/store"
	"zetra/internal/testutil"
)

type failingKV struct {
	*store.MemoryKV
	failSet bool
	failGet bool
}

var errBackend = errors.New("quota exceeded")

func (f *failingKV) SetItem(key, value string) error {
	if f.failSet {
		return errBackend
	}
	return f.MemoryKV.SetItem(key, value)
}

func (f *failingKV) GetItem(key string) (string, bool, error) {
	if f.failGet {
		return "", false, errBackend
	}
	return f.MemoryKV.GetItem(key)
}

func TestProfileStore_SaveLoad(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ps := store.NewProfileStore(kv, "", zerolog.Nop())
			assert.Equal(t, store.DefaultStorageKey, ps.Key())

			_, ok, err := ps.Load()
			require.NoError(t, err)
			assert.False(t, ok)

			p := testutil.NewProfile(t, "Grace")
			require.NoError(t, ps.Save(p))

			got, ok, err := ps.Load()
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, p, got)

			// A second save replaces the first wholesale.
			q := testutil.VectorProfile()
			require.NoError(t, ps.Save(q))
			got, _, err = ps.Load()
			require.NoError(t, err)
			assert.Equal(t, q, got)
		})
	}
}

func TestProfileStore_CorruptReadsAsAbsent(t *testing.T) {
	tests := map[string]string{
		"not json":       "{not json",
		"json array":     "[]",
		"future version": `{"id":"ZET-819B-F128-E98","meta":{"version":42}}`,
		"no id":          `{"meta":{"alg":"ECDSA-P256","version":2}}`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			kv := store.NewMemoryKV()
			require.NoError(t, kv.SetItem(store.DefaultStorageKey.String(), raw))

			var logs bytes.Buffer
			ps := store.NewProfileStore(kv, "", zerolog.New(&logs))

			_, ok, err := ps.Load()
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Contains(t, logs.String(), `"level":"warn"`)
		})
	}
}

func TestProfileStore_LoadMigratesLegacyDocument(t *testing.T) {
	kv := store.NewMemoryKV()
	legacy := `{"id":"ZET-OLD1-OLD2-OLD","createdAt":1,` +
		`"publicKeyJwk":{"kty":"EC","crv":"P-256","x":"` + testutil.VectorX + `","y":"` + testutil.VectorY + `"},` +
		`"privateKeyJwk":{"kty":"EC","crv":"P-256","x":"` + testutil.VectorX + `","y":"` + testutil.VectorY + `","d":"` + testutil.VectorD + `"},` +
		`"meta":{"alg":"ECDSA-P256","version":1}}`
	require.NoError(t, kv.SetItem(store.DefaultStorageKey.String(), legacy))

	got, ok, err := store.NewProfileStore(kv, "", zerolog.Nop()).Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, testutil.VectorID, got.ID)
	assert.Equal(t, "ZET-OLD1-OLD2-OLD", got.LegacyID)
	assert.Equal(t, testutil.VectorD, got.PrivateKey.D)
}

func TestProfileStore_WriteFailureKeepsPrior(t *testing.T) {
	kv := &failingKV{MemoryKV: store.NewMemoryKV()}
	ps := store.NewProfileStore(kv, "custom_key", zerolog.Nop())

	prior := testutil.VectorProfile()
	require.NoError(t, ps.Save(prior))

	kv.failSet = true
	err := ps.Save(testutil.NewProfile(t, "next"))
	require.ErrorIs(t, err, domain.ErrStorageWrite)
	require.ErrorIs(t, err, errBackend)

	got, ok, err := ps.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, prior, got)
}

func TestProfileStore_ReadFailureIsError(t *testing.T) {
	kv := &failingKV{MemoryKV: store.NewMemoryKV(), failGet: true}
	_, _, err := store.NewProfileStore(kv, "", zerolog.Nop()).Load()
	require.ErrorIs(t, err, errBackend)
}

func TestProfileStore_ClearIdempotent(t *testing.T) {
	kv := store.NewMemoryKV()
	ps := store.NewProfileStore(kv, "", zerolog.Nop())

	require.NoError(t, ps.Clear())
	require.NoError(t, ps.Save(testutil.VectorProfile()))
	require.NoError(t, ps.Clear())
	require.NoError(t, ps.Clear())

	_, ok, err := ps.Load()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProfileStore_UsesInjectedKey(t *testing.T) {
	kv := store.NewMemoryKV()
	ps := store.NewProfileStore(kv, "zetraProfile", zerolog.Nop())
	require.NoError(t, ps.Save(testutil.VectorProfile()))

	_, ok, _ := kv.GetItem("zetraProfile")
	assert.True(t, ok)
	_, ok, _ = kv.GetItem(store.DefaultStorageKey.String())
	assert.False(t, ok)
}
