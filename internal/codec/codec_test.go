package codec_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zetra/internal/codec"
	"zetra/internal/domain"
	"zetra/internal/testutil"
)

func TestExportImport_EnvelopedRoundTrip(t *testing.T) {
	p := testutil.NewProfile(t, "Grace")

	data, filename, err := codec.Export(p)
	require.NoError(t, err)
	assert.Equal(t, p.ID.String()+".zetra.json", filename)
	assert.True(t, strings.HasPrefix(string(data), "{\n  \"zetra_profile\": {"), "export must be a pretty-printed envelope")

	got, err := codec.Import(data, "")
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestImport_BareProfileRoundTrip(t *testing.T) {
	p := testutil.NewProfile(t, "")

	data, err := json.MarshalIndent(p, "", "  ")
	require.NoError(t, err)

	got, err := codec.Import(data, "")
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestImport_FixedVector(t *testing.T) {
	p := testutil.VectorProfile()
	data, _, err := codec.Export(p)
	require.NoError(t, err)

	got, err := codec.Import(data, "")
	require.NoError(t, err)
	assert.Equal(t, testutil.VectorID, got.ID)
}

func TestImport_Rejects(t *testing.T) {
	valid := testutil.VectorProfile()
	other := testutil.NewProfile(t, "")

	mutate := func(f func(p *domain.Profile)) []byte {
		p := valid
		f(&p)
		b, err := json.Marshal(p)
		require.NoError(t, err)
		return b
	}

	tests := []struct {
		name string
		data []byte
	}{
		{name: "not json", data: []byte("zetra!")},
		{name: "json array", data: []byte(`[1,2,3]`)},
		{name: "json null", data: []byte(`null`)},
		{name: "empty object", data: []byte(`{}`)},
		{name: "missing private key", data: mutate(func(p *domain.Profile) { p.PrivateKey = domain.JWK{} })},
		{name: "private key without scalar", data: mutate(func(p *domain.Profile) { p.PrivateKey = p.PublicKey })},
		{name: "missing public key", data: mutate(func(p *domain.Profile) { p.PublicKey = domain.JWK{} })},
		{name: "missing id", data: mutate(func(p *domain.Profile) { p.ID = "" })},
		{name: "malformed id", data: mutate(func(p *domain.Profile) { p.ID = "ZET-nope" })},
		{name: "id from another key", data: mutate(func(p *domain.Profile) { p.ID = other.ID })},
		{name: "private key from another pair", data: mutate(func(p *domain.Profile) { p.PrivateKey = other.PrivateKey })},
		{name: "forged private scalar", data: mutate(func(p *domain.Profile) { p.PrivateKey.D = other.PrivateKey.D })},
		{name: "foreign algorithm", data: mutate(func(p *domain.Profile) { p.Meta.Alg = "RSA-PSS" })},
		{name: "future schema", data: mutate(func(p *domain.Profile) { p.Meta.Version = domain.SchemaVersion + 1 })},
		{name: "wrong id type", data: []byte(`{"zetra_profile":{"id":42}}`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Import(tt.data, "")
			require.ErrorIs(t, err, domain.ErrInvalidProfileFile)
		})
	}
}

func TestImport_LegacyBrowserExport(t *testing.T) {
	legacy := `{
  "zetra_profile": {
    "id": "ZETRA-UID-ABCDEF01-234-CORE",
    "displayName": "Ada",
    "color": "#ff7a00",
    "createdAt": 1740830400000,
    "publicKeyJwk": {"crv": "P-256", "ext": true, "key_ops": ["verify"], "kty": "EC",
      "x": "` + testutil.VectorX + `", "y": "` + testutil.VectorY + `"},
    "privateKeyJwk": {"crv": "P-256", "d": "` + testutil.VectorD + `", "ext": true, "key_ops": ["sign"], "kty": "EC",
      "x": "` + testutil.VectorX + `", "y": "` + testutil.VectorY + `"},
    "meta": {"alg": "ECDSA-P256", "version": 1}
  }
}`

	got, err := codec.Import([]byte(legacy), "")
	require.NoError(t, err)

	assert.Equal(t, testutil.VectorID, got.ID)
	assert.Equal(t, "ZETRA-UID-ABCDEF01-234-CORE", got.LegacyID)
	assert.Equal(t, "Ada", got.DisplayName)
	assert.Equal(t, "#ff7a00", got.Color)
	assert.Equal(t, int64(1740830400000), got.CreatedAt)
	assert.Equal(t, domain.Meta{Alg: domain.AlgorithmECDSAP256, Version: domain.SchemaVersion}, got.Meta)
	assert.Equal(t, []string{"sign"}, got.PrivateKey.KeyOps)
}

func TestMigrate_MissingMetaIsVersionOne(t *testing.T) {
	raw := `{"id":"x","publicKeyJwk":{"kty":"EC","crv":"P-256","x":"` + testutil.VectorX + `","y":"` + testutil.VectorY + `"}}`

	out, err := codec.Migrate([]byte(raw))
	require.NoError(t, err)

	p, err := codec.DecodeProfile(out)
	require.NoError(t, err)
	assert.Equal(t, testutil.VectorID, p.ID)
	assert.Equal(t, "x", p.LegacyID)
	assert.Equal(t, domain.SchemaVersion, p.Meta.Version)
	assert.Equal(t, domain.AlgorithmECDSAP256, p.Meta.Alg)
}

func TestImport_LegacyIDNotAString(t *testing.T) {
	legacy := `{"zetra_profile":{"id":42,"displayName":"Ada","color":"#ff7a00","createdAt":1740830400000,
  "publicKeyJwk":{"kty":"EC","crv":"P-256","x":"` + testutil.VectorX + `","y":"` + testutil.VectorY + `"},
  "privateKeyJwk":{"kty":"EC","crv":"P-256","d":"` + testutil.VectorD + `","x":"` + testutil.VectorX + `","y":"` + testutil.VectorY + `"}}}`

	_, err := codec.Import([]byte(legacy), "")
	require.ErrorIs(t, err, domain.ErrInvalidProfileFile)
}

func TestMigrate_CurrentVersionUntouched(t *testing.T) {
	raw, err := json.Marshal(testutil.VectorProfile())
	require.NoError(t, err)

	out, err := codec.Migrate(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, out)
}

func TestMigrate_FutureVersion(t *testing.T) {
	_, err := codec.Migrate([]byte(`{"meta":{"version":99}}`))
	require.ErrorIs(t, err, codec.ErrUnsupportedVersion)
}

func TestFilename_NoID(t *testing.T) {
	assert.Equal(t, "zetra.zetra.json", codec.Filename(""))
}
