package codec_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zetra/internal/codec"
	"zetra/internal/domain"
	"zetra/internal/testutil"
)

func TestExportSealed_RoundTrip(t *testing.T) {
	p := testutil.VectorProfile()

	data, filename, err := codec.ExportSealed(p, "hunter2!")
	require.NoError(t, err)
	assert.Equal(t, "ZET-819B-F128-E98.zetra.json", filename)
	assert.Contains(t, string(data), `"zetra_sealed"`)
	assert.False(t, strings.Contains(string(data), testutil.VectorD), "private scalar must not appear in a sealed export")

	got, err := codec.Import(data, "hunter2!")
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestImportSealed_Passphrase(t *testing.T) {
	data, _, err := codec.ExportSealed(testutil.VectorProfile(), "hunter2!")
	require.NoError(t, err)

	_, err = codec.Import(data, "")
	require.ErrorIs(t, err, domain.ErrPassphraseRequired)

	_, err = codec.Import(data, "hunter3!")
	require.ErrorIs(t, err, domain.ErrWrongPassphrase)
}

func TestExportSealed_RequiresPassphrase(t *testing.T) {
	_, _, err := codec.ExportSealed(testutil.VectorProfile(), "")
	require.ErrorIs(t, err, domain.ErrPassphraseRequired)
}

func TestImportSealed_ExcessiveKDFCost(t *testing.T) {
	data := []byte(`{"zetra_sealed":{"v":1,"salt":"AAAAAAAAAAAAAAAAAAAAAA==",` +
		`"scrypt_N":1125899906842624,"scrypt_r":8,"scrypt_p":1,"cipher":"AAAAAAAAAAAAAAAAAAAAAAAAAAAA"}}`)

	var err error
	require.NotPanics(t, func() { _, err = codec.Import(data, "pw") })
	require.ErrorIs(t, err, domain.ErrInvalidProfileFile)
}
