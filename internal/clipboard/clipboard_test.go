package clipboard_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zetra/internal/clipboard"
)

func TestRecorder(t *testing.T) {
	var r clipboard.Recorder
	_, ok := r.Last()
	assert.False(t, ok)

	require.NoError(t, r.WriteText("ZET-0000-0000-000"))
	require.NoError(t, r.WriteText("ZET-819B-F128-E98"))
	last, ok := r.Last()
	assert.True(t, ok)
	assert.Equal(t, "ZET-819B-F128-E98", last)

	r.Err = errors.New("denied")
	require.Error(t, r.WriteText("ignored"))
	last, _ = r.Last()
	assert.Equal(t, "ZET-819B-F128-E98", last)
}

func TestNoop(t *testing.T) {
	assert.NoError(t, clipboard.Noop{}.WriteText("anything"))
}
