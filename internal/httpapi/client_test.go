package httpapi_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zetra/internal/domain"
	"zetra/internal/httpapi"
)

func TestClient_RoundTrip(t *testing.T) {
	h, _ := newRouter(t)
	ts := httptest.NewServer(h)
	defer ts.Close()

	ctx := context.Background()
	c := httpapi.NewClient(ts.URL, ts.Client())

	health, err := c.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, testNow.UnixMilli(), health.Timestamp)

	_, ok, err := c.Current(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	created, err := c.Create(ctx, domain.CreateRequest{DisplayName: "Lin"})
	require.NoError(t, err)
	assert.Equal(t, "Lin", created.DisplayName)

	data, filename, err := c.Export(ctx, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, created.ID.String()+".zetra.json", filename)

	require.NoError(t, c.Reset(ctx))
	_, ok, err = c.Current(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = c.Import(ctx, bytes.NewReader(data), "wrong")
	var se *httpapi.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusForbidden, se.Code)
	assert.Equal(t, "Wrong passphrase for this profile file.", se.Message)

	restored, err := c.Import(ctx, bytes.NewReader(data), "s3cret")
	require.NoError(t, err)
	assert.Equal(t, created.ID, restored.ID)
}
