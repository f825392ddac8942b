package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zetra/internal/clipboard"
	"zetra/internal/domain"
)

type cli struct {
	t    *testing.T
	home string
	clip *clipboard.Recorder
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	rec := &clipboard.Recorder{}
	prev := clip
	clip = rec
	t.Cleanup(func() { clip = prev })
	return &cli{t: t, home: filepath.Join(t.TempDir(), "zetra"), clip: rec}
}

func (c *cli) run(stdin string, args ...string) (string, string, error) {
	c.t.Helper()
	var stdout, stderr bytes.Buffer
	args = append([]string{"--home", c.home, "--log-level", "error"}, args...)
	err := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, errOut, err := c.run("", args...)
	require.NoError(c.t, err, errOut)
	return out
}

func TestCLI_CreateShowCopy(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("create", "--name", "ada", "--color", "#ff7a00")
	assert.Contains(t, out, "ada")

	id := strings.TrimSpace(c.mustRun("id"))
	assert.Regexp(t, `^ZET-[0-9A-F]{4}-[0-9A-F]{4}-[0-9A-F]{3}$`, id)

	var view domain.PublicView
	require.NoError(t, json.Unmarshal([]byte(c.mustRun("show", "--json")), &view))
	assert.Equal(t, id, view.ID.String())
	assert.Equal(t, "#ff7a00", view.Color)
	assert.Empty(t, view.PublicKey.D)

	assert.Equal(t, id, strings.TrimSpace(c.mustRun("copy")))
	last, ok := c.clip.Last()
	require.True(t, ok)
	assert.Equal(t, id, last)
}

func TestCLI_CopyFailureStillPrintsID(t *testing.T) {
	c := newCLI(t)
	c.mustRun("create")
	c.clip.Err = assert.AnError

	out, errOut, err := c.run("", "copy")
	require.NoError(t, err)
	assert.Regexp(t, `^ZET-`, out)
	assert.Contains(t, errOut, "Copy failed.")
}

func TestCLI_ExportResetRecover(t *testing.T) {
	c := newCLI(t)
	c.mustRun("create", "--name", "grace")
	id := strings.TrimSpace(c.mustRun("id"))

	dir := t.TempDir()
	path := strings.TrimSpace(c.mustRun("export", "--out", dir))
	assert.Equal(t, filepath.Join(dir, id+".zetra.json"), path)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	c.mustRun("reset", "--yes")
	_, errOut, err := c.run("", "id")
	require.ErrorIs(t, err, domain.ErrNoProfile)
	assert.Contains(t, errOut, "No saved identity found on this device.")

	c.mustRun("import", path)
	assert.Equal(t, id, strings.TrimSpace(c.mustRun("id")))
}

func TestCLI_SealedExport(t *testing.T) {
	c := newCLI(t)
	c.mustRun("create")
	id := strings.TrimSpace(c.mustRun("id"))

	_, _, err := c.run("", "export", "--seal")
	require.ErrorIs(t, err, domain.ErrPassphraseRequired)

	path := filepath.Join(t.TempDir(), "backup.json")
	c.mustRun("export", "--seal", "-p", "tr0ub4dor", "--out", path)
	c.mustRun("reset", "--yes")

	_, errOut, err := c.run("", "recover", path)
	require.ErrorIs(t, err, domain.ErrPassphraseRequired)
	assert.Contains(t, errOut, "sealed")

	c.mustRun("recover", path, "-p", "tr0ub4dor")
	assert.Equal(t, id, strings.TrimSpace(c.mustRun("id")))
}

func TestCLI_RecoverInvalidKeepsProfile(t *testing.T) {
	c := newCLI(t)
	c.mustRun("create")
	id := strings.TrimSpace(c.mustRun("id"))

	bad := filepath.Join(t.TempDir(), "bad.zetra.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"zetra_profile":{"id":"ZET-0000-0000-000"}}`), 0o600))

	_, errOut, err := c.run("", "recover", bad)
	require.ErrorIs(t, err, domain.ErrInvalidProfileFile)
	assert.Contains(t, errOut, "Invalid profile file.")
	assert.Equal(t, id, strings.TrimSpace(c.mustRun("id")))
}

func TestCLI_CancelledFlowsAreNoOps(t *testing.T) {
	c := newCLI(t)
	c.mustRun("create")
	id := strings.TrimSpace(c.mustRun("id"))

	_, _, err := c.run("n\n", "reset")
	require.NoError(t, err)
	_, _, err = c.run("", "recover")
	require.NoError(t, err)

	assert.Equal(t, id, strings.TrimSpace(c.mustRun("id")))

	_, _, err = c.run("y\n", "reset")
	require.NoError(t, err)
	_, _, err = c.run("", "id")
	require.ErrorIs(t, err, domain.ErrNoProfile)
}

func TestCLI_RecoverFromStdin(t *testing.T) {
	c := newCLI(t)
	c.mustRun("create")
	id := strings.TrimSpace(c.mustRun("id"))
	exported := c.mustRun("export", "--out", "-")
	c.mustRun("reset", "-y")

	_, errOut, err := c.run(exported, "recover", "-")
	require.NoError(t, err, errOut)
	assert.Equal(t, id, strings.TrimSpace(c.mustRun("id")))
}

func TestCLI_ShowEmpty(t *testing.T) {
	c := newCLI(t)
	assert.Contains(t, c.mustRun("show"), "No saved identity found on this device.")
}

func TestCLI_StorageKeyIsolation(t *testing.T) {
	c := newCLI(t)
	c.mustRun("--storage-key", "work", "create")

	_, _, err := c.run("", "id")
	require.ErrorIs(t, err, domain.ErrNoProfile)
	c.mustRun("--storage-key", "work", "id")
}
