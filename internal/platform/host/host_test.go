package host

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReal_Run(t *testing.T) {
	t.Parallel()
	sys := NewReal()

	out, err := sys.Run(context.Background(), "echo", "hello")
	require.NoError(t, err)
	assert.Contains(t, out, "hello")
}

func TestReal_Run_Failure(t *testing.T) {
	t.Parallel()
	sys := NewReal()

	_, err := sys.Run(context.Background(), "false")
	assert.Error(t, err)
}

func TestReal_RunInput(t *testing.T) {
	t.Parallel()
	sys := NewReal()

	out, err := sys.RunInput(context.Background(), "from stdin\n", "cat")
	require.NoError(t, err)
	assert.Equal(t, "from stdin\n", out)
}

func TestReal_FileOperations(t *testing.T) {
	t.Parallel()
	sys := NewReal()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.txt")

	assert.False(t, sys.FileExists(path))

	require.NoError(t, sys.WriteFile(path, []byte("content"), 0o644))
	assert.True(t, sys.FileExists(path))

	data, err := sys.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))

	dst := filepath.Join(dir, "config.txt.backup")
	require.NoError(t, sys.CopyFile(path, dst))

	copied, err := sys.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "content", string(copied))
}

func TestReal_CopyFile_MissingSource(t *testing.T) {
	t.Parallel()
	sys := NewReal()

	err := sys.CopyFile(filepath.Join(t.TempDir(), "missing"), filepath.Join(t.TempDir(), "dst"))
	assert.Error(t, err)
}

func TestReal_EffectiveUID(t *testing.T) {
	t.Parallel()
	sys := NewReal()
	assert.Equal(t, os.Geteuid(), sys.EffectiveUID())
}

func TestReal_LookPath(t *testing.T) {
	t.Parallel()
	sys := NewReal()

	_, err := sys.LookPath("sh")
	assert.NoError(t, err)

	_, err = sys.LookPath("definitely-not-a-binary-xyz")
	assert.Error(t, err)
}
