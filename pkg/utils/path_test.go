package utils

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDataPath_UsesHomeEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv(HomeEnv, home)

	assert.Equal(t, filepath.Join(home, "data", "badger"), ResolveDataPath("data/badger"))
	assert.Equal(t, "/abs/path", ResolveDataPath("/abs/path"))
}

func TestEnsureDir_CreatesNested(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	require.NoError(t, EnsureDir(dir))
	assert.DirExists(t, dir)
}
