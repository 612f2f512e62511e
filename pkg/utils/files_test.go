package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTempSibling(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "song.bmdoc")

	a, b := TempSibling(target), TempSibling(target)
	assert.NotEqual(t, a, b)
	assert.Equal(t, dir, filepath.Dir(a))
	assert.True(t, strings.HasPrefix(filepath.Base(a), ".song.bmdoc."))
	assert.True(t, strings.HasSuffix(a, ".tmp"))
	assert.True(t, SameDir(a, target))
}

func TestMoveFileReplaces(t *testing.T) {
	dir := t.TempDir()
	src, dst := filepath.Join(dir, "src"), filepath.Join(dir, "dst")
	require.NoError(t, os.WriteFile(src, []byte("new"), 0o644))
	require.NoError(t, os.WriteFile(dst, []byte("old"), 0o644))

	require.NoError(t, MoveFile(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
	assert.False(t, FileExists(src))
}

func TestRemoveFileMissing(t *testing.T) {
	assert.NoError(t, RemoveFile(filepath.Join(t.TempDir(), "gone")))
}
