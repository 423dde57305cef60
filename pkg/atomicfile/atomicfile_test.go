package atomicfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/soundfolio/creditsync/pkg/atomicfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_WriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a", "b", "projects.json")

	require.NoError(t, atomicfile.WriteFile(path, []byte("first"), 0o644))
	require.NoError(t, atomicfile.WriteFile(path, []byte("second"), 0o600))

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(contents))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files may be left behind")
}

func Test_WriteFile_DirectoryInTheWay(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "projects.json"), 0o755))

	assert.Error(t, atomicfile.WriteFile(filepath.Join(dir, "projects.json"), []byte("x"), 0o644))
}
