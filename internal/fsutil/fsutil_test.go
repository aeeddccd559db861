package fsutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileReplacesContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	require.NoError(t, WriteFile(path, []byte("new"), 0o600))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
}

func TestWriteFileTightensExistingMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX permissions")
	}
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))
	require.NoError(t, os.Chmod(path, 0o644))

	require.NoError(t, WriteFile(path, []byte("new"), 0o600))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandHome("~/sites/wp")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "sites", "wp"), got)

	got, err = ExpandHome("/var/www/html")
	require.NoError(t, err)
	assert.Equal(t, "/var/www/html", got)
}

func TestConfineRelPath(t *testing.T) {
	root := t.TempDir()

	got, err := ConfineRelPath(root, "bundle/pwa/index.html")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "bundle", "pwa", "index.html"), got)

	for _, bad := range []string{"../evil", "a/../../evil", "/etc/passwd", ".."} {
		_, err := ConfineRelPath(root, bad)
		assert.Error(t, err, bad)
	}
}
