package installer

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sortedNames(files map[string]string, prefix string) []string {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, prefix+name)
	}
	sort.Strings(names)
	return names
}

func writeZip(t *testing.T, path string, files map[string]string, prefix string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for _, name := range sortedNames(files, prefix) {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(files[name[len(prefix):]]))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
}

func writeTarGz(t *testing.T, path string, files map[string]string, prefix string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	gw := gzip.NewWriter(f)
	tw := tar.NewWriter(gw)
	for _, name := range sortedNames(files, prefix) {
		body := files[name[len(prefix):]]
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     name,
			Mode:     0o644,
			Size:     int64(len(body)),
			Typeflag: tar.TypeReg,
		}))
		_, err := tw.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	require.NoError(t, f.Close())
}

func TestExtractZipWithTopLevelFolder(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "fmm-1.0.zip")
	writeZip(t, archive, bundleFiles, "fmm-1.0/")
	dest := t.TempDir()

	root, err := ExtractArchive(archive, dest)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dest, "fmm-1.0"), root)
	assert.Equal(t, bundleFiles["pwa/js/app.js"], readFile(t, filepath.Join(root, "pwa", "js", "app.js")))
}

func TestExtractTarGzFlat(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "fmm.tar.gz")
	writeTarGz(t, archive, bundleFiles, "")
	dest := t.TempDir()

	root, err := ExtractArchive(archive, dest)
	require.NoError(t, err)
	assert.Equal(t, dest, root)
	assert.FileExists(t, filepath.Join(root, "family-media-manager.php"))
	assert.FileExists(t, filepath.Join(root, "admin", "partials", "settings.php"))
}

func TestExtractRejectsTraversal(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "evil.zip")
	writeZip(t, archive, map[string]string{"../evil.txt": "x"}, "")
	dest := filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.Mkdir(dest, 0o755))

	_, err := ExtractArchive(archive, dest)
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(filepath.Dir(dest), "evil.txt"))
}

func TestExtractUnsupported(t *testing.T) {
	_, err := ExtractArchive("bundle.rar", t.TempDir())
	assert.ErrorContains(t, err, "unsupported archive format")
}

func TestCommonTopLevel(t *testing.T) {
	assert.Equal(t, "fmm", commonTopLevel([]string{"fmm/", "fmm/a.php", "./fmm/pwa/app.js"}))
	assert.Equal(t, "", commonTopLevel([]string{"fmm/a.php", "pwa/app.js"}))
	assert.Equal(t, "", commonTopLevel(nil))
}

func TestOpenSourceArchive(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "fmm-bundle.tgz")
	writeTarGz(t, archive, bundleFiles, "family-media-manager-bundle/")

	src, err := OpenSource(archive)
	require.NoError(t, err)
	root := src.Root
	assert.FileExists(t, src.Path("family-media-manager.php"))
	assert.Equal(t, "family-media-manager", src.Manifest.PluginSlug)

	require.NoError(t, src.Close())
	assert.NoDirExists(t, root)
}

func TestOpenSourceDirectory(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, bundleFiles)

	src, err := OpenSource(root)
	require.NoError(t, err)
	assert.Equal(t, root, src.Root)
	require.NoError(t, src.Close())
	assert.DirExists(t, root)
}

func TestOpenSourceRejectsPlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := OpenSource(path)
	assert.ErrorContains(t, err, "neither a folder nor a supported archive")
}
