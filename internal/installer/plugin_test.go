package installer

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPluginStagesInstall(t *testing.T) {
	src := newBundle(t)
	wp := newWordPress(t)

	stages := PluginStages(src, wp)
	require.Len(t, stages, 4)
	assert.Equal(t, []float64{0.10, 0.40, 0.70, 1}, progressOf(stages))

	require.NoError(t, RunStages(stages))

	dir := PluginDir(wp, "family-media-manager")
	assert.Equal(t, bundleFiles["family-media-manager.php"], readFile(t, filepath.Join(dir, "family-media-manager.php")))
	assert.Equal(t, bundleFiles["admin/partials/settings.php"], readFile(t, filepath.Join(dir, "admin", "partials", "settings.php")))
	assert.FileExists(t, filepath.Join(dir, "includes", "class-api.php"))
	assert.FileExists(t, filepath.Join(dir, "public", "class-public.php"))

	// Only manifest items are copied.
	assert.NoFileExists(t, filepath.Join(dir, "README.txt"))
	assert.NoDirExists(t, filepath.Join(dir, "pwa"))
}

func TestPluginStagesOverwriteExisting(t *testing.T) {
	src := newBundle(t)
	wp := newWordPress(t)
	dir := PluginDir(wp, "family-media-manager")
	writeTree(t, dir, map[string]string{
		"family-media-manager.php": "old version",
		"includes/obsolete.php":    "left over from a previous release",
	})

	require.NoError(t, RunStages(PluginStages(src, wp)))

	assert.Equal(t, bundleFiles["family-media-manager.php"], readFile(t, filepath.Join(dir, "family-media-manager.php")))
	assert.NoFileExists(t, filepath.Join(dir, "includes", "obsolete.php"))
}

func TestPluginStagesSkipMissingItems(t *testing.T) {
	src := newBundle(t)
	require.NoError(t, os.RemoveAll(src.Path("public")))
	wp := newWordPress(t)

	require.NoError(t, RunStages(PluginStages(src, wp)))

	dir := PluginDir(wp, "family-media-manager")
	assert.FileExists(t, filepath.Join(dir, "family-media-manager.php"))
	assert.NoDirExists(t, filepath.Join(dir, "public"))
}

func TestPluginStagesFollowSymlinkedFolder(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on Windows")
	}
	src := newBundle(t)
	shared := t.TempDir()
	writeTree(t, shared, map[string]string{"a.php": "<?php // shared", "lib/b.php": "<?php"})
	require.NoError(t, os.RemoveAll(src.Path("includes")))
	require.NoError(t, os.Symlink(shared, src.Path("includes")))

	wp := newWordPress(t)
	require.NoError(t, RunStages(PluginStages(src, wp)))

	dir := filepath.Join(PluginDir(wp, "family-media-manager"), "includes")
	info, err := os.Lstat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir(), "copied as a real folder")
	assert.Equal(t, "<?php // shared", readFile(t, filepath.Join(dir, "a.php")))
	assert.FileExists(t, filepath.Join(dir, "lib", "b.php"))
}

func TestPluginStagesNormalizePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX permissions")
	}
	src := newBundle(t)
	require.NoError(t, os.Chmod(src.Path("includes/class-api.php"), 0o600))
	wp := newWordPress(t)

	require.NoError(t, RunStages(PluginStages(src, wp)))

	info, err := os.Stat(filepath.Join(PluginDir(wp, "family-media-manager"), "includes", "class-api.php"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestRunStagesStopsAtFirstError(t *testing.T) {
	var ran []string
	stages := []Stage{
		{Label: "first...", Run: func() error { ran = append(ran, "first"); return nil }},
		{Label: "second...", Run: func() error { ran = append(ran, "second"); return os.ErrPermission }},
		{Label: "third...", Run: func() error { ran = append(ran, "third"); return nil }},
	}

	err := RunStages(stages)
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.ErrorContains(t, err, "second")
	assert.Equal(t, []string{"first", "second"}, ran)
}

func progressOf(stages []Stage) []float64 {
	out := make([]float64, len(stages))
	for i, st := range stages {
		out[i] = st.Progress
	}
	return out
}
