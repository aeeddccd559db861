package installer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"fmm-setup/internal/config"
)

// bundleFiles is a minimal release bundle: the plugin entry file, three
// plugin directories and a pwa folder with an app script.
var bundleFiles = map[string]string{
	"family-media-manager.php":    "<?php /* Plugin Name: Family Media Manager */",
	"includes/class-api.php":      "<?php class FMM_API {}",
	"admin/class-admin.php":       "<?php class FMM_Admin {}",
	"admin/partials/settings.php": "<?php // settings",
	"public/class-public.php":     "<?php class FMM_Public {}",
	"pwa/service-worker.js":       "self.addEventListener('install', () => {});",
	"pwa/js/app.js":               "const API_BASE = window.location.origin + '/wp-json/family-gallery/v1';\nfetch(window.location.origin);\n",
	"pwa/js/auth.js":              "// auth",
	"pwa/index.html":              "<html></html>",
	"README.txt":                  "not part of the plugin",
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func newBundle(t *testing.T) *Source {
	t.Helper()
	root := t.TempDir()
	writeTree(t, root, bundleFiles)
	return &Source{Root: root, Manifest: config.DefaultManifest()}
}

func newWordPress(t *testing.T) string {
	t.Helper()
	wp := t.TempDir()
	writeTree(t, wp, map[string]string{
		"wp-config.php":            "<?php define('DB_NAME', 'wp');",
		"wp-content/plugins/.keep": "",
	})
	return wp
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}
