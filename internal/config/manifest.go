package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"fmm-setup/internal/logger"
)

// ManifestFile is the optional file at the bundle root that overrides DefaultManifest.
const ManifestFile = "fmm-setup.yaml"

// DefaultManifest matches the layout of the Family Media Manager release bundle.
func DefaultManifest() Manifest {
	return Manifest{
		PluginSlug:  "family-media-manager",
		MarkerFile:  "wp-config.php",
		PluginFiles: []string{"family-media-manager.php", "includes", "admin", "public"},
		PWADir:      "pwa",
		APIFile:     filepath.Join("js", "app.js"),
		APIToken:    "window.location.origin",
	}
}

// LoadManifest returns the manifest for the bundle at root. Fields present in
// root/fmm-setup.yaml override the defaults; a missing file is not an error.
func LoadManifest(root string) (Manifest, error) {
	m := DefaultManifest()
	path := filepath.Join(root, ManifestFile)

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Debug("[DEBUG] No %s in %s, using defaults\n", ManifestFile, root)
		return m, nil
	}
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest %s: %w", path, err)
	}

	// Expected structure: manifest: { plugin_slug: ..., plugin_files: [...], ... }
	wrapper := struct {
		Manifest Manifest `yaml:"manifest"`
	}{Manifest: m}
	if err := yaml.Unmarshal(raw, &wrapper); err != nil {
		return Manifest{}, fmt.Errorf("unmarshal manifest %s: %w", path, err)
	}
	m = wrapper.Manifest
	if err := m.validate(); err != nil {
		return Manifest{}, fmt.Errorf("manifest %s: %w", path, err)
	}

	logger.Debug("[DEBUG] Loaded manifest from %s: %+v\n", path, m)
	return m, nil
}

func (m Manifest) validate() error {
	switch {
	case m.PluginSlug == "":
		return errors.New("plugin_slug is empty")
	case filepath.Base(m.PluginSlug) != m.PluginSlug || m.PluginSlug == "." || m.PluginSlug == "..":
		return fmt.Errorf("plugin_slug %q must be a single directory name", m.PluginSlug)
	case m.MarkerFile == "":
		return errors.New("marker_file is empty")
	case len(m.PluginFiles) == 0:
		return errors.New("plugin_files is empty")
	case m.PWADir == "":
		return errors.New("pwa_dir is empty")
	}
	return nil
}
