package config

import (
	"encoding/json" // For JSON encoding and decoding of the config file
	"fmt"
	"os"
	"path/filepath"

	"fmm-setup/internal/fsutil"
	"fmm-setup/internal/logger"
)

// redirectPath is appended to the site URL to form the OAuth redirect URI
// registered in Google Cloud Console.
const redirectPath = "/wp-admin/admin.php?page=family-media-manager-settings&action=oauth_callback"

// RedirectURI returns the OAuth callback URL for a WordPress site.
func RedirectURI(wpURL string) string {
	return wpURL + redirectPath
}

// DefaultPath returns ~/.fmm-setup/config.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".fmm-setup", "config.json"), nil
}

// Load reads a saved InstallConfig from path.
func Load(path string) (InstallConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return InstallConfig{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg InstallConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return InstallConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as 2-space indented JSON, creating the parent
// directory. The redirect URI is always derived from the site URL. The file
// holds the OAuth secret, so it is only readable by the owner.
func Save(path string, cfg InstallConfig) error {
	cfg.RedirectURI = RedirectURI(cfg.WordPressURL)

	file, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	logger.Debug("[DEBUG] Writing config to %s:\n%s\n", path, string(cfg.Masked().mustJSON()))

	if err := fsutil.WriteFile(path, file, 0o600); err != nil {
		return err
	}
	logger.Info("[INFO] Saved configuration to %s\n", path)
	return nil
}

func (c InstallConfig) mustJSON() []byte {
	b, _ := json.MarshalIndent(c, "", "  ")
	return b
}
