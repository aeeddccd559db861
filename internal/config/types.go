package config

import "strings"

// InstallConfig is everything the wizard collects. It is built up screen by
// screen and persisted once, as-is, when setup completes.
type InstallConfig struct {
	WordPressPath      string `json:"wp_path"`              // WordPress root (contains wp-config.php)
	WordPressURL       string `json:"wp_url"`               // Public site URL without trailing slash
	PWAPath            string `json:"pwa_path"`             // Mobile app folder; empty when the app was skipped
	InstallPWA         bool   `json:"install_pwa"`          // True only after the mobile app was installed
	GoogleClientID     string `json:"google_client_id"`     // OAuth client ID from Google Cloud Console
	GoogleClientSecret string `json:"google_client_secret"` // OAuth client secret
	RedirectURI        string `json:"redirect_uri"`         // Derived from WordPressURL, see RedirectURI
}

// Masked returns a copy safe for printing: all but the last four characters
// of the client secret are replaced.
func (c InstallConfig) Masked() InstallConfig {
	masked := c
	if n := len(c.GoogleClientSecret); n > 0 {
		keep := 0
		if n > 8 {
			keep = 4
		}
		masked.GoogleClientSecret = strings.Repeat("•", n-keep) + c.GoogleClientSecret[n-keep:]
	}
	return masked
}

// SkipPWA records that the mobile app is not installed.
func (c *InstallConfig) SkipPWA() {
	c.InstallPWA = false
	c.PWAPath = ""
}

// Manifest describes the layout of the source bundle: what makes up the
// plugin, where the mobile app lives and which token gets the site URL.
type Manifest struct {
	PluginSlug  string   `yaml:"plugin_slug"`  // Directory name under wp-content/plugins
	MarkerFile  string   `yaml:"marker_file"`  // File that identifies a WordPress root
	PluginFiles []string `yaml:"plugin_files"` // Bundle-relative files and directories to copy
	PWADir      string   `yaml:"pwa_dir"`      // Bundle-relative mobile app directory
	APIFile     string   `yaml:"api_file"`     // PWA-relative script that holds the API base
	APIToken    string   `yaml:"api_token"`    // Literal replaced with the quoted site URL
}
