package installer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fmm-setup/internal/fsutil"
	"fmm-setup/internal/logger"
)

// Htaccess is written to the mobile app folder. A PWA only works over HTTPS,
// and the service worker must never be served from cache.
const Htaccess = `# Force HTTPS (required for PWA)
RewriteEngine On
RewriteCond %{HTTPS} off
RewriteRule ^ https://%{HTTP_HOST}%{REQUEST_URI} [L,R=301]

# Service Worker
<Files "service-worker.js">
    Header set Service-Worker-Allowed "/"
    Header set Cache-Control "max-age=0, no-cache, no-store, must-revalidate"
</Files>

# Cache static assets
<FilesMatch "\.(css|js|jpg|jpeg|png|gif|webp)$">
    Header set Cache-Control "max-age=31536000, public"
</FilesMatch>
`

// ErrPWABundleMissing is returned when the bundle has no mobile app folder.
var ErrPWABundleMissing = errors.New("mobile app files not found in the setup bundle")

// PWAStages returns the stages that install the mobile app into pwaPath and
// point it at wpURL.
func PWAStages(src *Source, pwaPath, wpURL string) []Stage {
	pwaSrc := src.Path(src.Manifest.PWADir)

	return []Stage{
		{
			Label:    "Creating mobile app folder...",
			Progress: 0.10,
			Run: func() error {
				return os.MkdirAll(pwaPath, 0o755)
			},
		},
		{
			Label:    "Copying app files...",
			Progress: 0.40,
			Run: func() error {
				return copyPWAFiles(pwaSrc, pwaPath)
			},
		},
		{
			Label:    "Configuring API connection...",
			Progress: 0.60,
			Run: func() error {
				return configureAPIBase(filepath.Join(pwaPath, src.Manifest.APIFile), src.Manifest.APIToken, wpURL)
			},
		},
		{
			Label:    "Creating .htaccess file...",
			Progress: 0.80,
			Run: func() error {
				return fsutil.WriteFile(filepath.Join(pwaPath, ".htaccess"), []byte(Htaccess), 0o644)
			},
		},
		{
			Label:    "Mobile app installed successfully!",
			Progress: 1,
		},
	}
}

// copyPWAFiles copies every top-level entry of the bundle's pwa folder into
// pwaPath. Other files already in pwaPath are left alone.
func copyPWAFiles(pwaSrc, pwaPath string) error {
	entries, err := os.ReadDir(pwaSrc)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrPWABundleMissing, pwaSrc)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", pwaSrc, err)
	}

	for _, e := range entries {
		from := filepath.Join(pwaSrc, e.Name())
		to := filepath.Join(pwaPath, e.Name())
		if err := copyItem(from, to); err != nil {
			return fmt.Errorf("copy %s: %w", e.Name(), err)
		}
	}
	logger.Info("[INFO] Copied %d app entries to %s\n", len(entries), pwaPath)
	return nil
}

// configureAPIBase swaps the token in the app script for the quoted site URL
// so the app talks to WordPress even when served from another origin.
// A bundle without the script is tolerated.
func configureAPIBase(path, token, wpURL string) error {
	n, err := replaceInFile(path, token, "'"+wpURL+"'")
	if errors.Is(err, os.ErrNotExist) {
		logger.Warn("[WARN] %s not found. The app will use its own origin as the API base.\n", path)
		return nil
	}
	if err != nil {
		return err
	}
	logger.Debug("[DEBUG] Replaced %d occurrence(s) of %s in %s\n", n, token, path)
	return nil
}
