package installer

import (
	"fmt"
	"os"
	"path/filepath"

	"fmm-setup/internal/logger"
)

// PluginDir is where the plugin lives inside a WordPress root.
func PluginDir(wpPath, slug string) string {
	return filepath.Join(wpPath, "wp-content", "plugins", slug)
}

// PluginStages returns the stages that install the plugin into wpPath.
// Any existing plugin folder is replaced. Manifest items missing from the
// bundle are skipped with a warning.
func PluginStages(src *Source, wpPath string) []Stage {
	pluginDir := PluginDir(wpPath, src.Manifest.PluginSlug)

	return []Stage{
		{
			Label:    "Creating plugin folder...",
			Progress: 0.10,
			Run: func() error {
				logger.Debug("[DEBUG] Recreating %s\n", pluginDir)
				if err := os.RemoveAll(pluginDir); err != nil {
					return fmt.Errorf("remove existing plugin folder: %w", err)
				}
				return os.MkdirAll(pluginDir, 0o755)
			},
		},
		{
			Label:    "Copying plugin files...",
			Progress: 0.40,
			Run: func() error {
				return copyPluginFiles(src, pluginDir)
			},
		},
		{
			Label:    "Setting permissions...",
			Progress: 0.70,
			Run: func() error {
				return normalizePermissions(pluginDir)
			},
		},
		{
			Label:    "Plugin installed successfully!",
			Progress: 1,
		},
	}
}

func copyPluginFiles(src *Source, pluginDir string) error {
	copied := 0
	for _, item := range src.Manifest.PluginFiles {
		from := src.Path(item)
		if _, err := os.Stat(from); err != nil {
			logger.Warn("[WARN] %s not found in bundle. Skipping.\n", item)
			continue
		}
		to := filepath.Join(pluginDir, item)
		logger.Debug("[DEBUG] Copying %s -> %s\n", from, to)
		if err := copyItem(from, to); err != nil {
			return fmt.Errorf("copy %s: %w", item, err)
		}
		copied++
	}
	logger.Info("[INFO] Copied %d of %d plugin items to %s\n", copied, len(src.Manifest.PluginFiles), pluginDir)
	return nil
}
