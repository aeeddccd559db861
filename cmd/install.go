package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"fmm-setup/internal/config"
	"fmm-setup/internal/installer"
	"fmm-setup/internal/logger"
)

// installFlags are the answers the wizard would otherwise ask for.
type installFlags struct {
	wpPath       string
	wpURL        string
	pwaPath      string
	clientID     string
	clientSecret string
}

// newInstallCmd runs the same steps as the wizard without a terminal UI.
// Leaving out --pwa-path skips the mobile app.
func newInstallCmd(opts *rootOptions) *cobra.Command {
	f := &installFlags{}

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install without the wizard, taking every answer from flags",
		Example: `  fmm-setup install --wp-path /var/www/html/wordpress --wp-url https://photos.example.com \
    --pwa-path /var/www/html/gallery --client-id ID --client-secret SECRET`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(opts.settings, *f)
		},
	}

	cmd.Flags().StringVar(&f.wpPath, "wp-path", "", "WordPress folder (contains wp-config.php)")
	cmd.Flags().StringVar(&f.wpURL, "wp-url", "", "WordPress website address, including http:// or https://")
	cmd.Flags().StringVar(&f.pwaPath, "pwa-path", "", "Folder for the mobile app; omit to skip it")
	cmd.Flags().StringVar(&f.clientID, "client-id", "", "Google OAuth client ID")
	cmd.Flags().StringVar(&f.clientSecret, "client-secret", "", "Google OAuth client secret")
	for _, name := range []string{"wp-path", "wp-url", "client-id", "client-secret"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

// runInstall validates every answer up front, then runs the plugin, mobile
// app and save steps in order, stopping at the first failure.
func runInstall(s config.Settings, f installFlags) error {
	src, err := installer.OpenSource(s.Source)
	if err != nil {
		return err
	}
	defer src.Close()

	wpPath, err := installer.ValidateWordPressRoot(f.wpPath, src.Manifest.MarkerFile)
	if err != nil {
		return err
	}
	wpURL, err := installer.NormalizeURL(f.wpURL)
	if err != nil {
		return err
	}
	clientID, clientSecret, err := installer.ValidateCredentials(f.clientID, f.clientSecret)
	if err != nil {
		return err
	}

	cfg := config.InstallConfig{
		WordPressPath:      wpPath,
		WordPressURL:       wpURL,
		GoogleClientID:     clientID,
		GoogleClientSecret: clientSecret,
	}
	if f.pwaPath != "" {
		if cfg.PWAPath, err = installer.ValidateTargetDir(f.pwaPath); err != nil {
			return err
		}
	}

	if err := installer.RunStages(installer.PluginStages(src, wpPath)); err != nil {
		return fmt.Errorf("install plugin: %w", err)
	}

	if cfg.PWAPath != "" {
		if err := installer.RunStages(installer.PWAStages(src, cfg.PWAPath, wpURL)); err != nil {
			return fmt.Errorf("install mobile app: %w", err)
		}
		cfg.InstallPWA = true
	} else {
		logger.Info("[INFO] Skipping mobile app\n")
		cfg.SkipPWA()
	}

	if err := installer.RunStages(installer.SaveConfigStages(s.ConfigPath, cfg)); err != nil {
		return fmt.Errorf("save configuration: %w", err)
	}

	logger.Info("[INFO] Activate the plugin at %s/wp-admin, then connect Google Drive from Family Gallery > Settings\n", wpURL)
	logger.Info("[INFO] Redirect URI for Google Cloud Console: %s\n", config.RedirectURI(wpURL))
	return nil
}
