package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"fmm-setup/internal/config"
	"fmm-setup/internal/installer"
	"fmm-setup/internal/logger"
	"fmm-setup/internal/wizard"
)

// rootOptions carries the resolved settings from the persistent pre-run
// hook to whichever command runs.
type rootOptions struct {
	settings config.Settings
}

// newRootCmd builds the `fmm-setup` command tree. Running it without a
// subcommand starts the interactive wizard.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "fmm-setup",
		Short: "Install Family Media Manager on a WordPress site",
		Long: `fmm-setup installs the Family Media Manager WordPress plugin, optionally
installs the mobile app, and saves your Google Drive credentials.

Run it without arguments for the guided setup wizard.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,

		// PersistentPreRunE runs before any subcommand.
		// Settings come from flags, FMM_SETUP_* variables and defaults, in that order.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s, err := config.LoadSettings(cmd.Flags())
			if err != nil {
				return err
			}
			opts.settings = s
			logger.Init(s.Debug, nil)
			logger.Debug("[DEBUG] Settings: %+v\n", s)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWizard(cmd.Context(), opts.settings)
		},
	}

	flags := root.PersistentFlags()
	flags.Bool("debug", false, "Enable debug logging")
	flags.String("source", "", "Setup bundle folder or archive (default: next to the executable)")
	flags.String("config", "", "Where to save the configuration (default: ~/.fmm-setup/config.json)")
	flags.String("log-file", "", "Log file used while the wizard is running (default: ~/.fmm-setup/setup.log)")

	root.AddCommand(newInstallCmd(opts))
	root.AddCommand(newConfigCmd(opts))
	return root
}

// runWizard opens the bundle, then hands the terminal to the wizard. Logs go
// to the log file until the wizard exits.
func runWizard(ctx context.Context, s config.Settings) error {
	src, err := installer.OpenSource(s.Source)
	if err != nil {
		return err
	}
	defer src.Close()

	logFile, err := openLogFile(s.LogFile)
	if err != nil {
		return err
	}
	defer logFile.Close()

	logger.Init(s.Debug, logFile)
	cfg, err := wizard.Run(ctx, wizard.Options{Source: src, ConfigPath: s.ConfigPath})
	logger.Init(s.Debug, nil)

	if errors.Is(err, wizard.ErrCancelled) {
		logger.Warn("[WARN] Setup cancelled. Logs: %s\n", s.LogFile)
		return nil
	}
	if err != nil {
		return err
	}
	logger.Info("[INFO] Setup complete for %s\n", cfg.WordPressURL)
	logger.Info("[INFO] Configuration saved to %s\n", s.ConfigPath)
	return nil
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// Execute builds the command tree and runs it. Interrupts cancel the context
// so the wizard can restore the terminal before exiting.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		logger.Error("[ERROR] %v\n", err)
		os.Exit(1)
	}
}
