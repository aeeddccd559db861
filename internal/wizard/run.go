package wizard

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/browser"

	"fmm-setup/internal/config"
)

// Run boots the wizard and blocks until it exits. It returns the saved
// configuration, or ErrCancelled if the user quit before the end.
func Run(ctx context.Context, opts Options) (config.InstallConfig, error) {
	if opts.OpenURL == nil {
		// The browser helper echoes to stdout, which the TUI owns.
		browser.Stdout = io.Discard
		browser.Stderr = io.Discard
		opts.OpenURL = browser.OpenURL
	}

	program := tea.NewProgram(New(opts), tea.WithContext(ctx), tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return config.InstallConfig{}, fmt.Errorf("run wizard: %w", err)
	}

	m, ok := final.(Model)
	if !ok || !m.Completed() {
		return config.InstallConfig{}, ErrCancelled
	}
	return m.Config(), nil
}
