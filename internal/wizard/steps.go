package wizard

import (
	"errors"
	"fmt"
	"os"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	"fmm-setup/internal/installer"
	"fmm-setup/internal/logger"
)

// startStep switches to the progress screen s and runs the first stage.
func (m Model) startStep(kind stepKind, s screen, stages []installer.Stage) (tea.Model, tea.Cmd) {
	m.running = &step{kind: kind, stages: stages, origin: m.screen}
	m.screen = s
	m.percent = 0
	m.stageLabel = ""
	m.pathInput.Blur()
	m.urlInput.Blur()
	for i := range m.credInputs {
		m.credInputs[i].Blur()
	}
	if len(stages) == 0 {
		return m.finishStep()
	}
	m.stageLabel = stages[0].Label
	return m, runStage(kind, 0, stages[0])
}

// runStage wraps one stage in a command that reports back with a stageDoneMsg.
func runStage(kind stepKind, index int, st installer.Stage) tea.Cmd {
	return func() tea.Msg {
		logger.Info("[INFO] %s\n", st.Label)
		var err error
		if st.Run != nil {
			err = st.Run()
		}
		if err != nil {
			logger.Error("[ERROR] %s failed: %v\n", st.Label, err)
		}
		return stageDoneMsg{kind: kind, index: index, err: err}
	}
}

func (m Model) handleStageDone(msg stageDoneMsg) (tea.Model, tea.Cmd) {
	run := m.running
	if run == nil || run.kind != msg.kind || run.index != msg.index {
		// Stale result from a step that no longer runs.
		return m, nil
	}

	if msg.err != nil {
		m.running = nil
		m.screen = run.origin
		title, prefix := "Installation Error", "Error installing plugin"
		switch run.kind {
		case stepPWA:
			prefix = "Error installing PWA"
		case stepSave:
			title, prefix = "Error", "Error saving configuration"
		}
		m.dialog = &dialog{kind: dialogError, title: title, body: fmt.Sprintf("%s:\n\n%v", prefix, msg.err)}
		return m, m.refocus()
	}

	m.percent = run.stages[msg.index].Progress
	next := msg.index + 1
	if next >= len(run.stages) {
		return m.finishStep()
	}

	// Copy so the previous model value keeps its own cursor.
	advanced := *run
	advanced.index = next
	m.running = &advanced
	m.stageLabel = run.stages[next].Label
	return m, runStage(run.kind, next, run.stages[next])
}

func (m Model) finishStep() (tea.Model, tea.Cmd) {
	run := m.running
	m.running = nil
	m.percent = 1

	switch run.kind {
	case stepPlugin:
		m.dialog = &dialog{
			kind:  dialogInfo,
			title: "Plugin Installed",
			body:  "Plugin files have been installed successfully!\n\nNext: You'll need to activate it in WordPress.",
			next:  screenURL,
		}
	case stepPWA:
		m.cfg.InstallPWA = true
		m.dialog = &dialog{
			kind:  dialogInfo,
			title: "PWA Installed",
			body:  fmt.Sprintf("Mobile app installed to:\n%s\n\nMake sure HTTPS is enabled (required for PWA)", m.cfg.PWAPath),
			next:  screenGoogleSetup,
		}
	case stepSave:
		m.completed = true
		m.screen = screenComplete
	}
	return m, nil
}

// refocus gives keyboard focus back to the input of the current screen.
func (m *Model) refocus() tea.Cmd {
	switch m.screen {
	case screenWordPressPath, screenPWAPath:
		return m.pathInput.Focus()
	case screenURL:
		return m.urlInput.Focus()
	case screenCredentials:
		return m.credInputs[m.credFocus].Focus()
	}
	return nil
}

// validationMessage turns a folder validation error into dialog text.
func validationMessage(err error, marker string) string {
	switch {
	case errors.Is(err, installer.ErrPathRequired):
		return "Please select a WordPress folder."
	case errors.Is(err, os.ErrPermission):
		return "This folder cannot be read. Check its permissions and try again."
	case errors.Is(err, installer.ErrMarkerMissing), errors.Is(err, installer.ErrNotDirectory):
		return fmt.Sprintf("We couldn't find %s in this folder.\n\nPlease select the correct WordPress installation folder.", marker)
	}
	return sentence(err)
}

// sentence capitalises an error message for display.
func sentence(err error) string {
	msg := []rune(err.Error())
	if len(msg) == 0 {
		return ""
	}
	msg[0] = unicode.ToUpper(msg[0])
	return string(msg) + "."
}
