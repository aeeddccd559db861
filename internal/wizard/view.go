package wizard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var screenTitles = map[screen]string{
	screenWelcome:       "Welcome to Family Media Manager Setup",
	screenWordPressPath: "Step 1: Select Your WordPress Folder",
	screenPluginInstall: "Installing WordPress Plugin",
	screenURL:           "Step 2: Your WordPress Website Address",
	screenPWAChoice:     "Step 3: Mobile App (Optional)",
	screenPWAPath:       "Where should we install the mobile app?",
	screenPWAInstall:    "Installing Mobile App",
	screenGoogleSetup:   "Step 4: Google Drive Setup",
	screenCredentials:   "Step 5: Enter Your Google Credentials",
	screenSaving:        "Saving Configuration",
	screenComplete:      "Setup Complete!",
}

// View implements tea.Model
func (m Model) View() string {
	if m.cancelled {
		return hintStyle.Render("Setup cancelled.") + "\n"
	}

	var body string
	if m.dialog != nil {
		body = m.renderDialog()
	} else {
		body = m.renderScreen()
	}

	parts := []string{m.renderHeader(), contentStyle.Width(m.width).Render(body)}
	if m.statusLine != "" {
		parts = append(parts, helpStyle.Render(m.statusLine))
	}
	parts = append(parts, helpStyle.Render(m.helpText()))
	return lipgloss.JoinVertical(lipgloss.Left, parts...) + "\n"
}

func (m Model) renderHeader() string {
	title := headerStyle.Width(m.width).Render(screenTitles[m.screen])
	step := stepStyle.Width(m.width).Render(fmt.Sprintf("Step %d of %d", stepNumbers[m.screen], totalSteps))
	return lipgloss.JoinVertical(lipgloss.Left, title, step)
}

func (m Model) renderScreen() string {
	switch m.screen {
	case screenWelcome:
		return welcomeText + "\n\n" + hintStyle.Render("Time needed: 5-10 minutes")

	case screenWordPressPath:
		return wordPressPathText + "\n\n" + labelStyle.Render("WordPress folder:") + "\n" + pathBoxStyle.Render(m.pathInput.View())

	case screenURL:
		return urlText + "\n\n" + labelStyle.Render("WordPress URL:") + "\n" + pathBoxStyle.Render(m.urlInput.View())

	case screenPWAChoice:
		return labelStyle.Render("Do you want to install the mobile app?") + "\n\n" + pwaChoiceText

	case screenPWAPath:
		return pwaPathText + "\n\n" + labelStyle.Render("Mobile app folder:") + "\n" + pathBoxStyle.Render(m.pathInput.View())

	case screenPluginInstall, screenPWAInstall, screenSaving:
		return m.stageLabel + "\n\n" + m.progress.ViewAs(m.percent)

	case screenGoogleSetup:
		return labelStyle.Render("Now let's connect Google Drive") + "\n\n" + googleSetupText

	case screenCredentials:
		var b strings.Builder
		b.WriteString(credentialsText + "\n\n")
		b.WriteString(labelStyle.Render("Client ID:") + "\n")
		b.WriteString(pathBoxStyle.Render(m.credInputs[0].View()) + "\n")
		b.WriteString(hintStyle.Render("Looks like: 123456-abc.apps.googleusercontent.com") + "\n\n")
		b.WriteString(labelStyle.Render("Client Secret:") + "\n")
		b.WriteString(pathBoxStyle.Render(m.credInputs[1].View()) + "\n")
		b.WriteString(hintStyle.Render("Looks like: GOCSPX-abc123..."))
		return b.String()

	case screenComplete:
		return m.renderCompletion()
	}
	return ""
}

func (m Model) renderCompletion() string {
	var b strings.Builder
	b.WriteString(successStyle.Render("Congratulations! Your installation is ready.") + "\n\n")
	b.WriteString(labelStyle.Render("What we did:") + "\n")
	for _, item := range completionItems(m.cfg) {
		b.WriteString("  " + item + "\n")
	}
	b.WriteString("\n" + renderMarkdown(nextStepsMarkdown(m.cfg), m.width-6) + "\n\n")
	b.WriteString(hintStyle.Render("Configuration saved to " + m.opts.ConfigPath))
	return b.String()
}

func (m Model) renderDialog() string {
	d := m.dialog
	box, title := dialogStyle, dialogTitleStyle
	if d.kind == dialogError {
		box, title = errorDialogStyle, errorTitleStyle
	}
	return box.Width(max(m.width-6, 20)).Render(title.Render(d.title) + "\n" + d.body)
}

func (m Model) helpText() string {
	key := func(k, desc string) string { return keyStyle.Render(k) + " " + desc }
	join := func(items ...string) string { return strings.Join(items, "  •  ") }

	if m.dialog != nil {
		if m.dialog.kind == dialogInstructions && m.opts.OpenURL != nil {
			return join(key("o", "open Google Cloud Console"), key("enter", "I have my credentials"))
		}
		return key("enter", "OK")
	}

	switch m.screen {
	case screenWelcome:
		return join(key("enter", "continue"), key("esc", "cancel"))
	case screenWordPressPath, screenURL, screenPWAPath:
		return join(key("enter", "continue"), key("esc", "back"))
	case screenPWAChoice:
		return join(key("y", "yes, install PWA"), key("n", "no, skip PWA"), key("esc", "back"))
	case screenGoogleSetup:
		return join(key("enter", "show me how"), key("esc", "back"))
	case screenCredentials:
		return join(key("tab", "next field"), key("enter", "continue"), key("esc", "back"))
	case screenComplete:
		return key("enter", "finish")
	}
	return key("ctrl+c", "abort")
}
