// Package wizard implements the interactive setup wizard.
//
// The wizard is a single bubbletea model that walks through a fixed,
// linear sequence of screens. Install steps run as a chain of commands,
// one per installer stage, so the progress bar advances as files are
// copied. Errors are shown in a modal dialog and leave the user on the
// screen that started the step.
package wizard

import (
	"errors"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"fmm-setup/internal/config"
	"fmm-setup/internal/installer"
)

// ErrCancelled is returned by Run when the user quits before setup completes.
var ErrCancelled = errors.New("setup cancelled")

const (
	totalSteps   = 7
	defaultWidth = 72
)

type screen int

const (
	screenWelcome screen = iota
	screenWordPressPath
	screenPluginInstall
	screenURL
	screenPWAChoice
	screenPWAPath
	screenPWAInstall
	screenGoogleSetup
	screenCredentials
	screenSaving
	screenComplete
)

// stepNumbers maps each screen to the "Step N of 7" shown in the header.
var stepNumbers = map[screen]int{
	screenWelcome:       1,
	screenWordPressPath: 2,
	screenPluginInstall: 3,
	screenURL:           4,
	screenPWAChoice:     5,
	screenPWAPath:       5,
	screenPWAInstall:    5,
	screenGoogleSetup:   6,
	screenCredentials:   7,
	screenSaving:        7,
	screenComplete:      7,
}

type dialogKind int

const (
	dialogInfo dialogKind = iota
	dialogError
	dialogInstructions
)

// dialog is a modal overlay. While one is open the screen underneath gets no input.
type dialog struct {
	kind  dialogKind
	title string
	body  string
	next  screen // where dismissing the dialog leads
}

type stepKind int

const (
	stepPlugin stepKind = iota
	stepPWA
	stepSave
)

// step tracks an install step while its stages run.
type step struct {
	kind   stepKind
	stages []installer.Stage
	index  int
	origin screen // screen to return to on failure
}

// Options configure a wizard run.
type Options struct {
	Source     *installer.Source
	ConfigPath string
	// OpenURL opens a link in the user's browser. Nil disables the shortcut.
	OpenURL func(url string) error
}

// Model is the bubbletea model for the wizard.
type Model struct {
	opts   Options
	screen screen
	cfg    config.InstallConfig

	pathInput  textinput.Model   // WordPress and mobile app folders
	urlInput   textinput.Model
	credInputs []textinput.Model // client ID, client secret
	credFocus  int
	progress   progress.Model
	percent    float64
	stageLabel string
	running    *step
	dialog     *dialog
	completed  bool
	cancelled  bool
	width      int
	statusLine string
}

// stageDoneMsg reports the outcome of one stage.
type stageDoneMsg struct {
	kind  stepKind
	index int
	err   error
}

// New creates the wizard positioned on the welcome screen.
func New(opts Options) Model {
	path := textinput.New()
	path.Prompt = "› "
	path.Placeholder = "/var/www/html/wordpress"
	path.CharLimit = 4096
	path.Width = defaultWidth - 4

	url := textinput.New()
	url.Prompt = "› "
	url.CharLimit = 2048
	url.Width = defaultWidth - 4
	url.SetValue("https://")

	id := textinput.New()
	id.Prompt = "› "
	id.Placeholder = "123456-abc.apps.googleusercontent.com"
	id.CharLimit = 512
	id.Width = defaultWidth - 4

	secret := textinput.New()
	secret.Prompt = "› "
	secret.Placeholder = "GOCSPX-abc123..."
	secret.CharLimit = 512
	secret.Width = defaultWidth - 4
	secret.EchoMode = textinput.EchoPassword
	secret.EchoCharacter = '•'

	return Model{
		opts:       opts,
		screen:     screenWelcome,
		pathInput:  path,
		urlInput:   url,
		credInputs: []textinput.Model{id, secret},
		progress:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(defaultWidth-8)),
		width:      defaultWidth,
	}
}

// Config returns the configuration collected so far.
func (m Model) Config() config.InstallConfig {
	return m.cfg
}

// Completed reports whether the configuration was saved.
func (m Model) Completed() bool {
	return m.completed
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = min(msg.Width, 100)
		inner := max(m.width-4, 20)
		m.pathInput.Width = inner
		m.urlInput.Width = inner
		for i := range m.credInputs {
			m.credInputs[i].Width = inner
		}
		m.progress.Width = max(m.width-8, 10)
		return m, nil

	case stageDoneMsg:
		return m.handleStageDone(msg)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.cancelled = !m.completed
			return m, tea.Quit
		}
		if m.dialog != nil {
			return m.handleDialogKey(msg)
		}
		return m.handleKey(msg)
	}

	return m.updateFocusedInput(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.statusLine = ""

	switch m.screen {
	case screenWelcome:
		switch msg.String() {
		case "enter":
			return m.gotoWordPressPath()
		case "esc", "q":
			m.cancelled = true
			return m, tea.Quit
		}
		return m, nil

	case screenWordPressPath:
		switch msg.Type {
		case tea.KeyEnter:
			return m.submitWordPressPath()
		case tea.KeyEsc:
			m.screen = screenWelcome
			return m, nil
		}

	case screenURL:
		switch msg.Type {
		case tea.KeyEnter:
			return m.submitURL()
		case tea.KeyEsc:
			return m.gotoWordPressPath()
		}

	case screenPWAChoice:
		switch msg.String() {
		case "enter", "y", "Y":
			return m.gotoPWAPath()
		case "n", "N", "s", "S":
			return m.skipPWA()
		case "esc":
			return m.gotoURL()
		}
		return m, nil

	case screenPWAPath:
		switch msg.Type {
		case tea.KeyEnter:
			return m.submitPWAPath()
		case tea.KeyEsc:
			m.screen = screenPWAChoice
			return m, nil
		}

	case screenGoogleSetup:
		switch msg.String() {
		case "enter":
			m.dialog = &dialog{
				kind:  dialogInstructions,
				title: "Google Cloud Setup Instructions",
				body:  renderMarkdown(instructionsMarkdown(m.cfg.WordPressURL), m.width-6),
				next:  screenCredentials,
			}
			return m, nil
		case "esc":
			if m.cfg.InstallPWA {
				return m.gotoPWAPath()
			}
			m.screen = screenPWAChoice
			return m, nil
		}
		return m, nil

	case screenCredentials:
		switch msg.String() {
		case "enter":
			if m.credFocus == 0 && m.credInputs[1].Value() == "" {
				return m.focusCredential(1)
			}
			return m.submitCredentials()
		case "tab", "down":
			return m.focusCredential((m.credFocus + 1) % len(m.credInputs))
		case "shift+tab", "up":
			return m.focusCredential((m.credFocus + len(m.credInputs) - 1) % len(m.credInputs))
		case "esc":
			m.screen = screenGoogleSetup
			return m, nil
		}

	case screenComplete:
		switch msg.String() {
		case "enter", "esc", "q":
			return m, tea.Quit
		}
		return m, nil

	case screenPluginInstall, screenPWAInstall, screenSaving:
		// Stages are running; only ctrl+c is honoured.
		return m, nil
	}

	return m.updateFocusedInput(msg)
}

func (m Model) handleDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "o":
		if m.dialog.kind == dialogInstructions && m.opts.OpenURL != nil {
			if err := m.opts.OpenURL(GoogleConsoleURL); err != nil {
				m.statusLine = "Could not open a browser: " + err.Error()
			} else {
				m.statusLine = "Opened " + GoogleConsoleURL
			}
		}
		return m, nil
	case "enter", "esc", " ":
		d := m.dialog
		m.dialog = nil
		m.statusLine = ""
		if d.kind == dialogError {
			return m, nil
		}
		return m.enter(d.next)
	}
	return m, nil
}

// enter switches to s, focusing the screen's inputs.
func (m Model) enter(s screen) (tea.Model, tea.Cmd) {
	switch s {
	case screenURL:
		return m.gotoURL()
	case screenCredentials:
		m.screen = screenCredentials
		return m.focusCredential(0)
	}
	m.screen = s
	return m, nil
}

func (m Model) gotoWordPressPath() (tea.Model, tea.Cmd) {
	m.screen = screenWordPressPath
	m.pathInput.Placeholder = "/var/www/html/wordpress"
	m.pathInput.SetValue(m.cfg.WordPressPath)
	m.pathInput.CursorEnd()
	return m, m.pathInput.Focus()
}

func (m Model) gotoURL() (tea.Model, tea.Cmd) {
	m.screen = screenURL
	if m.cfg.WordPressURL != "" {
		m.urlInput.SetValue(m.cfg.WordPressURL)
	}
	m.urlInput.CursorEnd()
	return m, m.urlInput.Focus()
}

func (m Model) gotoPWAPath() (tea.Model, tea.Cmd) {
	m.screen = screenPWAPath
	m.pathInput.Placeholder = "/var/www/html/gallery"
	m.pathInput.SetValue(m.cfg.PWAPath)
	m.pathInput.CursorEnd()
	return m, m.pathInput.Focus()
}

func (m Model) skipPWA() (tea.Model, tea.Cmd) {
	m.cfg.SkipPWA()
	m.screen = screenGoogleSetup
	return m, nil
}

func (m Model) focusCredential(i int) (tea.Model, tea.Cmd) {
	m.credFocus = i
	var cmd tea.Cmd
	for j := range m.credInputs {
		if j == i {
			cmd = m.credInputs[j].Focus()
		} else {
			m.credInputs[j].Blur()
		}
	}
	return m, cmd
}

func (m Model) submitWordPressPath() (tea.Model, tea.Cmd) {
	marker := config.DefaultManifest().MarkerFile
	if m.opts.Source != nil {
		marker = m.opts.Source.Manifest.MarkerFile
	}
	dir, err := installer.ValidateWordPressRoot(m.pathInput.Value(), marker)
	if err != nil {
		return m.showError("Invalid WordPress Folder", validationMessage(err, marker)), nil
	}
	m.cfg.WordPressPath = dir
	if m.opts.Source == nil {
		return m.showError("Installation Error", "No setup bundle is loaded."), nil
	}
	return m.startStep(stepPlugin, screenPluginInstall, installer.PluginStages(m.opts.Source, dir))
}

func (m Model) submitURL() (tea.Model, tea.Cmd) {
	url, err := installer.NormalizeURL(m.urlInput.Value())
	if err != nil {
		return m.showError("Required", sentence(err)), nil
	}
	m.cfg.WordPressURL = url
	m.urlInput.SetValue(url)
	m.urlInput.Blur()
	m.screen = screenPWAChoice
	return m, nil
}

func (m Model) submitPWAPath() (tea.Model, tea.Cmd) {
	dir, err := installer.ValidateTargetDir(m.pathInput.Value())
	if err != nil {
		if errors.Is(err, installer.ErrPathRequired) {
			return m.showError("Required", "Please select a PWA installation folder."), nil
		}
		return m.showError("Invalid Folder", sentence(err)), nil
	}
	if m.opts.Source == nil {
		return m.showError("Installation Error", "No setup bundle is loaded."), nil
	}
	m.cfg.PWAPath = dir
	return m.startStep(stepPWA, screenPWAInstall, installer.PWAStages(m.opts.Source, dir, m.cfg.WordPressURL))
}

func (m Model) submitCredentials() (tea.Model, tea.Cmd) {
	id, secret, err := installer.ValidateCredentials(m.credInputs[0].Value(), m.credInputs[1].Value())
	if err != nil {
		return m.showError("Required Fields", "Both Client ID and Client Secret are required!"), nil
	}
	m.cfg.GoogleClientID = id
	m.cfg.GoogleClientSecret = secret
	m.cfg.RedirectURI = config.RedirectURI(m.cfg.WordPressURL)
	return m.startStep(stepSave, screenSaving, installer.SaveConfigStages(m.opts.ConfigPath, m.cfg))
}

func (m Model) showError(title, body string) Model {
	m.dialog = &dialog{kind: dialogError, title: title, body: body}
	return m
}

// updateFocusedInput forwards msg to whichever text input the screen shows.
func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.screen {
	case screenWordPressPath, screenPWAPath:
		m.pathInput, cmd = m.pathInput.Update(msg)
	case screenURL:
		m.urlInput, cmd = m.urlInput.Update(msg)
	case screenCredentials:
		m.credInputs[m.credFocus], cmd = m.credInputs[m.credFocus].Update(msg)
	}
	return m, cmd
}
