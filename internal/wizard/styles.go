package wizard

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	colorPrimary = lipgloss.Color("#0066CC") // Header and primary actions
	colorText    = lipgloss.Color("#E5E7EB")
	colorDim     = lipgloss.Color("#6B7280") // Hints and secondary text
	colorSuccess = lipgloss.Color("#10B981")
	colorError   = lipgloss.Color("#EF4444")
	colorWhite   = lipgloss.Color("#FFFFFF")
)

// Styles
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite).
			Background(colorPrimary).
			Padding(0, 2)

	stepStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(colorPrimary).
			Padding(0, 2)

	contentStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Padding(1, 2)

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText)

	hintStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(colorDim)

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSuccess)

	keyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Padding(0, 2)

	pathBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(1, 2)

	errorDialogStyle = dialogStyle.
				BorderForeground(colorError)

	dialogTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorPrimary).
				MarginBottom(1)

	errorTitleStyle = dialogTitleStyle.
			Foreground(colorError)
)
