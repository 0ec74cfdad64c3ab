package cli

import "github.com/charmbracelet/lipgloss"

// Brand palette.
var (
	colorPrimary       = lipgloss.Color("#0057D9")
	colorPrimaryLight  = lipgloss.Color("#3B82F6")
	colorAccentLight   = lipgloss.Color("#FF8F5E")
	colorTextSecondary = lipgloss.Color("#64748B")
	colorTextMuted     = lipgloss.Color("#94A3B8")
	colorError         = lipgloss.Color("#EF4444")
	colorSuccess       = lipgloss.Color("#22C55E")
	colorWarning       = lipgloss.Color("#F59E0B")
	colorBorder        = lipgloss.Color("#E2E8F0")
)

var (
	logoStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	accentStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccentLight)
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPrimaryLight)
	subtleStyle  = lipgloss.NewStyle().Foreground(colorTextSecondary)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorTextMuted)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	warnStyle    = lipgloss.NewStyle().Foreground(colorWarning)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 2)
)
