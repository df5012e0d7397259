package theme

import "github.com/charmbracelet/lipgloss"

var (
	Base    = lipgloss.Color("#1c2321")
	Mantle  = lipgloss.Color("#16201d")
	Surface = lipgloss.Color("#2b3a36")
	Border  = lipgloss.Color("#3d524c")
	Text    = lipgloss.Color("#e8ece9")
	Subtext = lipgloss.Color("#9db0a9")
	Teal    = lipgloss.Color("#5fb8a5")
	Mint    = lipgloss.Color("#9fd8c4")
	Amber   = lipgloss.Color("#e8b963")
	Coral   = lipgloss.Color("#e88d7a")

	App = lipgloss.NewStyle().
		Background(Base).
		Foreground(Text).
		Padding(1, 2)

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Background(Mantle).
		Foreground(Text).
		Padding(1)

	PaneActive = Pane.BorderForeground(Teal)

	Title  = lipgloss.NewStyle().Foreground(Teal).Bold(true)
	Muted  = lipgloss.NewStyle().Foreground(Subtext)
	Accent = lipgloss.NewStyle().Foreground(Amber).Bold(true)
	Alert  = lipgloss.NewStyle().Foreground(Coral).Bold(true)
)
