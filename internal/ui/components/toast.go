package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"flo8/internal/platform/notify"
	"flo8/internal/ui/theme"
)

// DismissDuration is how long a toast stays on screen without interaction.
const DismissDuration = 5 * time.Second

// toastExpiredMsg carries the generation of the timer that fired. A tick
// from a generation other than the current one is stale and ignored, so
// replacing the notice restarts the five seconds.
type toastExpiredMsg struct {
	generation int
}

var toastStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(theme.Coral).
	Background(theme.Mantle).
	Foreground(theme.Text).
	Padding(0, 1)

// Toast shows the most recent notice from the bus. It is the single display
// surface for transient failures.
type Toast struct {
	notice     notify.Notice
	visible    bool
	generation int
}

func NewToast() Toast {
	return Toast{}
}

func (t Toast) Visible() bool { return t.visible }

// Show replaces whatever is displayed and starts a fresh dismiss timer.
func (t *Toast) Show(notice notify.Notice) tea.Cmd {
	t.notice = notice
	t.visible = true
	t.generation++
	generation := t.generation
	return tea.Tick(DismissDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{generation: generation}
	})
}

// Dismiss hides the toast immediately. Any running timer becomes stale.
func (t *Toast) Dismiss() {
	t.visible = false
	t.generation++
}

func (t Toast) Update(msg tea.Msg) (Toast, tea.Cmd) {
	if expired, ok := msg.(toastExpiredMsg); ok {
		if expired.generation == t.generation {
			t.visible = false
		}
	}
	return t, nil
}

func (t Toast) View() string {
	if !t.visible {
		return ""
	}
	// Origin stays diagnostic; only the user message is rendered.
	label := theme.Alert.Render("Let op")
	hint := theme.Muted.Render("  esc: sluiten")
	return toastStyle.Render(label + "  " + t.notice.UserMessage + hint)
}
