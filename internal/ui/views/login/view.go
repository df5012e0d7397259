package login

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	accountdto "flo8/internal/modules/account/dto"
	"flo8/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type AccountPort interface {
	Login(ctx context.Context, email, password string) (accountdto.ProfileOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// SubmittedMsg reports the outcome of a login attempt. A failure is shown
// inline on the form; it never reaches the toast.
type SubmittedMsg struct {
	Profile accountdto.ProfileOutput
	Err     error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port       AccountPort
	email      textinput.Model
	password   textinput.Model
	focus      int
	submitting bool
	errMsg     string
	spinner    spinner.Model
	width      int
	height     int
}

func New(port AccountPort) Model {
	email := textinput.New()
	email.Placeholder = "e-mailadres"
	email.CharLimit = 128
	email.Focus()

	password := textinput.New()
	password.Placeholder = "wachtwoord"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Teal)

	return Model{port: port, email: email, password: password, spinner: sp}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case spinner.TickMsg:
		if m.submitting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case SubmittedMsg:
		m.submitting = false
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			m.password.SetValue("")
			return m, nil
		}
		m.errMsg = ""
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			m.focus = (m.focus + 1) % 2
			if m.focus == 0 {
				m.password.Blur()
				return m, m.email.Focus()
			}
			m.email.Blur()
			return m, m.password.Focus()
		case "enter":
			email := strings.TrimSpace(m.email.Value())
			password := m.password.Value()
			if email == "" || password == "" {
				m.errMsg = "Vul je e-mailadres en wachtwoord in."
				return m, nil
			}
			m.submitting = true
			m.errMsg = ""
			return m, tea.Batch(m.spinner.Tick, m.submitCmd(email, password))
		}
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Inloggen bij FLO8") + "\n\n")
	sb.WriteString("  " + m.email.View() + "\n")
	sb.WriteString("  " + m.password.View() + "\n\n")
	switch {
	case m.submitting:
		sb.WriteString("  " + m.spinner.View() + " bezig met inloggen…\n")
	case m.errMsg != "":
		sb.WriteString("  " + theme.Alert.Render(m.errMsg) + "\n")
	default:
		sb.WriteString("  " + theme.Muted.Render("enter: inloggen  tab: wissel veld") + "\n")
	}

	box := theme.Pane.Width(48).Render(sb.String())
	if m.width == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) submitCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		profile, err := m.port.Login(context.Background(), email, password)
		return SubmittedMsg{Profile: profile, Err: err}
	}
}
