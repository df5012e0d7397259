package settings

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	accountdto "flo8/internal/modules/account/dto"
	"flo8/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type AccountPort interface {
	UpdateProfile(ctx context.Context, id string, input accountdto.UpdateInput) error
	ChangePassword(ctx context.Context, input accountdto.ChangePasswordInput) error
	Logout(ctx context.Context) error
}

// ─── messages ────────────────────────────────────────────────────────────────

// SavedMsg reports the outcome of a profile save or password change. The
// root model turns a failure into a notice.
type SavedMsg struct {
	What string
	Err  error
}

// LogoutRequestedMsg asks the root model to run the logout flow.
type LogoutRequestedMsg struct{}

// ─── model ───────────────────────────────────────────────────────────────────

const (
	fieldName = iota
	fieldNotification
	fieldTheme
	fieldMobility
	fieldPassword
	fieldLogout
	fieldCount
)

type Model struct {
	port    AccountPort
	profile *accountdto.ProfileOutput
	cursor  int
	editing bool
	input   textinput.Model
	pwStage int // 0 idle, 1 current, 2 new
	pwCur   string
	status  string
	width   int
	height  int
}

func New(port AccountPort) Model {
	in := textinput.New()
	in.CharLimit = 64
	return Model{port: port, input: in}
}

func (m *Model) SetProfile(profile *accountdto.ProfileOutput) {
	m.profile = profile
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Editing reports whether a text field is capturing input. The root model
// checks this to avoid consuming global keys while the user types.
func (m Model) Editing() bool {
	return m.editing
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case SavedMsg:
		if msg.Err != nil {
			m.status = theme.Alert.Render("Opslaan is niet gelukt.")
		} else {
			m.status = theme.Accent.Render("Opgeslagen.")
		}
		return m, nil

	case tea.KeyMsg:
		if m.profile == nil {
			return m, nil
		}
		if m.editing {
			return m.updateEditing(msg)
		}
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < fieldCount-1 {
				m.cursor++
			}
		case "enter", " ":
			return m.activate()
		}
	}
	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.pwStage = 0
		m.input.Blur()
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		switch m.cursor {
		case fieldName:
			m.editing = false
			m.input.Blur()
			return m, m.saveCmd("naam", accountdto.UpdateInput{Name: &value})
		case fieldNotification:
			m.editing = false
			m.input.Blur()
			return m, m.saveCmd("meldtijd", accountdto.UpdateInput{NotificationTime: &value})
		case fieldPassword:
			if m.pwStage == 1 {
				m.pwCur = m.input.Value()
				m.pwStage = 2
				m.input.SetValue("")
				m.input.Placeholder = "nieuw wachtwoord"
				return m, nil
			}
			next := m.input.Value()
			m.editing = false
			m.pwStage = 0
			m.input.Blur()
			m.input.EchoMode = textinput.EchoNormal
			return m, m.changePasswordCmd(m.pwCur, next)
		}
		m.editing = false
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) activate() (Model, tea.Cmd) {
	p := m.profile
	switch m.cursor {
	case fieldName:
		return m.startEdit(p.Name, "naam")
	case fieldNotification:
		return m.startEdit(p.NotificationTime, "HH:MM")
	case fieldTheme:
		next := "dark"
		if p.Theme == "dark" {
			next = "light"
		}
		return m, m.saveCmd("thema", accountdto.UpdateInput{Theme: &next})
	case fieldMobility:
		limited := !p.MobilityLimited
		return m, m.saveCmd("mobiliteit", accountdto.UpdateInput{MobilityLimited: &limited})
	case fieldPassword:
		m.editing = true
		m.pwStage = 1
		m.input.SetValue("")
		m.input.Placeholder = "huidig wachtwoord"
		m.input.EchoMode = textinput.EchoPassword
		m.input.EchoCharacter = '•'
		return m, m.input.Focus()
	case fieldLogout:
		return m, func() tea.Msg { return LogoutRequestedMsg{} }
	}
	return m, nil
}

func (m Model) startEdit(value, placeholder string) (Model, tea.Cmd) {
	m.editing = true
	m.input.SetValue(value)
	m.input.Placeholder = placeholder
	m.input.EchoMode = textinput.EchoNormal
	return m, m.input.Focus()
}

func (m Model) View() string {
	if m.profile == nil {
		return theme.Muted.Render("Geen profiel geladen.")
	}
	p := m.profile

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Instellingen") + "\n\n")

	rows := []struct {
		label string
		value string
	}{
		{"Naam", p.Name},
		{"Melding om", p.NotificationTime},
		{"Thema", p.Theme},
		{"Beperkt mobiel", boolLabel(p.MobilityLimited)},
		{"Wachtwoord wijzigen", "••••••••"},
		{"Uitloggen", p.Email},
	}
	for i, row := range rows {
		line := fmt.Sprintf("%-20s %s", row.label, row.value)
		if i == m.cursor && m.editing {
			line = fmt.Sprintf("%-20s %s", row.label, m.input.View())
		}
		if i == m.cursor {
			sb.WriteString(theme.Accent.Render("› "+line) + "\n")
		} else {
			sb.WriteString("  " + line + "\n")
		}
	}

	sb.WriteString("\n" + theme.Muted.Render(fmt.Sprintf("Plan %s, actief tot %s", p.Plan, p.PlanActiveUntil.Format("02-01-2006"))) + "\n")
	if m.status != "" {
		sb.WriteString(m.status + "\n")
	}

	box := theme.Pane.Width(56).Render(sb.String())
	if m.width == 0 {
		return box
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(box)
}

func boolLabel(b bool) string {
	if b {
		return "ja"
	}
	return "nee"
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) saveCmd(what string, input accountdto.UpdateInput) tea.Cmd {
	id := m.profile.ID
	return func() tea.Msg {
		err := m.port.UpdateProfile(context.Background(), id, input)
		return SavedMsg{What: what, Err: err}
	}
}

func (m Model) changePasswordCmd(current, next string) tea.Cmd {
	return func() tea.Msg {
		err := m.port.ChangePassword(context.Background(), accountdto.ChangePasswordInput{Current: current, Next: next})
		return SavedMsg{What: "wachtwoord", Err: err}
	}
}
