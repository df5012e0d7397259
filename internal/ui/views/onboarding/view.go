package onboarding

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	account "flo8/internal/modules/account/domain"
	"flo8/internal/modules/onboarding/dto"
	"flo8/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type WizardPort interface {
	Begin(ctx context.Context) (dto.DraftOutput, error)
	ToggleGoal(ctx context.Context, slug string) (dto.DraftOutput, error)
	SetBaseline(ctx context.Context, dimension string, value int) (dto.DraftOutput, error)
	SetMobility(ctx context.Context, limited bool) (dto.DraftOutput, error)
	Advance(ctx context.Context) (dto.DraftOutput, error)
	Retreat(ctx context.Context) (dto.DraftOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// DraftMsg carries the wizard state after any mutation. Commit failures are
// published on the notice bus by the interactor, so Err here is only for
// local mistakes and stays inline.
type DraftMsg struct {
	Draft dto.DraftOutput
	Err   error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port   WizardPort
	draft  dto.DraftOutput
	cursor int
	width  int
	height int
}

func New(port WizardPort) Model {
	return Model{port: port}
}

func (m Model) Init() tea.Cmd {
	return m.do(func(ctx context.Context) (dto.DraftOutput, error) {
		return m.port.Begin(ctx)
	})
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case DraftMsg:
		if msg.Err == nil {
			if msg.Draft.Step != m.draft.Step {
				m.cursor = 0
			}
			m.draft = msg.Draft
		}
		return m, nil

	case tea.KeyMsg:
		if m.draft.CommitPending {
			return m, nil
		}
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < m.rows()-1 {
				m.cursor++
			}
		case " ", "x":
			return m, m.toggle()
		case "left", "h":
			return m, m.adjust(-1)
		case "right", "l":
			return m, m.adjust(+1)
		case "enter":
			return m, m.do(func(ctx context.Context) (dto.DraftOutput, error) {
				return m.port.Advance(ctx)
			})
		case "esc", "backspace":
			return m, m.do(func(ctx context.Context) (dto.DraftOutput, error) {
				return m.port.Retreat(ctx)
			})
		}
	}
	return m, nil
}

func (m Model) rows() int {
	switch m.draft.Step {
	case "goals":
		return len(m.draft.Goals)
	case "baseline":
		return len(account.Dimensions())
	case "preferences":
		return 1
	}
	return 0
}

func (m Model) toggle() tea.Cmd {
	switch m.draft.Step {
	case "goals":
		if m.cursor < len(m.draft.Goals) {
			slug := m.draft.Goals[m.cursor].Slug
			return m.do(func(ctx context.Context) (dto.DraftOutput, error) {
				return m.port.ToggleGoal(ctx, slug)
			})
		}
	case "preferences":
		limited := !m.draft.MobilityLimited
		return m.do(func(ctx context.Context) (dto.DraftOutput, error) {
			return m.port.SetMobility(ctx, limited)
		})
	}
	return nil
}

func (m Model) adjust(delta int) tea.Cmd {
	if m.draft.Step != "baseline" {
		return nil
	}
	dims := account.Dimensions()
	if m.cursor >= len(dims) {
		return nil
	}
	dim := string(dims[m.cursor])
	value := m.draft.Baseline[dim] + delta
	return m.do(func(ctx context.Context) (dto.DraftOutput, error) {
		return m.port.SetBaseline(ctx, dim, value)
	})
}

// ─── view ────────────────────────────────────────────────────────────────────

var dimensionLabels = map[string]string{
	"sleep":     "Slaap",
	"stress":    "Stress",
	"movement":  "Beweging",
	"nutrition": "Voeding",
	"energy":    "Energie",
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Welkom bij FLO8") + "\n")
	sb.WriteString(theme.Muted.Render(m.stepLine()) + "\n\n")

	switch m.draft.Step {
	case "goals":
		for i, goal := range m.draft.Goals {
			mark := "[ ]"
			if goal.Selected {
				mark = "[x]"
			}
			line := fmt.Sprintf("%s %s", mark, goal.Label)
			sb.WriteString("  " + m.row(i, line) + "\n")
		}
		sb.WriteString("\n" + theme.Muted.Render("  spatie: kies  enter: verder") + "\n")
	case "baseline":
		for i, dim := range account.Dimensions() {
			value := m.draft.Baseline[string(dim)]
			bar := strings.Repeat("█", value) + strings.Repeat("░", 10-value)
			line := fmt.Sprintf("%-9s %s %2d", dimensionLabels[string(dim)], bar, value)
			sb.WriteString("  " + m.row(i, line) + "\n")
		}
		sb.WriteString("\n" + theme.Muted.Render("  ←/→: aanpassen  enter: verder  esc: terug") + "\n")
	case "preferences":
		mark := "[ ]"
		if m.draft.MobilityLimited {
			mark = "[x]"
		}
		sb.WriteString("  " + m.row(0, mark+" Ik ben beperkt mobiel") + "\n")
		sb.WriteString("\n" + theme.Muted.Render("  spatie: kies  enter: afronden  esc: terug") + "\n")
		if m.draft.CommitPending {
			sb.WriteString("\n  " + theme.Accent.Render("Je plan wordt opgeslagen…") + "\n")
		}
	}

	box := theme.Pane.Width(52).Render(sb.String())
	if m.width == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) stepLine() string {
	switch m.draft.Step {
	case "goals":
		return "Stap 1 van 3 — wat wil je bereiken?"
	case "baseline":
		return "Stap 2 van 3 — hoe sta je ervoor? (1–10)"
	case "preferences":
		return "Stap 3 van 3 — voorkeuren"
	}
	return ""
}

func (m Model) row(i int, line string) string {
	if i == m.cursor {
		return theme.Accent.Render("› " + line)
	}
	return "  " + line
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) do(op func(context.Context) (dto.DraftOutput, error)) tea.Cmd {
	return func() tea.Msg {
		draft, err := op(context.Background())
		return DraftMsg{Draft: draft, Err: err}
	}
}
