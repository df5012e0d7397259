package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	accountdto "flo8/internal/modules/account/dto"
	contentdto "flo8/internal/modules/content/dto"
	"flo8/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type ContentPort interface {
	DailyCard(ctx context.Context, date time.Time) (contentdto.ItemOutput, error)
	Get(ctx context.Context, slug string) (contentdto.ItemDetail, error)
	CompleteCard(ctx context.Context, itemID string, date time.Time) (contentdto.CompleteOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type CardLoadedMsg struct {
	Card contentdto.ItemDetail
	Err  error
}

type CompletedMsg struct {
	Result contentdto.CompleteOutput
	Err    error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    ContentPort
	profile *accountdto.ProfileOutput
	card    contentdto.ItemDetail
	loaded  bool
	loadErr string
	done    bool
	streak  int
	busy    bool
	spinner spinner.Model
	width   int
	height  int
}

func New(port ContentPort) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Teal)
	return Model{port: port, spinner: sp}
}

// SetProfile is called by the root model whenever the session changes.
func (m *Model) SetProfile(profile *accountdto.ProfileOutput) {
	m.profile = profile
	if profile != nil {
		m.streak = profile.Streak
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case spinner.TickMsg:
		if !m.loaded || m.busy {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case CardLoadedMsg:
		m.loaded = true
		if msg.Err != nil {
			m.loadErr = "Geen dagkaart beschikbaar. Voeg content toe en draai content:reindex."
			return m, nil
		}
		m.loadErr = ""
		m.card = msg.Card
		m.done = false
		return m, nil

	case CompletedMsg:
		m.busy = false
		if msg.Err != nil {
			return m, nil
		}
		m.done = true
		m.streak = msg.Result.Streak
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "enter" && m.loaded && m.loadErr == "" && !m.done && !m.busy {
			m.busy = true
			return m, tea.Batch(m.spinner.Tick, m.completeCmd(m.card.ID))
		}
	}
	return m, nil
}

// Complete marks today's card as done, if one is loaded and still open.
// The palette's card:done command goes through here.
func (m *Model) Complete() tea.Cmd {
	if !m.loaded || m.loadErr != "" || m.done || m.busy {
		return nil
	}
	m.busy = true
	return tea.Batch(m.spinner.Tick, m.completeCmd(m.card.ID))
}

func (m Model) View() string {
	var sb strings.Builder

	name := ""
	if m.profile != nil {
		name = m.profile.Name
	}
	sb.WriteString(theme.Title.Render("Goedendag, "+name) + "\n")
	sb.WriteString(theme.Accent.Render(fmt.Sprintf("🔥 streak: %d", m.streak)) + "\n\n")

	switch {
	case !m.loaded:
		sb.WriteString(m.spinner.View() + " dagkaart laden…\n")
	case m.loadErr != "":
		sb.WriteString(theme.Alert.Render(m.loadErr) + "\n")
	default:
		sb.WriteString(theme.Pane.Width(56).Render(m.cardView()))
	}

	if m.width == 0 {
		return sb.String()
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
}

func (m Model) cardView() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(m.card.Title) + "\n")
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("%d min · %s", m.card.Minutes, strings.Join(m.card.Tags, ", "))) + "\n\n")
	sb.WriteString(strings.TrimSpace(m.card.Body) + "\n\n")
	switch {
	case m.busy:
		sb.WriteString(m.spinner.View() + " opslaan…")
	case m.done:
		sb.WriteString(theme.Accent.Render("✓ Gedaan voor vandaag"))
	default:
		sb.WriteString(theme.Muted.Render("enter: markeer als gedaan"))
	}
	return sb.String()
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		card, err := m.port.DailyCard(ctx, time.Now())
		if err != nil {
			return CardLoadedMsg{Err: err}
		}
		detail, err := m.port.Get(ctx, card.Slug)
		if err != nil {
			return CardLoadedMsg{Err: err}
		}
		return CardLoadedMsg{Card: detail}
	}
}

func (m Model) completeCmd(itemID string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.port.CompleteCard(context.Background(), itemID, time.Now())
		return CompletedMsg{Result: result, Err: err}
	}
}
