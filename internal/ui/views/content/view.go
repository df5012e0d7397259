package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	contentdto "flo8/internal/modules/content/dto"
	"flo8/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type ContentPort interface {
	List(ctx context.Context, kind string) ([]contentdto.ItemOutput, error)
	Get(ctx context.Context, slug string) (contentdto.ItemDetail, error)
	GuidePage(ctx context.Context, slug string, page int) (contentdto.GuidePageOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type ItemsLoadedMsg struct {
	Items []contentdto.ItemOutput
	Err   error
}

type DetailLoadedMsg struct {
	Detail contentdto.ItemDetail
	Err    error
}

type GuidePageMsg struct {
	Slug string
	Page contentdto.GuidePageOutput
	Err  error
}

// ─── list item ───────────────────────────────────────────────────────────────

type contentItem struct {
	item contentdto.ItemOutput
}

func (i contentItem) Title() string { return i.item.Title }
func (i contentItem) Description() string {
	return fmt.Sprintf("%s · %d min", i.item.Kind, i.item.Minutes)
}
func (i contentItem) FilterValue() string { return i.item.Title }

// kinds cycled by the filter key; the empty string means everything.
var kindCycle = []string{"", "recipe", "exercise", "knowledge", "dailycard"}

var kindLabels = map[string]string{
	"":          "Alles",
	"recipe":    "Recepten",
	"exercise":  "Oefeningen",
	"knowledge": "Kennis",
	"dailycard": "Dagkaarten",
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port      ContentPort
	list      list.Model
	detail    contentdto.ItemDetail
	preview   viewport.Model
	spinner   spinner.Model
	loading   bool
	kindIdx   int
	guideMode bool
	guidePage contentdto.GuidePageOutput
	width     int
	height    int
}

func New(port ContentPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Teal).BorderForeground(theme.Teal)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Mint).BorderForeground(theme.Teal)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Content — Alles"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Teal)

	return Model{
		port:    port,
		list:    l,
		preview: vp,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadItemsCmd(), m.spinner.Tick)
}

// Reload re-queries the list, keeping the active kind filter. The root model
// calls this after a reindex.
func (m *Model) Reload() tea.Cmd {
	m.loading = true
	return tea.Batch(m.loadItemsCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case ItemsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Content — " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = "Content — " + kindLabels[kindCycle[m.kindIdx]]
		items := make([]list.Item, len(msg.Items))
		for i, it := range msg.Items {
			items[i] = contentItem{item: it}
		}
		cmds = append(cmds, m.list.SetItems(items))
		m.detail = contentdto.ItemDetail{}
		m.preview.SetContent(m.renderDetail())
		if len(msg.Items) > 0 {
			cmds = append(cmds, m.loadDetailCmd(msg.Items[0].Slug))
		}

	case DetailLoadedMsg:
		if msg.Err == nil {
			m.detail = msg.Detail
			m.guideMode = false
			m.preview.SetContent(m.renderDetail())
			m.preview.GotoTop()
		}

	case GuidePageMsg:
		if msg.Err == nil && msg.Slug == m.detail.Slug {
			m.guideMode = true
			m.guidePage = msg.Page
			m.preview.SetContent(m.renderGuide())
			m.preview.GotoTop()
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		if m.loading || m.Filtering() {
			break
		}
		switch msg.String() {
		case "f":
			m.kindIdx = (m.kindIdx + 1) % len(kindCycle)
			m.loading = true
			return m, tea.Batch(m.loadItemsCmd(), m.spinner.Tick)
		case "g":
			if m.detail.HasGuide && !m.guideMode {
				return m, m.loadGuideCmd(m.detail.Slug, 1)
			}
			if m.guideMode {
				m.guideMode = false
				m.preview.SetContent(m.renderDetail())
			}
			return m, nil
		case "]":
			if m.guideMode && m.guidePage.Page < m.guidePage.Total {
				return m, m.loadGuideCmd(m.detail.Slug, m.guidePage.Page+1)
			}
		case "[":
			if m.guideMode && m.guidePage.Page > 1 {
				return m, m.loadGuideCmd(m.detail.Slug, m.guidePage.Page-1)
			}
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			if item, ok := m.list.SelectedItem().(contentItem); ok {
				cmds = append(cmds, m.loadDetailCmd(item.item.Slug))
			}
		}

		var vCmd tea.Cmd
		m.preview, vCmd = m.preview.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" content laden…")
	}

	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.preview.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// ShowKind switches the kind filter and reloads. An unknown kind falls back
// to everything.
func (m *Model) ShowKind(kind string) tea.Cmd {
	m.kindIdx = 0
	for i, k := range kindCycle {
		if k == kind {
			m.kindIdx = i
			break
		}
	}
	m.loading = true
	return tea.Batch(m.loadItemsCmd(), m.spinner.Tick)
}

// OpenSlug jumps the selection to the item with the given slug, if present.
func (m *Model) OpenSlug(slug string) tea.Cmd {
	for i, it := range m.list.Items() {
		if item, ok := it.(contentItem); ok && item.item.Slug == slug {
			m.list.Select(i)
			return m.loadDetailCmd(slug)
		}
	}
	return m.loadDetailCmd(slug)
}

// Filtering reports whether the list's search filter is currently active.
// The app model checks this to avoid consuming global keys during a search.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.preview.Width = detailW - 4
	m.preview.Height = m.height - 4
}

func (m Model) renderDetail() string {
	d := m.detail
	if d.Slug == "" {
		return theme.Muted.Render("Kies een item voor details")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(d.Title) + "\n\n")
	sb.WriteString(theme.Muted.Render("soort:  ") + d.Kind + "\n")
	sb.WriteString(theme.Muted.Render("duur:   ") + fmt.Sprintf("%d min", d.Minutes) + "\n")
	if len(d.Tags) > 0 {
		sb.WriteString(theme.Muted.Render("tags:   ") + strings.Join(d.Tags, ", ") + "\n")
	}
	if len(d.Goals) > 0 {
		sb.WriteString(theme.Muted.Render("doelen: ") + strings.Join(d.Goals, ", ") + "\n")
	}
	if d.Source != "" {
		sb.WriteString(theme.Muted.Render("bron:   ") + d.Source + "\n")
	}
	sb.WriteString("\n" + strings.TrimSpace(d.Body) + "\n")
	if d.HasGuide {
		sb.WriteString("\n" + theme.Accent.Render("g: open de PDF-gids") + "\n")
	}
	return sb.String()
}

func (m Model) renderGuide() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(m.detail.Title+" — gids") + "\n")
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("pagina %d/%d   [ en ] bladeren, g sluit", m.guidePage.Page, m.guidePage.Total)) + "\n\n")
	sb.WriteString(m.guidePage.Text + "\n")
	return sb.String()
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) loadItemsCmd() tea.Cmd {
	kind := kindCycle[m.kindIdx]
	return func() tea.Msg {
		items, err := m.port.List(context.Background(), kind)
		return ItemsLoadedMsg{Items: items, Err: err}
	}
}

func (m Model) loadDetailCmd(slug string) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.port.Get(context.Background(), slug)
		return DetailLoadedMsg{Detail: detail, Err: err}
	}
}

func (m Model) loadGuideCmd(slug string, page int) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.GuidePage(context.Background(), slug, page)
		return GuidePageMsg{Slug: slug, Page: out, Err: err}
	}
}
