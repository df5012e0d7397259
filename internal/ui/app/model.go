package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	account "flo8/internal/modules/account/domain"
	accountdto "flo8/internal/modules/account/dto"
	contentdto "flo8/internal/modules/content/dto"
	onboardingdto "flo8/internal/modules/onboarding/dto"
	"flo8/internal/platform/notify"
	"flo8/internal/ui/components"
	"flo8/internal/ui/theme"
	contentview "flo8/internal/ui/views/content"
	dashboardview "flo8/internal/ui/views/dashboard"
	loginview "flo8/internal/ui/views/login"
	onboardingview "flo8/internal/ui/views/onboarding"
	settingsview "flo8/internal/ui/views/settings"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type accountPort interface {
	Bootstrap(ctx context.Context) accountdto.SessionOutput
	Login(ctx context.Context, input accountdto.LoginInput) (accountdto.ProfileOutput, error)
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, id string, input accountdto.UpdateInput) error
	ChangePassword(ctx context.Context, input accountdto.ChangePasswordInput) error
}

type contentPort interface {
	List(ctx context.Context, kind string) ([]contentdto.ItemOutput, error)
	Get(ctx context.Context, slug string) (contentdto.ItemDetail, error)
	DailyCard(ctx context.Context, date time.Time) (contentdto.ItemOutput, error)
	CompleteCard(ctx context.Context, itemID string, date time.Time) (contentdto.CompleteOutput, error)
	GuidePage(ctx context.Context, slug string, page int) (contentdto.GuidePageOutput, error)
	Reindex(ctx context.Context) (int, error)
}

type onboardingPort interface {
	Begin(ctx context.Context) (onboardingdto.DraftOutput, error)
	ToggleGoal(ctx context.Context, slug string) (onboardingdto.DraftOutput, error)
	SetBaseline(ctx context.Context, dimension string, value int) (onboardingdto.DraftOutput, error)
	SetMobility(ctx context.Context, limited bool) (onboardingdto.DraftOutput, error)
	Advance(ctx context.Context) (onboardingdto.DraftOutput, error)
	Retreat(ctx context.Context) (onboardingdto.DraftOutput, error)
}

// ─── routes ──────────────────────────────────────────────────────────────────

type route int

const (
	routeLoading route = iota
	routeLogin
	routeOnboarding
	routeDashboard
	routeContent
	routeSettings
)

// The tab bar only covers the authenticated, onboarded area.
var tabRoutes = []route{routeDashboard, routeContent, routeSettings}

var tabLabels = map[route]string{
	routeDashboard: "Vandaag",
	routeContent:   "Content",
	routeSettings:  "Instellingen",
}

// resolve is the route guard. While the session is initializing nothing but
// the loading view may render; without a profile every protected route
// collapses to login; an incomplete onboarding pins the whole app to the
// wizard.
func resolve(session account.Session, requested route) route {
	if session.Initializing {
		return routeLoading
	}
	if session.Profile == nil {
		return routeLogin
	}
	if !session.Profile.OnboardingComplete {
		return routeOnboarding
	}
	switch requested {
	case routeDashboard, routeContent, routeSettings:
		return requested
	}
	return routeDashboard
}

// ─── async messages ───────────────────────────────────────────────────────────

type bootstrapDoneMsg struct{ session accountdto.SessionOutput }

type sessionChangedMsg struct{ session account.Session }

type noticeMsg struct{ notice notify.Notice }

type loggedOutMsg struct{ err error }

type reindexedMsg struct {
	count int
	err   error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "volgend tabblad")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "hulp")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "commando's")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "afsluiten")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Palette},
		{k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns the route guard, the session
// store subscription, the notice toast, and the command palette. All business
// logic is delegated to port interfaces; all rendering to sub-views.
type Model struct {
	accounts accountPort
	content  contentPort

	store     *account.Store
	bus       *notify.Bus
	sessionCh chan account.Session
	noticeCh  <-chan notify.Notice

	loginView      loginview.Model
	onboardView    onboardingview.Model
	dashboardView  dashboardview.Model
	contentView    contentview.Model
	settingsView   settingsview.Model
	contentStarted bool

	session account.Session
	tab     route
	current route

	keys     keyMap
	help     help.Model
	showHelp bool
	palette  components.Palette
	toast    components.Toast
	status   string
	width    int
	height   int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(
	accounts accountPort,
	content contentPort,
	onboarding onboardingPort,
	store *account.Store,
	bus *notify.Bus,
) Model {
	sessionCh := make(chan account.Session, 8)
	store.Subscribe(func(s account.Session) {
		select {
		case sessionCh <- s:
		default:
		}
	})
	noticeCh, _ := bus.Subscribe()

	return Model{
		accounts:      accounts,
		content:       content,
		store:         store,
		bus:           bus,
		sessionCh:     sessionCh,
		noticeCh:      noticeCh,
		loginView:     loginview.New(loginPortBridge{p: accounts}),
		onboardView:   onboardingview.New(onboarding),
		dashboardView: dashboardview.New(dashboardPortBridge{p: content}),
		contentView:   contentview.New(contentPortBridge{p: content}),
		settingsView:  settingsview.New(settingsPortBridge{p: accounts}),
		session:       store.Snapshot(),
		tab:           routeDashboard,
		current:       routeLoading,
		keys:          defaultKeys(),
		help:          help.New(),
		palette:       components.NewPalette(),
		toast:         components.NewToast(),
		status:        "starten…",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.bootstrapCmd(),
		m.listenSessionCmd(),
		m.listenNoticeCmd(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		if _, ok := msg.(tea.KeyMsg); ok {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	var toastCmd tea.Cmd
	m.toast, toastCmd = m.toast.Update(msg)
	cmds = append(cmds, toastCmd)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()

	case bootstrapDoneMsg:
		if msg.session.Authenticated {
			m.status = "welkom terug, " + msg.session.Profile.Name
		} else {
			m.status = "log in om te beginnen"
		}

	case sessionChangedMsg:
		m.session = msg.session
		m.pushProfile()
		cmds = append(cmds, m.listenSessionCmd())

	case noticeMsg:
		cmds = append(cmds, m.toast.Show(msg.notice), m.listenNoticeCmd())

	case loggedOutMsg:
		if msg.err != nil {
			m.status = "uitloggen mislukt: " + msg.err.Error()
		} else {
			m.status = "uitgelogd"
			m.tab = routeDashboard
		}

	case reindexedMsg:
		if msg.err != nil {
			m.status = "herindexeren mislukt: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("%d items geïndexeerd", msg.count)
			if m.contentStarted {
				cmds = append(cmds, m.contentView.Reload())
			}
		}

	case components.PaletteSubmitMsg:
		model, cmd := m.executePalette(msg.Input)
		m = model
		cmds = append(cmds, cmd, m.syncRoute())
		return m, tea.Batch(cmds...)

	case components.PaletteCancelMsg:
		m.status = "klaar"

	case settingsview.LogoutRequestedMsg:
		cmds = append(cmds, m.logoutCmd())

	case settingsview.SavedMsg:
		if msg.Err != nil {
			m.bus.Publish(notify.Notice{
				UserMessage: "Instellingen konden niet worden opgeslagen.",
				Origin:      notify.OriginSettings,
			})
		}

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, tea.Batch(cmds...)
		}
		// A visible toast claims esc/x first; its pending timer goes stale.
		if m.toast.Visible() && !m.typing() {
			switch msg.String() {
			case "esc", "x":
				m.toast.Dismiss()
				return m, tea.Batch(cmds...)
			}
		}
		if !m.typing() {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "tab", "shift+tab":
				if m.current == routeDashboard || m.current == routeContent || m.current == routeSettings {
					m.tab = m.nextTab(msg.String() == "shift+tab")
				}
			case "?":
				m.showHelp = !m.showHelp
				return m, tea.Batch(cmds...)
			case ":":
				cmds = append(cmds, m.palette.Open())
				return m, tea.Batch(cmds...)
			}
		} else if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmds = append(cmds, m.routeMsg(msg), m.syncRoute())
	return m, tea.Batch(cmds...)
}

// routeMsg propagates the message to the sub-view owning the current route.
// View-specific async results are delivered regardless of the visible route
// so a slow load cannot get lost behind a redirect.
func (m *Model) routeMsg(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch msg.(type) {
	case loginview.SubmittedMsg:
		m.loginView, cmd = m.loginView.Update(msg)
		return cmd
	case onboardingview.DraftMsg:
		m.onboardView, cmd = m.onboardView.Update(msg)
		return cmd
	case dashboardview.CardLoadedMsg, dashboardview.CompletedMsg:
		m.dashboardView, cmd = m.dashboardView.Update(msg)
		return cmd
	case contentview.ItemsLoadedMsg, contentview.DetailLoadedMsg, contentview.GuidePageMsg:
		m.contentView, cmd = m.contentView.Update(msg)
		return cmd
	case settingsview.SavedMsg:
		m.settingsView, cmd = m.settingsView.Update(msg)
		return cmd
	}

	switch m.current {
	case routeLogin:
		m.loginView, cmd = m.loginView.Update(msg)
	case routeOnboarding:
		m.onboardView, cmd = m.onboardView.Update(msg)
	case routeDashboard:
		m.dashboardView, cmd = m.dashboardView.Update(msg)
	case routeContent:
		m.contentView, cmd = m.contentView.Update(msg)
	case routeSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
	}
	return cmd
}

// syncRoute re-evaluates the guard and fires the entry command of a newly
// entered route. Because the route is recomputed from the session snapshot,
// a state transition redirects exactly once: afterwards the computed route
// is stable until the session changes again.
func (m *Model) syncRoute() tea.Cmd {
	next := resolve(m.session, m.tab)
	if next == m.current {
		return nil
	}
	m.current = next

	switch next {
	case routeLogin:
		return m.loginView.Init()
	case routeOnboarding:
		return m.onboardView.Init()
	case routeDashboard:
		m.pushProfile()
		return m.dashboardView.Init()
	case routeContent:
		if !m.contentStarted {
			m.contentStarted = true
			return m.contentView.Init()
		}
	case routeSettings:
		m.pushProfile()
	}
	return nil
}

func (m *Model) pushProfile() {
	profile := toProfileOutput(m.session.Profile)
	m.dashboardView.SetProfile(profile)
	m.settingsView.SetProfile(profile)
}

func (m Model) nextTab(backwards bool) route {
	for i, r := range tabRoutes {
		if r != m.tab {
			continue
		}
		if backwards {
			return tabRoutes[(i+len(tabRoutes)-1)%len(tabRoutes)]
		}
		return tabRoutes[(i+1)%len(tabRoutes)]
	}
	return routeDashboard
}

// typing reports whether the focused sub-view is consuming free text, in
// which case global single-letter keys must yield.
func (m Model) typing() bool {
	switch m.current {
	case routeLogin:
		return true
	case routeContent:
		return m.contentView.Filtering()
	case routeSettings:
		return m.settingsView.Editing()
	}
	return false
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.current == routeLoading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Muted.Render("flo8 wordt gestart…"))
	}

	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	if m.toast.Visible() {
		content = lipgloss.JoinVertical(lipgloss.Left, m.toast.View(), content)
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.current {
	case routeLogin:
		return m.loginView.View()
	case routeOnboarding:
		return m.onboardView.View()
	case routeDashboard:
		return m.dashboardView.View()
	case routeContent:
		return m.contentView.View()
	case routeSettings:
		return m.settingsView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	if m.current == routeLogin || m.current == routeOnboarding {
		bar := "flo8"
		return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
	}
	parts := make([]string, len(tabRoutes))
	for i, r := range tabRoutes {
		label := tabLabels[r]
		if r == m.tab {
			parts[i] = theme.Accent.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "flo8  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if p := m.session.Profile; p != nil {
		left = theme.Accent.Render(fmt.Sprintf("● %s  🔥%d", p.Email, p.Streak)) + "  " + left
	}
	right := theme.Muted.Render("?:hulp  tab:wissel  :::commando's  q:stop")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────
// Commands here must stay in sync with the hint list in components/palette.go.

func (m Model) executePalette(input string) (Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "card:done":
		m.tab = routeDashboard
		return m, m.dashboardView.Complete()

	case "content:list":
		kind := ""
		if len(parts) >= 2 {
			kind = parts[1]
		}
		m.tab = routeContent
		m.contentStarted = true
		return m, m.contentView.ShowKind(kind)

	case "content:open":
		if len(parts) < 2 {
			m.status = "gebruik: content:open <slug>"
			return m, nil
		}
		m.tab = routeContent
		return m, m.contentView.OpenSlug(parts[1])

	case "content:reindex":
		m.status = "herindexeren…"
		return m, m.reindexCmd()

	case "profile:logout":
		return m, m.logoutCmd()

	case "settings":
		m.tab = routeSettings
		return m, nil

	case "dashboard":
		m.tab = routeDashboard
		return m, nil

	default:
		m.status = "onbekend commando: " + parts[0]
	}
	return m, nil
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.loginView, _ = m.loginView.Update(sz)
	m.onboardView, _ = m.onboardView.Update(sz)
	m.dashboardView, _ = m.dashboardView.Update(sz)
	m.contentView, _ = m.contentView.Update(sz)
	m.settingsView, _ = m.settingsView.Update(sz)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) bootstrapCmd() tea.Cmd {
	return func() tea.Msg {
		session := m.accounts.Bootstrap(context.Background())
		return bootstrapDoneMsg{session: session}
	}
}

func (m Model) listenSessionCmd() tea.Cmd {
	return func() tea.Msg {
		return sessionChangedMsg{session: <-m.sessionCh}
	}
}

func (m Model) listenNoticeCmd() tea.Cmd {
	return func() tea.Msg {
		notice, ok := <-m.noticeCh
		if !ok {
			return nil
		}
		return noticeMsg{notice: notice}
	}
}

func (m Model) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		return loggedOutMsg{err: m.accounts.Logout(context.Background())}
	}
}

func (m Model) reindexCmd() tea.Cmd {
	return func() tea.Msg {
		count, err := m.content.Reindex(context.Background())
		return reindexedMsg{count: count, err: err}
	}
}

// ─── converters ───────────────────────────────────────────────────────────────

func toProfileOutput(p *account.Profile) *accountdto.ProfileOutput {
	if p == nil {
		return nil
	}
	return &accountdto.ProfileOutput{
		ID:                 p.ID,
		Email:              p.Email,
		Name:               p.Name,
		Plan:               string(p.Plan),
		PlanActiveUntil:    p.PlanActiveUntil,
		OnboardingComplete: p.OnboardingComplete,
		Streak:             p.Streak,
		Goals:              append([]string(nil), p.Goals...),
		Baseline:           baselineMap(p.Baseline),
		MobilityLimited:    p.MobilityLimited,
		NotificationTime:   p.NotificationTime,
		Theme:              string(p.Theme),
	}
}

func baselineMap(b account.Baseline) map[string]int {
	out := make(map[string]int, len(account.Dimensions()))
	for _, dim := range account.Dimensions() {
		out[string(dim)] = b.Get(dim)
	}
	return out
}

// ─── port bridges ─────────────────────────────────────────────────────────────
// Each bridge narrows a broad port interface to the minimal interface a
// sub-view declares, keeping view packages free of knowledge about the wider
// port surface.

type loginPortBridge struct{ p accountPort }

func (b loginPortBridge) Login(ctx context.Context, email, password string) (accountdto.ProfileOutput, error) {
	return b.p.Login(ctx, accountdto.LoginInput{Email: email, Password: password})
}

type settingsPortBridge struct{ p accountPort }

func (b settingsPortBridge) UpdateProfile(ctx context.Context, id string, input accountdto.UpdateInput) error {
	return b.p.UpdateProfile(ctx, id, input)
}
func (b settingsPortBridge) ChangePassword(ctx context.Context, input accountdto.ChangePasswordInput) error {
	return b.p.ChangePassword(ctx, input)
}
func (b settingsPortBridge) Logout(ctx context.Context) error {
	return b.p.Logout(ctx)
}

type dashboardPortBridge struct{ p contentPort }

func (b dashboardPortBridge) DailyCard(ctx context.Context, date time.Time) (contentdto.ItemOutput, error) {
	return b.p.DailyCard(ctx, date)
}
func (b dashboardPortBridge) Get(ctx context.Context, slug string) (contentdto.ItemDetail, error) {
	return b.p.Get(ctx, slug)
}
func (b dashboardPortBridge) CompleteCard(ctx context.Context, itemID string, date time.Time) (contentdto.CompleteOutput, error) {
	return b.p.CompleteCard(ctx, itemID, date)
}

type contentPortBridge struct{ p contentPort }

func (b contentPortBridge) List(ctx context.Context, kind string) ([]contentdto.ItemOutput, error) {
	return b.p.List(ctx, kind)
}
func (b contentPortBridge) Get(ctx context.Context, slug string) (contentdto.ItemDetail, error) {
	return b.p.Get(ctx, slug)
}
func (b contentPortBridge) GuidePage(ctx context.Context, slug string, page int) (contentdto.GuidePageOutput, error) {
	return b.p.GuidePage(ctx, slug, page)
}
