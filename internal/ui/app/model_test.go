package app

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	account "flo8/internal/modules/account/domain"
	accountdto "flo8/internal/modules/account/dto"
	contentdto "flo8/internal/modules/content/dto"
	onboardingdto "flo8/internal/modules/onboarding/dto"
	"flo8/internal/platform/notify"
)

// ─── fakes ───────────────────────────────────────────────────────────────────

type fakeAccounts struct {
	logouts int
}

func (f *fakeAccounts) Bootstrap(context.Context) accountdto.SessionOutput {
	return accountdto.SessionOutput{}
}
func (f *fakeAccounts) Login(context.Context, accountdto.LoginInput) (accountdto.ProfileOutput, error) {
	return accountdto.ProfileOutput{}, nil
}
func (f *fakeAccounts) Logout(context.Context) error {
	f.logouts++
	return nil
}
func (f *fakeAccounts) UpdateProfile(context.Context, string, accountdto.UpdateInput) error {
	return nil
}
func (f *fakeAccounts) ChangePassword(context.Context, accountdto.ChangePasswordInput) error {
	return nil
}

type fakeContent struct{}

func (fakeContent) List(context.Context, string) ([]contentdto.ItemOutput, error) {
	return nil, nil
}
func (fakeContent) Get(context.Context, string) (contentdto.ItemDetail, error) {
	return contentdto.ItemDetail{}, nil
}
func (fakeContent) DailyCard(context.Context, time.Time) (contentdto.ItemOutput, error) {
	return contentdto.ItemOutput{}, nil
}
func (fakeContent) CompleteCard(context.Context, string, time.Time) (contentdto.CompleteOutput, error) {
	return contentdto.CompleteOutput{}, nil
}
func (fakeContent) GuidePage(context.Context, string, int) (contentdto.GuidePageOutput, error) {
	return contentdto.GuidePageOutput{}, nil
}
func (fakeContent) Reindex(context.Context) (int, error) { return 0, nil }

type fakeOnboarding struct{}

func (fakeOnboarding) Begin(context.Context) (onboardingdto.DraftOutput, error) {
	return onboardingdto.DraftOutput{Step: "goals"}, nil
}
func (fakeOnboarding) ToggleGoal(context.Context, string) (onboardingdto.DraftOutput, error) {
	return onboardingdto.DraftOutput{}, nil
}
func (fakeOnboarding) SetBaseline(context.Context, string, int) (onboardingdto.DraftOutput, error) {
	return onboardingdto.DraftOutput{}, nil
}
func (fakeOnboarding) SetMobility(context.Context, bool) (onboardingdto.DraftOutput, error) {
	return onboardingdto.DraftOutput{}, nil
}
func (fakeOnboarding) Advance(context.Context) (onboardingdto.DraftOutput, error) {
	return onboardingdto.DraftOutput{}, nil
}
func (fakeOnboarding) Retreat(context.Context) (onboardingdto.DraftOutput, error) {
	return onboardingdto.DraftOutput{}, nil
}

func testProfile(complete bool) *account.Profile {
	return &account.Profile{
		ID:                 "usr-test",
		Email:              "test@flo8.nl",
		Name:               "Sander",
		Plan:               account.PlanW8,
		OnboardingComplete: complete,
		Baseline:           account.DefaultBaseline(),
		NotificationTime:   "08:00",
		Theme:              account.ThemeDark,
	}
}

func newTestModel() (Model, *account.Store) {
	store := account.NewStore()
	model := NewModel(&fakeAccounts{}, fakeContent{}, fakeOnboarding{}, store, notify.NewBus())
	return model, store
}

// ─── guard ───────────────────────────────────────────────────────────────────

func TestGuardDefersWhileInitializing(t *testing.T) {
	t.Parallel()
	session := account.Session{Initializing: true}
	for _, requested := range []route{routeDashboard, routeContent, routeSettings, routeLogin} {
		if got := resolve(session, requested); got != routeLoading {
			t.Fatalf("requested %d during init: got route %d, want loading", requested, got)
		}
	}
}

func TestGuardSendsUnauthenticatedToLogin(t *testing.T) {
	t.Parallel()
	session := account.Session{}
	for _, requested := range []route{routeDashboard, routeContent, routeSettings} {
		if got := resolve(session, requested); got != routeLogin {
			t.Fatalf("requested %d unauthenticated: got route %d, want login", requested, got)
		}
	}
}

func TestGuardPinsIncompleteOnboarding(t *testing.T) {
	t.Parallel()
	session := account.Session{Profile: testProfile(false)}
	for _, requested := range []route{routeDashboard, routeContent, routeSettings} {
		if got := resolve(session, requested); got != routeOnboarding {
			t.Fatalf("requested %d before onboarding: got route %d, want onboarding", requested, got)
		}
	}
}

func TestGuardHonorsRequestedTabWhenOnboarded(t *testing.T) {
	t.Parallel()
	session := account.Session{Profile: testProfile(true)}
	if got := resolve(session, routeContent); got != routeContent {
		t.Fatalf("got route %d, want content", got)
	}
	if got := resolve(session, routeLoading); got != routeDashboard {
		t.Fatalf("stale requested route must fall back to dashboard, got %d", got)
	}
}

// ─── model transitions ───────────────────────────────────────────────────────

func TestModelStaysOnLoadingUntilResolved(t *testing.T) {
	t.Parallel()
	model, _ := newTestModel()

	next, _ := model.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	model = next.(Model)
	if model.current != routeLoading {
		t.Fatalf("route before resolve: %d, want loading", model.current)
	}
}

func TestModelRedirectsOncePerTransition(t *testing.T) {
	t.Parallel()
	model, store := newTestModel()

	next, _ := model.Update(sessionChangedMsg{session: account.Session{}})
	model = next.(Model)
	if model.current != routeLogin {
		t.Fatalf("unauthenticated resolve: route %d, want login", model.current)
	}

	// A second update with no session change must not re-enter the route.
	before := model.current
	next, _ = model.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	model = next.(Model)
	if model.current != before {
		t.Fatalf("route flapped without a session change")
	}

	if err := store.ResolveInitial(nil); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	store.SetProfile(testProfile(true))
	next, _ = model.Update(sessionChangedMsg{session: store.Snapshot()})
	model = next.(Model)
	if model.current != routeDashboard {
		t.Fatalf("after login: route %d, want dashboard", model.current)
	}
}

func TestModelRedirectsToLoginOnLogout(t *testing.T) {
	t.Parallel()
	model, store := newTestModel()
	store.ResolveInitial(testProfile(true))

	next, _ := model.Update(sessionChangedMsg{session: store.Snapshot()})
	model = next.(Model)
	if model.current != routeDashboard {
		t.Fatalf("route %d, want dashboard", model.current)
	}

	store.SetProfile(nil)
	next, _ = model.Update(sessionChangedMsg{session: store.Snapshot()})
	model = next.(Model)
	if model.current != routeLogin {
		t.Fatalf("after logout: route %d, want login", model.current)
	}
}

func TestModelShowsOnboardingForIncompleteProfile(t *testing.T) {
	t.Parallel()
	model, store := newTestModel()
	store.ResolveInitial(testProfile(false))

	next, _ := model.Update(sessionChangedMsg{session: store.Snapshot()})
	model = next.(Model)
	if model.current != routeOnboarding {
		t.Fatalf("route %d, want onboarding", model.current)
	}
}

func TestToastDismissesOnKey(t *testing.T) {
	t.Parallel()
	cases := []tea.KeyMsg{
		{Type: tea.KeyEsc},
		{Type: tea.KeyRunes, Runes: []rune{'x'}},
	}
	for _, keyMsg := range cases {
		model, _ := newTestModel()
		next, _ := model.Update(noticeMsg{notice: notify.Notice{
			UserMessage: "Contentpakket basispakket is niet bereikbaar.",
			Origin:      notify.OriginProvider,
		}})
		model = next.(Model)
		if !model.toast.Visible() {
			t.Fatalf("toast must be visible before dismissal")
		}

		next, _ = model.Update(keyMsg)
		model = next.(Model)
		if model.toast.Visible() {
			t.Fatalf("key %q must dismiss the toast", keyMsg.String())
		}
	}
}

func TestNoticeShowsToast(t *testing.T) {
	t.Parallel()
	model, _ := newTestModel()

	next, _ := model.Update(noticeMsg{notice: notify.Notice{
		UserMessage: "Opslaan is niet gelukt.",
		Origin:      notify.OriginOnboarding,
	}})
	model = next.(Model)
	if !model.toast.Visible() {
		t.Fatalf("toast must be visible after a notice")
	}
}
