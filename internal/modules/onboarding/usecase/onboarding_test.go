package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	account "flo8/internal/modules/account/domain"
	"flo8/internal/modules/onboarding/domain"
	onboardingin "flo8/internal/modules/onboarding/port/in"
	"flo8/internal/modules/onboarding/service"
	"flo8/internal/modules/onboarding/usecase"
	apperrors "flo8/internal/platform/errors"
	"flo8/internal/platform/notify"
)

type fakeMutator struct {
	mu      sync.Mutex
	calls   []account.ProfileUpdate
	err     error
	block   chan struct{}
	onApply func()
}

func (m *fakeMutator) Mutate(_ context.Context, _ string, update account.ProfileUpdate) error {
	if m.block != nil {
		<-m.block
	}
	m.mu.Lock()
	m.calls = append(m.calls, update)
	m.mu.Unlock()
	if m.onApply != nil {
		m.onApply()
	}
	return m.err
}

func (m *fakeMutator) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func authedStore() *account.Store {
	store := account.NewStore()
	_ = store.ResolveInitial(&account.Profile{
		ID:       "usr-1",
		Email:    "test@flo8.nl",
		Name:     "Sander de Tester",
		Plan:     account.PlanW8,
		Baseline: account.DefaultBaseline(),
		Theme:    account.ThemeLight,
	})
	return store
}

func newWizard(mutator *fakeMutator, store *account.Store, bus *notify.Bus) onboardingin.Usecase {
	return usecase.NewInteractor(service.NewOnboardingService(mutator), store, bus, nil)
}

func TestBeginRequiresLogin(t *testing.T) {
	t.Parallel()

	store := account.NewStore()
	wizard := newWizard(&fakeMutator{}, store, notify.NewBus())
	if _, err := wizard.Begin(context.Background()); !errors.Is(err, apperrors.ErrNotAuthenticated) {
		t.Fatalf("begin while initializing must fail, got %v", err)
	}

	_ = store.ResolveInitial(nil)
	if _, err := wizard.Begin(context.Background()); !errors.Is(err, apperrors.ErrNotAuthenticated) {
		t.Fatalf("begin without profile must fail, got %v", err)
	}
}

func TestFullWizardRun(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mutator := &fakeMutator{}
	store := authedStore()
	wizard := newWizard(mutator, store, notify.NewBus())

	out, err := wizard.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if out.Step != string(domain.StepGoals) {
		t.Fatalf("wizard starts at %q", out.Step)
	}
	if len(out.Goals) != 5 {
		t.Fatalf("goal catalog has %d entries, want 5", len(out.Goals))
	}

	if _, err := wizard.ToggleGoal(ctx, "beter-slapen"); err != nil {
		t.Fatalf("ToggleGoal: %v", err)
	}
	if _, err := wizard.ToggleGoal(ctx, "meer-energie"); err != nil {
		t.Fatalf("ToggleGoal: %v", err)
	}
	if _, err := wizard.Advance(ctx); err != nil {
		t.Fatalf("Advance to baseline: %v", err)
	}
	if _, err := wizard.SetBaseline(ctx, "sleep", 3); err != nil {
		t.Fatalf("SetBaseline: %v", err)
	}
	if _, err := wizard.Advance(ctx); err != nil {
		t.Fatalf("Advance to preferences: %v", err)
	}
	if _, err := wizard.SetMobility(ctx, true); err != nil {
		t.Fatalf("SetMobility: %v", err)
	}

	out, err = wizard.Advance(ctx)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if !out.Committed {
		t.Fatalf("wizard not committed: %+v", out)
	}
	if mutator.callCount() != 1 {
		t.Fatalf("mutator called %d times, want 1", mutator.callCount())
	}
	update := mutator.calls[0]
	if update.Goals == nil || len(*update.Goals) != 2 {
		t.Fatalf("committed goals = %v", update.Goals)
	}
	if update.Baseline == nil || update.Baseline.Sleep != 3 {
		t.Fatalf("committed baseline = %+v", update.Baseline)
	}
	if update.OnboardingComplete == nil || !*update.OnboardingComplete {
		t.Fatal("commit must complete onboarding")
	}

	snap := store.Snapshot()
	if snap.Profile == nil || !snap.Profile.OnboardingComplete {
		t.Fatal("commit not merged into session")
	}
	if snap.Profile.Baseline.Sleep != 3 || !snap.Profile.MobilityLimited {
		t.Fatalf("merged profile = %+v", snap.Profile)
	}
}

func TestCommitFailureIsRetryable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mutator := &fakeMutator{err: errors.New("verbinding weggevallen")}
	store := authedStore()
	bus := notify.NewBus()
	notices, cancel := bus.Subscribe()
	defer cancel()
	wizard := newWizard(mutator, store, bus)

	if _, err := wizard.Begin(ctx); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if _, err := wizard.Advance(ctx); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if _, err := wizard.Advance(ctx); err != nil {
		t.Fatalf("Advance: %v", err)
	}

	out, err := wizard.Advance(ctx)
	if err == nil {
		t.Fatal("commit must fail")
	}
	if out.Step != string(domain.StepPreferences) || out.Committed {
		t.Fatalf("failed commit must stay on the last step, got %+v", out)
	}
	select {
	case n := <-notices:
		if n.Origin != notify.OriginOnboarding {
			t.Fatalf("notice origin = %q", n.Origin)
		}
	default:
		t.Fatal("failed commit must publish a notice")
	}
	if snap := store.Snapshot(); snap.Profile.OnboardingComplete {
		t.Fatal("failed commit must not touch the session")
	}

	mutator.err = nil
	out, err = wizard.Advance(ctx)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if !out.Committed {
		t.Fatalf("retry did not commit: %+v", out)
	}
	if mutator.callCount() != 2 {
		t.Fatalf("mutator called %d times, want 2", mutator.callCount())
	}
}

func TestSecondAdvanceWhilePendingIsIgnored(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mutator := &fakeMutator{block: make(chan struct{})}
	store := authedStore()
	wizard := newWizard(mutator, store, notify.NewBus())

	if _, err := wizard.Begin(ctx); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if _, err := wizard.Advance(ctx); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if _, err := wizard.Advance(ctx); err != nil {
		t.Fatalf("Advance: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := wizard.Advance(ctx)
		done <- err
	}()

	deadline := time.After(time.Second)
	for {
		out, err := wizard.Snapshot(ctx)
		if err != nil {
			t.Fatalf("Snapshot: %v", err)
		}
		if out.CommitPending {
			break
		}
		select {
		case <-deadline:
			t.Fatal("commit never became pending")
		case <-time.After(time.Millisecond):
		}
	}

	if _, err := wizard.Advance(ctx); !errors.Is(err, apperrors.ErrCommitInFlight) {
		t.Fatalf("second advance must be ignored, got %v", err)
	}

	close(mutator.block)
	if err := <-done; err != nil {
		t.Fatalf("first commit: %v", err)
	}
	if mutator.callCount() != 1 {
		t.Fatalf("mutator called %d times, want 1", mutator.callCount())
	}
}

func TestLogoutMidCommitDiscardsMerge(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := authedStore()
	mutator := &fakeMutator{}
	mutator.onApply = func() { store.SetProfile(nil) }
	wizard := newWizard(mutator, store, notify.NewBus())

	if _, err := wizard.Begin(ctx); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if _, err := wizard.Advance(ctx); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if _, err := wizard.Advance(ctx); err != nil {
		t.Fatalf("Advance: %v", err)
	}

	out, err := wizard.Advance(ctx)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if !out.Committed {
		t.Fatalf("commit result = %+v", out)
	}
	if snap := store.Snapshot(); snap.Profile != nil {
		t.Fatalf("merge after logout must be discarded, got %+v", snap.Profile)
	}
}
