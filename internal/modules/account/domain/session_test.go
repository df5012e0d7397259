package domain_test

import (
	"errors"
	"testing"

	"flo8/internal/modules/account/domain"
	apperrors "flo8/internal/platform/errors"
)

func TestStoreStartsInitializing(t *testing.T) {
	t.Parallel()
	store := domain.NewStore()
	s := store.Snapshot()
	if !s.Initializing {
		t.Fatalf("fresh store must be initializing")
	}
	if s.Profile != nil {
		t.Fatalf("fresh store must have no profile")
	}
	if s.Authenticated() {
		t.Fatalf("initializing session must not count as authenticated")
	}
}

func TestResolveInitialRunsExactlyOnce(t *testing.T) {
	t.Parallel()
	store := domain.NewStore()
	p := validProfile()
	if err := store.ResolveInitial(&p); err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	s := store.Snapshot()
	if s.Initializing {
		t.Fatalf("resolve must drop the initializing flag")
	}
	if s.Profile == nil || s.Profile.ID != p.ID {
		t.Fatalf("resolve must set the profile")
	}

	other := validProfile()
	other.ID = "other"
	err := store.ResolveInitial(&other)
	if !errors.Is(err, apperrors.ErrAlreadyResolved) {
		t.Fatalf("second resolve must be rejected, got %v", err)
	}
	s = store.Snapshot()
	if s.Profile.ID != p.ID || s.Initializing {
		t.Fatalf("rejected resolve must not change state")
	}
}

func TestResolveInitialWithAbsentProfile(t *testing.T) {
	t.Parallel()
	store := domain.NewStore()
	if err := store.ResolveInitial(nil); err != nil {
		t.Fatalf("resolve absent: %v", err)
	}
	s := store.Snapshot()
	if s.Initializing || s.Profile != nil {
		t.Fatalf("absent resolve must yield an unauthenticated, settled session")
	}
}

func TestMergeProfileWithoutProfileFails(t *testing.T) {
	t.Parallel()
	store := domain.NewStore()
	_ = store.ResolveInitial(nil)
	flag := true
	err := store.MergeProfile(domain.ProfileUpdate{OnboardingComplete: &flag})
	if !errors.Is(err, apperrors.ErrNoProfile) {
		t.Fatalf("merge without profile must fail with ErrNoProfile, got %v", err)
	}
}

func TestMergeProfileAppliesUpdate(t *testing.T) {
	t.Parallel()
	store := domain.NewStore()
	p := validProfile()
	_ = store.ResolveInitial(&p)

	streak := 4
	if err := store.MergeProfile(domain.ProfileUpdate{Streak: &streak}); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if got := store.Snapshot().Profile.Streak; got != 4 {
		t.Fatalf("streak not merged, got %d", got)
	}
}

func TestSubscribersSeeEveryMutationAfterItIsApplied(t *testing.T) {
	t.Parallel()
	store := domain.NewStore()
	var seen []domain.Session
	unsubscribe := store.Subscribe(func(s domain.Session) {
		seen = append(seen, s)
	})

	p := validProfile()
	_ = store.ResolveInitial(&p)
	store.SetProfile(nil)

	if len(seen) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(seen))
	}
	if seen[0].Initializing || seen[0].Profile == nil {
		t.Fatalf("first notification must carry the resolved state")
	}
	if seen[1].Profile != nil {
		t.Fatalf("second notification must carry the logout")
	}

	unsubscribe()
	store.SetProfile(&p)
	if len(seen) != 2 {
		t.Fatalf("unsubscribed handler must not fire")
	}
}

func TestSnapshotIsIsolatedFromLaterMutations(t *testing.T) {
	t.Parallel()
	store := domain.NewStore()
	p := validProfile()
	_ = store.ResolveInitial(&p)

	before := store.Snapshot()
	goals := []string{"Afvallen"}
	_ = store.MergeProfile(domain.ProfileUpdate{Goals: &goals})

	if len(before.Profile.Goals) != 0 {
		t.Fatalf("snapshot must not observe later merges")
	}
}
