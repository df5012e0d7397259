package out_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"flo8/internal/modules/account/adapter/out"
	"flo8/internal/modules/account/domain"
	apperrors "flo8/internal/platform/errors"
)

func newStore(t *testing.T) *out.SQLiteProfileStore {
	t.Helper()
	store, err := out.NewSQLiteProfileStore(filepath.Join(t.TempDir(), "flo8.db"))
	if err != nil {
		t.Fatalf("NewSQLiteProfileStore: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestLoginWithSeededAccount(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	profile, err := store.Login(context.Background(), "test@flo8.nl", "wachtwoord123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if profile.Name != "Sander de Tester" || profile.Plan != domain.PlanW8 {
		t.Fatalf("unexpected seeded profile: %+v", profile)
	}
	if profile.OnboardingComplete {
		t.Fatal("seeded account must start with onboarding incomplete")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	_, err := store.Login(context.Background(), "test@flo8.nl", "verkeerd")
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	_, err = store.Login(context.Background(), "onbekend@flo8.nl", "wachtwoord123")
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("unknown email must map to the same error, got %v", err)
	}
}

func TestUpdateRoundTrip(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	profile, err := store.Login(context.Background(), "test@flo8.nl", "wachtwoord123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	goals := []string{"beter-slapen", "meer-energie"}
	baseline := domain.DefaultBaseline()
	baseline.Sleep = 3
	done := true
	update := domain.ProfileUpdate{Goals: &goals, Baseline: &baseline, OnboardingComplete: &done}
	if err := store.Update(context.Background(), profile.ID, update); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := store.FindByID(context.Background(), profile.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if !got.OnboardingComplete {
		t.Fatal("onboarding flag not persisted")
	}
	if got.Baseline.Sleep != 3 || got.Baseline.Energy != 5 {
		t.Fatalf("baseline not persisted: %+v", got.Baseline)
	}
	if len(got.Goals) != 2 || got.Goals[0] != "beter-slapen" {
		t.Fatalf("goals not persisted: %v", got.Goals)
	}
}

func TestUpdateUnknownProfile(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	name := "Niemand"
	err := store.Update(context.Background(), "usr-onbekend", domain.ProfileUpdate{Name: &name})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	if err := store.ChangePassword(context.Background(), "usr-test", "verkeerd", "nieuwwachtwoord"); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("wrong current password must be rejected, got %v", err)
	}
	if err := store.ChangePassword(context.Background(), "usr-test", "wachtwoord123", "nieuwwachtwoord"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if _, err := store.Login(context.Background(), "test@flo8.nl", "nieuwwachtwoord"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "flo8.db")
	first, err := out.NewSQLiteProfileStore(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	name := "Aangepast"
	if err := first.Update(context.Background(), "usr-test", domain.ProfileUpdate{Name: &name}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second, err := out.NewSQLiteProfileStore(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer second.Close()
	got, err := second.FindByID(context.Background(), "usr-test")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Name != "Aangepast" {
		t.Fatalf("reopen reseeded over existing data: %+v", got)
	}
}
