package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	account "flo8/internal/modules/account/domain"
	accountdto "flo8/internal/modules/account/dto"
	adapterout "flo8/internal/modules/content/adapter/out"
	"flo8/internal/modules/content/domain"
	contentin "flo8/internal/modules/content/port/in"
	"flo8/internal/modules/content/service"
	"flo8/internal/modules/content/usecase"
	apperrors "flo8/internal/platform/errors"
)

type fakeAccounts struct {
	streak   int
	advanced int
}

func (f *fakeAccounts) Bootstrap(context.Context) accountdto.SessionOutput {
	return accountdto.SessionOutput{}
}

func (f *fakeAccounts) Login(context.Context, accountdto.LoginInput) (accountdto.ProfileOutput, error) {
	return accountdto.ProfileOutput{}, nil
}

func (f *fakeAccounts) Logout(context.Context) error { return nil }

func (f *fakeAccounts) CurrentProfile(context.Context) (accountdto.ProfileOutput, error) {
	return accountdto.ProfileOutput{}, nil
}

func (f *fakeAccounts) UpdateProfile(context.Context, string, accountdto.UpdateInput) error {
	return nil
}

func (f *fakeAccounts) AdvanceStreak(context.Context, string) (int, error) {
	f.advanced++
	f.streak++
	return f.streak, nil
}

func (f *fakeAccounts) ChangePassword(context.Context, accountdto.ChangePasswordInput) error {
	return nil
}

func (f *fakeAccounts) ResetOnboarding(context.Context, string) error { return nil }

type fixture struct {
	content  contentin.Usecase
	accounts *fakeAccounts
	session  *account.Store
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()

	vault := adapterout.NewVaultContentStore(filepath.Join(dir, "content"))
	seed := []domain.Item{
		{Kind: domain.KindDailyCard, Title: "Ademhalingsoefening", Goals: []string{"minder-stress"}, MobilityFriendly: true},
		{Kind: domain.KindDailyCard, Title: "Korte wandeling", Goals: []string{"fitter-worden"}, MobilityFriendly: false},
		{Kind: domain.KindRecipe, Title: "Havermout met banaan", Goals: []string{"afvallen"}, MobilityFriendly: true},
		{Kind: domain.KindExercise, Title: "Krachttraining thuis", MobilityFriendly: false},
	}
	for _, item := range seed {
		if _, err := vault.Save(ctx, item); err != nil {
			t.Fatalf("seed content: %v", err)
		}
	}

	index, err := adapterout.NewSQLiteContentIndex(filepath.Join(dir, "flo8.db"))
	if err != nil {
		t.Fatalf("NewSQLiteContentIndex: %v", err)
	}
	t.Cleanup(func() { _ = index.Close() })

	session := account.NewStore()
	_ = session.ResolveInitial(&account.Profile{
		ID:       "usr-1",
		Email:    "test@flo8.nl",
		Plan:     account.PlanW8,
		Goals:    []string{"minder-stress"},
		Baseline: account.DefaultBaseline(),
		Theme:    account.ThemeLight,
	})

	accounts := &fakeAccounts{}
	svc := service.NewContentService(index, vault)
	uc := usecase.NewInteractor(svc, session, accounts, index, adapterout.NewLocalPDFGuideReader(), nil)

	if _, err := uc.Reindex(ctx); err != nil {
		t.Fatalf("Reindex: %v", err)
	}
	return fixture{content: uc, accounts: accounts, session: session}
}

func TestReindexCountsItems(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	count, err := f.content.Reindex(context.Background())
	if err != nil {
		t.Fatalf("Reindex: %v", err)
	}
	if count != 4 {
		t.Fatalf("indexed %d items, want 4", count)
	}
}

func TestListFiltersToProfile(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	items, err := f.content.List(context.Background(), "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for _, item := range items {
		if item.Slug == "korte-wandeling" {
			t.Fatal("item for a goal the member does not have leaked through")
		}
	}
	recipes, err := f.content.List(context.Background(), "recipe")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recipes) != 0 {
		t.Fatalf("recipe for another goal leaked: %+v", recipes)
	}
}

func TestGetReturnsBody(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	detail, err := f.content.Get(context.Background(), "havermout-met-banaan")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if detail.Kind != "recipe" || detail.Title != "Havermout met banaan" {
		t.Fatalf("Get result: %+v", detail.ItemOutput)
	}
}

func TestDailyCardMatchesGoals(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	date := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	card, err := f.content.DailyCard(context.Background(), date)
	if err != nil {
		t.Fatalf("DailyCard: %v", err)
	}
	if card.Slug != "ademhalingsoefening" {
		t.Fatalf("daily card = %q, want the stress card", card.Slug)
	}
	again, err := f.content.DailyCard(context.Background(), date)
	if err != nil {
		t.Fatalf("DailyCard: %v", err)
	}
	if again.ID != card.ID {
		t.Fatal("same date must pick the same card")
	}
}

func TestDailyCardRequiresLogin(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.session.SetProfile(nil)
	if _, err := f.content.DailyCard(context.Background(), time.Now()); !errors.Is(err, apperrors.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestCompleteCardAdvancesStreakOncePerDay(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	date := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	first, err := f.content.CompleteCard(context.Background(), "itm-ademhalingsoefening", date)
	if err != nil {
		t.Fatalf("CompleteCard: %v", err)
	}
	if first.AlreadyCompleted || first.Streak != 1 {
		t.Fatalf("first completion: %+v", first)
	}

	second, err := f.content.CompleteCard(context.Background(), "itm-ademhalingsoefening", date)
	if err != nil {
		t.Fatalf("CompleteCard: %v", err)
	}
	if !second.AlreadyCompleted {
		t.Fatal("second completion on the same date must be a no-op")
	}
	if f.accounts.advanced != 1 {
		t.Fatalf("streak advanced %d times, want 1", f.accounts.advanced)
	}

	next := date.AddDate(0, 0, 1)
	third, err := f.content.CompleteCard(context.Background(), "itm-ademhalingsoefening", next)
	if err != nil {
		t.Fatalf("CompleteCard: %v", err)
	}
	if third.AlreadyCompleted || third.Streak != 2 {
		t.Fatalf("next-day completion: %+v", third)
	}
}

func TestGuidePageWithoutGuide(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	if _, err := f.content.GuidePage(context.Background(), "havermout-met-banaan", 1); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing guide, got %v", err)
	}
}
