package out_test

import (
	"context"
	"errors"
	"testing"

	"flo8/internal/modules/account/adapter/out"
	apperrors "flo8/internal/platform/errors"
)

func TestCurrentUserRoundTrip(t *testing.T) {
	t.Parallel()

	store := out.NewFileCurrentUserStore(t.TempDir())
	if _, err := store.LoadCurrent(context.Background()); !errors.Is(err, apperrors.ErrNotAuthenticated) {
		t.Fatalf("fresh store must report unauthenticated, got %v", err)
	}

	if err := store.SaveCurrent(context.Background(), "usr-test"); err != nil {
		t.Fatalf("SaveCurrent: %v", err)
	}
	id, err := store.LoadCurrent(context.Background())
	if err != nil {
		t.Fatalf("LoadCurrent: %v", err)
	}
	if id != "usr-test" {
		t.Fatalf("loaded id = %q", id)
	}

	if err := store.ClearCurrent(context.Background()); err != nil {
		t.Fatalf("ClearCurrent: %v", err)
	}
	if _, err := store.LoadCurrent(context.Background()); !errors.Is(err, apperrors.ErrNotAuthenticated) {
		t.Fatalf("cleared store must report unauthenticated, got %v", err)
	}
	if err := store.ClearCurrent(context.Background()); err != nil {
		t.Fatalf("clearing twice must be a no-op, got %v", err)
	}
}
