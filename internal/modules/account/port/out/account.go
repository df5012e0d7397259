package out

import (
	"context"

	"flo8/internal/modules/account/domain"
)

// ProfileRepository is the persistence boundary for profiles and credentials.
type ProfileRepository interface {
	// Login returns the profile for matching credentials or
	// apperrors.ErrInvalidCredentials; the error message is user-displayable.
	Login(ctx context.Context, email, password string) (domain.Profile, error)
	FindByID(ctx context.Context, id string) (domain.Profile, error)
	// Update persists the partial fields; it must not touch anything on failure.
	Update(ctx context.Context, id string, update domain.ProfileUpdate) error
	ChangePassword(ctx context.Context, id, current, next string) error
}

// CurrentUserStore remembers which profile is logged in between runs.
type CurrentUserStore interface {
	SaveCurrent(ctx context.Context, userID string) error
	// LoadCurrent returns apperrors.ErrNotAuthenticated when nobody is logged in.
	LoadCurrent(ctx context.Context) (string, error)
	ClearCurrent(ctx context.Context) error
}
