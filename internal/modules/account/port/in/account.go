package in

import (
	"context"

	"flo8/internal/modules/account/dto"
)

type Usecase interface {
	// Bootstrap resolves the session store's initial value exactly once and
	// must run before any route is evaluated.
	Bootstrap(ctx context.Context) dto.SessionOutput
	Login(ctx context.Context, input dto.LoginInput) (dto.ProfileOutput, error)
	Logout(ctx context.Context) error
	CurrentProfile(ctx context.Context) (dto.ProfileOutput, error)
	UpdateProfile(ctx context.Context, id string, input dto.UpdateInput) error
	AdvanceStreak(ctx context.Context, id string) (int, error)
	ChangePassword(ctx context.Context, input dto.ChangePasswordInput) error
	ResetOnboarding(ctx context.Context, id string) error
}
