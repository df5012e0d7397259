package in

import (
	"context"

	"flo8/internal/modules/onboarding/dto"
)

// Usecase drives the three-step onboarding wizard. Begin must be called with
// an authenticated session before anything else; Advance from the last step
// performs the commit.
type Usecase interface {
	Begin(ctx context.Context) (dto.DraftOutput, error)
	Snapshot(ctx context.Context) (dto.DraftOutput, error)
	ToggleGoal(ctx context.Context, slug string) (dto.DraftOutput, error)
	SetBaseline(ctx context.Context, dimension string, value int) (dto.DraftOutput, error)
	SetMobility(ctx context.Context, limited bool) (dto.DraftOutput, error)
	Advance(ctx context.Context) (dto.DraftOutput, error)
	Retreat(ctx context.Context) (dto.DraftOutput, error)
}
