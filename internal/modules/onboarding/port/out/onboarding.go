package out

import (
	"context"

	account "flo8/internal/modules/account/domain"
)

// ProfileMutator persists the wizard's final answers as one atomic update.
type ProfileMutator interface {
	Mutate(ctx context.Context, profileID string, update account.ProfileUpdate) error
}
