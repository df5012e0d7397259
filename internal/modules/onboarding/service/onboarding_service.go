package service

import (
	"context"
	"fmt"

	account "flo8/internal/modules/account/domain"
	"flo8/internal/modules/onboarding/domain"
	onboardingout "flo8/internal/modules/onboarding/port/out"
)

type OnboardingService struct {
	mutator onboardingout.ProfileMutator
}

func NewOnboardingService(mutator onboardingout.ProfileMutator) *OnboardingService {
	return &OnboardingService{mutator: mutator}
}

// Commit writes the finished draft to the profile in a single update.
func (s *OnboardingService) Commit(ctx context.Context, profileID string, draft domain.Draft) (account.ProfileUpdate, error) {
	update := draft.BuildUpdate()
	if err := s.mutator.Mutate(ctx, profileID, update); err != nil {
		return account.ProfileUpdate{}, fmt.Errorf("commit onboarding: %w", err)
	}
	return update, nil
}

// ParseDimension maps a wire-level dimension name onto the fixed axis set.
func (s *OnboardingService) ParseDimension(name string) (account.Dimension, error) {
	for _, dim := range account.Dimensions() {
		if string(dim) == name {
			return dim, nil
		}
	}
	return "", fmt.Errorf("unknown baseline dimension %q", name)
}
