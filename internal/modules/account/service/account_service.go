package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"flo8/internal/modules/account/domain"
	accountout "flo8/internal/modules/account/port/out"
	apperrors "flo8/internal/platform/errors"
)

type AccountService struct {
	repo    accountout.ProfileRepository
	current accountout.CurrentUserStore
}

func NewAccountService(repo accountout.ProfileRepository, current accountout.CurrentUserStore) *AccountService {
	return &AccountService{repo: repo, current: current}
}

func (s *AccountService) Login(ctx context.Context, email, password string) (domain.Profile, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return domain.Profile{}, fmt.Errorf("%w: email and password are required", apperrors.ErrInvalidInput)
	}
	profile, err := s.repo.Login(ctx, email, password)
	if err != nil {
		return domain.Profile{}, err
	}
	if err := s.current.SaveCurrent(ctx, profile.ID); err != nil {
		return domain.Profile{}, fmt.Errorf("persist login: %w", err)
	}
	return profile, nil
}

func (s *AccountService) Logout(ctx context.Context) error {
	return s.current.ClearCurrent(ctx)
}

// CurrentProfile resolves the remembered login to a full profile. A stale
// pointer to a profile that no longer exists is cleared and reported as
// unauthenticated.
func (s *AccountService) CurrentProfile(ctx context.Context) (domain.Profile, error) {
	id, err := s.current.LoadCurrent(ctx)
	if err != nil {
		return domain.Profile{}, err
	}
	profile, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			_ = s.current.ClearCurrent(ctx)
			return domain.Profile{}, apperrors.ErrNotAuthenticated
		}
		return domain.Profile{}, err
	}
	return profile, nil
}

func (s *AccountService) Update(ctx context.Context, id string, update domain.ProfileUpdate) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: profile id is required", apperrors.ErrInvalidInput)
	}
	if err := update.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	return s.repo.Update(ctx, id, update)
}

func (s *AccountService) AdvanceStreak(ctx context.Context, id string) (int, error) {
	profile, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}
	next := profile.Streak + 1
	if err := s.repo.Update(ctx, id, domain.ProfileUpdate{Streak: &next}); err != nil {
		return 0, err
	}
	return next, nil
}

func (s *AccountService) ChangePassword(ctx context.Context, current, next string) error {
	if len(next) < 8 {
		return fmt.Errorf("%w: wachtwoord moet minimaal 8 tekens zijn", apperrors.ErrInvalidInput)
	}
	id, err := s.current.LoadCurrent(ctx)
	if err != nil {
		return err
	}
	return s.repo.ChangePassword(ctx, id, current, next)
}
