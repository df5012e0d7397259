package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"flo8/internal/modules/account/domain"
	"flo8/internal/modules/account/dto"
	accountin "flo8/internal/modules/account/port/in"
	"flo8/internal/modules/account/service"
	apperrors "flo8/internal/platform/errors"
	"flo8/internal/platform/notify"
)

type Interactor struct {
	svc    *service.AccountService
	store  *domain.Store
	bus    *notify.Bus
	logger *zap.Logger
}

func NewInteractor(svc *service.AccountService, store *domain.Store, bus *notify.Bus, logger *zap.Logger) accountin.Usecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interactor{svc: svc, store: store, bus: bus, logger: logger}
}

// Bootstrap loads the remembered login and resolves the session store's
// initial value. It never fails: an unreadable or stale login resolves to
// unauthenticated, and anything other than a plain "nobody logged in" is
// surfaced as a notice.
func (i *Interactor) Bootstrap(ctx context.Context) dto.SessionOutput {
	profile, err := i.svc.CurrentProfile(ctx)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotAuthenticated) && i.bus != nil {
			i.bus.Publish(notify.Notice{
				UserMessage: "Je sessie kon niet worden hersteld. Log opnieuw in.",
				Origin:      notify.OriginBootstrap,
			})
		}
		_ = i.store.ResolveInitial(nil)
		return toSessionOutput(i.store.Snapshot())
	}
	_ = i.store.ResolveInitial(&profile)
	return toSessionOutput(i.store.Snapshot())
}

func (i *Interactor) Login(ctx context.Context, input dto.LoginInput) (dto.ProfileOutput, error) {
	profile, err := i.svc.Login(ctx, input.Email, input.Password)
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	i.store.SetProfile(&profile)
	return toProfileOutput(profile), nil
}

func (i *Interactor) Logout(ctx context.Context) error {
	if err := i.svc.Logout(ctx); err != nil {
		return err
	}
	i.store.SetProfile(nil)
	return nil
}

func (i *Interactor) CurrentProfile(ctx context.Context) (dto.ProfileOutput, error) {
	profile, err := i.svc.CurrentProfile(ctx)
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	return toProfileOutput(profile), nil
}

func (i *Interactor) UpdateProfile(ctx context.Context, id string, input dto.UpdateInput) error {
	update := domain.ProfileUpdate{
		Name:             input.Name,
		NotificationTime: input.NotificationTime,
		MobilityLimited:  input.MobilityLimited,
	}
	if input.Theme != nil {
		theme := domain.Theme(*input.Theme)
		update.Theme = &theme
	}
	if err := i.svc.Update(ctx, id, update); err != nil {
		return err
	}
	i.mergeIfCurrent(id, update)
	return nil
}

func (i *Interactor) AdvanceStreak(ctx context.Context, id string) (int, error) {
	streak, err := i.svc.AdvanceStreak(ctx, id)
	if err != nil {
		return 0, err
	}
	i.mergeIfCurrent(id, domain.ProfileUpdate{Streak: &streak})
	return streak, nil
}

func (i *Interactor) ChangePassword(ctx context.Context, input dto.ChangePasswordInput) error {
	return i.svc.ChangePassword(ctx, input.Current, input.Next)
}

// ResetOnboarding clears the completion flag so the wizard runs again on the
// next launch. It exists for support and local testing.
func (i *Interactor) ResetOnboarding(ctx context.Context, id string) error {
	incomplete := false
	update := domain.ProfileUpdate{OnboardingComplete: &incomplete}
	if err := i.svc.Update(ctx, id, update); err != nil {
		return err
	}
	i.mergeIfCurrent(id, update)
	return nil
}

// mergeIfCurrent applies a persisted update to the in-memory session, but
// only when the session still holds the same profile. A result landing after
// a different login is discarded quietly; a merge refused by the store is a
// sequencing defect and gets logged.
func (i *Interactor) mergeIfCurrent(id string, update domain.ProfileUpdate) {
	snapshot := i.store.Snapshot()
	if snapshot.Profile != nil && snapshot.Profile.ID != id {
		return
	}
	if err := i.store.MergeProfile(update); err != nil {
		// Losing the race against a logout means the caller's sequencing is
		// off; the persisted update itself stands.
		i.logger.Warn("profile merge refused", zap.String("profile_id", id), zap.Error(err))
	}
}

func toSessionOutput(s domain.Session) dto.SessionOutput {
	out := dto.SessionOutput{
		Initializing:  s.Initializing,
		Authenticated: s.Authenticated(),
	}
	if s.Profile != nil {
		p := toProfileOutput(*s.Profile)
		out.Profile = &p
	}
	return out
}

func toProfileOutput(p domain.Profile) dto.ProfileOutput {
	baseline := map[string]int{}
	for _, dim := range domain.Dimensions() {
		baseline[string(dim)] = p.Baseline.Get(dim)
	}
	return dto.ProfileOutput{
		ID:                 p.ID,
		Email:              p.Email,
		Name:               p.Name,
		Plan:               string(p.Plan),
		PlanActiveUntil:    p.PlanActiveUntil,
		OnboardingComplete: p.OnboardingComplete,
		Streak:             p.Streak,
		Goals:              append([]string(nil), p.Goals...),
		Baseline:           baseline,
		MobilityLimited:    p.MobilityLimited,
		NotificationTime:   p.NotificationTime,
		Theme:              string(p.Theme),
	}
}
