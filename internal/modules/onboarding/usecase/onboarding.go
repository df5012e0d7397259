package usecase

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	account "flo8/internal/modules/account/domain"
	"flo8/internal/modules/onboarding/domain"
	"flo8/internal/modules/onboarding/dto"
	onboardingin "flo8/internal/modules/onboarding/port/in"
	"flo8/internal/modules/onboarding/service"
	apperrors "flo8/internal/platform/errors"
	"flo8/internal/platform/notify"
)

// Interactor owns the single wizard draft for the running client. All
// methods are safe for the Cmd-goroutine boundary.
type Interactor struct {
	mu       sync.Mutex
	draft    domain.Draft
	active   bool
	inFlight bool
	profile  string

	svc     *service.OnboardingService
	session *account.Store
	bus     *notify.Bus
	logger  *zap.Logger
}

func NewInteractor(svc *service.OnboardingService, session *account.Store, bus *notify.Bus, logger *zap.Logger) onboardingin.Usecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interactor{svc: svc, session: session, bus: bus, logger: logger}
}

// Begin seeds a fresh draft from the logged-in profile. Calling it again
// discards any previous draft.
func (i *Interactor) Begin(_ context.Context) (dto.DraftOutput, error) {
	snap := i.session.Snapshot()
	if snap.Initializing || snap.Profile == nil {
		return dto.DraftOutput{}, apperrors.ErrNotAuthenticated
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	if i.inFlight {
		return i.outputLocked(), apperrors.ErrCommitInFlight
	}
	i.draft = domain.NewDraft(*snap.Profile)
	i.active = true
	i.profile = snap.Profile.ID
	return i.outputLocked(), nil
}

func (i *Interactor) Snapshot(_ context.Context) (dto.DraftOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if !i.active {
		return dto.DraftOutput{}, fmt.Errorf("onboarding has not begun")
	}
	return i.outputLocked(), nil
}

func (i *Interactor) ToggleGoal(_ context.Context, slug string) (dto.DraftOutput, error) {
	return i.mutate(func() error { return i.draft.ToggleGoal(slug) })
}

func (i *Interactor) SetBaseline(_ context.Context, dimension string, value int) (dto.DraftOutput, error) {
	dim, err := i.svc.ParseDimension(dimension)
	if err != nil {
		return dto.DraftOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	return i.mutate(func() error { return i.draft.SetBaseline(dim, value) })
}

func (i *Interactor) SetMobility(_ context.Context, limited bool) (dto.DraftOutput, error) {
	return i.mutate(func() error { return i.draft.SetMobility(limited) })
}

func (i *Interactor) Retreat(_ context.Context) (dto.DraftOutput, error) {
	return i.mutate(func() error { return i.draft.Retreat() })
}

// Advance moves the wizard forward; from the last step it commits all
// answers as one profile update. A commit already underway is neither
// queued nor restarted. A failed commit leaves the wizard on the last step
// so the same Advance can retry it.
func (i *Interactor) Advance(ctx context.Context) (dto.DraftOutput, error) {
	i.mu.Lock()
	if !i.active {
		i.mu.Unlock()
		return dto.DraftOutput{}, fmt.Errorf("onboarding has not begun")
	}
	if i.inFlight {
		out := i.outputLocked()
		i.mu.Unlock()
		return out, apperrors.ErrCommitInFlight
	}
	if !i.draft.Final() {
		err := i.draft.Advance()
		out := i.outputLocked()
		i.mu.Unlock()
		return out, err
	}
	i.inFlight = true
	draft := i.draft
	profileID := i.profile
	i.mu.Unlock()

	update, err := i.svc.Commit(ctx, profileID, draft)

	i.mu.Lock()
	i.inFlight = false
	if err != nil {
		out := i.outputLocked()
		i.mu.Unlock()
		i.bus.Publish(notify.Notice{
			UserMessage: "Opslaan is niet gelukt. Controleer je verbinding en probeer het opnieuw.",
			Origin:      notify.OriginOnboarding,
		})
		return out, err
	}
	i.draft.MarkCommitted()
	out := i.outputLocked()
	i.mu.Unlock()

	// A session that logged out or switched profiles mid-commit keeps the
	// persisted result but never sees it merged.
	snap := i.session.Snapshot()
	if snap.Profile != nil && snap.Profile.ID == profileID {
		if mergeErr := i.session.MergeProfile(update); mergeErr != nil {
			i.logger.Warn("onboarding merge refused", zap.Error(mergeErr))
		}
	}
	return out, nil
}

func (i *Interactor) mutate(apply func() error) (dto.DraftOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if !i.active {
		return dto.DraftOutput{}, fmt.Errorf("onboarding has not begun")
	}
	if i.inFlight {
		return i.outputLocked(), apperrors.ErrCommitInFlight
	}
	err := apply()
	return i.outputLocked(), err
}

func (i *Interactor) outputLocked() dto.DraftOutput {
	selected := map[string]bool{}
	for _, slug := range i.draft.Goals {
		selected[slug] = true
	}
	goals := make([]dto.GoalOutput, 0, len(domain.GoalCatalog()))
	for _, g := range domain.GoalCatalog() {
		goals = append(goals, dto.GoalOutput{Slug: g.Slug, Label: g.Label, Selected: selected[g.Slug]})
	}
	baseline := map[string]int{}
	for _, dim := range account.Dimensions() {
		baseline[string(dim)] = i.draft.Baseline.Get(dim)
	}
	return dto.DraftOutput{
		Step:            string(i.draft.Step),
		Goals:           goals,
		Baseline:        baseline,
		MobilityLimited: i.draft.MobilityLimited,
		Committed:       i.draft.Step == domain.StepCommitted,
		CommitPending:   i.inFlight,
	}
}
