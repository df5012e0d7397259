package usecase

import (
	"context"
	"fmt"
	"time"

	account "flo8/internal/modules/account/domain"
	accountin "flo8/internal/modules/account/port/in"
	"flo8/internal/modules/content/domain"
	"flo8/internal/modules/content/dto"
	contentin "flo8/internal/modules/content/port/in"
	contentout "flo8/internal/modules/content/port/out"
	"flo8/internal/modules/content/service"
	"flo8/internal/platform/clock"
	apperrors "flo8/internal/platform/errors"
)

type Interactor struct {
	svc         *service.ContentService
	session     *account.Store
	accounts    accountin.Usecase
	completions contentout.CompletionLog
	guides      contentout.GuideReader
	clock       clock.Clock
}

func NewInteractor(
	svc *service.ContentService,
	session *account.Store,
	accounts accountin.Usecase,
	completions contentout.CompletionLog,
	guides contentout.GuideReader,
	clk clock.Clock,
) contentin.Usecase {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &Interactor{
		svc:         svc,
		session:     session,
		accounts:    accounts,
		completions: completions,
		guides:      guides,
		clock:       clk,
	}
}

func (i *Interactor) List(ctx context.Context, kind string) ([]dto.ItemOutput, error) {
	items, err := i.svc.List(ctx, domain.Kind(kind))
	if err != nil {
		return nil, err
	}
	snap := i.session.Snapshot()
	out := make([]dto.ItemOutput, 0, len(items))
	for _, item := range items {
		if snap.Profile != nil && !item.MatchesProfile(snap.Profile.Goals, snap.Profile.MobilityLimited) {
			continue
		}
		out = append(out, toItemOutput(item))
	}
	return out, nil
}

func (i *Interactor) Get(ctx context.Context, slug string) (dto.ItemDetail, error) {
	item, err := i.svc.Get(ctx, slug)
	if err != nil {
		return dto.ItemDetail{}, err
	}
	return dto.ItemDetail{ItemOutput: toItemOutput(item), Body: item.Body}, nil
}

func (i *Interactor) DailyCard(ctx context.Context, date time.Time) (dto.ItemOutput, error) {
	snap := i.session.Snapshot()
	if !snap.Authenticated() {
		return dto.ItemOutput{}, apperrors.ErrNotAuthenticated
	}
	if date.IsZero() {
		date = i.clock.Now()
	}
	items, err := i.svc.List(ctx, domain.KindDailyCard)
	if err != nil {
		return dto.ItemOutput{}, err
	}
	card, err := domain.DailyCardFor(items, date, snap.Profile.Goals, snap.Profile.MobilityLimited)
	if err != nil {
		return dto.ItemOutput{}, fmt.Errorf("%w: %v", apperrors.ErrNotFound, err)
	}
	return toItemOutput(card), nil
}

func (i *Interactor) CompleteCard(ctx context.Context, itemID string, date time.Time) (dto.CompleteOutput, error) {
	snap := i.session.Snapshot()
	if !snap.Authenticated() {
		return dto.CompleteOutput{}, apperrors.ErrNotAuthenticated
	}
	if date.IsZero() {
		date = i.clock.Now()
	}
	day := date.Format("2006-01-02")

	done, err := i.completions.Completed(ctx, itemID, day)
	if err != nil {
		return dto.CompleteOutput{}, err
	}
	if done {
		return dto.CompleteOutput{Streak: snap.Profile.Streak, AlreadyCompleted: true}, nil
	}

	completion := domain.Completion{ItemID: itemID, Date: day, CompletedAt: i.clock.Now()}
	if err := i.completions.Record(ctx, completion); err != nil {
		return dto.CompleteOutput{}, err
	}
	streak, err := i.accounts.AdvanceStreak(ctx, snap.Profile.ID)
	if err != nil {
		return dto.CompleteOutput{}, err
	}
	return dto.CompleteOutput{Streak: streak}, nil
}

func (i *Interactor) GuidePage(ctx context.Context, slug string, page int) (dto.GuidePageOutput, error) {
	item, err := i.svc.Get(ctx, slug)
	if err != nil {
		return dto.GuidePageOutput{}, err
	}
	if item.GuidePath == "" {
		return dto.GuidePageOutput{}, fmt.Errorf("%w: %s has no guide", apperrors.ErrNotFound, slug)
	}
	if page < 1 {
		page = 1
	}
	text, total, err := i.guides.ReadPage(ctx, item.GuidePath, page)
	if err != nil {
		return dto.GuidePageOutput{}, err
	}
	if page > total && total > 0 {
		page = total
	}
	return dto.GuidePageOutput{Text: text, Page: page, Total: total}, nil
}

func (i *Interactor) Reindex(ctx context.Context) (int, error) {
	return i.svc.Reindex(ctx)
}

func toItemOutput(item domain.Item) dto.ItemOutput {
	return dto.ItemOutput{
		ID:               item.ID,
		Kind:             string(item.Kind),
		Title:            item.Title,
		Slug:             item.Slug,
		Tags:             append([]string(nil), item.Tags...),
		Goals:            append([]string(nil), item.Goals...),
		Minutes:          item.Minutes,
		MobilityFriendly: item.MobilityFriendly,
		HasGuide:         item.GuidePath != "",
		Source:           item.Source,
	}
}
