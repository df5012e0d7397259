package in

import (
	"context"
	"time"

	contentdto "flo8/internal/modules/content/dto"
	contentin "flo8/internal/modules/content/port/in"
)

type CLIHandler struct {
	usecase contentin.Usecase
}

func NewCLIHandler(usecase contentin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context, kind string) ([]contentdto.ItemOutput, error) {
	return h.usecase.List(ctx, kind)
}

func (h CLIHandler) Get(ctx context.Context, slug string) (contentdto.ItemDetail, error) {
	return h.usecase.Get(ctx, slug)
}

func (h CLIHandler) DailyCard(ctx context.Context) (contentdto.ItemOutput, error) {
	return h.usecase.DailyCard(ctx, time.Time{})
}

func (h CLIHandler) CompleteCard(ctx context.Context, itemID string) (contentdto.CompleteOutput, error) {
	return h.usecase.CompleteCard(ctx, itemID, time.Time{})
}

func (h CLIHandler) GuidePage(ctx context.Context, slug string, page int) (contentdto.GuidePageOutput, error) {
	return h.usecase.GuidePage(ctx, slug, page)
}

func (h CLIHandler) Reindex(ctx context.Context) (int, error) {
	return h.usecase.Reindex(ctx)
}
