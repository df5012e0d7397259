package in

import (
	"context"
	"time"

	"flo8/internal/modules/content/dto"
)

type Usecase interface {
	// List returns indexed items, optionally narrowed to one kind. Results
	// are filtered to the logged-in profile when one is present.
	List(ctx context.Context, kind string) ([]dto.ItemOutput, error)
	Get(ctx context.Context, slug string) (dto.ItemDetail, error)
	// DailyCard picks the card of the day for the logged-in profile.
	DailyCard(ctx context.Context, date time.Time) (dto.ItemOutput, error)
	// CompleteCard marks the card done for the date and advances the streak;
	// completing the same date twice is a no-op.
	CompleteCard(ctx context.Context, itemID string, date time.Time) (dto.CompleteOutput, error)
	GuidePage(ctx context.Context, slug string, page int) (dto.GuidePageOutput, error)
	// Reindex rebuilds the content index from every configured store and
	// returns the number of items indexed.
	Reindex(ctx context.Context) (int, error)
}
