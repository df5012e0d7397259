package out

import (
	"context"

	"flo8/internal/modules/content/domain"
)

// ContentStore is anything that can enumerate content items: the local
// content directory or an installed provider plugin.
type ContentStore interface {
	List(ctx context.Context) ([]domain.Item, error)
}

// ContentIndex is the queryable projection the browse commands read.
type ContentIndex interface {
	Reset(ctx context.Context) error
	Upsert(ctx context.Context, item domain.Item) error
	Query(ctx context.Context, kind domain.Kind) ([]domain.Item, error)
	FindBySlug(ctx context.Context, slug string) (domain.Item, error)
}

// CompletionLog records finished daily cards, one per calendar date.
type CompletionLog interface {
	Record(ctx context.Context, completion domain.Completion) error
	Completed(ctx context.Context, itemID, date string) (bool, error)
	History(ctx context.Context, limit int) ([]domain.Completion, error)
}

// GuideReader extracts a page of text from an item's PDF guide.
type GuideReader interface {
	ReadPage(ctx context.Context, path string, page int) (string, int, error)
}
