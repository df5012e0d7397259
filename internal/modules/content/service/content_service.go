package service

import (
	"context"
	"fmt"

	"flo8/internal/modules/content/domain"
	contentout "flo8/internal/modules/content/port/out"
)

type ContentService struct {
	stores []contentout.ContentStore
	index  contentout.ContentIndex
}

func NewContentService(index contentout.ContentIndex, stores ...contentout.ContentStore) *ContentService {
	return &ContentService{stores: stores, index: index}
}

// Reindex rebuilds the index from every store. A store that fails aborts
// the rebuild before the index is touched.
func (s *ContentService) Reindex(ctx context.Context) (int, error) {
	items := []domain.Item{}
	for _, store := range s.stores {
		listed, err := store.List(ctx)
		if err != nil {
			return 0, fmt.Errorf("list content: %w", err)
		}
		for _, item := range listed {
			if err := item.Validate(); err != nil {
				return 0, fmt.Errorf("invalid content item %s: %w", item.FilePath, err)
			}
			items = append(items, item)
		}
	}
	if err := s.index.Reset(ctx); err != nil {
		return 0, err
	}
	for _, item := range items {
		if err := s.index.Upsert(ctx, item); err != nil {
			return 0, err
		}
	}
	return len(items), nil
}

func (s *ContentService) List(ctx context.Context, kind domain.Kind) ([]domain.Item, error) {
	if kind == "" {
		out := []domain.Item{}
		for _, k := range domain.Kinds() {
			items, err := s.index.Query(ctx, k)
			if err != nil {
				return nil, err
			}
			out = append(out, items...)
		}
		return out, nil
	}
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	return s.index.Query(ctx, kind)
}

func (s *ContentService) Get(ctx context.Context, slug string) (domain.Item, error) {
	return s.index.FindBySlug(ctx, slug)
}
