package out

import (
	"context"
	"fmt"

	"flo8/internal/modules/content/domain"
	contentout "flo8/internal/modules/content/port/out"
	providerin "flo8/internal/modules/provider/port/in"
	"flo8/internal/platform/notify"
)

// ProviderContentSource exposes installed content providers as one content
// store. A provider that fails is skipped with a notice so the local content
// still indexes.
type ProviderContentSource struct {
	providers providerin.Usecase
	bus       *notify.Bus
}

func NewProviderContentSource(providers providerin.Usecase, bus *notify.Bus) contentout.ContentStore {
	return &ProviderContentSource{providers: providers, bus: bus}
}

func (s *ProviderContentSource) List(ctx context.Context) ([]domain.Item, error) {
	collected, err := s.providers.CollectItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect provider content: %w", err)
	}
	for _, failure := range collected.Failures {
		if s.bus != nil {
			s.bus.Publish(notify.Notice{
				UserMessage: fmt.Sprintf("Contentpakket %s is niet bereikbaar.", failure.Provider),
				Origin:      notify.OriginProvider,
			})
		}
	}
	out := make([]domain.Item, 0, len(collected.Items))
	for _, item := range collected.Items {
		out = append(out, domain.Item{
			ID:               item.ID,
			Kind:             domain.Kind(item.Kind),
			Title:            item.Title,
			Slug:             item.Slug,
			Tags:             item.Tags,
			Goals:            item.Goals,
			MobilityFriendly: item.MobilityFriendly,
			Minutes:          item.Minutes,
			Body:             item.Body,
			Source:           item.Provider,
		})
	}
	return out, nil
}
