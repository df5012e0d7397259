package out

import (
	"context"

	"flo8/internal/modules/provider/domain"
)

type ManifestStore interface {
	Load(ctx context.Context) ([]domain.Manifest, error)
}

// Host starts a provider binary, performs one call and tears it down.
type Host interface {
	CheckLifecycle(ctx context.Context, manifest domain.Manifest) error
	GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error)
	ListItems(ctx context.Context, manifest domain.Manifest) ([]domain.ProviderItem, error)
	GetDailyCard(ctx context.Context, manifest domain.Manifest, date string, goals []string, mobilityLimited bool) (*domain.ProviderItem, error)
}

// ChecksumVerifier validates a manifest's binary against its pinned hash.
type ChecksumVerifier interface {
	Verify(ctx context.Context, manifest domain.Manifest) error
}
