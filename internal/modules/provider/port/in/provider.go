package in

import (
	"context"

	"flo8/internal/modules/provider/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.ProviderInfo, error)
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
	ListItems(ctx context.Context, providerName string) ([]dto.ItemOutput, error)
	// CollectItems aggregates content from every enabled provider with the
	// content capability. A provider that fails is reported, not fatal.
	CollectItems(ctx context.Context) (dto.CollectOutput, error)
}
