package usecase

import (
	"context"

	"flo8/internal/modules/provider/dto"
	providerin "flo8/internal/modules/provider/port/in"
	"flo8/internal/modules/provider/service"
)

type Interactor struct {
	svc *service.ProviderService
}

func NewInteractor(svc *service.ProviderService) providerin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.ProviderInfo, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return i.svc.Doctor(ctx)
}

func (i *Interactor) ListItems(ctx context.Context, providerName string) ([]dto.ItemOutput, error) {
	return i.svc.ListItems(ctx, providerName)
}

func (i *Interactor) CollectItems(ctx context.Context) (dto.CollectOutput, error) {
	return i.svc.CollectItems(ctx)
}
