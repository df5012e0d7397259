package in

import (
	"context"

	providerdto "flo8/internal/modules/provider/dto"
	providerin "flo8/internal/modules/provider/port/in"
)

type CLIHandler struct {
	usecase providerin.Usecase
}

func NewCLIHandler(usecase providerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]providerdto.ProviderInfo, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Doctor(ctx context.Context) ([]providerdto.DoctorResult, error) {
	return h.usecase.Doctor(ctx)
}

func (h CLIHandler) ListItems(ctx context.Context, providerName string) ([]providerdto.ItemOutput, error) {
	return h.usecase.ListItems(ctx, providerName)
}
