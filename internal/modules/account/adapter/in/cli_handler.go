package in

import (
	"context"

	accountdto "flo8/internal/modules/account/dto"
	accountin "flo8/internal/modules/account/port/in"
)

type CLIHandler struct {
	usecase accountin.Usecase
}

func NewCLIHandler(usecase accountin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Login(ctx context.Context, email, password string) (accountdto.ProfileOutput, error) {
	return h.usecase.Login(ctx, accountdto.LoginInput{Email: email, Password: password})
}

func (h CLIHandler) Logout(ctx context.Context) error {
	return h.usecase.Logout(ctx)
}

func (h CLIHandler) WhoAmI(ctx context.Context) (accountdto.ProfileOutput, error) {
	return h.usecase.CurrentProfile(ctx)
}

func (h CLIHandler) SetProfile(ctx context.Context, id string, input accountdto.UpdateInput) error {
	return h.usecase.UpdateProfile(ctx, id, input)
}

func (h CLIHandler) ResetOnboarding(ctx context.Context, id string) error {
	return h.usecase.ResetOnboarding(ctx, id)
}
