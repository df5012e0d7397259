package bootstrap

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	accountinadapter "flo8/internal/modules/account/adapter/in"
	accountoutadapter "flo8/internal/modules/account/adapter/out"
	accountdomain "flo8/internal/modules/account/domain"
	accountservice "flo8/internal/modules/account/service"
	accountusecase "flo8/internal/modules/account/usecase"
	contentinadapter "flo8/internal/modules/content/adapter/in"
	contentoutadapter "flo8/internal/modules/content/adapter/out"
	contentservice "flo8/internal/modules/content/service"
	contentusecase "flo8/internal/modules/content/usecase"
	onboardingservice "flo8/internal/modules/onboarding/service"
	onboardingusecase "flo8/internal/modules/onboarding/usecase"
	providerinadapter "flo8/internal/modules/provider/adapter/in"
	provideroutadapter "flo8/internal/modules/provider/adapter/out"
	providerservice "flo8/internal/modules/provider/service"
	providerusecase "flo8/internal/modules/provider/usecase"
	"flo8/internal/platform/clock"
	"flo8/internal/platform/config"
	"flo8/internal/platform/notify"
	uiapp "flo8/internal/ui/app"
)

// App holds every wired entry point. CLI commands call the handlers, the
// tui command builds the root model.
type App struct {
	AccountCLI  accountinadapter.CLIHandler
	ContentCLI  contentinadapter.CLIHandler
	ProviderCLI providerinadapter.CLIHandler

	Session *accountdomain.Store
	Bus     *notify.Bus

	newModel func() tea.Model
}

func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	clk := clock.SystemClock{}
	bus := notify.NewBus()
	session := accountdomain.NewStore()

	profileStore, err := accountoutadapter.NewSQLiteProfileStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open profile store: %w", err)
	}
	currentStore := accountoutadapter.NewFileCurrentUserStore(cfg.HomePath)
	accountSvc := accountservice.NewAccountService(profileStore, currentStore)
	accountUC := accountusecase.NewInteractor(accountSvc, session, bus, logger)

	onboardingSvc := onboardingservice.NewOnboardingService(profileMutator{svc: accountSvc})
	onboardingUC := onboardingusecase.NewInteractor(onboardingSvc, session, bus, logger)

	manifestStore := provideroutadapter.NewFileManifestStore(cfg.ProviderPath)
	providerSvc := providerservice.NewProviderService(
		manifestStore,
		provideroutadapter.NewGRPCHost(),
		provideroutadapter.NewSHA256Verifier(),
	)
	providerUC := providerusecase.NewInteractor(providerSvc)

	contentIndex, err := contentoutadapter.NewSQLiteContentIndex(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open content index: %w", err)
	}
	contentSvc := contentservice.NewContentService(
		contentIndex,
		contentoutadapter.NewVaultContentStore(cfg.ContentPath),
		contentoutadapter.NewProviderContentSource(providerUC, bus),
	)
	contentUC := contentusecase.NewInteractor(
		contentSvc,
		session,
		accountUC,
		contentIndex,
		contentoutadapter.NewLocalPDFGuideReader(),
		clk,
	)

	return &App{
		AccountCLI:  accountinadapter.NewCLIHandler(accountUC),
		ContentCLI:  contentinadapter.NewCLIHandler(contentUC),
		ProviderCLI: providerinadapter.NewCLIHandler(providerUC),
		Session:     session,
		Bus:         bus,
		newModel: func() tea.Model {
			return uiapp.NewModel(accountUC, contentUC, onboardingUC, session, bus)
		},
	}, nil
}

// NewTUIModel builds a fresh root model over the wired use cases.
func (a *App) NewTUIModel() tea.Model {
	return a.newModel()
}

func RunTUI(app *App) error {
	program := tea.NewProgram(app.NewTUIModel(), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// profileMutator feeds the onboarding commit into the account service. It
// lives here so the onboarding module depends only on its own port.
type profileMutator struct {
	svc *accountservice.AccountService
}

func (m profileMutator) Mutate(ctx context.Context, profileID string, update accountdomain.ProfileUpdate) error {
	return m.svc.Update(ctx, profileID, update)
}
