package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"flo8/internal/bootstrap"
	accountdto "flo8/internal/modules/account/dto"
	"flo8/internal/platform/config"
)

var logger *zap.Logger

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var homePath string
	var verbose bool

	root := &cobra.Command{
		Use:           "flo8",
		Short:         "FLO8 leefstijlcoach voor de terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// The TUI owns the screen; it gets no stdout logger.
			if cmd.Name() == "tui" || cmd.Name() == "flo8" {
				return nil
			}
			cfg := zap.NewProductionConfig()
			if verbose {
				cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			logger, err = cfg.Build()
			if err != nil {
				return fmt.Errorf("initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: func(*cobra.Command, []string) error {
			return runTUI(homePath)
		},
	}
	root.PersistentFlags().StringVar(&homePath, "home", "", "flo8 home directory (default ~/.flo8)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newTUICmd(&homePath))
	root.AddCommand(newInitCmd(&homePath))
	root.AddCommand(newLoginCmd(&homePath))
	root.AddCommand(newLogoutCmd(&homePath))
	root.AddCommand(newWhoAmICmd(&homePath))
	root.AddCommand(newProfileCmd(&homePath))
	root.AddCommand(newContentCmd(&homePath))
	root.AddCommand(newProviderCmd(&homePath))
	return root
}

func loadApp(homePath string) (*bootstrap.App, error) {
	cfg, err := config.New(homePath)
	if err != nil {
		return nil, err
	}
	log := logger
	if log == nil {
		log = zap.NewNop()
	}
	return bootstrap.New(cfg, log)
}

func runTUI(homePath string) error {
	app, err := loadApp(homePath)
	if err != nil {
		return err
	}
	return bootstrap.RunTUI(app)
}

func newTUICmd(homePath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start de flo8 terminal-app",
		RunE: func(*cobra.Command, []string) error {
			return runTUI(*homePath)
		},
	}
}

func newInitCmd(homePath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Maak de home-directory aan met demoprofielen en startercontent",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.New(*homePath)
			if err != nil {
				return err
			}
			if err := bootstrap.Scaffold(cmd.Context(), cfg); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "flo8 home klaar in %s\n", cfg.HomePath)
			return nil
		},
	}
}

func newLoginCmd(homePath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "login <email> <wachtwoord>",
		Short: "Log in en onthoud de sessie",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			profile, err := app.AccountCLI.Login(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "ingelogd als %s (%s)\n", profile.Name, profile.Email)
			return nil
		},
	}
}

func newLogoutCmd(homePath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Vergeet de onthouden sessie",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			if err := app.AccountCLI.Logout(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "uitgelogd")
			return nil
		},
	}
}

func newWhoAmICmd(homePath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Toon het ingelogde profiel",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			profile, err := app.AccountCLI.WhoAmI(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s <%s>\n", profile.Name, profile.Email)
			_, _ = fmt.Fprintf(out, "plan:       %s (tot %s)\n", profile.Plan, profile.PlanActiveUntil.Format("02-01-2006"))
			_, _ = fmt.Fprintf(out, "streak:     %d\n", profile.Streak)
			_, _ = fmt.Fprintf(out, "onboarding: %v\n", profile.OnboardingComplete)
			if len(profile.Goals) > 0 {
				_, _ = fmt.Fprintf(out, "doelen:     %s\n", strings.Join(profile.Goals, ", "))
			}
			return nil
		},
	}
}

func newProfileCmd(homePath *string) *cobra.Command {
	profile := &cobra.Command{Use: "profile", Short: "Beheer het ingelogde profiel"}

	var name, theme, notification string
	var mobility bool

	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Pas profielvelden aan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			current, err := app.AccountCLI.WhoAmI(cmd.Context())
			if err != nil {
				return err
			}
			var input accountdto.UpdateInput
			if cmd.Flags().Changed("name") {
				input.Name = &name
			}
			if cmd.Flags().Changed("theme") {
				input.Theme = &theme
			}
			if cmd.Flags().Changed("notification-time") {
				input.NotificationTime = &notification
			}
			if cmd.Flags().Changed("mobility") {
				input.MobilityLimited = &mobility
			}
			if err := app.AccountCLI.SetProfile(cmd.Context(), current.ID, input); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "profiel bijgewerkt")
			return nil
		},
	}
	setCmd.Flags().StringVar(&name, "name", "", "weergavenaam")
	setCmd.Flags().StringVar(&theme, "theme", "", "thema: light|dark")
	setCmd.Flags().StringVar(&notification, "notification-time", "", "meldtijd HH:MM")
	setCmd.Flags().BoolVar(&mobility, "mobility", false, "beperkte mobiliteit")

	var force bool
	resetCmd := &cobra.Command{
		Use:   "reset-onboarding",
		Short: "Zet de onboarding-wizard terug naar het begin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !force {
				return fmt.Errorf("reset-onboarding vereist --force")
			}
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			current, err := app.AccountCLI.WhoAmI(cmd.Context())
			if err != nil {
				return err
			}
			if err := app.AccountCLI.ResetOnboarding(cmd.Context(), current.ID); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "onboarding gereset")
			return nil
		},
	}
	resetCmd.Flags().BoolVar(&force, "force", false, "bevestig de reset")

	profile.AddCommand(setCmd, resetCmd)
	return profile
}

func newContentCmd(homePath *string) *cobra.Command {
	content := &cobra.Command{Use: "content", Short: "Blader door recepten, oefeningen en kennis"}

	var kind string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Toon geïndexeerde content",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			items, err := app.ContentCLI.List(cmd.Context(), kind)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, item := range items {
				_, _ = fmt.Fprintf(out, "%-12s %-32s %3d min  %s\n", item.Kind, item.Slug, item.Minutes, item.Title)
			}
			_, _ = fmt.Fprintf(out, "%d items\n", len(items))
			return nil
		},
	}
	listCmd.Flags().StringVar(&kind, "kind", "", "dailycard|recipe|exercise|knowledge")

	showCmd := &cobra.Command{
		Use:   "show <slug>",
		Short: "Toon één item met inhoud",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			detail, err := app.ContentCLI.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s (%s, %d min)\n\n", detail.Title, detail.Kind, detail.Minutes)
			_, _ = fmt.Fprintln(out, strings.TrimSpace(detail.Body))
			return nil
		},
	}

	dailyCmd := &cobra.Command{
		Use:   "daily",
		Short: "Toon de dagkaart van vandaag",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			card, err := app.ContentCLI.DailyCard(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%d min) — %s\n", card.Title, card.Minutes, card.Slug)
			return nil
		},
	}

	doneCmd := &cobra.Command{
		Use:   "done <item-id>",
		Short: "Markeer de dagkaart als gedaan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			result, err := app.ContentCLI.CompleteCard(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if result.AlreadyCompleted {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "al gedaan vandaag, streak blijft %d\n", result.Streak)
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "gedaan! streak: %d\n", result.Streak)
			return nil
		},
	}

	var page int
	guideCmd := &cobra.Command{
		Use:   "guide <slug>",
		Short: "Lees een pagina uit de PDF-gids van een item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			out, err := app.ContentCLI.GuidePage(cmd.Context(), args[0], page)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "pagina %d/%d\n\n%s\n", out.Page, out.Total, out.Text)
			return nil
		},
	}
	guideCmd.Flags().IntVar(&page, "page", 1, "paginanummer")

	reindexCmd := &cobra.Command{
		Use:   "reindex",
		Short: "Herbouw de contentindex uit alle bronnen",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			count, err := app.ContentCLI.Reindex(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d items geïndexeerd\n", count)
			return nil
		},
	}

	content.AddCommand(listCmd, showCmd, dailyCmd, doneCmd, guideCmd, reindexCmd)
	return content
}

func newProviderCmd(homePath *string) *cobra.Command {
	provider := &cobra.Command{Use: "provider", Short: "Beheer contentpakket-providers"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Toon geregistreerde providers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			infos, err := app.ProviderCLI.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, info := range infos {
				state := "uit"
				if info.Enabled {
					state = "aan"
				}
				_, _ = fmt.Fprintf(out, "%-20s %-4s %s\n", info.Name, state, strings.Join(info.Capabilities, ","))
			}
			return nil
		},
	}

	doctorCmd := &cobra.Command{
		Use:   "doctor",
		Short: "Controleer checksums en levenscyclus van alle providers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			results, err := app.ProviderCLI.Doctor(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, res := range results {
				status := "ok"
				if res.Error != "" {
					status = res.Error
				}
				_, _ = fmt.Fprintf(out, "%-20s checksum=%v lifecycle=%v %s\n",
					res.Name, res.ChecksumValid, res.LifecycleOK, status)
			}
			return nil
		},
	}

	itemsCmd := &cobra.Command{
		Use:   "items <provider>",
		Short: "Toon de items die een provider aanbiedt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			items, err := app.ProviderCLI.ListItems(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, item := range items {
				_, _ = fmt.Fprintf(out, "%-12s %-32s %s\n", item.Kind, item.Slug, item.Title)
			}
			return nil
		},
	}

	provider.AddCommand(listCmd, doctorCmd, itemsCmd)
	return provider
}
