package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	accountoutadapter "flo8/internal/modules/account/adapter/out"
	contentoutadapter "flo8/internal/modules/content/adapter/out"
	contentdomain "flo8/internal/modules/content/domain"
	"flo8/internal/platform/config"
)

// Scaffold prepares a fresh home directory: state dirs, the seeded profile
// database, an empty provider manifest, and a small starter content pack.
// Running it twice is harmless; existing files are left alone.
func Scaffold(ctx context.Context, cfg config.Config) error {
	for _, dir := range []string{cfg.HomePath, cfg.ContentPath, filepath.Join(cfg.ProviderPath, "providers")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	// Opening the store seeds the demo accounts.
	store, err := accountoutadapter.NewSQLiteProfileStore(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("seed profiles: %w", err)
	}
	defer store.Close()

	manifestPath := filepath.Join(cfg.ProviderPath, "providers", "providers.json")
	if _, err := os.Stat(manifestPath); os.IsNotExist(err) {
		if err := os.WriteFile(manifestPath, []byte("[]\n"), 0o644); err != nil {
			return fmt.Errorf("write provider manifest: %w", err)
		}
	}

	vault := contentoutadapter.NewVaultContentStore(cfg.ContentPath)
	for _, item := range starterItems() {
		path := filepath.Join(cfg.ContentPath, string(item.Kind), item.Slug+".md")
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if _, err := vault.Save(ctx, item); err != nil {
			return fmt.Errorf("write starter content: %w", err)
		}
	}
	return nil
}

func starterItems() []contentdomain.Item {
	return []contentdomain.Item{
		{
			Kind:             contentdomain.KindDailyCard,
			Title:            "Ademhalingsoefening",
			Slug:             "ademhalingsoefening",
			Tags:             []string{"rust"},
			Goals:            []string{"minder-stress", "beter-slapen"},
			MobilityFriendly: true,
			Minutes:          5,
			Body:             "Adem 4 tellen in, houd 4 tellen vast, adem 6 tellen uit. Herhaal dit vijf minuten.",
		},
		{
			Kind:             contentdomain.KindDailyCard,
			Title:            "Korte wandeling",
			Slug:             "korte-wandeling",
			Tags:             []string{"beweging"},
			Goals:            []string{"meer-energie", "fitter-worden"},
			MobilityFriendly: false,
			Minutes:          15,
			Body:             "Loop een kwartier in een stevig tempo. Buiten als het kan.",
		},
		{
			Kind:             contentdomain.KindDailyCard,
			Title:            "Stoelyoga",
			Slug:             "stoelyoga",
			Tags:             []string{"beweging"},
			Goals:            []string{},
			MobilityFriendly: true,
			Minutes:          10,
			Body:             "Tien minuten rek- en strekoefeningen vanaf een stoel, in je eigen tempo.",
		},
		{
			Kind:             contentdomain.KindRecipe,
			Title:            "Havermout met banaan",
			Slug:             "havermout-met-banaan",
			Tags:             []string{"ontbijt"},
			Goals:            []string{"afvallen", "meer-energie"},
			MobilityFriendly: true,
			Minutes:          10,
			Body:             "Kook 50 g havermout in 200 ml melk. Snijd een banaan in plakjes en roer erdoor. Bestrooi met kaneel.",
		},
		{
			Kind:             contentdomain.KindExercise,
			Title:            "Wandschouderdrukken",
			Slug:             "wandschouderdrukken",
			Tags:             []string{"kracht"},
			Goals:            []string{"fitter-worden"},
			MobilityFriendly: true,
			Minutes:          8,
			Body:             "Sta een armlengte van de muur. Duw jezelf rustig weg en terug, drie sets van tien.",
		},
		{
			Kind:             contentdomain.KindKnowledge,
			Title:            "Waarom slaap je streak beschermt",
			Slug:             "waarom-slaap-je-streak-beschermt",
			Tags:             []string{"slaap"},
			Goals:            []string{"beter-slapen"},
			MobilityFriendly: true,
			Minutes:          4,
			Body:             "Wie voor middernacht naar bed gaat, maakt de volgende dag vaker de dagkaart af. Een vast slaapritueel is de stilste motor achter je streak.",
		},
	}
}
