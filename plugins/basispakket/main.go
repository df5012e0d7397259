package main

import (
	"context"
	"hash/fnv"
	"sort"

	"github.com/hashicorp/go-plugin"

	providerrpc "flo8/internal/modules/provider/adapter/out/rpc"
)

// basispakket is the reference content provider: a small fixed Dutch pack
// served over the provider RPC contract.
type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *providerrpc.Empty) (*providerrpc.Metadata, error) {
	return &providerrpc.Metadata{
		Name:         "basispakket",
		Version:      "1.0.0",
		Capabilities: []string{"content", "dailycard"},
	}, nil
}

func (s *server) ListItems(_ context.Context, _ *providerrpc.Empty) (*providerrpc.ListItemsResponse, error) {
	return &providerrpc.ListItemsResponse{Items: pack()}, nil
}

func (s *server) GetDailyCard(_ context.Context, in *providerrpc.DailyCardRequest) (*providerrpc.DailyCardResponse, error) {
	cards := matchingCards(in.Goals, in.MobilityLimited)
	if len(cards) == 0 {
		return &providerrpc.DailyCardResponse{}, nil
	}
	sort.Slice(cards, func(i, j int) bool { return cards[i].Slug < cards[j].Slug })
	h := fnv.New32a()
	_, _ = h.Write([]byte(in.Date))
	card := cards[int(h.Sum32())%len(cards)]
	return &providerrpc.DailyCardResponse{Card: &card}, nil
}

func matchingCards(goals []string, mobilityLimited bool) []providerrpc.Item {
	wanted := map[string]bool{}
	for _, g := range goals {
		wanted[g] = true
	}
	var out []providerrpc.Item
	for _, item := range pack() {
		if item.Kind != "dailycard" {
			continue
		}
		if mobilityLimited && !item.MobilityFriendly {
			continue
		}
		if len(wanted) > 0 && len(item.Goals) > 0 {
			hit := false
			for _, g := range item.Goals {
				if wanted[g] {
					hit = true
					break
				}
			}
			if !hit {
				continue
			}
		}
		out = append(out, item)
	}
	return out
}

func pack() []providerrpc.Item {
	return []providerrpc.Item{
		{
			ID:               "bp-waterglas",
			Kind:             "dailycard",
			Title:            "Begin met een glas water",
			Slug:             "begin-met-een-glas-water",
			Tags:             []string{"voeding"},
			Goals:            []string{"meer-energie", "afvallen"},
			MobilityFriendly: true,
			Minutes:          1,
			Body:             "Drink direct na het opstaan een groot glas water, nog voor je koffie.",
		},
		{
			ID:               "bp-schermvrij",
			Kind:             "dailycard",
			Title:            "Schermvrij laatste uur",
			Slug:             "schermvrij-laatste-uur",
			Tags:             []string{"slaap"},
			Goals:            []string{"beter-slapen", "minder-stress"},
			MobilityFriendly: true,
			Minutes:          60,
			Body:             "Leg alle schermen een uur voor bedtijd weg. Lees, strek of luister iets rustigs.",
		},
		{
			ID:               "bp-linzensoep",
			Kind:             "recipe",
			Title:            "Snelle linzensoep",
			Slug:             "snelle-linzensoep",
			Tags:             []string{"lunch"},
			Goals:            []string{"afvallen"},
			MobilityFriendly: true,
			Minutes:          25,
			Body:             "Fruit een ui, voeg 200 g rode linzen, een blik tomaat en 750 ml bouillon toe. Laat 20 minuten koken en pureer grof.",
		},
		{
			ID:               "bp-traplopen",
			Kind:             "exercise",
			Title:            "Trapintervallen",
			Slug:             "trapintervallen",
			Tags:             []string{"conditie"},
			Goals:            []string{"fitter-worden", "meer-energie"},
			MobilityFriendly: false,
			Minutes:          12,
			Body:             "Loop vijf keer de trap op en af in een stevig tempo, rust een minuut tussen elke ronde.",
		},
		{
			ID:               "bp-stressboog",
			Kind:             "knowledge",
			Title:            "De stressboog in twee minuten",
			Slug:             "de-stressboog-in-twee-minuten",
			Tags:             []string{"stress"},
			Goals:            []string{"minder-stress"},
			MobilityFriendly: true,
			Minutes:          2,
			Body:             "Kortdurende spanning is gezond, het herstel erna bepaalt de schade. Plan na elk piekmoment bewust vijf minuten niets.",
		},
	}
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: providerrpc.HandshakeConfig,
		Plugins:         providerrpc.ProviderMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
