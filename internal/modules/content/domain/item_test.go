package domain_test

import (
	"testing"
	"time"

	"flo8/internal/modules/content/domain"
)

func card(slug string, goals []string, mobilityFriendly bool) domain.Item {
	return domain.Item{
		ID:               "itm-" + slug,
		Kind:             domain.KindDailyCard,
		Title:            slug,
		Slug:             slug,
		Goals:            goals,
		MobilityFriendly: mobilityFriendly,
	}
}

func TestMatchesProfile(t *testing.T) {
	t.Parallel()

	item := card("wandeling", []string{"fitter-worden"}, false)
	if !item.MatchesProfile([]string{"fitter-worden", "afvallen"}, false) {
		t.Fatal("overlapping goal must match")
	}
	if item.MatchesProfile([]string{"beter-slapen"}, false) {
		t.Fatal("disjoint goals must not match")
	}
	if item.MatchesProfile([]string{"fitter-worden"}, true) {
		t.Fatal("limited mobility must exclude unfriendly items")
	}
	generic := card("ademhaling", nil, true)
	if !generic.MatchesProfile([]string{"afvallen"}, true) {
		t.Fatal("item without goals suits everyone")
	}
}

func TestDailyCardIsDeterministic(t *testing.T) {
	t.Parallel()

	items := []domain.Item{
		card("a-kaart", nil, true),
		card("b-kaart", nil, true),
		card("c-kaart", nil, true),
	}
	date := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	first, err := domain.DailyCardFor(items, date, nil, false)
	if err != nil {
		t.Fatalf("DailyCardFor: %v", err)
	}
	later := time.Date(2026, 3, 14, 23, 30, 0, 0, time.UTC)
	second, err := domain.DailyCardFor(items, later, nil, false)
	if err != nil {
		t.Fatalf("DailyCardFor: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("same date picked %q then %q", first.Slug, second.Slug)
	}

	shuffled := []domain.Item{items[2], items[0], items[1]}
	third, err := domain.DailyCardFor(shuffled, date, nil, false)
	if err != nil {
		t.Fatalf("DailyCardFor: %v", err)
	}
	if third.ID != first.ID {
		t.Fatal("item order must not change the pick")
	}
}

func TestDailyCardFiltersByProfile(t *testing.T) {
	t.Parallel()

	items := []domain.Item{
		card("krachttraining", []string{"fitter-worden"}, false),
		card("stoelyoga", []string{"fitter-worden"}, true),
	}
	got, err := domain.DailyCardFor(items, time.Now(), []string{"fitter-worden"}, true)
	if err != nil {
		t.Fatalf("DailyCardFor: %v", err)
	}
	if got.Slug != "stoelyoga" {
		t.Fatalf("limited mobility picked %q", got.Slug)
	}
}

func TestDailyCardFallsBackWhenNothingMatches(t *testing.T) {
	t.Parallel()

	items := []domain.Item{card("krachttraining", []string{"fitter-worden"}, false)}
	got, err := domain.DailyCardFor(items, time.Now(), []string{"beter-slapen"}, false)
	if err != nil {
		t.Fatalf("fallback must still pick a card: %v", err)
	}
	if got.Slug != "krachttraining" {
		t.Fatalf("fallback picked %q", got.Slug)
	}

	if _, err := domain.DailyCardFor(nil, time.Now(), nil, false); err == nil {
		t.Fatal("empty card set must error")
	}
}
