package domain

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
	"time"
)

const SchemaVersion = 1

type Kind string

const (
	KindDailyCard Kind = "dailycard"
	KindRecipe    Kind = "recipe"
	KindExercise  Kind = "exercise"
	KindKnowledge Kind = "knowledge"
)

func Kinds() []Kind {
	return []Kind{KindDailyCard, KindRecipe, KindExercise, KindKnowledge}
}

func (k Kind) Validate() error {
	switch k {
	case KindDailyCard, KindRecipe, KindExercise, KindKnowledge:
		return nil
	default:
		return fmt.Errorf("unsupported content kind %q", string(k))
	}
}

// Item is one piece of programme content. Goals name the catalog goals it
// targets; an item with no goals suits everyone.
type Item struct {
	ID               string
	Kind             Kind
	Title            string
	Slug             string
	Tags             []string
	Goals            []string
	MobilityFriendly bool
	Minutes          int
	Body             string
	FilePath         string
	GuidePath        string
	Source           string
}

func (i Item) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return fmt.Errorf("content item id is required")
	}
	if err := i.Kind.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(i.Title) == "" {
		return fmt.Errorf("content item title is required")
	}
	if strings.TrimSpace(i.Slug) == "" {
		return fmt.Errorf("content item slug is required")
	}
	if i.Minutes < 0 {
		return fmt.Errorf("minutes must be non-negative, got %d", i.Minutes)
	}
	return nil
}

// MatchesProfile reports whether the item fits a member with the given
// goals and mobility. Limited mobility excludes items not marked friendly.
func (i Item) MatchesProfile(goals []string, mobilityLimited bool) bool {
	if mobilityLimited && !i.MobilityFriendly {
		return false
	}
	if len(i.Goals) == 0 {
		return true
	}
	for _, want := range goals {
		for _, have := range i.Goals {
			if want == have {
				return true
			}
		}
	}
	return false
}

// DailyCardFor picks the card of the day: a deterministic choice over the
// cards matching the profile, keyed by the calendar date, so every launch on
// the same day shows the same card. When nothing matches the profile the
// whole card set is the fallback.
func DailyCardFor(items []Item, date time.Time, goals []string, mobilityLimited bool) (Item, error) {
	cards := make([]Item, 0, len(items))
	for _, item := range items {
		if item.Kind == KindDailyCard && item.MatchesProfile(goals, mobilityLimited) {
			cards = append(cards, item)
		}
	}
	if len(cards) == 0 {
		for _, item := range items {
			if item.Kind == KindDailyCard {
				cards = append(cards, item)
			}
		}
	}
	if len(cards) == 0 {
		return Item{}, fmt.Errorf("no daily cards available")
	}
	sort.Slice(cards, func(a, b int) bool { return cards[a].Slug < cards[b].Slug })

	h := fnv.New32a()
	_, _ = h.Write([]byte(date.Format("2006-01-02")))
	return cards[int(h.Sum32())%len(cards)], nil
}

// Completion records that a member finished a daily card on a date.
type Completion struct {
	ItemID      string
	Date        string
	CompletedAt time.Time
}
