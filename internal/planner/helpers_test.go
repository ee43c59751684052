package planner

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/ramonehamilton/cr-tools/internal/game"
)

// Wednesday, January 10, 2024 at noon.
var testNow = time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

func newTestEstimator() *Estimator {
	return NewEstimator(clockwork.NewFakeClockAt(testNow)).WithLocation(time.UTC)
}

func mustCard(t *testing.T, name string, rarity game.Rarity, level, have int) *Card {
	t.Helper()
	card, err := NewCard(name, rarity, level, have)
	if err != nil {
		t.Fatalf("NewCard(%s) error = %v", name, err)
	}
	return card
}

// withDays builds a card whose cached RoyalArena estimate reports the given days remaining.
func withDays(t *testing.T, name string, rarity game.Rarity, days float64) *Card {
	t.Helper()
	level, err := game.StartLevel(rarity)
	if err != nil {
		t.Fatalf("StartLevel(%s) error = %v", rarity, err)
	}
	card := mustCard(t, name, rarity, level, 0)
	if rarity != game.Legendary {
		card.computed = &Estimate{Arena: game.RoyalArena, DaysRemaining: days}
	}
	return card
}

func names(cards []*Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Name()
	}
	return out
}
