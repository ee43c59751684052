package planner

import (
	"cmp"
	"math"
	"slices"

	"github.com/ramonehamilton/cr-tools/internal/game"
)

// CompareByRemaining returns a comparator ordering cards by days remaining.
//
// Legendary cards sort after every other card and tie among themselves. A card
// without a cached estimate for arena is measured on the spot; the result is
// not stored on the card. Cards that cannot be estimated in the arena rank after every
// finite estimate but still before Legendary cards.
func CompareByRemaining(arena game.Arena) func(a, b *Card) int {
	return func(a, b *Card) int {
		aLegendary := a.rarity == game.Legendary
		bLegendary := b.rarity == game.Legendary
		switch {
		case aLegendary && bLegendary:
			return 0
		case aLegendary:
			return 1
		case bLegendary:
			return -1
		}
		return cmp.Compare(daysRemaining(a, arena), daysRemaining(b, arena))
	}
}

// SortByRemaining stably sorts cards in place using CompareByRemaining.
func SortByRemaining(cards []*Card, arena game.Arena) {
	slices.SortStableFunc(cards, CompareByRemaining(arena))
}

func daysRemaining(card *Card, arena game.Arena) float64 {
	if card.computed != nil && card.computed.Arena == arena {
		return card.computed.DaysRemaining
	}
	m, err := measure(card, arena)
	if err != nil || m == nil {
		return math.Inf(1)
	}
	return m.days
}
