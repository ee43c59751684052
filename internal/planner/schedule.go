package planner

import (
	"fmt"

	"github.com/jonboulle/clockwork"

	"github.com/ramonehamilton/cr-tools/internal/game"
)

// ScheduleSequential walks cards in their current order and fills in the
// done-in-order fields of each estimate.
//
// Common and Rare cards share one running total since they draw on the same
// weekly request slots. Epic cards keep their own total. Legendary cards are
// skipped.
//
// Every non-Legendary card must already carry an estimate. On failure the cards
// before the failing one have been updated; the pass must be rerun from the
// estimation step rather than trusted.
func (e *Estimator) ScheduleSequential(cards []*Card) error {
	now := e.now()

	var regular, epic float64
	for _, card := range cards {
		var total *float64
		switch card.rarity {
		case game.Common, game.Rare:
			total = &regular
		case game.Epic:
			total = &epic
		default:
			continue
		}

		est := card.computed
		if est == nil {
			return fmt.Errorf("schedule %q: %w", card.name, ErrMissingEstimate)
		}

		current := est.DaysRemaining + *total
		doneOn, err := addDays(now, current)
		if err != nil {
			return fmt.Errorf("schedule %q: %w", card.name, err)
		}

		est.DaysInOrder = &current
		est.DoneInOrderOn = &doneOn
		*total = current
	}

	return nil
}

// ScheduleSequential schedules cards using the given clock.
func ScheduleSequential(cards []*Card, clock clockwork.Clock) error {
	return NewEstimator(clock).ScheduleSequential(cards)
}
