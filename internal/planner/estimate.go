package planner

import (
	"fmt"
	"math"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/ramonehamilton/cr-tools/internal/game"
)

// maxScheduleDays bounds day offsets so AddDate cannot wrap.
const maxScheduleDays = 10000 * 366

// Estimate is the time-to-completion of a single non-Legendary card.
type Estimate struct {
	Arena             game.Arena
	CardsRemaining    int
	RequestsRemaining int
	WeeksRemaining    float64
	DaysRemaining     float64
	DoneOn            time.Time

	// Set by the sequential scheduler only.
	DaysInOrder   *float64
	DoneInOrderOn *time.Time
}

// Estimator computes estimates and schedules against an injected clock.
type Estimator struct {
	clock    clockwork.Clock
	location *time.Location
}

// NewEstimator creates an estimator. A nil clock uses wall-clock time.
// Dates are calculated in the local time zone.
func NewEstimator(clock clockwork.Clock) *Estimator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Estimator{clock: clock, location: time.Local}
}

// WithLocation returns a copy of the estimator that adds calendar days in loc.
func (e *Estimator) WithLocation(loc *time.Location) *Estimator {
	cp := *e
	if loc != nil {
		cp.location = loc
	}
	return &cp
}

func (e *Estimator) now() time.Time {
	return e.clock.Now().In(e.location)
}

// Estimate computes the estimate for one card in the given arena.
//
// Legendary cards cannot be requested and yield (nil, nil). The card's cached
// estimate is neither read nor written.
func (e *Estimator) Estimate(card *Card, arena game.Arena) (*Estimate, error) {
	m, err := measure(card, arena)
	if err != nil || m == nil {
		return nil, err
	}

	doneOn, err := addDays(e.now(), m.days)
	if err != nil {
		return nil, fmt.Errorf("card %q: %w", card.name, err)
	}

	return &Estimate{
		Arena:             arena,
		CardsRemaining:    m.cards,
		RequestsRemaining: m.requests,
		WeeksRemaining:    m.weeks,
		DaysRemaining:     m.days,
		DoneOn:            doneOn,
	}, nil
}

// EstimateAll fills the cached estimate of every card, stopping at the first error.
// Legendary cards end up with no estimate.
func (e *Estimator) EstimateAll(cards []*Card, arena game.Arena) error {
	for _, card := range cards {
		est, err := e.Estimate(card, arena)
		if err != nil {
			return err
		}
		card.computed = est
	}
	return nil
}

// EstimateCard computes a card estimate using the given clock.
func EstimateCard(card *Card, arena game.Arena, clock clockwork.Clock) (*Estimate, error) {
	return NewEstimator(clock).Estimate(card, arena)
}

// measurement is the clock-independent part of an estimate.
type measurement struct {
	cards    int
	requests int
	weeks    float64
	days     float64
}

func measure(card *Card, arena game.Arena) (*measurement, error) {
	size, err := game.RequestSizeFor(card.rarity, arena)
	if err != nil {
		return nil, err
	}
	if card.rarity == game.Legendary {
		return nil, nil
	}

	remaining := card.Remaining()

	var requests int
	switch {
	case remaining == 0:
		requests = 0
	case size == 0:
		return nil, fmt.Errorf("card %q needs %d more in %s: %w", card.name, remaining, arena, ErrNoRequestCapacity)
	default:
		requests = (remaining + size - 1) / size
	}

	weeks := float64(requests) / game.WeeklyFrequency(card.rarity)
	return &measurement{
		cards:    remaining,
		requests: requests,
		weeks:    weeks,
		days:     weeks * 7,
	}, nil
}

// addDays adds ceil(days) calendar days to now.
func addDays(now time.Time, days float64) (time.Time, error) {
	n := math.Ceil(days)
	if math.IsNaN(n) || n < 0 || n > maxScheduleDays {
		return time.Time{}, fmt.Errorf("%w: %v days from %s", ErrDateOverflow, days, now.Format(time.DateOnly))
	}

	done := now.AddDate(0, 0, int(n))
	if done.Year() > 9999 {
		return time.Time{}, fmt.Errorf("%w: %v days from %s", ErrDateOverflow, days, now.Format(time.DateOnly))
	}
	return done, nil
}
