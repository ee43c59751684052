package planner

import (
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramonehamilton/cr-tools/internal/game"
)

func TestEstimate_RoyalArenaCommon(t *testing.T) {
	// Level 6 commons need 100 cards.
	card := mustCard(t, "Knight", game.Common, 6, 40)
	require.Equal(t, 100, card.Needed())

	est, err := newTestEstimator().Estimate(card, game.RoyalArena)
	require.NoError(t, err)
	require.NotNil(t, est)

	assert.Equal(t, 60, est.CardsRemaining)
	assert.Equal(t, 2, est.RequestsRemaining)
	assert.InDelta(t, 0.1, est.WeeksRemaining, 1e-12)
	assert.InDelta(t, 0.7, est.DaysRemaining, 1e-12)
	assert.Equal(t, testNow.AddDate(0, 0, 1), est.DoneOn)
	assert.Nil(t, est.DaysInOrder)
	assert.Nil(t, est.DoneInOrderOn)
}

func TestEstimate_Values(t *testing.T) {
	tests := []struct {
		name         string
		rarity       game.Rarity
		level        int
		have         int
		arena        game.Arena
		wantCards    int
		wantRequests int
		wantWeeks    float64
		wantDoneIn   int
	}{
		{"rare royal arena", game.Rare, 8, 70, game.RoyalArena, 30, 10, 0.5, 4},
		{"epic royal arena", game.Epic, 9, 17, game.RoyalArena, 3, 1, 1, 7},
		{"epic rounds requests up", game.Epic, 9, 0, game.GoblinStadium, 20, 20, 20, 140},
		{"common goblin stadium", game.Common, 6, 1, game.GoblinStadium, 99, 10, 0.5, 4},
		{"exactly enough", game.Common, 6, 100, game.RoyalArena, 0, 0, 0, 0},
		{"more than enough", game.Rare, 8, 250, game.HogMountain, 0, 0, 0, 0},
		{"max level", game.Common, game.MaxLevel, 12, game.LegendaryArena, 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := mustCard(t, tt.name, tt.rarity, tt.level, tt.have)

			est, err := newTestEstimator().Estimate(card, tt.arena)
			require.NoError(t, err)
			require.NotNil(t, est)

			assert.Equal(t, tt.wantCards, est.CardsRemaining)
			assert.Equal(t, tt.wantRequests, est.RequestsRemaining)
			assert.InDelta(t, tt.wantWeeks, est.WeeksRemaining, 1e-12)
			assert.Equal(t, est.WeeksRemaining*7, est.DaysRemaining)
			assert.Equal(t, testNow.AddDate(0, 0, tt.wantDoneIn), est.DoneOn)
		})
	}
}

func TestEstimate_DaysAreWeeksTimesSeven(t *testing.T) {
	est := newTestEstimator()
	for _, arena := range game.Arenas()[1:] {
		for _, rarity := range []game.Rarity{game.Common, game.Rare, game.Epic} {
			start, _ := game.StartLevel(rarity)
			for have := 0; have < 60; have += 7 {
				card := mustCard(t, "probe", rarity, start+3, have)
				got, err := est.Estimate(card, arena)
				require.NoError(t, err)
				if got.DaysRemaining != got.WeeksRemaining*7 {
					t.Fatalf("%s %s have=%d: days %v != weeks %v * 7", arena, rarity, have, got.DaysRemaining, got.WeeksRemaining)
				}
			}
		}
	}
}

func TestEstimate_Legendary(t *testing.T) {
	card := mustCard(t, "Princess", game.Legendary, 9, 0)

	est, err := newTestEstimator().Estimate(card, game.LegendaryArena)
	assert.NoError(t, err)
	assert.Nil(t, est)
	assert.Equal(t, 2, card.Remaining())
}

func TestEstimate_TrainingCamp(t *testing.T) {
	t.Run("needs cards", func(t *testing.T) {
		for _, rarity := range []game.Rarity{game.Common, game.Rare, game.Epic} {
			start, _ := game.StartLevel(rarity)
			card := mustCard(t, "Archers", rarity, start, 0)

			_, err := newTestEstimator().Estimate(card, game.TrainingCamp)
			assert.ErrorIs(t, err, ErrNoRequestCapacity, rarity.String())
		}
	})

	t.Run("nothing needed", func(t *testing.T) {
		card := mustCard(t, "Archers", game.Common, 1, 5)

		est, err := newTestEstimator().Estimate(card, game.TrainingCamp)
		require.NoError(t, err)
		assert.Equal(t, 0, est.RequestsRemaining)
		assert.Equal(t, testNow, est.DoneOn)
	})
}

func TestEstimate_UnknownArena(t *testing.T) {
	card := mustCard(t, "Knight", game.Common, 3, 0)

	_, err := newTestEstimator().Estimate(card, game.Arena(42))
	assert.ErrorIs(t, err, ErrUnknownArena)
}

func TestEstimate_UnknownArenaLegendary(t *testing.T) {
	card := mustCard(t, "Miner", game.Legendary, 9, 0)

	est, err := newTestEstimator().Estimate(card, game.Arena(99))
	assert.ErrorIs(t, err, ErrUnknownArena)
	assert.Nil(t, est)

	err = newTestEstimator().EstimateAll([]*Card{card}, game.Arena(99))
	assert.ErrorIs(t, err, ErrUnknownArena)
}

func TestEstimate_DateOverflow(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(9999, 12, 30, 0, 0, 0, 0, time.UTC))
	est := NewEstimator(clock).WithLocation(time.UTC)

	// One epic request a week puts this a week out.
	card := mustCard(t, "Prince", game.Epic, 6, 0)

	_, err := est.Estimate(card, game.RoyalArena)
	assert.ErrorIs(t, err, ErrDateOverflow)
}

func TestEstimate_Idempotent(t *testing.T) {
	card := mustCard(t, "Knight", game.Common, 7, 13)
	est := newTestEstimator()

	first, err := est.Estimate(card, game.SpellValley)
	require.NoError(t, err)
	second, err := est.Estimate(card, game.SpellValley)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	_, cached := card.Computed()
	assert.False(t, cached, "Estimate must not write the card's cached estimate")
}

func TestEstimateCard(t *testing.T) {
	card := mustCard(t, "Knight", game.Common, 6, 40)
	clock := clockwork.NewFakeClockAt(testNow)

	got, err := EstimateCard(card, game.RoyalArena, clock)
	require.NoError(t, err)
	assert.Equal(t, 2, got.RequestsRemaining)
	assert.Equal(t, game.RoyalArena, got.Arena)
}

func TestEstimateAll(t *testing.T) {
	cards := []*Card{
		mustCard(t, "Knight", game.Common, 6, 40),
		mustCard(t, "Princess", game.Legendary, 9, 0),
		mustCard(t, "Prince", game.Epic, 6, 0),
	}

	require.NoError(t, newTestEstimator().EstimateAll(cards, game.RoyalArena))

	_, ok := cards[0].Computed()
	assert.True(t, ok)
	_, ok = cards[1].Computed()
	assert.False(t, ok, "legendary cards get no estimate")
	_, ok = cards[2].Computed()
	assert.True(t, ok)

	err := newTestEstimator().EstimateAll(cards, game.TrainingCamp)
	assert.True(t, errors.Is(err, ErrNoRequestCapacity))
}

func TestAddDays(t *testing.T) {
	tests := []struct {
		days    float64
		want    time.Time
		wantErr bool
	}{
		{0, testNow, false},
		{0.1, testNow.AddDate(0, 0, 1), false},
		{1, testNow.AddDate(0, 0, 1), false},
		{1.0001, testNow.AddDate(0, 0, 2), false},
		{30, time.Date(2024, 2, 9, 12, 0, 0, 0, time.UTC), false},
		{1e12, time.Time{}, true},
		{-1, time.Time{}, true},
	}

	for _, tt := range tests {
		got, err := addDays(testNow, tt.days)
		if tt.wantErr {
			if !errors.Is(err, ErrDateOverflow) {
				t.Errorf("addDays(%v) error = %v, want ErrDateOverflow", tt.days, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("addDays(%v) unexpected error: %v", tt.days, err)
		}
		if !got.Equal(tt.want) {
			t.Errorf("addDays(%v) = %v, want %v", tt.days, got, tt.want)
		}
	}
}
