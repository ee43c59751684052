package planner

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramonehamilton/cr-tools/internal/game"
)

func testCollection(t *testing.T) []*Card {
	return []*Card{
		mustCard(t, "Golem", game.Epic, 9, 17),      // 3 left, 1 request, 7 days
		mustCard(t, "Musketeer", game.Rare, 8, 70),  // 30 left, 10 requests, 3.5 days
		mustCard(t, "Miner", game.Legendary, 10, 1), // 3 left, no estimate
		mustCard(t, "Knight", game.Common, 6, 40),   // 60 left, 2 requests, 0.7 days
	}
}

func TestPlan(t *testing.T) {
	cards := testCollection(t)

	plan, err := newTestEstimator().Plan(cards, game.RoyalArena)
	require.NoError(t, err)

	assert.Equal(t, game.RoyalArena, plan.Arena)
	assert.Equal(t, testNow, plan.GeneratedAt)
	assert.Equal(t, []string{"Knight", "Musketeer", "Golem", "Miner"}, names(plan.Cards))
	assert.True(t, slices.Equal(names(cards), names(plan.Cards)), "plan sorts the caller's slice")

	knight, _ := plan.Cards[0].Computed()
	musketeer, _ := plan.Cards[1].Computed()
	golem, _ := plan.Cards[2].Computed()

	assert.InDelta(t, 0.7, *knight.DaysInOrder, 1e-9)
	assert.InDelta(t, 4.2, *musketeer.DaysInOrder, 1e-9)
	assert.Equal(t, testNow.AddDate(0, 0, 5), *musketeer.DoneInOrderOn)
	assert.Equal(t, 7.0, *golem.DaysInOrder)
}

func TestPlan_FailsFast(t *testing.T) {
	_, err := newTestEstimator().Plan(testCollection(t), game.TrainingCamp)
	assert.ErrorIs(t, err, ErrNoRequestCapacity)
}

func TestPlan_Rows(t *testing.T) {
	plan, err := newTestEstimator().Plan(testCollection(t), game.RoyalArena)
	require.NoError(t, err)

	rows := plan.Rows()
	require.Len(t, rows, 4)

	knight := rows[0]
	assert.Equal(t, "Knight", knight.Name)
	assert.Equal(t, "Common", knight.Rarity)
	assert.Equal(t, 100, knight.Need)
	assert.Equal(t, 60, knight.Remaining)
	require.NotNil(t, knight.Requests)
	assert.Equal(t, 2, *knight.Requests)
	assert.Equal(t, "2024-01-11", knight.DoneOn)
	assert.Equal(t, "2024-01-11", knight.DoneInOrderOn)

	miner := rows[3]
	assert.Equal(t, "Legendary", miner.Rarity)
	assert.Equal(t, 3, miner.Remaining)
	assert.Nil(t, miner.Requests)
	assert.Nil(t, miner.Days)
	assert.Empty(t, miner.DoneOn)
}

func TestPlan_Summary(t *testing.T) {
	plan, err := newTestEstimator().Plan(testCollection(t), game.RoyalArena)
	require.NoError(t, err)

	s := plan.Summary()
	assert.Equal(t, 4, s.Cards)
	assert.Equal(t, 1, s.Legendary)
	// 1000 (common 6) + 4000 (rare 8) + 8000 (epic 9) + 15000 (legendary 10)
	assert.Equal(t, 28000, s.TotalGold)
	assert.InDelta(t, 4.2, s.CommonRareDays, 1e-9)
	assert.Equal(t, 7.0, s.EpicDays)
	require.NotNil(t, s.EpicDone)
	assert.Equal(t, testNow.AddDate(0, 0, 7), *s.EpicDone)
}
