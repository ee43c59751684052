package game

import (
	"errors"
	"fmt"
)

// ErrInvalidLevel is returned for a level a card of the given rarity cannot have.
var ErrInvalidLevel = errors.New("invalid card level")

// MaxLevel is the highest normalized card level.
const MaxLevel = 14

// UpgradeCost is what it takes to lift a card one level.
type UpgradeCost struct {
	Cards int
	Gold  int
}

// startLevels is the normalized level a card of each rarity is unlocked at.
var startLevels = [...]int{
	Common:    1,
	Rare:      3,
	Epic:      6,
	Legendary: 9,
}

// upgradeCards lists the cards needed per upgrade, starting at the rarity's
// first level. Each table ends at MaxLevel.
var upgradeCards = [...][]int{
	Common:    {2, 4, 10, 20, 50, 100, 200, 400, 800, 1000, 1500, 3000, 5000},
	Rare:      {2, 4, 10, 20, 50, 100, 200, 400, 500, 750, 1250},
	Epic:      {2, 4, 10, 20, 40, 50, 100, 200},
	Legendary: {2, 4, 6, 10, 20},
}

// upgradeGold is indexed by normalized level (level 1 at index 0).
var upgradeGold = [...]int{5, 20, 50, 150, 400, 1000, 2000, 4000, 8000, 15000, 35000, 75000, 100000}

// StartLevel returns the level a card of the given rarity starts at.
func StartLevel(rarity Rarity) (int, error) {
	if !rarity.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrUnknownRarity, int(rarity))
	}
	return startLevels[rarity], nil
}

// Upgrade returns the cost of upgrading a card from level to level+1.
// A card at MaxLevel costs nothing.
func Upgrade(rarity Rarity, level int) (UpgradeCost, error) {
	start, err := StartLevel(rarity)
	if err != nil {
		return UpgradeCost{}, err
	}
	if level < start || level > MaxLevel {
		return UpgradeCost{}, fmt.Errorf("%w: %s card at level %d (valid %d-%d)",
			ErrInvalidLevel, rarity, level, start, MaxLevel)
	}
	if level == MaxLevel {
		return UpgradeCost{}, nil
	}

	return UpgradeCost{
		Cards: upgradeCards[rarity][level-start],
		Gold:  upgradeGold[level-1],
	}, nil
}
