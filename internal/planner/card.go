package planner

import (
	"fmt"

	"github.com/ramonehamilton/cr-tools/internal/game"
)

// CardRecord is the plain, persistable view of a card.
type CardRecord struct {
	ID     string      `json:"id,omitempty" toml:"id,omitempty"`
	Name   string      `json:"name" toml:"name"`
	Rarity game.Rarity `json:"rarity" toml:"rarity"`
	Level  int         `json:"level" toml:"level"`
	Have   int         `json:"have" toml:"have"`
}

// Card is a card the player is working towards upgrading.
//
// Fields are only reachable through setters. Changing rarity, level or have
// drops the cached estimate, so Computed never reports a stale result.
type Card struct {
	id       string
	name     string
	rarity   game.Rarity
	level    int
	have     int
	computed *Estimate
}

// NewCard creates a card after checking the level is valid for the rarity.
func NewCard(name string, rarity game.Rarity, level, have int) (*Card, error) {
	if err := validate(rarity, level, have); err != nil {
		return nil, err
	}
	return &Card{
		name:   name,
		rarity: rarity,
		level:  level,
		have:   have,
	}, nil
}

// FromRecord rebuilds a card from its persisted form.
func FromRecord(rec CardRecord) (*Card, error) {
	card, err := NewCard(rec.Name, rec.Rarity, rec.Level, rec.Have)
	if err != nil {
		return nil, fmt.Errorf("card %q: %w", rec.Name, err)
	}
	card.id = rec.ID
	return card, nil
}

func validate(rarity game.Rarity, level, have int) error {
	if !rarity.Valid() {
		return fmt.Errorf("%w: %w", ErrInvalidCard, game.ErrUnknownRarity)
	}
	if _, err := game.Upgrade(rarity, level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCard, err)
	}
	if have < 0 {
		return fmt.Errorf("%w: have must not be negative, got %d", ErrInvalidCard, have)
	}
	return nil
}

// Record returns a snapshot of the card for storage or export.
func (c *Card) Record() CardRecord {
	return CardRecord{
		ID:     c.id,
		Name:   c.name,
		Rarity: c.rarity,
		Level:  c.level,
		Have:   c.have,
	}
}

func (c *Card) ID() string { return c.id }
func (c *Card) Name() string { return c.name }
func (c *Card) Rarity() game.Rarity { return c.rarity }
func (c *Card) Level() int { return c.level }
func (c *Card) Have() int { return c.have }

// SetID sets the storage identifier. It does not affect the estimate.
func (c *Card) SetID(id string) { c.id = id }

// SetName renames the card. It does not affect the estimate.
func (c *Card) SetName(name string) { c.name = name }

// SetRarity changes the rarity. The current level must be valid for it.
func (c *Card) SetRarity(rarity game.Rarity) error {
	if err := validate(rarity, c.level, c.have); err != nil {
		return err
	}
	if rarity != c.rarity {
		c.rarity = rarity
		c.Invalidate()
	}
	return nil
}

// SetLevel changes the level.
func (c *Card) SetLevel(level int) error {
	if err := validate(c.rarity, level, c.have); err != nil {
		return err
	}
	if level != c.level {
		c.level = level
		c.Invalidate()
	}
	return nil
}

// SetRarityLevel changes rarity and level together, for moves where the
// old level is not valid under the new rarity.
func (c *Card) SetRarityLevel(rarity game.Rarity, level int) error {
	if err := validate(rarity, level, c.have); err != nil {
		return err
	}
	if rarity != c.rarity || level != c.level {
		c.rarity = rarity
		c.level = level
		c.Invalidate()
	}
	return nil
}

// SetHave changes the owned card count.
func (c *Card) SetHave(have int) error {
	if err := validate(c.rarity, c.level, have); err != nil {
		return err
	}
	if have != c.have {
		c.have = have
		c.Invalidate()
	}
	return nil
}

// Invalidate drops the cached estimate.
func (c *Card) Invalidate() { c.computed = nil }

// Computed returns the cached estimate, if one is present.
func (c *Card) Computed() (*Estimate, bool) {
	return c.computed, c.computed != nil
}

// Needed returns the cards required for the next upgrade.
func (c *Card) Needed() int {
	return c.upgrade().Cards
}

// UpgradeGold returns the gold the next upgrade costs.
func (c *Card) UpgradeGold() int {
	return c.upgrade().Gold
}

// Remaining returns how many more cards are needed, never below zero.
// This is the only figure Legendary cards get.
func (c *Card) Remaining() int {
	return max(0, c.Needed()-c.have)
}

func (c *Card) upgrade() game.UpgradeCost {
	// Rarity and level are validated on every write.
	cost, _ := game.Upgrade(c.rarity, c.level)
	return cost
}
