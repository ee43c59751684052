package models

import (
	"time"

	"github.com/ramonehamilton/cr-tools/internal/game"
	"github.com/ramonehamilton/cr-tools/internal/planner"
)

// Card is a tracked card row.
type Card struct {
	ID        string
	Name      string
	Rarity    game.Rarity
	Level     int
	Have      int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CardFromRecord builds a row from a planner record. Timestamps are left
// for the repository to fill.
func CardFromRecord(rec planner.CardRecord) *Card {
	return &Card{
		ID:     rec.ID,
		Name:   rec.Name,
		Rarity: rec.Rarity,
		Level:  rec.Level,
		Have:   rec.Have,
	}
}

// Record returns the planner view of the row.
func (c *Card) Record() planner.CardRecord {
	return planner.CardRecord{
		ID:     c.ID,
		Name:   c.Name,
		Rarity: c.Rarity,
		Level:  c.Level,
		Have:   c.Have,
	}
}

// Setting is a stored key/value pair.
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
