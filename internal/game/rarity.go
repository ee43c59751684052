// Package game holds the static Clash Royale data the planner works from:
// rarities, arenas, request and donation limits, and upgrade requirements.
package game

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownRarity is returned when a rarity name or value is not recognized.
var ErrUnknownRarity = errors.New("unknown rarity")

// Rarity is the classification of a card. It decides how a card can be requested.
type Rarity int

const (
	Common Rarity = iota
	Rare
	Epic
	Legendary
)

var rarityNames = [...]string{
	Common:    "Common",
	Rare:      "Rare",
	Epic:      "Epic",
	Legendary: "Legendary",
}

// Rarities returns all rarities in display order.
func Rarities() []Rarity {
	return []Rarity{Common, Rare, Epic, Legendary}
}

// Valid reports whether r is one of the defined rarities.
func (r Rarity) Valid() bool {
	return r >= Common && r <= Legendary
}

func (r Rarity) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Rarity(%d)", int(r))
	}
	return rarityNames[r]
}

// ParseRarity parses a rarity name, ignoring case and surrounding whitespace.
func ParseRarity(s string) (Rarity, error) {
	name := strings.TrimSpace(s)
	for _, r := range Rarities() {
		if strings.EqualFold(name, rarityNames[r]) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRarity, s)
}

// MarshalText implements encoding.TextMarshaler.
func (r Rarity) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRarity, int(r))
	}
	return []byte(rarityNames[r]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Rarity) UnmarshalText(text []byte) error {
	parsed, err := ParseRarity(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
