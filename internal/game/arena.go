package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownArena is returned when an arena value is outside the defined set.
// Arena is a closed enum, so hitting this from a lookup means a caller bug.
var ErrUnknownArena = errors.New("unknown arena")

// Arena is the player's progress tier. It sets request and donation limits.
type Arena int

const (
	TrainingCamp Arena = iota
	GoblinStadium
	BonePit
	BarbarianBowl
	PekkasPlayhouse
	SpellValley
	BuildersWorkshop
	RoyalArena
	FrozenPeak
	JungleArena
	HogMountain
	ElectroValley
	SpookyTown
	LegendaryArena
)

// DefaultArena is used when the player has not selected an arena.
const DefaultArena = LegendaryArena

var arenaNames = [...]string{
	TrainingCamp:     "TrainingCamp",
	GoblinStadium:    "GoblinStadium",
	BonePit:          "BonePit",
	BarbarianBowl:    "BarbarianBowl",
	PekkasPlayhouse:  "PekkasPlayhouse",
	SpellValley:      "SpellValley",
	BuildersWorkshop: "BuildersWorkshop",
	RoyalArena:       "RoyalArena",
	FrozenPeak:       "FrozenPeak",
	JungleArena:      "JungleArena",
	HogMountain:      "HogMountain",
	ElectroValley:    "ElectroValley",
	SpookyTown:       "SpookyTown",
	LegendaryArena:   "LegendaryArena",
}

// Arenas returns every arena in progression order.
func Arenas() []Arena {
	out := make([]Arena, 0, len(arenaNames))
	for a := TrainingCamp; a <= LegendaryArena; a++ {
		out = append(out, a)
	}
	return out
}

// Valid reports whether a is one of the defined arenas.
func (a Arena) Valid() bool {
	return a >= TrainingCamp && a <= LegendaryArena
}

func (a Arena) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Arena(%d)", int(a))
	}
	return arenaNames[a]
}

// ParseArena parses an arena name. Case, spaces, underscores, dashes and
// apostrophes are ignored, so "Royal Arena" and "pekka's-playhouse" both work.
// A bare number is accepted as the arena index.
func ParseArena(s string) (Arena, error) {
	key := normalizeArenaName(s)
	for _, a := range Arenas() {
		if key == normalizeArenaName(arenaNames[a]) {
			return a, nil
		}
	}

	if index, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && Arena(index).Valid() {
		return Arena(index), nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownArena, s)
}

func normalizeArenaName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch r {
		case ' ', '_', '-', '\'', '\t':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// MarshalText implements encoding.TextMarshaler.
func (a Arena) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownArena, int(a))
	}
	return []byte(arenaNames[a]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Arena) UnmarshalText(text []byte) error {
	parsed, err := ParseArena(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
