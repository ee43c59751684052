package game

import (
	"errors"
	"testing"
)

func TestParseArena(t *testing.T) {
	tests := []struct {
		input   string
		want    Arena
		wantErr bool
	}{
		{"RoyalArena", RoyalArena, false},
		{"royal arena", RoyalArena, false},
		{"Pekka's Playhouse", PekkasPlayhouse, false},
		{"training_camp", TrainingCamp, false},
		{"hog-mountain", HogMountain, false},
		{"0", TrainingCamp, false},
		{"13", LegendaryArena, false},
		{"14", 0, true},
		{"7x", 0, true},
		{"Clan Wars", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseArena(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownArena) {
					t.Errorf("ParseArena(%q) error = %v, want ErrUnknownArena", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseArena(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseArena(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestArenas(t *testing.T) {
	arenas := Arenas()
	if len(arenas) != 14 {
		t.Fatalf("len(Arenas()) = %d, want 14", len(arenas))
	}
	if arenas[0] != TrainingCamp || arenas[len(arenas)-1] != LegendaryArena {
		t.Errorf("Arenas() not in progression order: %v", arenas)
	}
}

func TestArena_TextRoundTrip(t *testing.T) {
	text, err := SpellValley.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText error: %v", err)
	}

	var a Arena
	if err := a.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText error: %v", err)
	}
	if a != SpellValley {
		t.Errorf("round trip = %s, want SpellValley", a)
	}

	if _, err := Arena(42).MarshalText(); !errors.Is(err, ErrUnknownArena) {
		t.Errorf("MarshalText(42) error = %v, want ErrUnknownArena", err)
	}
}

func TestParseRarity(t *testing.T) {
	tests := []struct {
		input   string
		want    Rarity
		wantErr bool
	}{
		{"Common", Common, false},
		{"rare", Rare, false},
		{" EPIC ", Epic, false},
		{"legendary", Legendary, false},
		{"Champion", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRarity(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownRarity) {
					t.Errorf("ParseRarity(%q) error = %v, want ErrUnknownRarity", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRarity(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseRarity(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}
