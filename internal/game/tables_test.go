package game

import (
	"errors"
	"testing"
)

func TestRequestSize(t *testing.T) {
	tests := []struct {
		arena Arena
		want  RequestLimits
	}{
		{TrainingCamp, RequestLimits{Common: 0, Rare: 0}},
		{GoblinStadium, RequestLimits{Common: 10, Rare: 1}},
		{BarbarianBowl, RequestLimits{Common: 10, Rare: 1}},
		{PekkasPlayhouse, RequestLimits{Common: 20, Rare: 2}},
		{BuildersWorkshop, RequestLimits{Common: 20, Rare: 2}},
		{RoyalArena, RequestLimits{Common: 30, Rare: 3}},
		{JungleArena, RequestLimits{Common: 30, Rare: 3}},
		{HogMountain, RequestLimits{Common: 40, Rare: 4}},
		{LegendaryArena, RequestLimits{Common: 40, Rare: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.arena.String(), func(t *testing.T) {
			got, err := RequestSize(tt.arena)
			if err != nil {
				t.Fatalf("RequestSize(%s) error = %v", tt.arena, err)
			}
			if got != tt.want {
				t.Errorf("RequestSize(%s) = %+v, want %+v", tt.arena, got, tt.want)
			}
		})
	}
}

func TestDonationTables(t *testing.T) {
	tests := []struct {
		arena     Arena
		wantSize  DonationLimits
		wantLimit int
	}{
		{TrainingCamp, DonationLimits{0, 0}, 0},
		{GoblinStadium, DonationLimits{1, 1}, 90},
		{BonePit, DonationLimits{2, 1}, 90},
		{SpellValley, DonationLimits{4, 1}, 180},
		{FrozenPeak, DonationLimits{6, 1}, 270},
		{SpookyTown, DonationLimits{8, 1}, 360},
		{LegendaryArena, DonationLimits{8, 1}, 360},
	}

	for _, tt := range tests {
		t.Run(tt.arena.String(), func(t *testing.T) {
			size, err := DonationSize(tt.arena)
			if err != nil {
				t.Fatalf("DonationSize(%s) error = %v", tt.arena, err)
			}
			if size != tt.wantSize {
				t.Errorf("DonationSize(%s) = %+v, want %+v", tt.arena, size, tt.wantSize)
			}

			limit, err := DonationLimit(tt.arena)
			if err != nil {
				t.Fatalf("DonationLimit(%s) error = %v", tt.arena, err)
			}
			if limit != tt.wantLimit {
				t.Errorf("DonationLimit(%s) = %d, want %d", tt.arena, limit, tt.wantLimit)
			}
		})
	}
}

func TestTables_UnknownArena(t *testing.T) {
	for _, arena := range []Arena{-1, LegendaryArena + 1, 99} {
		if _, err := RequestSize(arena); !errors.Is(err, ErrUnknownArena) {
			t.Errorf("RequestSize(%d) error = %v, want ErrUnknownArena", arena, err)
		}
		if _, err := DonationSize(arena); !errors.Is(err, ErrUnknownArena) {
			t.Errorf("DonationSize(%d) error = %v, want ErrUnknownArena", arena, err)
		}
		if _, err := DonationLimit(arena); !errors.Is(err, ErrUnknownArena) {
			t.Errorf("DonationLimit(%d) error = %v, want ErrUnknownArena", arena, err)
		}
	}
}

func TestWeeklyFrequency(t *testing.T) {
	tests := []struct {
		rarity Rarity
		want   float64
	}{
		{Common, 20},
		{Rare, 20},
		{Epic, 1},
		{Legendary, 0},
	}

	for _, tt := range tests {
		if got := WeeklyFrequency(tt.rarity); got != tt.want {
			t.Errorf("WeeklyFrequency(%s) = %v, want %v", tt.rarity, got, tt.want)
		}
	}
}

func TestRequestSizeFor(t *testing.T) {
	tests := []struct {
		rarity Rarity
		want   int
	}{
		{Common, 30},
		{Rare, 3},
		{Epic, 3},
	}

	for _, tt := range tests {
		got, err := RequestSizeFor(tt.rarity, RoyalArena)
		if err != nil {
			t.Fatalf("RequestSizeFor(%s) error = %v", tt.rarity, err)
		}
		if got != tt.want {
			t.Errorf("RequestSizeFor(%s, RoyalArena) = %d, want %d", tt.rarity, got, tt.want)
		}
	}
}
