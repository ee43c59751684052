package game

import "fmt"

// RequestLimits is the number of cards a single request yields in an arena.
// Epic requests use the Rare limit.
type RequestLimits struct {
	Common int
	Rare   int
}

// DonationLimits is the number of cards a single donation gives in an arena.
type DonationLimits struct {
	Common int
	Rare   int
}

var requestSizes = [...]RequestLimits{
	TrainingCamp:     {Common: 0, Rare: 0},
	GoblinStadium:    {Common: 10, Rare: 1},
	BonePit:          {Common: 10, Rare: 1},
	BarbarianBowl:    {Common: 10, Rare: 1},
	PekkasPlayhouse:  {Common: 20, Rare: 2},
	SpellValley:      {Common: 20, Rare: 2},
	BuildersWorkshop: {Common: 20, Rare: 2},
	RoyalArena:       {Common: 30, Rare: 3},
	FrozenPeak:       {Common: 30, Rare: 3},
	JungleArena:      {Common: 30, Rare: 3},
	HogMountain:      {Common: 40, Rare: 4},
	ElectroValley:    {Common: 40, Rare: 4},
	SpookyTown:       {Common: 40, Rare: 4},
	LegendaryArena:   {Common: 40, Rare: 4},
}

var donationSizes = [...]DonationLimits{
	TrainingCamp:     {Common: 0, Rare: 0},
	GoblinStadium:    {Common: 1, Rare: 1},
	BonePit:          {Common: 2, Rare: 1},
	BarbarianBowl:    {Common: 2, Rare: 1},
	PekkasPlayhouse:  {Common: 4, Rare: 1},
	SpellValley:      {Common: 4, Rare: 1},
	BuildersWorkshop: {Common: 4, Rare: 1},
	RoyalArena:       {Common: 6, Rare: 1},
	FrozenPeak:       {Common: 6, Rare: 1},
	JungleArena:      {Common: 6, Rare: 1},
	HogMountain:      {Common: 8, Rare: 1},
	ElectroValley:    {Common: 8, Rare: 1},
	SpookyTown:       {Common: 8, Rare: 1},
	LegendaryArena:   {Common: 8, Rare: 1},
}

var donationCaps = [...]int{
	TrainingCamp:     0,
	GoblinStadium:    90,
	BonePit:          90,
	BarbarianBowl:    90,
	PekkasPlayhouse:  180,
	SpellValley:      180,
	BuildersWorkshop: 180,
	RoyalArena:       270,
	FrozenPeak:       270,
	JungleArena:      270,
	HogMountain:      360,
	ElectroValley:    360,
	SpookyTown:       360,
	LegendaryArena:   360,
}

// Requests placed per week: 6 per day on 3 request days plus 2 bonus.
// Epic cards get one request slot a week and Legendary cards cannot be requested.
const (
	commonRequestsPerWeek = 6*3 + 2
	rareRequestsPerWeek   = 6*3 + 2
	epicRequestsPerWeek   = 1
)

// RequestSize returns the request size limits for an arena.
func RequestSize(arena Arena) (RequestLimits, error) {
	if !arena.Valid() {
		return RequestLimits{}, fmt.Errorf("request size: %w: %d", ErrUnknownArena, int(arena))
	}
	return requestSizes[arena], nil
}

// DonationSize returns the donation size limits for an arena.
func DonationSize(arena Arena) (DonationLimits, error) {
	if !arena.Valid() {
		return DonationLimits{}, fmt.Errorf("donation size: %w: %d", ErrUnknownArena, int(arena))
	}
	return donationSizes[arena], nil
}

// DonationLimit returns the daily donation cap for an arena.
func DonationLimit(arena Arena) (int, error) {
	if !arena.Valid() {
		return 0, fmt.Errorf("donation limit: %w: %d", ErrUnknownArena, int(arena))
	}
	return donationCaps[arena], nil
}

// WeeklyFrequency returns how many requests of a rarity can be placed per week.
// Unknown rarities get zero, the same as Legendary.
func WeeklyFrequency(rarity Rarity) float64 {
	switch rarity {
	case Common:
		return commonRequestsPerWeek
	case Rare:
		return rareRequestsPerWeek
	case Epic:
		return epicRequestsPerWeek
	default:
		return 0
	}
}

// RequestSizeFor returns the request size that applies to a rarity in an arena.
// Common cards use the common limit, every other rarity uses the rare limit.
func RequestSizeFor(rarity Rarity, arena Arena) (int, error) {
	limits, err := RequestSize(arena)
	if err != nil {
		return 0, err
	}
	if rarity == Common {
		return limits.Common, nil
	}
	return limits.Rare, nil
}
