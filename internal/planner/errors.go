package planner

import (
	"errors"

	"github.com/ramonehamilton/cr-tools/internal/game"
)

var (
	// ErrNoRequestCapacity means the arena forbids requests but cards are still needed.
	ErrNoRequestCapacity = errors.New("arena allows no card requests")

	// ErrDateOverflow means a completion date falls outside the representable range.
	ErrDateOverflow = errors.New("completion date out of range")

	// ErrMissingEstimate means a card reached the scheduler without an estimate.
	// A pass that fails with it has already touched earlier cards; rerun the whole pass.
	ErrMissingEstimate = errors.New("card has no estimate")

	// ErrInvalidCard is returned when a card is built or changed with bad values.
	ErrInvalidCard = errors.New("invalid card")

	// ErrUnknownArena is re-exported so callers only need this package for errors.Is.
	ErrUnknownArena = game.ErrUnknownArena
)
