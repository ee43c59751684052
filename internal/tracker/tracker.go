// Package tracker ties the card store to the planner. It is the layer the
// CLI talks to.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/schollz/progressbar/v3"

	"github.com/ramonehamilton/cr-tools/internal/game"
	"github.com/ramonehamilton/cr-tools/internal/planner"
	"github.com/ramonehamilton/cr-tools/internal/storage/models"
	"github.com/ramonehamilton/cr-tools/internal/storage/repository"
)

var (
	// ErrCardNotFound is returned when a query matches no tracked card.
	ErrCardNotFound = errors.New("no tracked card matches")

	// ErrAmbiguousCard is returned when a query matches several cards equally well.
	ErrAmbiguousCard = errors.New("card name is ambiguous")
)

// Service manages the tracked collection and computes plans for it.
type Service struct {
	cards        repository.CardRepository
	settings     repository.SettingsRepository
	estimator    *planner.Estimator
	logger       *slog.Logger
	defaultArena game.Arena
}

// Option configures a Service.
type Option func(*Service)

// WithDefaultArena sets the arena used until one is stored.
func WithDefaultArena(arena game.Arena) Option {
	return func(s *Service) { s.defaultArena = arena }
}

// WithLocation sets the time zone used for completion dates.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.estimator = s.estimator.WithLocation(loc) }
}

// New creates a Service. A nil clock uses the real clock and a nil logger
// discards output.
func New(cards repository.CardRepository, settings repository.SettingsRepository, clock clockwork.Clock, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Service{
		cards:        cards,
		settings:     settings,
		estimator:    planner.NewEstimator(clock),
		logger:       logger,
		defaultArena: game.DefaultArena,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddCard starts tracking a new card.
func (s *Service) AddCard(ctx context.Context, name string, rarity game.Rarity, level, have int) (*planner.Card, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", planner.ErrInvalidCard)
	}

	card, err := planner.NewCard(name, rarity, level, have)
	if err != nil {
		return nil, err
	}

	row := models.CardFromRecord(card.Record())
	if err := s.cards.Create(ctx, row); err != nil {
		return nil, err
	}
	card.SetID(row.ID)

	s.logger.Info("card added", "name", name, "rarity", rarity, "level", level, "have", have)
	return card, nil
}

// CardPatch lists the fields to change on a card. Nil fields are left alone.
type CardPatch struct {
	Name   *string
	Rarity *game.Rarity
	Level  *int
	Have   *int
}

// Empty reports whether the patch changes nothing.
func (p CardPatch) Empty() bool {
	return p.Name == nil && p.Rarity == nil && p.Level == nil && p.Have == nil
}

// UpdateCard applies patch to the card matching query.
func (s *Service) UpdateCard(ctx context.Context, query string, patch CardPatch) (*planner.Card, error) {
	row, err := s.Find(ctx, query)
	if err != nil {
		return nil, err
	}

	card, err := planner.FromRecord(row.Record())
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name is required", planner.ErrInvalidCard)
		}
		card.SetName(name)
	}
	// Rarity first so the level is checked against the new rarity
	if patch.Rarity != nil {
		if err := s.setRarityAndLevel(card, *patch.Rarity, patch.Level); err != nil {
			return nil, err
		}
	} else if patch.Level != nil {
		if err := card.SetLevel(*patch.Level); err != nil {
			return nil, err
		}
	}
	if patch.Have != nil {
		if err := card.SetHave(*patch.Have); err != nil {
			return nil, err
		}
	}

	updated := models.CardFromRecord(card.Record())
	updated.CreatedAt = row.CreatedAt
	if err := s.cards.Update(ctx, updated); err != nil {
		return nil, err
	}

	s.logger.Info("card updated", "name", card.Name(), "level", card.Level(), "have", card.Have())
	return card, nil
}

// setRarityAndLevel changes rarity and level together. Without a new level
// the card moves to the start level of the new rarity if its current level
// is out of range there.
func (s *Service) setRarityAndLevel(card *planner.Card, rarity game.Rarity, level *int) error {
	target := card.Level()
	if level != nil {
		target = *level
	} else if _, err := game.Upgrade(rarity, target); err != nil {
		start, startErr := game.StartLevel(rarity)
		if startErr != nil {
			return fmt.Errorf("%w: %w", planner.ErrInvalidCard, startErr)
		}
		target = start
	}
	return card.SetRarityLevel(rarity, target)
}

// RemoveCard stops tracking the card matching query and returns its name.
func (s *Service) RemoveCard(ctx context.Context, query string) (string, error) {
	row, err := s.Find(ctx, query)
	if err != nil {
		return "", err
	}

	if err := s.cards.Delete(ctx, row.ID); err != nil {
		return "", err
	}

	s.logger.Info("card removed", "name", row.Name)
	return row.Name, nil
}

// Cards returns every tracked card in the order they were added.
func (s *Service) Cards(ctx context.Context) ([]*planner.Card, error) {
	rows, err := s.cards.List(ctx)
	if err != nil {
		return nil, err
	}

	cards := make([]*planner.Card, 0, len(rows))
	for _, row := range rows {
		card, err := planner.FromRecord(row.Record())
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// Arena returns the stored arena, or the default when none has been set.
func (s *Service) Arena(ctx context.Context) (game.Arena, error) {
	value, err := s.settings.Get(ctx, repository.SettingArena)
	if errors.Is(err, repository.ErrSettingNotFound) {
		return s.defaultArena, nil
	}
	if err != nil {
		return 0, err
	}

	arena, err := game.ParseArena(value)
	if err != nil {
		return 0, fmt.Errorf("stored arena: %w", err)
	}
	return arena, nil
}

// SetArena stores the player's current arena.
func (s *Service) SetArena(ctx context.Context, arena game.Arena) error {
	if !arena.Valid() {
		return fmt.Errorf("%w: %d", game.ErrUnknownArena, int(arena))
	}
	if err := s.settings.Set(ctx, repository.SettingArena, arena.String()); err != nil {
		return err
	}
	s.logger.Info("arena set", "arena", arena)
	return nil
}

// Plan loads the collection and runs a full planning pass over it.
func (s *Service) Plan(ctx context.Context) (*planner.Plan, error) {
	cards, err := s.Cards(ctx)
	if err != nil {
		return nil, err
	}

	arena, err := s.Arena(ctx)
	if err != nil {
		return nil, err
	}

	return s.PlanCards(cards, arena)
}

// PlanCards runs a planning pass over cards that are not stored.
func (s *Service) PlanCards(cards []*planner.Card, arena game.Arena) (*planner.Plan, error) {
	plan, err := s.estimator.Plan(cards, arena)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("plan computed", "arena", arena, "cards", len(cards))
	return plan, nil
}

// ImportResult counts what an import changed.
type ImportResult struct {
	Added   int
	Updated int
}

// Import stores cards, updating tracked cards with the same name and adding
// the rest. Progress is drawn on progress when it is not nil.
func (s *Service) Import(ctx context.Context, cards []*planner.Card, progress io.Writer) (ImportResult, error) {
	var result ImportResult
	if progress == nil {
		progress = io.Discard
	}

	bar := progressbar.NewOptions(len(cards),
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription("importing cards"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	for _, card := range cards {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		existing, err := s.cards.GetByName(ctx, card.Name())
		switch {
		case errors.Is(err, repository.ErrCardNotFound):
			row := models.CardFromRecord(card.Record())
			row.ID = ""
			if err := s.cards.Create(ctx, row); err != nil {
				return result, fmt.Errorf("import %q: %w", card.Name(), err)
			}
			card.SetID(row.ID)
			result.Added++
		case err != nil:
			return result, fmt.Errorf("import %q: %w", card.Name(), err)
		default:
			row := models.CardFromRecord(card.Record())
			row.ID = existing.ID
			row.CreatedAt = existing.CreatedAt
			if err := s.cards.Update(ctx, row); err != nil {
				return result, fmt.Errorf("import %q: %w", card.Name(), err)
			}
			card.SetID(row.ID)
			result.Updated++
		}

		_ = bar.Add(1)
	}
	_ = bar.Finish()

	s.logger.Info("import finished", "added", result.Added, "updated", result.Updated)
	return result, nil
}
