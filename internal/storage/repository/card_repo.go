package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/ramonehamilton/cr-tools/internal/game"
	"github.com/ramonehamilton/cr-tools/internal/storage/models"
)

var (
	// ErrCardNotFound is returned when no card matches the lookup.
	ErrCardNotFound = errors.New("card not found")

	// ErrDuplicateCard is returned when a card with the same name already exists.
	ErrDuplicateCard = errors.New("card already exists")
)

var cardColumns = []string{"id", "name", "rarity", "level", "have", "created_at", "updated_at"}

// builder renders SQLite-style placeholders.
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// CardRepository provides methods for managing tracked cards.
type CardRepository interface {
	Create(ctx context.Context, card *models.Card) error
	Update(ctx context.Context, card *models.Card) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Card, error)
	GetByName(ctx context.Context, name string) (*models.Card, error)
	List(ctx context.Context) ([]*models.Card, error)
	Count(ctx context.Context) (int, error)
}

type cardRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewCardRepository creates a new card repository.
func NewCardRepository(db *sql.DB) CardRepository {
	return &cardRepository{db: db, now: time.Now}
}

// Create inserts a card. An empty ID is replaced with a new UUID.
func (r *cardRepository) Create(ctx context.Context, card *models.Card) error {
	if card.ID == "" {
		card.ID = uuid.NewString()
	}
	now := r.now().UTC()
	card.CreatedAt = now
	card.UpdatedAt = now

	query, args, err := builder.
		Insert("cards").
		Columns(cardColumns...).
		Values(card.ID, card.Name, card.Rarity.String(), card.Level, card.Have, card.CreatedAt, card.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrDuplicateCard, card.Name)
		}
		return fmt.Errorf("insert card: %w", err)
	}
	return nil
}

// Update overwrites every mutable column of the card with the given ID.
func (r *cardRepository) Update(ctx context.Context, card *models.Card) error {
	card.UpdatedAt = r.now().UTC()

	query, args, err := builder.
		Update("cards").
		Set("name", card.Name).
		Set("rarity", card.Rarity.String()).
		Set("level", card.Level).
		Set("have", card.Have).
		Set("updated_at", card.UpdatedAt).
		Where(sq.Eq{"id": card.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrDuplicateCard, card.Name)
		}
		return fmt.Errorf("update card: %w", err)
	}
	return expectOneRow(result, card.ID)
}

// Delete removes the card with the given ID.
func (r *cardRepository) Delete(ctx context.Context, id string) error {
	query, args, err := builder.
		Delete("cards").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	return expectOneRow(result, id)
}

// GetByID retrieves a card by ID.
func (r *cardRepository) GetByID(ctx context.Context, id string) (*models.Card, error) {
	return r.getOne(ctx, sq.Eq{"id": id}, id)
}

// GetByName retrieves a card by name, ignoring case.
func (r *cardRepository) GetByName(ctx context.Context, name string) (*models.Card, error) {
	return r.getOne(ctx, sq.Eq{"name": name}, name)
}

func (r *cardRepository) getOne(ctx context.Context, where sq.Eq, key string) (*models.Card, error) {
	query, args, err := builder.
		Select(cardColumns...).
		From("cards").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	card, err := scanCard(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrCardNotFound, key)
	}
	if err != nil {
		return nil, err
	}
	return card, nil
}

// List returns all cards in the order they were added.
func (r *cardRepository) List(ctx context.Context) ([]*models.Card, error) {
	query, args, err := builder.
		Select(cardColumns...).
		From("cards").
		OrderBy("created_at ASC", "name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var cards []*models.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, rows.Err()
}

// Count returns the number of tracked cards.
func (r *cardRepository) Count(ctx context.Context) (int, error) {
	query, args, err := builder.Select("COUNT(*)").From("cards").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count cards: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (*models.Card, error) {
	card := &models.Card{}
	var rarity string
	err := row.Scan(
		&card.ID,
		&card.Name,
		&rarity,
		&card.Level,
		&card.Have,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scan card: %w", err)
	}

	card.Rarity, err = game.ParseRarity(rarity)
	if err != nil {
		return nil, fmt.Errorf("card %q: %w", card.Name, err)
	}
	return card, nil
}

func expectOneRow(result sql.Result, id string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrCardNotFound, id)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
