// Package collection reads and writes the player's card list as a TOML file
// and reloads it when the file changes.
//
// The file holds one [[card]] table per card:
//
//	[[card]]
//	name = "Knight"
//	rarity = "Common"
//	level = 6
//	have = 40
package collection

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/ramonehamilton/cr-tools/internal/game"
	"github.com/ramonehamilton/cr-tools/internal/planner"
)

// ErrInvalidFile is returned when the file parses but describes an unusable collection.
var ErrInvalidFile = errors.New("invalid collection file")

type document struct {
	Cards []planner.CardRecord `toml:"card"`
}

// fileCard is a [[card]] table as read from disk. Rarity is parsed after
// decoding so its error keeps the game.ErrUnknownRarity chain.
type fileCard struct {
	Name   string `toml:"name"`
	Rarity string `toml:"rarity"`
	Level  int    `toml:"level"`
	Have   int    `toml:"have"`
}

type fileDocument struct {
	Cards []fileCard `toml:"card"`
}

// Load reads the collection file at path.
func Load(path string) ([]*planner.Card, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open collection: %w", err)
	}
	defer func() { _ = f.Close() }()

	cards, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cards, nil
}

// Decode parses a collection document. Unknown keys, unknown rarities,
// invalid levels and repeated names are errors.
func Decode(r io.Reader) ([]*planner.Card, error) {
	var doc fileDocument
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse collection: %w", err)
	}

	seen := make(map[string]int, len(doc.Cards))
	cards := make([]*planner.Card, 0, len(doc.Cards))
	for i, fc := range doc.Cards {
		name := strings.TrimSpace(fc.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: card #%d has no name", ErrInvalidFile, i+1)
		}

		key := strings.ToLower(name)
		if first, ok := seen[key]; ok {
			return nil, fmt.Errorf("%w: %q listed as card #%d and #%d", ErrInvalidFile, name, first, i+1)
		}
		seen[key] = i + 1

		rarity, err := game.ParseRarity(fc.Rarity)
		if err != nil {
			return nil, fmt.Errorf("card #%d %q: %w", i+1, name, err)
		}

		card, err := planner.FromRecord(planner.CardRecord{
			Name:   name,
			Rarity: rarity,
			Level:  fc.Level,
			Have:   fc.Have,
		})
		if err != nil {
			return nil, fmt.Errorf("card #%d: %w", i+1, err)
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// Encode writes cards as a collection document. IDs are not written.
func Encode(w io.Writer, cards []*planner.Card) error {
	doc := document{Cards: make([]planner.CardRecord, 0, len(cards))}
	for _, card := range cards {
		rec := card.Record()
		rec.ID = ""
		doc.Cards = append(doc.Cards, rec)
	}

	if err := toml.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("encode collection: %w", err)
	}
	return nil
}

// Save writes cards to path, replacing the file atomically.
func Save(path string, cards []*planner.Card) error {
	var buf bytes.Buffer
	if err := Encode(&buf, cards); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create collection directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".collection-*.toml")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write collection: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close collection: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace collection: %w", err)
	}
	return nil
}
