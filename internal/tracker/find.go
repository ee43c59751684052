package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/ramonehamilton/cr-tools/internal/storage/models"
	"github.com/ramonehamilton/cr-tools/internal/storage/repository"
)

// cardNames implements fuzzy.Source over stored cards.
type cardNames []*models.Card

func (c cardNames) String(i int) string { return c[i].Name }
func (c cardNames) Len() int            { return len(c) }

// Find returns the tracked card best matching query. An exact name match,
// ignoring case, always wins. Otherwise the query is fuzzy matched and the
// best match is used if no other card scores as well.
func (s *Service) Find(ctx context.Context, query string) (*models.Card, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", ErrCardNotFound)
	}

	row, err := s.cards.GetByName(ctx, query)
	if err == nil {
		return row, nil
	}
	if !errors.Is(err, repository.ErrCardNotFound) {
		return nil, err
	}

	rows, err := s.cards.List(ctx)
	if err != nil {
		return nil, err
	}

	matches := fuzzy.FindFrom(query, cardNames(rows))
	switch {
	case len(matches) == 0:
		return nil, fmt.Errorf("%w: %q", ErrCardNotFound, query)
	case len(matches) > 1 && matches[0].Score == matches[1].Score:
		var tied []string
		for _, m := range matches {
			if m.Score != matches[0].Score {
				break
			}
			tied = append(tied, m.Str)
		}
		return nil, fmt.Errorf("%w: %q matches %s", ErrAmbiguousCard, query, strings.Join(tied, ", "))
	}

	match := rows[matches[0].Index]
	s.logger.Debug("fuzzy card match", "query", query, "name", match.Name, "score", matches[0].Score)
	return match, nil
}
