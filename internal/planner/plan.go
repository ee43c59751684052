package planner

import (
	"fmt"
	"time"

	"github.com/ramonehamilton/cr-tools/internal/game"
)

// Plan is the result of a full compute pass over a collection.
type Plan struct {
	Arena       game.Arena
	GeneratedAt time.Time
	Cards       []*Card
}

// Plan runs a full pass: estimate every card, sort by days remaining and
// schedule in order. The slice is sorted in place and the cards' estimates
// are replaced. Any error leaves the collection needing a fresh pass.
func (e *Estimator) Plan(cards []*Card, arena game.Arena) (*Plan, error) {
	generatedAt := e.now()

	if err := e.EstimateAll(cards, arena); err != nil {
		return nil, fmt.Errorf("estimate: %w", err)
	}

	SortByRemaining(cards, arena)

	if err := e.ScheduleSequential(cards); err != nil {
		return nil, fmt.Errorf("schedule: %w", err)
	}

	return &Plan{
		Arena:       arena,
		GeneratedAt: generatedAt,
		Cards:       cards,
	}, nil
}

// Row is a flattened card of a plan, used for display and export.
// Estimate fields are nil for Legendary cards.
type Row struct {
	Name          string   `csv:"name" json:"name"`
	Rarity        string   `csv:"rarity" json:"rarity"`
	Level         int      `csv:"level" json:"level"`
	Have          int      `csv:"have" json:"have"`
	Need          int      `csv:"need" json:"need"`
	Remaining     int      `csv:"remaining" json:"remaining"`
	Requests      *int     `csv:"requests" json:"requests,omitempty"`
	Weeks         *float64 `csv:"weeks" json:"weeks,omitempty"`
	Days          *float64 `csv:"days" json:"days,omitempty"`
	DaysInOrder   *float64 `csv:"days_in_order" json:"days_in_order,omitempty"`
	DoneOn        string   `csv:"done_on" json:"done_on,omitempty"`
	DoneInOrderOn string   `csv:"done_in_order_on" json:"done_in_order_on,omitempty"`
}

// Rows returns one row per card, in plan order.
func (p *Plan) Rows() []Row {
	rows := make([]Row, 0, len(p.Cards))
	for _, card := range p.Cards {
		row := Row{
			Name:      card.name,
			Rarity:    card.rarity.String(),
			Level:     card.level,
			Have:      card.have,
			Need:      card.Needed(),
			Remaining: card.Remaining(),
		}

		if est, ok := card.Computed(); ok {
			requests, weeks, days := est.RequestsRemaining, est.WeeksRemaining, est.DaysRemaining
			row.Requests = &requests
			row.Weeks = &weeks
			row.Days = &days
			row.DoneOn = est.DoneOn.Format(time.DateOnly)
			if est.DaysInOrder != nil {
				inOrder := *est.DaysInOrder
				row.DaysInOrder = &inOrder
			}
			if est.DoneInOrderOn != nil {
				row.DoneInOrderOn = est.DoneInOrderOn.Format(time.DateOnly)
			}
		}

		rows = append(rows, row)
	}
	return rows
}

// Summary aggregates a plan.
type Summary struct {
	Cards     int `json:"cards"`
	Legendary int `json:"legendary"`
	TotalGold int `json:"total_gold"`

	// Days until the last card of each bucket is done when worked in order.
	CommonRareDays float64    `json:"common_rare_days"`
	EpicDays       float64    `json:"epic_days"`
	CommonRareDone *time.Time `json:"common_rare_done,omitempty"`
	EpicDone       *time.Time `json:"epic_done,omitempty"`
}

// Summary totals the gold needed for every card's next upgrade and finds
// when each request bucket finishes.
func (p *Plan) Summary() Summary {
	s := Summary{Cards: len(p.Cards)}
	for _, card := range p.Cards {
		s.TotalGold += card.UpgradeGold()

		if card.rarity == game.Legendary {
			s.Legendary++
			continue
		}

		est, ok := card.Computed()
		if !ok || est.DaysInOrder == nil {
			continue
		}

		switch card.rarity {
		case game.Epic:
			if *est.DaysInOrder >= s.EpicDays {
				s.EpicDays = *est.DaysInOrder
				s.EpicDone = est.DoneInOrderOn
			}
		default:
			if *est.DaysInOrder >= s.CommonRareDays {
				s.CommonRareDays = *est.DaysInOrder
				s.CommonRareDone = est.DoneInOrderOn
			}
		}
	}
	return s
}
