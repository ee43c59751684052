package main

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/ramonehamilton/cr-tools/internal/game"
	"github.com/ramonehamilton/cr-tools/internal/planner"
)

const notAvailable = "n/a"

// formatDays rounds to three decimals and drops trailing zeros.
func formatDays(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return notAvailable
	}
	return t.Format(time.DateOnly)
}

// displayPlan prints every card of a plan followed by a summary.
func displayPlan(plan *planner.Plan) {
	if len(plan.Cards) == 0 {
		fmt.Println("No cards tracked. Add one with: cr-tools add <name> <rarity> <level> <have>")
		return
	}

	fmt.Printf("Upgrade Plan (%s)\n", plan.Arena)
	fmt.Println("=====================")
	fmt.Println()

	for _, card := range plan.Cards {
		displayCard(card)
		fmt.Println()
	}

	summary := plan.Summary()
	fmt.Println("Summary:")
	fmt.Printf("  Cards:            %d (%d Legendary)\n", summary.Cards, summary.Legendary)
	fmt.Printf("  Gold needed:      %d\n", summary.TotalGold)
	if summary.CommonRareDone != nil {
		fmt.Printf("  Common/Rare done: %s (%s days)\n", formatDate(summary.CommonRareDone), formatDays(summary.CommonRareDays))
	}
	if summary.EpicDone != nil {
		fmt.Printf("  Epic done:        %s (%s days)\n", formatDate(summary.EpicDone), formatDays(summary.EpicDays))
	}
}

// displayCard prints one card with its estimate. Legendary cards cannot be
// requested, so everything past Remaining is n/a for them.
func displayCard(card *planner.Card) {
	fmt.Printf("%s (%s, level %d)\n", card.Name(), card.Rarity(), card.Level())
	fmt.Printf("  Have:          %d\n", card.Have())
	fmt.Printf("  Need:          %d\n", card.Needed())
	fmt.Printf("  Remaining:     %d\n", card.Remaining())

	est, ok := card.Computed()
	if !ok {
		for _, label := range []string{"Requests:", "Weeks:", "Days:", "Days in order:", "Done on:", "Done in order:"} {
			fmt.Printf("  %-14s %s\n", label, notAvailable)
		}
		return
	}

	daysInOrder := notAvailable
	if est.DaysInOrder != nil {
		daysInOrder = formatDays(*est.DaysInOrder)
	}

	fmt.Printf("  Requests:      %d\n", est.RequestsRemaining)
	fmt.Printf("  Weeks:         %s\n", formatDays(est.WeeksRemaining))
	fmt.Printf("  Days:          %s\n", formatDays(est.DaysRemaining))
	fmt.Printf("  Days in order: %s\n", daysInOrder)
	fmt.Printf("  Done on:       %s\n", est.DoneOn.Format(time.DateOnly))
	fmt.Printf("  Done in order: %s\n", formatDate(est.DoneInOrderOn))
}

// displayCardList prints tracked cards without estimates.
func displayCardList(cards []*planner.Card) {
	if len(cards) == 0 {
		fmt.Println("No cards tracked.")
		return
	}

	fmt.Println("Tracked Cards")
	fmt.Println("=============")
	fmt.Println()
	fmt.Printf("  %-20s %-10s %5s %10s\n", "Name", "Rarity", "Level", "Cards")
	for _, card := range cards {
		fmt.Printf("  %-20s %-10s %5d %10s\n",
			card.Name(), card.Rarity(), card.Level(), fmt.Sprintf("%d/%d", card.Have(), card.Needed()))
	}
	fmt.Println()
	fmt.Printf("Total: %d cards\n", len(cards))
}

// displayTables prints request and donation limits for each arena.
func displayTables(arenas []game.Arena) {
	fmt.Println("Request and Donation Limits")
	fmt.Println("===========================")
	fmt.Println()
	fmt.Printf("  %-3s %-18s %16s %17s %14s\n", "#", "Arena", "Request (C/R)", "Donation (C/R)", "Weekly cap")

	for _, arena := range arenas {
		request, err := game.RequestSize(arena)
		if err != nil {
			fmt.Printf("  %-3d %s\n", int(arena), err)
			continue
		}
		donation, _ := game.DonationSize(arena)
		limit, _ := game.DonationLimit(arena)

		fmt.Printf("  %-3d %-18s %16s %17s %14d\n",
			int(arena), arena,
			fmt.Sprintf("%d/%d", request.Common, request.Rare),
			fmt.Sprintf("%d/%d", donation.Common, donation.Rare),
			limit)
	}
	fmt.Println()

	fmt.Println("Requests per week:")
	for _, rarity := range game.Rarities() {
		fmt.Printf("  %-10s %s\n", rarity.String()+":", formatDays(game.WeeklyFrequency(rarity)))
	}
}
