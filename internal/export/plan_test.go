package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramonehamilton/cr-tools/internal/game"
	"github.com/ramonehamilton/cr-tools/internal/planner"
)

func testPlan(t *testing.T) *planner.Plan {
	t.Helper()

	knight, err := planner.NewCard("Knight", game.Common, 6, 40)
	require.NoError(t, err)
	miner, err := planner.NewCard("Miner", game.Legendary, 10, 1)
	require.NoError(t, err)

	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	estimator := planner.NewEstimator(clockwork.NewFakeClockAt(now)).WithLocation(time.UTC)

	plan, err := estimator.Plan([]*planner.Card{miner, knight}, game.RoyalArena)
	require.NoError(t, err)
	return plan
}

func TestExportPlanTo_CSV(t *testing.T) {
	var buf bytes.Buffer
	exporter := NewExporter(Options{Format: FormatCSV})

	require.NoError(t, exporter.ExportPlanTo(&buf, testPlan(t)))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "name,rarity,level,have,need,remaining,requests,weeks,days,days_in_order,done_on,done_in_order_on", lines[0])
	assert.Equal(t, "Knight,Common,6,40,100,60,2,0.100,0.700,0.700,2024-01-11,2024-01-11", lines[1])
	assert.Equal(t, "Miner,Legendary,10,1,4,3,,,,,,", lines[2])
}

func TestExportPlanTo_JSON(t *testing.T) {
	var buf bytes.Buffer
	exporter := NewExporter(Options{Format: FormatJSON, PrettyJSON: true})

	require.NoError(t, exporter.ExportPlanTo(&buf, testPlan(t)))

	var doc PlanDocument
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "RoyalArena", doc.Arena)
	require.Len(t, doc.Cards, 2)
	assert.Equal(t, "Knight", doc.Cards[0].Name)
	require.NotNil(t, doc.Cards[0].Requests)
	assert.Equal(t, 2, *doc.Cards[0].Requests)
	assert.Nil(t, doc.Cards[1].Requests, "Legendary cards have no estimate")
	assert.Equal(t, 1, doc.Summary.Legendary)
}
