package collection

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramonehamilton/cr-tools/internal/game"
	"github.com/ramonehamilton/cr-tools/internal/planner"
)

const sampleCollection = `
[[card]]
name = "Golem"
rarity = "Epic"
level = 9
have = 17

[[card]]
name = "Musketeer"
rarity = "rare"
level = 8
have = 70

[[card]]
name = "Miner"
rarity = "Legendary"
level = 10
have = 1
`

func TestDecode(t *testing.T) {
	cards, err := Decode(strings.NewReader(sampleCollection))
	require.NoError(t, err)
	require.Len(t, cards, 3)

	assert.Equal(t, "Golem", cards[0].Name())
	assert.Equal(t, game.Epic, cards[0].Rarity())
	assert.Equal(t, 9, cards[0].Level())
	assert.Equal(t, 17, cards[0].Have())

	assert.Equal(t, game.Rare, cards[1].Rarity(), "rarity should parse case-insensitively")
	assert.Equal(t, game.Legendary, cards[2].Rarity())
}

func TestDecode_Empty(t *testing.T) {
	cards, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "unknown rarity",
			input:   "[[card]]\nname = \"Knight\"\nrarity = \"Mythic\"\nlevel = 6\n",
			wantErr: game.ErrUnknownRarity,
		},
		{
			name:    "missing rarity",
			input:   "[[card]]\nname = \"Knight\"\nlevel = 6\n",
			wantErr: game.ErrUnknownRarity,
		},
		{
			name:    "level below rarity start",
			input:   "[[card]]\nname = \"Golem\"\nrarity = \"Epic\"\nlevel = 2\n",
			wantErr: planner.ErrInvalidCard,
		},
		{
			name:    "negative have",
			input:   "[[card]]\nname = \"Knight\"\nrarity = \"Common\"\nlevel = 6\nhave = -1\n",
			wantErr: planner.ErrInvalidCard,
		},
		{
			name:    "missing name",
			input:   "[[card]]\nrarity = \"Common\"\nlevel = 6\n",
			wantErr: ErrInvalidFile,
		},
		{
			name:    "duplicate name",
			input:   "[[card]]\nname = \"Knight\"\nrarity = \"Common\"\nlevel = 6\n\n[[card]]\nname = \"knight\"\nrarity = \"Common\"\nlevel = 7\n",
			wantErr: ErrInvalidFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "Decode() error = %v, want %v", err, tt.wantErr)
		})
	}
}

func TestDecode_UnknownKey(t *testing.T) {
	_, err := Decode(strings.NewReader("[[card]]\nname = \"Knight\"\nrarity = \"Common\"\nlevle = 6\n"))
	assert.Error(t, err)
}

func TestEncodeDecode(t *testing.T) {
	knight, err := planner.NewCard("Knight", game.Common, 6, 40)
	require.NoError(t, err)
	knight.SetID("should-not-be-written")
	miner, err := planner.NewCard("Miner", game.Legendary, 10, 1)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, []*planner.Card{knight, miner}))
	assert.NotContains(t, buf.String(), "should-not-be-written")
	assert.Contains(t, buf.String(), "[[card]]")

	cards, err := Decode(&buf)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "Knight", cards[0].Name())
	assert.Equal(t, 40, cards[0].Have())
	assert.Equal(t, game.Legendary, cards[1].Rarity())
	assert.Empty(t, cards[0].ID())
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "collection.toml")

	golem, err := planner.NewCard("Golem", game.Epic, 9, 17)
	require.NoError(t, err)
	require.NoError(t, Save(path, []*planner.Card{golem}))

	cards, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "Golem", cards[0].Name())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "Save should not leave temp files behind")
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
