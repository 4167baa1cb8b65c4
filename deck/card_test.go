package deck

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCard(t *testing.T) {
	cases := []struct {
		name     string
		card     Card
		expected string
	}{
		{"Lowest value card", NewCard(Ace, Hearts), "A♥"},
		{"Ten has two digits", NewCard(Ten, Diamonds), "10♦"},
		{"Highest value card", NewCard(King, Spades), "K♠"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.expected, c.card.String())
		})
	}

	t.Run("cards are equal iff suit and rank are equal", func(t *testing.T) {
		assert.Equal(t, NewCard(Queen, Clubs), Card{Suit: Clubs, Rank: Queen})
		assert.NotEqual(t, NewCard(Queen, Clubs), NewCard(Queen, Spades))
		assert.NotEqual(t, NewCard(Queen, Clubs), NewCard(King, Clubs))
	})

	t.Run("rank values run from ace to king", func(t *testing.T) {
		assert.Equal(t, 1, Ace.Value())
		assert.Equal(t, 7, Seven.Value())
		assert.Equal(t, 10, Ten.Value())
		assert.Equal(t, 11, Jack.Value())
		assert.Equal(t, 12, Queen.Value())
		assert.Equal(t, 13, King.Value())
	})

	t.Run("suit colours", func(t *testing.T) {
		assert.Equal(t, Red, Hearts.Color())
		assert.Equal(t, Red, Diamonds.Color())
		assert.Equal(t, Black, Clubs.Color())
		assert.Equal(t, Black, Spades.Color())
	})

	t.Run("out of range values do not panic", func(t *testing.T) {
		assert.Equal(t, "Rank(14)", Rank(14).String())
		assert.Equal(t, "Suit(4)", Suit(4).String())
		assert.Equal(t, "?", Suit(-1).Glyph())
	})
}

func TestParse(t *testing.T) {
	s, ok := ParseSuit("diamonds")
	assert.True(t, ok)
	assert.Equal(t, Diamonds, s)

	_, ok = ParseSuit("stars")
	assert.False(t, ok)

	c, ok := ParseColor("black")
	assert.True(t, ok)
	assert.Equal(t, Black, c)

	_, ok = ParseColor("green")
	assert.False(t, ok)

	r, ok := ParseRank("J")
	assert.True(t, ok)
	assert.Equal(t, Jack, r)

	_, ok = ParseRank("1")
	assert.False(t, ok)
}

func TestCardJSON(t *testing.T) {
	data, err := json.Marshal(NewCard(Ten, Hearts))
	require.NoError(t, err)
	assert.JSONEq(t, `{"suit":"hearts","rank":"10","symbol":"♥","color":"red"}`, string(data))

	var got Card
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, NewCard(Ten, Hearts), got)

	err = json.Unmarshal([]byte(`{"suit":"stars","rank":"A"}`), &got)
	assert.Error(t, err)
}
