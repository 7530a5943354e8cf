package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func card(s Suit, r Rank) Card { return NewCard(s, r) }

func mustHand(t *testing.T, cards ...Card) Hand {
	t.Helper()
	h, err := NewHand(cards)
	require.NoError(t, err)
	return h
}

func TestCategoryClassification(t *testing.T) {
	cases := []struct {
		name  string
		cards []Card
		want  Category
	}{
		{
			name: "high card",
			cards: []Card{
				card(Hearts, Ace), card(Clubs, King), card(Hearts, Queen),
				card(Spades, Jack), card(Hearts, Nine),
			},
			want: HighCard,
		},
		{
			name: "pair",
			cards: []Card{
				card(Hearts, Ace), card(Clubs, Ace), card(Diamonds, Queen),
				card(Diamonds, Jack), card(Clubs, King),
			},
			want: Pair,
		},
		{
			name: "two pair",
			cards: []Card{
				card(Hearts, Ace), card(Diamonds, Ace), card(Clubs, King),
				card(Spades, King), card(Clubs, Queen),
			},
			want: TwoPair,
		},
		{
			name: "three of a kind",
			cards: []Card{
				card(Diamonds, Ace), card(Clubs, Ace), card(Hearts, Ace),
				card(Clubs, King), card(Clubs, Queen),
			},
			want: ThreeOfAKind,
		},
		{
			name: "straight",
			cards: []Card{
				card(Clubs, King), card(Diamonds, Queen), card(Diamonds, Jack),
				card(Diamonds, Ten), card(Diamonds, Ace),
			},
			want: Straight,
		},
		{
			name: "wheel straight counts ace low",
			cards: []Card{
				card(Clubs, Ace), card(Diamonds, Two), card(Hearts, Three),
				card(Spades, Four), card(Clubs, Five),
			},
			want: Straight,
		},
		{
			name: "flush",
			cards: []Card{
				card(Clubs, King), card(Clubs, Queen), card(Clubs, Jack),
				card(Clubs, Nine), card(Clubs, Ace),
			},
			want: Flush,
		},
		{
			name: "full house",
			cards: []Card{
				card(Clubs, King), card(Diamonds, King), card(Hearts, Ace),
				card(Diamonds, Ace), card(Spades, Ace),
			},
			want: FullHouse,
		},
		{
			name: "four of a kind",
			cards: []Card{
				card(Clubs, King), card(Clubs, Ace), card(Hearts, Ace),
				card(Diamonds, Ace), card(Spades, Ace),
			},
			want: FourOfAKind,
		},
		{
			name: "straight flush",
			cards: []Card{
				card(Clubs, Nine), card(Clubs, Ten), card(Clubs, Jack),
				card(Clubs, Queen), card(Clubs, King),
			},
			want: StraightFlush,
		},
		{
			name: "wheel straight flush",
			cards: []Card{
				card(Hearts, Ace), card(Hearts, Two), card(Hearts, Three),
				card(Hearts, Four), card(Hearts, Five),
			},
			want: StraightFlush,
		},
		{
			name: "royal flush reported over straight flush",
			cards: []Card{
				card(Spades, Ten), card(Spades, Jack), card(Spades, Queen),
				card(Spades, King), card(Spades, Ace),
			},
			want: RoyalFlush,
		},
		{
			name: "ace does not wrap around",
			cards: []Card{
				card(Clubs, Queen), card(Diamonds, King), card(Hearts, Ace),
				card(Spades, Two), card(Clubs, Three),
			},
			want: HighCard,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := mustHand(t, tc.cards...)
			assert.Equal(t, tc.want, h.Category())
		})
	}
}

func TestNewHandRejectsMalformedInput(t *testing.T) {
	base := []Card{
		card(Hearts, Ace), card(Clubs, King), card(Hearts, Queen),
		card(Spades, Jack), card(Hearts, Nine),
	}

	_, err := NewHand(base[:4])
	assert.ErrorIs(t, err, ErrMalformedHand)

	_, err = NewHand(append(base[:4], base[0]))
	assert.ErrorIs(t, err, ErrMalformedHand)

	six := append(append([]Card{}, base...), card(Clubs, Two))
	_, err = NewHand(six)
	assert.ErrorIs(t, err, ErrMalformedHand)

	bad := append([]Card{}, base[:4]...)
	bad = append(bad, Card{Suit: Hearts, Rank: 15})
	_, err = NewHand(bad)
	assert.ErrorIs(t, err, ErrMalformedHand)
}

func TestCategoryOrderingIsTotal(t *testing.T) {
	order := []Category{
		HighCard, Pair, TwoPair, ThreeOfAKind, Straight, Flush,
		FullHouse, FourOfAKind, StraightFlush, RoyalFlush,
	}
	for i := 0; i < len(order)-1; i++ {
		assert.Less(t, order[i], order[i+1], "%s must rank below %s", order[i], order[i+1])
	}
}

func TestDeckHas52DistinctCards(t *testing.T) {
	d := NewDeck()
	require.Equal(t, 52, d.Len())

	seen := make(map[Card]bool)
	for {
		c, ok := d.Draw()
		if !ok {
			break
		}
		assert.False(t, seen[c], "duplicate card %s", c)
		seen[c] = true
	}
	assert.Len(t, seen, 52)
}

func TestDeckDeal(t *testing.T) {
	d := NewDeck()
	d.Shuffle()

	hole, err := d.Deal(2)
	require.NoError(t, err)
	assert.Len(t, hole, 2)
	assert.Equal(t, 50, d.Len())

	_, err = d.Deal(51)
	assert.Error(t, err)
}
