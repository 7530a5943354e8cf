package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The nine published calibration hands. A correct encoding must reproduce
// every value bit for bit.
func TestTiebreakCalibration(t *testing.T) {
	cases := []struct {
		name     string
		cards    []Card
		category Category
		tiebreak int
	}{
		{
			name: "high card ace-king-queen-jack-nine",
			cards: []Card{
				card(Hearts, Ace), card(Clubs, King), card(Hearts, Queen),
				card(Spades, Jack), card(Hearts, Nine),
			},
			category: HighCard,
			tiebreak: 6188,
		},
		{
			name: "pair of aces",
			cards: []Card{
				card(Hearts, Ace), card(Clubs, Ace), card(Diamonds, Queen),
				card(Diamonds, Jack), card(Clubs, King),
			},
			category: Pair,
			tiebreak: 3848,
		},
		{
			name: "aces and kings",
			cards: []Card{
				card(Hearts, Ace), card(Diamonds, Ace), card(Clubs, King),
				card(Spades, King), card(Clubs, Queen),
			},
			category: TwoPair,
			tiebreak: 624,
		},
		{
			name: "trip aces",
			cards: []Card{
				card(Diamonds, Ace), card(Clubs, Ace), card(Hearts, Ace),
				card(Clubs, King), card(Clubs, Queen),
			},
			category: ThreeOfAKind,
			tiebreak: 1976,
		},
		{
			name: "ace-high straight",
			cards: []Card{
				card(Clubs, King), card(Diamonds, Queen), card(Diamonds, Jack),
				card(Diamonds, Ten), card(Diamonds, Ace),
			},
			category: Straight,
			tiebreak: 9880,
		},
		{
			name: "ace-high flush",
			cards: []Card{
				card(Clubs, King), card(Clubs, Queen), card(Clubs, Jack),
				card(Clubs, Nine), card(Clubs, Ace),
			},
			category: Flush,
			tiebreak: 9828,
		},
		{
			name: "aces full of kings",
			cards: []Card{
				card(Clubs, King), card(Diamonds, King), card(Hearts, Ace),
				card(Diamonds, Ace), card(Spades, Ace),
			},
			category: FullHouse,
			tiebreak: 10764,
		},
		{
			name: "quad aces",
			cards: []Card{
				card(Clubs, King), card(Clubs, Ace), card(Hearts, Ace),
				card(Diamonds, Ace), card(Spades, Ace),
			},
			category: FourOfAKind,
			tiebreak: 676,
		},
		{
			name: "king-high straight flush",
			cards: []Card{
				card(Clubs, Nine), card(Clubs, Ten), card(Clubs, Jack),
				card(Clubs, Queen), card(Clubs, King),
			},
			category: StraightFlush,
			tiebreak: 9100,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score, err := Evaluate(tc.cards)
			require.NoError(t, err)
			assert.Equal(t, tc.category, score.Category)
			assert.Equal(t, tc.tiebreak, score.Tiebreak)
		})
	}
}

func TestWheelRanksBelowSixHighStraight(t *testing.T) {
	wheel := mustHand(t,
		card(Clubs, Ace), card(Diamonds, Two), card(Hearts, Three),
		card(Spades, Four), card(Clubs, Five),
	).Score()
	sixHigh := mustHand(t,
		card(Clubs, Two), card(Diamonds, Three), card(Hearts, Four),
		card(Spades, Five), card(Clubs, Six),
	).Score()

	require.Equal(t, Straight, wheel.Category)
	require.Equal(t, Straight, sixHigh.Category)
	assert.True(t, wheel.Less(sixHigh), "wheel %d must rank below six-high %d", wheel.Tiebreak, sixHigh.Tiebreak)
}

func TestTiebreakEqualForEqualRankStructure(t *testing.T) {
	a := mustHand(t,
		card(Hearts, Ace), card(Clubs, Ace), card(Diamonds, Queen),
		card(Diamonds, Jack), card(Clubs, King),
	).Score()
	b := mustHand(t,
		card(Spades, Ace), card(Diamonds, Ace), card(Hearts, Queen),
		card(Spades, Jack), card(Diamonds, King),
	).Score()

	assert.Equal(t, a, b, "suit-permuted hands must score identically")
}

func TestTiebreakKickerMonotonicity(t *testing.T) {
	// Same pair, strictly better top kicker.
	better := mustHand(t,
		card(Hearts, Ace), card(Clubs, Ace), card(Diamonds, King),
		card(Diamonds, Queen), card(Clubs, Nine),
	).Score()
	worse := mustHand(t,
		card(Spades, Ace), card(Diamonds, Ace), card(Hearts, King),
		card(Hearts, Jack), card(Spades, Nine),
	).Score()

	require.Equal(t, Pair, better.Category)
	require.Equal(t, Pair, worse.Category)
	assert.True(t, worse.Less(better))
}

func TestFullHouseTripRankDominates(t *testing.T) {
	acesFull := mustHand(t,
		card(Clubs, King), card(Diamonds, King), card(Hearts, Ace),
		card(Diamonds, Ace), card(Spades, Ace),
	).Score()
	kingsFull := mustHand(t,
		card(Clubs, Ace), card(Diamonds, Ace), card(Hearts, King),
		card(Diamonds, King), card(Spades, King),
	).Score()

	assert.True(t, kingsFull.Less(acesFull))
}

func TestScoreCompareAcrossCategories(t *testing.T) {
	flush := mustHand(t,
		card(Clubs, Seven), card(Clubs, Five), card(Clubs, Four),
		card(Clubs, Three), card(Clubs, Two),
	).Score()
	quads := mustHand(t,
		card(Clubs, Two), card(Diamonds, Two), card(Hearts, Two),
		card(Spades, Two), card(Clubs, Three),
	).Score()

	require.Equal(t, Flush, flush.Category)
	require.Equal(t, FourOfAKind, quads.Category)
	// Worst quads beat the best flush regardless of tiebreak magnitude.
	assert.True(t, flush.Less(quads))
	assert.Equal(t, 1, quads.Compare(flush))
	assert.Equal(t, 0, quads.Compare(quads))
}

func TestBestFivePicksStrongestCombination(t *testing.T) {
	seven := []Card{
		card(Spades, Three), card(Diamonds, Three), card(Clubs, Three),
		card(Diamonds, Two), card(Spades, Two),
		card(Hearts, Jack), card(Clubs, Nine),
	}
	score, five, err := BestFive(seven)
	require.NoError(t, err)
	assert.Equal(t, FullHouse, score.Category)
	assert.Len(t, five, 5)

	_, _, err = BestFive(seven[:6])
	assert.Error(t, err)

	dup := append(append([]Card{}, seven[:6]...), seven[0])
	_, _, err = BestFive(dup)
	assert.Error(t, err)
}

func TestShowdownWinnersAndSplit(t *testing.T) {
	trips := mustHand(t,
		card(Spades, Three), card(Diamonds, Three), card(Clubs, Three),
		card(Diamonds, Jack), card(Spades, Two),
	)
	pair := mustHand(t,
		card(Clubs, Two), card(Diamonds, Two), card(Hearts, Ace),
		card(Spades, King), card(Clubs, Queen),
	)
	winners, best := Showdown(map[string]Hand{"p1": trips, "p2": pair})
	assert.Equal(t, []string{"p1"}, winners)
	assert.Equal(t, ThreeOfAKind, best.Category)

	pairB := mustHand(t,
		card(Hearts, Two), card(Spades, Two), card(Diamonds, Ace),
		card(Hearts, King), card(Diamonds, Queen),
	)
	winners, best = Showdown(map[string]Hand{"p2": pair, "p3": pairB})
	assert.ElementsMatch(t, []string{"p2", "p3"}, winners)
	assert.Equal(t, Pair, best.Category)
}
