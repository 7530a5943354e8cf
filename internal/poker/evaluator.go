package poker

import (
	"errors"
	"sort"
)

// Category is one of the ten ranked poker hand classes, HighCard weakest.
type Category int

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// ErrMalformedHand reports input that is not exactly five distinct valid cards.
var ErrMalformedHand = errors.New("hand must be exactly 5 distinct cards")

// HandSize is the number of cards in an evaluated hand.
const HandSize = 5

// Hand is a set of exactly five distinct cards.
type Hand struct {
	cards [HandSize]Card
}

// NewHand validates and builds a hand. Card order is irrelevant.
func NewHand(cards []Card) (Hand, error) {
	if len(cards) != HandSize {
		return Hand{}, ErrMalformedHand
	}
	seen := make(map[Card]bool, HandSize)
	var h Hand
	for i, c := range cards {
		if !c.Rank.Valid() || !c.Suit.Valid() || seen[c] {
			return Hand{}, ErrMalformedHand
		}
		seen[c] = true
		h.cards[i] = c
	}
	return h, nil
}

// Cards returns the hand's cards.
func (h Hand) Cards() []Card {
	out := make([]Card, HandSize)
	copy(out, h.cards[:])
	return out
}

// ranksAscending returns the five rank values sorted low to high.
func (h Hand) ranksAscending() []int {
	vs := make([]int, HandSize)
	for i, c := range h.cards {
		vs[i] = int(c.Rank)
	}
	sort.Ints(vs)
	return vs
}

// rankCounts groups the hand by rank.
func (h Hand) rankCounts() map[Rank]int {
	counts := make(map[Rank]int, HandSize)
	for _, c := range h.cards {
		counts[c.Rank]++
	}
	return counts
}

func (h Hand) isFlush() bool {
	for _, c := range h.cards[1:] {
		if c.Suit != h.cards[0].Suit {
			return false
		}
	}
	return true
}

// isWheel reports the A-2-3-4-5 straight, where the ace plays low.
func (h Hand) isWheel() bool {
	vs := h.ranksAscending()
	return vs[0] == 2 && vs[1] == 3 && vs[2] == 4 && vs[3] == 5 && vs[4] == int(Ace)
}

// isStraight accepts five consecutive ranks under either ace reading.
func (h Hand) isStraight() bool {
	if h.isWheel() {
		return true
	}
	vs := h.ranksAscending()
	for i := 0; i < len(vs)-1; i++ {
		if vs[i+1]-vs[i] != 1 {
			return false
		}
	}
	return true
}

// isRoyal reports ranks exactly 10-J-Q-K-A.
func (h Hand) isRoyal() bool {
	vs := h.ranksAscending()
	return vs[0] == int(Ten) && vs[1] == int(Jack) && vs[2] == int(Queen) &&
		vs[3] == int(King) && vs[4] == int(Ace)
}

// Category classifies the hand into exactly one of the ten categories.
// Boolean shapes are settled first; grouped shapes follow in descending
// strength, defaulting to HighCard.
func (h Hand) Category() Category {
	flush := h.isFlush()
	straight := h.isStraight()

	if flush {
		switch {
		case h.isRoyal():
			return RoyalFlush
		case straight:
			return StraightFlush
		default:
			return Flush
		}
	}
	if straight {
		return Straight
	}

	var pairs, trips, quads int
	for _, n := range h.rankCounts() {
		switch n {
		case 2:
			pairs++
		case 3:
			trips++
		case 4:
			quads++
		}
	}

	switch {
	case quads == 1:
		return FourOfAKind
	case trips == 1 && pairs == 1:
		return FullHouse
	case trips == 1:
		return ThreeOfAKind
	case pairs == 2:
		return TwoPair
	case pairs == 1:
		return Pair
	default:
		return HighCard
	}
}
