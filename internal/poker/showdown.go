package poker

import "fmt"

// BestFive searches every five-card combination of seven cards and returns
// the strongest score together with the cards that achieve it.
func BestFive(cards []Card) (Score, []Card, error) {
	if len(cards) != 7 {
		return Score{}, nil, fmt.Errorf("best-five needs exactly 7 cards, got %d", len(cards))
	}
	seen := make(map[Card]bool, len(cards))
	for _, c := range cards {
		if seen[c] {
			return Score{}, nil, fmt.Errorf("duplicate card %s", c)
		}
		seen[c] = true
	}

	var (
		best      Score
		bestCards []Card
		found     bool
	)
	// Drop two indices i<j; the remaining five form one combination.
	for i := 0; i < len(cards)-1; i++ {
		for j := i + 1; j < len(cards); j++ {
			five := make([]Card, 0, HandSize)
			for k, c := range cards {
				if k != i && k != j {
					five = append(five, c)
				}
			}
			score, err := Evaluate(five)
			if err != nil {
				return Score{}, nil, err
			}
			if !found || best.Less(score) {
				best = score
				bestCards = five
				found = true
			}
		}
	}
	return best, bestCards, nil
}

// Showdown ranks competing five-card hands and returns the ids holding the
// strongest score. Multiple ids mean a split.
func Showdown(hands map[string]Hand) ([]string, Score) {
	var (
		best    Score
		winners []string
		found   bool
	)
	for id, h := range hands {
		score := h.Score()
		switch {
		case !found || best.Less(score):
			best = score
			winners = []string{id}
			found = true
		case score.Compare(best) == 0:
			winners = append(winners, id)
		}
	}
	return winners, best
}
