package poker

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strconv"
)

// Rank is a card value: 2-10 face value, 11=Jack, 12=Queen, 13=King, 14=Ace.
type Rank int

const (
	Two   Rank = 2
	Three Rank = 3
	Four  Rank = 4
	Five  Rank = 5
	Six   Rank = 6
	Seven Rank = 7
	Eight Rank = 8
	Nine  Rank = 9
	Ten   Rank = 10
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
	Ace   Rank = 14
)

func (r Rank) Valid() bool { return r >= Two && r <= Ace }

func (r Rank) String() string {
	switch r {
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		return fmt.Sprintf("%d", int(r))
	}
}

// Suit represents a card suit.
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

var suitSymbols = map[Suit]string{
	Clubs:    "♣",
	Diamonds: "♦",
	Hearts:   "♥",
	Spades:   "♠",
}

func (s Suit) String() string { return suitSymbols[s] }

func (s Suit) Valid() bool { return s >= Clubs && s <= Spades }

// Card is an immutable playing card.
type Card struct {
	Suit Suit
	Rank Rank
}

func NewCard(suit Suit, rank Rank) Card { return Card{Suit: suit, Rank: rank} }

func (c Card) String() string { return c.Rank.String() + c.Suit.String() }

type cardJSON struct {
	Suit  string `json:"suit"`
	Value string `json:"value"`
}

func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(cardJSON{Suit: c.Suit.String(), Value: c.Rank.String()})
}

func (c *Card) UnmarshalJSON(data []byte) error {
	var cj cardJSON
	if err := json.Unmarshal(data, &cj); err != nil {
		return err
	}

	switch cj.Suit {
	case "♣", "c", "C", "clubs", "Clubs":
		c.Suit = Clubs
	case "♦", "d", "D", "diamonds", "Diamonds":
		c.Suit = Diamonds
	case "♥", "h", "H", "hearts", "Hearts":
		c.Suit = Hearts
	case "♠", "s", "S", "spades", "Spades":
		c.Suit = Spades
	default:
		return fmt.Errorf("invalid suit: %q", cj.Suit)
	}

	switch cj.Value {
	case "A", "a", "ace", "Ace":
		c.Rank = Ace
	case "K", "k", "king", "King":
		c.Rank = King
	case "Q", "q", "queen", "Queen":
		c.Rank = Queen
	case "J", "j", "jack", "Jack":
		c.Rank = Jack
	case "10", "T", "t", "ten", "Ten":
		c.Rank = Ten
	default:
		n, err := strconv.Atoi(cj.Value)
		if err != nil || Rank(n) < Two || Rank(n) > Nine {
			return fmt.Errorf("invalid value: %q", cj.Value)
		}
		c.Rank = Rank(n)
	}

	return nil
}

// Suits lists the four suits in a fixed order.
func Suits() []Suit { return []Suit{Clubs, Diamonds, Hearts, Spades} }

// Deck is an ordered collection of cards.
type Deck struct {
	cards []Card
}

// NewDeck returns the standard 52-card deck, unshuffled.
func NewDeck() *Deck {
	d := &Deck{cards: make([]Card, 0, 52)}
	for _, s := range Suits() {
		for r := Two; r <= Ace; r++ {
			d.cards = append(d.cards, NewCard(s, r))
		}
	}
	return d
}

// Shuffle randomizes card order in place.
func (d *Deck) Shuffle() {
	rand.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the top card. ok is false when the deck is empty.
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	c := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return c, true
}

// Deal draws n cards, or fails if fewer remain.
func (d *Deck) Deal(n int) ([]Card, error) {
	if n > len(d.cards) {
		return nil, fmt.Errorf("deal %d: only %d cards remain", n, len(d.cards))
	}
	out := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		c, _ := d.Draw()
		out = append(out, c)
	}
	return out, nil
}

func (d *Deck) Len() int { return len(d.cards) }
