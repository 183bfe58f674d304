package card

import "fmt"

// FullDeck builds the 52 card universe, rank-major like a fresh pack.
func FullDeck() []Card {
	deck := make([]Card, 0, 52)
	for r := 2; r <= Ace; r++ {
		for s := Clubs; s <= Spades; s++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// Residual returns the deck minus every used card. The input is expected to
// be validated already; a card outside the 52 is still reported.
func Residual(used []Card) ([]Card, error) {
	var seen [52]bool
	for _, c := range used {
		if !c.Valid() {
			return nil, fmt.Errorf("card %v is not part of the deck", c)
		}
		seen[c.Index()] = true
	}
	out := make([]Card, 0, 52-len(used))
	for _, c := range FullDeck() {
		if !seen[c.Index()] {
			out = append(out, c)
		}
	}
	return out, nil
}
