// Package evaluator adapts github.com/chehsunliu/poker, a Go port of the
// treys hand evaluator, to equity.Evaluator.
package evaluator

import (
	"fmt"

	"PokerPal/internal/card"
	"PokerPal/internal/equity"

	"github.com/chehsunliu/poker"
)

// WorstScore is the weakest 5-card hand (7-5-4-3-2 offsuit); 1 is a royal flush.
const WorstScore = 7462

type Treys struct {
	lookup [52]poker.Card
}

func NewTreys() *Treys {
	t := &Treys{}
	for _, c := range card.FullDeck() {
		t.lookup[c.Index()] = poker.NewCard(c.String())
	}
	return t
}

// Evaluate scores the best five of hand + board. The library handles 5, 6 or
// 7 cards, so boards of one or two cards are rejected.
func (t *Treys) Evaluate(board []card.Card, hand [2]card.Card) (equity.Score, error) {
	n := len(board) + len(hand)
	if n < 5 || n > 7 {
		return 0, fmt.Errorf("cannot score %d cards, need 5 to 7", n)
	}

	var buf [7]poker.Card
	cards := buf[:0]
	for _, c := range hand {
		if !c.Valid() {
			return 0, fmt.Errorf("invalid hole card %v", c)
		}
		cards = append(cards, t.lookup[c.Index()])
	}
	for _, c := range board {
		if !c.Valid() {
			return 0, fmt.Errorf("invalid board card %v", c)
		}
		cards = append(cards, t.lookup[c.Index()])
	}
	return equity.Score(poker.Evaluate(cards)), nil
}

func (t *Treys) Classify(score equity.Score) (string, error) {
	if score < 1 || score > WorstScore {
		return "", fmt.Errorf("score %d out of range", score)
	}
	return poker.RankString(int32(score)), nil
}
