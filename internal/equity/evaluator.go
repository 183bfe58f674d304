package equity

import "PokerPal/internal/card"

// Score is a hand strength. Lower means stronger.
type Score int32

// Evaluator scores hole cards against a board and names rank classes.
// Implementations must be safe for concurrent use.
type Evaluator interface {
	Evaluate(board []card.Card, hand [2]card.Card) (Score, error)
	Classify(score Score) (string, error)
}
