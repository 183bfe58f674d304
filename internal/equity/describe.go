package equity

import (
	"fmt"

	"PokerPal/internal/card"
)

// DescribePreflop names the shape of two hole cards when there is no board.
// Rank symbols are printed in input order.
func DescribePreflop(hand [2]card.Card) string {
	a, b := hand[0], hand[1]
	r1, r2 := string(a.RankChar()), string(b.RankChar())

	switch {
	case a.Rank == b.Rank:
		return fmt.Sprintf("Pair of %ss", r1)
	case a.Suit == b.Suit:
		return fmt.Sprintf("Suited %s%s", r1, r2)
	case a.Rank-b.Rank == 1 || b.Rank-a.Rank == 1:
		return fmt.Sprintf("Connector %s%s", r1, r2)
	default:
		return fmt.Sprintf("High Card %s%s", r1, r2)
	}
}

// Describe returns the current strength of hand: the preflop shape on an
// empty board, otherwise the rank class the evaluator assigns.
func Describe(ev Evaluator, board []card.Card, hand [2]card.Card) (string, error) {
	if len(board) == 0 {
		return DescribePreflop(hand), nil
	}
	score, err := ev.Evaluate(board, hand)
	if err != nil {
		return "", &EvaluationError{Err: err}
	}
	name, err := ev.Classify(score)
	if err != nil {
		return "", &EvaluationError{Err: err}
	}
	return name, nil
}
