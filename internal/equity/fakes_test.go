package equity

import (
	"errors"
	"fmt"
	"sync/atomic"

	"PokerPal/internal/card"
)

// fixedEval scores a hand by its first hole card, ignoring the board.
type fixedEval struct {
	scores map[card.Card]Score
	calls  atomic.Int64
}

func (f *fixedEval) Evaluate(board []card.Card, hand [2]card.Card) (Score, error) {
	f.calls.Add(1)
	sc, ok := f.scores[hand[0]]
	if !ok {
		return 0, fmt.Errorf("no score for %s", hand[0])
	}
	return sc, nil
}

func (f *fixedEval) Classify(score Score) (string, error) {
	return fmt.Sprintf("Class %d", score), nil
}

// boardEval depends on the completed board so random draws change outcomes.
// It fails when a card shows up twice, which catches draws that reuse cards.
type boardEval struct{}

func (boardEval) Evaluate(board []card.Card, hand [2]card.Card) (Score, error) {
	if len(board) > MaxBoardSize {
		return 0, fmt.Errorf("board has %d cards", len(board))
	}
	seen := make(map[card.Card]bool, 7)
	for _, c := range append(append([]card.Card{}, board...), hand[:]...) {
		if seen[c] {
			return 0, fmt.Errorf("card %s dealt twice", c)
		}
		seen[c] = true
	}
	matches := 0
	for _, b := range board {
		if b.Suit == hand[0].Suit || b.Suit == hand[1].Suit {
			matches++
		}
	}
	return Score(100 - matches*10), nil
}

func (boardEval) Classify(score Score) (string, error) {
	return "Board", nil
}

// failingEval errors once it has been called after calls.
type failingEval struct {
	after int64
	calls atomic.Int64
}

var errBroken = errors.New("evaluator broken")

func (f *failingEval) Evaluate(board []card.Card, hand [2]card.Card) (Score, error) {
	if f.calls.Add(1) > f.after {
		return 0, errBroken
	}
	return 1, nil
}

func (f *failingEval) Classify(score Score) (string, error) {
	return "", errBroken
}

func mustHands(tokens ...[2]string) [][2]card.Card {
	out := make([][2]card.Card, len(tokens))
	for i, t := range tokens {
		out[i] = [2]card.Card{card.MustParse(t[0]), card.MustParse(t[1])}
	}
	return out
}

func mustCards(tokens ...string) []card.Card {
	out := make([]card.Card, len(tokens))
	for i, t := range tokens {
		out[i] = card.MustParse(t)
	}
	return out
}

func intPtr(n int) *int { return &n }

func seedPtr(n int64) *int64 { return &n }

func mustScores(in map[string]Score) map[card.Card]Score {
	out := make(map[card.Card]Score, len(in))
	for tok, sc := range in {
		out[card.MustParse(tok)] = sc
	}
	return out
}
