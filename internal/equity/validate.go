package equity

import "PokerPal/internal/card"

const (
	HandSize     = 2
	MaxBoardSize = 5
	// MaxHands keeps enough cards in the deck to complete any board.
	MaxHands = 22
)

// Validate checks hands and board tokens and returns their canonical cards.
// The traversal order decides which problem is reported first: each hand in
// turn (size, then each card), then the board cards, then the board length.
func Validate(hands [][]string, board []string) ([][2]card.Card, []card.Card, error) {
	if len(hands) == 0 {
		return nil, nil, invalidf("At least one hand is required")
	}
	if len(hands) > MaxHands {
		return nil, nil, invalidf("Maximum %d players allowed (not enough cards in deck)", MaxHands)
	}

	seen := make(map[card.Card]bool, len(hands)*HandSize+len(board))
	out := make([][2]card.Card, len(hands))

	for i, hand := range hands {
		if len(hand) != HandSize {
			return nil, nil, invalidf("Player %d must have exactly %d cards", i+1, HandSize)
		}
		for j, tok := range hand {
			c, err := card.Parse(tok)
			if err != nil {
				return nil, nil, invalidf("Invalid card '%s' for Player %d", tok, i+1)
			}
			if seen[c] {
				return nil, nil, invalidf("Duplicate card '%s' found", c)
			}
			seen[c] = true
			out[i][j] = c
		}
	}

	cards := make([]card.Card, 0, len(board))
	for i, tok := range board {
		c, err := card.Parse(tok)
		if err != nil {
			return nil, nil, invalidf("Invalid board card '%s' at position %d", tok, i+1)
		}
		if seen[c] {
			return nil, nil, invalidf("Duplicate card '%s' found in board", c)
		}
		seen[c] = true
		cards = append(cards, c)
	}

	if len(cards) > MaxBoardSize {
		return nil, nil, invalidf("Board cannot have more than %d cards", MaxBoardSize)
	}
	return out, cards, nil
}

// usedCards is the union of every hole card and the board.
func usedCards(hands [][2]card.Card, board []card.Card) []card.Card {
	used := make([]card.Card, 0, len(hands)*HandSize+len(board))
	for _, h := range hands {
		used = append(used, h[:]...)
	}
	return append(used, board...)
}
