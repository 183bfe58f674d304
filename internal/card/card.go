package card

import (
	"fmt"
	"strings"
)

// Suit 0-3: clubs, diamonds, hearts, spades
const (
	Clubs = iota
	Diamonds
	Hearts
	Spades
)

const (
	Jack  = 11
	Queen = 12
	King  = 13
	Ace   = 14
)

const (
	rankChars = "23456789TJQKA"
	suitChars = "cdhs"
)

// Card 定义 (suit 0-3, rank 2-14)
type Card struct {
	Suit int `json:"suit"`
	Rank int `json:"rank"`
}

// Parse reads a two character token such as "As", "td" or "9H".
// Rank and suit are case-insensitive.
func Parse(token string) (Card, error) {
	if len(token) != 2 {
		return Card{}, fmt.Errorf("invalid card %q", token)
	}
	r := strings.IndexByte(rankChars, upper(token[0]))
	s := strings.IndexByte(suitChars, lower(token[1]))
	if r < 0 || s < 0 {
		return Card{}, fmt.Errorf("invalid card %q", token)
	}
	return Card{Suit: s, Rank: r + 2}, nil
}

// MustParse is Parse for literals in tests and tables.
func MustParse(token string) Card {
	c, err := Parse(token)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseList parses every token, stopping at the first bad one.
func ParseList(tokens []string) ([]Card, error) {
	out := make([]Card, 0, len(tokens))
	for _, t := range tokens {
		c, err := Parse(t)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (c Card) Valid() bool {
	return c.Rank >= 2 && c.Rank <= Ace && c.Suit >= Clubs && c.Suit <= Spades
}

// Index maps the card onto 0..51.
func (c Card) Index() int {
	return c.Suit*13 + c.Rank - 2
}

// RankChar is the canonical rank symbol (2-9, T, J, Q, K, A).
func (c Card) RankChar() byte {
	if c.Rank < 2 || c.Rank > Ace {
		return '?'
	}
	return rankChars[c.Rank-2]
}

// SuitChar is the canonical lower-case suit symbol.
func (c Card) SuitChar() byte {
	if c.Suit < Clubs || c.Suit > Spades {
		return '?'
	}
	return suitChars[c.Suit]
}

// String returns the canonical token: rank upper-case, suit lower-case.
func (c Card) String() string {
	return string([]byte{c.RankChar(), c.SuitChar()})
}

// Pretty 用于终端/日志显示, e.g. "10♠", "A♥"
func (c Card) Pretty() string {
	suits := []string{"♣", "♦", "♥", "♠"}
	ranks := map[int]string{
		10: "10",
		11: "J",
		12: "Q",
		13: "K",
		14: "A",
	}
	rankStr, ok := ranks[c.Rank]
	if !ok {
		rankStr = fmt.Sprintf("%d", c.Rank)
	}
	suitStr := "?"
	if c.Suit >= 0 && c.Suit < len(suits) {
		suitStr = suits[c.Suit]
	}
	return rankStr + suitStr
}

// Strings renders cards as canonical tokens.
func Strings(cards []Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

// Pretties renders cards in display form.
func Pretties(cards []Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Pretty()
	}
	return out
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}
