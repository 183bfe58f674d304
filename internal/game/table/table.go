package table

import (
	"time"

	"PokerPal/internal/card"
)

// Street 当前发牌阶段
type Street string

const (
	Preflop  Street = "preflop"
	Flop     Street = "flop"
	Turn     Street = "turn"
	River    Street = "river"
	Showdown Street = "showdown"
)

// Table 一局模拟牌桌：Owner 是发起的 websocket 客户端
type Table struct {
	ID        string
	Owner     string
	Seats     int
	NumSims   int
	CreatedAt time.Time

	// 运行时状态
	Hands     [][2]card.Card
	Community []card.Card
	Street    Street
}

func New(id, owner string, seats, numSims int) *Table {
	return &Table{
		ID:        id,
		Owner:     owner,
		Seats:     seats,
		NumSims:   numSims,
		CreatedAt: time.Now(),
	}
}

// HandTokens returns hole cards as canonical tokens, e.g. [["As","Kh"], ...].
func (t *Table) HandTokens() [][]string {
	out := make([][]string, len(t.Hands))
	for i, h := range t.Hands {
		out[i] = card.Strings(h[:])
	}
	return out
}

func (t *Table) BoardTokens() []string {
	return card.Strings(t.Community)
}

// Reset clears the dealt cards; seats and sims are kept.
func (t *Table) Reset() {
	t.Hands = nil
	t.Community = nil
	t.Street = Preflop
}
