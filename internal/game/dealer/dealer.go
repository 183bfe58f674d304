package dealer

import (
	"fmt"
	"math/rand"

	"PokerPal/internal/card"
)

// Dealer 只负责洗牌与发牌（无规则判断）
type Dealer struct {
	deck []card.Card
	rnd  *rand.Rand
}

func NewDealer(seed int64) *Dealer {
	return &Dealer{
		deck: make([]card.Card, 0, 52),
		rnd:  rand.New(rand.NewSource(seed)),
	}
}

// NewDeck 初始化一副牌并洗牌
func (d *Dealer) NewDeck() {
	d.deck = card.FullDeck()
	d.shuffle()
}

// Fisher-Yates
func (d *Dealer) shuffle() {
	for i := len(d.deck) - 1; i > 0; i-- {
		j := d.rnd.Intn(i + 1)
		d.deck[i], d.deck[j] = d.deck[j], d.deck[i]
	}
}

// Remaining 剩余张数
func (d *Dealer) Remaining() int {
	return len(d.deck)
}

// DealHoleCards 给每个座位发 2 张底牌，轮流发：座位0 一张 ... 再座位0 第二张
func (d *Dealer) DealHoleCards(seats int) ([][2]card.Card, error) {
	if seats*2 > len(d.deck) {
		return nil, fmt.Errorf("deal %d seats: only %d cards left", seats, len(d.deck))
	}
	out := make([][2]card.Card, seats)
	for i := 0; i < 2; i++ {
		for s := 0; s < seats; s++ {
			out[s][i] = d.draw()
		}
	}
	return out, nil
}

// DealCommunity 发公共牌 n 张（不烧牌）
func (d *Dealer) DealCommunity(n int) ([]card.Card, error) {
	if n > len(d.deck) {
		return nil, fmt.Errorf("deal %d community cards: only %d left", n, len(d.deck))
	}
	out := make([]card.Card, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, d.draw())
	}
	return out, nil
}

func (d *Dealer) draw() card.Card {
	c := d.deck[0]
	d.deck = d.deck[1:]
	return c
}
