package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"PokerPal/internal/card"
	"PokerPal/internal/equity"
	"PokerPal/internal/game/dealer"
	"PokerPal/internal/game/table"
	"PokerPal/internal/utils"
	"PokerPal/internal/websocket"
)

// 客户端可发送的动作
const (
	ActionStart      = "start"
	ActionNextStreet = "next_street"
	ActionReset      = "reset"
)

var ErrBusy = errors.New("table is busy, try again")

// Calculator is the part of equity.Calculator the engine needs.
type Calculator interface {
	Simulate(ctx context.Context, req equity.Request) (*equity.Result, error)
}

// ---------------------
//   ACTION DEFINITION
// ---------------------

type Action struct {
	Player string
	Event  string
}

// Odds is the payload of "odds" and "showdown" pushes.
type Odds struct {
	Table  string     `json:"table"`
	Street string     `json:"street"`
	Hands  [][]string `json:"hands"`
	Pretty [][]string `json:"pretty"`
	Board  []string   `json:"board"`
	equity.Response
}

// ---------------------
//       ENGINE
// ---------------------

type Engine struct {
	Table      *table.Table
	Dealer     *dealer.Dealer
	Hub        websocket.HubInterface
	calc       Calculator
	actionChan chan Action

	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

func NewEngine(t *table.Table, hub websocket.HubInterface, calc Calculator) *Engine {
	ctx, cancel := context.WithCancel(context.Background())
	return &Engine{
		Table:      t,
		Dealer:     dealer.NewDealer(time.Now().UnixNano()),
		Hub:        hub,
		calc:       calc,
		actionChan: make(chan Action, 32), // 防止死锁
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start 洗牌、发底牌并推送翻牌前胜率；reset 也走这里
func (e *Engine) Start() {
	e.Dealer.NewDeck()
	e.Table.Reset()

	hands, err := e.Dealer.DealHoleCards(e.Table.Seats)
	if err != nil {
		e.sendError(err)
		return
	}
	e.Table.Hands = hands
	e.pushOdds("odds")
}

// Run 动作循环：串行处理玩家操作，Stop 后退出
func (e *Engine) Run() {
	for {
		select {
		case <-e.ctx.Done():
			return
		case act := <-e.actionChan:
			e.handleAction(act)
		}
	}
}

func (e *Engine) handleAction(a Action) {
	switch a.Event {
	case ActionStart, ActionReset:
		e.Start()
	case ActionNextStreet:
		e.NextRound()
	default:
		utils.Log.Debug("unknown table action", "table", e.Table.ID, "event", a.Event)
	}
}

// EnqueueAction never blocks; a full queue returns ErrBusy.
func (e *Engine) EnqueueAction(player, event string) error {
	if e.ctx.Err() != nil {
		return context.Canceled
	}
	select {
	case e.actionChan <- Action{Player: player, Event: event}:
		return nil
	default:
		return ErrBusy
	}
}

// Stop ends Run and aborts a running simulation. Safe to call twice.
func (e *Engine) Stop() {
	e.once.Do(e.cancel)
}

// --------------------------
//        下一阶段逻辑
// --------------------------

func (e *Engine) NextRound() {
	switch e.Table.Street {
	case table.Preflop:
		e.deal(3, table.Flop)
	case table.Flop:
		e.deal(1, table.Turn)
	case table.Turn:
		e.deal(1, table.River)
	case table.River:
		e.Table.Street = table.Showdown
		e.pushOdds("showdown")
	case table.Showdown:
		e.sendError(errors.New("hand is over, send reset to deal again"))
	}
}

func (e *Engine) deal(n int, next table.Street) {
	cards, err := e.Dealer.DealCommunity(n)
	if err != nil {
		e.sendError(err)
		return
	}
	e.Table.Community = append(e.Table.Community, cards...)
	e.Table.Street = next
	e.pushOdds("odds")
}

func (e *Engine) pushOdds(event string) {
	t := e.Table
	sims := t.NumSims
	req := equity.Request{Hands: t.HandTokens(), Board: t.BoardTokens(), NumSims: &sims}

	var resp equity.Response
	res, err := e.calc.Simulate(e.ctx, req)
	if err != nil {
		if e.ctx.Err() != nil {
			return // stopped
		}
		utils.Log.Warn("table simulation failed", "table", t.ID, "street", t.Street, "err", err)
		resp = equity.ErrorResponse(len(t.Hands), err)
	} else {
		resp = res.Response()
	}

	pretty := make([][]string, len(t.Hands))
	for i, h := range t.Hands {
		pretty[i] = card.Pretties(h[:])
	}
	e.Hub.SendToPlayer(t.Owner, websocket.OutgoingMessage{
		Event: event,
		Data: Odds{
			Table:    t.ID,
			Street:   string(t.Street),
			Hands:    req.Hands,
			Pretty:   pretty,
			Board:    req.Board,
			Response: resp,
		},
	})
}

func (e *Engine) sendError(err error) {
	e.Hub.SendToPlayer(e.Table.Owner, websocket.OutgoingMessage{
		Event: "error",
		Data:  map[string]any{"table": e.Table.ID, "error": err.Error()},
	})
}
