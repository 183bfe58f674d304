package manager

import (
	"encoding/json"
	"fmt"
	"sync"

	"PokerPal/internal/equity"
	"PokerPal/internal/game/engine"
	"PokerPal/internal/game/table"
	"PokerPal/internal/utils"
	"PokerPal/internal/websocket"

	"github.com/google/uuid"
)

// StartTable is the data of a "start_table" message, e.g. {"seats": 4, "num_sims": 2000}.
type StartTable struct {
	Seats   int `json:"seats"`
	NumSims int `json:"num_sims"`
}

// GameManager 管理所有牌桌：每个 websocket 客户端最多一张
type GameManager struct {
	mu          sync.RWMutex
	engines     map[string]*engine.Engine // client id → engine
	hub         websocket.HubInterface
	calc        engine.Calculator
	defaultSims int
	maxSims     int
}

func NewGameManager(hub websocket.HubInterface, calc engine.Calculator, defaultSims, maxSims int) *GameManager {
	if defaultSims <= 0 {
		defaultSims = equity.DefaultSims
	}
	return &GameManager{
		engines:     make(map[string]*engine.Engine),
		hub:         hub,
		calc:        calc,
		defaultSims: defaultSims,
		maxSims:     maxSims,
	}
}

// StartTable 为 owner 开一张新桌，已有的桌子会被替换
func (m *GameManager) StartTable(owner string, req StartTable) (*table.Table, error) {
	if req.Seats < 1 || req.Seats > equity.MaxHands {
		return nil, fmt.Errorf("seats must be between 1 and %d, got %d", equity.MaxHands, req.Seats)
	}
	sims := req.NumSims
	if sims == 0 {
		sims = m.defaultSims
	}
	if sims < 0 {
		return nil, fmt.Errorf("num_sims must be positive, got %d", sims)
	}
	if m.maxSims > 0 && sims > m.maxSims {
		return nil, fmt.Errorf("num_sims must be at most %d, got %d", m.maxSims, sims)
	}

	t := table.New(uuid.NewString(), owner, req.Seats, sims)
	eng := engine.NewEngine(t, m.hub, m.calc)

	m.mu.Lock()
	if old, ok := m.engines[owner]; ok {
		old.Stop()
	}
	m.engines[owner] = eng
	m.mu.Unlock()

	go eng.Run()
	if err := eng.EnqueueAction(owner, engine.ActionStart); err != nil {
		return nil, err
	}
	utils.Log.Info("table started", "table", t.ID, "owner", owner, "seats", t.Seats, "sims", sims)
	return t, nil
}

// RemoveTable 客户端断开时调用
func (m *GameManager) RemoveTable(owner string) {
	m.mu.Lock()
	eng, ok := m.engines[owner]
	delete(m.engines, owner)
	m.mu.Unlock()

	if ok {
		eng.Stop()
		utils.Log.Debug("table removed", "table", eng.Table.ID, "owner", owner)
	}
}

func (m *GameManager) Table(owner string) (*engine.Engine, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	eng, ok := m.engines[owner]
	return eng, ok
}

// HandlePlayerMessage 统一入口（来自 Hub.OnIncoming，运行在 hub 循环内，不能阻塞）
func (m *GameManager) HandlePlayerMessage(msg websocket.IncomingMessage) {
	switch msg.Event {

	case "start_table":
		var req StartTable
		if err := decode(msg.Data, &req); err != nil {
			m.reply(msg.From, fmt.Errorf("invalid start_table data: %w", err))
			return
		}
		if _, err := m.StartTable(msg.From, req); err != nil {
			m.reply(msg.From, err)
		}

	case engine.ActionNextStreet, engine.ActionReset:
		eng, ok := m.Table(msg.From)
		if !ok {
			m.reply(msg.From, fmt.Errorf("no table, send start_table first"))
			return
		}
		if err := eng.EnqueueAction(msg.From, msg.Event); err != nil {
			m.reply(msg.From, err)
		}

	default:
		m.reply(msg.From, fmt.Errorf("unknown event %q", msg.Event))
	}
}

// reply 异步发送，避免在 hub 循环里回调 hub
func (m *GameManager) reply(to string, err error) {
	go m.hub.SendToPlayer(to, websocket.OutgoingMessage{
		Event: "error",
		Data:  map[string]any{"error": err.Error()},
	})
}

// decode 把 JSON 解出来的 map 转成结构体
func decode(data any, v any) error {
	if data == nil {
		return nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}
