package websocket

import (
	"sync"

	"PokerPal/internal/utils"
)

type HubInterface interface {
	BroadcastToPlayers(ids []string, msg OutgoingMessage)
	ClientByID(id string) (*Client, bool)
	SendToPlayer(id string, msg OutgoingMessage)
	Close()
}

type Hub struct {
	clients    map[string]*Client // client id -> client
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastReq
	sendOne    chan sendReq
	incoming   chan IncomingMessage

	// 以下回调在 hub 循环内执行，不能再同步调用 hub 的发送方法
	OnIncoming func(IncomingMessage)
	OnLeave    func(id string)

	quit chan struct{}
	mu   sync.RWMutex
}

type broadcastReq struct {
	IDs     []string
	Message OutgoingMessage
}

type sendReq struct {
	ID      string
	Message OutgoingMessage
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastReq),
		sendOne:    make(chan sendReq),
		incoming:   make(chan IncomingMessage),
		quit:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	utils.Log.Info("hub started")

	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c.ID] = c
			n := len(h.clients)
			h.mu.Unlock()
			utils.Log.Debug("hub register", "client", c.ID, "clients", n)

		case c := <-h.unregister:
			h.mu.Lock()
			_, ok := h.clients[c.ID]
			if ok {
				delete(h.clients, c.ID)
				close(c.Send)
			}
			n := len(h.clients)
			h.mu.Unlock()
			// readPump 与 writePump 都会注销，只处理第一次
			if ok {
				utils.Log.Debug("hub unregister", "client", c.ID, "clients", n)
				if h.OnLeave != nil {
					h.OnLeave(c.ID)
				}
			}

		case req := <-h.broadcast:
			for _, id := range req.IDs {
				h.deliver(id, req.Message)
			}

		case req := <-h.sendOne:
			h.deliver(req.ID, req.Message)

		case req := <-h.incoming:
			// 玩家消息统一转发给游戏层（GameManager）
			if h.OnIncoming != nil {
				h.OnIncoming(req)
			}

		case <-h.quit:
			h.mu.Lock()
			for id, c := range h.clients {
				close(c.Send)
				delete(h.clients, id)
			}
			h.mu.Unlock()
			utils.Log.Info("hub stopped")
			return
		}
	}
}

// deliver drops the message when the client's buffer is full.
func (h *Hub) deliver(id string, msg OutgoingMessage) {
	h.mu.RLock()
	client, ok := h.clients[id]
	h.mu.RUnlock()
	if !ok {
		return
	}
	select {
	case client.Send <- msg:
	default:
		utils.Log.Warn("client send buffer full, message dropped", "client", id, "event", msg.Event)
	}
}

// Broadcast to multiple clients
func (h *Hub) BroadcastToPlayers(ids []string, msg OutgoingMessage) {
	select {
	case h.broadcast <- broadcastReq{IDs: ids, Message: msg}:
	case <-h.quit:
	}
}

// Send to a single client (safe concurrent)
func (h *Hub) SendToPlayer(id string, msg OutgoingMessage) {
	select {
	case h.sendOne <- sendReq{ID: id, Message: msg}:
	case <-h.quit:
	}
}

func (h *Hub) ClientByID(id string) (*Client, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.clients[id]
	return c, ok
}

func (h *Hub) Close() {
	close(h.quit)
}
