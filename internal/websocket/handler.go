package websocket

import (
	"net/http"

	"PokerPal/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// GET /ws  每个连接分配一个 uuid，首条消息 {"event":"welcome","data":{"id":...}}
func ServeWS(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			utils.Log.Warn("websocket upgrade failed", "err", err)
			return
		}

		client := &Client{
			ID:   uuid.NewString(),
			Conn: conn,
			Send: make(chan OutgoingMessage, 32),
			Hub:  hub,
		}
		client.Send <- OutgoingMessage{Event: "welcome", Data: map[string]any{"id": client.ID}}

		hub.register <- client

		go client.writePump()
		go client.readPump()
	}
}
