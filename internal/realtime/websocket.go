package realtime

import (
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/Windi-Fikriyansyah/evergreen_web/internal/logging"
)

// WebSocketConn wraps websocket.Conn so the hub does not depend on the transport.
type WebSocketConn struct {
	Conn *websocket.Conn
}

func NewWebSocketConn(c *websocket.Conn) *WebSocketConn {
	return &WebSocketConn{Conn: c}
}

// Pump writes hub messages to the socket and blocks reading until the peer
// goes away. The client is unregistered on return.
func (w *WebSocketConn) Pump(hub *Hub, client *Client) {
	hub.RegisterClient(client)
	defer hub.UnregisterClient(client)

	go func() {
		for msg := range client.Send {
			if err := w.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				logging.Log.Debug("live feed write failed", zap.String("client", client.ID), zap.Error(err))
				return
			}
		}
	}()

	for {
		if _, _, err := w.Conn.ReadMessage(); err != nil {
			return
		}
	}
}
