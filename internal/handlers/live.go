package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/evergreen_web/internal/realtime"
)

// LiveHandler streams ingested analytics events to admin browsers.
type LiveHandler struct {
	Hub *realtime.Hub
}

// Upgrade rejects plain HTTP requests on the websocket route.
func (h *LiveHandler) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

func (h *LiveHandler) Feed(c *websocket.Conn) {
	raw, _ := c.Locals("userId").(string)
	userID, err := uuid.Parse(raw)
	if err != nil {
		c.Close()
		return
	}
	conn := realtime.NewWebSocketConn(c)
	conn.Pump(h.Hub, realtime.NewClient(userID, conn))
}
