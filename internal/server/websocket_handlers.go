package server

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"bookclub/internal/middleware"
	"bookclub/internal/observability"
)

var wsLogger = observability.NewWSLogger("notifications")

// WebsocketHandler returns a websocket handler that registers connections
// with the notification hub. Authentication is handled by route middleware
// and userID is read from connection locals.
func (s *Server) WebsocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		middleware.ActiveWebSockets.Inc()
		defer middleware.ActiveWebSockets.Dec()

		userIDVal := conn.Locals("userID")
		if userIDVal == nil {
			if cerr := conn.Close(); cerr != nil {
				log.Printf("websocket close error: %v", cerr)
			}
			return
		}
		uid, ok := userIDVal.(uint)
		if !ok {
			if cerr := conn.Close(); cerr != nil {
				log.Printf("websocket close error: %v", cerr)
			}
			return
		}

		if s.hub == nil {
			_ = conn.Close()
			return
		}

		ctx := context.Background()

		// Register connection with scaling guardrails
		client, err := s.hub.Register(uid, conn)
		if err != nil {
			wsLogger.LogError(ctx, uid, err, "register")
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}
		wsLogger.LogConnect(ctx, uid)

		defer func() {
			s.hub.UnregisterClient(client)
			wsLogger.LogDisconnect(ctx, uid, "read pump closed")
		}()

		// Start pumps; ReadPump returns when the client disconnects.
		go client.WritePump()
		client.ReadPump()
	})
}
