package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/astra-capstone/astra-backend/internal/platform/logger"
	"github.com/astra-capstone/astra-backend/internal/realtime"
	"github.com/astra-capstone/astra-backend/internal/services"
)

type WSHandler struct {
	log      *logger.Logger
	hub      *realtime.Hub
	sessions services.SessionService
	upgrader websocket.Upgrader
}

func NewWSHandler(log *logger.Logger, hub *realtime.Hub, sessions services.SessionService) *WSHandler {
	return &WSHandler{
		log:      log.With("handler", "WSHandler"),
		hub:      hub,
		sessions: sessions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser clients connect cross-origin from the dev frontend;
			// CORS-style enforcement is not part of this surface.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// GET /ws/sessions/:sid
//
// Lifecycle: upgrade, verify the session, register with the hub, unicast the
// connected event, then block on the read loop until the peer goes away.
// Deregistration happens exactly once on the way out.
func (h *WSHandler) Subscribe(c *gin.Context) {
	sid := c.Param("sid")

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "session_id", sid, "error", err)
		return
	}

	if !h.sessions.Exists(sid) {
		realtime.Reject(conn, realtime.CloseSessionNotFound, fmt.Sprintf("Session %s not found", sid))
		return
	}

	client := realtime.NewClient(sid, conn, h.log)
	h.hub.Register(sid, client)
	h.log.Info("websocket subscribed", "session_id", sid, "client_id", client.ID.String())

	if err := client.Send(realtime.Message{
		Event:     realtime.EventConnected,
		SessionID: sid,
		Data:      map[string]string{"message": fmt.Sprintf("Connected to session %s", sid)},
	}); err != nil {
		h.hub.Unregister(sid, client)
		client.Close()
		return
	}

	client.ReadLoop()

	h.hub.Unregister(sid, client)
	client.Close()
}
