package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/ignatzorin/lostfound-backend/internal/http/handlers/common"
	"github.com/ignatzorin/lostfound-backend/internal/http/middleware"
	"github.com/ignatzorin/lostfound-backend/internal/logger"
	"github.com/ignatzorin/lostfound-backend/internal/session"
	"github.com/ignatzorin/lostfound-backend/internal/ws"
)

// WSHandler отвечает за установку WebSocket соединений.
type WSHandler struct {
	hub      *ws.Hub
	tokens   *session.TokenManager
	sessions *session.Manager
	upgrader websocket.Upgrader
}

// NewWSHandler создаёт новый хэндлер.
func NewWSHandler(hub *ws.Hub, tokens *session.TokenManager, sessions *session.Manager) *WSHandler {
	return &WSHandler{
		hub:      hub,
		tokens:   tokens,
		sessions: sessions,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handle обслуживает GET /api/ws?token=...
func (h *WSHandler) Handle(c *gin.Context) {
	rawToken := middleware.ExtractSessionToken(c)
	if rawToken == "" {
		common.RespondUnauthorized(c, "токен сессии обязателен")
		return
	}

	sessionID, err := h.tokens.Parse(rawToken)
	if err != nil {
		common.RespondUnauthorized(c, "невалидный токен сессии")
		return
	}

	if _, err := h.sessions.Get(sessionID); err != nil {
		common.RespondAppError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade уже ответил клиенту
		logger.WithSession(sessionID).WithError(err).Warn("ws: не удалось установить соединение")
		return
	}

	client := ws.NewClient(conn, h.hub, sessionID)
	h.hub.Register(client)

	client.Run(c.Request.Context())
}
