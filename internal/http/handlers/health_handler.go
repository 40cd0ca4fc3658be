package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SessionCounter сообщает число активных сессий.
type SessionCounter interface {
	Count() int
}

// ClientCounter сообщает число WebSocket подключений.
type ClientCounter interface {
	ClientCount() int
}

// HealthHandler предоставляет endpoint для проверки здоровья сервиса.
type HealthHandler struct {
	sessions SessionCounter
	clients  ClientCounter
	started  time.Time
}

// NewHealthHandler создаёт новый health handler. clients может быть nil.
func NewHealthHandler(sessions SessionCounter, clients ClientCounter) *HealthHandler {
	return &HealthHandler{sessions: sessions, clients: clients, started: time.Now()}
}

// HealthResponse представляет ответ health check.
type HealthResponse struct {
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
	Uptime         string    `json:"uptime"`
	ActiveSessions int       `json:"active_sessions"`
	WSClients      int       `json:"ws_clients"`
}

// Health обрабатывает GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:         "healthy",
		Timestamp:      time.Now(),
		Uptime:         time.Since(h.started).Round(time.Second).String(),
		ActiveSessions: h.sessions.Count(),
	}
	if h.clients != nil {
		resp.WSClients = h.clients.ClientCount()
	}

	c.JSON(http.StatusOK, resp)
}
