package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/lostfound-backend/internal/dto"
	"github.com/ignatzorin/lostfound-backend/internal/http/handlers/common"
	"github.com/ignatzorin/lostfound-backend/internal/http/middleware"
	"github.com/ignatzorin/lostfound-backend/internal/logger"
	"github.com/ignatzorin/lostfound-backend/internal/pkg/apperror"
	"github.com/ignatzorin/lostfound-backend/internal/session"
	"github.com/ignatzorin/lostfound-backend/internal/store"
)

// SessionHandler открывает и закрывает сессии доски.
type SessionHandler struct {
	sessions     *session.Manager
	tokens       *session.TokenManager
	secureCookie bool
}

// NewSessionHandler создаёт хэндлер.
func NewSessionHandler(sessions *session.Manager, tokens *session.TokenManager, secureCookie bool) *SessionHandler {
	return &SessionHandler{sessions: sessions, tokens: tokens, secureCookie: secureCookie}
}

// StartSession POST /api/sessions
func (h *SessionHandler) StartSession(c *gin.Context) {
	s := h.sessions.Start()

	token, err := h.tokens.Issue(s.ID)
	if err != nil {
		h.sessions.End(s.ID)
		logger.WithSession(s.ID).WithError(err).Error("session: не удалось выпустить токен")
		common.RespondAppError(c, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось открыть сессию"))
		return
	}

	seeded := 0
	_ = s.Do(func(reports *store.ReportStore) error {
		seeded = reports.Len()
		return nil
	})

	middleware.SetSessionCookie(c, token.Token, int(h.sessions.TTL().Seconds()), h.secureCookie)

	c.JSON(http.StatusCreated, dto.SessionResponse{
		SessionID: token.SessionID,
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
		Seeded:    seeded,
	})
}

// EndSession DELETE /api/sessions/current
func (h *SessionHandler) EndSession(c *gin.Context) {
	s, err := common.CurrentSession(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	h.sessions.End(s.ID)
	middleware.SetSessionCookie(c, "", -1, h.secureCookie)
	c.Status(http.StatusNoContent)
}
