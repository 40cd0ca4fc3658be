package common

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/lostfound-backend/internal/dto"
	"github.com/ignatzorin/lostfound-backend/internal/http/middleware"
	"github.com/ignatzorin/lostfound-backend/internal/session"
)

var (
	// ErrSessionNotInContext is returned when the session middleware did not run
	ErrSessionNotInContext = errors.New("сессия не найдена в контексте")
)

// CurrentSession extracts the session placed by SessionMiddleware
func CurrentSession(c *gin.Context) (*session.Session, error) {
	raw, exists := c.Get(middleware.ContextSessionKey)
	if !exists {
		return nil, ErrSessionNotInContext
	}

	s, ok := raw.(*session.Session)
	if !ok || s == nil {
		return nil, ErrSessionNotInContext
	}

	return s, nil
}

// RespondError sends a standardized error response
func RespondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{Error: message})
}

// RespondAppError maps an application error to its HTTP response
func RespondAppError(c *gin.Context, err error) {
	middleware.WriteError(c, err)
}

// RespondUnauthorized sends a 401 Unauthorized response
func RespondUnauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "требуется сессия"
	}
	RespondError(c, http.StatusUnauthorized, message)
}

// RespondBadRequest sends a 400 Bad Request response
func RespondBadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "некорректный запрос"
	}
	RespondError(c, http.StatusBadRequest, message)
}
