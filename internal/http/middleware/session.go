package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/lostfound-backend/internal/logger"
	"github.com/ignatzorin/lostfound-backend/internal/pkg/apperror"
	"github.com/ignatzorin/lostfound-backend/internal/session"
)

// Context ключи для gin.Context.
const (
	ContextSessionKey = "session"
)

// SessionCookieName имя cookie с токеном сессии.
const SessionCookieName = "lf_session"

// SessionTokenHeader несёт перевыпущенный токен, когда старый близок к истечению.
const SessionTokenHeader = "X-Session-Token"

// SessionMiddleware находит сессию по токену и кладёт её в контекст.
// Токен берётся из Authorization: Bearer, cookie или параметра token.
// Пока сессия активна, токен продлевается: срок сессии считается от последнего
// обращения, а у JWT он фиксирован в момент выпуска.
func SessionMiddleware(tokens *session.TokenManager, sessions *session.Manager, secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := ExtractSessionToken(c)
		if raw == "" {
			abortWithAppError(c, apperror.ErrUnauthorized)
			return
		}

		sessionID, expiresAt, err := tokens.ParseWithExpiry(raw)
		if err != nil {
			abortWithAppError(c, apperror.Wrap(err, apperror.ErrCodeUnauthorized, "токен сессии невалиден"))
			return
		}

		s, err := sessions.Get(sessionID)
		if err != nil {
			abortWithAppError(c, err)
			return
		}

		if tokens.ShouldRefresh(expiresAt) {
			refreshed, err := tokens.Issue(s.ID)
			if err != nil {
				// Старый токен ещё действует, запрос продолжается
				logger.WithSession(s.ID).WithError(err).Warn("session: не удалось продлить токен")
			} else {
				c.Header(SessionTokenHeader, refreshed.Token)
				SetSessionCookie(c, refreshed.Token, int(sessions.TTL().Seconds()), secureCookie)
			}
		}

		c.Set(ContextSessionKey, s)
		c.Next()
	}
}

// SetSessionCookie кладёт токен сессии в HttpOnly cookie. Отрицательный maxAge удаляет её.
func SetSessionCookie(c *gin.Context, token string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, maxAge, "/", "", secure, true)
}

// ExtractSessionToken достаёт токен сессии из запроса.
func ExtractSessionToken(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie
	}
	return c.Query("token")
}
