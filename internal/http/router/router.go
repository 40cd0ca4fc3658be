package router

import (
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/ignatzorin/lostfound-backend/internal/config"
	"github.com/ignatzorin/lostfound-backend/internal/http/handlers"
	"github.com/ignatzorin/lostfound-backend/internal/http/middleware"
	"github.com/ignatzorin/lostfound-backend/internal/session"
)

// Handlers содержит хэндлеры, которые подключает роутер.
type Handlers struct {
	Session *handlers.SessionHandler
	Feed    *handlers.FeedHandler
	Report  *handlers.ReportHandler
	WS      *handlers.WSHandler
	Health  *handlers.HealthHandler
}

// SetupRouter собирает gin.Engine. При limiterStore == nil счётчики хранятся в памяти.
func SetupRouter(
	cfg *config.Config,
	h Handlers,
	tokens *session.TokenManager,
	sessions *session.Manager,
	limiterStore limiter.Store,
) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if limiterStore == nil {
		limiterStore = memory.NewStore()
	}

	r := gin.Default()
	// Лимит памяти под multipart, остальное gin сбрасывает во временные файлы
	r.MaxMultipartMemory = (cfg.MaxUploadSizeMB + 1) << 20
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", h.Health.Health)

	api := r.Group("/api")

	writeRateLimit := middleware.RateLimitMiddlewareWithStore(limiterStore, cfg.RateLimitLimit, cfg.RateLimitPeriod)

	api.POST("/sessions", writeRateLimit, h.Session.StartSession)
	if h.WS != nil {
		api.GET("/ws", h.WS.Handle)
	}

	// Маршруты внутри сессии
	sess := api.Group("/")
	sess.Use(middleware.SessionMiddleware(tokens, sessions, cfg.IsProduction()))
	{
		sess.DELETE("/sessions/current", h.Session.EndSession)
		sess.GET("/feed", h.Feed.GetFeed)
		sess.POST("/reports", writeRateLimit, h.Report.SubmitReport)
	}

	return r
}
