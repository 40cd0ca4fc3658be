package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ulule/limiter/v3"

	"github.com/ignatzorin/lostfound-backend/internal/config"
	"github.com/ignatzorin/lostfound-backend/internal/goroutine"
	httpHandlers "github.com/ignatzorin/lostfound-backend/internal/http/handlers"
	httpRouter "github.com/ignatzorin/lostfound-backend/internal/http/router"
	"github.com/ignatzorin/lostfound-backend/internal/imaging"
	"github.com/ignatzorin/lostfound-backend/internal/logger"
	"github.com/ignatzorin/lostfound-backend/internal/pkg/redis"
	"github.com/ignatzorin/lostfound-backend/internal/session"
	"github.com/ignatzorin/lostfound-backend/internal/usecase/report"
	"github.com/ignatzorin/lostfound-backend/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	if cfg.IsProduction() {
		logger.Init("info")
	} else {
		logger.Init("debug")
		logger.SetTextFormatter()
	}

	// Общие счётчики rate limit в Redis, если он настроен.
	var limiterStore limiter.Store
	if cfg.RedisURL != "" {
		redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("main: %v", err)
		}
		defer redisClient.Close()

		limiterStore, err = redis.NewLimiterStore(redisClient)
		if err != nil {
			log.Fatalf("main: %v", err)
		}
	}

	// Сессии и их уборка.
	sessions := session.NewManager(cfg.SessionTTL)
	tokens := session.NewTokenManager(cfg.SessionSecret, cfg.SessionTTL)
	goroutine.SafeGoWithContext(ctx, func(ctx context.Context) {
		sessions.RunJanitor(ctx, cfg.SessionSweepInterval)
	})

	// Конвейер подачи объявлений.
	thumbnailer := imaging.NewThumbnailer(imaging.NewJPEGCodec(cfg.JPEGQuality, cfg.MaxImagePixels), cfg.ThumbnailMaxDim, cfg.MaxUploadSizeMB)
	submitReport := report.NewSubmitReportUseCase(thumbnailer, func() time.Time {
		return time.Now().In(cfg.Location)
	})

	// Вебсокеты.
	hub := ws.NewHub(ctx)
	goroutine.SafeGo(hub.Run)
	sessions.OnEnd(hub.CloseSession)

	// HTTP хэндлеры.
	engine := httpRouter.SetupRouter(cfg, httpRouter.Handlers{
		Session: httpHandlers.NewSessionHandler(sessions, tokens, cfg.IsProduction()),
		Feed:    httpHandlers.NewFeedHandler(),
		Report:  httpHandlers.NewReportHandler(submitReport, hub),
		WS:      httpHandlers.NewWSHandler(hub, tokens, sessions),
		Health:  httpHandlers.NewHealthHandler(sessions, hub),
	}, tokens, sessions, limiterStore)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Get().WithError(err).Error("main: ошибка остановки http сервера")
		}
	}()

	logger.Get().WithField("port", cfg.HTTPPort).Info("main: HTTP сервер запущен")

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}
