package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config хранит все параметры запуска приложения.
type Config struct {
	Env                  string
	HTTPPort             string
	SessionSecret        string
	SessionTTL           time.Duration
	SessionSweepInterval time.Duration
	MaxUploadSizeMB      int64
	MaxImagePixels       int64
	ThumbnailMaxDim      int
	JPEGQuality          int
	Location             *time.Location
	AllowedOrigins       []string
	RateLimitLimit       int64
	RateLimitPeriod      time.Duration
	RedisURL             string
}

// Load читает переменные окружения и возвращает готовую конфигурацию.
func Load() (*Config, error) {
	// Загружаем .env только если он существует, иначе используем системные переменные.
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("config: .env не найден, используем переменные окружения: %v", err)
	}

	env := getEnv("APP_ENV", "development")

	cfg := &Config{
		Env:      env,
		HTTPPort: getEnv("HTTP_PORT", "8080"),
		RedisURL: getEnv("REDIS_URL", ""),
	}

	secret := getEnv("SESSION_SECRET", "")
	if env == "production" {
		if len(secret) < 32 {
			return nil, fmt.Errorf("config: SESSION_SECRET обязателен и должен быть не менее 32 символов в production")
		}
	} else if secret == "" {
		secret = "lostfound-session-secret-development-only"
		log.Printf("config: WARNING - используется дефолтный SESSION_SECRET, измените в production!")
	}
	cfg.SessionSecret = secret

	// CORS allowed origins
	originsStr := getEnv("CORS_ALLOWED_ORIGINS", "")
	if originsStr == "" {
		if env == "production" {
			return nil, fmt.Errorf("config: CORS_ALLOWED_ORIGINS обязателен в production")
		}
		cfg.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	} else {
		cfg.AllowedOrigins = splitAndTrim(originsStr)
	}

	var err error
	if cfg.SessionTTL, err = parseDuration("SESSION_TTL", "12h"); err != nil {
		return nil, err
	}
	if cfg.SessionSweepInterval, err = parseDuration("SESSION_SWEEP_INTERVAL", "5m"); err != nil {
		return nil, err
	}
	if cfg.RateLimitPeriod, err = parseDuration("RATE_LIMIT_PERIOD", "1m"); err != nil {
		return nil, err
	}
	if cfg.MaxUploadSizeMB, err = parseInt64("MAX_UPLOAD_MB", "10"); err != nil {
		return nil, err
	}
	if cfg.RateLimitLimit, err = parseInt64("RATE_LIMIT_LIMIT", "30"); err != nil {
		return nil, err
	}

	megapixels, err := parseInt64("MAX_IMAGE_MEGAPIXELS", "40")
	if err != nil {
		return nil, err
	}
	if megapixels <= 0 {
		return nil, fmt.Errorf("config: MAX_IMAGE_MEGAPIXELS должен быть положительным")
	}
	cfg.MaxImagePixels = megapixels * 1_000_000

	maxDim, err := parseInt64("THUMBNAIL_MAX_DIM", "300")
	if err != nil {
		return nil, err
	}
	if maxDim <= 0 {
		return nil, fmt.Errorf("config: THUMBNAIL_MAX_DIM должен быть положительным")
	}
	cfg.ThumbnailMaxDim = int(maxDim)

	quality, err := parseInt64("JPEG_QUALITY", "75")
	if err != nil {
		return nil, err
	}
	if quality < 1 || quality > 100 {
		return nil, fmt.Errorf("config: JPEG_QUALITY должен быть от 1 до 100")
	}
	cfg.JPEGQuality = int(quality)

	tz := getEnv("TIMEZONE", "Asia/Bangkok")
	cfg.Location, err = time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: неизвестный часовой пояс %q, используем локальный: %v", tz, err)
		cfg.Location = time.Local
	}

	return cfg, nil
}

// IsProduction сообщает, запущено ли приложение в production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// getEnv возвращает значение переменной окружения или дефолт.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}

// parseDuration читает длительность из окружения.
func parseDuration(key, fallback string) (time.Duration, error) {
	v := getEnv(key, fallback)
	dur, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: не удалось распарсить длительность %s=%q: %w", key, v, err)
	}
	return dur, nil
}

// parseInt64 читает целое число из окружения.
func parseInt64(key, fallback string) (int64, error) {
	v := getEnv(key, fallback)
	num, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("config: не удалось распарсить число %s=%q: %w", key, v, err)
	}
	return num, nil
}
