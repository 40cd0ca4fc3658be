package logger

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var Log *logrus.Logger

// Init инициализирует структурированный логгер.
func Init(level string) {
	Log = logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	// Используем JSON формат для production, text для development
	Log.SetFormatter(&logrus.JSONFormatter{})
}

// SetTextFormatter устанавливает текстовый формат логов (для development).
func SetTextFormatter() {
	if Log != nil {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
}

// Get возвращает логгер. До Init это стандартный logrus.
func Get() *logrus.Logger {
	if Log == nil {
		return logrus.StandardLogger()
	}
	return Log
}

// WithSession добавляет к записи идентификатор сессии.
func WithSession(sessionID uuid.UUID) *logrus.Entry {
	return Get().WithField("session_id", sessionID.String())
}

// Errorf нужен для goroutine.Logger.
func Errorf(format string, args ...interface{}) {
	Get().Errorf(format, args...)
}
