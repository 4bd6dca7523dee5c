package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Log - глобальный логгер. До вызова Init пишет в stderr с уровнем info.
var Log = logrus.New()

// Init инициализирует структурированный логгер.
func Init(level string) {
	Log = logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	// JSON для production, text включается через SetTextFormatter
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

// Silence отключает вывод логов, используется в тестах.
func Silence() {
	Log.SetOutput(io.Discard)
}

// WithRequest возвращает запись с полями заявки и действия.
func WithRequest(requestID, actorID interface{}, action string) *logrus.Entry {
	return Log.WithFields(logrus.Fields{
		"request_id": requestID,
		"actor_id":   actorID,
		"action":     action,
	})
}
