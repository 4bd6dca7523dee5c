package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/swipeshare-backend/internal/interface/http/response"
	"github.com/ignatzorin/swipeshare-backend/internal/logger"
	"github.com/ignatzorin/swipeshare-backend/internal/pkg/apperror"
)

// ErrorHandler отдаёт последнюю ошибку из c.Errors, если хэндлер сам ничего не записал.
// Внутренние детали маскирует response.Error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		response.Error(c, c.Errors.Last().Err)
	}
}

// Recovery превращает панику в INTERNAL_ERROR и пишет стек в лог.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Log.WithFields(logrus.Fields{
					"panic":  fmt.Sprint(r),
					"path":   c.Request.URL.Path,
					"method": c.Request.Method,
					"stack":  string(debug.Stack()),
				}).Error("паника при обработке запроса")

				if !c.Writer.Written() {
					response.Error(c, apperror.New(apperror.ErrCodeInternal, "внутренняя ошибка сервера"))
				}
				c.Abort()
			}
		}()
		c.Next()
	}
}

// RequestLogger пишет строку лога на каждый запрос.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		entry := logger.Log.WithFields(logrus.Fields{
			"status": c.Writer.Status(),
			"method": c.Request.Method,
			"path":   c.FullPath(),
			"ip":     c.ClientIP(),
		})
		if caller, ok := CallerFrom(c); ok {
			entry = entry.WithField("actor_id", caller.ID.String())
		}
		entry.Debug("http запрос")
	}
}
