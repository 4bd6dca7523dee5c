package handler

import (
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/swipeshare-backend/internal/domain/valueobject"
	"github.com/ignatzorin/swipeshare-backend/internal/http/middleware"
	"github.com/ignatzorin/swipeshare-backend/internal/interface/http/response"
)

// callerOrAbort возвращает вызывающего или отвечает 401.
func callerOrAbort(c *gin.Context) (valueobject.Caller, bool) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		response.Unauthorized(c, "требуется авторизация")
		return valueobject.Caller{}, false
	}
	return caller, true
}

func uuidParam(c *gin.Context, name, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, message)
		return uuid.Nil, false
	}
	return id, true
}

// bindOptionalJSON разбирает тело, если оно есть. Пустое тело не ошибка.
func bindOptionalJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, "некорректные данные запроса")
		return false
	}
	return true
}

func parseIntQuery(c *gin.Context, key string, defaultValue int) int {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
