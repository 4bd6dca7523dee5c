package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/swipeshare-backend/internal/domain/valueobject"
	"github.com/ignatzorin/swipeshare-backend/internal/interface/http/response"
)

// Context ключи для gin.Context.
const (
	ContextUserIDKey = "userID"
	ContextRoleKey   = "role"
)

// TokenParser проверяет access токен и возвращает вызывающего.
type TokenParser interface {
	ParseAccess(token string) (valueobject.Caller, error)
}

// AuthMiddleware проверяет JWT access токен.
func AuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			response.Unauthorized(c, "требуется авторизация")
			return
		}

		caller, err := tokens.ParseAccess(strings.TrimPrefix(auth, "Bearer "))
		if err != nil || caller.ID == uuid.Nil {
			response.Unauthorized(c, "токен невалиден")
			return
		}

		c.Set(ContextUserIDKey, caller.ID)
		c.Set(ContextRoleKey, caller.Role)
		c.Next()
	}
}

// RequireRole пропускает только пользователей с указанной ролью.
func RequireRole(role valueobject.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := CallerFrom(c)
		if !ok {
			response.Unauthorized(c, "требуется авторизация")
			return
		}
		if caller.Role != role {
			response.Forbidden(c, "недостаточно прав")
			return
		}
		c.Next()
	}
}

// CallerFrom достаёт вызывающего, положенного AuthMiddleware.
func CallerFrom(c *gin.Context) (valueobject.Caller, bool) {
	raw, exists := c.Get(ContextUserIDKey)
	if !exists {
		return valueobject.Caller{}, false
	}
	userID, ok := raw.(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return valueobject.Caller{}, false
	}

	role := valueobject.RoleUser
	if r, ok := c.Get(ContextRoleKey); ok {
		if rr, ok := r.(valueobject.Role); ok {
			role = rr
		}
	}
	return valueobject.Caller{ID: userID, Role: role}, true
}
