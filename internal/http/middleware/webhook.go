package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/swipeshare-backend/internal/interface/http/response"
)

const WebhookSecretHeader = "X-Webhook-Secret"

// WebhookSecret сверяет общий секрет вебхука. Пустой секрет закрывает эндпоинт.
func WebhookSecret(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader(WebhookSecretHeader)
		if secret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			response.Unauthorized(c, "неверный секрет вебхука")
			return
		}
		c.Next()
	}
}
