package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/swipeshare-backend/internal/interface/http/response"
	"github.com/ignatzorin/swipeshare-backend/internal/pkg/apperror"
)

const healthPingTimeout = 2 * time.Second

// Pinger - хранилище, доступность которого проверяет /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	storage Pinger
}

func NewHealthHandler(storage Pinger) *HealthHandler {
	return &HealthHandler{storage: storage}
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
	defer cancel()

	if err := h.storage.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, response.Response{
			Success: false,
			Error: &response.ErrorInfo{
				Code:      string(apperror.ErrCodeTransient),
				Message:   "хранилище недоступно",
				Retryable: true,
			},
		})
		return
	}

	response.Success(c, gin.H{"status": "ok", "storage": "ok"})
}
