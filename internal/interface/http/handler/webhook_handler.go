package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/swipeshare-backend/internal/domain/event"
	"github.com/ignatzorin/swipeshare-backend/internal/interface/http/dto"
	"github.com/ignatzorin/swipeshare-backend/internal/interface/http/response"
	"github.com/ignatzorin/swipeshare-backend/internal/logger"
)

// ChangeDispatcher доставляет уведомление по изменению заявки.
type ChangeDispatcher interface {
	Dispatch(ctx context.Context, change event.RequestChange) (bool, error)
}

type WebhookHandler struct {
	dispatcher ChangeDispatcher
}

func NewWebhookHandler(dispatcher ChangeDispatcher) *WebhookHandler {
	return &WebhookHandler{dispatcher: dispatcher}
}

// RequestChanged принимает вебхук изменения строки. Чужие таблицы подтверждаются и игнорируются.
func (h *WebhookHandler) RequestChanged(c *gin.Context) {
	var payload dto.WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.BadRequest(c, "некорректные данные вебхука")
		return
	}

	if payload.Table != event.TableRequests {
		response.Success(c, gin.H{"notified": false})
		return
	}

	switch event.ChangeType(payload.Type) {
	case event.ChangeInsert, event.ChangeUpdate:
		if payload.Record == nil {
			response.BadRequest(c, "record обязателен для INSERT и UPDATE")
			return
		}
	case event.ChangeDelete:
	default:
		response.BadRequest(c, "неизвестный тип изменения")
		return
	}

	sent, err := h.dispatcher.Dispatch(c.Request.Context(), payload.ToRequestChange())
	if err != nil {
		logger.Log.WithError(err).WithField("table", payload.Table).Warn("вебхук: уведомление не доставлено")
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"notified": sent})
}
