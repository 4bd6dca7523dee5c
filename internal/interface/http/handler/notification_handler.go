package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/swipeshare-backend/internal/domain/entity"
	"github.com/ignatzorin/swipeshare-backend/internal/interface/http/dto"
	"github.com/ignatzorin/swipeshare-backend/internal/interface/http/response"
	"github.com/ignatzorin/swipeshare-backend/internal/validation"
)

// NotificationInbox - операции инбокса, которые нужны хэндлеру.
type NotificationInbox interface {
	ListNotifications(ctx context.Context, userID uuid.UUID, limit, offset int, unreadOnly bool) ([]*entity.Notification, int, error)
	MarkAsRead(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
}

type NotificationHandler struct {
	inbox NotificationInbox
}

func NewNotificationHandler(inbox NotificationInbox) *NotificationHandler {
	return &NotificationHandler{inbox: inbox}
}

func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	limit, offset := validation.Page(
		parseIntQuery(c, "limit", validation.DefaultPageLimit),
		parseIntQuery(c, "offset", 0),
	)
	unreadOnly := c.Query("unread") == "true"

	items, unread, err := h.inbox.ListNotifications(c.Request.Context(), caller.ID, limit, offset, unreadOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToNotificationListResponse(items, unread))
}

func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id", "некорректный ID уведомления")
	if !ok {
		return
	}

	if err := h.inbox.MarkAsRead(c.Request.Context(), id, caller.ID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "уведомление прочитано"})
}

func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	if err := h.inbox.MarkAllAsRead(c.Request.Context(), caller.ID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "все уведомления прочитаны"})
}
