package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/swipeshare-backend/internal/domain/entity"
)

type NotificationResponse struct {
	ID        uuid.UUID       `json:"id"`
	Payload   json.RawMessage `json:"payload"`
	IsRead    bool            `json:"is_read"`
	CreatedAt time.Time       `json:"created_at"`
}

type NotificationListResponse struct {
	Items       []NotificationResponse `json:"items"`
	UnreadCount int                    `json:"unread_count"`
}

func ToNotificationListResponse(items []*entity.Notification, unread int) NotificationListResponse {
	out := NotificationListResponse{
		Items:       make([]NotificationResponse, 0, len(items)),
		UnreadCount: unread,
	}
	for _, n := range items {
		out.Items = append(out.Items, NotificationResponse{
			ID:        n.ID,
			Payload:   n.Payload,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}
	return out
}
