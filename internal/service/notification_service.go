package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/swipeshare-backend/internal/domain/entity"
	"github.com/ignatzorin/swipeshare-backend/internal/domain/repository"
	"github.com/ignatzorin/swipeshare-backend/internal/notify"
	"github.com/ignatzorin/swipeshare-backend/internal/pkg/apperror"
	"github.com/ignatzorin/swipeshare-backend/internal/validation"
)

var _ notify.Notifier = (*NotificationService)(nil)

// NotificationService ведёт инбокс уведомлений и служит каналом доставки для notify.
type NotificationService struct {
	repo repository.NotificationRepository
	now  func() time.Time
}

// NewNotificationService создаёт новый сервис уведомлений.
func NewNotificationService(repo repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo, now: time.Now}
}

// Notify сохраняет уведомление в инбокс получателя.
func (s *NotificationService) Notify(ctx context.Context, msg notify.Message) error {
	_, err := s.CreateNotification(ctx, msg.RecipientID, msg)
	return err
}

// CreateNotification создаёт новое уведомление.
func (s *NotificationService) CreateNotification(ctx context.Context, userID uuid.UUID, data interface{}) (*entity.Notification, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("notification service: marshal payload %w", err)
	}

	n := &entity.Notification{
		UserID:    userID,
		Payload:   payload,
		CreatedAt: s.now().UTC(),
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// ListNotifications возвращает уведомления пользователя и число непрочитанных.
func (s *NotificationService) ListNotifications(ctx context.Context, userID uuid.UUID, limit, offset int, unreadOnly bool) ([]*entity.Notification, int, error) {
	limit, offset = validation.Page(limit, offset)

	items, err := s.repo.List(ctx, userID, limit, offset, unreadOnly)
	if err != nil {
		return nil, 0, err
	}

	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return items, unread, nil
}

// MarkAsRead отмечает уведомление как прочитанное.
func (s *NotificationService) MarkAsRead(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if n.UserID != userID {
		return apperror.New(apperror.ErrCodeForbidden, "у вас нет прав на это уведомление")
	}

	return s.repo.MarkAsRead(ctx, id)
}

// MarkAllAsRead отмечает все уведомления пользователя как прочитанные.
func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}
