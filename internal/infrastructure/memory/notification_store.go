package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/ignatzorin/swipeshare-backend/internal/domain/entity"
	"github.com/ignatzorin/swipeshare-backend/internal/domain/repository"
	"github.com/ignatzorin/swipeshare-backend/internal/pkg/apperror"
)

var _ repository.NotificationRepository = (*NotificationStore)(nil)

var errNotificationNotFound = apperror.New(apperror.ErrCodeNotFound, "уведомление не найдено")

// NotificationStore - инбокс уведомлений в памяти.
type NotificationStore struct {
	mu    sync.RWMutex
	items map[uuid.UUID]entity.Notification
}

func NewNotificationStore() *NotificationStore {
	return &NotificationStore{items: make(map[uuid.UUID]entity.Notification)}
}

func (s *NotificationStore) Create(ctx context.Context, n *entity.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	s.items[n.ID] = *n
	return nil
}

func (s *NotificationStore) GetByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.items[id]
	if !ok {
		return nil, errNotificationNotFound
	}
	return &n, nil
}

func (s *NotificationStore) List(ctx context.Context, userID uuid.UUID, limit, offset int, unreadOnly bool) ([]*entity.Notification, error) {
	s.mu.RLock()
	var out []*entity.Notification
	for _, n := range s.items {
		if n.UserID != userID || (unreadOnly && n.IsRead) {
			continue
		}
		n := n
		out = append(out, &n)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, limit, offset), nil
}

func (s *NotificationStore) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.items[id]
	if !ok {
		return errNotificationNotFound
	}
	n.IsRead = true
	s.items[id] = n
	return nil
}

func (s *NotificationStore) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, n := range s.items {
		if n.UserID == userID {
			n.IsRead = true
			s.items[id] = n
		}
	}
	return nil
}

func (s *NotificationStore) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, n := range s.items {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}
