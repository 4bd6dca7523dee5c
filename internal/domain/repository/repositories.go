package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/swipeshare-backend/internal/domain/entity"
	"github.com/ignatzorin/swipeshare-backend/internal/domain/valueobject"
)

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error)
	ListOpen(ctx context.Context, limit, offset int) ([]*entity.Post, int, error)

	// ReserveSlot атомарно уменьшает capacity_remaining на единицу, если пост открыт
	// и ёмкость больше нуля. Иначе ErrPostNotFound или ErrPostUnavailable.
	ReserveSlot(ctx context.Context, id uuid.UUID, now time.Time) (*entity.Post, error)
	// ReleaseSlot возвращает единицу ёмкости, не превышая capacity_total.
	ReleaseSlot(ctx context.Context, id uuid.UUID, now time.Time) (*entity.Post, error)
}

type RequestRepository interface {
	Create(ctx context.Context, req *entity.Request) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Request, error)
	// UpdateIfVersion сохраняет заявку только если версия в хранилище равна expectedVersion.
	// Иначе возвращает apperror.ErrVersionConflict.
	UpdateIfVersion(ctx context.Context, req *entity.Request, expectedVersion int) error
	ListByParty(ctx context.Context, filter RequestFilter) ([]*entity.Request, error)
}

type RequestFilter struct {
	UserID uuid.UUID
	Party  valueobject.Party
	Status valueobject.RequestStatus
	Limit  int
	Offset int
}

type DisputeRepository interface {
	// Create возвращает apperror.ErrDisputeExists, если по заявке уже есть спор.
	Create(ctx context.Context, dispute *entity.Dispute) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Dispute, error)
	FindByRequestID(ctx context.Context, requestID uuid.UUID) (*entity.Dispute, error)
	// ResolveIfOpen сохраняет решение, только пока спор в статусе open.
	ResolveIfOpen(ctx context.Context, dispute *entity.Dispute) error
}

type RatingRepository interface {
	// Create возвращает apperror.ErrAlreadyRated при повторной оценке.
	Create(ctx context.Context, rating *entity.Rating) error
	// FindByRequestAndRater возвращает nil, nil если оценки нет.
	FindByRequestAndRater(ctx context.Context, requestID, raterID uuid.UUID) (*entity.Rating, error)
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]*entity.Rating, error)
	AverageForUser(ctx context.Context, userID uuid.UUID) (float64, int, error)
}

type AuditRepository interface {
	Append(ctx context.Context, entry *entity.AuditEntry) error
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]*entity.AuditEntry, error)
}

type ProfileRepository interface {
	// Get возвращает нулевую статистику для пользователя без записей.
	Get(ctx context.Context, userID uuid.UUID) (*entity.ProfileStats, error)
	IncrementCompleted(ctx context.Context, now time.Time, userIDs ...uuid.UUID) error
	SetRating(ctx context.Context, userID uuid.UUID, avg float64, count int, now time.Time) error
}

type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error)
	List(ctx context.Context, userID uuid.UUID, limit, offset int, unreadOnly bool) ([]*entity.Notification, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
}

// Repositories - набор репозиториев поверх одного соединения или транзакции.
type Repositories interface {
	Posts() PostRepository
	Requests() RequestRepository
	Disputes() DisputeRepository
	Ratings() RatingRepository
	Audit() AuditRepository
	Profiles() ProfileRepository
}

// Ledger - хранилище сделок. WithinTx выполняет fn атомарно: либо фиксируются все
// изменения, либо ни одного.
type Ledger interface {
	Repositories
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
	Ping(ctx context.Context) error
}
