package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/swipeshare-backend/internal/domain/entity"
	"github.com/ignatzorin/swipeshare-backend/internal/domain/event"
	"github.com/ignatzorin/swipeshare-backend/internal/domain/repository"
	"github.com/ignatzorin/swipeshare-backend/internal/domain/valueobject"
	"github.com/ignatzorin/swipeshare-backend/internal/pkg/apperror"
)

const DefaultStorageTimeout = 5 * time.Second

// StatsInvalidator сбрасывает закэшированную статистику профилей.
type StatsInvalidator interface {
	InvalidateUserCache(userIDs ...uuid.UUID)
}

// Deps - общие зависимости сценариев.
type Deps struct {
	Ledger         repository.Ledger
	Events         event.Publisher
	Stats          StatsInvalidator
	Now            func() time.Time
	StorageTimeout time.Duration
	DisputeWindow  time.Duration
}

func (d Deps) Clock() time.Time {
	if d.Now != nil {
		return d.Now().UTC()
	}
	return time.Now().UTC()
}

// Bounded ограничивает время обращения к хранилищу.
func (d Deps) Bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := d.StorageTimeout
	if timeout <= 0 {
		timeout = DefaultStorageTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// Detached - контекст для записей после ответа основной операции.
func (d Deps) Detached(ctx context.Context) (context.Context, context.CancelFunc) {
	return d.Bounded(context.WithoutCancel(ctx))
}

func (d Deps) Publish(ctx context.Context, e event.Event) {
	if d.Events != nil {
		d.Events.Publish(ctx, e)
	}
}

// InvalidateStats вызывается сразу после коммита, до ответа клиенту.
func (d Deps) InvalidateStats(userIDs ...uuid.UUID) {
	if d.Stats != nil {
		d.Stats.InvalidateUserCache(userIDs...)
	}
}

// CanView разрешает чтение заявки её участникам и администратору.
func CanView(caller valueobject.Caller, req *entity.Request) error {
	if caller.IsAdmin() || req.IsParty(caller.ID) {
		return nil
	}
	return apperror.ErrNotParty
}
