package rating

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/swipeshare-backend/internal/domain/entity"
	"github.com/ignatzorin/swipeshare-backend/internal/domain/event"
	"github.com/ignatzorin/swipeshare-backend/internal/domain/repository"
	"github.com/ignatzorin/swipeshare-backend/internal/domain/valueobject"
	"github.com/ignatzorin/swipeshare-backend/internal/logger"
	"github.com/ignatzorin/swipeshare-backend/internal/pkg/apperror"
	"github.com/ignatzorin/swipeshare-backend/internal/usecase"
)

type SubmitRatingInput struct {
	Caller    valueobject.Caller
	RequestID uuid.UUID
	Stars     int
	Comment   *string
}

type SubmitRatingUseCase struct {
	deps usecase.Deps
}

func NewSubmitRatingUseCase(deps usecase.Deps) *SubmitRatingUseCase {
	return &SubmitRatingUseCase{deps: deps}
}

// Execute сохраняет оценку и пересчитывает средний балл второй стороны.
// Повторная оценка того же участника возвращает CONFLICT.
func (uc *SubmitRatingUseCase) Execute(ctx context.Context, input SubmitRatingInput) (*entity.Rating, error) {
	ctx, cancel := uc.deps.Bounded(ctx)
	defer cancel()

	req, err := uc.deps.Ledger.Requests().FindByID(ctx, input.RequestID)
	if err != nil {
		return nil, err
	}

	rating, err := entity.NewRating(req, input.Caller.ID, input.Stars, input.Comment, uc.deps.Clock())
	if err != nil {
		return nil, err
	}

	existing, err := uc.deps.Ledger.Ratings().FindByRequestAndRater(ctx, req.ID, input.Caller.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.ErrAlreadyRated
	}

	err = uc.deps.Ledger.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if err := repos.Ratings().Create(ctx, rating); err != nil {
			return err
		}
		avg, count, err := repos.Ratings().AverageForUser(ctx, rating.RateeID)
		if err != nil {
			return err
		}
		return repos.Profiles().SetRating(ctx, rating.RateeID, avg, count, rating.CreatedAt)
	})
	if err != nil {
		return nil, err
	}
	uc.deps.InvalidateStats(rating.RateeID)

	logger.WithRequest(req.ID.String(), input.Caller.ID.String(), "submit_rating").
		WithField("stars", rating.Stars).
		Info("оценка сохранена")

	uc.deps.Publish(ctx, event.RatingSubmitted{Rating: rating})

	return rating, nil
}

// StatsCache - кэш агрегатов профиля. GetStats отдаёт поколение записи,
// SetStats принимает его обратно и отказывается писать после инвалидации.
type StatsCache interface {
	GetStats(userID uuid.UUID) (*entity.ProfileStats, uint64, bool)
	SetStats(stats *entity.ProfileStats, gen uint64) bool
}

type GetProfileStatsUseCase struct {
	deps  usecase.Deps
	cache StatsCache
}

func NewGetProfileStatsUseCase(deps usecase.Deps, cache StatsCache) *GetProfileStatsUseCase {
	return &GetProfileStatsUseCase{deps: deps, cache: cache}
}

func (uc *GetProfileStatsUseCase) Execute(ctx context.Context, userID uuid.UUID) (*entity.ProfileStats, error) {
	var gen uint64
	if uc.cache != nil {
		stats, g, ok := uc.cache.GetStats(userID)
		if ok {
			return stats, nil
		}
		gen = g
	}

	ctx, cancel := uc.deps.Bounded(ctx)
	defer cancel()

	stats, err := uc.deps.Ledger.Profiles().Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.SetStats(stats, gen)
	}
	return stats, nil
}

type ListRequestRatingsUseCase struct {
	deps usecase.Deps
}

func NewListRequestRatingsUseCase(deps usecase.Deps) *ListRequestRatingsUseCase {
	return &ListRequestRatingsUseCase{deps: deps}
}

func (uc *ListRequestRatingsUseCase) Execute(ctx context.Context, caller valueobject.Caller, requestID uuid.UUID) ([]*entity.Rating, error) {
	ctx, cancel := uc.deps.Bounded(ctx)
	defer cancel()

	req, err := uc.deps.Ledger.Requests().FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := usecase.CanView(caller, req); err != nil {
		return nil, err
	}
	return uc.deps.Ledger.Ratings().ListByRequest(ctx, req.ID)
}
