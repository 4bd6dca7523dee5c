package request

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/swipeshare-backend/internal/domain/entity"
	"github.com/ignatzorin/swipeshare-backend/internal/domain/event"
	"github.com/ignatzorin/swipeshare-backend/internal/domain/repository"
	"github.com/ignatzorin/swipeshare-backend/internal/domain/valueobject"
	"github.com/ignatzorin/swipeshare-backend/internal/logger"
	"github.com/ignatzorin/swipeshare-backend/internal/usecase"
	"github.com/ignatzorin/swipeshare-backend/internal/validation"
)

type CreateRequestInput struct {
	Caller       valueobject.Caller
	PostID       uuid.UUID
	ItemsText    string `json:"items_text" validate:"required,max=1000"`
	Instructions string `json:"instructions" validate:"max=1000"`
	EstTotal     string `json:"est_total" validate:"max=16"`
}

type CreateRequestUseCase struct {
	deps usecase.Deps
}

func NewCreateRequestUseCase(deps usecase.Deps) *CreateRequestUseCase {
	return &CreateRequestUseCase{deps: deps}
}

// Execute резервирует свайп у поста и создаёт заявку в одной транзакции.
func (uc *CreateRequestUseCase) Execute(ctx context.Context, input CreateRequestInput) (*entity.Request, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	estTotal, err := valueobject.ParseMoney(input.EstTotal)
	if err != nil {
		return nil, err
	}

	ctx, cancel := uc.deps.Bounded(ctx)
	defer cancel()

	now := uc.deps.Clock()
	var created *entity.Request

	err = uc.deps.Ledger.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		post, err := repos.Posts().FindByID(ctx, input.PostID)
		if err != nil {
			return err
		}

		req, err := entity.NewRequest(post, input.Caller.ID, input.ItemsText, input.Instructions, estTotal, now)
		if err != nil {
			return err
		}

		if _, err := repos.Posts().ReserveSlot(ctx, post.ID, now); err != nil {
			return err
		}
		if err := repos.Requests().Create(ctx, req); err != nil {
			return err
		}

		created = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.WithRequest(created.ID.String(), input.Caller.ID.String(), "create_request").
		WithField("post_id", created.PostID.String()).
		Info("заявка создана")

	uc.deps.Publish(ctx, event.NewRequestInserted(created, input.Caller.ID))

	return created, nil
}
