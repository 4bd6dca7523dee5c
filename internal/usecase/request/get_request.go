package request

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/swipeshare-backend/internal/domain/entity"
	"github.com/ignatzorin/swipeshare-backend/internal/domain/repository"
	"github.com/ignatzorin/swipeshare-backend/internal/domain/valueobject"
	"github.com/ignatzorin/swipeshare-backend/internal/usecase"
	"github.com/ignatzorin/swipeshare-backend/internal/validation"
)

type GetRequestUseCase struct {
	deps usecase.Deps
}

func NewGetRequestUseCase(deps usecase.Deps) *GetRequestUseCase {
	return &GetRequestUseCase{deps: deps}
}

func (uc *GetRequestUseCase) Execute(ctx context.Context, caller valueobject.Caller, requestID uuid.UUID) (*entity.Request, error) {
	ctx, cancel := uc.deps.Bounded(ctx)
	defer cancel()

	req, err := uc.deps.Ledger.Requests().FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := usecase.CanView(caller, req); err != nil {
		return nil, err
	}
	return req, nil
}

type ListMyRequestsInput struct {
	Caller valueobject.Caller
	Role   string `json:"role" validate:"omitempty,oneof=buyer seller"`
	Status string `json:"status"`
	Limit  int
	Offset int
}

type ListMyRequestsUseCase struct {
	deps usecase.Deps
}

func NewListMyRequestsUseCase(deps usecase.Deps) *ListMyRequestsUseCase {
	return &ListMyRequestsUseCase{deps: deps}
}

func (uc *ListMyRequestsUseCase) Execute(ctx context.Context, input ListMyRequestsInput) ([]*entity.Request, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	filter := repository.RequestFilter{
		UserID: input.Caller.ID,
		Party:  valueobject.Party(input.Role),
	}
	if input.Status != "" {
		status, err := valueobject.NewRequestStatus(input.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = status
	}
	filter.Limit, filter.Offset = validation.Page(input.Limit, input.Offset)

	ctx, cancel := uc.deps.Bounded(ctx)
	defer cancel()

	return uc.deps.Ledger.Requests().ListByParty(ctx, filter)
}

type ListAuditUseCase struct {
	deps usecase.Deps
}

func NewListAuditUseCase(deps usecase.Deps) *ListAuditUseCase {
	return &ListAuditUseCase{deps: deps}
}

// Execute возвращает журнал заявки в порядке записи.
func (uc *ListAuditUseCase) Execute(ctx context.Context, caller valueobject.Caller, requestID uuid.UUID) ([]*entity.AuditEntry, error) {
	ctx, cancel := uc.deps.Bounded(ctx)
	defer cancel()

	req, err := uc.deps.Ledger.Requests().FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := usecase.CanView(caller, req); err != nil {
		return nil, err
	}

	return uc.deps.Ledger.Audit().ListByRequest(ctx, requestID)
}
