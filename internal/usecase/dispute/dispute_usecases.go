package dispute

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
	"github.com/ignatzorin/swipeshare-backend/internal/usecase/request"
	"github.com/ignatzorin/swipeshare-backend/internal/validation"
)

type OpenDisputeInput struct {
	Caller      valueobject.Caller
	RequestID   uuid.UUID
	Reason      string
	Description string
}

type OpenDisputeUseCase struct {
	engine *request.Engine
}

func NewOpenDisputeUseCase(engine *request.Engine) *OpenDisputeUseCase {
	return &OpenDisputeUseCase{engine: engine}
}

// Execute переводит заявку в disputed и создаёт спор в той же транзакции.
func (uc *OpenDisputeUseCase) Execute(ctx context.Context, input OpenDisputeInput) (*entity.Dispute, error) {
	var opened *entity.Dispute

	_, err := uc.engine.Run(ctx, request.TransitionInput{
		Caller:    input.Caller,
		RequestID: input.RequestID,
		Action:    valueobject.ActionOpenDispute,
		Reason:    input.Reason,
	}, func(ctx context.Context, repos repository.Repositories, next *entity.Request, t entity.Transition) error {
		d, err := entity.NewDispute(next.ID, input.Caller.ID, input.Reason, input.Description, next.UpdatedAt)
		if err != nil {
			return err
		}
		if err := repos.Disputes().Create(ctx, d); err != nil {
			return err
		}
		t.Metadata["dispute_id"] = d.ID.String()
		opened = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return opened, nil
}

type ResolveDisputeInput struct {
	Caller     valueobject.Caller
	DisputeID  uuid.UUID
	Resolution string `json:"resolution" validate:"required,max=2000"`
}

type ResolveDisputeUseCase struct {
	deps usecase.Deps
}

func NewResolveDisputeUseCase(deps usecase.Deps) *ResolveDisputeUseCase {
	return &ResolveDisputeUseCase{deps: deps}
}

// Execute закрывает спор решением администратора. Заявка остаётся disputed,
// решение добавляется в её журнал.
func (uc *ResolveDisputeUseCase) Execute(ctx context.Context, input ResolveDisputeInput) (*entity.Dispute, error) {
	if !input.Caller.IsAdmin() {
		return nil, apperror.ErrAdminOnly
	}
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	ctx, cancel := uc.deps.Bounded(ctx)
	defer cancel()

	d, err := uc.deps.Ledger.Disputes().FindByID(ctx, input.DisputeID)
	if err != nil {
		return nil, err
	}
	req, err := uc.deps.Ledger.Requests().FindByID(ctx, d.RequestID)
	if err != nil {
		return nil, err
	}

	now := uc.deps.Clock()
	if err := d.Resolve(input.Caller.ID, input.Resolution, now); err != nil {
		return nil, err
	}

	err = uc.deps.Ledger.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if err := repos.Disputes().ResolveIfOpen(ctx, d); err != nil {
			return err
		}
		return repos.Audit().Append(ctx, &entity.AuditEntry{
			ID:         uuid.New(),
			RequestID:  req.ID,
			ActorID:    input.Caller.ID,
			Action:     valueobject.ActionResolveDispute,
			FromStatus: req.Status,
			ToStatus:   req.Status,
			Metadata: map[string]interface{}{
				"dispute_id": d.ID.String(),
				"resolution": *d.Resolution,
			},
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	uc.deps.InvalidateStats(req.BuyerID, req.SellerID)

	logger.WithRequest(req.ID.String(), input.Caller.ID.String(), string(valueobject.ActionResolveDispute)).
		WithField("dispute_id", d.ID.String()).
		Info("спор разрешён")

	uc.deps.Publish(ctx, event.DisputeResolved{Dispute: d, Request: req})

	return d, nil
}

type GetDisputeUseCase struct {
	deps usecase.Deps
}

func NewGetDisputeUseCase(deps usecase.Deps) *GetDisputeUseCase {
	return &GetDisputeUseCase{deps: deps}
}

func (uc *GetDisputeUseCase) Execute(ctx context.Context, caller valueobject.Caller, disputeID uuid.UUID) (*entity.Dispute, error) {
	ctx, cancel := uc.deps.Bounded(ctx)
	defer cancel()

	d, err := uc.deps.Ledger.Disputes().FindByID(ctx, disputeID)
	if err != nil {
		return nil, err
	}
	req, err := uc.deps.Ledger.Requests().FindByID(ctx, d.RequestID)
	if err != nil {
		return nil, err
	}
	if err := usecase.CanView(caller, req); err != nil {
		return nil, err
	}
	return d, nil
}

type GetRequestDisputeUseCase struct {
	deps usecase.Deps
}

func NewGetRequestDisputeUseCase(deps usecase.Deps) *GetRequestDisputeUseCase {
	return &GetRequestDisputeUseCase{deps: deps}
}

// Execute возвращает спор по заявке. Видят его участники и администратор.
func (uc *GetRequestDisputeUseCase) Execute(ctx context.Context, caller valueobject.Caller, requestID uuid.UUID) (*entity.Dispute, error) {
	ctx, cancel := uc.deps.Bounded(ctx)
	defer cancel()

	req, err := uc.deps.Ledger.Requests().FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := usecase.CanView(caller, req); err != nil {
		return nil, err
	}
	return uc.deps.Ledger.Disputes().FindByRequestID(ctx, req.ID)
}
