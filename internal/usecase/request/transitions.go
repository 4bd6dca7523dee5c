package request

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/swipeshare-backend/internal/domain/entity"
	"github.com/ignatzorin/swipeshare-backend/internal/domain/valueobject"
)

// TransitionUseCase - действия участников над заявкой.
type TransitionUseCase struct {
	engine *Engine
}

func NewTransitionUseCase(engine *Engine) *TransitionUseCase {
	return &TransitionUseCase{engine: engine}
}

func (uc *TransitionUseCase) Execute(ctx context.Context, input TransitionInput) (*entity.Request, error) {
	return uc.engine.Run(ctx, input, nil)
}

func (uc *TransitionUseCase) Accept(ctx context.Context, caller valueobject.Caller, requestID uuid.UUID) (*entity.Request, error) {
	return uc.Execute(ctx, TransitionInput{Caller: caller, RequestID: requestID, Action: valueobject.ActionAccept})
}

func (uc *TransitionUseCase) Decline(ctx context.Context, caller valueobject.Caller, requestID uuid.UUID) (*entity.Request, error) {
	return uc.Execute(ctx, TransitionInput{Caller: caller, RequestID: requestID, Action: valueobject.ActionDecline})
}

func (uc *TransitionUseCase) MarkOrdered(ctx context.Context, caller valueobject.Caller, requestID uuid.UUID, proofPath, orderIDText string) (*entity.Request, error) {
	return uc.Execute(ctx, TransitionInput{
		Caller:      caller,
		RequestID:   requestID,
		Action:      valueobject.ActionMarkOrdered,
		ProofPath:   proofPath,
		OrderIDText: orderIDText,
	})
}

func (uc *TransitionUseCase) MarkPickedUp(ctx context.Context, caller valueobject.Caller, requestID uuid.UUID) (*entity.Request, error) {
	return uc.Execute(ctx, TransitionInput{Caller: caller, RequestID: requestID, Action: valueobject.ActionMarkPickedUp})
}

func (uc *TransitionUseCase) MarkCompleted(ctx context.Context, caller valueobject.Caller, requestID uuid.UUID) (*entity.Request, error) {
	return uc.Execute(ctx, TransitionInput{Caller: caller, RequestID: requestID, Action: valueobject.ActionMarkCompleted})
}

func (uc *TransitionUseCase) Cancel(ctx context.Context, caller valueobject.Caller, requestID uuid.UUID, reason string) (*entity.Request, error) {
	return uc.Execute(ctx, TransitionInput{
		Caller:    caller,
		RequestID: requestID,
		Action:    valueobject.ActionCancel,
		Reason:    reason,
	})
}
