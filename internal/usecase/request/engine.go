package request

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/swipeshare-backend/internal/domain/entity"
	"github.com/ignatzorin/swipeshare-backend/internal/domain/event"
	"github.com/ignatzorin/swipeshare-backend/internal/domain/repository"
	"github.com/ignatzorin/swipeshare-backend/internal/domain/valueobject"
	"github.com/ignatzorin/swipeshare-backend/internal/logger"
	"github.com/ignatzorin/swipeshare-backend/internal/pkg/apperror"
	"github.com/ignatzorin/swipeshare-backend/internal/usecase"
	"github.com/ignatzorin/swipeshare-backend/internal/validation"
)

// TransitionInput - одно действие участника над заявкой.
type TransitionInput struct {
	Caller      valueobject.Caller
	RequestID   uuid.UUID
	Action      valueobject.Action
	Reason      string
	ProofPath   string
	OrderIDText string
}

// SideEffect выполняется в транзакции перехода после сохранения заявки.
type SideEffect func(ctx context.Context, repos repository.Repositories, next *entity.Request, t entity.Transition) error

// Engine применяет переходы: читает снимок, проверяет его через Apply и
// фиксирует новое состояние условным UPDATE по version вместе с побочными
// эффектами. Каждая попытка оставляет запись в журнале.
type Engine struct {
	deps usecase.Deps
}

func NewEngine(deps usecase.Deps) *Engine {
	return &Engine{deps: deps}
}

func (e *Engine) Run(ctx context.Context, in TransitionInput, effect SideEffect) (*entity.Request, error) {
	ctx, cancel := e.deps.Bounded(ctx)
	defer cancel()

	current, err := e.deps.Ledger.Requests().FindByID(ctx, in.RequestID)
	if err != nil {
		return nil, err
	}

	now := e.deps.Clock()
	log := logger.WithRequest(current.ID.String(), in.Caller.ID.String(), string(in.Action))

	next, t, err := e.validate(current, in, now)
	if err != nil {
		e.auditRejected(ctx, current, in, err, now)
		return nil, err
	}

	err = e.deps.Ledger.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if err := repos.Requests().UpdateIfVersion(ctx, &next, t.ExpectedVersion); err != nil {
			return err
		}
		if t.ReleasesCapacity {
			if _, err := repos.Posts().ReleaseSlot(ctx, next.PostID, now); err != nil {
				return err
			}
		}
		if t.Completed {
			if err := repos.Profiles().IncrementCompleted(ctx, now, next.BuyerID, next.SellerID); err != nil {
				return err
			}
		}
		if effect != nil {
			if err := effect(ctx, repos, &next, t); err != nil {
				return err
			}
		}
		return repos.Audit().Append(ctx, entity.NewAuditEntry(next.ID, t, now))
	})
	if err != nil {
		e.auditRejected(ctx, current, in, err, now)
		log.WithError(err).Warn("переход заявки не выполнен")
		return nil, err
	}

	if t.Completed {
		e.deps.InvalidateStats(next.BuyerID, next.SellerID)
	}

	log.WithFields(logrus.Fields{
		"from": string(t.From),
		"to":   string(t.To),
	}).Info("переход заявки выполнен")

	e.deps.Publish(ctx, event.NewRequestUpdated(current, &next, in.Action, in.Caller.ID))

	return &next, nil
}

func (e *Engine) validate(current *entity.Request, in TransitionInput, now time.Time) (entity.Request, entity.Transition, error) {
	next, t, err := current.Apply(entity.Command{
		Action:        in.Action,
		CallerID:      in.Caller.ID,
		Now:           now,
		Reason:        in.Reason,
		ProofPath:     in.ProofPath,
		OrderIDText:   in.OrderIDText,
		DisputeWindow: e.deps.DisputeWindow,
	})
	if err != nil {
		return next, t, err
	}
	if in.Action == valueobject.ActionMarkOrdered {
		if err := validation.ProofPath(in.ProofPath); err != nil {
			return entity.Request{}, entity.Transition{}, err
		}
	}
	return next, t, nil
}

// auditRejected пишет отклонённую попытку отдельной записью. Ошибка записи
// только логируется.
func (e *Engine) auditRejected(ctx context.Context, current *entity.Request, in TransitionInput, cause error, now time.Time) {
	switch apperror.CodeOf(cause) {
	case apperror.ErrCodeForbidden, apperror.ErrCodeInvalidState, apperror.ErrCodeValidation, apperror.ErrCodeConflict:
	default:
		return
	}

	actx, cancel := e.deps.Detached(ctx)
	defer cancel()

	entry := entity.NewRejectedAuditEntry(current, in.Action, in.Caller.ID, cause, now)
	if err := e.deps.Ledger.Audit().Append(actx, entry); err != nil {
		logger.WithRequest(current.ID.String(), in.Caller.ID.String(), string(in.Action)).
			WithError(err).Error("не удалось записать отклонённую попытку в журнал")
	}
}
