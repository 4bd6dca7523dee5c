package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/swipeshare-backend/internal/domain/entity"
	"github.com/ignatzorin/swipeshare-backend/internal/pkg/apperror"
	"github.com/ignatzorin/swipeshare-backend/internal/repository/common"
)

// Имя уникального ограничения из migrations/0002_disputes_ratings.sql.
const disputeRequestUniqueKey = "disputes_request_id_key"

type disputeRepository struct {
	q sqlx.ExtContext
}

func (r *disputeRepository) Create(ctx context.Context, dispute *entity.Dispute) error {
	query := `
		INSERT INTO disputes (id, request_id, opener_id, reason, description, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.q.ExecContext(ctx, query,
		dispute.ID,
		dispute.RequestID,
		dispute.OpenerID,
		dispute.Reason,
		dispute.Description,
		string(dispute.Status),
		dispute.CreatedAt,
	)
	if common.IsUniqueViolation(err, disputeRequestUniqueKey) {
		return apperror.ErrDisputeExists
	}
	if err != nil {
		return common.Classify(err, "create dispute")
	}
	return nil
}

func (r *disputeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Dispute, error) {
	row, err := common.GetByID[disputeRow](ctx, r.q, "disputes", id, apperror.ErrDisputeNotFound)
	if err != nil {
		return nil, err
	}
	return row.toEntity(), nil
}

func (r *disputeRepository) FindByRequestID(ctx context.Context, requestID uuid.UUID) (*entity.Dispute, error) {
	row, err := common.GetByField[disputeRow](ctx, r.q, "disputes", "request_id", requestID, apperror.ErrDisputeNotFound)
	if err != nil {
		return nil, err
	}
	return row.toEntity(), nil
}

func (r *disputeRepository) ResolveIfOpen(ctx context.Context, dispute *entity.Dispute) error {
	query := `
		UPDATE disputes
		SET status = $2, resolution = $3, resolved_by = $4, resolved_at = $5
		WHERE id = $1 AND status = 'open'
	`

	result, err := r.q.ExecContext(ctx, query,
		dispute.ID,
		string(dispute.Status),
		dispute.Resolution,
		dispute.ResolvedBy,
		dispute.ResolvedAt,
	)
	if err != nil {
		return common.Classify(err, "resolve dispute")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return common.Classify(err, "resolve dispute rows affected")
	}
	if rowsAffected == 0 {
		if _, findErr := r.FindByID(ctx, dispute.ID); findErr != nil {
			return findErr
		}
		return apperror.New(apperror.ErrCodeInvalidState, "спор уже разрешён")
	}
	return nil
}
