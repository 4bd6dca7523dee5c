package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/swipeshare-backend/internal/domain/entity"
	"github.com/ignatzorin/swipeshare-backend/internal/domain/repository"
	"github.com/ignatzorin/swipeshare-backend/internal/domain/valueobject"
	"github.com/ignatzorin/swipeshare-backend/internal/pkg/apperror"
	"github.com/ignatzorin/swipeshare-backend/internal/repository/common"
)

type requestRepository struct {
	q sqlx.ExtContext
}

func (r *requestRepository) Create(ctx context.Context, req *entity.Request) error {
	query := `
		INSERT INTO requests (
			id, post_id, buyer_id, seller_id, status, items_text, instructions,
			est_total, currency, version, created_at, updated_at
		) VALUES (
			:id, :post_id, :buyer_id, :seller_id, :status, :items_text, :instructions,
			:est_total, :currency, :version, :created_at, :updated_at
		)
	`

	if _, err := sqlx.NamedExecContext(ctx, r.q, query, newRequestRow(req)); err != nil {
		return common.Classify(err, "create request")
	}
	return nil
}

func (r *requestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Request, error) {
	row, err := common.GetByID[requestRow](ctx, r.q, "requests", id, apperror.ErrRequestNotFound)
	if err != nil {
		return nil, err
	}
	return row.toEntity(), nil
}

// UpdateIfVersion - compare-and-set по колонке version.
func (r *requestRepository) UpdateIfVersion(ctx context.Context, req *entity.Request, expectedVersion int) error {
	query := `
		UPDATE requests SET
			status = $3,
			ordered_proof_path = $4,
			order_id_text = $5,
			buyer_completed = $6,
			seller_completed = $7,
			cancel_reason = $8,
			cancelled_by = $9,
			accepted_at = $10,
			ordered_at = $11,
			picked_up_at = $12,
			completed_at = $13,
			version = $14,
			updated_at = $15
		WHERE id = $1 AND version = $2
	`

	result, err := r.q.ExecContext(ctx, query,
		req.ID,
		expectedVersion,
		string(req.Status),
		req.OrderedProofPath,
		req.OrderIDText,
		req.BuyerCompleted,
		req.SellerCompleted,
		req.CancelReason,
		req.CancelledBy,
		req.AcceptedAt,
		req.OrderedAt,
		req.PickedUpAt,
		req.CompletedAt,
		req.Version,
		req.UpdatedAt,
	)
	if err != nil {
		return common.Classify(err, "update request")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return common.Classify(err, "update request rows affected")
	}
	if rowsAffected == 0 {
		if _, findErr := r.FindByID(ctx, req.ID); findErr != nil {
			return findErr
		}
		return apperror.ErrVersionConflict
	}
	return nil
}

func (r *requestRepository) ListByParty(ctx context.Context, filter repository.RequestFilter) ([]*entity.Request, error) {
	query := `SELECT * FROM requests WHERE `
	args := []interface{}{filter.UserID}
	argIndex := 2

	switch filter.Party {
	case valueobject.PartyBuyer:
		query += `buyer_id = $1`
	case valueobject.PartySeller:
		query += `seller_id = $1`
	default:
		query += `(buyer_id = $1 OR seller_id = $1)`
	}

	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, string(filter.Status))
		argIndex++
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filter.Limit)
		argIndex++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, filter.Offset)
	}

	var rows []requestRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, common.Classify(err, "list requests")
	}

	out := make([]*entity.Request, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}
