package persistence

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"

	"github.com/ignatzorin/swipeshare-backend/internal/domain/entity"
	"github.com/ignatzorin/swipeshare-backend/internal/pkg/apperror"
	"github.com/ignatzorin/swipeshare-backend/internal/repository/common"
)

type auditRepository struct {
	q sqlx.ExtContext
}

// Append добавляет запись. Таблица request_audit защищена триггером от UPDATE и DELETE.
func (r *auditRepository) Append(ctx context.Context, entry *entity.AuditEntry) error {
	meta := entry.Metadata
	if meta == nil {
		meta = map[string]interface{}{}
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось сериализовать метаданные аудита")
	}

	query := `
		INSERT INTO request_audit (id, request_id, actor_id, action, from_status, to_status, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = r.q.ExecContext(ctx, query,
		entry.ID,
		entry.RequestID,
		entry.ActorID,
		string(entry.Action),
		string(entry.FromStatus),
		string(entry.ToStatus),
		types.JSONText(raw),
		entry.CreatedAt,
	)
	if err != nil {
		return common.Classify(err, "append audit entry")
	}
	return nil
}

func (r *auditRepository) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]*entity.AuditEntry, error) {
	var rows []auditRow
	if err := sqlx.SelectContext(ctx, r.q, &rows,
		`SELECT * FROM request_audit WHERE request_id = $1 ORDER BY created_at ASC, id ASC`, requestID); err != nil {
		return nil, common.Classify(err, "list audit entries")
	}

	out := make([]*entity.AuditEntry, 0, len(rows))
	for _, row := range rows {
		entry, err := row.toEntity()
		if err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "повреждённые метаданные аудита")
		}
		out = append(out, entry)
	}
	return out, nil
}
