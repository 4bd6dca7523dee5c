package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/swipeshare-backend/internal/domain/entity"
	"github.com/ignatzorin/swipeshare-backend/internal/pkg/apperror"
	"github.com/ignatzorin/swipeshare-backend/internal/repository/common"
)

const postColumns = `id, seller_id, status, capacity_total, capacity_remaining, location, notes, created_at, updated_at`

type postRepository struct {
	q sqlx.ExtContext
}

func (r *postRepository) Create(ctx context.Context, post *entity.Post) error {
	query := `
		INSERT INTO posts (` + postColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.q.ExecContext(ctx, query,
		post.ID,
		post.SellerID,
		string(post.Status),
		post.CapacityTotal,
		post.CapacityRemaining,
		post.Location,
		post.Notes,
		post.CreatedAt,
		post.UpdatedAt,
	)
	if err != nil {
		return common.Classify(err, "create post")
	}
	return nil
}

func (r *postRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error) {
	row, err := common.GetByID[postRow](ctx, r.q, "posts", id, apperror.ErrPostNotFound)
	if err != nil {
		return nil, err
	}
	return row.toEntity(), nil
}

func (r *postRepository) ListOpen(ctx context.Context, limit, offset int) ([]*entity.Post, int, error) {
	var total int
	if err := sqlx.GetContext(ctx, r.q, &total, `SELECT COUNT(*) FROM posts WHERE status = 'open'`); err != nil {
		return nil, 0, common.Classify(err, "count open posts")
	}

	query := `
		SELECT ` + postColumns + ` FROM posts
		WHERE status = 'open'
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	var rows []postRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, limit, offset); err != nil {
		return nil, 0, common.Classify(err, "list open posts")
	}

	posts := make([]*entity.Post, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, row.toEntity())
	}
	return posts, total, nil
}

// ReserveSlot уменьшает ёмкость одним условным UPDATE: проверка и списание
// происходят атомарно под блокировкой строки.
func (r *postRepository) ReserveSlot(ctx context.Context, id uuid.UUID, now time.Time) (*entity.Post, error) {
	query := `
		UPDATE posts
		SET capacity_remaining = capacity_remaining - 1,
		    status = CASE WHEN capacity_remaining - 1 = 0 THEN 'closed' ELSE status END,
		    updated_at = $2
		WHERE id = $1 AND status = 'open' AND capacity_remaining > 0
		RETURNING ` + postColumns

	var row postRow
	err := sqlx.GetContext(ctx, r.q, &row, query, id, now)
	if errors.Is(err, sql.ErrNoRows) {
		if _, findErr := r.FindByID(ctx, id); findErr != nil {
			return nil, findErr
		}
		return nil, apperror.ErrPostUnavailable
	}
	if err != nil {
		return nil, common.Classify(err, "reserve post slot")
	}
	return row.toEntity(), nil
}

// ReleaseSlot возвращает свайп и снова открывает пост.
func (r *postRepository) ReleaseSlot(ctx context.Context, id uuid.UUID, now time.Time) (*entity.Post, error) {
	query := `
		UPDATE posts
		SET capacity_remaining = capacity_remaining + 1,
		    status = 'open',
		    updated_at = $2
		WHERE id = $1 AND capacity_remaining < capacity_total
		RETURNING ` + postColumns

	var row postRow
	err := sqlx.GetContext(ctx, r.q, &row, query, id, now)
	if errors.Is(err, sql.ErrNoRows) {
		if _, findErr := r.FindByID(ctx, id); findErr != nil {
			return nil, findErr
		}
		return nil, apperror.New(apperror.ErrCodeInternal, "ёмкость поста уже полная")
	}
	if err != nil {
		return nil, common.Classify(err, "release post slot")
	}
	return row.toEntity(), nil
}
