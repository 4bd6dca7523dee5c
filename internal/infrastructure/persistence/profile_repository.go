package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ignatzorin/swipeshare-backend/internal/domain/entity"
	"github.com/ignatzorin/swipeshare-backend/internal/repository/common"
)

type profileRepository struct {
	q sqlx.ExtContext
}

func (r *profileRepository) Get(ctx context.Context, userID uuid.UUID) (*entity.ProfileStats, error) {
	var row profileRow
	err := sqlx.GetContext(ctx, r.q, &row, `SELECT * FROM profiles WHERE user_id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return &entity.ProfileStats{UserID: userID}, nil
	}
	if err != nil {
		return nil, common.Classify(err, "get profile")
	}
	return row.toEntity(), nil
}

func (r *profileRepository) IncrementCompleted(ctx context.Context, now time.Time, userIDs ...uuid.UUID) error {
	if len(userIDs) == 0 {
		return nil
	}

	ids := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		ids = append(ids, id.String())
	}

	query := `
		INSERT INTO profiles (user_id, completed_count, updated_at)
		SELECT u::uuid, 1, $2 FROM unnest($1::text[]) AS u
		ON CONFLICT (user_id) DO UPDATE
		SET completed_count = profiles.completed_count + 1, updated_at = EXCLUDED.updated_at
	`
	if _, err := r.q.ExecContext(ctx, query, pq.Array(ids), now); err != nil {
		return common.Classify(err, "increment completed count")
	}
	return nil
}

func (r *profileRepository) SetRating(ctx context.Context, userID uuid.UUID, avg float64, count int, now time.Time) error {
	query := `
		INSERT INTO profiles (user_id, rating_avg, rating_count, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET rating_avg = EXCLUDED.rating_avg, rating_count = EXCLUDED.rating_count, updated_at = EXCLUDED.updated_at
	`
	if _, err := r.q.ExecContext(ctx, query, userID, avg, count, now); err != nil {
		return common.Classify(err, "set rating")
	}
	return nil
}
