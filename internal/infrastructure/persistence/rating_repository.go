package persistence

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/swipeshare-backend/internal/domain/entity"
	"github.com/ignatzorin/swipeshare-backend/internal/pkg/apperror"
	"github.com/ignatzorin/swipeshare-backend/internal/repository/common"
)

const ratingRequestRaterUniqueKey = "ratings_request_rater_key"

type ratingRepository struct {
	q sqlx.ExtContext
}

func (r *ratingRepository) Create(ctx context.Context, rating *entity.Rating) error {
	query := `
		INSERT INTO ratings (id, request_id, rater_id, ratee_id, stars, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.q.ExecContext(ctx, query,
		rating.ID,
		rating.RequestID,
		rating.RaterID,
		rating.RateeID,
		rating.Stars,
		rating.Comment,
		rating.CreatedAt,
	)
	if common.IsUniqueViolation(err, ratingRequestRaterUniqueKey) {
		return apperror.ErrAlreadyRated
	}
	if err != nil {
		return common.Classify(err, "create rating")
	}
	return nil
}

func (r *ratingRepository) FindByRequestAndRater(ctx context.Context, requestID, raterID uuid.UUID) (*entity.Rating, error) {
	var row ratingRow
	err := sqlx.GetContext(ctx, r.q, &row,
		`SELECT * FROM ratings WHERE request_id = $1 AND rater_id = $2`, requestID, raterID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, common.Classify(err, "find rating")
	}
	return row.toEntity(), nil
}

func (r *ratingRepository) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]*entity.Rating, error) {
	var rows []ratingRow
	if err := sqlx.SelectContext(ctx, r.q, &rows,
		`SELECT * FROM ratings WHERE request_id = $1 ORDER BY created_at ASC`, requestID); err != nil {
		return nil, common.Classify(err, "list ratings")
	}

	out := make([]*entity.Rating, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

// AverageForUser пересчитывает средний балл по всем оценкам пользователя.
func (r *ratingRepository) AverageForUser(ctx context.Context, userID uuid.UUID) (float64, int, error) {
	var agg struct {
		Avg   float64 `db:"avg"`
		Count int     `db:"count"`
	}
	query := `SELECT COALESCE(AVG(stars), 0)::float8 AS avg, COUNT(*) AS count FROM ratings WHERE ratee_id = $1`
	if err := sqlx.GetContext(ctx, r.q, &agg, query, userID); err != nil {
		return 0, 0, common.Classify(err, "average rating")
	}
	return agg.Avg, agg.Count, nil
}
