package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/swipeshare-backend/internal/domain/entity"
)

type SubmitRatingRequest struct {
	Stars   int     `json:"stars"`
	Comment *string `json:"comment"`
}

type RatingResponse struct {
	ID        uuid.UUID `json:"id"`
	RequestID uuid.UUID `json:"request_id"`
	RaterID   uuid.UUID `json:"rater_id"`
	RateeID   uuid.UUID `json:"ratee_id"`
	Stars     int       `json:"stars"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func ToRatingResponse(r *entity.Rating) RatingResponse {
	return RatingResponse{
		ID:        r.ID,
		RequestID: r.RequestID,
		RaterID:   r.RaterID,
		RateeID:   r.RateeID,
		Stars:     r.Stars,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

type ProfileStatsResponse struct {
	UserID         uuid.UUID `json:"user_id"`
	RatingAvg      float64   `json:"rating_avg"`
	RatingCount    int       `json:"rating_count"`
	CompletedCount int       `json:"completed_count"`
}

func ToProfileStatsResponse(s *entity.ProfileStats) ProfileStatsResponse {
	return ProfileStatsResponse{
		UserID:         s.UserID,
		RatingAvg:      s.RatingAvg,
		RatingCount:    s.RatingCount,
		CompletedCount: s.CompletedCount,
	}
}
