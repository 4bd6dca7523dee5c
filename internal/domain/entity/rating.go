package entity

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/ignatzorin/swipeshare-backend/internal/domain/valueobject"
	"github.com/ignatzorin/swipeshare-backend/internal/pkg/apperror"
)

const (
	MinStars            = 1
	MaxStars            = 5
	MaxRatingCommentLen = 1000
)

type Rating struct {
	ID        uuid.UUID
	RequestID uuid.UUID
	RaterID   uuid.UUID
	RateeID   uuid.UUID
	Stars     int
	Comment   *string
	CreatedAt time.Time
}

// NewRating создаёт оценку второй стороны по завершённой заявке.
func NewRating(req *Request, raterID uuid.UUID, stars int, comment *string, now time.Time) (*Rating, error) {
	if !req.IsParty(raterID) {
		return nil, apperror.ErrNotParty
	}
	if req.Status != valueobject.RequestStatusCompleted {
		return nil, apperror.New(apperror.ErrCodeInvalidState, "оценку можно оставить только после завершения заявки")
	}
	if stars < MinStars || stars > MaxStars {
		return nil, apperror.New(apperror.ErrCodeValidation, "оценка должна быть от 1 до 5")
	}

	var text *string
	if comment != nil {
		trimmed := strings.TrimSpace(*comment)
		if utf8.RuneCountInString(trimmed) > MaxRatingCommentLen {
			return nil, apperror.New(apperror.ErrCodeValidation, "комментарий слишком длинный")
		}
		if trimmed != "" {
			text = &trimmed
		}
	}

	return &Rating{
		ID:        uuid.New(),
		RequestID: req.ID,
		RaterID:   raterID,
		RateeID:   req.Counterparty(raterID),
		Stars:     stars,
		Comment:   text,
		CreatedAt: now,
	}, nil
}

// ProfileStats - агрегаты профиля пользователя.
type ProfileStats struct {
	UserID         uuid.UUID
	RatingAvg      float64
	RatingCount    int
	CompletedCount int
	UpdatedAt      time.Time
}
