package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/swipeshare-backend/internal/domain/entity"
)

type CreatePostRequest struct {
	CapacityTotal int    `json:"capacity_total"`
	Location      string `json:"location" binding:"required"`
	Notes         string `json:"notes"`
}

type PostResponse struct {
	ID                uuid.UUID `json:"id"`
	SellerID          uuid.UUID `json:"seller_id"`
	Status            string    `json:"status"`
	CapacityTotal     int       `json:"capacity_total"`
	CapacityRemaining int       `json:"capacity_remaining"`
	Location          string    `json:"location"`
	Notes             string    `json:"notes,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func ToPostResponse(p *entity.Post) PostResponse {
	return PostResponse{
		ID:                p.ID,
		SellerID:          p.SellerID,
		Status:            string(p.Status),
		CapacityTotal:     p.CapacityTotal,
		CapacityRemaining: p.CapacityRemaining,
		Location:          p.Location,
		Notes:             p.Notes,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func ToPostListResponse(posts []*entity.Post) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, ToPostResponse(p))
	}
	return out
}
