package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/swipeshare-backend/internal/domain/entity"
)

type OpenDisputeRequest struct {
	Reason      string `json:"reason"`
	Description string `json:"description"`
}

type ResolveDisputeRequest struct {
	Resolution string `json:"resolution"`
}

type DisputeResponse struct {
	ID          uuid.UUID  `json:"id"`
	RequestID   uuid.UUID  `json:"request_id"`
	OpenerID    uuid.UUID  `json:"opener_id"`
	Reason      string     `json:"reason"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	Resolution  *string    `json:"resolution,omitempty"`
	ResolvedBy  *uuid.UUID `json:"resolved_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}

func ToDisputeResponse(d *entity.Dispute) DisputeResponse {
	return DisputeResponse{
		ID:          d.ID,
		RequestID:   d.RequestID,
		OpenerID:    d.OpenerID,
		Reason:      d.Reason,
		Description: d.Description,
		Status:      string(d.Status),
		Resolution:  d.Resolution,
		ResolvedBy:  d.ResolvedBy,
		CreatedAt:   d.CreatedAt,
		ResolvedAt:  d.ResolvedAt,
	}
}
