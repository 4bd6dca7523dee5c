package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/swipeshare-backend/internal/domain/entity"
)

type CreateRequestRequest struct {
	ItemsText    string `json:"items_text" binding:"required"`
	Instructions string `json:"instructions"`
	EstTotal     string `json:"est_total"`
}

type MarkOrderedRequest struct {
	ProofPath   string `json:"proof_path"`
	OrderIDText string `json:"order_id_text"`
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

type RequestResponse struct {
	ID               uuid.UUID  `json:"id"`
	PostID           uuid.UUID  `json:"post_id"`
	BuyerID          uuid.UUID  `json:"buyer_id"`
	SellerID         uuid.UUID  `json:"seller_id"`
	Status           string     `json:"status"`
	ItemsText        string     `json:"items_text"`
	Instructions     string     `json:"instructions,omitempty"`
	EstTotal         string     `json:"est_total"`
	Currency         string     `json:"currency"`
	OrderedProofPath *string    `json:"ordered_proof_path,omitempty"`
	OrderIDText      *string    `json:"order_id_text,omitempty"`
	BuyerCompleted   bool       `json:"buyer_completed"`
	SellerCompleted  bool       `json:"seller_completed"`
	CancelReason     *string    `json:"cancel_reason,omitempty"`
	CancelledBy      *uuid.UUID `json:"cancelled_by,omitempty"`
	AcceptedAt       *time.Time `json:"accepted_at,omitempty"`
	OrderedAt        *time.Time `json:"ordered_at,omitempty"`
	PickedUpAt       *time.Time `json:"picked_up_at,omitempty"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	Version          int        `json:"version"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func ToRequestResponse(r *entity.Request) RequestResponse {
	return RequestResponse{
		ID:               r.ID,
		PostID:           r.PostID,
		BuyerID:          r.BuyerID,
		SellerID:         r.SellerID,
		Status:           string(r.Status),
		ItemsText:        r.ItemsText,
		Instructions:     r.Instructions,
		EstTotal:         r.EstTotal.String(),
		Currency:         r.EstTotal.Currency,
		OrderedProofPath: r.OrderedProofPath,
		OrderIDText:      r.OrderIDText,
		BuyerCompleted:   r.BuyerCompleted,
		SellerCompleted:  r.SellerCompleted,
		CancelReason:     r.CancelReason,
		CancelledBy:      r.CancelledBy,
		AcceptedAt:       r.AcceptedAt,
		OrderedAt:        r.OrderedAt,
		PickedUpAt:       r.PickedUpAt,
		CompletedAt:      r.CompletedAt,
		Version:          r.Version,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

func ToRequestListResponse(items []*entity.Request) []RequestResponse {
	out := make([]RequestResponse, 0, len(items))
	for _, r := range items {
		out = append(out, ToRequestResponse(r))
	}
	return out
}

type AuditEntryResponse struct {
	ID         uuid.UUID              `json:"id"`
	RequestID  uuid.UUID              `json:"request_id"`
	ActorID    uuid.UUID              `json:"actor_id"`
	Action     string                 `json:"action"`
	FromStatus string                 `json:"from_status"`
	ToStatus   string                 `json:"to_status"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}

func ToAuditResponse(entries []*entity.AuditEntry) []AuditEntryResponse {
	out := make([]AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, AuditEntryResponse{
			ID:         e.ID,
			RequestID:  e.RequestID,
			ActorID:    e.ActorID,
			Action:     string(e.Action),
			FromStatus: string(e.FromStatus),
			ToStatus:   string(e.ToStatus),
			Metadata:   e.Metadata,
			CreatedAt:  e.CreatedAt,
		})
	}
	return out
}
