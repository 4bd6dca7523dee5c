package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ignatzorin/swipeshare-backend/internal/domain/entity"
	"github.com/ignatzorin/swipeshare-backend/internal/domain/event"
	"github.com/ignatzorin/swipeshare-backend/internal/domain/valueobject"
)

// WebhookPayload - изменение строки, присланное хранилищем.
type WebhookPayload struct {
	Type      string         `json:"type" binding:"required"`
	Table     string         `json:"table" binding:"required"`
	Record    *RequestRecord `json:"record"`
	OldRecord *RequestRecord `json:"old_record"`
}

// RequestRecord - строка таблицы requests в снейк-кейсе.
type RequestRecord struct {
	ID           uuid.UUID        `json:"id"`
	PostID       uuid.UUID        `json:"post_id"`
	BuyerID      uuid.UUID        `json:"buyer_id"`
	SellerID     uuid.UUID        `json:"seller_id"`
	Status       string           `json:"status"`
	ItemsText    string           `json:"items_text"`
	Instructions string           `json:"instructions"`
	EstTotal     *decimal.Decimal `json:"est_total"`
	CancelReason *string          `json:"cancel_reason"`
	CancelledBy  *uuid.UUID       `json:"cancelled_by"`
	Version      int              `json:"version"`
	UpdatedAt    *time.Time       `json:"updated_at"`
}

func (r *RequestRecord) toEntity() *entity.Request {
	if r == nil {
		return nil
	}
	req := &entity.Request{
		ID:           r.ID,
		PostID:       r.PostID,
		BuyerID:      r.BuyerID,
		SellerID:     r.SellerID,
		Status:       valueobject.RequestStatus(r.Status),
		ItemsText:    r.ItemsText,
		Instructions: r.Instructions,
		CancelReason: r.CancelReason,
		CancelledBy:  r.CancelledBy,
		Version:      r.Version,
	}
	if r.EstTotal != nil {
		req.EstTotal = valueobject.Money{Amount: *r.EstTotal, Currency: "USD"}
	}
	if r.UpdatedAt != nil {
		req.UpdatedAt = *r.UpdatedAt
	}
	return req
}

// ToRequestChange переводит вебхук в событие, понятное notify.Map.
func (p WebhookPayload) ToRequestChange() event.RequestChange {
	change := event.RequestChange{
		Change:    event.ChangeType(p.Type),
		Table:     p.Table,
		Record:    p.Record.toEntity(),
		OldRecord: p.OldRecord.toEntity(),
	}
	if change.Record != nil {
		change.At = change.Record.UpdatedAt
	}
	return change
}
