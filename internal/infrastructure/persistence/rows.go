package persistence

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"

	"github.com/ignatzorin/swipeshare-backend/internal/domain/entity"
	"github.com/ignatzorin/swipeshare-backend/internal/domain/valueobject"
)

// Строки таблиц. Сущности домена не знают о тегах db.

type postRow struct {
	ID                uuid.UUID `db:"id"`
	SellerID          uuid.UUID `db:"seller_id"`
	Status            string    `db:"status"`
	CapacityTotal     int       `db:"capacity_total"`
	CapacityRemaining int       `db:"capacity_remaining"`
	Location          string    `db:"location"`
	Notes             string    `db:"notes"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

func (r postRow) toEntity() *entity.Post {
	return &entity.Post{
		ID:                r.ID,
		SellerID:          r.SellerID,
		Status:            valueobject.PostStatus(r.Status),
		CapacityTotal:     r.CapacityTotal,
		CapacityRemaining: r.CapacityRemaining,
		Location:          r.Location,
		Notes:             r.Notes,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

type requestRow struct {
	ID               uuid.UUID       `db:"id"`
	PostID           uuid.UUID       `db:"post_id"`
	BuyerID          uuid.UUID       `db:"buyer_id"`
	SellerID         uuid.UUID       `db:"seller_id"`
	Status           string          `db:"status"`
	ItemsText        string          `db:"items_text"`
	Instructions     string          `db:"instructions"`
	EstTotal         decimal.Decimal `db:"est_total"`
	Currency         string          `db:"currency"`
	OrderedProofPath *string         `db:"ordered_proof_path"`
	OrderIDText      *string         `db:"order_id_text"`
	BuyerCompleted   bool            `db:"buyer_completed"`
	SellerCompleted  bool            `db:"seller_completed"`
	CancelReason     *string         `db:"cancel_reason"`
	CancelledBy      *uuid.UUID      `db:"cancelled_by"`
	AcceptedAt       *time.Time      `db:"accepted_at"`
	OrderedAt        *time.Time      `db:"ordered_at"`
	PickedUpAt       *time.Time      `db:"picked_up_at"`
	CompletedAt      *time.Time      `db:"completed_at"`
	Version          int             `db:"version"`
	CreatedAt        time.Time       `db:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at"`
}

func newRequestRow(req *entity.Request) requestRow {
	return requestRow{
		ID:               req.ID,
		PostID:           req.PostID,
		BuyerID:          req.BuyerID,
		SellerID:         req.SellerID,
		Status:           string(req.Status),
		ItemsText:        req.ItemsText,
		Instructions:     req.Instructions,
		EstTotal:         req.EstTotal.Amount,
		Currency:         req.EstTotal.Currency,
		OrderedProofPath: req.OrderedProofPath,
		OrderIDText:      req.OrderIDText,
		BuyerCompleted:   req.BuyerCompleted,
		SellerCompleted:  req.SellerCompleted,
		CancelReason:     req.CancelReason,
		CancelledBy:      req.CancelledBy,
		AcceptedAt:       req.AcceptedAt,
		OrderedAt:        req.OrderedAt,
		PickedUpAt:       req.PickedUpAt,
		CompletedAt:      req.CompletedAt,
		Version:          req.Version,
		CreatedAt:        req.CreatedAt,
		UpdatedAt:        req.UpdatedAt,
	}
}

func (r requestRow) toEntity() *entity.Request {
	return &entity.Request{
		ID:               r.ID,
		PostID:           r.PostID,
		BuyerID:          r.BuyerID,
		SellerID:         r.SellerID,
		Status:           valueobject.RequestStatus(r.Status),
		ItemsText:        r.ItemsText,
		Instructions:     r.Instructions,
		EstTotal:         valueobject.Money{Amount: r.EstTotal, Currency: r.Currency},
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

type disputeRow struct {
	ID          uuid.UUID  `db:"id"`
	RequestID   uuid.UUID  `db:"request_id"`
	OpenerID    uuid.UUID  `db:"opener_id"`
	Reason      string     `db:"reason"`
	Description string     `db:"description"`
	Status      string     `db:"status"`
	Resolution  *string    `db:"resolution"`
	ResolvedBy  *uuid.UUID `db:"resolved_by"`
	CreatedAt   time.Time  `db:"created_at"`
	ResolvedAt  *time.Time `db:"resolved_at"`
}

func (r disputeRow) toEntity() *entity.Dispute {
	return &entity.Dispute{
		ID:          r.ID,
		RequestID:   r.RequestID,
		OpenerID:    r.OpenerID,
		Reason:      r.Reason,
		Description: r.Description,
		Status:      valueobject.DisputeStatus(r.Status),
		Resolution:  r.Resolution,
		ResolvedBy:  r.ResolvedBy,
		CreatedAt:   r.CreatedAt,
		ResolvedAt:  r.ResolvedAt,
	}
}

type ratingRow struct {
	ID        uuid.UUID `db:"id"`
	RequestID uuid.UUID `db:"request_id"`
	RaterID   uuid.UUID `db:"rater_id"`
	RateeID   uuid.UUID `db:"ratee_id"`
	Stars     int       `db:"stars"`
	Comment   *string   `db:"comment"`
	CreatedAt time.Time `db:"created_at"`
}

func (r ratingRow) toEntity() *entity.Rating {
	return &entity.Rating{
		ID:        r.ID,
		RequestID: r.RequestID,
		RaterID:   r.RaterID,
		RateeID:   r.RateeID,
		Stars:     r.Stars,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

type auditRow struct {
	ID         uuid.UUID      `db:"id"`
	RequestID  uuid.UUID      `db:"request_id"`
	ActorID    uuid.UUID      `db:"actor_id"`
	Action     string         `db:"action"`
	FromStatus string         `db:"from_status"`
	ToStatus   string         `db:"to_status"`
	Metadata   types.JSONText `db:"metadata"`
	CreatedAt  time.Time      `db:"created_at"`
}

func (r auditRow) toEntity() (*entity.AuditEntry, error) {
	var meta map[string]interface{}
	if len(r.Metadata) > 0 {
		if err := r.Metadata.Unmarshal(&meta); err != nil {
			return nil, err
		}
	}
	return &entity.AuditEntry{
		ID:         r.ID,
		RequestID:  r.RequestID,
		ActorID:    r.ActorID,
		Action:     valueobject.Action(r.Action),
		FromStatus: valueobject.RequestStatus(r.FromStatus),
		ToStatus:   valueobject.RequestStatus(r.ToStatus),
		Metadata:   meta,
		CreatedAt:  r.CreatedAt,
	}, nil
}

type profileRow struct {
	UserID         uuid.UUID `db:"user_id"`
	RatingAvg      float64   `db:"rating_avg"`
	RatingCount    int       `db:"rating_count"`
	CompletedCount int       `db:"completed_count"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (r profileRow) toEntity() *entity.ProfileStats {
	return &entity.ProfileStats{
		UserID:         r.UserID,
		RatingAvg:      r.RatingAvg,
		RatingCount:    r.RatingCount,
		CompletedCount: r.CompletedCount,
		UpdatedAt:      r.UpdatedAt,
	}
}

type notificationRow struct {
	ID        uuid.UUID      `db:"id"`
	UserID    uuid.UUID      `db:"user_id"`
	Payload   types.JSONText `db:"payload"`
	IsRead    bool           `db:"is_read"`
	CreatedAt time.Time      `db:"created_at"`
}

func (r notificationRow) toEntity() *entity.Notification {
	return &entity.Notification{
		ID:        r.ID,
		UserID:    r.UserID,
		Payload:   json.RawMessage(r.Payload),
		IsRead:    r.IsRead,
		CreatedAt: r.CreatedAt,
	}
}
