package event

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/swipeshare-backend/internal/domain/entity"
	"github.com/ignatzorin/swipeshare-backend/internal/domain/valueobject"
)

const (
	TypeRequestChanged  = "request.changed"
	TypeRatingSubmitted = "rating.submitted"
	TypeDisputeResolved = "dispute.resolved"

	TableRequests = "requests"
)

type ChangeType string

const (
	ChangeInsert ChangeType = "INSERT"
	ChangeUpdate ChangeType = "UPDATE"
	ChangeDelete ChangeType = "DELETE"
)

type Event interface {
	Type() string
	Timestamp() time.Time
}

// Handler - подписчик шины событий.
type Handler interface {
	Name() string
	CanHandle(eventType string) bool
	Handle(ctx context.Context, e Event) error
}

// Publisher публикует события после фиксации транзакции.
type Publisher interface {
	Publish(ctx context.Context, e Event)
}

// RequestChange - изменение строки заявки. Формат совпадает с вебхуком хранилища.
type RequestChange struct {
	Change    ChangeType
	Table     string
	Record    *entity.Request
	OldRecord *entity.Request
	Action    valueobject.Action
	ActorID   uuid.UUID
	At        time.Time
}

func (e RequestChange) Type() string         { return TypeRequestChanged }
func (e RequestChange) Timestamp() time.Time { return e.At }

// StatusChanged сообщает, изменился ли статус заявки в этом событии.
func (e RequestChange) StatusChanged() bool {
	if e.Record == nil {
		return false
	}
	if e.OldRecord == nil {
		return true
	}
	return e.OldRecord.Status != e.Record.Status
}

func NewRequestInserted(req *entity.Request, actorID uuid.UUID) RequestChange {
	return RequestChange{
		Change:  ChangeInsert,
		Table:   TableRequests,
		Record:  req,
		ActorID: actorID,
		At:      req.CreatedAt,
	}
}

func NewRequestUpdated(old, updated *entity.Request, action valueobject.Action, actorID uuid.UUID) RequestChange {
	return RequestChange{
		Change:    ChangeUpdate,
		Table:     TableRequests,
		Record:    updated,
		OldRecord: old,
		Action:    action,
		ActorID:   actorID,
		At:        updated.UpdatedAt,
	}
}

type RatingSubmitted struct {
	Rating *entity.Rating
}

func (e RatingSubmitted) Type() string         { return TypeRatingSubmitted }
func (e RatingSubmitted) Timestamp() time.Time { return e.Rating.CreatedAt }

type DisputeResolved struct {
	Dispute *entity.Dispute
	Request *entity.Request
}

func (e DisputeResolved) Type() string { return TypeDisputeResolved }
func (e DisputeResolved) Timestamp() time.Time {
	if e.Dispute.ResolvedAt != nil {
		return *e.Dispute.ResolvedAt
	}
	return time.Time{}
}
