package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/swipeshare-backend/internal/domain/valueobject"
	"github.com/ignatzorin/swipeshare-backend/internal/pkg/apperror"
)

// AuditEntry - неизменяемая запись журнала переходов заявки.
type AuditEntry struct {
	ID         uuid.UUID
	RequestID  uuid.UUID
	ActorID    uuid.UUID
	Action     valueobject.Action
	FromStatus valueobject.RequestStatus
	ToStatus   valueobject.RequestStatus
	Metadata   map[string]interface{}
	CreatedAt  time.Time
}

func NewAuditEntry(requestID uuid.UUID, t Transition, now time.Time) *AuditEntry {
	return &AuditEntry{
		ID:         uuid.New(),
		RequestID:  requestID,
		ActorID:    t.ActorID,
		Action:     t.Action,
		FromStatus: t.From,
		ToStatus:   t.To,
		Metadata:   t.Metadata,
		CreatedAt:  now,
	}
}

// NewRejectedAuditEntry фиксирует отклонённую попытку: статус не меняется.
func NewRejectedAuditEntry(req *Request, action valueobject.Action, actorID uuid.UUID, cause error, now time.Time) *AuditEntry {
	meta := map[string]interface{}{
		"rejected":   true,
		"error_code": string(apperror.CodeOf(cause)),
	}
	var appErr *apperror.AppError
	if errors.As(cause, &appErr) {
		meta["message"] = appErr.Message
	}

	return &AuditEntry{
		ID:         uuid.New(),
		RequestID:  req.ID,
		ActorID:    actorID,
		Action:     action,
		FromStatus: req.Status,
		ToStatus:   req.Status,
		Metadata:   meta,
		CreatedAt:  now,
	}
}

func (e *AuditEntry) Rejected() bool {
	v, ok := e.Metadata["rejected"].(bool)
	return ok && v
}
