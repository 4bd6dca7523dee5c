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
	MaxDisputeDescriptionLength = 2000
	MaxResolutionLength         = 2000
)

type Dispute struct {
	ID          uuid.UUID
	RequestID   uuid.UUID
	OpenerID    uuid.UUID
	Reason      string
	Description string
	Status      valueobject.DisputeStatus
	Resolution  *string
	ResolvedBy  *uuid.UUID
	CreatedAt   time.Time
	ResolvedAt  *time.Time
}

func NewDispute(requestID, openerID uuid.UUID, reason, description string, now time.Time) (*Dispute, error) {
	reason, err := requireReason(reason)
	if err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(description) > MaxDisputeDescriptionLength {
		return nil, apperror.New(apperror.ErrCodeValidation, "описание спора слишком длинное")
	}

	return &Dispute{
		ID:          uuid.New(),
		RequestID:   requestID,
		OpenerID:    openerID,
		Reason:      reason,
		Description: strings.TrimSpace(description),
		Status:      valueobject.DisputeStatusOpen,
		CreatedAt:   now,
	}, nil
}

// Resolve закрывает спор. Статус заявки при этом не меняется.
func (d *Dispute) Resolve(adminID uuid.UUID, resolution string, now time.Time) error {
	if d.Status != valueobject.DisputeStatusOpen {
		return apperror.New(apperror.ErrCodeInvalidState, "спор уже закрыт")
	}
	resolution = strings.TrimSpace(resolution)
	if resolution == "" {
		return apperror.New(apperror.ErrCodeValidation, "решение по спору обязательно")
	}
	if utf8.RuneCountInString(resolution) > MaxResolutionLength {
		return apperror.New(apperror.ErrCodeValidation, "решение по спору слишком длинное")
	}

	d.Status = valueobject.DisputeStatusResolved
	d.Resolution = &resolution
	d.ResolvedBy = &adminID
	d.ResolvedAt = &now
	return nil
}
