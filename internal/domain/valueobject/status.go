package valueobject

import "github.com/ignatzorin/swipeshare-backend/internal/pkg/apperror"

type RequestStatus string

const (
	RequestStatusRequested RequestStatus = "requested"
	RequestStatusAccepted  RequestStatus = "accepted"
	RequestStatusOrdered   RequestStatus = "ordered"
	RequestStatusPickedUp  RequestStatus = "picked_up"
	RequestStatusCompleted RequestStatus = "completed"
	RequestStatusCancelled RequestStatus = "cancelled"
	RequestStatusDisputed  RequestStatus = "disputed"
)

// AllRequestStatuses перечисляет статусы в порядке жизненного цикла.
var AllRequestStatuses = []RequestStatus{
	RequestStatusRequested,
	RequestStatusAccepted,
	RequestStatusOrdered,
	RequestStatusPickedUp,
	RequestStatusCompleted,
	RequestStatusCancelled,
	RequestStatusDisputed,
}

func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestStatusRequested, RequestStatusAccepted, RequestStatusOrdered, RequestStatusPickedUp,
		RequestStatusCompleted, RequestStatusCancelled, RequestStatusDisputed:
		return true
	}
	return false
}

// HoldsCapacity сообщает, удерживает ли заявка в этом статусе единицу ёмкости поста.
func (s RequestStatus) HoldsCapacity() bool {
	return s == RequestStatusRequested || s == RequestStatusAccepted
}

func NewRequestStatus(status string) (RequestStatus, error) {
	s := RequestStatus(status)
	if !s.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректный статус заявки")
	}
	return s, nil
}

type PostStatus string

const (
	PostStatusOpen   PostStatus = "open"
	PostStatusClosed PostStatus = "closed"
)

func (s PostStatus) IsValid() bool {
	return s == PostStatusOpen || s == PostStatusClosed
}

type DisputeStatus string

const (
	DisputeStatusOpen     DisputeStatus = "open"
	DisputeStatusResolved DisputeStatus = "resolved"
)

func (s DisputeStatus) IsValid() bool {
	return s == DisputeStatusOpen || s == DisputeStatusResolved
}
