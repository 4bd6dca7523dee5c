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
	MaxLocationLength = 120
	MaxNotesLength    = 1000
)

// Post - предложение продавца: сколько свайпов и где он готов потратить.
type Post struct {
	ID                uuid.UUID
	SellerID          uuid.UUID
	Status            valueobject.PostStatus
	CapacityTotal     int
	CapacityRemaining int
	Location          string
	Notes             string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func NewPost(sellerID uuid.UUID, capacityTotal int, location, notes string, now time.Time) (*Post, error) {
	if sellerID == uuid.Nil {
		return nil, apperror.New(apperror.ErrCodeValidation, "продавец обязателен")
	}
	if capacityTotal <= 0 {
		return nil, apperror.New(apperror.ErrCodeValidation, "количество свайпов должно быть положительным")
	}
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "место обязательно")
	}
	if utf8.RuneCountInString(location) > MaxLocationLength {
		return nil, apperror.New(apperror.ErrCodeValidation, "название места слишком длинное")
	}
	if utf8.RuneCountInString(notes) > MaxNotesLength {
		return nil, apperror.New(apperror.ErrCodeValidation, "заметка слишком длинная")
	}

	return &Post{
		ID:                uuid.New(),
		SellerID:          sellerID,
		Status:            valueobject.PostStatusOpen,
		CapacityTotal:     capacityTotal,
		CapacityRemaining: capacityTotal,
		Location:          location,
		Notes:             strings.TrimSpace(notes),
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

func (p *Post) IsOwnedBy(userID uuid.UUID) bool {
	return p.SellerID == userID
}

func (p *Post) CanReserve() bool {
	return p.Status == valueobject.PostStatusOpen && p.CapacityRemaining > 0
}

// Reserve занимает одну единицу ёмкости. Пост закрывается на последней единице.
func (p *Post) Reserve(now time.Time) error {
	if !p.CanReserve() {
		return apperror.ErrPostUnavailable
	}
	p.CapacityRemaining--
	if p.CapacityRemaining == 0 {
		p.Status = valueobject.PostStatusClosed
	}
	p.UpdatedAt = now
	return nil
}

// Release возвращает единицу ёмкости и снова открывает пост.
func (p *Post) Release(now time.Time) error {
	if p.CapacityRemaining >= p.CapacityTotal {
		return apperror.New(apperror.ErrCodeInternal, "ёмкость поста уже полная")
	}
	p.CapacityRemaining++
	p.Status = valueobject.PostStatusOpen
	p.UpdatedAt = now
	return nil
}
