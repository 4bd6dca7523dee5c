package entity

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/ignatzorin/swipeshare-backend/internal/domain/valueobject"
	"github.com/ignatzorin/swipeshare-backend/internal/pkg/apperror"
)

const (
	MaxItemsTextLength    = 1000
	MaxInstructionsLength = 1000
	MaxReasonLength       = 500
	MaxOrderIDTextLength  = 64

	// DeclineReason записывается в cancel_reason при отказе продавца.
	DeclineReason = "declined"

	DefaultDisputeWindow = 24 * time.Hour
)

// Request - заявка покупателя на один пост продавца.
type Request struct {
	ID               uuid.UUID
	PostID           uuid.UUID
	BuyerID          uuid.UUID
	SellerID         uuid.UUID
	Status           valueobject.RequestStatus
	ItemsText        string
	Instructions     string
	EstTotal         valueobject.Money
	OrderedProofPath *string
	OrderIDText      *string
	BuyerCompleted   bool
	SellerCompleted  bool
	CancelReason     *string
	CancelledBy      *uuid.UUID
	AcceptedAt       *time.Time
	OrderedAt        *time.Time
	PickedUpAt       *time.Time
	CompletedAt      *time.Time
	Version          int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewRequest создаёт заявку в статусе requested. Резервирование ёмкости делает вызывающий код.
func NewRequest(post *Post, buyerID uuid.UUID, itemsText, instructions string, estTotal valueobject.Money, now time.Time) (*Request, error) {
	if buyerID == uuid.Nil {
		return nil, apperror.New(apperror.ErrCodeValidation, "покупатель обязателен")
	}
	if post.IsOwnedBy(buyerID) {
		return nil, apperror.New(apperror.ErrCodeForbidden, "нельзя оформить заявку на собственный пост")
	}
	itemsText = strings.TrimSpace(itemsText)
	if itemsText == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "список блюд обязателен")
	}
	if utf8.RuneCountInString(itemsText) > MaxItemsTextLength {
		return nil, apperror.New(apperror.ErrCodeValidation, "список блюд слишком длинный")
	}
	if utf8.RuneCountInString(instructions) > MaxInstructionsLength {
		return nil, apperror.New(apperror.ErrCodeValidation, "инструкции слишком длинные")
	}

	return &Request{
		ID:           uuid.New(),
		PostID:       post.ID,
		BuyerID:      buyerID,
		SellerID:     post.SellerID,
		Status:       valueobject.RequestStatusRequested,
		ItemsText:    itemsText,
		Instructions: strings.TrimSpace(instructions),
		EstTotal:     estTotal,
		Version:      1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// PartyOf определяет роль пользователя в заявке.
func (r *Request) PartyOf(userID uuid.UUID) valueobject.Party {
	switch userID {
	case r.BuyerID:
		return valueobject.PartyBuyer
	case r.SellerID:
		return valueobject.PartySeller
	}
	return valueobject.PartyNone
}

func (r *Request) IsParty(userID uuid.UUID) bool {
	return r.PartyOf(userID) != valueobject.PartyNone
}

// Counterparty возвращает ID второй стороны сделки.
func (r *Request) Counterparty(userID uuid.UUID) uuid.UUID {
	if userID == r.BuyerID {
		return r.SellerID
	}
	return r.BuyerID
}

// Command - входные данные одного перехода.
type Command struct {
	Action        valueobject.Action
	CallerID      uuid.UUID
	Now           time.Time
	Reason        string
	ProofPath     string
	OrderIDText   string
	DisputeWindow time.Duration
}

// Transition описывает применённый переход и его побочные эффекты.
type Transition struct {
	Action           valueobject.Action
	ActorID          uuid.UUID
	Party            valueobject.Party
	From             valueobject.RequestStatus
	To               valueobject.RequestStatus
	ExpectedVersion  int
	ReleasesCapacity bool
	Completed        bool
	Metadata         map[string]interface{}
}

// Apply проверяет роль и исходный статус и возвращает новое состояние заявки.
// Исходная заявка не изменяется.
func (r Request) Apply(cmd Command) (Request, Transition, error) {
	rule, ok := valueobject.RuleFor(cmd.Action)
	if !ok {
		return r, Transition{}, apperror.New(apperror.ErrCodeValidation, "неизвестное действие над заявкой")
	}

	party := r.PartyOf(cmd.CallerID)
	if party == valueobject.PartyNone {
		return r, Transition{}, apperror.ErrNotParty
	}
	if !rule.AllowsCaller(party) {
		return r, Transition{}, apperror.New(apperror.ErrCodeForbidden,
			fmt.Sprintf("действие %s недоступно для роли %s", cmd.Action, party))
	}
	if !rule.AllowsFrom(r.Status) {
		return r, Transition{}, apperror.New(apperror.ErrCodeInvalidState,
			fmt.Sprintf("действие %s невозможно в статусе %s", cmd.Action, r.Status))
	}

	now := cmd.Now
	if now.IsZero() {
		now = time.Now()
	}

	next := r
	t := Transition{
		Action:          cmd.Action,
		ActorID:         cmd.CallerID,
		Party:           party,
		From:            r.Status,
		To:              rule.To,
		ExpectedVersion: r.Version,
		Metadata:        map[string]interface{}{"party": string(party)},
	}

	switch cmd.Action {
	case valueobject.ActionAccept:
		next.AcceptedAt = &now

	case valueobject.ActionDecline:
		reason := DeclineReason
		next.CancelReason = &reason
		next.CancelledBy = &cmd.CallerID
		t.ReleasesCapacity = true

	case valueobject.ActionMarkOrdered:
		if utf8.RuneCountInString(cmd.OrderIDText) > MaxOrderIDTextLength {
			return r, Transition{}, apperror.New(apperror.ErrCodeValidation, "номер заказа слишком длинный")
		}
		if p := strings.TrimSpace(cmd.ProofPath); p != "" {
			next.OrderedProofPath = &p
			t.Metadata["proof_path"] = p
		}
		if id := strings.TrimSpace(cmd.OrderIDText); id != "" {
			next.OrderIDText = &id
			t.Metadata["order_id_text"] = id
		}
		next.OrderedAt = &now

	case valueobject.ActionMarkPickedUp:
		next.PickedUpAt = &now

	case valueobject.ActionMarkCompleted:
		if party == valueobject.PartyBuyer {
			if r.BuyerCompleted {
				return r, Transition{}, apperror.New(apperror.ErrCodeInvalidState, "вы уже подтвердили завершение")
			}
			next.BuyerCompleted = true
		} else {
			if r.SellerCompleted {
				return r, Transition{}, apperror.New(apperror.ErrCodeInvalidState, "вы уже подтвердили завершение")
			}
			next.SellerCompleted = true
		}
		t.To = r.Status
		if next.BuyerCompleted && next.SellerCompleted {
			t.To = valueobject.RequestStatusCompleted
			t.Completed = true
			next.CompletedAt = &now
		}
		t.Metadata["buyer_completed"] = next.BuyerCompleted
		t.Metadata["seller_completed"] = next.SellerCompleted

	case valueobject.ActionCancel:
		reason, err := requireReason(cmd.Reason)
		if err != nil {
			return r, Transition{}, err
		}
		next.CancelReason = &reason
		next.CancelledBy = &cmd.CallerID
		t.ReleasesCapacity = true
		t.Metadata["reason"] = reason

	case valueobject.ActionOpenDispute:
		reason, err := requireReason(cmd.Reason)
		if err != nil {
			return r, Transition{}, err
		}
		window := cmd.DisputeWindow
		if window <= 0 {
			window = DefaultDisputeWindow
		}
		if r.Status == valueobject.RequestStatusCompleted {
			if r.CompletedAt == nil || now.Sub(*r.CompletedAt) > window {
				return r, Transition{}, apperror.New(apperror.ErrCodeInvalidState, "срок открытия спора истёк")
			}
		}
		t.Metadata["reason"] = reason
	}

	next.Status = t.To
	next.Version = r.Version + 1
	next.UpdatedAt = now

	return next, t, nil
}

func requireReason(raw string) (string, error) {
	reason := strings.TrimSpace(raw)
	if reason == "" {
		return "", apperror.New(apperror.ErrCodeValidation, "причина обязательна")
	}
	if utf8.RuneCountInString(reason) > MaxReasonLength {
		return "", apperror.New(apperror.ErrCodeValidation, "причина слишком длинная")
	}
	return reason, nil
}
