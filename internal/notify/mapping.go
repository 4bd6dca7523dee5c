// Package notify превращает изменения заявок в уведомления и доставляет их.
package notify

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/google/uuid"

	"github.com/ignatzorin/swipeshare-backend/internal/domain/entity"
	"github.com/ignatzorin/swipeshare-backend/internal/domain/event"
	"github.com/ignatzorin/swipeshare-backend/internal/domain/valueobject"
)

// DefaultTimezone - часовой пояс кампуса для расчёта ожидания.
const DefaultTimezone = "America/New_York"

const (
	KindNewRequest = "request_new"
	KindAccepted   = "request_accepted"
	KindOrdered    = "request_ordered"
	KindPickedUp   = "request_picked_up"
	KindCancelled  = "request_cancelled"
	KindDeclined   = "request_declined"
)

// Message - уведомление одному получателю.
type Message struct {
	RecipientID uuid.UUID `json:"recipient_id"`
	RequestID   uuid.UUID `json:"request_id"`
	Kind        string    `json:"kind"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	WaitMinutes int       `json:"wait_minutes,omitempty"`
}

// waitWindow - полуинтервал часов [From, To) и ожидание в минутах.
type waitWindow struct {
	From, To int
	Minutes  int
}

var waitTable = []waitWindow{
	{From: 10, To: 13, Minutes: 10},
	{From: 7, To: 10, Minutes: 5},
	{From: 13, To: 17, Minutes: 5},
}

const offPeakWaitMinutes = 3

// EstimatedWait возвращает ожидаемое время готовности заказа по местному часу.
func EstimatedWait(hour int) int {
	for _, w := range waitTable {
		if hour >= w.From && hour < w.To {
			return w.Minutes
		}
	}
	return offPeakWaitMinutes
}

// LoadLocation загружает часовой пояс, пустое имя означает DefaultTimezone.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultTimezone
	}
	return time.LoadLocation(name)
}

// Map - чистая функция: изменение заявки в уведомление. Второе значение false,
// если уведомлять некого.
func Map(change event.RequestChange, now time.Time, loc *time.Location) (Message, bool) {
	if change.Table != event.TableRequests || change.Record == nil {
		return Message{}, false
	}
	rec := change.Record

	switch change.Change {
	case event.ChangeInsert:
		if rec.Status != valueobject.RequestStatusRequested {
			return Message{}, false
		}
		return Message{
			RecipientID: rec.SellerID,
			RequestID:   rec.ID,
			Kind:        KindNewRequest,
			Title:       "New swipe request",
			Body:        fmt.Sprintf("Someone wants you to swipe for: %s", rec.ItemsText),
		}, true

	case event.ChangeUpdate:
		if !change.StatusChanged() {
			return Message{}, false
		}
	default:
		return Message{}, false
	}

	switch rec.Status {
	case valueobject.RequestStatusAccepted:
		return Message{
			RecipientID: rec.BuyerID,
			RequestID:   rec.ID,
			Kind:        KindAccepted,
			Title:       "Request accepted",
			Body:        "Your swipe request was accepted. The seller will place your order soon.",
		}, true

	case valueobject.RequestStatusOrdered:
		if loc == nil {
			loc = time.UTC
		}
		wait := EstimatedWait(now.In(loc).Hour())
		return Message{
			RecipientID: rec.BuyerID,
			RequestID:   rec.ID,
			Kind:        KindOrdered,
			Title:       "Order placed",
			Body:        fmt.Sprintf("Your food has been ordered. Estimated wait: about %d minutes.", wait),
			WaitMinutes: wait,
		}, true

	case valueobject.RequestStatusPickedUp:
		return Message{
			RecipientID: rec.BuyerID,
			RequestID:   rec.ID,
			Kind:        KindPickedUp,
			Title:       "Order picked up",
			Body:        "Your order has been picked up. Confirm completion once you have it.",
		}, true

	case valueobject.RequestStatusCancelled:
		return mapCancelled(rec)
	}

	return Message{}, false
}

func mapCancelled(rec *entity.Request) (Message, bool) {
	if rec.CancelledBy == nil {
		return Message{}, false
	}

	switch *rec.CancelledBy {
	case rec.BuyerID:
		return Message{
			RecipientID: rec.SellerID,
			RequestID:   rec.ID,
			Kind:        KindCancelled,
			Title:       "Request cancelled",
			Body:        "The buyer cancelled their swipe request.",
		}, true

	case rec.SellerID:
		if rec.CancelReason != nil && *rec.CancelReason == entity.DeclineReason {
			return Message{
				RecipientID: rec.BuyerID,
				RequestID:   rec.ID,
				Kind:        KindDeclined,
				Title:       "Request declined",
				Body:        "The seller declined your swipe request. Try another post.",
			}, true
		}
		return Message{
			RecipientID: rec.BuyerID,
			RequestID:   rec.ID,
			Kind:        KindCancelled,
			Title:       "Request cancelled",
			Body:        "The seller cancelled your swipe request.",
		}, true
	}

	return Message{}, false
}
