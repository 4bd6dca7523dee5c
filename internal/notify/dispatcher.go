package notify

import (
	"context"
	"time"

	"github.com/ignatzorin/swipeshare-backend/internal/domain/event"
	"github.com/ignatzorin/swipeshare-backend/internal/logger"
)

// Verify interface compliance
var _ event.Handler = (*Dispatcher)(nil)

// Dispatcher - подписчик шины: сопоставляет изменения заявок с уведомлениями.
type Dispatcher struct {
	notifier Notifier
	loc      *time.Location
	now      func() time.Time
}

func NewDispatcher(notifier Notifier, loc *time.Location) *Dispatcher {
	if loc == nil {
		loc = time.UTC
	}
	return &Dispatcher{notifier: notifier, loc: loc, now: time.Now}
}

func (d *Dispatcher) Name() string { return "notification-dispatcher" }

func (d *Dispatcher) CanHandle(eventType string) bool {
	return eventType == event.TypeRequestChanged
}

func (d *Dispatcher) Handle(ctx context.Context, e event.Event) error {
	change, ok := e.(event.RequestChange)
	if !ok {
		return nil
	}
	_, err := d.Dispatch(ctx, change)
	return err
}

// Dispatch доставляет уведомление по изменению. Используется и вебхуком.
// Время ожидания считается от момента перехода, а не от момента доставки.
func (d *Dispatcher) Dispatch(ctx context.Context, change event.RequestChange) (bool, error) {
	at := change.At
	if at.IsZero() {
		at = d.now()
	}

	msg, ok := Map(change, at, d.loc)
	if !ok {
		return false, nil
	}

	if err := d.notifier.Notify(ctx, msg); err != nil {
		return false, err
	}

	logger.Log.WithField("request_id", msg.RequestID.String()).
		WithField("recipient_id", msg.RecipientID.String()).
		WithField("kind", msg.Kind).
		Debug("уведомление отправлено")
	return true, nil
}
