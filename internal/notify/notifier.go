package notify

import (
	"context"
	"errors"
)

// Notifier доставляет уведомление получателю.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// Multi рассылает уведомление через все каналы и собирает ошибки.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, msg Message) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
