package event

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/swipeshare-backend/internal/goroutine"
	"github.com/ignatzorin/swipeshare-backend/internal/logger"
)

const defaultHandlerTimeout = 10 * time.Second

// Bus рассылает события подписчикам асинхронно. Ошибка подписчика не влияет на переход.
type Bus struct {
	mu       sync.RWMutex
	handlers []Handler
	timeout  time.Duration
	wg       sync.WaitGroup
}

func NewBus() *Bus {
	return &Bus{timeout: defaultHandlerTimeout}
}

func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// Publish не ждёт подписчиков. Контекст запроса не передаётся, чтобы обработка
// не прерывалась после ответа клиенту.
func (b *Bus) Publish(ctx context.Context, e Event) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.handlers))
	for _, h := range b.handlers {
		if h.CanHandle(e.Type()) {
			handlers = append(handlers, h)
		}
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h := h
		b.wg.Add(1)
		goroutine.SafeGoWithContext(context.WithoutCancel(ctx), func(ctx context.Context) {
			defer b.wg.Done()

			ctx, cancel := context.WithTimeout(ctx, b.timeout)
			defer cancel()

			if err := h.Handle(ctx, e); err != nil {
				logger.Log.WithFields(logrus.Fields{
					"subscriber": h.Name(),
					"event":      e.Type(),
					"error":      err.Error(),
				}).Warn("event bus: подписчик вернул ошибку")
			}
		})
	}
}

// Wait дожидается завершения всех запущенных обработчиков.
func (b *Bus) Wait() {
	b.wg.Wait()
}
