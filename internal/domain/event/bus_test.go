package event

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/ignatzorin/swipeshare-backend/internal/domain/entity"
	"github.com/ignatzorin/swipeshare-backend/internal/domain/valueobject"
	"github.com/ignatzorin/swipeshare-backend/internal/logger"
)

type recordingHandler struct {
	mu      sync.Mutex
	types   []string
	accepts string
	err     error
	panics  bool
}

func (h *recordingHandler) Name() string { return "recording" }

func (h *recordingHandler) CanHandle(eventType string) bool {
	return h.accepts == "" || h.accepts == eventType
}

func (h *recordingHandler) Handle(ctx context.Context, e Event) error {
	if h.panics {
		panic("subscriber exploded")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.types = append(h.types, e.Type())
	return h.err
}

func TestBus_DeliversToMatchingHandlers(t *testing.T) {
	logger.Silence()
	bus := NewBus()
	all := &recordingHandler{}
	ratingsOnly := &recordingHandler{accepts: TypeRatingSubmitted}
	failing := &recordingHandler{err: errors.New("delivery failed")}
	bus.Subscribe(all)
	bus.Subscribe(ratingsOnly)
	bus.Subscribe(failing)

	req := &entity.Request{ID: uuid.New(), Status: valueobject.RequestStatusRequested, CreatedAt: time.Now()}
	bus.Publish(context.Background(), NewRequestInserted(req, uuid.New()))
	bus.Wait()

	assert.Equal(t, []string{TypeRequestChanged}, all.types)
	assert.Empty(t, ratingsOnly.types)
	assert.Equal(t, []string{TypeRequestChanged}, failing.types)
}

func TestBus_SurvivesPanickingHandler(t *testing.T) {
	logger.Silence()
	bus := NewBus()
	bus.Subscribe(&recordingHandler{panics: true})
	ok := &recordingHandler{}
	bus.Subscribe(ok)

	bus.Publish(context.Background(), RatingSubmitted{Rating: &entity.Rating{CreatedAt: time.Now()}})

	assert.Eventually(t, func() bool {
		ok.mu.Lock()
		defer ok.mu.Unlock()
		return len(ok.types) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestRequestChange_StatusChanged(t *testing.T) {
	old := &entity.Request{Status: valueobject.RequestStatusPickedUp}
	same := &entity.Request{Status: valueobject.RequestStatusPickedUp}
	done := &entity.Request{Status: valueobject.RequestStatusCompleted}

	assert.False(t, RequestChange{Record: same, OldRecord: old}.StatusChanged())
	assert.True(t, RequestChange{Record: done, OldRecord: old}.StatusChanged())
	assert.True(t, RequestChange{Record: done}.StatusChanged())
}
