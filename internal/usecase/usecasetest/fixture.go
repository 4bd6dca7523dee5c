// Package usecasetest собирает сценарии поверх ledger в памяти для тестов.
package usecasetest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/swipeshare-backend/internal/domain/entity"
	"github.com/ignatzorin/swipeshare-backend/internal/domain/event"
	"github.com/ignatzorin/swipeshare-backend/internal/domain/valueobject"
	"github.com/ignatzorin/swipeshare-backend/internal/infrastructure/memory"
	"github.com/ignatzorin/swipeshare-backend/internal/logger"
	"github.com/ignatzorin/swipeshare-backend/internal/usecase"
	"github.com/ignatzorin/swipeshare-backend/internal/usecase/request"
)

// Recorder запоминает опубликованные события синхронно.
type Recorder struct {
	mu     sync.Mutex
	events []event.Event
}

func (r *Recorder) Publish(ctx context.Context, e event.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *Recorder) Events() []event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]event.Event, len(r.events))
	copy(out, r.events)
	return out
}

type Fixture struct {
	t   *testing.T
	now time.Time

	Ledger      *memory.Ledger
	Events      *Recorder
	Deps        usecase.Deps
	Engine      *request.Engine
	Create      *request.CreateRequestUseCase
	Transitions *request.TransitionUseCase

	Buyer    valueobject.Caller
	Seller   valueobject.Caller
	Stranger valueobject.Caller
	Admin    valueobject.Caller
}

func New(t *testing.T) *Fixture {
	t.Helper()
	logger.Silence()

	f := &Fixture{
		t:        t,
		now:      time.Date(2026, 3, 2, 16, 0, 0, 0, time.UTC),
		Ledger:   memory.NewLedger(),
		Events:   &Recorder{},
		Buyer:    valueobject.Caller{ID: uuid.New(), Role: valueobject.RoleUser},
		Seller:   valueobject.Caller{ID: uuid.New(), Role: valueobject.RoleUser},
		Stranger: valueobject.Caller{ID: uuid.New(), Role: valueobject.RoleUser},
		Admin:    valueobject.Caller{ID: uuid.New(), Role: valueobject.RoleAdmin},
	}
	f.Deps = usecase.Deps{
		Ledger:         f.Ledger,
		Events:         f.Events,
		Now:            func() time.Time { return f.now },
		StorageTimeout: time.Second,
		DisputeWindow:  entity.DefaultDisputeWindow,
	}
	f.Engine = request.NewEngine(f.Deps)
	f.Create = request.NewCreateRequestUseCase(f.Deps)
	f.Transitions = request.NewTransitionUseCase(f.Engine)
	return f
}

func (f *Fixture) Now() time.Time { return f.now }

// Advance сдвигает часы сценариев. Не вызывать параллельно с операциями.
func (f *Fixture) Advance(d time.Duration) { f.now = f.now.Add(d) }

func (f *Fixture) Post(capacity int) *entity.Post {
	f.t.Helper()
	post, err := entity.NewPost(f.Seller.ID, capacity, "North Dining Hall", "", f.now)
	require.NoError(f.t, err)
	require.NoError(f.t, f.Ledger.Posts().Create(context.Background(), post))
	return post
}

func (f *Fixture) Request(post *entity.Post) *entity.Request {
	f.t.Helper()
	req, err := f.Create.Execute(context.Background(), request.CreateRequestInput{
		Caller:    f.Buyer,
		PostID:    post.ID,
		ItemsText: "chicken bowl, no onions",
		EstTotal:  "12.50",
	})
	require.NoError(f.t, err)
	return req
}

// RequestIn создаёт заявку и проводит её по основному пути до нужного статуса.
// Поддерживаются requested, accepted, ordered, picked_up, completed и cancelled.
func (f *Fixture) RequestIn(status valueobject.RequestStatus) *entity.Request {
	f.t.Helper()
	ctx := context.Background()
	req := f.Request(f.Post(2))

	if status == valueobject.RequestStatusCancelled {
		req, err := f.Transitions.Cancel(ctx, f.Buyer, req.ID, "plans changed")
		require.NoError(f.t, err)
		return req
	}

	steps := []struct {
		until  valueobject.RequestStatus
		caller valueobject.Caller
		action valueobject.Action
	}{
		{valueobject.RequestStatusAccepted, f.Seller, valueobject.ActionAccept},
		{valueobject.RequestStatusOrdered, f.Seller, valueobject.ActionMarkOrdered},
		{valueobject.RequestStatusPickedUp, f.Buyer, valueobject.ActionMarkPickedUp},
		{valueobject.RequestStatusCompleted, f.Buyer, valueobject.ActionMarkCompleted},
		{valueobject.RequestStatusCompleted, f.Seller, valueobject.ActionMarkCompleted},
	}

	for _, step := range steps {
		if req.Status == status {
			break
		}
		var err error
		req, err = f.Transitions.Execute(ctx, request.TransitionInput{
			Caller:    step.caller,
			RequestID: req.ID,
			Action:    step.action,
		})
		require.NoError(f.t, err)
	}
	require.Equal(f.t, status, req.Status)
	return req
}

func (f *Fixture) Audit(requestID uuid.UUID) []*entity.AuditEntry {
	f.t.Helper()
	entries, err := f.Ledger.Audit().ListByRequest(context.Background(), requestID)
	require.NoError(f.t, err)
	return entries
}

func (f *Fixture) ReloadPost(id uuid.UUID) *entity.Post {
	f.t.Helper()
	post, err := f.Ledger.Posts().FindByID(context.Background(), id)
	require.NoError(f.t, err)
	return post
}

func (f *Fixture) ReloadRequest(id uuid.UUID) *entity.Request {
	f.t.Helper()
	req, err := f.Ledger.Requests().FindByID(context.Background(), id)
	require.NoError(f.t, err)
	return req
}
