package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/swipeshare-backend/internal/domain/event"
	"github.com/ignatzorin/swipeshare-backend/internal/domain/valueobject"
	"github.com/ignatzorin/swipeshare-backend/internal/logger"
	"github.com/ignatzorin/swipeshare-backend/internal/pkg/apperror"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, msg Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func TestDispatcher_Dispatch(t *testing.T) {
	logger.Silence()

	req := testRequest(valueobject.RequestStatusRequested)
	change := updated(req, valueobject.RequestStatusAccepted)

	n := new(mockNotifier)
	n.On("Notify", mock.Anything, mock.MatchedBy(func(msg Message) bool {
		return msg.RecipientID == req.BuyerID && msg.Kind == KindAccepted
	})).Return(nil).Once()

	d := NewDispatcher(n, time.UTC)
	assert.True(t, d.CanHandle(event.TypeRequestChanged))
	assert.False(t, d.CanHandle(event.TypeRatingSubmitted))

	sent, err := d.Dispatch(context.Background(), change)
	require.NoError(t, err)
	assert.True(t, sent)
	n.AssertExpectations(t)
}

func TestDispatcher_WaitUsesTransitionTime(t *testing.T) {
	logger.Silence()

	base := testRequest(valueobject.RequestStatusAccepted)
	lunch := time.Date(2026, 3, 20, 15, 0, 0, 0, time.UTC) // 11:00 EDT

	n := new(mockNotifier)
	n.On("Notify", mock.Anything, mock.Anything).Return(nil)

	d := NewDispatcher(n, newYork(t))
	d.now = func() time.Time { return lunch.Add(9 * time.Hour) }

	late := updated(base, valueobject.RequestStatusOrdered)
	late.At = lunch
	sent, err := d.Dispatch(context.Background(), late)
	require.NoError(t, err)
	require.True(t, sent)

	// без времени перехода берутся текущие часы
	_, err = d.Dispatch(context.Background(), updated(base, valueobject.RequestStatusOrdered))
	require.NoError(t, err)

	require.Len(t, n.Calls, 2)
	assert.Equal(t, 10, n.Calls[0].Arguments.Get(1).(Message).WaitMinutes)
	assert.Equal(t, 3, n.Calls[1].Arguments.Get(1).(Message).WaitMinutes)
}

func TestDispatcher_SkipsUnmappedChanges(t *testing.T) {
	n := new(mockNotifier)
	d := NewDispatcher(n, nil)

	req := testRequest(valueobject.RequestStatusPickedUp)
	sent, err := d.Dispatch(context.Background(), updated(req, valueobject.RequestStatusCompleted))
	require.NoError(t, err)
	assert.False(t, sent)
	n.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)

	// чужие события игнорируются
	require.NoError(t, d.Handle(context.Background(), event.RatingSubmitted{}))
}

func TestMulti_JoinsErrors(t *testing.T) {
	ok := new(mockNotifier)
	ok.On("Notify", mock.Anything, mock.Anything).Return(nil)
	bad := new(mockNotifier)
	bad.On("Notify", mock.Anything, mock.Anything).Return(errors.New("boom"))

	err := Multi{ok, nil, bad}.Notify(context.Background(), Message{Kind: KindAccepted})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	ok.AssertNumberOfCalls(t, "Notify", 1)

	assert.NoError(t, Multi{ok}.Notify(context.Background(), Message{}))
}

func TestPushGateway_Notify(t *testing.T) {
	var got pushPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, pushPath, r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	req := testRequest(valueobject.RequestStatusAccepted)
	msg := Message{RecipientID: req.BuyerID, RequestID: req.ID, Kind: KindOrdered, Title: "Order placed", Body: "soon"}

	gw := NewPushGateway(srv.URL, "secret", time.Second)
	require.NoError(t, gw.Notify(context.Background(), msg))

	assert.Equal(t, req.BuyerID.String(), got.UserID)
	assert.Equal(t, "Order placed", got.Title)
	assert.Equal(t, KindOrdered, got.Data["kind"])
	assert.Equal(t, req.ID.String(), got.Data["request_id"])
}

func TestPushGateway_ServerErrorIsTransient(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	gw := NewPushGateway(srv.URL, "", time.Second)
	err := gw.Notify(context.Background(), Message{})
	require.Error(t, err)
	assert.True(t, apperror.IsTransient(err))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestPushGateway_ClientErrorIsNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	err := NewPushGateway(srv.URL, "", time.Second).Notify(context.Background(), Message{})
	require.Error(t, err)
	assert.False(t, apperror.IsTransient(err))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
