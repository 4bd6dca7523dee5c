package notify

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/swipeshare-backend/internal/domain/entity"
	"github.com/ignatzorin/swipeshare-backend/internal/domain/event"
	"github.com/ignatzorin/swipeshare-backend/internal/domain/valueobject"
)

func newYork(t *testing.T) *time.Location {
	t.Helper()
	loc, err := LoadLocation("")
	require.NoError(t, err)
	return loc
}

func testRequest(status valueobject.RequestStatus) *entity.Request {
	return &entity.Request{
		ID:        uuid.New(),
		PostID:    uuid.New(),
		BuyerID:   uuid.New(),
		SellerID:  uuid.New(),
		Status:    status,
		ItemsText: "burrito bowl",
	}
}

func updated(old *entity.Request, status valueobject.RequestStatus) event.RequestChange {
	next := *old
	next.Status = status
	return event.RequestChange{
		Change:    event.ChangeUpdate,
		Table:     event.TableRequests,
		Record:    &next,
		OldRecord: old,
	}
}

func TestEstimatedWait(t *testing.T) {
	tests := []struct {
		hour int
		want int
	}{
		{hour: 0, want: 3},
		{hour: 6, want: 3},
		{hour: 7, want: 5},
		{hour: 9, want: 5},
		{hour: 10, want: 10},
		{hour: 12, want: 10},
		{hour: 13, want: 5},
		{hour: 16, want: 5},
		{hour: 17, want: 3},
		{hour: 23, want: 3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, EstimatedWait(tt.hour), "hour %d", tt.hour)
	}
}

func TestMap_OrderedUsesCampusHour(t *testing.T) {
	loc := newYork(t)
	base := testRequest(valueobject.RequestStatusAccepted)

	tests := []struct {
		name     string
		now      time.Time
		wantWait int
	}{
		// 15:00 UTC в марте = 11:00 EDT
		{name: "lunch peak", now: time.Date(2026, 3, 20, 15, 0, 0, 0, time.UTC), wantWait: 10},
		{name: "morning", now: time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC), wantWait: 5},
		{name: "evening", now: time.Date(2026, 3, 21, 0, 0, 0, 0, time.UTC), wantWait: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, ok := Map(updated(base, valueobject.RequestStatusOrdered), tt.now, loc)
			require.True(t, ok)
			assert.Equal(t, base.BuyerID, msg.RecipientID)
			assert.Equal(t, KindOrdered, msg.Kind)
			assert.Equal(t, tt.wantWait, msg.WaitMinutes)
			assert.Contains(t, msg.Body, "minutes")
		})
	}
}

func TestMap_Recipients(t *testing.T) {
	now := time.Date(2026, 3, 20, 15, 0, 0, 0, time.UTC)
	loc := newYork(t)

	t.Run("insert goes to seller", func(t *testing.T) {
		req := testRequest(valueobject.RequestStatusRequested)
		msg, ok := Map(event.NewRequestInserted(req, req.BuyerID), now, loc)
		require.True(t, ok)
		assert.Equal(t, req.SellerID, msg.RecipientID)
		assert.Equal(t, KindNewRequest, msg.Kind)
		assert.Contains(t, msg.Body, "burrito bowl")
	})

	t.Run("accepted goes to buyer", func(t *testing.T) {
		req := testRequest(valueobject.RequestStatusRequested)
		msg, ok := Map(updated(req, valueobject.RequestStatusAccepted), now, loc)
		require.True(t, ok)
		assert.Equal(t, req.BuyerID, msg.RecipientID)
		assert.Equal(t, KindAccepted, msg.Kind)
	})

	t.Run("picked up goes to buyer", func(t *testing.T) {
		req := testRequest(valueobject.RequestStatusOrdered)
		msg, ok := Map(updated(req, valueobject.RequestStatusPickedUp), now, loc)
		require.True(t, ok)
		assert.Equal(t, req.BuyerID, msg.RecipientID)
		assert.Equal(t, KindPickedUp, msg.Kind)
	})
}

func TestMap_Cancelled(t *testing.T) {
	now := time.Date(2026, 3, 20, 15, 0, 0, 0, time.UTC)
	loc := newYork(t)

	cancelled := func(by func(r *entity.Request) uuid.UUID, reason string) (*entity.Request, event.RequestChange) {
		req := testRequest(valueobject.RequestStatusAccepted)
		change := updated(req, valueobject.RequestStatusCancelled)
		id := by(req)
		change.Record.CancelledBy = &id
		change.Record.CancelReason = &reason
		return req, change
	}

	t.Run("buyer cancel notifies seller", func(t *testing.T) {
		req, change := cancelled(func(r *entity.Request) uuid.UUID { return r.BuyerID }, "changed my mind")
		msg, ok := Map(change, now, loc)
		require.True(t, ok)
		assert.Equal(t, req.SellerID, msg.RecipientID)
		assert.Equal(t, KindCancelled, msg.Kind)
		assert.Contains(t, msg.Body, "buyer")
	})

	t.Run("seller cancel notifies buyer", func(t *testing.T) {
		req, change := cancelled(func(r *entity.Request) uuid.UUID { return r.SellerID }, "line too long")
		msg, ok := Map(change, now, loc)
		require.True(t, ok)
		assert.Equal(t, req.BuyerID, msg.RecipientID)
		assert.Equal(t, KindCancelled, msg.Kind)
		assert.Contains(t, msg.Body, "seller cancelled")
	})

	t.Run("decline uses declined wording", func(t *testing.T) {
		req, change := cancelled(func(r *entity.Request) uuid.UUID { return r.SellerID }, entity.DeclineReason)
		msg, ok := Map(change, now, loc)
		require.True(t, ok)
		assert.Equal(t, req.BuyerID, msg.RecipientID)
		assert.Equal(t, KindDeclined, msg.Kind)
		assert.Contains(t, msg.Body, "declined")
	})

	t.Run("unknown canceller is skipped", func(t *testing.T) {
		req := testRequest(valueobject.RequestStatusAccepted)
		_, ok := Map(updated(req, valueobject.RequestStatusCancelled), now, loc)
		assert.False(t, ok)
	})
}

func TestMap_NoNotification(t *testing.T) {
	now := time.Date(2026, 3, 20, 15, 0, 0, 0, time.UTC)
	loc := newYork(t)
	req := testRequest(valueobject.RequestStatusPickedUp)

	sameStatus := updated(req, valueobject.RequestStatusPickedUp)
	sameStatus.Record.BuyerCompleted = true

	otherTable := updated(req, valueobject.RequestStatusCompleted)
	otherTable.Table = "posts"

	deleted := updated(req, valueobject.RequestStatusCancelled)
	deleted.Change = event.ChangeDelete

	insertNotRequested := event.NewRequestInserted(testRequest(valueobject.RequestStatusAccepted), uuid.New())

	cases := map[string]event.RequestChange{
		"completed":            updated(req, valueobject.RequestStatusCompleted),
		"disputed":             updated(req, valueobject.RequestStatusDisputed),
		"status unchanged":     sameStatus,
		"other table":          otherTable,
		"delete":               deleted,
		"insert not requested": insertNotRequested,
		"empty record":         {Change: event.ChangeUpdate, Table: event.TableRequests},
	}

	for name, change := range cases {
		t.Run(name, func(t *testing.T) {
			_, ok := Map(change, now, loc)
			assert.False(t, ok)
		})
	}
}
