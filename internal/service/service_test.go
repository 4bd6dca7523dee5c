package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/swipeshare-backend/internal/domain/entity"
	"github.com/ignatzorin/swipeshare-backend/internal/domain/event"
	"github.com/ignatzorin/swipeshare-backend/internal/domain/valueobject"
	"github.com/ignatzorin/swipeshare-backend/internal/infrastructure/memory"
	"github.com/ignatzorin/swipeshare-backend/internal/notify"
	"github.com/ignatzorin/swipeshare-backend/internal/pkg/apperror"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("0123456789abcdef0123456789abcdef", time.Hour)
	userID := uuid.New()

	token, exp, err := m.GenerateAccess(userID, valueobject.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	caller, err := m.ParseAccess(token)
	require.NoError(t, err)
	assert.Equal(t, userID, caller.ID)
	assert.True(t, caller.IsAdmin())
}

func TestTokenManager_Rejects(t *testing.T) {
	m := NewTokenManager("0123456789abcdef0123456789abcdef", time.Hour)
	other := NewTokenManager("ffffffffffffffffffffffffffffffff", time.Hour)
	expired := NewTokenManager("0123456789abcdef0123456789abcdef", -time.Minute)

	foreign, _, err := other.GenerateAccess(uuid.New(), valueobject.RoleUser)
	require.NoError(t, err)
	stale, _, err := expired.GenerateAccess(uuid.New(), valueobject.RoleUser)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":     "not-a-token",
		"wrong key":   foreign,
		"expired":     stale,
		"empty token": "",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := m.ParseAccess(token)
			assert.Error(t, err)
		})
	}
}

func TestTokenManager_UnknownRoleIsUser(t *testing.T) {
	m := NewTokenManager("0123456789abcdef0123456789abcdef", time.Hour)
	token, _, err := m.GenerateAccess(uuid.New(), valueobject.Role("superuser"))
	require.NoError(t, err)

	caller, err := m.ParseAccess(token)
	require.NoError(t, err)
	assert.Equal(t, valueobject.RoleUser, caller.Role)
}

func TestCacheService_StatsAndExpiry(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cs := NewCacheService(ctx, time.Minute)
	now := time.Date(2026, 3, 2, 16, 0, 0, 0, time.UTC)
	cs.now = func() time.Time { return now }

	userID := uuid.New()
	require.True(t, cs.SetStats(&entity.ProfileStats{UserID: userID, RatingAvg: 4.5, RatingCount: 2}, 0))

	got, _, ok := cs.GetStats(userID)
	require.True(t, ok)
	assert.InDelta(t, 4.5, got.RatingAvg, 0.0001)

	// копия не меняет кэш
	got.RatingAvg = 1
	again, _, _ := cs.GetStats(userID)
	assert.InDelta(t, 4.5, again.RatingAvg, 0.0001)

	now = now.Add(2 * time.Minute)
	_, _, ok = cs.GetStats(userID)
	assert.False(t, ok)
}

func TestCacheService_StaleReadIsNotCached(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cs := NewCacheService(ctx, time.Minute)
	userID := uuid.New()

	_, gen, ok := cs.GetStats(userID)
	require.False(t, ok)

	// статистику прочитали из хранилища, но до записи в кэш её сбросили
	cs.InvalidateUserCache(userID)
	assert.False(t, cs.SetStats(&entity.ProfileStats{UserID: userID, CompletedCount: 0}, gen))
	_, _, ok = cs.GetStats(userID)
	assert.False(t, ok)

	_, fresh, _ := cs.GetStats(userID)
	assert.True(t, cs.SetStats(&entity.ProfileStats{UserID: userID, CompletedCount: 1}, fresh))
	got, _, ok := cs.GetStats(userID)
	require.True(t, ok)
	assert.Equal(t, 1, got.CompletedCount)
}

func TestCacheService_InvalidatesOnEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cs := NewCacheService(ctx, time.Minute)

	buyer, seller := uuid.New(), uuid.New()
	seed := func() {
		for _, id := range []uuid.UUID{buyer, seller} {
			_, gen, _ := cs.GetStats(id)
			require.True(t, cs.SetStats(&entity.ProfileStats{UserID: id}, gen))
		}
	}
	cached := func(id uuid.UUID) bool {
		_, _, ok := cs.GetStats(id)
		return ok
	}

	old := &entity.Request{ID: uuid.New(), BuyerID: buyer, SellerID: seller, Status: valueobject.RequestStatusPickedUp}
	done := *old
	done.Status = valueobject.RequestStatusCompleted

	seed()
	require.True(t, cs.CanHandle(event.TypeRequestChanged))
	require.NoError(t, cs.Handle(ctx, event.NewRequestUpdated(old, old, valueobject.ActionMarkCompleted, buyer)))
	assert.True(t, cached(buyer), "статус не менялся")

	require.NoError(t, cs.Handle(ctx, event.NewRequestUpdated(old, &done, valueobject.ActionMarkCompleted, seller)))
	assert.False(t, cached(buyer))
	assert.False(t, cached(seller))

	seed()
	require.NoError(t, cs.Handle(ctx, event.RatingSubmitted{Rating: &entity.Rating{RaterID: buyer, RateeID: seller}}))
	assert.True(t, cached(buyer))
	assert.False(t, cached(seller))

	seed()
	require.NoError(t, cs.Handle(ctx, event.DisputeResolved{Dispute: &entity.Dispute{}, Request: &done}))
	assert.False(t, cached(buyer))
	assert.False(t, cached(seller))
}

func TestNotificationService_Inbox(t *testing.T) {
	ctx := context.Background()
	svc := NewNotificationService(memory.NewNotificationStore())

	owner, stranger := uuid.New(), uuid.New()
	msg := notify.Message{RecipientID: owner, RequestID: uuid.New(), Kind: notify.KindAccepted, Title: "Request accepted"}
	require.NoError(t, svc.Notify(ctx, msg))
	require.NoError(t, svc.Notify(ctx, msg))

	items, unread, err := svc.ListNotifications(ctx, owner, 0, 0, false)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 2, unread)

	var payload notify.Message
	require.NoError(t, json.Unmarshal(items[0].Payload, &payload))
	assert.Equal(t, notify.KindAccepted, payload.Kind)

	err = svc.MarkAsRead(ctx, items[0].ID, stranger)
	assert.True(t, apperror.IsForbidden(err))

	require.NoError(t, svc.MarkAsRead(ctx, items[0].ID, owner))
	_, unread, err = svc.ListNotifications(ctx, owner, 10, 0, false)
	require.NoError(t, err)
	assert.Equal(t, 1, unread)

	require.NoError(t, svc.MarkAllAsRead(ctx, owner))
	items, unread, err = svc.ListNotifications(ctx, owner, 10, 0, true)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, unread)

	_, _, err = svc.ListNotifications(ctx, stranger, 10, 0, false)
	require.NoError(t, err)
	assert.True(t, apperror.IsNotFound(svc.MarkAsRead(ctx, uuid.New(), owner)))
}
