package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/swipeshare-backend/internal/domain/valueobject"
	"github.com/ignatzorin/swipeshare-backend/internal/pkg/apperror"
)

type expectedRule struct {
	from    []valueobject.RequestStatus
	callers []valueobject.Party
	to      valueobject.RequestStatus
}

// Таблица переходов записана независимо от valueobject, чтобы тест ловил расхождения.
var expectedTable = map[valueobject.Action]expectedRule{
	valueobject.ActionAccept: {
		from:    []valueobject.RequestStatus{"requested"},
		callers: []valueobject.Party{"seller"},
		to:      "accepted",
	},
	valueobject.ActionDecline: {
		from:    []valueobject.RequestStatus{"requested"},
		callers: []valueobject.Party{"seller"},
		to:      "cancelled",
	},
	valueobject.ActionMarkOrdered: {
		from:    []valueobject.RequestStatus{"accepted"},
		callers: []valueobject.Party{"seller"},
		to:      "ordered",
	},
	valueobject.ActionMarkPickedUp: {
		from:    []valueobject.RequestStatus{"ordered"},
		callers: []valueobject.Party{"buyer"},
		to:      "picked_up",
	},
	valueobject.ActionMarkCompleted: {
		from:    []valueobject.RequestStatus{"picked_up"},
		callers: []valueobject.Party{"buyer", "seller"},
		to:      "picked_up",
	},
	valueobject.ActionCancel: {
		from:    []valueobject.RequestStatus{"requested", "accepted"},
		callers: []valueobject.Party{"buyer", "seller"},
		to:      "cancelled",
	},
	valueobject.ActionOpenDispute: {
		from:    []valueobject.RequestStatus{"ordered", "picked_up", "completed"},
		callers: []valueobject.Party{"buyer", "seller"},
		to:      "disputed",
	},
}

func newTestRequest(status valueobject.RequestStatus, now time.Time) Request {
	completedAt := now.Add(-time.Hour)
	return Request{
		ID:          uuid.New(),
		PostID:      uuid.New(),
		BuyerID:     uuid.New(),
		SellerID:    uuid.New(),
		Status:      status,
		ItemsText:   "Chicken bowl",
		Version:     3,
		CompletedAt: &completedAt,
	}
}

func contains[T comparable](list []T, v T) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func TestApply_TransitionTableConformance(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	for _, status := range valueobject.AllRequestStatuses {
		for _, action := range valueobject.TransitionActions() {
			for _, party := range []valueobject.Party{valueobject.PartyBuyer, valueobject.PartySeller} {
				req := newTestRequest(status, now)
				caller := req.BuyerID
				if party == valueobject.PartySeller {
					caller = req.SellerID
				}

				next, tr, err := req.Apply(Command{
					Action:   action,
					CallerID: caller,
					Now:      now,
					Reason:   "reason",
				})

				exp := expectedTable[action]
				name := string(action) + "/" + string(status) + "/" + string(party)
				switch {
				case !contains(exp.callers, party):
					require.Error(t, err, name)
					assert.True(t, apperror.IsForbidden(err), name)
					assert.Equal(t, status, next.Status, name)
				case !contains(exp.from, status):
					require.Error(t, err, name)
					assert.True(t, apperror.IsInvalidState(err), name)
					assert.Equal(t, status, next.Status, name)
				default:
					require.NoError(t, err, name)
					assert.Equal(t, exp.to, next.Status, name)
					assert.Equal(t, status, tr.From, name)
					assert.Equal(t, req.Version+1, next.Version, name)
					assert.Equal(t, req.Version, tr.ExpectedVersion, name)
				}
			}
		}
	}
}

func TestApply_NonPartyIsForbidden(t *testing.T) {
	req := newTestRequest(valueobject.RequestStatusRequested, time.Now())

	_, _, err := req.Apply(Command{Action: valueobject.ActionAccept, CallerID: uuid.New()})

	assert.ErrorIs(t, err, apperror.ErrNotParty)
}

func TestApply_UnknownAction(t *testing.T) {
	req := newTestRequest(valueobject.RequestStatusRequested, time.Now())

	_, _, err := req.Apply(Command{Action: "teleport", CallerID: req.SellerID})

	assert.True(t, apperror.IsValidation(err))
}

func TestApply_DoesNotMutateReceiver(t *testing.T) {
	req := newTestRequest(valueobject.RequestStatusRequested, time.Now())

	_, _, err := req.Apply(Command{Action: valueobject.ActionAccept, CallerID: req.SellerID})

	require.NoError(t, err)
	assert.Equal(t, valueobject.RequestStatusRequested, req.Status)
	assert.Nil(t, req.AcceptedAt)
}

func TestApply_TwoPhaseCompletion(t *testing.T) {
	now := time.Now()
	req := newTestRequest(valueobject.RequestStatusPickedUp, now)
	req.CompletedAt = nil

	afterBuyer, tr, err := req.Apply(Command{Action: valueobject.ActionMarkCompleted, CallerID: req.BuyerID, Now: now})
	require.NoError(t, err)
	assert.Equal(t, valueobject.RequestStatusPickedUp, afterBuyer.Status)
	assert.True(t, afterBuyer.BuyerCompleted)
	assert.False(t, afterBuyer.SellerCompleted)
	assert.False(t, tr.Completed)
	assert.Nil(t, afterBuyer.CompletedAt)

	_, _, err = afterBuyer.Apply(Command{Action: valueobject.ActionMarkCompleted, CallerID: req.BuyerID, Now: now})
	assert.True(t, apperror.IsInvalidState(err))

	done, tr, err := afterBuyer.Apply(Command{Action: valueobject.ActionMarkCompleted, CallerID: req.SellerID, Now: now})
	require.NoError(t, err)
	assert.Equal(t, valueobject.RequestStatusCompleted, done.Status)
	assert.True(t, done.BuyerCompleted)
	assert.True(t, done.SellerCompleted)
	assert.True(t, tr.Completed)
	require.NotNil(t, done.CompletedAt)
	assert.Equal(t, now, *done.CompletedAt)
}

func TestApply_CancelRequiresReason(t *testing.T) {
	req := newTestRequest(valueobject.RequestStatusAccepted, time.Now())

	_, _, err := req.Apply(Command{Action: valueobject.ActionCancel, CallerID: req.BuyerID, Reason: "   "})
	assert.True(t, apperror.IsValidation(err))

	next, tr, err := req.Apply(Command{Action: valueobject.ActionCancel, CallerID: req.BuyerID, Reason: "changed mind"})
	require.NoError(t, err)
	assert.True(t, tr.ReleasesCapacity)
	require.NotNil(t, next.CancelReason)
	assert.Equal(t, "changed mind", *next.CancelReason)
	require.NotNil(t, next.CancelledBy)
	assert.Equal(t, req.BuyerID, *next.CancelledBy)
}

func TestApply_DeclineRecordsSeller(t *testing.T) {
	req := newTestRequest(valueobject.RequestStatusRequested, time.Now())

	next, tr, err := req.Apply(Command{Action: valueobject.ActionDecline, CallerID: req.SellerID})

	require.NoError(t, err)
	assert.True(t, tr.ReleasesCapacity)
	assert.Equal(t, req.SellerID, *next.CancelledBy)
	assert.Equal(t, DeclineReason, *next.CancelReason)
}

func TestApply_MarkOrderedStoresProof(t *testing.T) {
	req := newTestRequest(valueobject.RequestStatusAccepted, time.Now())

	next, tr, err := req.Apply(Command{
		Action:      valueobject.ActionMarkOrdered,
		CallerID:    req.SellerID,
		ProofPath:   "proofs/abc.jpg",
		OrderIDText: "#4521",
	})

	require.NoError(t, err)
	assert.Equal(t, "proofs/abc.jpg", *next.OrderedProofPath)
	assert.Equal(t, "#4521", *next.OrderIDText)
	assert.Equal(t, "#4521", tr.Metadata["order_id_text"])
	assert.NotNil(t, next.OrderedAt)
}

func TestApply_DisputeWindow(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	req := newTestRequest(valueobject.RequestStatusCompleted, now)

	inside := now.Add(-23 * time.Hour)
	req.CompletedAt = &inside
	_, _, err := req.Apply(Command{Action: valueobject.ActionOpenDispute, CallerID: req.BuyerID, Now: now, Reason: "cold food", DisputeWindow: 24 * time.Hour})
	assert.NoError(t, err)

	outside := now.Add(-25 * time.Hour)
	req.CompletedAt = &outside
	_, _, err = req.Apply(Command{Action: valueobject.ActionOpenDispute, CallerID: req.BuyerID, Now: now, Reason: "cold food", DisputeWindow: 24 * time.Hour})
	assert.True(t, apperror.IsInvalidState(err))
}

func TestApply_DisputeFromPickedUpIgnoresWindow(t *testing.T) {
	now := time.Now()
	req := newTestRequest(valueobject.RequestStatusPickedUp, now)
	req.CompletedAt = nil

	next, _, err := req.Apply(Command{Action: valueobject.ActionOpenDispute, CallerID: req.SellerID, Now: now, Reason: "no show"})

	require.NoError(t, err)
	assert.Equal(t, valueobject.RequestStatusDisputed, next.Status)
}

func TestNewRequest_Validation(t *testing.T) {
	now := time.Now()
	post, err := NewPost(uuid.New(), 2, "Dining Hall A", "", now)
	require.NoError(t, err)

	_, err = NewRequest(post, post.SellerID, "bowl", "", valueobject.Money{}, now)
	assert.True(t, apperror.IsForbidden(err))

	_, err = NewRequest(post, uuid.New(), "  ", "", valueobject.Money{}, now)
	assert.True(t, apperror.IsValidation(err))

	req, err := NewRequest(post, uuid.New(), "bowl", "no onions", valueobject.Money{}, now)
	require.NoError(t, err)
	assert.Equal(t, valueobject.RequestStatusRequested, req.Status)
	assert.Equal(t, post.SellerID, req.SellerID)
	assert.Equal(t, 1, req.Version)
}
