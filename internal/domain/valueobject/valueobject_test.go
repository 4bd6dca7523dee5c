package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestStatus_HoldsCapacity(t *testing.T) {
	assert.True(t, RequestStatusRequested.HoldsCapacity())
	assert.True(t, RequestStatusAccepted.HoldsCapacity())
	assert.False(t, RequestStatusOrdered.HoldsCapacity())
	assert.False(t, RequestStatusCancelled.HoldsCapacity())
}

func TestNewRequestStatus(t *testing.T) {
	s, err := NewRequestStatus("picked_up")
	require.NoError(t, err)
	assert.Equal(t, RequestStatusPickedUp, s)

	_, err = NewRequestStatus("shipped")
	assert.Error(t, err)
}

func TestRuleFor_EveryTransitionActionHasRule(t *testing.T) {
	for _, a := range TransitionActions() {
		rule, ok := RuleFor(a)
		require.True(t, ok, a)
		assert.NotEmpty(t, rule.From, a)
		assert.NotEmpty(t, rule.Callers, a)
	}

	_, ok := RuleFor(ActionResolveDispute)
	assert.False(t, ok)
}

func TestNewAction(t *testing.T) {
	a, err := NewAction("mark_ordered")
	require.NoError(t, err)
	assert.Equal(t, ActionMarkOrdered, a)

	_, err = NewAction("teleport")
	assert.Error(t, err)
}

func TestParty_Other(t *testing.T) {
	assert.Equal(t, PartySeller, PartyBuyer.Other())
	assert.Equal(t, PartyBuyer, PartySeller.Other())
	assert.Equal(t, PartyNone, PartyNone.Other())
}

func TestParseMoney(t *testing.T) {
	m, err := ParseMoney("12.345")
	require.NoError(t, err)
	assert.Equal(t, "12.35", m.String())
	assert.Equal(t, "USD", m.Currency)

	zero, err := ParseMoney("")
	require.NoError(t, err)
	assert.True(t, zero.Amount.IsZero())

	_, err = ParseMoney("-1")
	assert.Error(t, err)

	_, err = ParseMoney("abc")
	assert.Error(t, err)

	_, err = NewMoney(decimal.NewFromInt(5000), "USD")
	assert.Error(t, err)
}
