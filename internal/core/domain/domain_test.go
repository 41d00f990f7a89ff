package domain

import (
	"errors"
	"testing"
	"time"

	"mapchain-escrow/pkg/money"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newCreated() *Escrow {
	return NewEscrow("req-1", "client-1", "valuator-1", 1000, "USD", false, now)
}

func TestEscrow_IsTerminal(t *testing.T) {
	tests := []struct {
		status EscrowStatus
		want   bool
	}{
		{EscrowStatusCreated, false},
		{EscrowStatusAccepted, false},
		{EscrowStatusDisputed, false},
		{EscrowStatusCompleted, true},
		{EscrowStatusCancelled, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			e := &Escrow{Status: tt.status}
			assert.Equal(t, tt.want, e.IsTerminal())
		})
	}
}

func TestEscrow_Allows(t *testing.T) {
	tests := []struct {
		status EscrowStatus
		op     Operation
		want   bool
	}{
		{EscrowStatusCreated, OperationAccept, true},
		{EscrowStatusCreated, OperationCancel, true},
		{EscrowStatusCreated, OperationComplete, false},
		{EscrowStatusCreated, OperationDispute, false},
		{EscrowStatusAccepted, OperationAccept, false},
		{EscrowStatusAccepted, OperationComplete, true},
		{EscrowStatusAccepted, OperationCancel, true},
		{EscrowStatusAccepted, OperationDispute, true},
		{EscrowStatusDisputed, OperationResolve, true},
		{EscrowStatusDisputed, OperationCancel, false},
		{EscrowStatusDisputed, OperationComplete, false},
		{EscrowStatusCompleted, OperationCancel, false},
		{EscrowStatusCancelled, OperationAccept, false},
		{EscrowStatusCancelled, OperationResolve, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status)+"/"+string(tt.op), func(t *testing.T) {
			e := &Escrow{Status: tt.status}
			assert.Equal(t, tt.want, e.Allows(tt.op))
		})
	}
}

func TestEscrow_HappyPath(t *testing.T) {
	e := newCreated()
	require.NoError(t, e.Accept(now))
	assert.Equal(t, EscrowStatusAccepted, e.Status)
	assert.NotNil(t, e.AcceptedAt)

	require.NoError(t, e.Complete(900, 100, now))
	assert.Equal(t, EscrowStatusCompleted, e.Status)
	assert.Equal(t, money.Amount(900), *e.ValuatorBalance)
	assert.Equal(t, money.Amount(100), *e.PlatformBalance)
	assert.Equal(t, int64(3), e.Version)

	err := e.Cancel("late", "client-1", now)
	assert.True(t, errors.Is(err, ErrInvalidTransition))
	assert.Equal(t, EscrowStatusCompleted, e.Status)
}

func TestEscrow_Cancel_RefundsFullAmount(t *testing.T) {
	e := newCreated()
	require.NoError(t, e.Cancel("changed mind", "client-1", now))

	assert.Equal(t, EscrowStatusCancelled, e.Status)
	assert.Equal(t, money.Amount(1000), *e.ClientRefund)
	assert.Equal(t, "changed mind", *e.CancelReason)
	assert.Nil(t, e.ValuatorBalance)
}

func TestEscrow_Resolve(t *testing.T) {
	e := newCreated()
	require.NoError(t, e.Accept(now))
	require.NoError(t, e.Dispute("poor report", "client-1", now))

	require.NoError(t, e.Resolve(400, 500, "arbiter-1", now))
	assert.Equal(t, EscrowStatusCompleted, e.Status)
	assert.Equal(t, money.Amount(400), *e.ClientRefund)
	assert.Equal(t, money.Amount(500), *e.ValuatorBalance)
	assert.Equal(t, money.Amount(100), *e.PlatformBalance)
	assert.Equal(t, "arbiter-1", *e.ResolvedBy)
}

func TestEscrow_Residual(t *testing.T) {
	e := &Escrow{Amount: 1000}

	r, err := e.Residual(1000, 0)
	require.NoError(t, err)
	assert.Equal(t, money.Amount(0), r)

	_, err = e.Residual(600, 401)
	assert.True(t, errors.Is(err, ErrSplitExceedsAmount))

	_, err = e.Residual(-1, 0)
	assert.True(t, errors.Is(err, ErrSplitExceedsAmount))
}

func TestEscrow_ResolveRejectsSplitWithoutMutation(t *testing.T) {
	e := newCreated()
	require.NoError(t, e.Accept(now))
	require.NoError(t, e.Dispute("x", "valuator-1", now))
	before := *e.Clone()

	err := e.Resolve(800, 300, "arbiter-1", now)
	require.Error(t, err)
	assert.Equal(t, before, *e)
}

func TestEscrow_CloneIsDeep(t *testing.T) {
	e := newCreated()
	require.NoError(t, e.Cancel("r", "client-1", now))

	c := e.Clone()
	*c.ClientRefund = 1
	*c.CancelReason = "changed"
	assert.Equal(t, money.Amount(1000), *e.ClientRefund)
	assert.Equal(t, "r", *e.CancelReason)
}

func TestInstructionKey(t *testing.T) {
	assert.Equal(t, "req-1:COMPLETE:RELEASE_PLATFORM", InstructionKey("req-1", OperationComplete, EntryTypeReleasePlatform))
	assert.Equal(t, "req-1:CREATE:HOLD", InstructionKey("req-1", CreateOperation, EntryTypeHold))
}

func TestActor(t *testing.T) {
	a := Actor{ID: "u1", Roles: []Role{RoleArbiter}}
	assert.True(t, a.HasRole(RoleArbiter))
	assert.False(t, a.IsSystem())
	assert.True(t, SystemActor().IsSystem())
	assert.False(t, SystemActor().HasRole(RoleArbiter))
}

func TestNewEscrowEvent_Snapshots(t *testing.T) {
	e := newCreated()
	ev := NewEscrowEvent(EventEscrowCreated, e, "client-1", now)
	require.NoError(t, e.Accept(now))

	assert.Equal(t, EscrowStatusCreated, ev.Escrow.Status)
	assert.Equal(t, "req-1", ev.RequestID)
}
