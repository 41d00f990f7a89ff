package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"mapchain-escrow/internal/core/domain"
	"mapchain-escrow/internal/core/ports"
	"mapchain-escrow/pkg/money"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func newTestEscrow() *domain.Escrow {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return domain.NewEscrow("req-1", "client-1", "valuator-1", money.Amount(1000), "USD", true, now)
}

func escrowColumnNames() []string {
	return []string{"request_id", "client_id", "valuator_id", "amount", "currency", "is_urgent", "status", "hold_ref",
		"valuator_balance", "platform_balance", "client_refund", "dispute_reason", "disputed_by",
		"cancel_reason", "cancelled_by", "resolved_by", "version", "created_at", "updated_at",
		"accepted_at", "completed_at", "cancelled_at"}
}

// anyArgs matches n query arguments of any value.
func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func escrowRow(e *domain.Escrow) *pgxmock.Rows {
	return pgxmock.NewRows(escrowColumnNames()).AddRow(
		e.RequestID, e.ClientID, e.ValuatorID, e.Amount, e.Currency, e.IsUrgent, e.Status, e.HoldRef,
		e.ValuatorBalance, e.PlatformBalance, e.ClientRefund, e.DisputeReason, e.DisputedBy,
		e.CancelReason, e.CancelledBy, e.ResolvedBy, e.Version, e.CreatedAt, e.UpdatedAt,
		e.AcceptedAt, e.CompletedAt, e.CancelledAt,
	)
}

func TestEscrowRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewEscrowRepo(mock)
	e := newTestEscrow()
	e.HoldRef = "hold-1"

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO escrows").
		WithArgs(
			e.RequestID, e.ClientID, e.ValuatorID, e.Amount, e.Currency, e.IsUrgent, e.Status, e.HoldRef,
			e.ValuatorBalance, e.PlatformBalance, e.ClientRefund, e.DisputeReason, e.DisputedBy,
			e.CancelReason, e.CancelledBy, e.ResolvedBy, e.Version, e.CreatedAt, e.UpdatedAt,
			e.AcceptedAt, e.CompletedAt, e.CancelledAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Create(context.Background(), dbTx, e)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEscrowRepo_Create_Duplicate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewEscrowRepo(mock)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO escrows").
		WithArgs(anyArgs(len(escrowColumnNames()))...).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value"})

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Create(context.Background(), dbTx, newTestEscrow())
	assert.True(t, errors.Is(err, domain.ErrEscrowExists), "got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEscrowRepo_Create_OtherError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewEscrowRepo(mock)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO escrows").
		WithArgs(anyArgs(len(escrowColumnNames()))...).
		WillReturnError(&pgconn.PgError{Code: "23514", Message: "check constraint"})

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Create(context.Background(), dbTx, newTestEscrow())
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrEscrowExists))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEscrowRepo_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewEscrowRepo(mock)
	e := newTestEscrow()
	e.ValuatorBalance = money.Amount(900).Ptr()
	e.PlatformBalance = money.Amount(100).Ptr()
	e.Status = domain.EscrowStatusCompleted

	mock.ExpectQuery("SELECT .+ FROM escrows WHERE request_id").
		WithArgs("req-1").
		WillReturnRows(escrowRow(e))

	result, err := repo.GetByID(context.Background(), "req-1")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, e.Amount, result.Amount)
	assert.Equal(t, domain.EscrowStatusCompleted, result.Status)
	assert.Equal(t, money.Amount(900), *result.ValuatorBalance)
	assert.True(t, result.IsUrgent)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEscrowRepo_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewEscrowRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM escrows WHERE request_id").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(escrowColumnNames()))

	result, err := repo.GetByID(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEscrowRepo_GetByIDForUpdate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewEscrowRepo(mock)
	e := newTestEscrow()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM escrows WHERE request_id = \\$1 FOR UPDATE").
		WithArgs("req-1").
		WillReturnRows(escrowRow(e))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	result, err := repo.GetByIDForUpdate(context.Background(), dbTx, "req-1")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "client-1", result.ClientID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEscrowRepo_Update(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewEscrowRepo(mock)
	e := newTestEscrow()
	require.NoError(t, e.Cancel("changed mind", "client-1", e.CreatedAt))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE escrows SET").
		WithArgs(
			e.Status, e.ValuatorBalance, e.PlatformBalance, e.ClientRefund,
			e.DisputeReason, e.DisputedBy, e.CancelReason, e.CancelledBy, e.ResolvedBy,
			e.Version, e.UpdatedAt, e.AcceptedAt, e.CompletedAt, e.CancelledAt,
			e.RequestID, int64(1),
		).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	assert.NoError(t, repo.Update(context.Background(), dbTx, e))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEscrowRepo_Update_StaleVersion(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewEscrowRepo(mock)
	e := newTestEscrow()
	e.Version = 3

	mock.ExpectBegin()
	args := anyArgs(16)
	args[14], args[15] = e.RequestID, int64(2)
	mock.ExpectExec("UPDATE escrows SET").
		WithArgs(args...).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Update(context.Background(), dbTx, e)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "changed concurrently")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEscrowRepo_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewEscrowRepo(mock)
	e := newTestEscrow()
	status := domain.EscrowStatusCreated

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM escrows WHERE client_id = \\$1 AND status = \\$2").
		WithArgs("client-1", status).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectQuery("SELECT .+ FROM escrows WHERE client_id = \\$1 AND status = \\$2 ORDER BY created_at DESC").
		WithArgs("client-1", status, 20, 0).
		WillReturnRows(escrowRow(e))

	items, total, err := repo.List(context.Background(), ports.EscrowListParams{
		ClientID: "client-1", Status: &status, Page: 1, PageSize: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "req-1", items[0].RequestID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEscrowRepo_ListStale(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewEscrowRepo(mock)
	e := newTestEscrow()
	cutoff := time.Now().UTC()

	mock.ExpectQuery("SELECT .+ FROM escrows\\s+WHERE status = \\$1 AND created_at < \\$2").
		WithArgs(domain.EscrowStatusCreated, cutoff, 50).
		WillReturnRows(escrowRow(e))

	items, err := repo.ListStale(context.Background(), cutoff, 50)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
