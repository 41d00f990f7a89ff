package postgres

import (
	"context"
	"testing"
	"time"

	"mapchain-escrow/internal/core/domain"
	"mapchain-escrow/pkg/money"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewLedgerRepo(mock)
	entry := domain.NewLedgerEntry("req-1", domain.EntryTypeReleaseValuator, "valuator-1", 900, "hold-1", time.Now().UTC())

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO ledger_entries").
		WithArgs(entry.ID, "req-1", domain.EntryTypeReleaseValuator, "valuator-1", money.Amount(900), "hold-1", entry.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	assert.NoError(t, repo.Create(context.Background(), dbTx, entry))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepo_ListByRequest(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewLedgerRepo(mock)
	now := time.Now().UTC()
	hold := domain.NewLedgerEntry("req-1", domain.EntryTypeHold, "client-1", 1000, "hold-1", now)
	refund := domain.NewLedgerEntry("req-1", domain.EntryTypeRefundClient, "client-1", 1000, "hold-1", now)

	rows := pgxmock.NewRows([]string{"id", "request_id", "entry_type", "account", "amount", "hold_ref", "created_at"}).
		AddRow(hold.ID, hold.RequestID, hold.EntryType, hold.Account, hold.Amount, hold.HoldRef, hold.CreatedAt).
		AddRow(refund.ID, refund.RequestID, refund.EntryType, refund.Account, refund.Amount, refund.HoldRef, refund.CreatedAt)

	mock.ExpectQuery("SELECT .+ FROM ledger_entries WHERE request_id").
		WithArgs("req-1").
		WillReturnRows(rows)

	entries, err := repo.ListByRequest(context.Background(), "req-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.EntryTypeHold, entries[0].EntryType)
	assert.Equal(t, domain.EntryTypeRefundClient, entries[1].EntryType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepo_SumByAccount(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewLedgerRepo(mock)

	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(amount\\), 0\\)::BIGINT FROM ledger_entries WHERE entry_type = \\$1 AND account = \\$2").
		WithArgs(domain.EntryTypeReleaseValuator, "valuator-1").
		WillReturnRows(pgxmock.NewRows([]string{"sum"}).AddRow(money.Amount(1800)))

	total, err := repo.SumByAccount(context.Background(), domain.EntryTypeReleaseValuator, "valuator-1")
	require.NoError(t, err)
	assert.Equal(t, money.Amount(1800), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepo_SumByAccount_AllAccounts(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewLedgerRepo(mock)

	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(amount\\), 0\\)::BIGINT FROM ledger_entries WHERE entry_type = \\$1$").
		WithArgs(domain.EntryTypeReleasePlatform).
		WillReturnRows(pgxmock.NewRows([]string{"sum"}).AddRow(money.Amount(0)))

	total, err := repo.SumByAccount(context.Background(), domain.EntryTypeReleasePlatform, "")
	require.NoError(t, err)
	assert.Equal(t, money.Amount(0), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
