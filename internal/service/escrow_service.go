package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mapchain-escrow/internal/core/domain"
	"mapchain-escrow/internal/core/ports"
	"mapchain-escrow/pkg/apperror"
	"mapchain-escrow/pkg/money"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

const (
	outcomeSuccess = "success"
	outcomeError   = "error"

	compensateTimeout = 10 * time.Second
)

// EscrowSettings carries the fee policy and accounts used on settlement.
type EscrowSettings struct {
	PlatformFeeBPS  int64
	PlatformAccount string
	Currency        string
}

// EscrowServiceImpl implements ports.EscrowService.
type EscrowServiceImpl struct {
	escrowRepo ports.EscrowRepository
	ledgerRepo ports.LedgerRepository
	custodian  ports.PaymentCustodian
	roles      ports.RoleAuthority
	events     ports.EventPublisher
	metrics    ports.MetricsRecorder
	transactor ports.DBTransactor
	settings   EscrowSettings
	locks      *keyLock
	log        zerolog.Logger
}

// NewEscrowService creates a new EscrowServiceImpl. events and metrics may be nil.
func NewEscrowService(
	escrowRepo ports.EscrowRepository,
	ledgerRepo ports.LedgerRepository,
	custodian ports.PaymentCustodian,
	roles ports.RoleAuthority,
	events ports.EventPublisher,
	metrics ports.MetricsRecorder,
	transactor ports.DBTransactor,
	settings EscrowSettings,
	log zerolog.Logger,
) *EscrowServiceImpl {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &EscrowServiceImpl{
		escrowRepo: escrowRepo,
		ledgerRepo: ledgerRepo,
		custodian:  custodian,
		roles:      roles,
		events:     events,
		metrics:    metrics,
		transactor: transactor,
		settings:   settings,
		locks:      newKeyLock(),
		log:        log,
	}
}

// CreateEscrow opens a record and instructs the custodian to hold the funds.
// The record is only committed once the hold succeeded.
func (s *EscrowServiceImpl) CreateEscrow(ctx context.Context, actor domain.Actor, req ports.CreateEscrowRequest) (*domain.Escrow, error) {
	start := time.Now()
	escrow, err := s.createEscrow(ctx, actor, req)
	s.observe(domain.CreateOperation, start, err)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, domain.EventEscrowCreated, escrow, actor.ID)
	s.log.Info().
		Str("request_id", escrow.RequestID).
		Str("client_id", escrow.ClientID).
		Str("valuator_id", escrow.ValuatorID).
		Int64("amount", escrow.Amount.Int64()).
		Bool("is_urgent", escrow.IsUrgent).
		Msg("escrow created")
	return escrow, nil
}

func (s *EscrowServiceImpl) createEscrow(ctx context.Context, actor domain.Actor, req ports.CreateEscrowRequest) (*domain.Escrow, error) {
	if !req.Amount.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}
	if req.RequestID == "" || req.ClientID == "" || req.ValuatorID == "" {
		return nil, apperror.Validation("request_id, client_id and valuator_id are required")
	}
	if actor.ID != req.ClientID && !actor.IsSystem() {
		ok, err := s.roles.IsArbiter(ctx, actor)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("check arbiter: %w", err))
		}
		if !ok {
			return nil, apperror.ErrUnauthorized("escrow must be funded by its client")
		}
	}

	unlock := s.locks.Lock(req.RequestID)
	defer unlock()

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	existing, err := s.escrowRepo.GetByIDForUpdate(ctx, dbTx, req.RequestID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock escrow: %w", err))
	}
	if existing != nil {
		return nil, apperror.ErrDuplicateRequest(req.RequestID)
	}

	currency := req.Currency
	if currency == "" {
		currency = s.settings.Currency
	}

	key := domain.InstructionKey(req.RequestID, domain.CreateOperation, domain.EntryTypeHold)
	holdRef, err := s.custodian.Hold(ctx, key, req.ClientID, req.Amount)
	if err != nil {
		return nil, apperror.ErrCustodianFailure(fmt.Errorf("hold %s: %w", req.RequestID, err))
	}
	// The hold key is deterministic, so a record committed concurrently
	// under the same request id shares this hold and keeps it.
	keepHold := false
	defer func() {
		if !keepHold {
			s.compensate(ctx, req.RequestID, holdRef, []string{key})
		}
	}()

	now := time.Now().UTC()
	escrow := domain.NewEscrow(req.RequestID, req.ClientID, req.ValuatorID, req.Amount, currency, req.IsUrgent, now)
	escrow.HoldRef = holdRef

	if err := s.escrowRepo.Create(ctx, dbTx, escrow); err != nil {
		if errors.Is(err, domain.ErrEscrowExists) {
			keepHold = true
			return nil, apperror.ErrDuplicateRequest(req.RequestID)
		}
		return nil, apperror.InternalError(fmt.Errorf("create escrow: %w", err))
	}

	entry := domain.NewLedgerEntry(req.RequestID, domain.EntryTypeHold, req.ClientID, req.Amount, holdRef, now)
	if err := s.ledgerRepo.Create(ctx, dbTx, entry); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create ledger entry: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		if errors.Is(err, domain.ErrEscrowExists) {
			keepHold = true
			return nil, apperror.ErrDuplicateRequest(req.RequestID)
		}
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	keepHold = true
	return escrow, nil
}

// AcceptEscrow lets the assigned valuator take the job. No funds move.
func (s *EscrowServiceImpl) AcceptEscrow(ctx context.Context, actor domain.Actor, requestID string) (*domain.Escrow, error) {
	return s.transition(ctx, actor, requestID, domain.OperationAccept, domain.EventEscrowAccepted,
		func(_ context.Context, e *domain.Escrow, now time.Time) ([]*domain.LedgerEntry, error) {
			if !s.roles.IsAssignedValuator(actor, e) {
				return nil, apperror.ErrUnauthorized("only the assigned valuator may accept")
			}
			return nil, e.Accept(now)
		})
}

// CompleteValuation settles an accepted escrow with the standard fee split.
func (s *EscrowServiceImpl) CompleteValuation(ctx context.Context, actor domain.Actor, requestID string) (*domain.Escrow, error) {
	return s.transition(ctx, actor, requestID, domain.OperationComplete, domain.EventEscrowCompleted,
		func(ctx context.Context, e *domain.Escrow, now time.Time) ([]*domain.LedgerEntry, error) {
			if err := s.requireArbiter(ctx, actor, "only an arbiter may complete a valuation"); err != nil {
				return nil, err
			}

			valuatorShare, platformShare := money.SplitFee(e.Amount, s.settings.PlatformFeeBPS)
			legs := []payout{
				{domain.EntryTypeReleaseValuator, e.ValuatorID, valuatorShare},
				{domain.EntryTypeReleasePlatform, s.settings.PlatformAccount, platformShare},
			}
			entries, err := s.pay(ctx, e, domain.OperationComplete, legs, now)
			if err != nil {
				return entries, err
			}
			return entries, e.Complete(valuatorShare, platformShare, now)
		})
}

// CancelEscrow refunds the full amount to the client.
func (s *EscrowServiceImpl) CancelEscrow(ctx context.Context, actor domain.Actor, requestID, reason string) (*domain.Escrow, error) {
	return s.transition(ctx, actor, requestID, domain.OperationCancel, domain.EventEscrowCancelled,
		func(ctx context.Context, e *domain.Escrow, now time.Time) ([]*domain.LedgerEntry, error) {
			ok, err := s.roles.CanCancel(ctx, actor, e)
			if err != nil {
				return nil, apperror.InternalError(fmt.Errorf("check cancel authority: %w", err))
			}
			if !ok {
				return nil, apperror.ErrUnauthorized("only the client or an arbiter may cancel")
			}

			legs := []payout{{domain.EntryTypeRefundClient, e.ClientID, e.Amount}}
			entries, err := s.pay(ctx, e, domain.OperationCancel, legs, now)
			if err != nil {
				return entries, err
			}
			return entries, e.Cancel(reason, actor.ID, now)
		})
}

// RaiseDispute freezes an accepted escrow until an arbiter resolves it.
func (s *EscrowServiceImpl) RaiseDispute(ctx context.Context, actor domain.Actor, requestID, reason string) (*domain.Escrow, error) {
	return s.transition(ctx, actor, requestID, domain.OperationDispute, domain.EventEscrowDisputed,
		func(_ context.Context, e *domain.Escrow, now time.Time) ([]*domain.LedgerEntry, error) {
			if !s.roles.CanRaiseDispute(actor, e) {
				return nil, apperror.ErrUnauthorized("caller may not dispute this escrow")
			}
			return nil, e.Dispute(reason, actor.ID, now)
		})
}

// ResolveDispute settles a disputed escrow with an arbiter-assigned split.
// The split is validated before any custodian call.
func (s *EscrowServiceImpl) ResolveDispute(ctx context.Context, actor domain.Actor, req ports.ResolveDisputeRequest) (*domain.Escrow, error) {
	return s.transition(ctx, actor, req.RequestID, domain.OperationResolve, domain.EventDisputeResolved,
		func(ctx context.Context, e *domain.Escrow, now time.Time) ([]*domain.LedgerEntry, error) {
			if err := s.requireArbiter(ctx, actor, "only an arbiter may resolve a dispute"); err != nil {
				return nil, err
			}
			residual, err := e.Residual(req.ClientRefund, req.ValuatorPayment)
			if err != nil {
				return nil, apperror.ErrInvalidSplit(err.Error())
			}

			legs := []payout{
				{domain.EntryTypeRefundClient, e.ClientID, req.ClientRefund},
				{domain.EntryTypeReleaseValuator, e.ValuatorID, req.ValuatorPayment},
				{domain.EntryTypeReleasePlatform, s.settings.PlatformAccount, residual},
			}
			entries, err := s.pay(ctx, e, domain.OperationResolve, legs, now)
			if err != nil {
				return entries, err
			}
			return entries, e.Resolve(req.ClientRefund, req.ValuatorPayment, actor.ID, now)
		})
}

// GetEscrow returns a single record.
func (s *EscrowServiceImpl) GetEscrow(ctx context.Context, requestID string) (*domain.Escrow, error) {
	escrow, err := s.escrowRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get escrow: %w", err))
	}
	if escrow == nil {
		return nil, apperror.ErrNotFound("escrow")
	}
	return escrow, nil
}

// ListEscrows returns a filtered page of records.
func (s *EscrowServiceImpl) ListEscrows(ctx context.Context, params ports.EscrowListParams) ([]domain.Escrow, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 || params.PageSize > 100 {
		params.PageSize = 20
	}
	items, total, err := s.escrowRepo.List(ctx, params)
	if err != nil {
		return nil, 0, apperror.InternalError(fmt.Errorf("list escrows: %w", err))
	}
	return items, total, nil
}

// ListLedgerEntries returns the money movements of one record.
func (s *EscrowServiceImpl) ListLedgerEntries(ctx context.Context, requestID string) ([]domain.LedgerEntry, error) {
	if _, err := s.GetEscrow(ctx, requestID); err != nil {
		return nil, err
	}
	entries, err := s.ledgerRepo.ListByRequest(ctx, requestID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list ledger entries: %w", err))
	}
	return entries, nil
}

// GetValuatorBalance returns the cumulative amount released to a valuator.
func (s *EscrowServiceImpl) GetValuatorBalance(ctx context.Context, valuatorID string) (money.Amount, error) {
	return s.sum(ctx, domain.EntryTypeReleaseValuator, valuatorID)
}

// GetPlatformBalance returns the cumulative amount retained by the platform.
func (s *EscrowServiceImpl) GetPlatformBalance(ctx context.Context) (money.Amount, error) {
	return s.sum(ctx, domain.EntryTypeReleasePlatform, s.settings.PlatformAccount)
}

// GetClientRefunds returns the cumulative amount refunded to a client.
func (s *EscrowServiceImpl) GetClientRefunds(ctx context.Context, clientID string) (money.Amount, error) {
	return s.sum(ctx, domain.EntryTypeRefundClient, clientID)
}

func (s *EscrowServiceImpl) sum(ctx context.Context, entryType domain.EntryType, account string) (money.Amount, error) {
	total, err := s.ledgerRepo.SumByAccount(ctx, entryType, account)
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("sum %s: %w", entryType, err))
	}
	return total, nil
}

// applyFunc validates, authorizes, moves funds and mutates the locked
// record. It returns the ledger entries to persist alongside it. On error
// it still returns the entries of instructions already executed.
type applyFunc func(ctx context.Context, e *domain.Escrow, now time.Time) ([]*domain.LedgerEntry, error)

// transition runs one state change: lock, load, check status, apply,
// persist, commit. Nothing is persisted if apply fails, and custodian
// instructions issued by a transition that does not commit are voided.
func (s *EscrowServiceImpl) transition(
	ctx context.Context,
	actor domain.Actor,
	requestID string,
	op domain.Operation,
	event domain.EventType,
	apply applyFunc,
) (*domain.Escrow, error) {
	start := time.Now()
	escrow, err := s.runTransition(ctx, requestID, op, apply)
	s.observe(op, start, err)
	if err != nil {
		s.log.Debug().Err(err).Str("request_id", requestID).Str("op", string(op)).Str("actor", actor.ID).Msg("transition rejected")
		return nil, err
	}

	s.publish(ctx, event, escrow, actor.ID)
	s.log.Info().
		Str("request_id", requestID).
		Str("op", string(op)).
		Str("status", string(escrow.Status)).
		Str("actor", actor.ID).
		Msg("escrow transition committed")
	return escrow, nil
}

func (s *EscrowServiceImpl) runTransition(ctx context.Context, requestID string, op domain.Operation, apply applyFunc) (*domain.Escrow, error) {
	unlock := s.locks.Lock(requestID)
	defer unlock()

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	escrow, err := s.escrowRepo.GetByIDForUpdate(ctx, dbTx, requestID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock escrow: %w", err))
	}
	if escrow == nil {
		return nil, apperror.ErrNotFound("escrow")
	}
	if !escrow.Allows(op) {
		return nil, apperror.ErrInvalidState(fmt.Sprintf("cannot %s escrow in status %s", op, escrow.Status))
	}

	now := time.Now().UTC()
	holdRef := escrow.HoldRef
	entries, err := apply(ctx, escrow, now)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			err = apperror.ErrInvalidState(err.Error())
		}
		s.compensate(ctx, requestID, holdRef, instructionKeys(requestID, op, entries))
		return nil, err
	}

	if err := s.persist(ctx, dbTx, escrow, entries); err != nil {
		s.compensate(ctx, requestID, holdRef, instructionKeys(requestID, op, entries))
		return nil, err
	}
	if err := dbTx.Commit(ctx); err != nil {
		s.compensate(ctx, requestID, holdRef, instructionKeys(requestID, op, entries))
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	return escrow, nil
}

func (s *EscrowServiceImpl) persist(ctx context.Context, dbTx pgx.Tx, escrow *domain.Escrow, entries []*domain.LedgerEntry) error {
	if err := s.escrowRepo.Update(ctx, dbTx, escrow); err != nil {
		return apperror.InternalError(fmt.Errorf("update escrow: %w", err))
	}
	for _, entry := range entries {
		if err := s.ledgerRepo.Create(ctx, dbTx, entry); err != nil {
			return apperror.InternalError(fmt.Errorf("create ledger entry: %w", err))
		}
	}
	return nil
}

type payout struct {
	entryType domain.EntryType
	account   string
	amount    money.Amount
}

// pay issues one custodian instruction per non-zero leg. The first failure
// aborts the transition; legs already paid are returned alongside the error
// so the caller voids them.
func (s *EscrowServiceImpl) pay(ctx context.Context, e *domain.Escrow, op domain.Operation, legs []payout, now time.Time) ([]*domain.LedgerEntry, error) {
	entries := make([]*domain.LedgerEntry, 0, len(legs))
	for _, leg := range legs {
		if !leg.amount.IsPositive() {
			continue
		}
		key := domain.InstructionKey(e.RequestID, op, leg.entryType)

		var err error
		if leg.entryType == domain.EntryTypeRefundClient {
			err = s.custodian.Refund(ctx, key, e.HoldRef, leg.account, leg.amount)
		} else {
			err = s.custodian.Release(ctx, key, e.HoldRef, leg.account, leg.amount)
		}
		if err != nil {
			return entries, apperror.ErrCustodianFailure(fmt.Errorf("%s %s: %w", leg.entryType, e.RequestID, err))
		}
		entries = append(entries, domain.NewLedgerEntry(e.RequestID, leg.entryType, leg.account, leg.amount, e.HoldRef, now))
	}
	return entries, nil
}

func instructionKeys(requestID string, op domain.Operation, entries []*domain.LedgerEntry) []string {
	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		keys = append(keys, domain.InstructionKey(requestID, op, entry.EntryType))
	}
	return keys
}

// compensate voids executed instructions, newest first, after the
// transition that issued them failed to commit. It runs detached from the
// caller's cancellation. A failed void leaves custody and ledger apart and
// is logged at error level for reconciliation.
func (s *EscrowServiceImpl) compensate(ctx context.Context, requestID, holdRef string, keys []string) {
	if len(keys) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), compensateTimeout)
	defer cancel()

	for i := len(keys) - 1; i >= 0; i-- {
		if err := s.custodian.Void(ctx, keys[i], holdRef); err != nil {
			s.log.Error().Err(err).
				Str("request_id", requestID).
				Str("key", keys[i]).
				Str("hold_ref", holdRef).
				Msg("failed to void custodian instruction; custody needs reconciliation")
			continue
		}
		s.log.Warn().Str("request_id", requestID).Str("key", keys[i]).Msg("voided custodian instruction")
	}
}

func (s *EscrowServiceImpl) requireArbiter(ctx context.Context, actor domain.Actor, msg string) error {
	ok, err := s.roles.IsArbiter(ctx, actor)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("check arbiter: %w", err))
	}
	if !ok {
		return apperror.ErrUnauthorized(msg)
	}
	return nil
}

func (s *EscrowServiceImpl) observe(op domain.Operation, start time.Time, err error) {
	outcome := outcomeSuccess
	if err != nil {
		outcome = outcomeError
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			outcome = appErr.Code
		}
	}
	s.metrics.ObserveTransition(op, outcome, time.Since(start))
}

// publish hands the committed state to the event publisher. Failures are
// logged only; the transition already committed.
func (s *EscrowServiceImpl) publish(ctx context.Context, eventType domain.EventType, escrow *domain.Escrow, actorID string) {
	if s.events == nil {
		return
	}
	event := domain.NewEscrowEvent(eventType, escrow, actorID, time.Now().UTC())
	if err := s.events.Publish(ctx, event); err != nil {
		s.log.Warn().Err(err).Str("request_id", escrow.RequestID).Str("event", string(eventType)).Msg("failed to publish escrow event")
	}
}

type nopMetrics struct{}

func (nopMetrics) ObserveTransition(domain.Operation, string, time.Duration) {}
func (nopMetrics) ObserveCustodianCall(string, string, time.Duration)        {}
func (nopMetrics) ObserveExpiry(string)                                      {}
