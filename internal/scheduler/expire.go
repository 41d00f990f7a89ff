package scheduler

import (
	"context"
	"encoding/json"
	"time"

	"mapchain-escrow/internal/core/domain"
	"mapchain-escrow/internal/core/ports"
	"mapchain-escrow/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ExpireReason is recorded on escrows cancelled by the deadline job.
const ExpireReason = "acceptance deadline passed"

// Expiry outcomes reported to metrics.
const (
	ExpiryCancelled = "cancelled"
	ExpirySkipped   = "skipped"
	ExpiryFailed    = "error"
)

// ExpireUnaccepted cancels escrows that stayed CREATED past the acceptance
// timeout, refunding the client through the normal cancel path.
type ExpireUnaccepted struct {
	escrows   ports.EscrowRepository
	svc       ports.EscrowService
	audit     ports.AuditService
	metrics   ports.MetricsRecorder
	timeout   time.Duration
	batchSize int
	now       func() time.Time
	log       zerolog.Logger
}

func NewExpireUnaccepted(
	escrows ports.EscrowRepository,
	svc ports.EscrowService,
	audit ports.AuditService,
	metrics ports.MetricsRecorder,
	timeout time.Duration,
	batchSize int,
	log zerolog.Logger,
) *ExpireUnaccepted {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &ExpireUnaccepted{
		escrows:   escrows,
		svc:       svc,
		audit:     audit,
		metrics:   metrics,
		timeout:   timeout,
		batchSize: batchSize,
		now:       time.Now,
		log:       log,
	}
}

// Run processes one batch and returns how many escrows it cancelled.
func (j *ExpireUnaccepted) Run(ctx context.Context) (int, error) {
	cutoff := j.now().UTC().Add(-j.timeout)
	stale, err := j.escrows.ListStale(ctx, cutoff, j.batchSize)
	if err != nil {
		return 0, err
	}

	cancelled := 0
	for _, e := range stale {
		if ctx.Err() != nil {
			return cancelled, ctx.Err()
		}
		_, err := j.svc.CancelEscrow(ctx, domain.SystemActor(), e.RequestID, ExpireReason)
		switch {
		case err == nil:
			cancelled++
			j.observe(ExpiryCancelled)
			j.record(ctx, &e, cutoff)
		case apperror.Is(err, apperror.CodeInvalidState):
			// accepted or cancelled since the scan
			j.observe(ExpirySkipped)
		default:
			j.observe(ExpiryFailed)
			j.log.Error().Err(err).Str("request_id", e.RequestID).Msg("failed to expire escrow")
		}
	}

	if len(stale) > 0 {
		j.log.Info().
			Int("scanned", len(stale)).
			Int("cancelled", cancelled).
			Time("cutoff", cutoff).
			Msg("expired unaccepted escrows")
	}
	return cancelled, nil
}

// Job adapts Run for the cron runner.
func (j *ExpireUnaccepted) Job(ctx context.Context) {
	if _, err := j.Run(ctx); err != nil {
		j.log.Error().Err(err).Msg("expire job failed")
	}
}

func (j *ExpireUnaccepted) observe(outcome string) {
	if j.metrics != nil {
		j.metrics.ObserveExpiry(outcome)
	}
}

func (j *ExpireUnaccepted) record(ctx context.Context, e *domain.Escrow, cutoff time.Time) {
	if j.audit == nil {
		return
	}
	details, _ := json.Marshal(map[string]any{
		"created_at": e.CreatedAt,
		"cutoff":     cutoff,
		"amount":     e.Amount.String(),
	})
	j.audit.Log(ctx, &domain.AuditLog{
		ID:           uuid.New(),
		ActorID:      domain.SystemActorID,
		Action:       domain.AuditActionExpireUnaccepted,
		ResourceType: "escrow",
		ResourceID:   e.RequestID,
		Details:      string(details),
		CreatedAt:    j.now().UTC(),
	})
}
