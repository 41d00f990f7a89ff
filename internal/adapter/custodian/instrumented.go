package custodian

import (
	"context"
	"time"

	"mapchain-escrow/internal/core/ports"
	"mapchain-escrow/pkg/money"
)

const (
	methodHold    = "hold"
	methodRelease = "release"
	methodRefund  = "refund"
	methodVoid    = "void"
)

// Instrumented records latency and outcome of every custodian call.
type Instrumented struct {
	inner   ports.PaymentCustodian
	metrics ports.MetricsRecorder
}

func NewInstrumented(inner ports.PaymentCustodian, metrics ports.MetricsRecorder) *Instrumented {
	return &Instrumented{inner: inner, metrics: metrics}
}

func (c *Instrumented) Hold(ctx context.Context, key, clientID string, amount money.Amount) (string, error) {
	start := time.Now()
	ref, err := c.inner.Hold(ctx, key, clientID, amount)
	c.metrics.ObserveCustodianCall(methodHold, outcome(err), time.Since(start))
	return ref, err
}

func (c *Instrumented) Release(ctx context.Context, key, holdRef, payee string, amount money.Amount) error {
	start := time.Now()
	err := c.inner.Release(ctx, key, holdRef, payee, amount)
	c.metrics.ObserveCustodianCall(methodRelease, outcome(err), time.Since(start))
	return err
}

func (c *Instrumented) Refund(ctx context.Context, key, holdRef, payee string, amount money.Amount) error {
	start := time.Now()
	err := c.inner.Refund(ctx, key, holdRef, payee, amount)
	c.metrics.ObserveCustodianCall(methodRefund, outcome(err), time.Since(start))
	return err
}

func (c *Instrumented) Void(ctx context.Context, key, holdRef string) error {
	start := time.Now()
	err := c.inner.Void(ctx, key, holdRef)
	c.metrics.ObserveCustodianCall(methodVoid, outcome(err), time.Since(start))
	return err
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
