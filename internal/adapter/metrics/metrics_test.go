package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mapchain-escrow/internal/core/domain"
	"mapchain-escrow/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.MetricsRecorder = (*Collector)(nil)

func counterValue(t *testing.T, c *Collector, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := c.Registry().Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metrics:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
					continue metrics
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

func TestCollector_Transitions(t *testing.T) {
	c := NewCollector()

	c.ObserveTransition(domain.OperationComplete, "success", 20*time.Millisecond)
	c.ObserveTransition(domain.OperationComplete, "success", 30*time.Millisecond)
	c.ObserveTransition(domain.OperationComplete, "ESC_007", 5*time.Millisecond)

	assert.Equal(t, 2.0, counterValue(t, c, "escrow_transitions_total", map[string]string{"operation": "COMPLETE", "outcome": "success"}))
	assert.Equal(t, 1.0, counterValue(t, c, "escrow_transitions_total", map[string]string{"operation": "COMPLETE", "outcome": "ESC_007"}))
}

func TestCollector_CustodianAndExpiry(t *testing.T) {
	c := NewCollector()

	c.ObserveCustodianCall("hold", "success", time.Millisecond)
	c.ObserveExpiry("cancelled")
	c.ObserveExpiry("cancelled")
	c.ObserveExpiry("error")

	assert.Equal(t, 1.0, counterValue(t, c, "escrow_custodian_calls_total", map[string]string{"method": "hold"}))
	assert.Equal(t, 2.0, counterValue(t, c, "escrow_scheduler_expired_total", map[string]string{"outcome": "cancelled"}))
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector()
	c.ObserveHTTP("POST", "/api/v1/escrows", http.StatusCreated, 10*time.Millisecond)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), "escrow_http_requests_total")
	assert.Contains(t, string(body), `route="/api/v1/escrows"`)
}
