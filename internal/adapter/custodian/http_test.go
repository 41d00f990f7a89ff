package custodian

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"mapchain-escrow/internal/service"
	"mapchain-escrow/pkg/money"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "custody-secret"

type recorded struct {
	path string
	key  string
	body Instruction
}

func newCustodyServer(t *testing.T, status int, reply string) (*httptest.Server, chan recorded) {
	t.Helper()
	sig := service.NewHMACSignatureService()
	calls := make(chan recorded, 8)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		ts, err := strconv.ParseInt(r.Header.Get(HeaderTimestamp), 10, 64)
		require.NoError(t, err)
		canonical := sig.BuildCanonicalString(r.Method, r.URL.Path, ts, string(raw))
		assert.True(t, sig.Verify(testSecret, canonical, r.Header.Get(HeaderSignature)), "bad signature")

		var in Instruction
		require.NoError(t, json.Unmarshal(raw, &in))
		calls <- recorded{path: r.URL.Path, key: r.Header.Get(HeaderIdempotencyKey), body: in}

		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv, calls
}

func newTestHTTPCustodian(url string) *HTTPCustodian {
	return NewHTTPCustodian(url+"/", testSecret, "USD", service.NewHMACSignatureService(),
		&http.Client{Timeout: 5 * time.Second}, zerolog.Nop())
}

func TestHTTPCustodian_Hold(t *testing.T) {
	srv, calls := newCustodyServer(t, http.StatusCreated, `{"hold_ref":"hold-77"}`)
	c := newTestHTTPCustodian(srv.URL)

	ref, err := c.Hold(context.Background(), "req-1:CREATE:HOLD", "client-1", money.Amount(1000))
	require.NoError(t, err)
	assert.Equal(t, "hold-77", ref)

	call := <-calls
	assert.Equal(t, PathHolds, call.path)
	assert.Equal(t, "req-1:CREATE:HOLD", call.key)
	assert.Equal(t, "client-1", call.body.Account)
	assert.Equal(t, money.Amount(1000).String(), call.body.Amount)
	assert.Equal(t, "USD", call.body.Currency)
}

func TestHTTPCustodian_ReleaseAndRefund(t *testing.T) {
	srv, calls := newCustodyServer(t, http.StatusOK, `{}`)
	c := newTestHTTPCustodian(srv.URL)
	ctx := context.Background()

	require.NoError(t, c.Release(ctx, "req-1:COMPLETE:RELEASE_VALUATOR", "hold-1", "valuator-1", 900))
	call := <-calls
	assert.Equal(t, PathReleases, call.path)
	assert.Equal(t, "hold-1", call.body.HoldRef)
	assert.Equal(t, "valuator-1", call.body.Account)

	require.NoError(t, c.Refund(ctx, "req-2:CANCEL:REFUND_CLIENT", "hold-2", "client-1", 1000))
	call = <-calls
	assert.Equal(t, PathRefunds, call.path)
	assert.Equal(t, "req-2:CANCEL:REFUND_CLIENT", call.key)
}

func TestHTTPCustodian_Void(t *testing.T) {
	srv, calls := newCustodyServer(t, http.StatusOK, `{}`)
	c := newTestHTTPCustodian(srv.URL)

	require.NoError(t, c.Void(context.Background(), "req-1:COMPLETE:RELEASE_VALUATOR", "hold-1"))
	call := <-calls
	assert.Equal(t, PathVoids, call.path)
	assert.Equal(t, "req-1:COMPLETE:RELEASE_VALUATOR:VOID", call.key)
	assert.Equal(t, "req-1:COMPLETE:RELEASE_VALUATOR", call.body.Voids)
	assert.Equal(t, "hold-1", call.body.HoldRef)
}

func TestHTTPCustodian_RejectedInstruction(t *testing.T) {
	srv, _ := newCustodyServer(t, http.StatusUnprocessableEntity, `insufficient funds`)
	c := newTestHTTPCustodian(srv.URL)

	_, err := c.Hold(context.Background(), "req-1:CREATE:HOLD", "client-1", 1000)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
	assert.Contains(t, err.Error(), "insufficient funds")
}

func TestHTTPCustodian_EmptyHoldRef(t *testing.T) {
	srv, _ := newCustodyServer(t, http.StatusOK, `{}`)
	c := newTestHTTPCustodian(srv.URL)

	_, err := c.Hold(context.Background(), "req-1:CREATE:HOLD", "client-1", 1000)
	assert.Error(t, err)
}

func TestHTTPCustodian_Unreachable(t *testing.T) {
	srv, _ := newCustodyServer(t, http.StatusOK, `{}`)
	url := srv.URL
	srv.Close()

	c := newTestHTTPCustodian(url)
	err := c.Refund(context.Background(), "k", "hold-1", "client-1", 10)
	assert.Error(t, err)
}
