// Package custodian holds PaymentCustodian implementations and decorators.
package custodian

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"mapchain-escrow/internal/core/ports"
	"mapchain-escrow/pkg/money"

	"github.com/rs/zerolog"
)

// Headers set on every custodian instruction.
const (
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderSignature      = "X-Signature"
	HeaderTimestamp      = "X-Timestamp"
)

// Instruction paths, relative to the custodian base URL.
const (
	PathHolds    = "/v1/holds"
	PathReleases = "/v1/releases"
	PathRefunds  = "/v1/refunds"
	PathVoids    = "/v1/voids"
)

// voidSuffix derives the idempotency key of a void from the key it reverses.
const voidSuffix = ":VOID"

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Instruction is the JSON body of a custodian call.
type Instruction struct {
	Key      string `json:"key"`
	Account  string `json:"account"`
	Amount   string `json:"amount"`
	Currency string `json:"currency,omitempty"`
	HoldRef  string `json:"hold_ref,omitempty"`
	Voids    string `json:"voids,omitempty"`
}

type holdResponse struct {
	HoldRef string `json:"hold_ref"`
}

// HTTPCustodian sends signed instructions to an external custody API.
type HTTPCustodian struct {
	baseURL  string
	secret   string
	currency string
	sigSvc   ports.SignatureService
	client   HTTPClient
	log      zerolog.Logger
}

// NewHTTPCustodian creates a custodian client for baseURL.
func NewHTTPCustodian(baseURL, secret, currency string, sigSvc ports.SignatureService, client HTTPClient, log zerolog.Logger) *HTTPCustodian {
	return &HTTPCustodian{
		baseURL:  strings.TrimRight(baseURL, "/"),
		secret:   secret,
		currency: currency,
		sigSvc:   sigSvc,
		client:   client,
		log:      log,
	}
}

func (c *HTTPCustodian) Hold(ctx context.Context, key, clientID string, amount money.Amount) (string, error) {
	body, err := c.call(ctx, PathHolds, Instruction{Key: key, Account: clientID, Amount: amount.String(), Currency: c.currency})
	if err != nil {
		return "", err
	}
	var resp holdResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode hold response: %w", err)
	}
	if resp.HoldRef == "" {
		return "", fmt.Errorf("custodian returned empty hold_ref for %s", key)
	}
	return resp.HoldRef, nil
}

func (c *HTTPCustodian) Release(ctx context.Context, key, holdRef, payee string, amount money.Amount) error {
	_, err := c.call(ctx, PathReleases, Instruction{Key: key, Account: payee, Amount: amount.String(), Currency: c.currency, HoldRef: holdRef})
	return err
}

func (c *HTTPCustodian) Refund(ctx context.Context, key, holdRef, payee string, amount money.Amount) error {
	_, err := c.call(ctx, PathRefunds, Instruction{Key: key, Account: payee, Amount: amount.String(), Currency: c.currency, HoldRef: holdRef})
	return err
}

// Void asks the custodian to reverse the instruction sent under key.
func (c *HTTPCustodian) Void(ctx context.Context, key, holdRef string) error {
	_, err := c.call(ctx, PathVoids, Instruction{Key: key + voidSuffix, Voids: key, HoldRef: holdRef})
	return err
}

func (c *HTTPCustodian) call(ctx context.Context, path string, in Instruction) ([]byte, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("marshal instruction: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	ts := time.Now().Unix()
	canonical := c.sigSvc.BuildCanonicalString(http.MethodPost, path, ts, string(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderIdempotencyKey, in.Key)
	req.Header.Set(HeaderTimestamp, strconv.FormatInt(ts, 10))
	req.Header.Set(HeaderSignature, c.sigSvc.Sign(c.secret, canonical))

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("custodian %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return nil, fmt.Errorf("read custodian response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn().
			Str("path", path).
			Str("key", in.Key).
			Int("status", resp.StatusCode).
			Msg("custodian rejected instruction")
		return nil, fmt.Errorf("custodian %s returned status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}
