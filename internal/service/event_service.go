package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"mapchain-escrow/internal/core/domain"
	"mapchain-escrow/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// eventRetryIntervals is the wait before each redelivery attempt.
var eventRetryIntervals = []time.Duration{
	15 * time.Second,
	60 * time.Second,
	2 * time.Minute,
	5 * time.Minute,
	10 * time.Minute,
}

// Headers set on every webhook delivery.
const (
	HeaderSignature = "X-Signature"
	HeaderTimestamp = "X-Timestamp"
	HeaderEventType = "X-Event-Type"
)

// EventPayload is the JSON structure posted to the webhook URL.
type EventPayload struct {
	EventID    string             `json:"event_id"`
	EventType  domain.EventType   `json:"event_type"`
	OccurredAt int64              `json:"occurred_at"`
	Data       domain.EscrowEvent `json:"data"`
}

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// EventService implements ports.EventPublisher with signed, retried webhook delivery.
type EventService struct {
	webhookURL string
	secret     string
	deliveries ports.EventDeliveryRepository
	sigSvc     ports.SignatureService
	httpClient HTTPClient
	retries    []time.Duration
	log        zerolog.Logger

	wg     sync.WaitGroup
	stop   context.Context
	cancel context.CancelFunc
}

// NewEventService creates a new event service. An empty webhookURL disables
// delivery; deliveries may be nil when attempts need not be persisted.
func NewEventService(
	webhookURL, secret string,
	deliveries ports.EventDeliveryRepository,
	sigSvc ports.SignatureService,
	httpClient HTTPClient,
	log zerolog.Logger,
) *EventService {
	stop, cancel := context.WithCancel(context.Background())
	return &EventService{
		webhookURL: webhookURL,
		secret:     secret,
		deliveries: deliveries,
		sigSvc:     sigSvc,
		httpClient: httpClient,
		retries:    eventRetryIntervals,
		log:        log,
		stop:       stop,
		cancel:     cancel,
	}
}

// Publish records a delivery and sends the event asynchronously with retries.
func (s *EventService) Publish(ctx context.Context, event *domain.EscrowEvent) error {
	if s.webhookURL == "" {
		s.log.Debug().Str("request_id", event.RequestID).Msg("event: no webhook URL configured, skipping")
		return nil
	}

	payload := EventPayload{
		EventID:    event.ID.String(),
		EventType:  event.Type,
		OccurredAt: event.OccurredAt.Unix(),
		Data:       *event,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	now := time.Now().UTC()
	delivery := &domain.EventDelivery{
		ID:         uuid.New(),
		EventID:    event.ID,
		EventType:  event.Type,
		RequestID:  event.RequestID,
		WebhookURL: s.webhookURL,
		Payload:    string(body),
		Status:     domain.DeliveryStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if s.deliveries != nil {
		if err := s.deliveries.Create(ctx, delivery); err != nil {
			return fmt.Errorf("record delivery: %w", err)
		}
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.deliverWithRetries(delivery, body)
	}()
	return nil
}

// Shutdown abandons pending retries and waits for in-flight attempts.
func (s *EventService) Shutdown(ctx context.Context) error {
	s.cancel()
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *EventService) deliverWithRetries(delivery *domain.EventDelivery, body []byte) {
	logger := s.log.With().Str("request_id", delivery.RequestID).Str("event", string(delivery.EventType)).Logger()

	for attempt := 0; attempt <= len(s.retries); attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(s.retries[attempt-1]):
			case <-s.stop.Done():
				logger.Warn().Int("attempt", attempt).Msg("event: shutdown before redelivery")
				return
			}
		}

		status, err := s.send(delivery, body)
		delivery.Attempt = attempt + 1
		delivery.UpdatedAt = time.Now().UTC()
		if status != 0 {
			delivery.HTTPStatus = &status
		}

		if err == nil {
			delivery.Status = domain.DeliveryStatusDelivered
			delivery.NextRetryAt = nil
			delivery.LastError = nil
			s.record(delivery)
			logger.Info().Int("attempt", attempt+1).Int("status", status).Msg("event: delivered successfully")
			return
		}

		msg := err.Error()
		delivery.LastError = &msg
		if attempt < len(s.retries) {
			next := delivery.UpdatedAt.Add(s.retries[attempt])
			delivery.NextRetryAt = &next
		} else {
			delivery.Status = domain.DeliveryStatusFailed
			delivery.NextRetryAt = nil
		}
		s.record(delivery)
		logger.Warn().Err(err).Int("attempt", attempt+1).Msg("event: delivery failed")
	}

	logger.Error().Msg("event: all retry attempts exhausted")
}

func (s *EventService) send(delivery *domain.EventDelivery, body []byte) (int, error) {
	ctx, cancel := context.WithTimeout(s.stop, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, delivery.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}

	ts := time.Now().Unix()
	path := "/"
	if u, err := url.Parse(delivery.WebhookURL); err == nil && u.Path != "" {
		path = u.Path
	}
	canonical := s.sigSvc.BuildCanonicalString(http.MethodPost, path, ts, string(body))

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderTimestamp, strconv.FormatInt(ts, 10))
	req.Header.Set(HeaderEventType, string(delivery.EventType))
	req.Header.Set(HeaderSignature, s.sigSvc.Sign(s.secret, canonical))

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, fmt.Errorf("non-2xx response: %d", resp.StatusCode)
	}
	return resp.StatusCode, nil
}

func (s *EventService) record(delivery *domain.EventDelivery) {
	if s.deliveries == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.deliveries.Update(ctx, delivery); err != nil {
		s.log.Warn().Err(err).Str("delivery_id", delivery.ID.String()).Msg("event: failed to update delivery log")
	}
}
