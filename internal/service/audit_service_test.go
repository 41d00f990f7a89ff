package service

import (
	"context"
	"io"
	"testing"
	"time"

	"mapchain-escrow/internal/core/domain"
	"mapchain-escrow/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newTestLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func TestAuditService_Log_PersistsToRepo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAuditRepository(ctrl)
	svc := NewAuditService(mockRepo, newTestLogger())

	done := make(chan struct{})
	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, log *domain.AuditLog) error {
			assert.Equal(t, domain.AuditActionResolveDispute, log.Action)
			assert.Equal(t, "arbiter-1", log.ActorID)
			assert.NotEqual(t, uuid.Nil, log.ID)
			assert.False(t, log.CreatedAt.IsZero())
			close(done)
			return nil
		},
	)

	svc.Log(context.Background(), &domain.AuditLog{
		ActorID:      "arbiter-1",
		Action:       domain.AuditActionResolveDispute,
		ResourceType: "escrow",
		ResourceID:   "req-1",
		IPAddress:    "127.0.0.1",
	})

	select {
	case <-done:
		// OK
	case <-time.After(2 * time.Second):
		t.Fatal("audit log not persisted in time")
	}
}

func TestAuditService_Log_NilRepo(t *testing.T) {
	svc := NewAuditService(nil, newTestLogger())

	// Should not panic
	svc.Log(context.Background(), &domain.AuditLog{
		ActorID:      "client-1",
		Action:       domain.AuditActionCreateEscrow,
		ResourceType: "escrow",
		IPAddress:    "127.0.0.1",
	})

	time.Sleep(50 * time.Millisecond) // let goroutine run
}
