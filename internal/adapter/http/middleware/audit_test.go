package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mapchain-escrow/internal/core/domain"
	"mapchain-escrow/internal/core/ports/mocks"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func withActor(id string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(CtxActor, domain.Actor{ID: id})
		c.Next()
	}
}

func TestAuditLog_TransitionSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAudit := mocks.NewMockAuditService(ctrl)

	done := make(chan struct{})
	mockAudit.EXPECT().Log(gomock.Any(), gomock.Any()).Do(
		func(ctx context.Context, log *domain.AuditLog) {
			assert.Equal(t, domain.AuditActionCompleteEscrow, log.Action)
			assert.Equal(t, "escrow", log.ResourceType)
			assert.Equal(t, "req-1", log.ResourceID)
			assert.Equal(t, "arbiter-1", log.ActorID)
			close(done)
		},
	)

	r := gin.New()
	r.Use(withActor("arbiter-1"), AuditLog(mockAudit))
	r.POST("/api/v1/escrows/:request_id/complete", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/escrows/req-1/complete", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("audit not called")
	}
}

func TestAuditLog_CreateUsesHandlerResource(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAudit := mocks.NewMockAuditService(ctrl)

	mockAudit.EXPECT().Log(gomock.Any(), gomock.Any()).Do(
		func(ctx context.Context, log *domain.AuditLog) {
			assert.Equal(t, domain.AuditActionCreateEscrow, log.Action)
			assert.Equal(t, "req-9", log.ResourceID)
		},
	)

	r := gin.New()
	r.Use(withActor("client-1"), AuditLog(mockAudit))
	r.POST("/api/v1/escrows", func(c *gin.Context) {
		c.Set(CtxAuditResource, "req-9")
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/escrows", nil))
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestAuditLog_SkipsGET(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAudit := mocks.NewMockAuditService(ctrl)

	r := gin.New()
	r.Use(AuditLog(mockAudit))
	r.GET("/api/v1/escrows", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/escrows", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuditLog_SkipsFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAudit := mocks.NewMockAuditService(ctrl)

	r := gin.New()
	r.Use(AuditLog(mockAudit))
	r.POST("/api/v1/escrows/:request_id/cancel", func(c *gin.Context) {
		c.JSON(http.StatusConflict, gin.H{"error_code": "ESC_003"})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/escrows/req-1/cancel", nil))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestMapRouteToAction(t *testing.T) {
	tests := []struct {
		route    string
		action   domain.AuditAction
		resource string
	}{
		{"/api/v1/escrows", domain.AuditActionCreateEscrow, "escrow"},
		{"/api/v1/escrows/:request_id/accept", domain.AuditActionAcceptEscrow, "escrow"},
		{"/api/v1/escrows/:request_id/cancel", domain.AuditActionCancelEscrow, "escrow"},
		{"/api/v1/escrows/:request_id/dispute", domain.AuditActionRaiseDispute, "escrow"},
		{"/api/v1/escrows/:request_id/resolve", domain.AuditActionResolveDispute, "escrow"},
		{"/api/v1/roles", domain.AuditActionGrantRole, "role"},
		{"/api/v1/balances/platform", "", ""},
	}
	for _, tt := range tests {
		action, resource := mapRouteToAction(tt.route)
		assert.Equal(t, tt.action, action, tt.route)
		assert.Equal(t, tt.resource, resource, tt.route)
	}
}
