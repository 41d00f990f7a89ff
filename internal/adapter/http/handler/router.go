package handler

import (
	"net/http"

	"mapchain-escrow/internal/adapter/http/middleware"
	"mapchain-escrow/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// MetricsExporter observes requests and serves the scrape endpoint.
type MetricsExporter interface {
	middleware.HTTPObserver
	Handler() http.Handler
}

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	EscrowSvc      ports.EscrowService
	Roles          ports.RoleAuthority
	TokenSvc       ports.TokenService
	RateLimitStore middleware.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	AuditSvc       ports.AuditService // nil = audit logging disabled
	Metrics        MetricsExporter    // nil = no /metrics
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Audit logging (after response)
	if deps.AuditSvc != nil {
		r.Use(middleware.AuditLog(deps.AuditSvc))
	}

	r.GET("/health", HealthCheck(deps.HealthCheckers...))
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	v1 := r.Group("/api/v1", middleware.JWTAuth(deps.TokenSvc))

	escrowHandler := NewEscrowHandler(deps.EscrowSvc)
	escrows := v1.Group("/escrows")
	{
		escrows.POST("", rl("escrow_create"), escrowHandler.Create)
		escrows.GET("", rl("reads"), escrowHandler.List)
		escrows.GET("/:request_id", rl("reads"), escrowHandler.Get)
		escrows.GET("/:request_id/entries", rl("reads"), escrowHandler.Entries)
		escrows.POST("/:request_id/accept", rl("transitions"), escrowHandler.Accept)
		escrows.POST("/:request_id/complete", rl("transitions"), escrowHandler.Complete)
		escrows.POST("/:request_id/cancel", rl("transitions"), escrowHandler.Cancel)
		escrows.POST("/:request_id/dispute", rl("transitions"), escrowHandler.Dispute)
		escrows.POST("/:request_id/resolve", rl("transitions"), escrowHandler.Resolve)
	}

	balanceHandler := NewBalanceHandler(deps.EscrowSvc)
	balances := v1.Group("/balances", rl("reads"))
	{
		balances.GET("/valuators/:valuator_id", balanceHandler.Valuator)
		balances.GET("/platform", balanceHandler.Platform)
		balances.GET("/clients/:client_id/refunds", balanceHandler.ClientRefunds)
	}

	if deps.Roles != nil {
		roleHandler := NewRoleHandler(deps.Roles)
		v1.POST("/roles", rl("roles"), roleHandler.Grant)
	}

	return r
}
