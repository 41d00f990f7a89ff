package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mapchain-escrow/config"
	"mapchain-escrow/internal/adapter/custodian"
	httpHandler "mapchain-escrow/internal/adapter/http/handler"
	"mapchain-escrow/internal/adapter/http/middleware"
	"mapchain-escrow/internal/adapter/metrics"
	memStorage "mapchain-escrow/internal/adapter/storage/memory"
	pgStorage "mapchain-escrow/internal/adapter/storage/postgres"
	redisStorage "mapchain-escrow/internal/adapter/storage/redis"
	"mapchain-escrow/internal/core/domain"
	"mapchain-escrow/internal/core/ports"
	"mapchain-escrow/internal/scheduler"
	"mapchain-escrow/internal/service"
	"mapchain-escrow/pkg/logger"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// storage bundles the repositories of one backend.
type storage struct {
	escrows    ports.EscrowRepository
	ledger     ports.LedgerRepository
	roles      ports.RoleRepository
	audits     ports.AuditRepository
	deliveries ports.EventDeliveryRepository
	transactor ports.DBTransactor
	health     ports.HealthChecker
	close      func()
}

func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*storage, error) {
	if cfg.Storage.Driver == "memory" {
		store := memStorage.NewStore()
		log.Warn().Msg("Using in-memory storage; records are lost on restart")
		return &storage{
			escrows:    memStorage.NewEscrowRepo(store),
			ledger:     memStorage.NewLedgerRepo(store),
			roles:      memStorage.NewRoleRepo(store),
			audits:     memStorage.NewAuditRepo(store),
			deliveries: memStorage.NewEventDeliveryRepo(store),
			transactor: memStorage.NewTransactor(store),
			health:     memStorage.HealthCheck{},
			close:      func() {},
		}, nil
	}

	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		return nil, err
	}
	if err := pgStorage.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	log.Info().Msg("PostgreSQL connected")
	return &storage{
		escrows:    pgStorage.NewEscrowRepo(pool),
		ledger:     pgStorage.NewLedgerRepo(pool),
		roles:      pgStorage.NewRoleRepo(pool),
		audits:     pgStorage.NewAuditRepo(pool),
		deliveries: pgStorage.NewEventDeliveryRepo(pool),
		transactor: pgStorage.NewTransactor(pool),
		health:     pgStorage.NewHealthCheck(pool),
		close:      pool.Close,
	}, nil
}

func main() {
	configPath := os.Getenv("ESC_CONFIG")
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Str("storage", cfg.Storage.Driver).
		Str("custodian", cfg.Custodian.Driver).
		Msg("Starting MapChain escrow ledger")

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("escrowd stopped with error")
	}
	log.Info().Msg("Server exited")
}

func run(cfg *config.Config, log zerolog.Logger) error {
	if cfg.JWT.Secret == "" {
		return errors.New("jwt.secret is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer store.close()
	healthCheckers := []ports.HealthChecker{store.health}

	var collector *metrics.Collector
	var recorder ports.MetricsRecorder
	if cfg.Metrics.Enabled {
		collector = metrics.NewCollector()
		recorder = collector
	}

	sigSvc := service.NewHMACSignatureService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)

	// Payment custodian, optionally fronted by the Redis instruction cache.
	var payments ports.PaymentCustodian
	switch cfg.Custodian.Driver {
	case "http":
		client := &http.Client{Timeout: cfg.Custodian.Timeout}
		payments = custodian.NewHTTPCustodian(cfg.Custodian.URL, cfg.Custodian.Secret, cfg.Escrow.Currency, sigSvc, client, log)
	default:
		log.Warn().Msg("Using in-memory payment custodian; no real funds move")
		payments = custodian.NewLedgerCustodian()
	}

	var rateLimitStore middleware.RateLimitStore
	if cfg.Redis.Enabled {
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer rdb.Close()
		log.Info().Msg("Redis connected")

		payments = custodian.NewIdempotent(payments, redisStorage.NewInstructionCache(rdb), cfg.Custodian.IdempotencyTTL, log)
		rateLimitStore = redisStorage.NewRateLimitStore(rdb)
		healthCheckers = append(healthCheckers, redisStorage.NewHealthCheck(rdb))
	}
	if recorder != nil {
		payments = custodian.NewInstrumented(payments, recorder)
	}

	roles := service.NewRoleAuthority(store.roles, service.DisputePolicy(cfg.Escrow.DisputePolicy), log)
	for _, id := range cfg.Escrow.Arbiters {
		if err := roles.Grant(ctx, domain.SystemActor(), domain.RoleArbiter, id); err != nil {
			return fmt.Errorf("seed arbiter %s: %w", id, err)
		}
	}

	events := service.NewEventService(cfg.Webhook.URL, cfg.Webhook.Secret, store.deliveries, sigSvc,
		&http.Client{Timeout: 10 * time.Second}, log)
	auditSvc := service.NewAuditService(store.audits, log)

	escrowSvc := service.NewEscrowService(
		store.escrows,
		store.ledger,
		payments,
		roles,
		events,
		recorder,
		store.transactor,
		service.EscrowSettings{
			PlatformFeeBPS:  cfg.Escrow.PlatformFeeBPS,
			PlatformAccount: cfg.Escrow.PlatformAccount,
			Currency:        cfg.Escrow.Currency,
		},
		log,
	)

	deps := httpHandler.RouterDeps{
		EscrowSvc:      escrowSvc,
		Roles:          roles,
		TokenSvc:       tokenSvc,
		RateLimitStore: rateLimitStore,
		HealthCheckers: healthCheckers,
		AuditSvc:       auditSvc,
		Logger:         log,
	}
	if collector != nil {
		deps.Metrics = collector
	}
	router := httpHandler.SetupRouter(deps)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	runner := scheduler.NewRunner(ctx, log)
	if cfg.Scheduler.Enabled {
		expire := scheduler.NewExpireUnaccepted(store.escrows, escrowSvc, auditSvc, recorder,
			cfg.Scheduler.AcceptTimeout, cfg.Scheduler.BatchSize, log)
		if err := runner.Add("expire-unaccepted", cfg.Scheduler.ExpireSpec, expire.Job); err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		runner.Start()
		<-gctx.Done()
		log.Info().Msg("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Server forced to shutdown")
		}
		runner.Stop(shutdownCtx)
		if err := events.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("Pending event deliveries abandoned")
		}
		return nil
	})

	return g.Wait()
}
