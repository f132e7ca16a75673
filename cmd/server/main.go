package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/restledger/internal/adapter/http"
	"github.com/iho/restledger/internal/adapter/http/handler"
	"github.com/iho/restledger/internal/adapter/http/middleware"
	"github.com/iho/restledger/internal/adapter/repository"
	redisRepo "github.com/iho/restledger/internal/adapter/repository/redis"
	"github.com/iho/restledger/internal/infrastructure/config"
	"github.com/iho/restledger/internal/infrastructure/logger"
	"github.com/iho/restledger/internal/infrastructure/metrics"
	"github.com/iho/restledger/internal/infrastructure/redis"
	"github.com/iho/restledger/internal/infrastructure/seed"
	"github.com/iho/restledger/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	lg := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = lg
	zerolog.DefaultContextLogger = &lg

	if err := run(cfg, lg); err != nil {
		lg.Fatal().Err(err).Msg("server failed")
	}
}

// app is the wired application.
type app struct {
	router http.Handler
	close  func()
}

func build(ctx context.Context, cfg *config.Config, lg zerolog.Logger, postingMetrics usecase.PostingMetrics) (*app, error) {
	store, err := openStorage(ctx, cfg, lg)
	if err != nil {
		return nil, err
	}
	closers := []func(){store.close}
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var redisClient *goredis.Client
	if cfg.RedisEnabled() {
		redisClient, err = redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			closeAll()
			return nil, err
		}
		closers = append(closers, func() { redisClient.Close() })
		lg.Info().Msg("connected to redis")
	}

	idGen := repository.NewULIDGenerator()
	retrier := repository.NewRetrier(store.retryable).WithLogger(lg)

	accountUC := usecase.NewAccountUseCase(store.groups, store.accounts, idGen).
		WithMobileRegion(cfg.MobileRegion).
		WithLogger(lg)
	balanceUC := usecase.NewBalanceUseCase(store.accounts, store.entries)
	reportUC := usecase.NewReportUseCase(accountUC, balanceUC)
	ledgerUC := usecase.NewLedgerUseCase(store.ledger)
	postingUC := usecase.NewPostingUseCase(store.txManager, store.accounts, store.vouchers, store.entries, idGen).
		WithRetrier(retrier).
		WithMetrics(postingMetrics).
		WithLogger(lg)

	checks := map[string]handler.HealthCheck{cfg.StorageDriver: store.check}

	routerCfg := httpAdapter.RouterConfig{
		GroupHandler:       handler.NewGroupHandler(accountUC),
		AccountHandler:     handler.NewAccountHandler(accountUC, balanceUC),
		TransactionHandler: handler.NewTransactionHandler(postingUC),
		ReportHandler:      handler.NewReportHandler(reportUC),
		LedgerHandler:      handler.NewLedgerHandler(ledgerUC),
		Logger:             &lg,
	}
	if cfg.RateLimitRPS > 0 {
		routerCfg.RateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	if redisClient != nil {
		accountUC.WithCache(redisRepo.NewCache(redisClient), cfg.AccountCacheTTL)
		postingUC.WithLocker(redisRepo.NewLocker(redisClient, cfg.LockTTL))
		routerCfg.IdempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
		routerCfg.IdempotencyTTL = cfg.IdempotencyTTL
		checks["redis"] = redis.Check(redisClient)
	}
	routerCfg.HealthHandler = handler.NewHealthHandler(checks)

	if cfg.SeedFile != "" {
		chart, err := seed.LoadFile(cfg.SeedFile)
		if err != nil {
			closeAll()
			return nil, err
		}
		res, err := seed.Apply(ctx, chart, accountUC)
		if err != nil {
			closeAll()
			return nil, fmt.Errorf("seed %s: %w", cfg.SeedFile, err)
		}
		lg.Info().
			Int("groups", res.GroupsCreated).
			Int("accounts", res.AccountsCreated).
			Int("skipped", len(res.Skipped)).
			Msg("chart of accounts seeded")
	}

	return &app{router: httpAdapter.NewRouter(routerCfg), close: closeAll}, nil
}

func run(cfg *config.Config, lg zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := build(ctx, cfg, lg, metrics.New(nil))
	if err != nil {
		return err
	}
	defer a.close()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      a.router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Info().Str("port", cfg.HTTPPort).Str("storage", cfg.StorageDriver).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	lg.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	lg.Info().Msg("server stopped")
	return nil
}
