package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/iho/restledger/internal/adapter/http/handler"
	"github.com/iho/restledger/internal/adapter/repository/memory"
	postgresRepo "github.com/iho/restledger/internal/adapter/repository/postgres"
	sqliteRepo "github.com/iho/restledger/internal/adapter/repository/sqlite"
	"github.com/iho/restledger/internal/infrastructure/config"
	"github.com/iho/restledger/internal/infrastructure/postgres"
	"github.com/iho/restledger/internal/infrastructure/sqlite"
	"github.com/iho/restledger/internal/usecase"
)

// storage is one driver's set of repositories.
type storage struct {
	groups    usecase.GroupRepository
	accounts  usecase.AccountRepository
	vouchers  usecase.VoucherRepository
	entries   usecase.EntryRepository
	ledger    usecase.LedgerRepository
	txManager usecase.TransactionManager

	retryable func(error) bool
	check     handler.HealthCheck
	close     func()
}

func openStorage(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*storage, error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg, logger)
	case config.DriverSQLite:
		return openSQLite(ctx, cfg, logger)
	case config.DriverMemory:
		return openMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func openPostgres(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*storage, error) {
	if cfg.RunMigrations {
		if err := postgres.RunMigrations(cfg.DatabaseURL, logger); err != nil {
			return nil, err
		}
	}

	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL:    cfg.DatabaseURL,
		MaxConns:       cfg.DatabaseMaxConns,
		MinConns:       cfg.DatabaseMinConns,
		ConnectTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		return nil, err
	}
	logger.Info().Msg("connected to postgres")

	return &storage{
		groups:    postgresRepo.NewGroupRepository(pool),
		accounts:  postgresRepo.NewAccountRepository(pool),
		vouchers:  postgresRepo.NewVoucherRepository(pool),
		entries:   postgresRepo.NewEntryRepository(pool),
		ledger:    postgresRepo.NewLedgerRepository(pool),
		txManager: postgresRepo.NewTxManager(pool),
		retryable: postgresRepo.IsRetryable,
		check:     pool.Ping,
		close:     pool.Close,
	}, nil
}

func openSQLite(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*storage, error) {
	db, err := sqlite.Open(ctx, cfg.SQLitePath)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		if err := sqlite.RunMigrations(db, logger); err != nil {
			db.Close()
			return nil, err
		}
	}
	logger.Info().Str("path", cfg.SQLitePath).Msg("opened sqlite database")

	return &storage{
		groups:    sqliteRepo.NewGroupRepository(db),
		accounts:  sqliteRepo.NewAccountRepository(db),
		vouchers:  sqliteRepo.NewVoucherRepository(db),
		entries:   sqliteRepo.NewEntryRepository(db),
		ledger:    sqliteRepo.NewLedgerRepository(db),
		txManager: sqliteRepo.NewTxManager(db),
		retryable: sqliteRepo.IsRetryable,
		check:     db.PingContext,
		close:     func() { db.Close() },
	}, nil
}

func openMemory() *storage {
	store := memory.NewStore()
	return &storage{
		groups:    store.Groups(),
		accounts:  store.Accounts(),
		vouchers:  store.Vouchers(),
		entries:   store.Entries(),
		ledger:    store.Ledger(),
		txManager: store.TxManager(),
		check:     func(context.Context) error { return nil },
		close:     func() {},
	}
}
