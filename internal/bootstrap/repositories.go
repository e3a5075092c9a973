package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/treedoctor/treedoctor-api/internal/badge"
	"github.com/treedoctor/treedoctor-api/internal/config"
	"github.com/treedoctor/treedoctor-api/internal/database"
	"github.com/treedoctor/treedoctor-api/internal/database/postgres"
	redisledger "github.com/treedoctor/treedoctor-api/internal/database/redis"
	"github.com/treedoctor/treedoctor-api/internal/handler"
	"github.com/treedoctor/treedoctor-api/internal/repository"
)

// Repositories holds all repository implementations used by the application.
type Repositories struct {
	Students repository.Students
	Trees    repository.Trees
	// Ledger is the cached view over the configured backend
	Ledger *badge.CachedLedger

	// RedisClient is set only for the redis ledger backend
	RedisClient *goredis.Client
}

// OpenDatabase connects the pgx pool and applies embedded migrations when
// MIGRATE_ON_START is set.
func OpenDatabase(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	pool, err := database.NewPool(ctx, database.PoolConfig{
		ConnString:      cfg.GetDBConnString(),
		MaxConns:        cfg.DBMaxConns,
		MaxConnIdleTime: cfg.DBMaxConnIdleTime,
		MaxConnLifetime: cfg.DBMaxConnLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDatabase, err)
	}
	slog.Info(LogMsgDatabaseConnected, "host", cfg.DBHost, "database", cfg.DBName)

	if !cfg.MigrateOnStart {
		slog.Info(LogMsgMigrationsSkipped)
		return pool, nil
	}

	if _, err := database.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
	}
	return pool, nil
}

// InitializeRepositories creates the repositories. Students and trees always
// live in Postgres; the badge ledger follows LEDGER_BACKEND.
func InitializeRepositories(ctx context.Context, cfg *config.Config, dbPool *pgxpool.Pool) (*Repositories, error) {
	repos := &Repositories{
		Students: postgres.NewStudentRepository(dbPool),
		Trees:    postgres.NewTreeRepository(dbPool),
	}

	var ledger repository.Ledger
	switch cfg.LedgerBackend {
	case config.LedgerBackendRedis:
		client, err := redisledger.NewClient(ctx, redisledger.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectRedis, err)
		}
		repos.RedisClient = client
		ledger = redisledger.NewLedger(client, RedisKeyPrefix)
	default:
		ledger = postgres.NewLedgerRepository(dbPool)
	}

	repos.Ledger = badge.NewCachedLedger(ledger, badge.DefaultCacheSize, cfg.BadgeLedgerCacheTTL)
	slog.Info(LogMsgLedgerBackend, "backend", cfg.LedgerBackend, "cache_ttl", cfg.BadgeLedgerCacheTTL)

	return repos, nil
}

// ReadinessChecks returns the dependencies /readyz pings
func ReadinessChecks(dbPool *pgxpool.Pool, repos *Repositories) map[string]handler.Pinger {
	checks := map[string]handler.Pinger{
		ReadinessDatabase: dbPool,
	}
	if repos.RedisClient != nil {
		client := repos.RedisClient
		checks[ReadinessRedis] = handler.PingFunc(func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		})
	}
	return checks
}
