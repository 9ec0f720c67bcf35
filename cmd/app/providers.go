package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/giquina/armora-sub001/internal/domain/auth"
	"github.com/giquina/armora-sub001/internal/domain/booking"
	"github.com/giquina/armora-sub001/internal/domain/catalog"
	"github.com/giquina/armora-sub001/internal/infra/assignmentrepo"
	"github.com/giquina/armora-sub001/internal/infra/config"
	"github.com/giquina/armora-sub001/internal/infra/destinations"
	"github.com/giquina/armora-sub001/internal/infra/officers"
	"github.com/giquina/armora-sub001/internal/infra/payment"
	"github.com/giquina/armora-sub001/internal/infra/sessionstore"
	"github.com/giquina/armora-sub001/internal/infra/snapshotstore"
	"github.com/giquina/armora-sub001/internal/infra/userrepo"
)

func provideAuthConfig(cfg *config.Config) auth.Config {
	return auth.Config{
		Secret:          cfg.Auth.Secret,
		TokenTTL:        cfg.Auth.TokenTTL,
		RefreshTokenTTL: cfg.Auth.RefreshTokenTTL,
	}
}

func provideBookingConfig(cfg *config.Config) booking.Config {
	return booking.Config{
		Terms:        cfg.Booking.Terms,
		RecentLimit:  cfg.Booking.RecentLimit,
		HistoryLimit: cfg.Booking.HistoryLimit,
	}
}

func provideCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	return cfg.BuildCatalog()
}

func provideOfficers(cfg *config.Config) *officers.Generator {
	return officers.NewGenerator(cfg.Officers.Seed)
}

func provideSessionStore(cfg *config.Config) *sessionstore.MemoryStore {
	return sessionstore.NewMemoryStore(cfg.Booking.SessionTTL)
}

// providePostgresPool returns nil when Postgres is not configured or not
// reachable; repositories fall back to memory in that case.
func providePostgresPool(cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	dsn := strings.TrimSpace(cfg.Postgres.DSN)
	if dsn == "" {
		logger.Info("postgres dsn not set, using memory repositories")
		return nil
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repositories", "error", err)
		return nil
	}
	if cfg.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Postgres.MaxConns
	}
	if cfg.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repositories", "error", err)
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repositories", "error", err)
		pool.Close()
		return nil
	}
	logger.Info("postgres enabled")
	return pool
}

func provideUserRepository(pool *pgxpool.Pool) auth.Repository {
	if pool == nil {
		return userrepo.NewMemoryRepository()
	}
	return userrepo.NewPostgresRepository(pool)
}

func provideAssignmentRepository(pool *pgxpool.Pool) booking.AssignmentRepository {
	if pool == nil {
		return assignmentrepo.NewMemoryRepository()
	}
	return assignmentrepo.NewPostgresRepository(pool)
}

func provideDestinationStore(cfg *config.Config, logger *slog.Logger) booking.DestinationStore {
	fallback := destinations.NewMemoryStore(cfg.Booking.RecentLimit)
	if !cfg.Valkey.Enabled {
		return fallback
	}
	opt, err := buildValkeyOptions(cfg)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
		return fallback
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory store", "error", err)
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory store", "error", err)
		client.Close()
		return fallback
	}
	logger.Info("valkey destination store enabled", "addr", cfg.Valkey.Addr)
	return destinations.NewValkeyStore(client, cfg.Valkey.Prefix, cfg.Booking.RecentLimit, cfg.Valkey.RecentTTL)
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	if strings.Contains(cfg.Valkey.Addr, "://") {
		return valkey.ParseURL(cfg.Valkey.Addr)
	}
	return valkey.ClientOption{InitAddress: []string{cfg.Valkey.Addr}}, nil
}

func provideSnapshotStorage(cfg *config.Config, logger *slog.Logger) booking.SnapshotStorage {
	if cfg.Storage.Provider != config.StorageR2 {
		return snapshotstore.NewMemoryStorage()
	}
	store, err := snapshotstore.NewR2Storage(cfg.Storage.Endpoint, cfg.Storage.AccessKey, cfg.Storage.SecretKey, cfg.Storage.Bucket, cfg.Storage.Region, logger)
	if err != nil {
		logger.Error("failed to init r2 snapshot storage, using memory", "error", err)
		return snapshotstore.NewMemoryStorage()
	}
	logger.Info("r2 snapshot storage enabled", "bucket", cfg.Storage.Bucket)
	return store
}

func providePaymentGateway(cfg *config.Config, logger *slog.Logger) booking.PaymentGateway {
	if cfg.Payment.Provider == config.PaymentStripe {
		logger.Info("stripe payment gateway enabled", "currency", cfg.Payment.Currency)
		return payment.NewStripeGateway(cfg.Payment.StripeSecretKey, cfg.Payment.Currency, cfg.Payment.StripePaymentMethod, logger)
	}
	logger.Info("simulated payment gateway enabled")
	return payment.NewSimulatedGateway(cfg.Payment.SimulatedDelay, cfg.Payment.SimulatedDeclineAbove, logger)
}
