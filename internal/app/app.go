package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/utafrali/storefront/internal/catalog"
	"github.com/utafrali/storefront/internal/config"
	"github.com/utafrali/storefront/internal/event"
	handler "github.com/utafrali/storefront/internal/handler/http"
	"github.com/utafrali/storefront/internal/repository"
	"github.com/utafrali/storefront/internal/repository/memory"
	pgrepo "github.com/utafrali/storefront/internal/repository/postgres"
	redisrepo "github.com/utafrali/storefront/internal/repository/redis"
	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/internal/store"
	"github.com/utafrali/storefront/pkg/database"
	"github.com/utafrali/storefront/pkg/health"
	pkgkafka "github.com/utafrali/storefront/pkg/kafka"
	"github.com/utafrali/storefront/pkg/middleware"
	"github.com/utafrali/storefront/pkg/tracing"
)

const (
	serviceName     = "storefront-service"
	startupTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	rdb        *redis.Client
	pool       *pgxpool.Pool
	producer   *pkgkafka.Producer
	registry   *store.Registry
	httpServer *http.Server
	shutdownTr func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	a := &App{cfg: cfg, logger: logger}
	healthHandler := health.NewHandler()

	shutdownTr, err := tracing.Init(ctx, tracing.Config{
		Enabled:      cfg.OTELEnabled,
		ServiceName:  serviceName,
		Environment:  cfg.Environment,
		OTLPEndpoint: cfg.OTELEndpoint,
		SampleRate:   cfg.OTELSampleRate,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}
	a.shutdownTr = shutdownTr
	database.SetSlowOperationLogging(cfg.SlowQueryThreshold(), logger)

	snapshots, err := a.openSnapshots(ctx, healthHandler)
	if err != nil {
		a.closeAll()
		return nil, err
	}

	products, err := a.openCatalog(ctx, healthHandler)
	if err != nil {
		a.closeAll()
		return nil, err
	}

	var events service.EventPublisher = event.Noop{}
	if cfg.KafkaEnabled {
		kcfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
		kcfg.Async = cfg.KafkaAsync
		a.producer = pkgkafka.NewProducer(kcfg, logger)
		events = event.NewProducer(a.producer, logger)
		healthHandler.Register("kafka", a.producer.Ping)
		logger.Info("kafka producer initialized",
			slog.Any("brokers", cfg.KafkaBrokers),
			slog.Bool("async", cfg.KafkaAsync),
		)
	}

	a.registry = store.NewRegistry(snapshots, cfg.StoreIdleTTL(), cfg.StoreSweepInterval(), logger)
	catalogService := catalog.NewService(products, logger)
	cartService := service.NewCartService(a.registry, catalogService, events, cfg.Currency, logger)
	wishlistService := service.NewWishlistService(a.registry, catalogService, events, cfg.Currency, logger)

	cors := middleware.DefaultCORSConfig()
	cors.AllowedOrigins = cfg.CORSOrigins

	router := handler.NewRouter(catalogService, cartService, wishlistService, healthHandler, logger, handler.RouterConfig{
		PprofCIDRs:      cfg.PprofAllowedCIDRs,
		CORS:            cors,
		ProductCacheAge: cfg.ProductCacheAge,
	})

	a.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      35 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return a, nil
}

func (a *App) openSnapshots(ctx context.Context, hh *health.Handler) (repository.SnapshotRepository, error) {
	if a.cfg.SnapshotBackend == config.BackendMemory {
		a.logger.Warn("using in-memory snapshots; carts and wishlists will not survive a restart")
		return memory.NewSnapshotRepository(), nil
	}

	rdb, err := database.NewRedisClient(ctx, database.RedisConfig{
		Addr:     a.cfg.RedisAddr,
		Password: a.cfg.RedisPass,
		DB:       a.cfg.RedisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	a.rdb = rdb
	a.logger.Info("connected to Redis",
		slog.String("addr", a.cfg.RedisAddr),
		slog.Int("db", a.cfg.RedisDB),
	)

	registerCollector(database.NewRedisPoolCollector(rdb, serviceName), a.logger)
	hh.Register("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	return redisrepo.NewSnapshotRepository(rdb, a.cfg.SnapshotTTL()), nil
}

func (a *App) openCatalog(ctx context.Context, hh *health.Handler) (repository.ProductRepository, error) {
	if a.cfg.CatalogBackend == config.BackendStatic {
		seed, err := catalog.DefaultProducts()
		if err != nil {
			return nil, err
		}
		repo, err := memory.NewProductRepository(seed)
		if err != nil {
			return nil, fmt.Errorf("load static catalog: %w", err)
		}
		a.logger.Info("serving static catalog", slog.Int("products", len(seed)))
		return repo, nil
	}

	pool, err := database.NewPostgresPool(ctx, database.PostgresConfig{
		Host:            a.cfg.PostgresHost,
		Port:            a.cfg.PostgresPort,
		User:            a.cfg.PostgresUser,
		Password:        a.cfg.PostgresPassword,
		DBName:          a.cfg.PostgresDB,
		SSLMode:         a.cfg.PostgresSSLMode,
		MaxConns:        a.cfg.DBMaxConns,
		MinConns:        a.cfg.DBMinConns,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: 30 * time.Minute,
	}, a.logger)
	if err != nil {
		return nil, err
	}
	a.pool = pool

	if err := pgrepo.Migrate(ctx, pool, a.logger); err != nil {
		return nil, fmt.Errorf("migrate catalog: %w", err)
	}

	registerCollector(database.NewPostgresPoolCollector(pool, serviceName), a.logger)
	hh.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	return pgrepo.NewProductRepository(pool), nil
}

func registerCollector(c prometheus.Collector, logger *slog.Logger) {
	if err := prometheus.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			logger.Warn("failed to register pool metrics", slog.String("error", err.Error()))
		}
	}
}

// Handler exposes the HTTP router.
func (a *App) Handler() http.Handler {
	return a.httpServer.Handler
}

// Run starts the HTTP server and the idle store sweeper and blocks until
// the context is canceled or either of them fails.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("starting HTTP server", slog.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return a.registry.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		}
		return nil
	})

	err := g.Wait()
	a.closeAll()
	return err
}

// closeAll releases every client opened so far.
func (a *App) closeAll() {
	a.logger.Info("shutting down application...")

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
	}
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}
	if a.pool != nil {
		a.pool.Close()
	}
	if a.shutdownTr != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.shutdownTr(ctx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
		}
	}

	a.logger.Info("application shutdown complete")
}
