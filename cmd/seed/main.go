// Command seed loads a synthetic catalog into the storefront's PostgreSQL
// products table for load testing the search endpoints.
//
//	go run ./cmd/seed -count 10000 -replace
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/utafrali/storefront/internal/catalog"
	"github.com/utafrali/storefront/internal/config"
	pgrepo "github.com/utafrali/storefront/internal/repository/postgres"
	"github.com/utafrali/storefront/pkg/database"
	"github.com/utafrali/storefront/pkg/logger"
)

const generatedPrefix = "gen-"

func main() {
	count := flag.Int("count", 10000, "number of products to generate")
	seed := flag.Uint64("seed", 1, "random seed; the same seed yields the same catalog")
	batch := flag.Int("batch", 500, "rows per COPY batch")
	replace := flag.Bool("replace", false, "delete previously generated products first")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	log := logger.New("storefront-seed", cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, log, *count, *seed, *batch, *replace); err != nil {
		log.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger, count int, seed uint64, batch int, replace bool) error {
	pool, err := database.NewPostgresPool(ctx, database.PostgresConfig{
		Host:     cfg.PostgresHost,
		Port:     cfg.PostgresPort,
		User:     cfg.PostgresUser,
		Password: cfg.PostgresPassword,
		DBName:   cfg.PostgresDB,
		SSLMode:  cfg.PostgresSSLMode,
		MaxConns: 2,
		MinConns: 1,
	}, log)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pgrepo.Migrate(ctx, pool, log); err != nil {
		return err
	}

	if replace {
		n, err := pgrepo.DeleteByIDPrefix(ctx, pool, generatedPrefix)
		if err != nil {
			return err
		}
		log.Info("removed generated products", slog.Int64("count", n))
	}

	pos, err := pgrepo.MaxPosition(ctx, pool)
	if err != nil {
		return err
	}

	if batch < 1 {
		batch = 500
	}
	products := catalog.Synthetic(count, seed)
	start := time.Now()
	var inserted int64
	for lo := 0; lo < len(products); lo += batch {
		hi := min(lo+batch, len(products))
		n, err := pgrepo.BulkInsert(ctx, pool, products[lo:hi], pos+lo+1)
		if err != nil {
			return err
		}
		inserted += n
		log.Info("batch inserted", slog.Int("from", lo+1), slog.Int("to", hi))
	}

	log.Info("seed complete",
		slog.Int64("inserted", inserted),
		slog.Duration("elapsed", time.Since(start)),
	)
	return nil
}
