package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"invoice-dashboard/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Applies every .sql file under the migrations directory in lexical order.
func main() {
	dir := flag.String("dir", "migrations", "directory containing .sql migration files")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DB.BuildDSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		slog.Error("failed to ping database", "error", err)
		os.Exit(1)
	}

	files, err := filepath.Glob(filepath.Join(*dir, "*.sql"))
	if err != nil {
		slog.Error("failed to list migration files", "error", err)
		os.Exit(1)
	}
	sort.Strings(files)

	for _, file := range files {
		sqlBytes, err := os.ReadFile(file)
		if err != nil {
			slog.Error("failed to read migration", "file", file, "error", err)
			os.Exit(1)
		}

		slog.Info("applying migration", "file", file)
		if _, err := pool.Exec(ctx, string(sqlBytes)); err != nil {
			slog.Error("failed to apply migration", "file", file, "error", err)
			os.Exit(1)
		}
	}

	slog.Info("migrations applied", "count", len(files))
}
