package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"astrorekha_backend/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

// Applies the commerce schema migrations (users, payments, promo codes,
// pricing settings, A/B tables, admins) in filename order. Without -apply it
// only lists what would run.
func main() {
	logger.Init(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_JSON") == "true")
	_ = godotenv.Load()

	apply := flag.Bool("apply", false, "apply migrations instead of listing them")
	flag.Parse()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	migDir := os.Getenv("MIGRATIONS_DIR")
	if migDir == "" {
		migDir = filepath.Join("internal", "migrations")
	}

	entries, err := os.ReadDir(migDir)
	if err != nil {
		logger.Fatal("failed to read migrations dir", "dir", migDir, "error", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	if !*apply {
		for _, name := range names {
			logger.Info("pending migration", "file", name)
		}
		return
	}

	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		logger.Fatal("failed to create database pool", "error", err)
	}
	defer db.Close()

	for _, name := range names {
		sql, err := os.ReadFile(filepath.Join(migDir, name))
		if err != nil {
			logger.Fatal("failed to read migration", "file", name, "error", err)
		}
		if _, err := db.Exec(context.Background(), string(sql)); err != nil {
			logger.Fatal("failed to apply migration", "file", name, "error", err)
		}
		logger.Info("applied migration", "file", name)
	}
	logger.Info("migrations complete", "count", len(names))
}
