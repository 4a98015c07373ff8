package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/gimnis/auth"
	"github.com/danielhkuo/gimnis/cliparse"
	"github.com/danielhkuo/gimnis/db"
	"github.com/danielhkuo/gimnis/middleware"
	"github.com/danielhkuo/gimnis/registry"
	"github.com/danielhkuo/gimnis/router"
	"github.com/danielhkuo/gimnis/scoring"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(cfg.NewLogger(os.Stdout))

	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	rules, err := scoring.LoadRules(cfg.RulesFile)
	if err != nil {
		slog.Error("scoring rules invalid", "file", cfg.RulesFile, "error", err)
		os.Exit(1)
	}

	if cfg.SeedFile != "" {
		seed, err := registry.Load(cfg.SeedFile)
		if err != nil {
			slog.Error("seed file invalid", "file", cfg.SeedFile, "error", err)
			os.Exit(1)
		}
		if err := registry.Apply(context.Background(), dbConn, seed); err != nil {
			slog.Error("seeding failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Registry seeded", "judges", len(seed.Judges), "competitors", len(seed.Competitors))
	}

	if cfg.SecretaryKey != "" {
		slog.Info("Secretary routes protected", "key_fingerprint", auth.Fingerprint(cfg.SecretaryKey))
	} else {
		slog.Warn("No secretary key configured; secretary routes are open")
	}

	mux := router.NewRouter(dbConn, cfg, rules)

	server := http.Server{
		Handler:           middleware.CORS(middleware.WithRequestID(mux)),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Warn("graceful shutdown failed", "error", err)
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "require_active_vote", cfg.RequireActiveVote)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed")
	}
}
