package main

import (
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/evanrosten/livepoll/broadcast"
	"github.com/evanrosten/livepoll/cliparse"
	"github.com/evanrosten/livepoll/db"
	"github.com/evanrosten/livepoll/ledger"
	"github.com/evanrosten/livepoll/router"
)

func main() {
	// Load .env if present; real env vars win
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Pick the ledger store
	store, cleanup, err := openStore(cfg)
	if err != nil {
		slog.Error("store initialization failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	led := ledger.New(store)
	registry := broadcast.NewRegistry()

	// Create router
	mux := router.NewRouter(led, registry, cfg)

	// Create server
	server := http.Server{
		Handler: mux,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "store", cfg.DatabaseType)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// openStore builds the configured ledger store. The cleanup func closes
// the database connection for the durable backends and is a no-op for
// the memory backend.
func openStore(cfg cliparse.Config) (ledger.Store, func(), error) {
	if cfg.DatabaseType == cliparse.StoreMemory {
		return ledger.NewMemoryStore(), func() {}, nil
	}

	driver := "sqlite"
	if cfg.DatabaseType == cliparse.StorePostgres {
		driver = "postgres"
	}

	conn, err := sql.Open(driver, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}

	// Verify connection
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, nil, err
	}

	// Create schema (tables)
	if err := db.CreateSchema(conn); err != nil {
		conn.Close()
		return nil, nil, err
	}
	slog.Info("Database schema ready", "driver", driver)

	return db.NewSQLStore(conn), func() { conn.Close() }, nil
}
