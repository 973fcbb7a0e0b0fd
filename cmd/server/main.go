// Command server runs the PADDLA fair-core HTTP surface: commitment
// publication, game start/finish, and status lookups. It wires together
// the commitment slot, the game registry, the optional SQLite archive,
// and the chi-based API server, then serves until interrupted.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/paddla/fair-core/internal/api"
	"github.com/paddla/fair-core/internal/logging"
	"github.com/paddla/fair-core/internal/protocol"
	"github.com/paddla/fair-core/internal/store"
)

func main() {
	addr := flag.String("addr", envOr("ADDR", ":8080"), "listen address")
	dbPath := flag.String("db", envOr("DB_PATH", ""), "path to the SQLite verdict archive (empty disables persistence)")
	rotateInterval := flag.Duration("rotate-interval", 1*time.Hour, "commitment rotation interval")
	gracePeriod := flag.Duration("grace-period", 5*time.Minute, "how long a finished game is retained before sweep")
	sweepInterval := flag.Duration("sweep-interval", 1*time.Minute, "how often the registry sweeper runs")
	flag.Parse()

	log := logging.New()

	slot, err := protocol.NewCommitmentSlot(*rotateInterval)
	if err != nil {
		log.Error("commitment_slot_init_failed", "error", err.Error())
		os.Exit(1)
	}
	registry := protocol.NewRegistry(*gracePeriod)

	var archive store.DB
	if *dbPath != "" {
		db, err := store.NewSQLiteDB(*dbPath)
		if err != nil {
			log.Error("store_open_failed", "path", *dbPath, "error", err.Error())
			os.Exit(1)
		}
		if err := db.Migrate(); err != nil {
			log.Error("store_migrate_failed", "error", err.Error())
			os.Exit(1)
		}
		defer db.Close()
		archive = db
		slot.SetArchive(db)
		log.Info("store_ready", "path", *dbPath)
	} else {
		log.Info("store_disabled", "reason", "no -db path given; running with in-memory state only")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go slot.RunRotation(ctx)
	go sweepLoop(ctx, registry, *sweepInterval, log)

	commitment, _, _ := slot.GetCommitment()
	log.Info("commitment_minted", "commitment", commitment, "rotateInterval", logging.HumanDuration(*rotateInterval))

	srv := api.NewServer(slot, registry, archive, *gracePeriod, log)
	httpServer := &http.Server{
		Addr:              *addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server_listening", "addr", *addr)
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server_failed", "error", err.Error())
			os.Exit(1)
		}
	case <-ctx.Done():
		log.Info("server_shutting_down", "reason", "signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("server_shutdown_failed", "error", err.Error())
		}
	}
}

// sweepLoop periodically clears grace-expired registry entries. Sweep
// frequency is not part of correctness; this just bounds memory growth.
func sweepLoop(ctx context.Context, registry *protocol.Registry, interval time.Duration, log *logging.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := registry.Sweep(now); n > 0 {
				log.Debug("registry_swept", "removed", n)
			}
		}
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
