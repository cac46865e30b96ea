// main is the entry point of the student registry service.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file (plus .env / env overrides)
//  2. Initialise the logger
//  3. Build the in-memory record store and seed the roster
//  4. Register all HTTP routes and wrap them in middleware
//  5. Start the HTTP server in a separate goroutine
//  6. Block the main goroutine until an OS signal (Ctrl+C / kill) arrives
//  7. Gracefully shut down: finish in-flight requests, then exit
//
// RUNNING THE SERVER:
//
//	go run ./cmd/student-registry --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/student-registry
//
// The store is memory-resident: its contents live exactly as long as the
// process. Restarting the server resets the collection to the seed roster.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/campus-labs/student-registry/internal/config"
	"github.com/campus-labs/student-registry/internal/http/handlers/student"
	"github.com/campus-labs/student-registry/internal/http/middleware"
	"github.com/campus-labs/student-registry/internal/storage/memory"
	"github.com/campus-labs/student-registry/internal/types"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	// MustLoad reads the YAML config and fatals if anything is wrong.
	// If this returns, config is guaranteed valid.
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	// slog is Go's structured logger. Structured logging writes key=value
	// pairs rather than plain strings, making logs easy to filter/search.
	log := setupLogger(cfg.Env)

	log.Info("starting student-registry",
		slog.String("env", cfg.Env),
		slog.String("version", "1.0.0"),
	)

	// ── 3. Build and Seed the Store ───────────────────────────────────────
	// The store is constructed here and handed to the handlers through the
	// storage.Storage interface; nothing else owns record state. Seed data
	// goes through the normal create path, so a bad seed file fails fast
	// at boot instead of corrupting the collection.
	store := memory.New()

	roster := memory.DefaultSeed()
	if cfg.SeedPath != "" {
		raw, err := os.ReadFile(cfg.SeedPath)
		if err != nil {
			log.Error("failed to read seed file",
				slog.String("path", cfg.SeedPath),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		// The seed file is a JSON array of create payloads.
		var fromFile []types.NewRecord
		if err := json.Unmarshal(raw, &fromFile); err != nil {
			log.Error("failed to parse seed file",
				slog.String("path", cfg.SeedPath),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		roster = fromFile
	}

	if err := store.Seed(roster); err != nil {
		log.Error("failed to seed store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("store seeded", slog.Int("records", len(roster)))

	// ── 4. Register HTTP Routes ───────────────────────────────────────────
	// The handler functions (student.New, student.GetByID, etc.) are
	// FACTORIES: they receive the store once and return the actual handler.
	//
	// Route table:
	//   POST   /api/students        → create a record
	//   GET    /api/students        → list records (filter/sort/paginate)
	//   GET    /api/students/{id}   → get one record by id
	//   PATCH  /api/students/{id}   → partially update a record
	//   DELETE /api/students/{id}   → delete a record (returns it)
	//   GET    /metrics             → Prometheus metrics
	router := http.NewServeMux()

	router.HandleFunc("POST /api/students", student.New(store))
	router.HandleFunc("GET /api/students", student.GetList(store))
	router.HandleFunc("GET /api/students/{id}", student.GetByID(store))
	router.HandleFunc("PATCH /api/students/{id}", student.Update(store))
	router.HandleFunc("DELETE /api/students/{id}", student.Delete(store))
	router.Handle("GET /metrics", promhttp.Handler())

	// Middleware chain, outermost first: request id → access log →
	// request counter → panic recovery → router.
	handler := middleware.RequestID(
		middleware.Logger(log,
			middleware.Metrics(
				middleware.Recover(log, router))))

	// ── 5. Create the HTTP Server ─────────────────────────────────────────
	server := &http.Server{
		Addr:    cfg.HTTPServer.Addr, // e.g. "localhost:8082"
		Handler: handler,

		// Production hardening: timeouts prevent slow-client attacks.
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ── 6. Start Server in a Goroutine ────────────────────────────────────
	// ListenAndServe blocks forever, so it runs in its own goroutine and
	// the main goroutine waits for the shutdown signal below.
	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		// ListenAndServe returns http.ErrServerClosed when Shutdown() is
		// called. That's expected, not an error worth logging.
		if err := server.ListenAndServe(); err != nil &&
			err != http.ErrServerClosed {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// ── 7. Wait for Shutdown Signal ───────────────────────────────────────
	// Buffered so we don't miss the signal if main is briefly busy.
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	// Give in-flight requests up to 5 seconds to finish.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
