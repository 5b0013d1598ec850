package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"

	"github.com/neomorfeo/offerforge/internal/adapter/fsm"
	"github.com/neomorfeo/offerforge/internal/adapter/media"
	"github.com/neomorfeo/offerforge/internal/adapter/river"
	"github.com/neomorfeo/offerforge/internal/adapter/sqlite"
	"github.com/neomorfeo/offerforge/internal/app"

	handler "github.com/neomorfeo/offerforge/internal/adapter/http"
	otelx "github.com/neomorfeo/offerforge/internal/adapter/otel"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("offerforge: %v", err)
	}
}

func run() error {
	port := envOrDefault("PORT", "8080")
	dbPath := envOrDefault("DATABASE_PATH", "offerforge.db")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// --- Observability ---
	providers, err := otelx.Setup(ctx, otelx.ConfigFromEnv())
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}

	// --- Adapters (out) ---
	db, err := otelx.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}

	eventLog, err := sqlite.NewFromDB(db)
	if err != nil {
		return fmt.Errorf("event log: %w", err)
	}
	defer eventLog.Close()

	tracedLog := otelx.NewTracingEventLog(eventLog)

	queue, err := river.Setup(ctx, db, tracedLog)
	if err != nil {
		return fmt.Errorf("river: %w", err)
	}
	if err := queue.Start(ctx); err != nil {
		return fmt.Errorf("river start: %w", err)
	}

	publisher := otelx.NewTracingPublisher(river.NewPublisher(queue))

	// --- Application ---
	svc := app.NewWizardService(publisher, fsm.New(), media.New())

	// --- Adapters (in) ---
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(otelchi.Middleware("offerforge", otelchi.WithChiRoutes(router)))

	api := humachi.New(router, huma.DefaultConfig("offerforge", "0.1.0"))
	handler.Register(api, svc, tracedLog)

	// --- Server ---
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("offerforge listening on :%s", port)
		log.Printf("API docs: http://localhost:%s/docs", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}
	log.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
	if err := queue.Stop(shutdownCtx); err != nil {
		log.Printf("river stop error: %v", err)
	}
	if err := providers.Shutdown(shutdownCtx); err != nil {
		log.Printf("otel shutdown error: %v", err)
	}

	log.Println("stopped")
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
