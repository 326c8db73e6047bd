package main

import (
	"context"
	"deconfliction-service/internal/adapters/cache"
	"deconfliction-service/internal/api"
	"deconfliction-service/internal/config"
	"deconfliction-service/internal/platform/logging"
	"deconfliction-service/internal/platform/store"
	"deconfliction-service/internal/services"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
)

// main is the application composition root.
// It wires concrete adapters (flight store, verdict cache) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	logger, logCloser, err := logging.New(logging.Config{
		Level:  config.Get("LOG_LEVEL", "info"),
		Format: config.Get("LOG_FORMAT", "text"),
		File:   config.Get("LOG_FILE", ""),
	})
	if err != nil {
		log.Fatal(err)
	}

	os.Exit(shutdown(logger, logCloser, run(logger)))
}

// shutdown logs runErr, closes the log writer and returns the exit code.
// os.Exit skips deferred calls, so the writer is closed here instead.
func shutdown(logger *slog.Logger, logCloser io.Closer, runErr error) int {
	code := 0
	if runErr != nil {
		logger.Error("server stopped", slog.Any("err", runErr))
		code = 1
	}
	if err := logCloser.Close(); err != nil {
		fmt.Fprintln(os.Stderr, "close log writer:", err)
		code = 1
	}
	return code
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc, err := config.Location()
	if err != nil {
		return err
	}
	params := config.Params()

	backend, err := store.Open(ctx)
	if err != nil {
		return err
	}
	defer backend.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if config.Get("SEED_ON_START", "true") == "true" {
		if err := backend.InitAndSeed(ctx, config.Get("SEED_PATH", "data/seeds/flights.json")); err != nil {
			return err
		}
	}

	svc := &services.Deconfliction{
		Flights:  backend.Repo,
		Location: loc,
		Logger:   logger,
	}

	if url := config.Get("REDIS_URL", ""); url != "" {
		vc, err := cache.NewRedisVerdictCacheFromURL(ctx, url, config.GetDuration("VERDICT_CACHE_TTL", cache.DefaultTTL))
		if err != nil {
			return err
		}
		defer vc.Close()
		svc.Cache = vc
		logger.Info("verdict cache enabled", slog.Duration("ttl", vc.TTL))
	}

	router := api.NewRouter(svc, params)

	port := config.Get("PORT", "8080")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			slog.String("addr", srv.Addr),
			slog.String("store", backend.Name),
			slog.Float64("safety_radius", params.SafetyRadius),
			slog.Float64("dt", params.Dt))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
