// Command rodan runs the event ingestion and fan-out service.
//
// Logging:
//   - Base logger is created here with output format (text/JSON) chosen by
//     server.production, via internal/logging.NewBase
//   - Each component is handed its own logger scoped with
//     .With("component", name), so ComponentFilterHandler can filter or
//     (via SetLevel/ClearLevel) re-level any one component independently
//   - No global slog configuration (no slog.SetDefault)
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rodan/internal/auth"
	"rodan/internal/background"
	"rodan/internal/broadcast"
	"rodan/internal/config"
	"rodan/internal/httpapi"
	"rodan/internal/ingest"
	"rodan/internal/logbuffer"
	"rodan/internal/logging"
	"rodan/internal/logwriter"
	"rodan/internal/query"
	"rodan/internal/segment"
)

func main() {
	if err := run(); err != nil {
		slog.Default().Error("rodan exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := os.Getenv("CONFIG_FILE")
	if configPath == "" {
		return fmt.Errorf("CONFIG_FILE environment variable is not set")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := logging.NewBase(cfg.Server.Production, slog.LevelInfo)
	snapshot := config.NewSnapshot(cfg)

	store := segment.NewStore(cfg.App.EventSegmentSize, cfg.App.EventMaxSegments)
	hub := broadcast.NewHub(cfg.BroadcastCapacity())
	logBuf := logbuffer.NewBuffer()
	ingestor := ingest.New(store, hub, logBuf, cfg.App.EventLogging)
	querier := query.New(store)

	var verifier *auth.Verifier
	if cfg.App.AuthRequired {
		verifier = auth.NewVerifier([]byte(cfg.Server.Security.JWTSecret))
	}

	var keyChecker *auth.KeyChecker
	if cfg.App.Events != nil && cfg.App.Events.HTTP != nil && cfg.App.Events.HTTP.HashedAPIKey != "" {
		keyChecker = auth.NewKeyChecker(cfg.App.Events.HTTP.HashedAPIKey)
	}

	srv := httpapi.New(snapshot, hub, querier, ingestor, verifier, keyChecker, logger.With("component", "httpapi"))

	var sched *background.Scheduler
	var writer *logwriter.Writer
	if cfg.App.EventLogging {
		writer = logwriter.New(logBuf, cfg.App.EventLogFile, logger.With("component", "logwriter"))
		rotator := logwriter.NewRotator(cfg.App.EventLogFile, cfg.App.EventLogRotationDuration, logger.With("component", "rotator"))
		sched, err = background.New(writer, rotator, 0, cfg.App.EventLogRotationDuration, logger.With("component", "background"))
		if err != nil {
			return fmt.Errorf("build background scheduler: %w", err)
		}
		sched.Start()
	}

	httpSrv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
			return
		}
		serveErr <- nil
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
	}

	logger.Info("shutting down")

	// Closing the hub ends every subscriber stream, so Shutdown is not left
	// waiting on long-lived SSE connections that would otherwise never end.
	hub.Close()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	if sched != nil {
		if err := sched.Stop(); err != nil {
			logger.Error("background scheduler shutdown error", "error", err)
		}
		writer.Flush()
	}

	logger.Info("shutdown complete")
	return nil
}
