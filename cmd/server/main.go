package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"phonedir/internal/directory"
	directoryMetrics "phonedir/internal/directory/metrics"
	"phonedir/internal/directory/service"
	"phonedir/internal/directory/store"
	"phonedir/internal/health"
	"phonedir/internal/phone"
	"phonedir/internal/platform/config"
	"phonedir/internal/platform/httpserver"
	"phonedir/internal/platform/logger"
	"phonedir/internal/platform/metrics"
	"phonedir/internal/platform/redis"
	"phonedir/internal/platform/tracing"
	httptransport "phonedir/internal/transport/http"
)

// main wires dependencies and owns the server lifecycle. Business logic lives
// in the internal service packages.
func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(os.Stdout, cfg.Log.Format, cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		log.Error("failed to connect to redis", "addr", cfg.Redis.Addr(), "error", err)
		os.Exit(1)
	}
	defer rdb.Close()
	log.Info("redis connected", "addr", cfg.Redis.Addr(), "db", cfg.Redis.DB)

	tp := tracing.New(cfg.Tracing.SampleRatio)
	otel.SetTracerProvider(tp)
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Error("failed to shut down tracer provider", "error", err)
		}
	}()

	httpMetrics := metrics.New(prometheus.DefaultRegisterer)
	opMetrics := directoryMetrics.New(prometheus.DefaultRegisterer)

	validate, err := phone.NewValidator()
	if err != nil {
		log.Error("failed to build validator", "error", err)
		os.Exit(1)
	}

	svc, err := directory.NewService(
		store.NewRedis(rdb.Client, store.WithMetrics(opMetrics)),
		service.WithLogger(log),
		service.WithMetrics(opMetrics),
		service.WithTracerProvider(tp),
	)
	if err != nil {
		log.Error("failed to build directory service", "error", err)
		os.Exit(1)
	}

	router := httptransport.NewRouter(log, httpMetrics, prometheus.DefaultGatherer,
		health.New(rdb, log),
		directory.NewHandler(svc, log, validate),
	)
	srv := httpserver.New(cfg.Server.Addr, router, log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting phonedir", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down", "timeout", cfg.Server.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", "error", err)
		rdb.Close()
		os.Exit(1)
	}
	log.Info("server stopped")
}
