package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"merididi/internal/platform/config"
	"merididi/internal/platform/health"
	"merididi/internal/platform/httpserver"
	"merididi/internal/platform/logger"
	"merididi/internal/submission/handler"
	submetrics "merididi/internal/submission/metrics"
	"merididi/internal/submission/service"
	"merididi/internal/submission/store"
	httptransport "merididi/internal/transport/http"
)

// main wires high-level dependencies and keeps the server lifecycle
// small. Business logic lives in the internal submission packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	log.Info("initializing merididi",
		"addr", cfg.Addr,
		"metrics_addr", cfg.MetricsAddr,
		"environment", cfg.Environment,
	)

	st := store.NewInMemory()
	m := submetrics.New(prometheus.DefaultRegisterer)
	svc := service.New(st, log, service.WithMetrics(m))
	h := handler.New(svc, log, cfg.MaxUploadBytes)

	healthH := health.New(cfg.Environment)
	healthH.RegisterCheck("store", func() error {
		st.ContactCount(context.Background())
		return nil
	})
	healthH.RegisterStats(func() map[string]int {
		contacts, workers := svc.Counts(context.Background())
		return map[string]int{"contacts": contacts, "workers": workers}
	})

	router := httptransport.NewRouter(h, healthH, m, cfg, log)
	apiSrv := httpserver.New(cfg.Addr, router)

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsSrv := httpserver.New(cfg.MetricsAddr, metricsMux)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := apiSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		log.Info("starting metrics server", "addr", cfg.MetricsAddr)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down gracefully")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := apiSrv.Shutdown(shutdownCtx)
		if merr := metricsSrv.Shutdown(shutdownCtx); err == nil {
			err = merr
		}
		return err
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
