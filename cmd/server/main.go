package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/reneeli0223/Flight-Scheduler/internal/api"
	"github.com/reneeli0223/Flight-Scheduler/internal/logging"
	"github.com/reneeli0223/Flight-Scheduler/internal/metrics"
	"github.com/reneeli0223/Flight-Scheduler/internal/network"
	"github.com/reneeli0223/Flight-Scheduler/internal/routes"
)

func main() {
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "development"
	}

	if err := logging.Init(appEnv); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logging.Close()

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	logging.Info("Flight scheduler starting up",
		"environment", appEnv,
		"addr", addr,
	)

	upSince := time.Now()
	deps := api.InitDependencies(network.New(), metrics.NewRegistry())
	router := routes.RegisterRoutes(deps, upSince)

	// Metrics endpoint lives outside the chi router so it skips the
	// request middleware chain.
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router)
	logging.Info("Prometheus metrics endpoint registered at /metrics")

	server := &http.Server{Addr: addr, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logging.Info("Server starting", "addr", addr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		logging.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		logging.Error("Server exited with error", "error", err.Error())
		os.Exit(1)
	}
}
