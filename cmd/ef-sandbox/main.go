// Command ef-sandbox runs the embedded-finance sandbox API server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	app "github.com/sellsense/ef-sandbox/internal/app"
	"github.com/sellsense/ef-sandbox/internal/app/httpapi"
	"github.com/sellsense/ef-sandbox/internal/app/metrics"
	"github.com/sellsense/ef-sandbox/internal/config"
	"github.com/sellsense/ef-sandbox/internal/middleware"
	"github.com/sellsense/ef-sandbox/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewDefault("ef-sandbox").WithError(err).Error("load configuration")
		os.Exit(1)
	}

	log := logger.New("ef-sandbox", cfg.LogLevel)

	application := app.New(app.Stores{}, log)

	if catalog, err := config.LoadScenarioCatalog(cfg.ScenarioCatalog); err != nil {
		log.WithError(err).Warn("scenario catalog ignored")
	} else if len(catalog) > 0 {
		application.Seed.SetDescriptors(catalog)
	}

	seeded, err := application.Seed.Initialize(context.Background(), false, cfg.Scenario)
	if err != nil {
		log.WithError(err).Error("seed sandbox data")
		os.Exit(1)
	}
	if seeded {
		log.WithField("scenario", cfg.Scenario).Info("sandbox data initialised")
	}

	var handler http.Handler = httpapi.NewHandler(application)
	handler = middleware.NewRecoverMiddleware(log).Handler(handler)
	handler = middleware.NewLoggingMiddleware(log).Handler(handler)
	handler = middleware.NewCORSMiddleware(cfg.Origins()).Handler(handler)
	handler = metrics.InstrumentHandler(handler)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()
	log.WithField("addr", cfg.Addr).Info("sandbox API listening")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("server stopped")
			os.Exit(1)
		}
	case sig := <-stop:
		log.WithField("signal", sig.String()).Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.WithError(err).Error("graceful shutdown failed")
		}
	}
}
