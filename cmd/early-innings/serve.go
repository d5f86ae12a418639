package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/early-innings/internal/api"
	"github.com/yourusername/early-innings/internal/events"
	"github.com/yourusername/early-innings/internal/health"
	"github.com/yourusername/early-innings/internal/metrics"
	"github.com/yourusername/early-innings/internal/scheduler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func serve(ctx context.Context) error {
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
		"version":     Version,
	}).Info("Early innings service starting")

	metrics.InitRegistry()

	var publisher events.Publisher = events.Nop{}
	var hub *events.Hub
	if cfg.Server.EventsEnabled {
		hub = events.NewHub(nil, appLog)
		publisher = hub
	}

	app, err := newApplication(ctx, cfg, appLog, publisher)
	if err != nil {
		return err
	}
	defer app.Close()

	checker := health.NewChecker(cfg.App.Name, Version, appLog)
	checker.AddCheck("predictions_cache", app.predictions)
	checker.AddCheck("reference_cache", app.reference)
	if app.repos != nil {
		checker.AddCheck("archive", app.repos.PredictionSets)
	}

	handler := api.NewHandler(app.service, appLog,
		api.WithStrictPredictionType(cfg.Server.StrictPredictionType),
		api.WithLocation(app.location),
	)
	routes := api.RouterConfig{Health: checker}
	if cfg.Metrics.Enabled {
		routes.Metrics = metrics.Handler()
		routes.MetricsPath = cfg.Metrics.Path
	}
	if hub != nil {
		routes.Events = hub
	}

	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched = scheduler.NewScheduler(app.service, app.location, appLog)
		if err := sched.SchedulePrewarm(cfg.Scheduler.PrewarmSpec, cfg.Scheduler.DaysAhead); err != nil {
			return err
		}
		if err := sched.Start(); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      api.NewRouter(handler, routes, appLog),
		ReadTimeout:  cfg.Server.ReadTimeout(),
		WriteTimeout: cfg.Server.WriteTimeout(),
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.WithField("addr", srv.Addr).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	checker.SetReady(true)

	select {
	case <-ctx.Done():
		appLog.Info("Shutdown signal received")
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	checker.SetReady(false)
	if sched != nil {
		if err := sched.Stop(); err != nil {
			appLog.WithError(err).Warn("Scheduler did not stop cleanly")
		}
	}
	if hub != nil {
		hub.Close()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	appLog.Info("Early innings service stopped")
	return nil
}
