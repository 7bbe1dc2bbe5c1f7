package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/tripwizard"
	"github.com/aretw0/tripwizard/internal/logging"
	"github.com/aretw0/tripwizard/internal/runtime"
	httpAdapter "github.com/aretw0/tripwizard/pkg/adapters/http"
	"github.com/aretw0/tripwizard/pkg/adapters/mock"
	"github.com/aretw0/tripwizard/pkg/observability"
	"github.com/aretw0/tripwizard/pkg/session"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Serves wizard sessions over a JSON API, with server-sent events for screen and preloader updates.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		logger := logging.New(level)

		gen := mock.New(
			mock.WithDelay(cfg.Generation.Delay),
			mock.WithCurrency(cfg.Generation.Currency),
		)

		hooks := observability.LoggingHooks(logger)
		sessionOpts := []session.Option{
			session.WithTTL(cfg.Session.TTL),
			session.WithCleanupInterval(cfg.Session.CleanupInterval),
			session.WithLogger(logger),
		}
		handlerOpts := []httpAdapter.Option{
			httpAdapter.WithLogger(logger),
			httpAdapter.WithVersion(tripwizard.Version),
		}
		if cfg.Metrics.Enabled {
			metrics := observability.NewMetrics(nil)
			hooks = hooks.Merge(metrics.Hooks())
			sessionOpts = append(sessionOpts,
				session.WithOnCreate(metrics.SessionOpened),
				session.WithOnEvict(metrics.SessionClosed),
			)
			handlerOpts = append(handlerOpts, httpAdapter.WithMetricsHandler(metrics.Handler()))
		}

		steps, timing := cfg.PreloaderSteps(), cfg.Timing()
		mgr := session.NewManager(func(id string) (*runtime.Controller, error) {
			return runtime.NewController(gen,
				runtime.WithSessionID(id),
				runtime.WithSteps(steps),
				runtime.WithTiming(timing),
				runtime.WithGenerationTimeout(cfg.Generation.Timeout),
				runtime.WithLogger(logger),
				runtime.WithLifecycleHooks(hooks),
			)
		}, sessionOpts...)
		defer mgr.Close()

		srv := &http.Server{
			Addr:              cfg.HTTP.Addr,
			Handler:           httpAdapter.NewHandler(mgr, handlerOpts...),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("Starting TripWizard Server", "addr", srv.Addr, "metrics", cfg.Metrics.Enabled)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(shutdown)

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("Start shutdown", "signal", sig)

			// Give outstanding requests a deadline for completion.
			// Open event streams end when their sessions are closed.
			mgr.Close()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("Graceful shutdown did not complete", "timeout", 5*time.Second, "err", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			logger.Info("TripWizard Server stopped gracefully")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	serveCmd.Flags().Bool("metrics", true, "Expose Prometheus metrics on /metrics")
	serveCmd.Flags().Duration("ttl", 0, "Idle session lifetime (default 30m)")
	serveCmd.Flags().Duration("timeout", 0, "Generation timeout (default 30s)")
	serveCmd.Flags().Duration("delay", 0, "Simulated generation latency (default 2s)")
}
