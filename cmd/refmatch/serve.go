package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"calpipe/refmatch/pkg/cli"
	"calpipe/refmatch/pkg/config"
	"calpipe/refmatch/pkg/mapping"
	"calpipe/refmatch/pkg/telemetry/health"
	"calpipe/refmatch/pkg/telemetry/logging"
	"calpipe/refmatch/pkg/telemetry/metrics"
	"calpipe/refmatch/pkg/usage"
	"calpipe/refmatch/pkg/usage/refresh"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run refmatch as a long-running service",
	Long: `Run refmatch in long-running mode.

Serve mode keeps the mapping cache warm and current: the mapping
directory is watched for changes (changed mappings are evicted from the
cache), the usage index is rebuilt on the configured cron schedule, and
Prometheus metrics plus health endpoints are served over HTTP.

Endpoints:
  /metrics   Prometheus exposition (telemetry.metrics.path)
  /healthz   liveness probe
  /readyz    readiness probe (mapping directory, usage index)

The process shuts down gracefully on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return cli.NewConfigError("", err.Error())
	}
	if err := setupLogging(cfg); err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}

	ctx, invocationID := logging.WithInvocationID(cli.SetupSignalHandler())
	logger := slog.Default().With("component", "serve", "invocation_id", invocationID)

	store := newStore(cfg)

	// Usage index and scheduled rebuilds.
	index, err := openUsageStorage(cfg)
	if err != nil {
		return cli.NewCommandError("serve", err)
	}
	defer index.Close()

	scanner := usage.NewScanner(store.Loader())
	refresher := refresh.NewRefresher(scanner, index, cfg.Usage.RefreshSchedule)
	if _, err := refresher.Rebuild(ctx); err != nil {
		logger.Warn("initial usage index rebuild failed", "error", err)
	}
	if err := refresher.Start(ctx); err != nil {
		return cli.NewCommandError("serve", err)
	}
	defer refresher.Stop()

	// Mapping directory watching.
	if cfg.Mapping.Watch {
		watcher, err := mapping.NewWatcher(store, &mapping.WatcherConfig{
			DebounceInterval: cfg.Mapping.WatchDebounce,
			Extensions:       mapping.DefaultWatcherConfig().Extensions,
			SkipHidden:       true,
		})
		if err != nil {
			return cli.NewCommandError("serve", err)
		}
		go func() {
			if err := watcher.Watch(ctx); err != nil {
				logger.Error("mapping watcher failed", "error", err)
			}
		}()
		defer watcher.Stop()
	}

	server := newServeServer(cfg, index)
	go func() {
		logger.Info("serving",
			"address", cfg.Telemetry.Metrics.ListenAddress,
			"metrics", cfg.Telemetry.Metrics.Enabled,
			"watch", cfg.Mapping.Watch,
			"refresh_schedule", cfg.Usage.RefreshSchedule,
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return cli.NewCommandError("serve", err)
	}
	return nil
}

// newServeServer assembles the HTTP surface of serve mode.
func newServeServer(cfg *config.Config, index usage.Storage) *http.Server {
	checker := health.New(0)
	checker.RegisterCheck("mappings", func(ctx context.Context) error {
		info, err := os.Stat(cfg.Mapping.Dir)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("%s is not a directory", cfg.Mapping.Dir)
		}
		return nil
	})
	checker.RegisterCheck("usage", func(ctx context.Context) error {
		_, err := index.Count(ctx)
		return err
	})

	mux := http.NewServeMux()
	if cfg.Telemetry.Metrics.Enabled {
		mux.Handle(cfg.Telemetry.Metrics.Path, metrics.Handler())
	}
	mux.Handle("/healthz", checker.LivenessHandler())
	mux.Handle("/readyz", checker.ReadinessHandler())

	return &http.Server{
		Addr:              cfg.Telemetry.Metrics.ListenAddress,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
