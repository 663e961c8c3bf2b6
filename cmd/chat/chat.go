// Package chat implements the interactive console subcommand.
package chat

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/aerowise/aerowise-go/internal/agent"
	"github.com/aerowise/aerowise-go/internal/conf"
	"github.com/aerowise/aerowise-go/internal/console"
	"github.com/aerowise/aerowise-go/internal/datastore"
	"github.com/aerowise/aerowise-go/internal/logging"
	"github.com/aerowise/aerowise-go/internal/telemetry"
)

// Command creates the chat command, the default interactive mode.
func Command(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start the interactive chat console",
		Long:  "Load the biodiversity dataset and answer questions interactively until 'quit'.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, settings)
		},
	}
}

func runChat(cmd *cobra.Command, settings *conf.Settings) error {
	store, err := datastore.Open(settings)
	if err != nil {
		return fmt.Errorf("failed to open dataset: %w", err)
	}

	var agentOpts []agent.Option
	if settings.Telemetry.Enabled {
		metrics, err := startTelemetry(settings.Telemetry.Listen)
		if err != nil {
			return fmt.Errorf("failed to start telemetry endpoint: %w", err)
		}
		agentOpts = append(agentOpts, agent.WithMetrics(metrics))
	}

	answerer, err := console.NewAnswerer(store, settings, agentOpts...)
	if err != nil {
		return fmt.Errorf("failed to build answerer: %w", err)
	}

	var consoleOpts []console.Option
	if settings.Main.Log.Enabled {
		queryLog, closeLog, err := logging.NewFileLogger(
			settings.Main.Log.Path, "query", slog.LevelInfo,
			logging.FileRotation{
				MaxSizeMB:  settings.Main.Log.MaxSize,
				MaxBackups: settings.Main.Log.MaxBackups,
				MaxAgeDays: settings.Main.Log.MaxAge,
			})
		if err != nil {
			return fmt.Errorf("failed to open query log: %w", err)
		}
		defer closeLog() //nolint:errcheck
		consoleOpts = append(consoleOpts, console.WithQueryLog(queryLog))
	}

	c := console.New(cmd.InOrStdin(), cmd.OutOrStdout(), answerer, store, consoleOpts...)
	return c.Run(cmd.Context())
}

// startTelemetry registers the query metrics on a fresh registry and serves
// them on the configured listen address.
func startTelemetry(listen string) (*telemetry.Metrics, error) {
	registry := prometheus.NewRegistry()
	metrics, err := telemetry.NewMetrics(registry)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	server := &http.Server{
		Addr:         listen,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Error("telemetry endpoint failed", "listen", listen, "error", err)
		}
	}()

	logging.Info("telemetry endpoint listening", "listen", listen)
	return metrics, nil
}
