package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/aretw0/logicx"
	"github.com/aretw0/logicx/internal/presentation/tui"
	httpAdapter "github.com/aretw0/logicx/pkg/adapters/http"
	"github.com/aretw0/logicx/pkg/observability"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve [document]",
	Short: "Start the editor HTTP server",
	Long: `Starts an editor, optionally preloaded with a document, and exposes its
project, pointer gestures and change stream as a JSON API over HTTP.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.Addr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics := observability.NewMetrics(reg)

		hooks := observability.LogHooks(logger)
		if cfg.Metrics {
			hooks = hooks.Merge(metrics.Hooks())
		}
		editor := logicx.New(
			logicx.WithLogger(logger),
			logicx.WithHooks(hooks),
			logicx.WithView(cfg.InteractionView()),
		)

		if len(args) > 0 {
			format, err := documentFormat(cmd, args[0])
			if err != nil {
				return err
			}
			data, err := readInput(args[0])
			if err != nil {
				return fmt.Errorf("failed to read document: %w", err)
			}
			if err := editor.Load(data, format); err != nil {
				return err
			}
		}

		opts := []httpAdapter.Option{httpAdapter.WithLogger(logger)}
		if cfg.Metrics {
			opts = append(opts, httpAdapter.WithMetrics(metrics))
		}
		api := httpAdapter.NewServer(editor, opts...)
		defer api.Close()

		mux := http.NewServeMux()
		if cfg.Metrics {
			mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
		}
		mux.Handle("/", api.Handler())

		// Cancelled on shutdown so open event streams return.
		baseCtx, cancelBase := context.WithCancel(context.Background())
		defer cancelBase()

		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
			BaseContext:       func(net.Listener) context.Context { return baseCtx },
		}

		tui.PrintBanner(cmd.ErrOrStderr(), strings.TrimSpace(logicx.Version))

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("Starting logicx server", "addr", srv.Addr, "metrics", cfg.Metrics)
			serverErrors <- srv.ListenAndServe()
		}()

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
			logger.Info("Start shutdown", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			cancelBase()
			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("Graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			logger.Info("logicx server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (overrides the settings file)")
}
