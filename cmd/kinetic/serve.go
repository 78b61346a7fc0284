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

	"github.com/spf13/cobra"

	"github.com/aretw0/kinetic/internal/adapters/httpapi"
	"github.com/aretw0/kinetic/internal/cli"
	"github.com/aretw0/kinetic/internal/logging"
	"github.com/aretw0/kinetic/internal/presentation/tui"
	"github.com/aretw0/kinetic/pkg/adapters/sim"
	"github.com/aretw0/kinetic/pkg/observability"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP demo server",
	Long:  `Serves the page simulation over HTTP: post scroll positions, read reveal state, drive the inquiry dialog, and scrape Prometheus metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := httpapi.LoadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.Addr, _ = cmd.Flags().GetString("addr")
		}
		if cmd.Flags().Changed("script") {
			cfg.ScriptPath, _ = cmd.Flags().GetString("script")
		}

		tui.PrintBanner()

		logger := logging.NewJSON(os.Stderr, slog.LevelInfo)

		metrics := observability.NewMetrics()
		metrics.MustRegister()

		surface := cli.NewDemoSurface(cfg.ReducedMotion)
		view := sim.NewView()
		page, err := cli.BuildPage(context.Background(), surface, view, cfg.ScriptPath, metrics.Hooks(), logger)
		if err != nil {
			return err
		}
		defer page.Teardown()

		srv := &http.Server{
			Addr:    cfg.Addr,
			Handler: httpapi.NewHandler(page, surface, view, logger),
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("kinetic server listening", "addr", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("starting shutdown", "signal", sig.String())

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("could not stop server: %w", err)
				}
			}
			logger.Info("kinetic server stopped")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", ":8080", "Address to listen on")
}
