package cmd

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flavorscout/internal/httpapi"
	"flavorscout/worker"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the analysis HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		setupLogging(cfg)

		orch, cleanup, err := buildOrchestrator(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		srv := &http.Server{
			Addr:    cfg.Server.Addr,
			Handler: httpapi.NewRouter(orch),
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Signal handling for systemd
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			s := <-sigc
			log.Printf("received signal: %s, shutting down", s)
			cancel()
		}()

		errc := make(chan error, 1)
		go func() {
			slog.Info("http server listening", "addr", cfg.Server.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errc <- err
			}
		}()

		// Optional background refresher keeps the fallback cache warm.
		interval, err := time.ParseDuration(cfg.Analysis.RefreshInterval)
		if err != nil {
			return err
		}
		if interval > 0 {
			slog.Info("starting background refresher", "interval", interval)
			mgr := worker.NewManager(&worker.Refresher{Orchestrator: orch, Interval: interval})
			go func() {
				if err := mgr.Start(ctx); err != nil {
					slog.Error("worker manager stopped", "error", err)
				}
			}()
		}

		select {
		case err := <-errc:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
