package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/terrancemacgregor/wtmd-playlist-tracker/api"
	"github.com/terrancemacgregor/wtmd-playlist-tracker/config"
	"github.com/terrancemacgregor/wtmd-playlist-tracker/ingest"
	"github.com/terrancemacgregor/wtmd-playlist-tracker/metrics"
)

func init() {
	daemonCmd.Flags().Duration("interval", config.DefaultSyncInterval, "Interval between syncs (e.g., 30s, 1m, 5m)")
	daemonCmd.Flags().String("http-addr", "", "Address for the HTTP API server")
	viper.BindPFlag("sync_interval", daemonCmd.Flags().Lookup("interval"))
	viper.BindPFlag("http_addr", daemonCmd.Flags().Lookup("http-addr"))
	rootCmd.AddCommand(daemonCmd)
}

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the sync scheduler and HTTP API until interrupted",
	Run:   runDaemon,
}

func runDaemon(cmd *cobra.Command, args []string) {
	cfg := config.Load()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	store := newStore(cfg)
	defer store.Close()

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	coordinator := newCoordinator(cfg, store, collector)
	scheduler := ingest.NewScheduler(coordinator, cfg.SyncInterval)
	scheduler.Start()

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: api.NewServer(store, coordinator).Router(registry),
	}
	go func() {
		logger.Infof("Starting HTTP server on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Error starting HTTP server: %v", err)
		}
	}()

	<-stop
	logger.Info("Received interrupt signal")

	scheduler.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Warnf("Error shutting down HTTP server: %v", err)
	}
	logger.Info("Stopped daemon")
}
