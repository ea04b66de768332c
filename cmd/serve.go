package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/gitmesh/docs-hub/internal/grid"
	"github.com/gitmesh/docs-hub/internal/metrics"
	"github.com/gitmesh/docs-hub/internal/server"
	"github.com/gitmesh/docs-hub/internal/site"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web docs hub",
	Long: `Starts the web hub: the landing grid, the documentation viewer, a JSON API
over both and, with --dev, live layout controls shared by every open browser.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (overrides config)")
	serveCmd.Flags().String("host", "", "address to bind (overrides config)")
	serveCmd.Flags().Bool("dev", false, "enable the layout and tile controls")
	serveCmd.Flags().Bool("open", false, "open the hub in the default browser")
	serveCmd.Flags().String("media", "", "directory served under /media (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Server.Port = port
	}
	if host, _ := cmd.Flags().GetString("host"); host != "" {
		cfg.Server.Host = host
	}
	if dev, _ := cmd.Flags().GetBool("dev"); dev {
		cfg.Server.Dev = true
	}
	if media, _ := cmd.Flags().GetString("media"); media != "" {
		cfg.Server.MediaDir = media
	}

	log, closer, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer closer.Close()

	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	var hubMetrics *metrics.HubMetrics
	if cfg.Server.Metrics {
		hubMetrics, err = metrics.NewHubMetrics(prometheus.NewRegistry())
		if err != nil {
			return fmt.Errorf("creating metrics: %w", err)
		}
	}

	srv := server.New(server.Config{
		Host:     cfg.Server.Host,
		Port:     cfg.Server.Port,
		AllowAll: cfg.Server.AllowAllOrigins || cfg.Server.Dev,
		Logger:   log,
		Metrics:  hubMetrics,
	})

	hub, err := site.NewHub(reg, grid.DefaultTiles(), site.Options{
		Dev:            cfg.Server.Dev,
		CleanInterface: cfg.Grid.CleanInterface,
		Feedback:       cfg.Clipboard.Feedback(),
		MediaDir:       cfg.Server.MediaDir,
		Logger:         log,
		Metrics:        hubMetrics,
	}, gridOptions(cfg)...)
	if err != nil {
		return fmt.Errorf("creating hub: %w", err)
	}
	defer hub.Close()
	hub.RegisterRoutes(srv.Router())

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown", "error", err)
		}
	}()

	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	fmt.Fprintf(os.Stderr, "meshdocs %s serving %s (%d sections)\n", Version, url, len(reg.Keys()))
	if cfg.Server.Dev {
		fmt.Fprintln(os.Stderr, "  Dev controls enabled")
	}
	if open, _ := cmd.Flags().GetBool("open"); open {
		site.OpenBrowser(url)
	}

	return srv.Start()
}
