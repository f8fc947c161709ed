package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lx-annotate/annotate-api/api"
	"github.com/lx-annotate/annotate-api/api/types"
	"github.com/lx-annotate/annotate-api/internal/backend"
	"github.com/lx-annotate/annotate-api/internal/storage"
	"github.com/lx-annotate/annotate-api/pkg/config"
	apperrors "github.com/lx-annotate/annotate-api/pkg/errors"
)

var (
	serverHost string
	serverPort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gateway server",
	Long: `Start the annotation gateway with the configured settings.

The server exposes the dashboard-facing API, persists drafts locally and
proxies committed work to the clinical backend.

Example:
  annotate-api serve
  annotate-api serve --port 9090
  annotate-api serve --host 0.0.0.0 --port 8080`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// Server flags
	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}

	// Use config values if flags not provided
	if serverHost == "" {
		serverHost = cfg.Server.Host
	}
	if serverPort == 0 {
		serverPort = cfg.Server.Port
	}

	// Open the draft store and bring its schema up to date
	store, err := storage.OpenSQLite(cfg.Storage.Path, cfg.Storage.LogQueries)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeStorageOpen, "failed to open draft storage")
	}
	if err := store.Migrate(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeStorageMigration, "failed to migrate draft storage")
	}

	deps := &types.Dependencies{
		Storage: store,
		Backend: backend.NewClient(backend.Config{
			BaseURL:           cfg.Backend.URL,
			Timeout:           cfg.Backend.Timeout,
			RequestsPerSecond: cfg.Backend.RequestsPerSecond,
			BurstSize:         cfg.Backend.BurstSize,
			UserAgent:         cfg.Backend.UserAgent,
		}),
	}

	server := api.NewServer(fmt.Sprintf("%s:%d", serverHost, serverPort))
	server.SetDependencies(deps)
	if err := server.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	fmt.Printf("Starting Annotate Gateway API on %s:%d\n", serverHost, serverPort)
	fmt.Printf("Clinical backend: %s\n", cfg.Backend.URL)

	// Channel to listen for interrupt signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Channel to receive server errors
	serverErr := make(chan error, 1)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	select {
	case <-stop:
		fmt.Println("\nShutting down server...")
	case err := <-serverErr:
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		fmt.Println("Shutting down server...")
	}

	// Create a context with timeout for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Attempt graceful shutdown
	if err := server.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server forced to shutdown: %v\n", err)
		return err
	}

	fmt.Println("Server gracefully stopped")
	return nil
}
