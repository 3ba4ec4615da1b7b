package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "campusevents/docs"
	httpdelivery "campusevents/internal/delivery/http"
	"campusevents/internal/delivery/http/controllers"

	"github.com/spf13/cobra"
)

var (
	// Server flags (override config/env)
	serverPort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server and begin accepting API requests.

The server will:
- Load configuration from environment variables
- Open the event store selected by STORE_DRIVER (file, memory or postgres)
- Serve the API, /metrics and /swagger/
- Handle graceful shutdown on SIGINT/SIGTERM

Examples:
  # Start with default configuration (from env vars)
  server serve

  # Start on a specific port with debug logging
  server serve --port 9090 --log-level debug`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serverPort, "port", "", "server port (default: PORT or 8080)")
}

func runServer() error {
	startCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	a, err := newApp(startCtx)
	cancel()
	if err != nil {
		return err
	}
	defer a.close()

	port := a.cfg.Port
	if serverPort != "" {
		port = serverPort
	}

	st := a.events.StoreStatus(context.Background())
	a.logger.Info("starting server", "port", port, "env", a.cfg.Environment, "store", st.Driver, "store_state", st.State)

	handler := httpdelivery.NewHandler(a.logger, a.auth, a.cfg.CORSAllowedOrigins, httpdelivery.Controllers{
		Events:        controllers.NewEventController(a.logger, a.events),
		Auth:          controllers.NewAuthController(a.logger, a.auth, a.cfg.SessionTTL, a.cfg.CookieSecure),
		Announcements: controllers.NewAnnouncementController(a.logger, a.announcements),
		Health:        controllers.NewHealthController(a.events),
	})

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	case <-stop:
	}
	a.logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	return nil
}
