package main

//
//  @title           coinpulse API
//  @version         1.0
//  @description     Live cryptocurrency market dashboard backed by CoinGecko.
//  @termsOfService  https://github.com/guttosm/coinpulse
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/coinpulse
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        dashboard
//  @tag.description Market overview, ranked assets and rolling chart
//
//  @tag.name        session
//  @tag.description Per-browser view state: dashboard, asset detail and history range
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/coinpulse/config"
	_ "github.com/guttosm/coinpulse/docs" // swagger docs
	"github.com/guttosm/coinpulse/internal/app"
	"github.com/guttosm/coinpulse/internal/dashboard"
	"github.com/guttosm/coinpulse/internal/logger"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback that stops the scheduler, hub and session sweeper.
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// printView writes the dashboard as indented JSON.
func printView(w io.Writer, v dashboard.View) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// main is the entry point of the coinpulse application.
//
// Modes (selected via --mode flag):
//   - serve: Starts the dashboard web server with live updates.
//   - once:  Fetches one market snapshot and prints the rendered dashboard as JSON.
//
// Flags:
//   - --mode: Execution mode ("serve" or "once"). Default: "serve".
//   - --port: Port for the web server. Defaults to value from config (SERVER_PORT).
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	// Parse CLI flags (override config defaults if provided)
	mode := flag.String("mode", "serve", "Mode: serve or once")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for serve mode")
	flag.Parse()

	switch *mode {
	case "once":
		// One-shot mode: a single refresh, printed to stdout
		runCtx, cancel := context.WithTimeout(ctx, 2*config.AppConfig.Upstream.Timeout)
		defer cancel()

		view, err := app.RunOnce(runCtx)
		if perr := printView(os.Stdout, view); perr != nil {
			logger.L().Error().Err(perr).Msg("print failed")
		}
		if err != nil {
			logger.L().Fatal().Err(err).Msg("refresh failed")
		}
		logger.L().Info().
			Int("assets", len(view.Rows)).
			Int("overview_cards", len(view.Overview)).
			Msg("refresh completed")

	case "serve":
		// Serve mode: start the HTTP server
		logger.L().Info().Msg("starting dashboard server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
