package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/coinpulse/config"
	"github.com/guttosm/coinpulse/internal/api"
	"github.com/guttosm/coinpulse/internal/dashboard"
	"github.com/guttosm/coinpulse/internal/domain/models"
	"github.com/guttosm/coinpulse/internal/format"
	"github.com/guttosm/coinpulse/internal/logger"
	"github.com/guttosm/coinpulse/internal/middleware"
	"github.com/guttosm/coinpulse/internal/scheduler"
	"github.com/guttosm/coinpulse/internal/service"
	"github.com/guttosm/coinpulse/internal/stream"
	"github.com/guttosm/coinpulse/internal/viewctl"
	"github.com/guttosm/coinpulse/internal/web"
)

const (
	// hubBuffer is the per-client queue of pending dashboard updates.
	hubBuffer = 8
	// maxSweepInterval caps how often expired sessions are looked for.
	maxSweepInterval = time.Minute
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Resolves the display locale and time zone.
//   - Builds the market-data client using InitUpstream().
//   - Starts the websocket hub, the refresh scheduler and the session sweeper.
//   - Pauses refreshing while no session shows the dashboard, unless
//     DASHBOARD_KEEP_WARM is set.
//   - Configures the Gin router with pages, API routes and the live stream.
//   - Registers health and readiness probes.
//   - Provides a cleanup function that stops every background loop.
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	// Load global configuration
	cfg := config.AppConfig

	locale, err := resolveLocale(cfg.Dashboard)
	if err != nil {
		return nil, nil, err
	}
	defaultRange, err := models.ParseRange(cfg.Dashboard.DefaultRangeDays)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid DEFAULT_RANGE_DAYS: %w", err)
	}

	// Build the market-data client
	// indirection for unit testing
	client, err := upstreamOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize upstream: %w", err)
	}

	pages, err := web.Load()
	if err != nil {
		return nil, nil, err
	}

	middleware.SetRateLimit(cfg.Server.RateLimitPerMinute)

	ctx, cancel := context.WithCancel(context.Background())

	// Refresh loop, paused while no dashboard page holds a live stream
	var svc service.RefreshService
	var audience *stream.Audience
	var sched *scheduler.Scheduler
	sched = scheduler.New(cfg.Dashboard.RefreshInterval, func(ctx context.Context) {
		// failures are logged and rendered by the pipeline
		_ = svc.Refresh(ctx)
		if audience != nil && audience.WhenEmpty(sched.Pause) {
			logger.L().Debug().Msg("no dashboard viewers, refresh paused")
		}
	})
	if !cfg.Dashboard.KeepWarm {
		audience = stream.NewAudience(func(watching bool) {
			if watching {
				sched.Resume()
			} else {
				sched.Pause()
			}
		})
	}

	// Live updates fan-out; each subscription is one open dashboard page
	hub := stream.NewHub(hubBuffer, audience)
	if err := hub.Start(ctx); err != nil {
		cancel()
		return nil, nil, err
	}

	// Dashboard pipeline: fetch, render, publish
	renderer := dashboard.NewRenderer(dashboard.Options{
		Locale:  locale,
		Window:  cfg.Dashboard.ChartWindow,
		Tracked: cfg.Dashboard.ChartTracked,
	})
	svc = service.NewRefreshService(client, renderer, pages, hub)

	// Per-browser view controllers
	sessions := viewctl.NewStore(cfg.Server.SessionTTL, func() *viewctl.Controller {
		return viewctl.NewController(client, viewctl.Options{
			Locale:       locale,
			DefaultRange: defaultRange,
		})
	})

	if err := sched.Start(ctx); err != nil {
		cancel()
		return nil, nil, err
	}
	sweeperDone := make(chan struct{})
	go func() {
		defer close(sweeperDone)
		sessions.Run(ctx, sweepInterval(cfg.Server.SessionTTL))
	}()

	// Initialize HTTP handler layer
	handler := api.NewHandler(svc, pages, hub, locale)

	// Setup Gin router with routes
	router := api.NewRouter(handler, middleware.Session(sessions, cfg.Server.SessionTTL))

	// Register health and readiness probes
	healthHandler := api.NewHealthHandler(svc.Ready)
	healthHandler.Register(router)

	logger.L().Info().
		Str("locale", locale.Name()).
		Dur("refresh_interval", cfg.Dashboard.RefreshInterval).
		Bool("keep_warm", cfg.Dashboard.KeepWarm).
		Msg("application initialized")

	// Stop background loops on shutdown
	cleanup := func() {
		cancel()
		sched.Wait()
		<-sweeperDone
	}

	return router, cleanup, nil
}

// RunOnce fetches a single market snapshot and returns the rendered
// dashboard. A failed fetch yields the failure view and the error.
func RunOnce(ctx context.Context) (dashboard.View, error) {
	cfg := config.AppConfig

	locale, err := resolveLocale(cfg.Dashboard)
	if err != nil {
		return dashboard.View{}, err
	}
	client, err := upstreamOpener(cfg)
	if err != nil {
		return dashboard.View{}, fmt.Errorf("failed to initialize upstream: %w", err)
	}

	renderer := dashboard.NewRenderer(dashboard.Options{
		Locale:  locale,
		Window:  cfg.Dashboard.ChartWindow,
		Tracked: cfg.Dashboard.ChartTracked,
	})
	svc := service.NewRefreshService(client, renderer, nil, nil)
	err = svc.Refresh(ctx)
	return svc.Dashboard(), err
}

// resolveLocale looks up the display locale and binds it to the configured zone.
func resolveLocale(cfg config.DashboardConfig) (format.Locale, error) {
	locale, err := format.LookupLocale(cfg.Locale)
	if err != nil {
		return format.Locale{}, fmt.Errorf("invalid DASHBOARD_LOCALE: %w", err)
	}
	tz, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return format.Locale{}, fmt.Errorf("invalid DASHBOARD_TIMEZONE: %w", err)
	}
	return locale.In(tz), nil
}

func sweepInterval(ttl time.Duration) time.Duration {
	if ttl <= 0 || ttl > maxSweepInterval {
		return maxSweepInterval
	}
	return ttl
}
