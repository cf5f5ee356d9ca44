package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/coinpulse/internal/middleware"
	"github.com/guttosm/coinpulse/internal/web"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// requestTimeout bounds every non-streaming request.
const requestTimeout = 10 * time.Second

// NewRouter creates a Gin engine with routes configured.
// It receives a Handler instance with all dependencies already injected and
// the session middleware that resolves each browser's view controller.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler, RateLimiter).
//   - Adds request timeout handling (10 seconds, websocket excluded).
//   - Mounts Swagger docs (/swagger/*any) and static assets (/static).
//   - Configures pages (/, /coins/:id), API v1 routes (/api/v1) and the live stream (/ws/dashboard).
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
//
// Parameters:
//   - handler (*Handler): The HTTP handler with business logic.
//   - session (gin.HandlerFunc): middleware.Session bound to the session store.
//
// Returns:
//   - *gin.Engine: Configured Gin router.
func NewRouter(handler *Handler, session gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.SetHTMLTemplate(handler.pages.Template())

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.RateLimiter(),
	)

	// ─── Timeout ──────────────────────────────────
	router.Use(requestDeadline(requestTimeout))

	// ─── Swagger & static ─────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.StaticFS("/static", http.FS(web.Static()))

	// ─── Pages ────────────────────────────────────
	pages := router.Group("/", session)
	{
		pages.GET("/", handler.DashboardPage)
		pages.GET("/coins/:id", handler.DetailPage)
	}

	// ─── API v1 ───────────────────────────────────
	v1 := router.Group("/api/v1")
	{
		v1.GET("/dashboard", handler.GetDashboard)

		s := v1.Group("/session", session)
		s.GET("", handler.GetSession)
		s.POST("/detail/:id", handler.PostSessionDetail)
		s.POST("/dashboard", handler.PostSessionDashboard)
		s.POST("/range", handler.PostSessionRange)
	}

	// ─── Live stream ──────────────────────────────
	router.GET("/ws/dashboard", handler.Stream)

	return router
}

// requestDeadline bounds the request context by d. Websocket upgrades are long
// lived and keep the original context.
func requestDeadline(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/ws/") {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
