package api

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/coinpulse/internal/logger"
)

// HealthHandler provides liveness and readiness endpoints for the service.
//
// Responsibilities:
//   - /healthz: Basic liveness probe (always returns 200 OK).
//   - /readyz: Readiness probe (depends on the last dashboard refresh).
type HealthHandler struct {
	ready func() error // Reports why the service is not ready, nil when it is
}

// NewHealthHandler constructs a HealthHandler with the provided ready function.
//
// Parameters:
//   - ready (func() error): Returns nil when the most recent dashboard refresh
//     succeeded. Typically RefreshService.Ready.
//
// Returns:
//   - *HealthHandler: A new handler instance.
func NewHealthHandler(ready func() error) *HealthHandler {
	return &HealthHandler{ready: ready}
}

// Register mounts the health and readiness endpoints into the provided Gin router.
//
// Routes:
//   - GET /healthz: Always returns 200 OK.
//   - GET /readyz: Returns 200 OK once the dashboard holds fresh data, 503 otherwise.
//
// Parameters:
//   - r (*gin.Engine): The Gin router to register routes on.
func (h *HealthHandler) Register(r *gin.Engine) {
	// Liveness probe (just checks if the service is up)
	// @Summary      Liveness probe
	// @Description  Always returns OK if the service is running
	// @Tags         health
	// @Produce      json
	// @Success      200  {object}  map[string]string
	// @Router       /healthz [get]
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Readiness probe (checks the last refresh)
	// @Summary      Readiness probe
	// @Description  Returns ready if the last market refresh succeeded
	// @Tags         health
	// @Produce      json
	// @Success      200  {object}  map[string]string
	// @Failure      503  {object}  map[string]string
	// @Router       /readyz [get]
	r.GET("/readyz", func(c *gin.Context) {
		if h.ready != nil {
			if err := h.ready(); err != nil {
				log := logger.Ctx(c.Request.Context(), logger.Component("health"))
				log.Warn().Err(err).Msg("not ready")
				c.JSON(503, gin.H{"status": "degraded"})
				return
			}
		}
		c.JSON(200, gin.H{"status": "ready"})
	})
}
