package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/coinpulse/internal/domain/dto"
	"github.com/guttosm/coinpulse/internal/logger"
)

// ErrorHandler is a Gin middleware that turns errors attached with c.Error
// into a single standardized JSON response.
//
// Behavior:
//   - Runs the handler chain first.
//   - If nothing was written and errors were collected, responds with the last one.
//   - Uses the status already set on the writer when it is an error status, 500 otherwise.
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.ErrorHandler)
//	router.GET("/x", func(c *gin.Context) { _ = c.Error(err) })
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	last := c.Errors.Last()
	status := c.Writer.Status()
	if status < http.StatusBadRequest {
		status = http.StatusInternalServerError
	}

	msg := http.StatusText(status)
	if m, ok := last.Meta.(string); ok && m != "" {
		msg = m
	}

	rid, _ := c.Get(RequestIDKey)
	logger.L().Error().
		Err(last.Err).
		Str("request_id", toString(rid)).
		Int("status", status).
		Msg("request failed")

	c.JSON(status, dto.NewErrorResponse(msg, last.Err))
}

// AbortWithError stops the chain and writes a standardized JSON error.
//
// Parameters:
//   - c (*gin.Context): the request context.
//   - status (int): HTTP status code to return.
//   - msg (string): human readable message.
//   - err (error): optional underlying cause, reported in the "error" field.
func AbortWithError(c *gin.Context, status int, msg string, err error) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(msg, err))
}
