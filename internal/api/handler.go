package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/coinpulse/internal/domain/dto"
	"github.com/guttosm/coinpulse/internal/domain/models"
	"github.com/guttosm/coinpulse/internal/format"
	"github.com/guttosm/coinpulse/internal/middleware"
	"github.com/guttosm/coinpulse/internal/service"
	"github.com/guttosm/coinpulse/internal/viewctl"
	"github.com/guttosm/coinpulse/internal/web"
)

const siteTitle = "CoinPulse"

// Streamer serves the live dashboard websocket.
type Streamer interface {
	ServeWS(w http.ResponseWriter, r *http.Request)
}

// Handler provides the HTTP handlers for pages, the JSON API and the live
// stream.
//
// Responsibilities:
//   - Render the dashboard and detail pages from the current view models
//   - Drive the per-session view controller from navigation requests
//   - Validate query parameters with gin binding
//   - Return structured JSON responses with appropriate HTTP status codes
type Handler struct {
	svc    service.RefreshService
	pages  *web.Pages
	stream Streamer
	locale format.Locale
}

// NewHandler constructs a new Handler instance.
//
// Parameters:
//   - svc (service.RefreshService): source of the shared dashboard view.
//   - pages (*web.Pages): parsed page templates.
//   - stream (Streamer): websocket endpoint for live updates; may be nil.
//   - locale (format.Locale): language of page chrome.
//
// Returns:
//   - *Handler: A handler ready to be registered with the router.
func NewHandler(svc service.RefreshService, pages *web.Pages, stream Streamer, locale format.Locale) *Handler {
	return &Handler{svc: svc, pages: pages, stream: stream, locale: locale}
}

// rangeQuery binds the optional "days" parameter of the detail page.
type rangeQuery struct {
	Days int `form:"days" binding:"omitempty,oneof=1 7 30 90 365"`
}

// selectRangeQuery binds the mandatory "days" parameter of a range change.
type selectRangeQuery struct {
	Days int `form:"days" binding:"required,oneof=1 7 30 90 365"`
}

// DashboardPage handles GET / and switches the session to the dashboard.
func (h *Handler) DashboardPage(c *gin.Context) {
	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	ctrl.ToDashboard()

	view := h.svc.Dashboard()
	updated := ""
	if !view.UpdatedAt.IsZero() {
		updated = h.locale.ShortDate(view.UpdatedAt) + " " + h.locale.Clock(view.UpdatedAt)
	}
	c.HTML(http.StatusOK, web.DashboardTemplate, web.DashboardPage{
		Page:      web.Page{Lang: h.locale.Name(), Title: siteTitle},
		View:      view,
		UpdatedAt: updated,
	})
}

// DetailPage handles GET /coins/:id and switches the session to the detail
// view of that asset. When the session already shows the asset, only the
// history of the requested range is loaded.
func (h *Handler) DetailPage(c *gin.Context) {
	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	id, ok := assetID(c)
	if !ok {
		return
	}
	var q rangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "days must be one of 1, 7, 30, 90, 365", err)
		return
	}

	state, err := ctrl.Navigate(c.Request.Context(), id, models.RangeDays(q.Days))
	if err != nil && !errors.Is(err, viewctl.ErrStaleResult) {
		_ = c.Error(err).SetMeta("failed to open asset")
		return
	}
	if errors.Is(err, viewctl.ErrStaleResult) {
		state = ctrl.State()
	}

	title := siteTitle
	if hd := state.Detail.Header; hd != nil {
		title = hd.Name + " " + hd.Symbol + " | " + siteTitle
	}
	c.HTML(http.StatusOK, web.DetailTemplate, web.DetailPage{
		Page:  web.Page{Lang: h.locale.Name(), Title: title},
		State: state,
	})
}

// GetDashboard godoc
// @Summary      Current dashboard
// @Description  Overview cards, ranked rows and the rolling chart as last rendered
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dashboard.View   "Success"
// @Router       /api/v1/dashboard [get]
func (h *Handler) GetDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Dashboard())
}

// GetSession godoc
// @Summary      Session view state
// @Description  Visible view, selected asset, active range and detail contents of the caller's session
// @Tags         session
// @Produce      json
// @Success      200  {object}  viewctl.State    "Success"
// @Router       /api/v1/session [get]
func (h *Handler) GetSession(c *gin.Context) {
	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ctrl.State())
}

// PostSessionDetail godoc
// @Summary      Open asset detail
// @Description  Switches the session to Detail(id), loads metadata and the default range history
// @Tags         session
// @Produce      json
// @Param        id   path      string  true  "Asset id" example(bitcoin)
// @Success      200  {object}  viewctl.State     "Success"
// @Failure      400  {object}  dto.ErrorResponse "Bad Request"
// @Failure      409  {object}  dto.ErrorResponse "Superseded by a newer request"
// @Router       /api/v1/session/detail/{id} [post]
func (h *Handler) PostSessionDetail(c *gin.Context) {
	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	id, ok := assetID(c)
	if !ok {
		return
	}
	state, err := ctrl.ToDetail(c.Request.Context(), id)
	h.respondState(c, state, err)
}

// PostSessionDashboard godoc
// @Summary      Back to dashboard
// @Description  Switches the session to the dashboard; the selected asset is kept
// @Tags         session
// @Produce      json
// @Success      200  {object}  viewctl.State  "Success"
// @Router       /api/v1/session/dashboard [post]
func (h *Handler) PostSessionDashboard(c *gin.Context) {
	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ctrl.ToDashboard())
}

// PostSessionRange godoc
// @Summary      Select history range
// @Description  Moves the active range marker and reloads only the history chart
// @Tags         session
// @Produce      json
// @Param        days  query     int  true  "Range in days" Enums(1, 7, 30, 90, 365)
// @Success      200   {object}  viewctl.State     "Success"
// @Failure      400   {object}  dto.ErrorResponse "Bad Request"
// @Failure      409   {object}  dto.ErrorResponse "Not in detail view, or superseded"
// @Router       /api/v1/session/range [post]
func (h *Handler) PostSessionRange(c *gin.Context) {
	ctrl, ok := h.session(c)
	if !ok {
		return
	}
	var q selectRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "days must be one of 1, 7, 30, 90, 365", err)
		return
	}
	state, err := ctrl.SelectRange(c.Request.Context(), models.RangeDays(q.Days))
	h.respondState(c, state, err)
}

// Stream handles GET /ws/dashboard.
func (h *Handler) Stream(c *gin.Context) {
	if h.stream == nil {
		middleware.AbortWithError(c, http.StatusServiceUnavailable, "live updates disabled", nil)
		return
	}
	h.stream.ServeWS(c.Writer, c.Request)
}

func (h *Handler) respondState(c *gin.Context, state viewctl.State, err error) {
	switch {
	case err == nil:
		c.JSON(http.StatusOK, state)
	case errors.Is(err, viewctl.ErrStaleResult), errors.Is(err, viewctl.ErrNotInDetail):
		c.JSON(http.StatusConflict, dto.NewErrorResponse("request not applied", err))
	default:
		_ = c.Error(err).SetMeta("session transition failed")
	}
}

func (h *Handler) session(c *gin.Context) (*viewctl.Controller, bool) {
	ctrl, ok := middleware.Controller(c)
	if !ok {
		middleware.AbortWithError(c, http.StatusInternalServerError, "session unavailable", nil)
		return nil, false
	}
	return ctrl, true
}

func assetID(c *gin.Context) (string, bool) {
	id := strings.ToLower(strings.TrimSpace(c.Param("id")))
	if id == "" || strings.ContainsAny(id, "/?#") {
		middleware.AbortWithError(c, http.StatusBadRequest, "asset id is required", nil)
		return "", false
	}
	return id, true
}
