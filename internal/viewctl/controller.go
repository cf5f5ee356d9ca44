// Package viewctl holds the per-session view state: which view a browser is
// looking at, which asset is selected and which history range is active.
package viewctl

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/guttosm/coinpulse/internal/detail"
	"github.com/guttosm/coinpulse/internal/domain/dto"
	"github.com/guttosm/coinpulse/internal/domain/models"
	"github.com/guttosm/coinpulse/internal/format"
	"github.com/guttosm/coinpulse/internal/logger"
)

var (
	// ErrStaleResult is returned when a newer navigation superseded the one
	// whose fetch just finished. The result was discarded.
	ErrStaleResult = errors.New("result superseded by a newer request")
	// ErrNotInDetail is returned by SelectRange outside the detail view.
	ErrNotInDetail = errors.New("range selection requires the detail view")
	// ErrClosed is returned once the session has expired.
	ErrClosed = errors.New("session closed")
)

// Kind names the visible view.
type Kind string

const (
	Dashboard Kind = "dashboard"
	Detail    Kind = "detail"
)

// Fetcher loads detail data for the controller.
type Fetcher interface {
	FetchAssetDetail(ctx context.Context, id string) (*models.AssetDetail, error)
	FetchHistoricalSeries(ctx context.Context, id string, days models.RangeDays) (*models.HistoricalSeries, error)
}

// State is a read-only copy of a controller.
type State struct {
	View    Kind              `json:"view" example:"detail"`
	AssetID string            `json:"asset_id,omitempty" example:"bitcoin"`
	Range   models.RangeDays  `json:"range" example:"7"`
	Ranges  []dto.RangeOption `json:"ranges"`
	Detail  detail.View       `json:"detail"`
}

// Controller is the view model of one browser session. Transitions may run
// concurrently. Metadata and history loads carry separate generation tokens
// and a fetch result whose token is no longer current is dropped, so a range
// change supersedes only the chart of a navigation still in flight.
type Controller struct {
	mu           sync.Mutex
	view         Kind
	assetID      string
	active       models.RangeDays
	defaultRange models.RangeDays
	nav          uint64 // bumped by every view change
	chart        uint64 // bumped by every history load and view change
	closed       bool

	fetcher Fetcher
	detail  *detail.Renderer
	locale  format.Locale
	log     zerolog.Logger
}

// Options configures a Controller.
type Options struct {
	Locale       format.Locale
	DefaultRange models.RangeDays
}

// NewController returns a controller showing the dashboard.
func NewController(f Fetcher, opts Options) *Controller {
	if !opts.DefaultRange.Valid() {
		opts.DefaultRange = models.DefaultRange
	}
	if opts.Locale.Name() == "" {
		opts.Locale = format.DefaultLocale()
	}
	return &Controller{
		view:         Dashboard,
		active:       opts.DefaultRange,
		defaultRange: opts.DefaultRange,
		fetcher:      f,
		detail:       detail.NewRenderer(opts.Locale),
		locale:       opts.Locale,
		log:          logger.Component("viewctl"),
	}
}

// ToDetail switches to the detail view of id, loads its metadata and then the
// history for the default range.
func (c *Controller) ToDetail(ctx context.Context, id string) (State, error) {
	return c.toDetail(ctx, id, c.defaultRange)
}

// ToDashboard switches back to the dashboard. The selected asset is kept.
// Any transition still in flight is superseded.
func (c *Controller) ToDashboard() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.supersede()
	c.view = Dashboard
	return c.state()
}

// SelectRange moves the active range marker to days and reloads only the
// history chart. Metadata is not fetched again; a metadata load still in
// flight for the current asset is kept.
func (c *Controller) SelectRange(ctx context.Context, days models.RangeDays) (State, error) {
	if !days.Valid() {
		return c.State(), fmt.Errorf("select range: %w", models.ErrInvalidRange)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return State{}, ErrClosed
	}
	if c.view != Detail {
		st := c.state()
		c.mu.Unlock()
		return st, ErrNotInDetail
	}
	c.chart++
	gen, id := c.chart, c.assetID
	c.active = days
	c.mu.Unlock()

	return c.loadHistory(ctx, gen, id, days)
}

// Navigate brings the session to Detail(id) with the given range. When the
// session already shows id, only the history is reloaded and only if the
// range changed.
func (c *Controller) Navigate(ctx context.Context, id string, days models.RangeDays) (State, error) {
	if !days.Valid() {
		days = c.defaultRange
	}

	c.mu.Lock()
	showing := c.view == Detail && c.assetID == id && c.hasContent(id)
	same := showing && c.active == days
	c.mu.Unlock()

	switch {
	case same:
		return c.State(), nil
	case showing:
		return c.SelectRange(ctx, days)
	default:
		return c.toDetail(ctx, id, days)
	}
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state()
}

// Close supersedes any transition in flight and drops the chart. Later
// transitions return ErrClosed.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.supersede()
	c.closed = true
	c.detail.ClearChart()
}

// Detail exposes the detail renderer of this session.
func (c *Controller) Detail() *detail.Renderer { return c.detail }

func (c *Controller) toDetail(ctx context.Context, id string, days models.RangeDays) (State, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return State{}, ErrClosed
	}
	c.supersede()
	nav, chart := c.nav, c.chart
	c.view = Detail
	c.assetID = id
	c.active = days
	c.mu.Unlock()

	asset, err := c.fetcher.FetchAssetDetail(ctx, id)

	c.mu.Lock()
	if nav != c.nav {
		st := c.state()
		c.mu.Unlock()
		return st, ErrStaleResult
	}
	if err != nil {
		log := logger.Ctx(ctx, c.log)
		log.Warn().Err(err).Str("asset_id", id).Msg("detail fetch failed")
		c.detail.RenderFailure(err)
		st := c.state()
		c.mu.Unlock()
		return st, nil
	}
	c.detail.RenderDetail(asset)
	if chart != c.chart {
		// A range change took over the chart while the metadata loaded.
		st := c.state()
		c.mu.Unlock()
		return st, nil
	}
	c.mu.Unlock()

	return c.loadHistory(ctx, chart, id, days)
}

func (c *Controller) loadHistory(ctx context.Context, gen uint64, id string, days models.RangeDays) (State, error) {
	series, err := c.fetcher.FetchHistoricalSeries(ctx, id, days)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.chart {
		return c.state(), ErrStaleResult
	}
	if err != nil {
		log := logger.Ctx(ctx, c.log)
		log.Warn().Err(err).Str("asset_id", id).Int("days", int(days)).Msg("history fetch failed")
		c.detail.ClearChart()
		return c.state(), nil
	}
	c.detail.RenderHistoricalChart(series)
	return c.state(), nil
}

// supersede invalidates every metadata and history load in flight.
func (c *Controller) supersede() {
	c.nav++
	c.chart++
}

func (c *Controller) hasContent(id string) bool {
	v := c.detail.View()
	return v.Header != nil && v.Header.ID == id
}

func (c *Controller) state() State {
	st := State{
		View:    c.view,
		AssetID: c.assetID,
		Range:   c.active,
		Ranges:  RangeOptions(c.locale, c.assetID, c.active),
	}
	if c.view == Detail {
		st.Detail = c.detail.View()
	}
	return st
}

// RangeOptions builds the range selector for id with active marked.
func RangeOptions(l format.Locale, id string, active models.RangeDays) []dto.RangeOption {
	opts := make([]dto.RangeOption, 0, len(models.Ranges))
	for _, d := range models.Ranges {
		opts = append(opts, dto.RangeOption{
			Days:   int(d),
			Label:  l.T(format.MsgRangeButton, int(d)),
			Active: d == active,
			Href:   fmt.Sprintf("/coins/%s?days=%d", id, int(d)),
		})
	}
	return opts
}
