// Package dashboard renders the market overview, the ranked asset table and
// the rolling multi-series price chart.
package dashboard

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/guttosm/coinpulse/internal/chart"
	"github.com/guttosm/coinpulse/internal/domain/dto"
	"github.com/guttosm/coinpulse/internal/domain/models"
	"github.com/guttosm/coinpulse/internal/format"
	"github.com/guttosm/coinpulse/internal/sparkline"
)

// Defaults for Options.
const (
	DefaultWindow  = 15
	DefaultTracked = 10
)

// ErrNotRendered is reported by Ready before the first successful render.
var ErrNotRendered = errors.New("dashboard not rendered yet")

// Row is one asset line of the table. Href is the click target that opens
// the asset's detail view.
type Row struct {
	ID          string              `json:"id"`
	Href        string              `json:"href"`
	Rank        int                 `json:"rank"`
	Image       string              `json:"image"`
	Name        string              `json:"name"`
	Symbol      string              `json:"symbol"`
	Price       string              `json:"price"`
	Change      string              `json:"change"`
	ChangeClass string              `json:"change_class"`
	MarketCap   string              `json:"market_cap"`
	Sparkline   sparkline.Sparkline `json:"sparkline"`
}

// View is everything the dashboard page shows. A View is never mutated
// after it is returned.
type View struct {
	Overview  []dto.StatCard `json:"overview"`
	Rows      []Row          `json:"rows"`
	Error     string         `json:"error,omitempty"`
	Chart     *chart.Config  `json:"chart,omitempty"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Options configures a Renderer.
type Options struct {
	Locale  format.Locale
	Window  int              // labels kept by the rolling chart
	Tracked int              // top-ranked assets followed by the chart
	Now     func() time.Time // clock for chart labels
}

// Renderer owns the rolling chart buffer and the current dashboard view.
// It is safe for concurrent use: one writer (the refresh pipeline) and any
// number of readers.
type Renderer struct {
	mu      sync.RWMutex
	locale  format.Locale
	now     func() time.Time
	buffer  *chart.Buffer
	view    View
	lastErr error
}

// NewRenderer builds a Renderer; zero Options fields fall back to defaults.
func NewRenderer(opts Options) *Renderer {
	if opts.Window < 1 {
		opts.Window = DefaultWindow
	}
	if opts.Tracked < 1 {
		opts.Tracked = DefaultTracked
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Locale.Name() == "" {
		opts.Locale = format.DefaultLocale()
	}
	return &Renderer{
		locale:  opts.Locale,
		now:     opts.Now,
		buffer:  chart.NewBuffer(opts.Window, opts.Tracked),
		lastErr: ErrNotRendered,
	}
}

// Render consumes a snapshot: the overview and table are replaced and one
// point per tracked asset is appended to the chart.
func (r *Renderer) Render(snap *models.Snapshot) View {
	overview := r.RenderOverview(snap.Overview)
	rows := r.RenderTable(snap.Assets)

	r.mu.Lock()
	defer r.mu.Unlock()

	cfg := r.updateChart(snap.Assets)
	r.view = View{
		Overview:  overview,
		Rows:      rows,
		Chart:     &cfg,
		UpdatedAt: r.now(),
	}
	r.lastErr = nil
	return r.view
}

// RenderFailure replaces the table with a single error row. The overview and
// chart keep their last values.
func (r *Renderer) RenderFailure(err error) View {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err == nil {
		err = errors.New("unknown failure")
	}
	v := r.view
	v.Rows = nil
	v.Error = r.locale.T(format.MsgDashboardFailed)
	v.UpdatedAt = r.now()
	r.view = v
	r.lastErr = err
	return v
}

// RenderOverview builds the four overview cards.
func (r *Renderer) RenderOverview(o models.MarketOverview) []dto.StatCard {
	l := r.locale
	return []dto.StatCard{
		{Label: l.T(format.MsgTotalMarketCap), Value: "$" + format.Magnitude(o.TotalMarketCap)},
		{Label: l.T(format.MsgTradingVolume24h), Value: "$" + format.Magnitude(o.TotalVolume)},
		{Label: l.T(format.MsgBTCDominance), Value: format.Percent(o.BTCDominance)},
		{Label: l.T(format.MsgETHDominance), Value: format.Percent(o.ETHDominance)},
	}
}

// RenderTable builds one row per asset in the order received.
func (r *Renderer) RenderTable(assets []models.AssetSummary) []Row {
	rows := make([]Row, 0, len(assets))
	for _, a := range assets {
		rows = append(rows, Row{
			ID:          a.ID,
			Href:        DetailHref(a.ID),
			Rank:        a.Rank,
			Image:       a.Image,
			Name:        a.Name,
			Symbol:      strings.ToUpper(a.Symbol),
			Price:       "$" + r.locale.Price(a.CurrentPrice),
			Change:      format.SignedPercent(a.PriceChangePercentage24h),
			ChangeClass: format.TrendOf(a.PriceChangePercentage24h).Class(),
			MarketCap:   "$" + format.Magnitude(a.MarketCap),
			Sparkline:   sparkline.Render(a.Sparkline7d),
		})
	}
	return rows
}

// UpdateChart appends the current prices of the top-ranked assets to the
// rolling chart and returns the redrawn configuration.
func (r *Renderer) UpdateChart(assets []models.AssetSummary) chart.Config {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.updateChart(assets)
}

func (r *Renderer) updateChart(assets []models.AssetSummary) chart.Config {
	samples := make([]chart.Sample, 0, len(assets))
	for _, a := range assets {
		samples = append(samples, chart.Sample{ID: a.ID, Label: a.Name, Value: a.CurrentPrice})
	}
	first := r.buffer.Len() == 0
	r.buffer.Push(r.locale.Clock(r.now()), samples)
	return chart.MultiSeries(r.buffer, first)
}

// View returns the current dashboard view.
func (r *Renderer) View() View {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.view
}

// Ready returns nil when the most recent refresh rendered successfully,
// otherwise the error that replaced it.
func (r *Renderer) Ready() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastErr
}

// DetailHref is the page that opens the detail view of an asset.
func DetailHref(id string) string {
	return "/coins/" + id
}
