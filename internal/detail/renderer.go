// Package detail renders the single-asset view: header, description, stat
// cards and the historical price chart.
package detail

import (
	"strings"
	"sync"

	"github.com/guttosm/coinpulse/internal/chart"
	"github.com/guttosm/coinpulse/internal/domain/dto"
	"github.com/guttosm/coinpulse/internal/domain/models"
	"github.com/guttosm/coinpulse/internal/format"
)

// Header is the top of the detail view.
type Header struct {
	ID     string `json:"id"`
	Image  string `json:"image"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// View is the detail area as last rendered. Chart is nil until a history has
// been drawn or after the chart was cleared.
type View struct {
	Header      *Header        `json:"header,omitempty"`
	Description string         `json:"description,omitempty"`
	Stats       []dto.StatCard `json:"stats,omitempty"`
	Error       string         `json:"error,omitempty"`
	ChartID     string         `json:"chart_id,omitempty"`
	Chart       *chart.Config  `json:"chart,omitempty"`
}

// Renderer draws one detail area. It owns at most one chart instance; a new
// history destroys the previous instance before the next is built.
type Renderer struct {
	mu       sync.Mutex
	locale   format.Locale
	view     View
	instance *chart.Instance
}

// NewRenderer returns a Renderer that formats with l.
func NewRenderer(l format.Locale) *Renderer {
	if l.Name() == "" {
		l = format.DefaultLocale()
	}
	return &Renderer{locale: l}
}

// RenderDetail fills header, description and stat cards from asset. Any
// previous error message is cleared; the chart is left untouched.
func (r *Renderer) RenderDetail(asset *models.AssetDetail) View {
	r.mu.Lock()
	defer r.mu.Unlock()

	l := r.locale
	desc := PlainText(asset.Description)
	if desc == "" {
		desc = l.T(format.MsgNoDescription)
	}

	r.view.Header = &Header{
		ID:     asset.ID,
		Image:  asset.Image,
		Name:   asset.Name,
		Symbol: "(" + strings.ToUpper(asset.Symbol) + ")",
	}
	r.view.Description = desc
	r.view.Stats = []dto.StatCard{
		{Label: l.T(format.MsgCurrentPrice), Value: "$" + l.Price(asset.CurrentPrice)},
		{
			Label: l.T(format.MsgChange24h),
			Value: format.SignedPercent(asset.PriceChangePercentage24h),
			Class: format.TrendOf(asset.PriceChangePercentage24h).Class(),
		},
		{Label: l.T(format.MsgMarketCap), Value: "$" + format.Magnitude(asset.MarketCap)},
		{Label: l.T(format.MsgVolume24h), Value: "$" + format.Magnitude(asset.TotalVolume)},
		{Label: l.T(format.MsgAllTimeHigh), Value: "$" + l.Price(asset.AllTimeHigh)},
		{Label: l.T(format.MsgCirculating), Value: format.MagnitudeOf(asset.CirculatingSupply)},
	}
	r.view.Error = ""
	return r.snapshot()
}

// RenderHistoricalChart replaces the chart with one built from series.
func (r *Renderer) RenderHistoricalChart(series *models.HistoricalSeries) View {
	r.mu.Lock()
	defer r.mu.Unlock()

	labels := make([]string, len(series.Points))
	values := make([]float64, len(series.Points))
	for i, p := range series.Points {
		labels[i] = format.TimeLabel(p.Time, int(series.Days), r.locale)
		values[i] = p.Price
	}
	cfg := chart.Area(r.locale.T(format.MsgPriceRange, int(series.Days)), labels, values)

	r.destroy()
	r.instance = chart.NewInstance(cfg)
	r.view.ChartID = r.instance.ID()
	r.view.Chart = &cfg
	return r.snapshot()
}

// ClearChart destroys the chart, if any.
func (r *Renderer) ClearChart() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.destroy()
	r.view.ChartID = ""
	r.view.Chart = nil
	return r.snapshot()
}

// RenderFailure replaces the detail contents with the failure message. The
// cause is logged by the caller and never shown.
func (r *Renderer) RenderFailure(error) View {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.destroy()
	r.view = View{Error: r.locale.T(format.MsgDetailFailed)}
	return r.snapshot()
}

// View returns the detail area as last rendered.
func (r *Renderer) View() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot()
}

// Instance returns the live chart instance, or nil.
func (r *Renderer) Instance() *chart.Instance {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.instance
}

// RangeLabel is the dataset label of the history chart for days.
func (r *Renderer) RangeLabel(days models.RangeDays) string {
	return r.locale.T(format.MsgPriceRange, int(days))
}

func (r *Renderer) destroy() {
	if r.instance != nil {
		r.instance.Destroy()
		r.instance = nil
	}
}

func (r *Renderer) snapshot() View {
	v := r.view
	if v.Stats != nil {
		v.Stats = append([]dto.StatCard(nil), v.Stats...)
	}
	return v
}
