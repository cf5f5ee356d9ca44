package chart

// Config mirrors the object passed to `new Chart(ctx, config)` in Chart.js.
// Tick and tooltip callbacks are JavaScript functions and are attached by the
// page script.
type Config struct {
	Type    string         `json:"type"`
	Data    Data           `json:"data"`
	Options map[string]any `json:"options"`
}

// Data is the labels plus datasets part of a Config.
type Data struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Dataset is one line of a chart.
type Dataset struct {
	Label            string     `json:"label"`
	Data             []*float64 `json:"data"`
	BorderColor      string     `json:"borderColor"`
	BackgroundColor  string     `json:"backgroundColor"`
	Tension          float64    `json:"tension"`
	BorderWidth      int        `json:"borderWidth"`
	Fill             bool       `json:"fill"`
	PointRadius      int        `json:"pointRadius"`
	PointHoverRadius int        `json:"pointHoverRadius,omitempty"`
}

const (
	tickColor    = "#a0a0b8"
	gridColor    = "#2a2a4e"
	tooltipBG    = "#191933"
	white        = "#ffffff"
	accentBlue   = "#00d4ff"
	accentBlueBG = "rgba(0, 212, 255, 0.1)"
)

func tooltip() map[string]any {
	return map[string]any{
		"mode":            "index",
		"intersect":       false,
		"backgroundColor": tooltipBG,
		"titleColor":      white,
		"bodyColor":       tickColor,
		"borderColor":     gridColor,
		"borderWidth":     1,
	}
}

// MultiSeries builds the dashboard line chart from the buffer. With animate
// false the chart redraws in place without transitions.
func MultiSeries(b *Buffer, animate bool) Config {
	series := b.Series()
	datasets := make([]Dataset, 0, len(series))
	for _, s := range series {
		datasets = append(datasets, Dataset{
			Label:           s.Label,
			Data:            s.Data,
			BorderColor:     s.Color,
			BackgroundColor: "transparent",
			Tension:         0.1,
			BorderWidth:     2,
		})
	}

	opts := map[string]any{
		"responsive":          true,
		"maintainAspectRatio": false,
		"spanGaps":            false,
		"interaction":         map[string]any{"mode": "index", "intersect": false},
		"scales": map[string]any{
			"y": map[string]any{
				"beginAtZero": false,
				"ticks":       map[string]any{"color": tickColor},
				"grid":        map[string]any{"color": gridColor, "drawBorder": false},
			},
			"x": map[string]any{
				"ticks": map[string]any{"color": tickColor},
				"grid":  map[string]any{"display": false},
			},
		},
		"plugins": map[string]any{
			"legend":  map[string]any{"position": "top", "labels": map[string]any{"color": white, "usePointStyle": true}},
			"tooltip": tooltip(),
		},
	}
	if !animate {
		opts["animation"] = false
	}

	return Config{
		Type:    "line",
		Data:    Data{Labels: b.Labels(), Datasets: datasets},
		Options: opts,
	}
}

// Area builds the single-series filled history chart of the detail view.
// Points are only drawn on hover.
func Area(label string, labels []string, values []float64) Config {
	data := make([]*float64, len(values))
	for i := range values {
		data[i] = &values[i]
	}

	return Config{
		Type: "line",
		Data: Data{
			Labels: labels,
			Datasets: []Dataset{{
				Label:            label,
				Data:             data,
				BorderColor:      accentBlue,
				BackgroundColor:  accentBlueBG,
				Tension:          0.4,
				BorderWidth:      2,
				Fill:             true,
				PointRadius:      0,
				PointHoverRadius: 5,
			}},
		},
		Options: map[string]any{
			"responsive":          true,
			"maintainAspectRatio": false,
			"scales": map[string]any{
				"y": map[string]any{
					"ticks": map[string]any{"color": tickColor},
					"grid":  map[string]any{"color": gridColor},
				},
				"x": map[string]any{
					"ticks": map[string]any{"color": tickColor, "maxTicksLimit": 8},
					"grid":  map[string]any{"display": false},
				},
			},
			"plugins": map[string]any{
				"legend":  map[string]any{"display": false},
				"tooltip": tooltip(),
			},
		},
	}
}
