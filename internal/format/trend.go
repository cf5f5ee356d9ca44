package format

// Trend is the direction of a price move.
type Trend int

const (
	Down Trend = iota
	Up
)

// TrendOf classifies a change; zero counts as up.
func TrendOf(delta float64) Trend {
	if delta >= 0 {
		return Up
	}
	return Down
}

// TrendBetween compares two samples; only a strict rise counts as up.
func TrendBetween(first, last float64) Trend {
	if last > first {
		return Up
	}
	return Down
}

// Class is the CSS class used for colored text.
func (t Trend) Class() string {
	if t == Up {
		return "text-success"
	}
	return "text-danger"
}

// Color is the stroke color used by sparklines.
func (t Trend) Color() string {
	if t == Up {
		return "#10b981"
	}
	return "#ef4444"
}
