// Package sparkline draws small inline trend lines without axes or labels.
package sparkline

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/guttosm/coinpulse/internal/format"
)

// Viewport size of every sparkline.
const (
	Width  = 120
	Height = 40
)

// Point is one vertex of the polyline, in viewport coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sparkline is a rendered trend line.
type Sparkline struct {
	Points []Point `json:"points"`
	Color  string  `json:"color"`
}

// Render maps values into the viewport: x spreads the indices across the
// width, y is inverted so a higher value sits higher. A flat series uses a
// range of 1 and lies on the bottom edge; a single value yields one point at
// x=0. The color follows format.TrendBetween(first, last).
func Render(values []float64) Sparkline {
	if len(values) == 0 {
		return Sparkline{Color: format.Down.Color()}
	}

	lo, hi := floats.Min(values), floats.Max(values)
	span := hi - lo
	if span == 0 {
		span = 1
	}
	steps := float64(len(values) - 1)
	if steps == 0 {
		steps = 1
	}

	pts := make([]Point, len(values))
	for i, v := range values {
		pts[i] = Point{
			X: float64(i) / steps * Width,
			Y: Height - (v-lo)/span*Height,
		}
	}

	return Sparkline{
		Points: pts,
		Color:  format.TrendBetween(values[0], values[len(values)-1]).Color(),
	}
}

// Attr renders the points as an SVG points attribute ("x,y x,y ...").
func (s Sparkline) Attr() string {
	var b strings.Builder
	for i, p := range s.Points {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.FormatFloat(p.X, 'f', -1, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(p.Y, 'f', -1, 64))
	}
	return b.String()
}

// SVG renders the complete inline element.
func (s Sparkline) SVG() string {
	return fmt.Sprintf(
		`<svg class="sparkline" viewBox="0 0 %d %d"><polyline fill="none" stroke="%s" stroke-width="2" points="%s"/></svg>`,
		Width, Height, s.Color, s.Attr(),
	)
}
