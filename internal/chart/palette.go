package chart

import (
	"fmt"
	"math"
)

// goldenAngle spreads consecutive hues as far apart as possible.
const goldenAngle = 137.508

// Palette hands out line colors; consecutive colors have distinct hues.
type Palette struct {
	n int
}

// Next returns the next color as a CSS hsl() value.
func (p *Palette) Next() string {
	hue := math.Mod(float64(p.n)*goldenAngle, 360)
	p.n++
	return fmt.Sprintf("hsl(%d, 70%%, 60%%)", int(hue))
}
