// Package format turns raw market numbers and timestamps into display strings.
package format

import (
	"math"

	"github.com/shopspring/decimal"
)

var magnitudes = []struct {
	threshold float64
	divisor   decimal.Decimal
	suffix    string
}{
	{1e12, decimal.New(1, 12), " T"},
	{1e9, decimal.New(1, 9), " B"},
	{1e6, decimal.New(1, 6), " M"},
	{1e3, decimal.New(1, 3), " K"},
}

// Magnitude renders n with two decimals and a T/B/M/K suffix for values of at
// least 1e12/1e9/1e6/1e3. Smaller values, negatives included, get no suffix.
// NaN and infinities render as "0".
func Magnitude(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return "0"
	}
	d := decimal.NewFromFloat(n)
	for _, m := range magnitudes {
		if n >= m.threshold {
			return d.Div(m.divisor).StringFixed(2) + m.suffix
		}
	}
	return d.StringFixed(2)
}

// MagnitudeOf is Magnitude for values the upstream may leave out; nil yields "0".
func MagnitudeOf(n *float64) string {
	if n == nil {
		return "0"
	}
	return Magnitude(*n)
}

// Percent renders p with two decimals and a percent sign.
func Percent(p float64) string {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return "0.00%"
	}
	return decimal.NewFromFloat(p).StringFixed(2) + "%"
}

// SignedPercent is Percent with an explicit "+" for non-negative values.
func SignedPercent(p float64) string {
	if p >= 0 {
		return "+" + Percent(p)
	}
	return Percent(p)
}

// Fixed renders v with exactly two decimals and no grouping.
func Fixed(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0.00"
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}
