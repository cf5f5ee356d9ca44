package models

import (
	"errors"
	"fmt"
	"time"
)

// AssetSummary is one row of the ranked market list.
//
// Summaries are received fresh on every poll and fully replace the previous
// ones; nothing but the ID links a summary to an earlier poll.
type AssetSummary struct {
	ID                       string    `json:"id" example:"bitcoin"`
	Name                     string    `json:"name" example:"Bitcoin"`
	Symbol                   string    `json:"symbol" example:"btc"`
	Image                    string    `json:"image"`
	Rank                     int       `json:"rank" example:"1"`
	CurrentPrice             float64   `json:"current_price" example:"64250.12"`
	PriceChangePercentage24h float64   `json:"price_change_percentage_24h" example:"-1.42"`
	MarketCap                float64   `json:"market_cap" example:"1265000000000"`
	Sparkline7d              []float64 `json:"sparkline_7d"`
}

// MarketOverview holds aggregate totals across the whole market (usd).
type MarketOverview struct {
	TotalMarketCap float64 `json:"total_market_cap"`
	TotalVolume    float64 `json:"total_volume"`
	BTCDominance   float64 `json:"btc_dominance"`
	ETHDominance   float64 `json:"eth_dominance"`
}

// Snapshot is one self-consistent pair of overview and ranked assets.
type Snapshot struct {
	Overview  MarketOverview `json:"overview"`
	Assets    []AssetSummary `json:"assets"`
	FetchedAt time.Time      `json:"fetched_at"`
}

// AssetDetail carries the metadata and market statistics of a single asset.
//
// CirculatingSupply is nil when the upstream does not know it.
type AssetDetail struct {
	ID                       string   `json:"id"`
	Name                     string   `json:"name"`
	Symbol                   string   `json:"symbol"`
	Description              string   `json:"description"`
	Image                    string   `json:"image"`
	CurrentPrice             float64  `json:"current_price"`
	PriceChangePercentage24h float64  `json:"price_change_percentage_24h"`
	MarketCap                float64  `json:"market_cap"`
	TotalVolume              float64  `json:"total_volume"`
	AllTimeHigh              float64  `json:"ath"`
	CirculatingSupply        *float64 `json:"circulating_supply"`
}

// PricePoint is a single (timestamp, price) sample.
type PricePoint struct {
	Time  time.Time `json:"time"`
	Price float64   `json:"price"`
}

// HistoricalSeries is the price history of one asset over a range of days.
type HistoricalSeries struct {
	AssetID string       `json:"asset_id"`
	Days    RangeDays    `json:"days"`
	Points  []PricePoint `json:"points"`
}

// RangeDays is one of the selectable history ranges, in days.
type RangeDays int

// Selectable history ranges.
const (
	Range1D   RangeDays = 1
	Range7D   RangeDays = 7
	Range30D  RangeDays = 30
	Range90D  RangeDays = 90
	Range365D RangeDays = 365
)

// DefaultRange is selected when a detail view opens.
const DefaultRange = Range7D

// Ranges lists the selectable ranges in display order.
var Ranges = []RangeDays{Range1D, Range7D, Range30D, Range90D, Range365D}

// Valid reports whether d is one of Ranges.
func (d RangeDays) Valid() bool {
	for _, r := range Ranges {
		if r == d {
			return true
		}
	}
	return false
}

// ErrInvalidRange reports a day count outside Ranges.
var ErrInvalidRange = errors.New("unsupported range")

// ParseRange validates a raw day count.
func ParseRange(days int) (RangeDays, error) {
	d := RangeDays(days)
	if !d.Valid() {
		return 0, fmt.Errorf("%w: %d days", ErrInvalidRange, days)
	}
	return d, nil
}
