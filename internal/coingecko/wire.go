package coingecko

import (
	"time"

	"github.com/guttosm/coinpulse/internal/domain/models"
)

const vsCurrency = "usd"

// marketsPage wraps the /coins/markets array so every element is validated.
type marketsPage struct {
	Coins []marketCoin `validate:"dive"`
}

type marketCoin struct {
	ID                       string   `json:"id" validate:"required"`
	Symbol                   string   `json:"symbol" validate:"required"`
	Name                     string   `json:"name" validate:"required"`
	Image                    string   `json:"image"`
	CurrentPrice             *float64 `json:"current_price"`
	MarketCap                *float64 `json:"market_cap"`
	MarketCapRank            *int     `json:"market_cap_rank"`
	PriceChangePercentage24h *float64 `json:"price_change_percentage_24h"`
	SparklineIn7d            *struct {
		Price []float64 `json:"price"`
	} `json:"sparkline_in_7d"`
}

type globalResponse struct {
	Data *globalData `json:"data" validate:"required"`
}

type globalData struct {
	TotalMarketCap      map[string]float64 `json:"total_market_cap" validate:"required"`
	TotalVolume         map[string]float64 `json:"total_volume" validate:"required"`
	MarketCapPercentage map[string]float64 `json:"market_cap_percentage"`
}

type coinDetail struct {
	ID          string            `json:"id" validate:"required"`
	Symbol      string            `json:"symbol" validate:"required"`
	Name        string            `json:"name" validate:"required"`
	Description map[string]string `json:"description"`
	Image       struct {
		Thumb string `json:"thumb"`
		Small string `json:"small"`
		Large string `json:"large"`
	} `json:"image"`
	MarketData *detailMarketData `json:"market_data" validate:"required"`
}

type detailMarketData struct {
	CurrentPrice             map[string]float64 `json:"current_price"`
	PriceChangePercentage24h *float64           `json:"price_change_percentage_24h"`
	MarketCap                map[string]float64 `json:"market_cap"`
	TotalVolume              map[string]float64 `json:"total_volume"`
	ATH                      map[string]float64 `json:"ath"`
	CirculatingSupply        *float64           `json:"circulating_supply"`
}

type marketChart struct {
	Prices [][2]float64 `json:"prices"`
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func (c marketCoin) toModel() models.AssetSummary {
	var samples []float64
	if c.SparklineIn7d != nil {
		samples = c.SparklineIn7d.Price
	}
	return models.AssetSummary{
		ID:                       c.ID,
		Name:                     c.Name,
		Symbol:                   c.Symbol,
		Image:                    c.Image,
		Rank:                     deref(c.MarketCapRank),
		CurrentPrice:             deref(c.CurrentPrice),
		PriceChangePercentage24h: deref(c.PriceChangePercentage24h),
		MarketCap:                deref(c.MarketCap),
		Sparkline7d:              samples,
	}
}

func (g globalData) toModel() models.MarketOverview {
	return models.MarketOverview{
		TotalMarketCap: g.TotalMarketCap[vsCurrency],
		TotalVolume:    g.TotalVolume[vsCurrency],
		BTCDominance:   g.MarketCapPercentage["btc"],
		ETHDominance:   g.MarketCapPercentage["eth"],
	}
}

func (d coinDetail) toModel() models.AssetDetail {
	md := d.MarketData
	return models.AssetDetail{
		ID:                       d.ID,
		Name:                     d.Name,
		Symbol:                   d.Symbol,
		Description:              d.Description["en"],
		Image:                    d.Image.Large,
		CurrentPrice:             md.CurrentPrice[vsCurrency],
		PriceChangePercentage24h: deref(md.PriceChangePercentage24h),
		MarketCap:                md.MarketCap[vsCurrency],
		TotalVolume:              md.TotalVolume[vsCurrency],
		AllTimeHigh:              md.ATH[vsCurrency],
		CirculatingSupply:        md.CirculatingSupply,
	}
}

func (m marketChart) toModel(id string, days models.RangeDays) models.HistoricalSeries {
	points := make([]models.PricePoint, 0, len(m.Prices))
	for _, p := range m.Prices {
		points = append(points, models.PricePoint{
			Time:  time.UnixMilli(int64(p[0])),
			Price: p[1],
		})
	}
	return models.HistoricalSeries{AssetID: id, Days: days, Points: points}
}
