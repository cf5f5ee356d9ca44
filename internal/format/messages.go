package format

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// UI strings. The English text doubles as the catalog key.
const (
	MsgTotalMarketCap   = "Total Market Cap"
	MsgTradingVolume24h = "24h Trading Volume"
	MsgBTCDominance     = "BTC Dominance"
	MsgETHDominance     = "ETH Dominance"
	MsgCurrentPrice     = "Current Price"
	MsgChange24h        = "24h Change"
	MsgMarketCap        = "Market Cap"
	MsgVolume24h        = "24h Volume"
	MsgAllTimeHigh      = "All-Time High"
	MsgCirculating      = "Circulating Supply"
	MsgNoDescription    = "Description unavailable."
	MsgDashboardFailed  = "Failed to load data. Check your internet connection."
	MsgDetailFailed     = "Failed to load coin details."
	MsgPriceRange       = "Price (%d Days)"
	MsgRangeButton      = "%dD"
)

var indonesian = map[string]string{
	MsgTotalMarketCap:   "Kapitalisasi Pasar Total",
	MsgTradingVolume24h: "Volume Perdagangan 24j",
	MsgBTCDominance:     "Dominasi BTC",
	MsgETHDominance:     "Dominasi ETH",
	MsgCurrentPrice:     "Harga Saat Ini",
	MsgChange24h:        "Perubahan 24j",
	MsgMarketCap:        "Kapitalisasi Pasar",
	MsgVolume24h:        "Volume 24j",
	MsgCirculating:      "Supply Beredar",
	MsgNoDescription:    "Deskripsi tidak tersedia.",
	MsgDashboardFailed:  "Gagal memuat data. Periksa koneksi internet Anda.",
	MsgDetailFailed:     "Gagal memuat detail koin.",
	MsgPriceRange:       "Harga (%d Hari)",
	MsgRangeButton:      "%dH",
}

func init() {
	for key, msg := range indonesian {
		_ = message.SetString(language.Indonesian, key, msg)
	}
}
