package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the system,
// such as the HTTP server, the upstream market-data API and the dashboard itself.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	COINGECKO_BASE_URL=https://api.coingecko.com/api/v3
//	COINGECKO_TIMEOUT=10s
//	REFRESH_INTERVAL=15s
//	CHART_WINDOW=15
//	CHART_TRACKED=10
//	DEFAULT_RANGE_DAYS=7
//	DASHBOARD_LOCALE=id-ID
//	DASHBOARD_TIMEZONE=Local
//	DASHBOARD_KEEP_WARM=false
//	SESSION_TTL=30m
//	RATE_LIMIT_PER_MINUTE=120
type Config struct {
	Server    ServerConfig    // HTTP server configuration
	Upstream  UpstreamConfig  // Market-data API settings
	Dashboard DashboardConfig // Refresh, chart and presentation settings
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string        // The TCP port the HTTP server will listen on (e.g., "8080")
	SessionTTL         time.Duration // Idle time after which a browser session is dropped
	RateLimitPerMinute int           // Requests allowed per client IP per minute
}

// UpstreamConfig defines how the market-data API is reached.
type UpstreamConfig struct {
	BaseURL string
	Timeout time.Duration
}

// DashboardConfig controls the refresh loop and rendering.
//
// Fields:
//   - RefreshInterval: period of the dashboard refresh scheduler.
//   - ChartWindow: maximum number of labels kept by the rolling price chart.
//   - ChartTracked: how many top-ranked assets the rolling chart follows.
//   - DefaultRangeDays: range selected when a detail view opens.
//   - Locale: BCP 47 tag used for numbers, dates and UI strings.
//   - Timezone: IANA zone name (or "Local") used for chart labels.
//   - KeepWarm: keep refreshing while no browser session shows the dashboard.
type DashboardConfig struct {
	RefreshInterval  time.Duration
	ChartWindow      int
	ChartTracked     int
	DefaultRangeDays int
	Locale           string
	Timezone         string
	KeepWarm         bool
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
var AppConfig Config

// LoadConfig initializes the global AppConfig from a .env file and the environment.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present), loaded into the process environment.
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing or invalid, validateConfig() terminates the app.
func LoadConfig() {
	// .env only fills variables that are not already set
	_ = godotenv.Load()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SESSION_TTL", "30m")
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 120)

	viper.SetDefault("COINGECKO_BASE_URL", "https://api.coingecko.com/api/v3")
	viper.SetDefault("COINGECKO_TIMEOUT", "10s")

	viper.SetDefault("REFRESH_INTERVAL", "15s")
	viper.SetDefault("CHART_WINDOW", 15)
	viper.SetDefault("CHART_TRACKED", 10)
	viper.SetDefault("DEFAULT_RANGE_DAYS", 7)
	viper.SetDefault("DASHBOARD_LOCALE", "id-ID")
	viper.SetDefault("DASHBOARD_TIMEZONE", "Local")
	viper.SetDefault("DASHBOARD_KEEP_WARM", false)

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port:               viper.GetString("SERVER_PORT"),
			SessionTTL:         viper.GetDuration("SESSION_TTL"),
			RateLimitPerMinute: viper.GetInt("RATE_LIMIT_PER_MINUTE"),
		},
		Upstream: UpstreamConfig{
			BaseURL: viper.GetString("COINGECKO_BASE_URL"),
			Timeout: viper.GetDuration("COINGECKO_TIMEOUT"),
		},
		Dashboard: DashboardConfig{
			RefreshInterval:  viper.GetDuration("REFRESH_INTERVAL"),
			ChartWindow:      viper.GetInt("CHART_WINDOW"),
			ChartTracked:     viper.GetInt("CHART_TRACKED"),
			DefaultRangeDays: viper.GetInt("DEFAULT_RANGE_DAYS"),
			Locale:           viper.GetString("DASHBOARD_LOCALE"),
			Timezone:         viper.GetString("DASHBOARD_TIMEZONE"),
			KeepWarm:         viper.GetBool("DASHBOARD_KEEP_WARM"),
		},
	}

	validateConfig()
}

// Problems lists the names of configuration values that are missing or invalid.
func (c Config) Problems() []string {
	var missing []string

	if c.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if c.Server.SessionTTL <= 0 {
		missing = append(missing, "SESSION_TTL")
	}
	if c.Upstream.BaseURL == "" {
		missing = append(missing, "COINGECKO_BASE_URL")
	}
	if c.Upstream.Timeout <= 0 {
		missing = append(missing, "COINGECKO_TIMEOUT")
	}
	if c.Dashboard.RefreshInterval <= 0 {
		missing = append(missing, "REFRESH_INTERVAL")
	}
	if c.Dashboard.ChartWindow < 1 {
		missing = append(missing, "CHART_WINDOW")
	}
	if c.Dashboard.ChartTracked < 1 {
		missing = append(missing, "CHART_TRACKED")
	}
	if c.Dashboard.Locale == "" {
		missing = append(missing, "DASHBOARD_LOCALE")
	}
	if c.Dashboard.Timezone == "" {
		missing = append(missing, "DASHBOARD_TIMEZONE")
	}
	return missing
}

// validateConfig terminates the application when required values are missing.
func validateConfig() {
	if missing := AppConfig.Problems(); len(missing) > 0 {
		log.Fatalf("missing or invalid configuration: %v\n", missing)
	}
}
