package app

import (
	"context"
	"fmt"
	"net/url"

	"github.com/guttosm/coinpulse/config"
	"github.com/guttosm/coinpulse/internal/coingecko"
	"github.com/guttosm/coinpulse/internal/logger"
)

// InitUpstream builds the market-data client from the provided configuration.
//
// Parameters:
//   - cfg (config.Config): The application configuration object containing Upstream settings.
//
// Behavior:
//   - Validates cfg.Upstream.BaseURL as an absolute http(s) URL.
//   - Builds a coingecko.Client with the configured per-request timeout.
//   - Pings the API once. An unreachable API is only logged: the dashboard
//     shows its error row until the network comes back.
//
// Returns:
//   - *coingecko.Client: a client safe for concurrent use.
//   - error: if the base URL is unusable.
//
// Example usage:
//
//	client, err := app.InitUpstream(config.AppConfig)
//	if err != nil {
//	    log.Fatalf("❌ invalid upstream: %v", err)
//	}
func InitUpstream(cfg config.Config) (*coingecko.Client, error) {
	u, err := url.Parse(cfg.Upstream.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse upstream url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("upstream url %q must be an absolute http(s) url", cfg.Upstream.BaseURL)
	}

	client := coingecko.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Upstream.Timeout)
	defer cancel()
	if err := client.Ping(ctx); err != nil {
		logger.L().Warn().Err(err).Str("base_url", cfg.Upstream.BaseURL).Msg("market API not reachable")
	}

	return client, nil
}

// upstreamOpener is an indirection used by InitializeApp; overridden in tests to avoid real connections.
var upstreamOpener = InitUpstream
