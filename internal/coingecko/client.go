// Package coingecko fetches market snapshots, asset metadata and price
// history from the public CoinGecko v3 API.
package coingecko

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/guttosm/coinpulse/internal/domain/models"
)

// ErrNetworkFailure is the only failure kind the client reports: a transport
// error, a non-2xx status or a payload that does not match the expected schema.
var ErrNetworkFailure = errors.New("network failure")

// MarketsPerPage caps the ranked list fetched for the dashboard.
const MarketsPerPage = 100

// maxErrorBody bounds how much of a failing response body is kept in errors.
const maxErrorBody = 512

// Client talks to the market-data API. It is safe for concurrent use.
type Client struct {
	baseURL  string
	http     *http.Client
	validate *validator.Validate
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient builds a client for baseURL (e.g. "https://api.coingecko.com/api/v3").
// timeout bounds every single request.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: timeout},
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchSnapshot requests the ranked asset list and the global market stats
// concurrently. Both must succeed; the first failure cancels the other
// request and is returned, so a partial snapshot is never produced.
func (c *Client) FetchSnapshot(ctx context.Context) (*models.Snapshot, error) {
	var (
		page   marketsPage
		global globalResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.getJSON(gctx, "/coins/markets", marketsQuery(), &page.Coins)
	})
	g.Go(func() error {
		return c.getJSON(gctx, "/global", nil, &global)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := c.check("/coins/markets", &page); err != nil {
		return nil, err
	}
	if err := c.check("/global", &global); err != nil {
		return nil, err
	}

	assets := make([]models.AssetSummary, 0, len(page.Coins))
	for _, coin := range page.Coins {
		assets = append(assets, coin.toModel())
	}

	return &models.Snapshot{
		Overview:  global.Data.toModel(),
		Assets:    assets,
		FetchedAt: time.Now(),
	}, nil
}

// FetchAssetDetail requests the full metadata of one asset.
func (c *Client) FetchAssetDetail(ctx context.Context, id string) (*models.AssetDetail, error) {
	q := url.Values{}
	q.Set("localization", "false")
	q.Set("tickers", "false")
	q.Set("market_data", "true")
	q.Set("community_data", "false")
	q.Set("developer_data", "false")
	q.Set("sparkline", "false")

	path := "/coins/" + url.PathEscape(id)
	var detail coinDetail
	if err := c.getJSON(ctx, path, q, &detail); err != nil {
		return nil, err
	}
	if err := c.check(path, &detail); err != nil {
		return nil, err
	}

	out := detail.toModel()
	return &out, nil
}

// FetchHistoricalSeries requests the usd price history of one asset over days.
// It is independent of FetchAssetDetail.
func (c *Client) FetchHistoricalSeries(ctx context.Context, id string, days models.RangeDays) (*models.HistoricalSeries, error) {
	q := url.Values{}
	q.Set("vs_currency", vsCurrency)
	q.Set("days", strconv.Itoa(int(days)))

	path := "/coins/" + url.PathEscape(id) + "/market_chart"
	var chart marketChart
	if err := c.getJSON(ctx, path, q, &chart); err != nil {
		return nil, err
	}

	out := chart.toModel(id, days)
	return &out, nil
}

// Ping checks that the API answers at all.
func (c *Client) Ping(ctx context.Context) error {
	var body map[string]any
	return c.getJSON(ctx, "/ping", nil, &body)
}

func marketsQuery() url.Values {
	q := url.Values{}
	q.Set("vs_currency", vsCurrency)
	q.Set("order", "market_cap_desc")
	q.Set("per_page", strconv.Itoa(MarketsPerPage))
	q.Set("page", "1")
	q.Set("sparkline", "true")
	q.Set("price_change_percentage", "24h")
	return q
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%w: build request %s: %v", ErrNetworkFailure, path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: GET %s: %v", ErrNetworkFailure, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: GET %s: %s - %s", ErrNetworkFailure, path, resp.Status, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrNetworkFailure, path, err)
	}
	return nil
}

func (c *Client) check(path string, v any) error {
	if err := c.validate.Struct(v); err != nil {
		return fmt.Errorf("%w: unexpected payload from %s: %v", ErrNetworkFailure, path, err)
	}
	return nil
}
