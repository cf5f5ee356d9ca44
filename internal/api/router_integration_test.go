//go:build integration
// +build integration

package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/guttosm/coinpulse/config"
	"github.com/guttosm/coinpulse/internal/app"
	"github.com/guttosm/coinpulse/internal/middleware"
)

func liveConfig() config.Config {
	return config.Config{
		Server: config.ServerConfig{Port: "0", SessionTTL: time.Minute, RateLimitPerMinute: 1000},
		Upstream: config.UpstreamConfig{
			BaseURL: "https://api.coingecko.com/api/v3",
			Timeout: 15 * time.Second,
		},
		Dashboard: config.DashboardConfig{
			RefreshInterval:  time.Minute,
			ChartWindow:      15,
			ChartTracked:     10,
			DefaultRangeDays: 7,
			Locale:           "id-ID",
			Timezone:         "Asia/Jakarta",
		},
	}
}

func serve(t *testing.T, h http.Handler, method, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestAPI_E2E_DashboardAndDetail(t *testing.T) {
	old := config.AppConfig
	defer func() { config.AppConfig = old }()
	config.AppConfig = liveConfig()

	router, cleanup, err := app.InitializeApp()
	if err != nil {
		t.Fatalf("init app: %v", err)
	}
	defer cleanup()

	deadline := time.Now().Add(45 * time.Second)
	for serve(t, router, http.MethodGet, "/readyz", nil).Code != http.StatusOK {
		if time.Now().After(deadline) {
			t.Fatalf("dashboard never became ready")
		}
		time.Sleep(500 * time.Millisecond)
	}

	w := serve(t, router, http.MethodGet, "/api/v1/dashboard", nil)
	var dash struct {
		Overview []struct{ Label, Value string } `json:"overview"`
		Rows     []struct {
			ID   string `json:"id"`
			Rank int    `json:"rank"`
		} `json:"rows"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &dash); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(dash.Overview) != 4 || len(dash.Rows) == 0 {
		t.Fatalf("unexpected dashboard: %s", w.Body.String())
	}

	w = serve(t, router, http.MethodPost, "/api/v1/session/detail/bitcoin", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("detail status %d body=%s", w.Code, w.Body.String())
	}
	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			cookie = c
		}
	}

	w = serve(t, router, http.MethodPost, "/api/v1/session/range?days=30", cookie)
	var st struct {
		View   string `json:"view"`
		Range  int    `json:"range"`
		Detail struct {
			Stats []json.RawMessage `json:"stats"`
			Chart *json.RawMessage  `json:"chart"`
		} `json:"detail"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &st); err != nil {
		t.Fatalf("json: %v", err)
	}
	if st.View != "detail" || st.Range != 30 || len(st.Detail.Stats) != 6 || st.Detail.Chart == nil {
		t.Fatalf("unexpected session: %s", w.Body.String())
	}
}
