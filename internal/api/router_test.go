package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/coinpulse/internal/dashboard"
	"github.com/guttosm/coinpulse/internal/format"
	"github.com/guttosm/coinpulse/internal/middleware"
	"github.com/guttosm/coinpulse/internal/viewctl"
	"github.com/guttosm/coinpulse/internal/web"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	pages, err := web.Load()
	if err != nil {
		t.Fatalf("load pages: %v", err)
	}
	locale := format.DefaultLocale()
	store := viewctl.NewStore(time.Minute, func() *viewctl.Controller {
		return viewctl.NewController(&stubFetcher{calls: map[string]int{}}, viewctl.Options{Locale: locale})
	})
	h := NewHandler(&mockRefreshService{view: sampleView()}, pages, nil, locale)
	return NewRouter(h, middleware.Session(store, time.Minute))
}

func TestNewRouter_WiringAndMiddlewares(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	// Ensure RequestID middleware injected header
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID header to be set")
	}

	var out dashboard.View
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if len(out.Rows) != 1 || out.Rows[0].Name != "Bitcoin" {
		t.Fatalf("unexpected body: %+v", out)
	}
}

func TestNewRouter_Routes(t *testing.T) {
	r := newTestRouter(t)

	cases := []struct {
		name     string
		method   string
		path     string
		want     int
		contains string
	}{
		{name: "dashboard page", method: http.MethodGet, path: "/", want: 200, contains: `lang="id-ID"`},
		{name: "stylesheet", method: http.MethodGet, path: "/static/style.css", want: 200},
		{name: "chart script", method: http.MethodGet, path: "/static/charts.js", want: 200, contains: "CoinPulse"},
		{name: "session", method: http.MethodGet, path: "/api/v1/session", want: 200, contains: `"view":"dashboard"`},
		{name: "range outside detail", method: http.MethodPost, path: "/api/v1/session/range?days=7", want: 409},
		{name: "unknown route", method: http.MethodGet, path: "/api/v1/nope", want: 404},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
			if w.Code != tc.want {
				t.Fatalf("want %d got %d", tc.want, w.Code)
			}
			if tc.contains != "" && !strings.Contains(w.Body.String(), tc.contains) {
				t.Fatalf("body does not contain %q", tc.contains)
			}
		})
	}
}

func TestRequestDeadline(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		path     string
		deadline bool
	}{
		{"/api/v1/dashboard", true},
		{"/ws/dashboard", false},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			var has bool
			r := gin.New()
			r.Use(requestDeadline(time.Second))
			r.GET(tc.path, func(c *gin.Context) {
				_, has = c.Request.Context().Deadline()
				c.Status(http.StatusNoContent)
			})
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tc.path, nil))
			if has != tc.deadline {
				t.Fatalf("deadline set=%v, want %v", has, tc.deadline)
			}
		})
	}
}
