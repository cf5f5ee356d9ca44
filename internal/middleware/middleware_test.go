package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler)
	r.GET("/", func(c *gin.Context) { _ = c.Error(assertErr{}) })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != 500 {
		t.Fatalf("code=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Internal Server Error") {
		t.Fatalf("expected status text as message, got %s", w.Body.String())
	}
}

type assertErr struct{}

func (assertErr) Error() string { return "boom" }

func TestRecoveryMiddleware(t *testing.T) {
	cases := []struct {
		name    string
		handler gin.HandlerFunc
		want    int
		body    string
	}{
		{
			name:    "panic before writing",
			handler: func(c *gin.Context) { panic("secret detail") },
			want:    500,
			body:    "internal server error",
		},
		{
			name: "panic after writing",
			handler: func(c *gin.Context) {
				c.String(http.StatusOK, "partial")
				panic("late")
			},
			want: 200,
			body: "partial",
		},
		{
			name:    "no panic",
			handler: func(c *gin.Context) { c.String(http.StatusOK, "ok") },
			want:    200,
			body:    "ok",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			r := gin.New()
			r.Use(RequestID(), RecoveryMiddleware())
			r.GET("/panic", tc.handler)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
			if w.Code != tc.want {
				t.Fatalf("code=%d", w.Code)
			}
			body := w.Body.String()
			if !strings.Contains(body, tc.body) {
				t.Fatalf("body %q does not contain %q", body, tc.body)
			}
			if strings.Contains(body, "secret detail") {
				t.Fatalf("panic value leaked: %s", body)
			}
		})
	}
}

func resetLimiter(t *testing.T, lim int) {
	t.Helper()
	oldLimit, oldWindow := limit, window
	rateLimiterLock.Lock()
	clients = make(map[string]*client)
	limit, window = lim, 100*time.Millisecond
	rateLimiterLock.Unlock()
	t.Cleanup(func() {
		rateLimiterLock.Lock()
		limit, window = oldLimit, oldWindow
		rateLimiterLock.Unlock()
	})
}

func TestRateLimiter(t *testing.T) {
	cases := []struct {
		name   string
		reqs   int
		lim    int
		expect int
	}{
		{name: "within limit", reqs: 2, lim: 3, expect: http.StatusOK},
		{name: "at limit", reqs: 3, lim: 3, expect: http.StatusOK},
		{name: "exceed limit", reqs: 5, lim: 3, expect: http.StatusTooManyRequests},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			resetLimiter(t, tc.lim)
			r := gin.New()
			r.Use(RateLimiter())
			r.GET("/", func(c *gin.Context) { c.String(200, "ok") })
			var last *httptest.ResponseRecorder
			for i := 0; i < tc.reqs; i++ {
				last = httptest.NewRecorder()
				r.ServeHTTP(last, httptest.NewRequest(http.MethodGet, "/", nil))
			}
			if last.Code != tc.expect {
				t.Fatalf("expected %d, got %d", tc.expect, last.Code)
			}
			if tc.expect == http.StatusTooManyRequests && !strings.Contains(last.Body.String(), "rate limit exceeded") {
				t.Fatalf("unexpected body %s", last.Body.String())
			}
		})
	}
}

func TestRateLimiter_WindowResets(t *testing.T) {
	gin.SetMode(gin.TestMode)
	resetLimiter(t, 1)
	r := gin.New()
	r.Use(RateLimiter())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := make([]int, 0, 3)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, w.Code)
	}
	time.Sleep(150 * time.Millisecond)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	codes = append(codes, w.Code)

	if codes[0] != 204 || codes[1] != 429 || codes[2] != 204 {
		t.Fatalf("unexpected codes %v", codes)
	}
}

func TestPruneClients(t *testing.T) {
	resetLimiter(t, 10)
	now := time.Now()
	rateLimiterLock.Lock()
	clients["stale"] = &client{lastSeen: now.Add(-time.Second), count: 1}
	clients["fresh"] = &client{lastSeen: now, count: 1}
	pruneClients(now)
	_, staleLeft := clients["stale"]
	_, freshLeft := clients["fresh"]
	rateLimiterLock.Unlock()

	if staleLeft || !freshLeft {
		t.Fatalf("stale kept=%v fresh kept=%v", staleLeft, freshLeft)
	}
}

func TestAbortWithError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/err", func(c *gin.Context) {
		AbortWithError(c, http.StatusBadRequest, "bad stuff", assertErr{})
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/err", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("code=%d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct == "" {
		t.Fatalf("expected content-type set")
	}
}
