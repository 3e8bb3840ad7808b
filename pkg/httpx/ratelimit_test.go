package httpx_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/folio/pkg/httpx"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

// hit sends one request from addr through h and returns the recorder.
func hit(h http.Handler, addr string, mutate ...func(*http.Request) *http.Request) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/user/login", nil)
	req.RemoteAddr = addr
	for _, m := range mutate {
		req = m(req)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestKeyExtractors(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		user    string
		extract httpx.KeyExtractor
		want    string
	}{
		{"remote addr", nil, "", httpx.IPKeyExtractor, "192.168.1.1"},
		{"forwarded for wins", map[string]string{"X-Forwarded-For": "203.0.113.1, 10.0.0.1", "X-Real-IP": "203.0.113.2"}, "", httpx.IPKeyExtractor, "203.0.113.1"},
		{"real ip fallback", map[string]string{"X-Real-IP": "203.0.113.2"}, "", httpx.IPKeyExtractor, "203.0.113.2"},
		{"blank forwarded for", map[string]string{"X-Forwarded-For": " ,10.0.0.1"}, "", httpx.IPKeyExtractor, "192.168.1.1"},
		{"anonymous user", nil, "", httpx.UserIDKeyExtractor, ""},
		{"user and ip", nil, "01HUSER", httpx.CompositeKeyExtractor(":", httpx.UserIDKeyExtractor, httpx.IPKeyExtractor), "01HUSER:192.168.1.1"},
		{"ip only when anonymous", nil, "", httpx.CompositeKeyExtractor(":", httpx.UserIDKeyExtractor, httpx.IPKeyExtractor), "192.168.1.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "192.168.1.1:12345"
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if tt.user != "" {
				req = req.WithContext(httpx.WithUserID(req.Context(), tt.user))
			}
			require.Equal(t, tt.want, tt.extract(req))
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	cfg := httpx.RateLimitConfig{RequestsPerWindow: 3, Window: time.Minute, Burst: 3}

	t.Run("blocks once the bucket is empty", func(t *testing.T) {
		h := httpx.RateLimitByIP(cfg)(okHandler)
		for i := range 3 {
			require.Equal(t, http.StatusOK, hit(h, "192.168.1.1:1").Code, "request %d", i+1)
		}

		rec := hit(h, "192.168.1.1:2")
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		require.NotEmpty(t, rec.Header().Get("Retry-After"))
		require.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))
		require.Equal(t, "1m0s", rec.Header().Get("X-RateLimit-Window"))
		require.JSONEq(t,
			`{"error":"rate_limit_exceeded","error_description":"Too many requests. Please try again later."}`,
			rec.Body.String())
	})

	t.Run("each client has its own bucket", func(t *testing.T) {
		h := httpx.RateLimitByIP(cfg)(okHandler)
		for range 3 {
			hit(h, "192.168.1.1:1")
		}
		require.Equal(t, http.StatusTooManyRequests, hit(h, "192.168.1.1:1").Code)
		require.Equal(t, http.StatusOK, hit(h, "192.168.1.2:1").Code)
	})

	t.Run("users behind one address are limited apart", func(t *testing.T) {
		h := httpx.RateLimitByUser(cfg)(okHandler)
		as := func(id string) func(*http.Request) *http.Request {
			return func(r *http.Request) *http.Request {
				return r.WithContext(httpx.WithUserID(r.Context(), id))
			}
		}
		for range 3 {
			require.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1", as("alice")).Code)
		}
		require.Equal(t, http.StatusTooManyRequests, hit(h, "10.0.0.1:1", as("alice")).Code)
		require.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1", as("bob")).Code)
	})

	t.Run("requests without a key pass through", func(t *testing.T) {
		h := httpx.RateLimitMiddleware(cfg, func(*http.Request) string { return "" })(okHandler)
		for range 10 {
			require.Equal(t, http.StatusOK, hit(h, "192.168.1.1:1").Code)
		}
	})
}

func TestRateLimitProfiles(t *testing.T) {
	for name, cfg := range map[string]httpx.RateLimitConfig{
		"login":    httpx.LoginLimit,
		"strict":   httpx.StrictLimit,
		"moderate": httpx.ModerateLimit,
		"public":   httpx.PublicLimit,
	} {
		t.Run(name, func(t *testing.T) {
			require.Positive(t, cfg.RequestsPerWindow)
			require.Positive(t, cfg.Window)
			require.Positive(t, cfg.Burst)
		})
	}

	// Ten password attempts per quarter hour per address.
	require.Equal(t, 10, httpx.LoginLimit.RequestsPerWindow)
	require.Equal(t, 15*time.Minute, httpx.LoginLimit.Window)
	require.Less(t, httpx.StrictLimit.RequestsPerWindow, httpx.ModerateLimit.RequestsPerWindow)
	require.Less(t, httpx.ModerateLimit.RequestsPerWindow, httpx.PublicLimit.RequestsPerWindow)
}

func TestParseRateLimitFromEnv(t *testing.T) {
	def := httpx.RateLimitConfig{RequestsPerWindow: 10, Window: 15 * time.Minute, Burst: 10}

	tests := []struct {
		name string
		env  map[string]string
		want httpx.RateLimitConfig
	}{
		{"defaults", nil, def},
		{
			"all overridden",
			map[string]string{"REQUESTS": "100", "WINDOW_SEC": "60", "BURST": "20"},
			httpx.RateLimitConfig{RequestsPerWindow: 100, Window: time.Minute, Burst: 20},
		},
		{"burst only", map[string]string{"BURST": "3"}, httpx.RateLimitConfig{RequestsPerWindow: 10, Window: 15 * time.Minute, Burst: 3}},
		{"garbage ignored", map[string]string{"REQUESTS": "many", "WINDOW_SEC": "-5", "BURST": "0"}, def},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, suffix := range []string{"REQUESTS", "WINDOW_SEC", "BURST"} {
				t.Setenv("RATELIMIT_LOGINTEST_"+suffix, tt.env[suffix])
			}
			require.Equal(t, tt.want, httpx.ParseRateLimitFromEnv("LOGINTEST", def))
		})
	}
}

func TestLimiterRetryAfter(t *testing.T) {
	lim := httpx.NewLimiter(httpx.RateLimitConfig{RequestsPerWindow: 10, Window: 15 * time.Minute, Burst: 10})

	for i := range 10 {
		ok, _ := lim.Allow("203.0.113.9")
		require.True(t, ok, "attempt %d", i+1)
	}

	ok, wait := lim.Allow("203.0.113.9")
	require.False(t, ok)
	// One token refills every 90s.
	require.InDelta(t, 90*time.Second, wait, float64(2*time.Second))
}

func BenchmarkRateLimitManyClients(b *testing.B) {
	h := httpx.RateLimitByIP(httpx.RateLimitConfig{RequestsPerWindow: 1_000_000, Window: time.Minute, Burst: 1000})(okHandler)

	for i := 0; b.Loop(); i++ {
		hit(h, fmt.Sprintf("192.168.%d.%d:12345", i%255, (i/255)%255))
	}
}
