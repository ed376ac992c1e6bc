package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MrSnakeDoc/index/internal/logger"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func TestMatchHost(t *testing.T) {
	tests := []struct {
		host    string
		pattern string
		want    bool
	}{
		{"index.example.com", "index.example.com", true},
		{"sub.example.com", "*.example.com", true},
		{"example.com", "*.example.com", false},
		{"badexample.com", "*.example.com", false},
		{"other.com", "index.example.com", false},
	}
	for _, tt := range tests {
		if got := matchHost(tt.host, tt.pattern); got != tt.want {
			t.Errorf("matchHost(%q, %q) = %v, want %v", tt.host, tt.pattern, got, tt.want)
		}
	}
}

func TestEnforceHost(t *testing.T) {
	h := EnforceHost([]string{"Index.Example.com:8080", "*.lan"}, logger.Nop())(okHandler)

	tests := []struct {
		host string
		want int
	}{
		{"index.example.com", http.StatusNoContent},
		{"INDEX.example.com:443", http.StatusNoContent},
		{"nas.lan", http.StatusNoContent},
		{"evil.com", http.StatusForbidden},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Host = tt.host
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		if w.Code != tt.want {
			t.Errorf("host %q: status = %d, want %d", tt.host, w.Code, tt.want)
		}
	}
}

func TestEnforceHostPassthrough(t *testing.T) {
	h := EnforceHost(nil, logger.Nop())(okHandler)
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Host = "anything"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNoContent)
	}
}

func TestAllowOnlyCIDRS(t *testing.T) {
	tests := []struct {
		name       string
		allowed    []string
		remote     string
		xff        string
		trustProxy bool
		want       int
	}{
		{name: "empty list passes", remote: "203.0.113.1:1", want: http.StatusNoContent},
		{name: "inside cidr", allowed: []string{"10.0.0.0/8"}, remote: "10.1.2.3:1", want: http.StatusNoContent},
		{name: "outside cidr", allowed: []string{"10.0.0.0/8"}, remote: "203.0.113.1:1", want: http.StatusForbidden},
		{name: "forwarded ignored", allowed: []string{"10.0.0.0/8"}, remote: "203.0.113.1:1", xff: "10.0.0.1", want: http.StatusForbidden},
		{name: "forwarded trusted", allowed: []string{"10.0.0.0/8"}, remote: "127.0.0.1:1", xff: "10.0.0.1", trustProxy: true, want: http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := AllowOnlyCIDRS(tt.allowed, tt.trustProxy, logger.Nop())(okHandler)
			r := httptest.NewRequest(http.MethodGet, "/readyz", nil)
			r.RemoteAddr = tt.remote
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestLimiter(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewLimiter(RateLimitConfig{Burst: 2, RefillPerIPPerMin: 60}, func() time.Time { return now })

	for i := 0; i < 2; i++ {
		if ok, _, _ := l.Allow("a"); !ok {
			t.Fatalf("request %d should pass", i)
		}
	}
	ok, remaining, retry := l.Allow("a")
	if ok || remaining != 0 || retry != 1 {
		t.Errorf("Allow() = (%v, %d, %d), want (false, 0, 1)", ok, remaining, retry)
	}

	if ok, _, _ := l.Allow("b"); !ok {
		t.Error("other keys have their own bucket")
	}

	now = now.Add(time.Second)
	if ok, _, _ := l.Allow("a"); !ok {
		t.Error("one token should refill after a second")
	}
}

func TestLimiterSweepsIdleKeys(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewLimiter(RateLimitConfig{Burst: 1, SweepInterval: time.Minute, IdleTTL: time.Minute}, func() time.Time { return now })

	l.Allow("a")
	l.Allow("b")
	now = now.Add(2 * time.Minute)
	l.Allow("c")

	if got := l.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	h := RateLimit(RateLimitConfig{Burst: 1, RefillPerIPPerMin: 1}, logger.Nop())(okHandler)

	do := func() *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodGet, "/api/suggest?q=go", nil)
		r.RemoteAddr = "192.0.2.1:1234"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w
	}

	if w := do(); w.Code != http.StatusNoContent {
		t.Fatalf("first status = %d, want %d", w.Code, http.StatusNoContent)
	}
	w := do()
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second status = %d, want %d", w.Code, http.StatusTooManyRequests)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("Retry-After header missing")
	}
}
