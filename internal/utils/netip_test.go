package utils

import (
	"net/http/httptest"
	"net/netip"
	"testing"
)

func TestParseHostNoPort(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"10.0.0.1:8080", "10.0.0.1"},
		{"[::1]:443", "::1"},
		{"10.0.0.1", "10.0.0.1"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ParseHostNoPort(tt.in); got != tt.want {
			t.Errorf("ParseHostNoPort(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remote     string
		headers    map[string]string
		trustProxy bool
		want       string
	}{
		{
			name:   "remote addr only",
			remote: "192.0.2.10:5555",
			want:   "192.0.2.10",
		},
		{
			name:    "proxy headers ignored when untrusted",
			remote:  "192.0.2.10:5555",
			headers: map[string]string{"X-Forwarded-For": "203.0.113.7"},
			want:    "192.0.2.10",
		},
		{
			name:       "forwarded for first entry",
			remote:     "127.0.0.1:5555",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"},
			trustProxy: true,
			want:       "203.0.113.7",
		},
		{
			name:       "cloudflare header wins",
			remote:     "127.0.0.1:5555",
			headers:    map[string]string{"CF-Connecting-IP": "198.51.100.3", "X-Forwarded-For": "203.0.113.7"},
			trustProxy: true,
			want:       "198.51.100.3",
		},
		{
			name:       "garbage header falls through",
			remote:     "127.0.0.1:5555",
			headers:    map[string]string{"X-Forwarded-For": "not-an-ip", "X-Real-IP": "198.51.100.9"},
			trustProxy: true,
			want:       "198.51.100.9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := ClientIP(r, tt.trustProxy); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrefixSet(t *testing.T) {
	ps := NewPrefixSet([]string{"10.0.0.0/8", " 192.168.1.5 ", "::1", "nope", ""})

	if ps.IsEmpty() {
		t.Fatal("IsEmpty() = true, want false")
	}
	if got := ps.Invalid(); len(got) != 1 || got[0] != "nope" {
		t.Errorf("Invalid() = %v, want [nope]", got)
	}

	tests := []struct {
		addr string
		want bool
	}{
		{"10.20.30.40", true},
		{"192.168.1.5", true},
		{"192.168.1.6", false},
		{"::1", true},
		{"::ffff:10.1.1.1", true},
		{"172.16.0.1", false},
	}
	for _, tt := range tests {
		if got := ps.Contains(netip.MustParseAddr(tt.addr)); got != tt.want {
			t.Errorf("Contains(%s) = %v, want %v", tt.addr, got, tt.want)
		}
	}

	if NewPrefixSet(nil).Contains(netip.MustParseAddr("10.0.0.1")) {
		t.Error("empty set should contain nothing")
	}
}
