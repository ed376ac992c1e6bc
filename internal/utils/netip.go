package utils

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// ParseHostNoPort returns the host part (no port) from strings like "ip:port", "[v6]:port", or "ip".
func ParseHostNoPort(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(s); err == nil {
		return h
	}
	return strings.Trim(s, "[]")
}

// FirstForwardedFor returns the left-most entry of an X-Forwarded-For header.
func FirstForwardedFor(xff string) string {
	first, _, _ := strings.Cut(xff, ",")
	return strings.TrimSpace(first)
}

// ClientAddr resolves the client address. Proxy headers (CF-Connecting-IP,
// X-Forwarded-For, X-Real-IP, in that order) are only read when trustProxy
// is set; otherwise RemoteAddr is the only source.
func ClientAddr(r *http.Request, trustProxy bool) (netip.Addr, bool) {
	if trustProxy {
		candidates := []string{
			r.Header.Get("CF-Connecting-IP"),
			FirstForwardedFor(r.Header.Get("X-Forwarded-For")),
			r.Header.Get("X-Real-IP"),
		}
		for _, c := range candidates {
			if addr, err := netip.ParseAddr(ParseHostNoPort(c)); err == nil {
				return addr.Unmap(), true
			}
		}
	}
	addr, err := netip.ParseAddr(ParseHostNoPort(r.RemoteAddr))
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap(), true
}

// ClientIP is ClientAddr as a string, falling back to the raw host when
// it does not parse (httptest uses "192.0.2.1:1234", which does).
func ClientIP(r *http.Request, trustProxy bool) string {
	if addr, ok := ClientAddr(r, trustProxy); ok {
		return addr.String()
	}
	return ParseHostNoPort(r.RemoteAddr)
}

// PrefixSet matches addresses against a list of CIDRs. Bare addresses are
// stored as single-address prefixes.
type PrefixSet struct {
	prefixes []netip.Prefix
	invalid  []string
}

func NewPrefixSet(list []string) *PrefixSet {
	ps := &PrefixSet{}
	for _, raw := range list {
		s := strings.TrimSpace(raw)
		if s == "" {
			continue
		}
		if p, err := netip.ParsePrefix(s); err == nil {
			ps.prefixes = append(ps.prefixes, p.Masked())
			continue
		}
		if a, err := netip.ParseAddr(s); err == nil {
			a = a.Unmap()
			ps.prefixes = append(ps.prefixes, netip.PrefixFrom(a, a.BitLen()))
			continue
		}
		ps.invalid = append(ps.invalid, s)
	}
	return ps
}

func (ps *PrefixSet) IsEmpty() bool { return len(ps.prefixes) == 0 }

// Invalid lists entries that were neither a CIDR nor an address.
func (ps *PrefixSet) Invalid() []string { return ps.invalid }

func (ps *PrefixSet) Contains(addr netip.Addr) bool {
	if !addr.IsValid() {
		return false
	}
	addr = addr.Unmap()
	for _, p := range ps.prefixes {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
