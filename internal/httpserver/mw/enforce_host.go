package mw

import (
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/index/internal/logger"
	"github.com/MrSnakeDoc/index/internal/utils"
)

// EnforceHost allows requests only if the Host header (port stripped,
// case-insensitive) matches one of allowedHosts. "*.example.com" matches
// any subdomain but not example.com itself. An empty list disables the check.
func EnforceHost(allowedHosts []string, log logger.Logger) func(http.Handler) http.Handler {
	patterns := make([]string, 0, len(allowedHosts))
	for _, h := range allowedHosts {
		if h = strings.ToLower(utils.ParseHostNoPort(h)); h != "" {
			patterns = append(patterns, h)
		}
	}
	if len(patterns) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host := strings.ToLower(utils.ParseHostNoPort(r.Host))
			for _, pattern := range patterns {
				if matchHost(host, pattern) {
					next.ServeHTTP(w, r)
					return
				}
			}
			log.Debug("host rejected", logger.String("host", r.Host))
			reject(w, http.StatusForbidden)
		})
	}
}

func matchHost(host, pattern string) bool {
	if host == pattern {
		return true
	}
	if suffix, ok := strings.CutPrefix(pattern, "*"); ok && strings.HasPrefix(suffix, ".") {
		return len(host) > len(suffix) && strings.HasSuffix(host, suffix)
	}
	return false
}
