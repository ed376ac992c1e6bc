package mw

import (
	"net/http"

	"github.com/MrSnakeDoc/index/internal/logger"
	"github.com/MrSnakeDoc/index/internal/utils"
)

// AllowOnlyCIDRS restricts a route to clients inside the given CIDRs or
// addresses. An empty list disables the check.
// trustProxy should be true when running behind a trusted reverse proxy/tunnel (e.g., cloudflared).
func AllowOnlyCIDRS(allowed []string, trustProxy bool, log logger.Logger) func(http.Handler) http.Handler {
	set := utils.NewPrefixSet(allowed)
	if bad := set.Invalid(); len(bad) > 0 {
		log.Warn("ignoring invalid CIDR entries", logger.Strings("entries", bad))
	}
	if set.IsEmpty() {
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			addr, ok := utils.ClientAddr(r, trustProxy)
			if !ok || !set.Contains(addr) {
				log.Debug("client address rejected",
					logger.String("remote_addr", r.RemoteAddr),
					logger.String("path", r.URL.Path))
				reject(w, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
