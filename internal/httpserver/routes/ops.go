package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/index/internal/httpserver/deps"
	"github.com/MrSnakeDoc/index/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/index/internal/httpserver/mw"
)

func init() { Register("ops", registerOps) }

func registerOps(r chi.Router, d deps.Deps) {
	r.Get("/healthz", handlers.Healthz(d))

	restricted := r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger))
	restricted.Get("/readyz", handlers.Readyz(d))
	restricted.With(mw.EnforceHost(d.AllowedHosts, d.Logger)).Get("/infra", handlers.Infra(d))
	restricted.With(mw.EnforceHost(d.AllowedHosts, d.Logger)).Post("/reload", handlers.Reload(d))
}
