package routes

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/index/internal/httpserver/deps"
	"github.com/MrSnakeDoc/index/internal/logger"
)

type (
	Registrar  func(r chi.Router, d deps.Deps)
	Middleware = func(http.Handler) http.Handler
)

type entry struct {
	name string
	reg  Registrar
	mws  []Middleware
}

var registry []entry

// Register adds a named group of routes with optional middlewares shared
// by the whole group. Called from init() in each route file.
func Register(name string, reg Registrar, mws ...Middleware) {
	registry = append(registry, entry{name: name, reg: reg, mws: mws})
}

// RegisterAll mounts every group on r, in name order so the route table
// does not depend on file init order. Called once from server.New().
func RegisterAll(r chi.Router, d deps.Deps) {
	entries := append([]entry(nil), registry...)
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].name < entries[j].name })

	for _, e := range entries {
		if len(e.mws) == 0 {
			e.reg(r, d)
		} else {
			e.reg(r.With(e.mws...), d)
		}
		d.Logger.Debug("routes registered", logger.String("group", e.name))
	}
}

// Names lists the registered groups.
func Names() []string {
	names := make([]string, 0, len(registry))
	for _, e := range registry {
		names = append(names, e.name)
	}
	sort.Strings(names)
	return names
}
