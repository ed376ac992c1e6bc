package handlers

import (
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/index/internal/generator"
	"github.com/MrSnakeDoc/index/internal/httpserver/deps"
)

type generateResponse struct {
	Kind  string `json:"kind"`
	Value any    `json:"value"`
}

// Generate serves GET /api/generate/{kind}. Options come from the query
// string; seed makes the output reproducible.
func Generate(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind := chi.URLParam(r, "kind")
		q := queryParams{values: r.URL.Query()}

		rng := q.rand(d)
		var value any
		var err error
		switch kind {
		case "string":
			value, err = generator.String(rng, q.values.Get("charset"), q.int("length", generator.DefaultLength))
		case "permutation":
			value, err = generator.Permutation(rng, q.int("size", 10), q.int("start", 1))
		case "array":
			value, err = generator.Array(rng, generator.ArrayOptions{
				Rows: q.int("rows", 10),
				Cols: q.int("cols", 0),
				Min:  q.float("min", 0),
				Max:  q.float("max", 100),
			})
		case "graph":
			value, err = generator.Graph(rng, generator.GraphOptions{
				Kind:      q.string("type", generator.KindAcyclic),
				Format:    q.string("format", generator.FormatAdjList),
				Nodes:     q.int("nodes", 8),
				MinWeight: q.int("min_weight", 1),
				MaxWeight: q.int("max_weight", 10),
			})
		case "tree":
			value, err = generator.Tree(rng, q.int("nodes", 10))
		case "binarytree":
			value, err = generator.BinaryTree(rng, q.int("height", 3), q.int("min", 1), q.int("max", 99))
		default:
			writeError(w, http.StatusNotFound, "unknown generator "+strconv.Quote(kind))
			return
		}
		if q.err != nil {
			err = q.err
		}
		if err != nil {
			fail(w, d, err)
			return
		}
		writeJSON(w, http.StatusOK, generateResponse{Kind: kind, Value: value})
	}
}

// queryParams parses typed query values and keeps the first parse error.
type queryParams struct {
	values url.Values
	err    error
}

func (q *queryParams) string(name, def string) string {
	if v := q.values.Get(name); v != "" {
		return v
	}
	return def
}

func (q *queryParams) int(name string, def int) int {
	raw := q.values.Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil && q.err == nil {
		q.err = badRequest("%s must be an integer", name)
	}
	return v
}

func (q *queryParams) float(name string, def float64) float64 {
	raw := q.values.Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil && q.err == nil {
		q.err = badRequest("%s must be a number", name)
	}
	return v
}

func (q *queryParams) rand(d deps.Deps) *rand.Rand {
	if raw := q.values.Get("seed"); raw != "" {
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err == nil {
			return generator.Seeded(seed)
		}
		if q.err == nil {
			q.err = badRequest("seed must be an unsigned integer")
		}
	}
	if d.NewRand != nil {
		return d.NewRand()
	}
	return generator.NewRand()
}
