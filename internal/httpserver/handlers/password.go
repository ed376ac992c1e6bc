package handlers

import (
	"net/http"
	"unicode/utf8"

	"github.com/MrSnakeDoc/index/internal/httpserver/deps"
	"github.com/MrSnakeDoc/index/internal/password"
)

// passwordRequest fields left out fall back to the stored password
// settings. Salt and site have no stored default.
type passwordRequest struct {
	Seed      *string `json:"seed"`
	Salt      string  `json:"salt"`
	Email     *string `json:"email"`
	Site      string  `json:"site"`
	Charset   *string `json:"charset"`
	Length    *int    `json:"length"`
	Algorithm *string `json:"algorithm"`
}

type passwordResponse struct {
	Password  string `json:"password"`
	Length    int    `json:"length"`
	Algorithm string `json:"algorithm"`
}

func Password(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req passwordRequest
		if err := decodeJSON(w, r, &req); err != nil {
			fail(w, d, err)
			return
		}

		st, err := d.Settings.Load(r.Context())
		if err != nil {
			fail(w, d, err)
			return
		}

		in := password.Input{
			Seed:      pick(req.Seed, st.PasswordSeed),
			Salt:      req.Salt,
			Email:     pick(req.Email, st.PasswordEmail),
			Site:      req.Site,
			Charset:   pick(req.Charset, st.PasswordCharset),
			Length:    pick(req.Length, st.PasswordLength),
			Algorithm: pick(req.Algorithm, st.PasswordAlgorithm),
		}
		if in.Algorithm == "" {
			in.Algorithm = password.DefaultAlgorithm
		}

		pw, err := password.Derive(in)
		if err != nil {
			fail(w, d, err)
			return
		}
		writeJSON(w, http.StatusOK, passwordResponse{
			Password:  pw,
			Length:    utf8.RuneCountInString(pw),
			Algorithm: in.Algorithm,
		})
	}
}

func pick[T any](v *T, fallback T) T {
	if v != nil {
		return *v
	}
	return fallback
}
