package mw

import (
	"encoding/json"
	"net/http"
)

// reject writes the same {"error": "..."} body the handlers use.
func reject(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": http.StatusText(status)})
}
