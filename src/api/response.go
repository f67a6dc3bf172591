package api

import (
	"encoding/json"
	"log"
	"net/http"
)

// apiError is the body of every non-2xx response.
type apiError struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// writeJSON encodes v with status. Responses describe live game state, so
// clients and proxies must not cache them.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("API: ERROR encoding response: %v", err)
	}
}

func errorJSON(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, apiError{Error: msg, Code: status})
}
