package httputil

import (
	"encoding/json"
	"net/http"
	"time"
)

// ErrorResponse is the body of every failed request: when it happened,
// the HTTP status, a human-readable message and the request path.
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Code      int       `json:"code"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}

func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	WriteJSON(w, code, ErrorResponse{
		Timestamp: time.Now().UTC(),
		Code:      code,
		Message:   msg,
		Path:      r.URL.Path,
	})
}
