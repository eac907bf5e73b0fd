package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeErr(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: message, Code: code})
}

func writeFieldErr(w http.ResponseWriter, status int, code, message, field string) {
	writeJSON(w, status, errorResponse{Error: message, Code: code, Field: field})
}

func logHandlerErr(log zerolog.Logger, r *http.Request, err error) {
	log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
}
