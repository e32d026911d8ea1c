package httpapi

import (
	"encoding/json"
	"net/http"
)

const (
	codeInvalidJSON      = "invalid_json"
	codeInvalidOrder     = "invalid_order"
	codeNotFound         = "not_found"
	codeMethodNotAllowed = "method_not_allowed"
	codeStoreUnavailable = "store_unavailable"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResponse{Error: code, Message: msg})
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, codeNotFound, "resource not found")
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "unsupported HTTP method "+r.Method)
}
