package httpapi

import (
	"encoding/json"
	"net/http"
)

// APIError is the JSON envelope every failing endpoint returns. The code is
// a stable machine-readable string (invalid_json, not_generated, ...); the
// message is for a human reading the UI's error toast.
type APIError struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

// WriteJSON writes v with an explicit status. Handlers answering 200 use the
// writeJSON helper instead.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError emits the APIError envelope, tagging it with the request ID so
// a failure can be matched against the access log.
func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	var e APIError
	e.Error.Code = code
	e.Error.Message = message
	e.Error.RequestID = RequestIDFrom(r.Context())
	WriteJSON(w, status, e)
}
