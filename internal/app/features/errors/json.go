// internal/app/features/errors/json.go
package errors

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/consultadmin/internal/app/system/requestid"
)

// Body is the JSON shape of every error response.
type Body struct {
	Success   *bool  `json:"success,omitempty"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

// WriteJSON writes v as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes an error body carrying msg and the request id.
func WriteError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	WriteJSON(w, status, Body{Message: msg, RequestID: requestid.FromContext(r.Context())})
}

// WriteFailure is WriteError with "success": false, used by mutating
// endpoints.
func WriteFailure(w http.ResponseWriter, r *http.Request, status int, msg string) {
	f := false
	WriteJSON(w, status, Body{Success: &f, Message: msg, RequestID: requestid.FromContext(r.Context())})
}
