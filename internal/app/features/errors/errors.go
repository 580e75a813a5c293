// internal/app/features/errors/errors.go
package errors

import (
	"net/http"
)

// NotFound answers unknown routes with a JSON 404.
func NotFound(w http.ResponseWriter, r *http.Request) {
	WriteError(w, r, http.StatusNotFound, "Not found")
}

// MethodNotAllowed answers a known route hit with the wrong verb. The
// router has already set the Allow header.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	WriteError(w, r, http.StatusMethodNotAllowed, "Method Not Allowed")
}
