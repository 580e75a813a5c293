// internal/app/features/consultations/routes.go
package consultations

import (
	"net/http"
	"path"

	apierrors "github.com/dalemusser/consultadmin/internal/app/features/errors"
	"github.com/dalemusser/consultadmin/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
)

// allowed lists the one verb each endpoint answers.
var allowed = map[string]string{
	"list":   http.MethodGet,
	"detail": http.MethodGet,
	"delete": http.MethodDelete,
}

// Routes returns a subrouter mounted under /api/consultation.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/list", h.List)
	r.Get("/detail", h.Detail)
	if h.DeleteLimiter != nil {
		r.With(ratelimit.Middleware(h.DeleteLimiter, tooManyDeletes)).Delete("/delete", h.Delete)
	} else {
		r.Delete("/delete", h.Delete)
	}

	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		if m, ok := allowed[path.Base(req.URL.Path)]; ok {
			w.Header().Set("Allow", m)
		}
		apierrors.MethodNotAllowed(w, req)
	})
	r.NotFound(apierrors.NotFound)
	return r
}

func tooManyDeletes(w http.ResponseWriter, r *http.Request) {
	apierrors.WriteFailure(w, r, http.StatusTooManyRequests, "Too many delete requests")
}
