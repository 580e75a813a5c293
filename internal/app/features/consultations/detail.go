// internal/app/features/consultations/detail.go
package consultations

import (
	"net/http"

	apierrors "github.com/dalemusser/consultadmin/internal/app/features/errors"
	"github.com/dalemusser/consultadmin/internal/app/system/timeouts"
	"github.com/dalemusser/consultadmin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Detail handles GET /api/consultation/detail?role=&id=
// A missing or malformed id is reported as 404, the same as an unknown one.
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	role := models.ParseRole(query.Get(r, "role"))
	oid, err := primitive.ObjectIDFromHex(query.Get(r, "id"))
	if err != nil {
		h.ErrLog.LogNotFound(w, r, "bad consultation id", err, msgNotFound)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "load consultation")
	defer cancel()

	rec, err := h.Store.Get(ctx, role, oid)
	if err != nil {
		h.ErrLog.Respond(w, r, "load consultation failed", classify(err), false)
		return
	}
	apierrors.WriteJSON(w, http.StatusOK, detailResponse{Item: rec})
}
