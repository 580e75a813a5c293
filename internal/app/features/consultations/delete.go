// internal/app/features/consultations/delete.go
package consultations

import (
	"net/http"

	apierrors "github.com/dalemusser/consultadmin/internal/app/features/errors"
	"github.com/dalemusser/consultadmin/internal/app/system/apperr"
	"github.com/dalemusser/consultadmin/internal/app/system/timeouts"
	"github.com/dalemusser/consultadmin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Delete handles DELETE /api/consultation/delete?role=&id=
//
// Unlike list and detail, role is required here. Exactly one document is
// removed, or none and the response is 404.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	rawRole := query.Get(r, "role")
	idHex := query.Get(r, "id")
	if rawRole == "" {
		h.ErrLog.Respond(w, r, "delete without role", apperr.Validation("Missing role"), true)
		return
	}
	if idHex == "" {
		h.ErrLog.Respond(w, r, "delete without id", apperr.Validation("Missing id"), true)
		return
	}
	role := models.ParseRole(rawRole)
	oid, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		h.ErrLog.Respond(w, r, "bad consultation id", apperr.NotFound(msgNotFound), true)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete consultation")
	defer cancel()

	n, err := h.Store.Delete(ctx, role, oid)
	if err != nil {
		h.ErrLog.Respond(w, r, "delete consultation failed", classify(err), true)
		return
	}
	if n == 0 {
		h.ErrLog.Respond(w, r, "delete of unknown consultation", apperr.NotFound(msgNotFound), true)
		return
	}

	h.Log.Info("consultation deleted",
		zap.String("role", role.String()),
		zap.String("id", idHex))

	apierrors.WriteJSON(w, http.StatusOK, deleteResponse{Success: true, DeletedID: idHex})
}
