// internal/app/features/consultations/list.go
package consultations

import (
	"net/http"

	apierrors "github.com/dalemusser/consultadmin/internal/app/features/errors"
	"github.com/dalemusser/consultadmin/internal/app/system/apperr"
	"github.com/dalemusser/consultadmin/internal/app/system/paging"
	"github.com/dalemusser/consultadmin/internal/app/system/timeouts"
	"github.com/dalemusser/consultadmin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.uber.org/zap"
)

// List handles GET /api/consultation/list?role=&page=&limit=&q=
//
// Any role other than "employer" lists seekers. Results are newest first;
// total counts every match regardless of page.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	role := models.ParseRole(query.Get(r, "role"))
	page := paging.ParsePage(r)
	limit := paging.ParseLimit(r, h.MaxLimit)
	q := query.Search(r, "q")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list consultations")
	defer cancel()

	items, total, err := h.Store.List(ctx, role, q, page, limit)
	if err != nil {
		// List has no not-found case; every failure is a 500.
		h.ErrLog.LogServerError(w, r, "list consultations failed", err, apperr.PublicMessage(classify(err)))
		return
	}
	if items == nil {
		items = []models.Record{}
	}

	h.Log.Debug("listed consultations",
		zap.String("role", role.String()),
		zap.Int("page", page),
		zap.Int("count", len(items)),
		zap.Int64("total", total))

	apierrors.WriteJSON(w, http.StatusOK, listResponse{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}
