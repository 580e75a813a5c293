// internal/app/features/consultations/handler.go
package consultations

import (
	"context"
	"errors"

	apierrors "github.com/dalemusser/consultadmin/internal/app/features/errors"
	consultstore "github.com/dalemusser/consultadmin/internal/app/store/consultations"
	"github.com/dalemusser/consultadmin/internal/app/system/apperr"
	"github.com/dalemusser/consultadmin/internal/app/system/mongoconn"
	"github.com/dalemusser/consultadmin/internal/app/system/ratelimit"
	"github.com/dalemusser/consultadmin/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Store is the subset of *consultstore.Store the handlers use.
type Store interface {
	List(ctx context.Context, role models.Role, q string, page, limit int) ([]models.Record, int64, error)
	Get(ctx context.Context, role models.Role, id primitive.ObjectID) (models.Record, error)
	Delete(ctx context.Context, role models.Role, id primitive.ObjectID) (int64, error)
}

// Handler serves the list, detail and delete endpoints.
//
// It is constructed once at startup in bootstrap. The store opens the
// database lazily, so a misconfigured URI surfaces per request rather than
// at boot.
type Handler struct {
	Store    Store
	MaxLimit int
	Log      *zap.Logger
	ErrLog   *apierrors.ErrorLogger

	// DeleteLimiter throttles DELETE per client IP. Nil means unlimited.
	DeleteLimiter *ratelimit.Limiter
}

// NewHandler constructs a Handler. maxLimit <= 0 uses paging.MaxPageSize.
func NewHandler(store Store, maxLimit int, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Store:    store,
		MaxLimit: maxLimit,
		Log:      logger,
		ErrLog:   errLog,
	}
}

const (
	msgMissingURI = "Missing MongoDB connection string (mongo_uri)"
	msgNotFound   = "Not found"
	msgInternal   = "Internal Server Error"
)

// classify maps store failures onto apperr kinds.
func classify(err error) error {
	switch {
	case errors.Is(err, mongoconn.ErrNoURI):
		return apperr.Infrastructure(msgMissingURI, err)
	case errors.Is(err, consultstore.ErrNotFound):
		return apperr.NotFound(msgNotFound)
	default:
		return apperr.Infrastructure(msgInternal, err)
	}
}
