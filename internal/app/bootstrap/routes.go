// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	consultationsfeature "github.com/dalemusser/consultadmin/internal/app/features/consultations"
	errorsfeature "github.com/dalemusser/consultadmin/internal/app/features/errors"
	healthfeature "github.com/dalemusser/consultadmin/internal/app/features/health"
	consultstore "github.com/dalemusser/consultadmin/internal/app/store/consultations"
	"github.com/dalemusser/consultadmin/internal/app/system/requestid"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler for consultadmin.
//
// WAFFLE calls this after configuration, ConnectDB and Startup. The router
// tags every request with an id, serves /health, and mounts the
// consultation API under /api/consultation. Unknown paths and wrong verbs
// answer with JSON.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.NotFound(errorsfeature.NotFound)
	r.MethodNotAllowed(errorsfeature.MethodNotAllowed)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.Mongo, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	store := consultstore.New(deps.Mongo, appCfg.searchFields())
	consultHandler := consultationsfeature.NewHandler(store, appCfg.MaxPageSize, errLog, logger)
	consultHandler.DeleteLimiter = deps.DeleteLimiter
	r.Mount("/api/consultation", consultationsfeature.Routes(consultHandler))

	return r, nil
}
