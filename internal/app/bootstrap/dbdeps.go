// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/consultadmin/internal/app/system/mongoconn"
	"github.com/dalemusser/consultadmin/internal/app/system/ratelimit"
)

// DBDeps holds database/back-end dependencies for the app.
//
// Mongo is never nil after ConnectDB, but it may be unconfigured and it
// does not open a connection until a request needs one.
//
// DeleteLimiter is nil when delete_rate_limit is 0. Shutdown stops it.
type DBDeps struct {
	Mongo         *mongoconn.Provider
	DeleteLimiter *ratelimit.Limiter
}
