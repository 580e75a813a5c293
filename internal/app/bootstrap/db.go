// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"time"

	"github.com/dalemusser/consultadmin/internal/app/system/indexes"
	"github.com/dalemusser/consultadmin/internal/app/system/mongoconn"
	"github.com/dalemusser/consultadmin/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// ConnectDB builds the lazy MongoDB provider. No connection is attempted
// here; the first request that needs the database opens it, and the
// indexes are ensured right after that first connect.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	provider := mongoconn.New(mongoConfig(appCfg), logger, mongoconn.WithConnectHook(indexes.EnsureAll))

	logger.Info("mongo provider ready",
		zap.Bool("configured", provider.Configured()),
		zap.String("database", provider.DatabaseName()))

	deps := DBDeps{Mongo: provider}
	if appCfg.DeleteRateLimit > 0 {
		deps.DeleteLimiter = ratelimit.New(appCfg.DeleteRateLimit, time.Minute)
	}
	return deps, nil
}

func mongoConfig(appCfg AppConfig) mongoconn.Config {
	return mongoconn.Config{
		URI:         appCfg.MongoURI,
		Database:    appCfg.MongoDatabase,
		MaxPoolSize: appCfg.MongoMaxPoolSize,
		MinPoolSize: appCfg.MongoMinPoolSize,
	}
}

// EnsureSchema is a no-op at boot: index creation is deferred to the
// provider's connect hook so a down database never blocks startup.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	logger.Debug("schema ensure deferred to first connect")
	return nil
}
