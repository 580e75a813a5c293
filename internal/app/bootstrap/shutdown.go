// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown stops the delete limiter and disconnects the MongoDB client if
// one was ever opened.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.DeleteLimiter != nil {
		deps.DeleteLimiter.Close()
	}
	if deps.Mongo == nil {
		return nil
	}
	logger.Info("disconnecting MongoDB client")
	if err := deps.Mongo.Close(ctx); err != nil {
		logger.Error("MongoDB disconnect failed", zap.Error(err))
		return err
	}
	return nil
}
