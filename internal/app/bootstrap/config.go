// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/consultadmin/internal/app/system/paging"
	"github.com/dalemusser/consultadmin/internal/app/system/search"
	"github.com/dalemusser/consultadmin/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for consultadmin.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, max_page_size, etc.
//   - Environment variables: CONSULTADMIN_MONGO_URI, etc.
//   - Command-line flags: --mongo_uri, --max_page_size, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "", Desc: "MongoDB connection URI (required for data endpoints)"},
	{Name: "mongo_database", Default: "", Desc: "MongoDB database name (default: from URI, else 'consultation')"},
	{Name: "mongo_max_pool_size", Default: 20, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 0, Desc: "MongoDB min connection pool size"},

	{Name: "search_fields_employer", Default: "basicInfo.companyName,basicInfo.ceoName,basicInfo.managerName", Desc: "Comma separated fields searched for employers"},
	{Name: "search_fields_seeker", Default: "basicInfo.name", Desc: "Comma separated fields searched for seekers"},

	{Name: "max_page_size", Default: paging.MaxPageSize, Desc: "Largest accepted ?limit= on list"},

	{Name: "delete_rate_limit", Default: 30, Desc: "Deletes per minute per client IP (0 disables)"},

	{Name: "timeout_short", Default: "5s", Desc: "Timeout for detail and delete queries"},
	{Name: "timeout_medium", Default: "10s", Desc: "Timeout for list queries"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "CONSULTADMIN", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SearchFieldsEmployer: search.ParseFieldList(appValues.String("search_fields_employer")),
		SearchFieldsSeeker:   search.ParseFieldList(appValues.String("search_fields_seeker")),

		MaxPageSize: appValues.Int("max_page_size"),

		DeleteRateLimit: appValues.Int("delete_rate_limit"),

		TimeoutShort:  appValues.Duration("timeout_short", 5*time.Second),
		TimeoutMedium: appValues.Duration("timeout_medium", 10*time.Second),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// A missing URI only warns: the service still boots and the data endpoints
// report the problem per request. A URI that is present but malformed
// aborts startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if appCfg.MongoURI == "" {
		logger.Warn("mongo_uri is not set; consultation endpoints will answer 500")
	} else if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.MaxPageSize < 1 {
		return fmt.Errorf("max_page_size must be at least 1, got %d", appCfg.MaxPageSize)
	}
	if appCfg.DeleteRateLimit < 0 {
		return fmt.Errorf("delete_rate_limit must not be negative, got %d", appCfg.DeleteRateLimit)
	}
	if appCfg.MongoMinPoolSize > appCfg.MongoMaxPoolSize && appCfg.MongoMaxPoolSize > 0 {
		return fmt.Errorf("mongo_min_pool_size (%d) exceeds mongo_max_pool_size (%d)",
			appCfg.MongoMinPoolSize, appCfg.MongoMaxPoolSize)
	}
	return nil
}

// searchFields builds the per-role search configuration.
func (c AppConfig) searchFields() search.Fields {
	return search.Fields{
		models.RoleEmployer: c.SearchFieldsEmployer,
		models.RoleSeeker:   c.SearchFieldsSeeker,
	}
}
