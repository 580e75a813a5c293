// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for consultadmin.
//
// These values come from environment variables (CONSULTADMIN_*), config
// files, or command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig
// covers ports, TLS, logging and CORS; everything specific to the
// consultation API lives here.
type AppConfig struct {
	// MongoDB connection configuration. A blank MongoURI is allowed at
	// boot; every data request then answers 500 until it is set.
	MongoURI         string
	MongoDatabase    string // blank: taken from the URI path, then "consultation"
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Document paths the list search matches, per role.
	SearchFieldsEmployer []string
	SearchFieldsSeeker   []string

	// MaxPageSize caps ?limit= on the list endpoint.
	MaxPageSize int

	// DeleteRateLimit is deletes per minute per client IP; 0 disables.
	DeleteRateLimit int

	TimeoutShort  time.Duration // detail and delete
	TimeoutMedium time.Duration // list
}
