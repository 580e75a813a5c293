// Package mongoconn owns the process-wide MongoDB client.
//
// The client is opened lazily by the first request that needs it and is
// then reused for the life of the process. Concurrent first requests share
// one connect attempt. A failed attempt is not remembered, so the next
// request tries again.
package mongoconn

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DefaultDatabase is used when neither the config nor the URI names one.
const DefaultDatabase = "consultation"

// DefaultConnectTimeout bounds a single connect attempt.
const DefaultConnectTimeout = 10 * time.Second

// ErrNoURI is returned when no connection string is configured.
var ErrNoURI = errors.New("mongoconn: no connection string configured")

// Config holds connection settings.
type Config struct {
	URI            string
	Database       string // blank: take it from the URI path, then DefaultDatabase
	MaxPoolSize    uint64
	MinPoolSize    uint64
	ConnectTimeout time.Duration
}

// DialFunc opens and verifies a client.
type DialFunc func(ctx context.Context, cfg Config) (*mongo.Client, error)

// ConnectHook runs once, after the first successful connect.
type ConnectHook func(ctx context.Context, db *mongo.Database) error

// Provider hands out the shared database handle.
type Provider struct {
	cfg       Config
	log       *zap.Logger
	dial      DialFunc
	onConnect ConnectHook

	group singleflight.Group

	mu     sync.RWMutex
	client *mongo.Client
	db     *mongo.Database
}

// Option customizes a Provider.
type Option func(*Provider)

// WithDialer replaces the default dialer. Tests use it to count connects.
func WithDialer(d DialFunc) Option {
	return func(p *Provider) { p.dial = d }
}

// WithConnectHook registers a hook to run after the first connect.
func WithConnectHook(h ConnectHook) Option {
	return func(p *Provider) { p.onConnect = h }
}

// New builds a Provider. It does not connect.
func New(cfg Config, logger *zap.Logger, opts ...Option) *Provider {
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = DefaultConnectTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Provider{cfg: cfg, log: logger, dial: Dial}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Configured reports whether a connection string is set.
func (p *Provider) Configured() bool { return p.cfg.URI != "" }

// DatabaseName resolves the database the provider will use.
func (p *Provider) DatabaseName() string {
	return DatabaseName(p.cfg)
}

// Database returns the shared handle, connecting on first use.
func (p *Provider) Database(ctx context.Context) (*mongo.Database, error) {
	if db := p.current(); db != nil {
		return db, nil
	}
	if !p.Configured() {
		return nil, ErrNoURI
	}

	v, err, _ := p.group.Do("connect", func() (any, error) {
		if db := p.current(); db != nil {
			return db, nil
		}

		// Callers share this attempt, so it must not die with the first
		// caller's request context.
		dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.cfg.ConnectTimeout)
		defer cancel()

		start := time.Now()
		client, err := p.dial(dctx, p.cfg)
		if err != nil {
			p.log.Error("mongo connect failed", zap.Error(err))
			return nil, err
		}
		db := client.Database(p.DatabaseName())
		p.log.Info("mongo connected",
			zap.String("database", db.Name()),
			zap.Duration("took", time.Since(start)))

		if p.onConnect != nil {
			if err := p.onConnect(dctx, db); err != nil {
				p.log.Warn("mongo connect hook failed", zap.Error(err))
			}
		}

		p.mu.Lock()
		p.client = client
		p.db = db
		p.mu.Unlock()
		return db, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*mongo.Database), nil
}

// Ping verifies connectivity, connecting first if needed.
func (p *Provider) Ping(ctx context.Context) error {
	db, err := p.Database(ctx)
	if err != nil {
		return err
	}
	return db.Client().Ping(ctx, readpref.Primary())
}

// Close disconnects the client if one was opened.
func (p *Provider) Close(ctx context.Context) error {
	p.mu.Lock()
	client := p.client
	p.client = nil
	p.db = nil
	p.mu.Unlock()

	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

func (p *Provider) current() *mongo.Database {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.db
}

// Dial is the default DialFunc: connect and ping the primary.
func Dial(ctx context.Context, cfg Config) (*mongo.Client, error) {
	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}
	if cfg.MinPoolSize > 0 {
		opts.SetMinPoolSize(cfg.MinPoolSize)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// DatabaseName picks the database for cfg: explicit name, then the URI
// path, then DefaultDatabase.
func DatabaseName(cfg Config) string {
	if cfg.Database != "" {
		return cfg.Database
	}
	if cfg.URI != "" {
		if cs, err := connstring.Parse(cfg.URI); err == nil && cs.Database != "" {
			return cs.Database
		}
	}
	return DefaultDatabase
}
