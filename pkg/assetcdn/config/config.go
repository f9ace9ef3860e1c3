// Package config assembles an assetcdn.Service from declarative server
// configuration: repository selection (memory or postgres), blob store
// selection (memory, fs, or s3), and cache freshness windows.
package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saiyasaswi-685/cdn-project/pkg/assetcdn"
	repomemory "github.com/saiyasaswi-685/cdn-project/pkg/assetcdn/repo/memory"
	repopg "github.com/saiyasaswi-685/cdn-project/pkg/assetcdn/repo/postgres"
	fsstorage "github.com/saiyasaswi-685/cdn-project/pkg/assetcdn/storage/fs"
	memorystorage "github.com/saiyasaswi-685/cdn-project/pkg/assetcdn/storage/memory"
	s3storage "github.com/saiyasaswi-685/cdn-project/pkg/assetcdn/storage/s3"
)

// Option applies configuration to a ServerConfig instance.
type Option func(*ServerConfig) error

// Load constructs a ServerConfig by applying the supplied options on top of
// library defaults.
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Port:         "8080",
		Environment:  "development",
		DatabaseType: "memory",
		StorageType:  "memory",
		CachePolicy:  assetcdn.DefaultCachePolicy(),
	}
}

// ServerConfig represents server configuration for the asset CDN service
type ServerConfig struct {
	Port        string
	Environment string // development, production, testing

	// Database configuration
	DatabaseURL  string
	DatabaseType string // "memory", "postgres"

	// Storage configuration
	StorageType string // "memory", "fs", "s3"
	FSBaseDir   string
	S3          s3storage.Config

	// Cache policy
	CachePolicy assetcdn.CachePolicy

	// Server options
	EnableEventLogging bool
}

// WithPort sets the listen port
func WithPort(port string) Option {
	return func(c *ServerConfig) error {
		if port != "" {
			c.Port = port
		}
		return nil
	}
}

// WithEnvironment sets the runtime environment
func WithEnvironment(env string) Option {
	return func(c *ServerConfig) error {
		if env != "" {
			c.Environment = env
		}
		return nil
	}
}

// WithDatabase selects the repository backend. An empty or "memory" URL
// selects the in-memory ledger; a postgres URL selects the relational one.
func WithDatabase(databaseURL string) Option {
	return func(c *ServerConfig) error {
		if databaseURL == "" || databaseURL == "memory" {
			c.DatabaseType = "memory"
			c.DatabaseURL = ""
			return nil
		}
		if hasPostgresScheme(databaseURL) {
			c.DatabaseType = "postgres"
			c.DatabaseURL = databaseURL
			return nil
		}
		return fmt.Errorf("unsupported database URL: %s (use 'memory' or 'postgresql://...')", databaseURL)
	}
}

// WithFilesystemStorage selects the filesystem blob store
func WithFilesystemStorage(baseDir string) Option {
	return func(c *ServerConfig) error {
		if baseDir == "" {
			return errors.New("filesystem base directory cannot be empty")
		}
		c.StorageType = "fs"
		c.FSBaseDir = baseDir
		return nil
	}
}

// WithS3Storage selects the S3 blob store
func WithS3Storage(s3cfg s3storage.Config) Option {
	return func(c *ServerConfig) error {
		if s3cfg.Bucket == "" {
			return errors.New("s3 bucket name cannot be empty")
		}
		c.StorageType = "s3"
		c.S3 = s3cfg
		return nil
	}
}

// WithCachePolicy sets the freshness windows for served assets
func WithCachePolicy(policy assetcdn.CachePolicy) Option {
	return func(c *ServerConfig) error {
		c.CachePolicy = policy
		return nil
	}
}

// WithEventLogging enables the structured-logging event sink
func WithEventLogging(enabled bool) Option {
	return func(c *ServerConfig) error {
		c.EnableEventLogging = enabled
		return nil
	}
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	if c.DatabaseType != "memory" && c.DatabaseType != "postgres" {
		return errors.New("database type must be 'memory' or 'postgres'")
	}

	if c.DatabaseType == "postgres" && c.DatabaseURL == "" {
		return errors.New("database URL is required when using postgres")
	}

	switch c.StorageType {
	case "memory":
	case "fs":
		if c.FSBaseDir == "" {
			return errors.New("filesystem base directory is required")
		}
	case "s3":
		if c.S3.Bucket == "" {
			return errors.New("s3 bucket is required")
		}
	default:
		return fmt.Errorf("unsupported storage type: %s", c.StorageType)
	}

	return c.CachePolicy.Validate()
}

// BuildService creates a Service instance from the server configuration.
// When the S3 backend is selected, the bucket is ensured to exist up front;
// any failure other than "already exists" propagates.
func (c *ServerConfig) BuildService(ctx context.Context) (assetcdn.Service, error) {
	repo, err := c.buildRepository(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build repository: %w", err)
	}

	store, err := c.buildBlobStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build blob store: %w", err)
	}

	options := []assetcdn.Option{
		assetcdn.WithRepository(repo),
		assetcdn.WithBlobStore(store),
		assetcdn.WithCachePolicy(c.CachePolicy),
	}

	if c.EnableEventLogging {
		options = append(options, assetcdn.WithEventSink(assetcdn.NewLoggingEventSink(nil)))
	}

	return assetcdn.New(options...)
}

func (c *ServerConfig) buildRepository(ctx context.Context) (assetcdn.Repository, error) {
	switch c.DatabaseType {
	case "memory":
		return repomemory.New(), nil
	case "postgres":
		pool, err := pgxpool.New(ctx, c.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create pgx pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			return nil, fmt.Errorf("database ping failed: %w", err)
		}
		return repopg.NewWithPool(pool), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", c.DatabaseType)
	}
}

func (c *ServerConfig) buildBlobStore(ctx context.Context) (assetcdn.BlobStore, error) {
	switch c.StorageType {
	case "memory":
		return memorystorage.New(), nil
	case "fs":
		return fsstorage.New(fsstorage.Config{BaseDir: c.FSBaseDir})
	case "s3":
		backend, err := s3storage.New(c.S3)
		if err != nil {
			return nil, err
		}
		if err := backend.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return backend, nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", c.StorageType)
	}
}

func hasPostgresScheme(url string) bool {
	return len(url) > 13 && url[:13] == "postgresql://" ||
		len(url) > 11 && url[:11] == "postgres://"
}
