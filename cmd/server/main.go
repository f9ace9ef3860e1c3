package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/saiyasaswi-685/cdn-project/pkg/assetcdn"
	"github.com/saiyasaswi-685/cdn-project/pkg/assetcdn/api"
	"github.com/saiyasaswi-685/cdn-project/pkg/assetcdn/config"
	s3storage "github.com/saiyasaswi-685/cdn-project/pkg/assetcdn/storage/s3"
)

// Config is the environment surface of the server binary
type Config struct {
	Port        string `env:"PORT" env-default:"8080"`
	Environment string `env:"ENVIRONMENT" env-default:"development"`
	DatabaseURL string `env:"DATABASE_URL" env-default:"memory"`
	Storage     StorageConfig
	Cache       CacheConfig
}

// StorageConfig selects and parameterizes the blob store backend
type StorageConfig struct {
	Type      string `env:"STORAGE_TYPE" env-default:"memory"` // memory, fs, s3
	FSBaseDir string `env:"FS_BASE_DIR" env-default:"./data/assets"`
	S3        S3Config
}

// S3Config carries the object-store credentials and bucket
type S3Config struct {
	Endpoint        string `env:"S3_ENDPOINT_URL" env-default:""`
	AccessKeyID     string `env:"AWS_ACCESS_KEY" env-default:""`
	SecretAccessKey string `env:"AWS_SECRET_KEY" env-default:""`
	Region          string `env:"AWS_REGION" env-default:"us-east-1"`
	Bucket          string `env:"S3_BUCKET_NAME" env-default:""`
	UsePathStyle    bool   `env:"S3_USE_PATH_STYLE" env-default:"true"`
}

// CacheConfig carries the freshness windows for public assets
type CacheConfig struct {
	SharedMaxAge int `env:"CACHE_SHARED_MAX_AGE" env-default:"3600"`
	ClientMaxAge int `env:"CACHE_CLIENT_MAX_AGE" env-default:"60"`
}

func (c Config) serverOptions() []config.Option {
	opts := []config.Option{
		config.WithPort(c.Port),
		config.WithEnvironment(c.Environment),
		config.WithDatabase(c.DatabaseURL),
		config.WithCachePolicy(assetcdn.CachePolicy{
			SharedMaxAge: c.Cache.SharedMaxAge,
			ClientMaxAge: c.Cache.ClientMaxAge,
		}),
		config.WithEventLogging(true),
	}

	switch c.Storage.Type {
	case "fs":
		opts = append(opts, config.WithFilesystemStorage(c.Storage.FSBaseDir))
	case "s3":
		opts = append(opts, config.WithS3Storage(s3storage.Config{
			Region:          c.Storage.S3.Region,
			Bucket:          c.Storage.S3.Bucket,
			AccessKeyID:     c.Storage.S3.AccessKeyID,
			SecretAccessKey: c.Storage.S3.SecretAccessKey,
			Endpoint:        c.Storage.S3.Endpoint,
			UsePathStyle:    c.Storage.S3.UsePathStyle,
		}))
	}

	return opts
}

func main() {
	var envCfg Config
	if err := cleanenv.ReadEnv(&envCfg); err != nil {
		log.Fatalf("Failed to read environment: %v", err)
	}

	serverConfig, err := config.Load(envCfg.serverOptions()...)
	if err != nil {
		log.Fatalf("Failed to load server configuration: %v", err)
	}

	// Bucket provisioning happens here; anything other than "already
	// exists" aborts startup
	svc, err := serverConfig.BuildService(context.Background())
	if err != nil {
		log.Fatalf("Failed to build service: %v", err)
	}

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", serverConfig.Port),
		Handler: routes(svc, serverConfig),
	}

	go func() {
		log.Printf("Asset CDN server starting on port %s (env: %s)", serverConfig.Port, serverConfig.Environment)
		log.Printf("Storage backend: %s, database: %s", serverConfig.StorageType, serverConfig.DatabaseType)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}

func routes(svc assetcdn.Service, cfg *config.ServerConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status": "healthy", "environment": "%s", "storage": "%s"}`,
			cfg.Environment, cfg.StorageType)
	})

	r.Mount("/assets", api.NewAssetHandler(svc).Routes())

	return r
}
