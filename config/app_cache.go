package config

import (
	"context"
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/clixs/waitlist-api/internal/log"
	pkgredis "github.com/clixs/waitlist-api/pkg/redis"
)

// Cache is the optional Redis connection. It backs the distributed rate limiter
// and is reported by the health check.
type Cache interface {
	Ping(ctx context.Context) error
	Close() error
}

type CacheConfig struct {
	Host     string `env:"REDIS_HOST"`
	Port     string `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

func NewCacheConfig() (*CacheConfig, error) {
	cc := &CacheConfig{}
	if err := env.Parse(cc); err != nil {
		return nil, fmt.Errorf("config: parse redis env: %w", err)
	}
	return cc, nil
}

func (cc *CacheConfig) IsConfigured() bool {
	return cc.Host != ""
}

func (cc *CacheConfig) NewCache(logger *log.Logger) (Cache, error) {
	if !cc.IsConfigured() {
		return nil, ErrCacheNotConfigured
	}

	cfg := &pkgredis.Config{
		Host:     cc.Host,
		Port:     cc.Port,
		Password: cc.Password,
		DB:       cc.DB,
	}
	cache, err := pkgredis.NewRedisCache(cfg)
	if err != nil {
		return nil, err
	}

	logger.Info("Cache (Redis) connected successfully", "addr", cfg.Addr(), "db", cfg.DB)
	return cache, nil
}

// NewCacheOrNil never fails: an unreachable Redis leaves the service running
// with the in-memory limiter.
func (cc *CacheConfig) NewCacheOrNil(logger *log.Logger) Cache {
	if !cc.IsConfigured() {
		logger.Info("Cache (Redis) is not configured; proceeding without external cache")
		return nil
	}

	cache, err := cc.NewCache(logger)
	if err != nil {
		logger.Error("Failed to create Cache (Redis)", "error", err)
		return nil
	}

	return cache
}

func CloseCache(cache Cache, logger *log.Logger) error {
	if cache == nil {
		return nil
	}

	if err := cache.Close(); err != nil {
		logger.Error("Failed to close cache", "error", err)
		return err
	}

	logger.Info("Cache connection closed")
	return nil
}

var ErrCacheNotConfigured = &CacheError{Message: "cache host is not configured"}

type CacheError struct {
	Message string
}

func (e *CacheError) Error() string {
	return e.Message
}
