package config

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/clixs/waitlist-api/config/router"
	"github.com/clixs/waitlist-api/internal/log"
	"github.com/clixs/waitlist-api/pkg/utils"
)

type ApplicationConfig struct {
	RouterService   *router.RouterService
	Logger          *log.Logger
	Cache           Cache
	Config          *AppConfig
	Waitlist        *WaitlistConfig
	TracingShutdown func(context.Context) error
}

// AppConfig carries the HTTP-layer settings.
type AppConfig struct {
	Port               string        `env:"APP_PORT" envDefault:"8080"`
	GinMode            string        `env:"GIN_MODE"`
	RateLimitEnabled   bool          `env:"RATE_LIMIT_ENABLED" envDefault:"false"`
	RateLimitRequests  int           `env:"RATE_LIMIT_REQUESTS" envDefault:"100"`
	RateLimitWindow    time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
	RequestTimeout     time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	CORSAllowedOrigins string        `env:"CORS_ALLOWED_ORIGIN"`
	TrustedProxies     string        `env:"TRUSTED_PROXIES"`
	MaxBodyBytes       int64         `env:"MAX_REQUEST_BODY_BYTES" envDefault:"65536"`
	MetricsEnabled     bool          `env:"METRICS_ENABLED" envDefault:"true"`

	// HSTSEnabled is tri-state: empty enables HSTS only in production.
	HSTSEnabled           string `env:"HSTS_ENABLED"`
	HSTSMaxAge            int64  `env:"HSTS_MAX_AGE" envDefault:"31536000"`
	HSTSIncludeSubdomains bool   `env:"HSTS_INCLUDE_SUBDOMAINS" envDefault:"true"`
}

func NewAppConfig() (*AppConfig, error) {
	config := &AppConfig{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("config: parse app env: %w", err)
	}

	if config.RateLimitRequests <= 0 {
		return nil, fmt.Errorf("config: RATE_LIMIT_REQUESTS must be positive, got %d", config.RateLimitRequests)
	}
	if config.RateLimitWindow <= 0 || config.RequestTimeout <= 0 {
		return nil, fmt.Errorf("config: RATE_LIMIT_WINDOW and REQUEST_TIMEOUT must be positive")
	}
	if config.MaxBodyBytes <= 0 || config.HSTSMaxAge <= 0 {
		return nil, fmt.Errorf("config: MAX_REQUEST_BODY_BYTES and HSTS_MAX_AGE must be positive")
	}
	if _, err := config.hstsEnabled(GetAppEnv()); err != nil {
		return nil, err
	}

	return config, nil
}

func (ac *AppConfig) hstsEnabled(appEnv string) (bool, error) {
	if ac.HSTSEnabled == "" {
		return appEnv == "production" || appEnv == "prod", nil
	}
	enabled, err := strconv.ParseBool(ac.HSTSEnabled)
	if err != nil {
		return false, fmt.Errorf("config: HSTS_ENABLED must be a boolean, got %q", ac.HSTSEnabled)
	}
	return enabled, nil
}

// RouterConfig maps the settings onto the router for the given APP_ENV.
func (ac *AppConfig) RouterConfig(appEnv string) *router.RouterConfig {
	hsts, _ := ac.hstsEnabled(appEnv)

	return &router.RouterConfig{
		Port:               ac.Port,
		GinMode:            ac.GinMode,
		RateLimitEnabled:   ac.RateLimitEnabled,
		RateLimitRequests:  ac.RateLimitRequests,
		RateLimitWindow:    ac.RateLimitWindow,
		RequestTimeout:     ac.RequestTimeout,
		CORSAllowedOrigins: ac.CORSAllowedOrigins,
		TrustedProxies:     ac.TrustedProxies,
		MaxBodyBytes:       ac.MaxBodyBytes,
		DisableMetrics:     !ac.MetricsEnabled,
		HSTS: router.HSTSConfig{
			Enabled:           hsts,
			MaxAge:            ac.HSTSMaxAge,
			IncludeSubdomains: ac.HSTSIncludeSubdomains,
		},
	}
}

func (ac *ApplicationConfig) Cleanup() {
	if ac.TracingShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := ac.TracingShutdown(ctx); err != nil {
			ac.Logger.Error("Failed to shutdown tracer provider", "error", err)
		}
	}

	if ac.RouterService != nil {
		ac.RouterService.Cleanup()
	}

	if ac.Cache != nil {
		CloseCache(ac.Cache, ac.Logger)
	}

	ac.Logger.Info("Application cleanup completed")
}

func LoadApplicationConfiguration(logger *log.Logger) (*ApplicationConfig, error) {
	InitializeEnvFile(logger)

	appConfig, err := NewAppConfig()
	if err != nil {
		return nil, err
	}

	waitlistConfig, err := NewWaitlistConfig()
	if err != nil {
		return nil, err
	}
	logNotificationChannels(logger, waitlistConfig)

	tracingShutdown, err := SetupTracing(logger)
	if err != nil {
		return nil, err
	}

	cache, err := NewCacheConfig()
	if err != nil {
		return nil, err
	}

	appCache := cache.NewCacheOrNil(logger)

	routerConfig := appConfig.RouterConfig(GetAppEnv())
	if utils.IsTracingEnabled() {
		routerConfig.TracingServiceName = utils.OTelServiceName()
	}
	routerService := router.CreateRouterService(logger, appCache, routerConfig)

	logger.Info("Application configuration loaded successfully")

	return &ApplicationConfig{
		RouterService:   routerService,
		Logger:          logger,
		Cache:           appCache,
		Config:          appConfig,
		Waitlist:        waitlistConfig,
		TracingShutdown: tracingShutdown,
	}, nil
}

// logNotificationChannels warns outside development when submissions would only
// reach the logs.
func logNotificationChannels(logger *log.Logger, cfg *WaitlistConfig) {
	channels := cfg.Notify.EnabledChannels()
	if len(channels) > 0 {
		logger.Info("Waitlist notification channels configured", "channels", channels)
		return
	}

	if IsDevelopmentEnv(GetAppEnv()) {
		logger.Info("No waitlist notification channel configured; submissions will only be logged")
		return
	}
	logger.Warn("No waitlist notification channel configured; submissions will only be logged", "app_env", GetAppEnv())
}
