package monitoring

import (
	"context"
	"net/http"
	"time"

	"github.com/clixs/waitlist-api/config/router"
	"github.com/clixs/waitlist-api/internal/log"
	"github.com/clixs/waitlist-api/pkg/ratelimit"
)

const cachePingTimeout = 2 * time.Second

type Cache interface {
	Ping(ctx context.Context) error
}

type HealthStatus struct {
	Cache    int      `json:"cache"`    // 1 = healthy, 0 = unhealthy/not configured
	Uptime   int      `json:"uptime"`   // uptime in seconds
	Channels []string `json:"channels"` // notification channels in dispatch order
}

type MonitoringController struct {
	logger    *log.Logger
	cache     Cache
	channels  []string
	startTime time.Time
}

// NewMonitoringController serves GET / and GET /health. channels lists the
// active notification channels; it never includes credentials.
func NewMonitoringController(logger *log.Logger, cache Cache, channels []string) *router.RESTController {
	if channels == nil {
		channels = []string{}
	}

	ctrl := &MonitoringController{
		logger:    logger,
		cache:     cache,
		channels:  channels,
		startTime: time.Now(),
	}

	return router.NewRESTController(
		"MonitoringController",
		"/",
		func(routerService *router.RouterService, controller *router.RESTController) {
			monitoringRateLimiter := createMonitoringRateLimiter()

			routerService.AddGetHandler(controller, monitoringRateLimiter, "", func(c *router.RequestContext) *router.ServiceResult {
				return router.OKResult("Waitlist API is operational.", "Monitoring successful")
			})

			routerService.AddGetHandler(controller, monitoringRateLimiter, "health", ctrl.healthCheck)
		},
	)
}

// createMonitoringRateLimiter only takes effect when RATE_LIMIT_ENABLED is set.
func createMonitoringRateLimiter() ratelimit.RateLimiter {
	const monitoringRequestsPerMinute = 10

	return ratelimit.NewRateLimiter(&ratelimit.RateLimitConfig{
		Requests: monitoringRequestsPerMinute,
		Window:   time.Minute,
	})
}

func (ctrl *MonitoringController) healthCheck(c *router.RequestContext) *router.ServiceResult {
	logger := router.GetLogger(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), cachePingTimeout)
	defer cancel()

	status := HealthStatus{
		Cache:    ctrl.checkCache(ctx, logger),
		Uptime:   int(time.Since(ctrl.startTime).Seconds()),
		Channels: ctrl.channels,
	}

	logger.Debug("Health check completed", "cache", status.Cache, "channels", len(status.Channels))

	return &router.ServiceResult{
		StatusCode: http.StatusOK,
		Data:       status,
		Message:    "waitlist-api health check completed",
	}
}

func (ctrl *MonitoringController) checkCache(ctx context.Context, logger *log.Logger) int {
	if ctrl.cache == nil {
		return 0
	}

	if err := ctrl.cache.Ping(ctx); err != nil {
		logger.Error("Cache health check failed", "error", err)
		return 0
	}
	return 1
}
