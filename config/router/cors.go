package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func parseAllowedOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// newCORSMiddleware answers preflight requests for the landing page. Requests
// from origins outside the list are rejected with 403.
func newCORSMiddleware(origins []string) (gin.HandlerFunc, error) {
	config := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Correlation-ID"},
		ExposeHeaders: []string{"X-Correlation-ID"},
		MaxAge:        12 * time.Hour,
	}

	for _, o := range origins {
		if o == "*" {
			config.AllowAllOrigins = true
			break
		}
	}
	if !config.AllowAllOrigins {
		config.AllowOrigins = origins
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return cors.New(config), nil
}

func (routerService *RouterService) mountCORS(raw string) {
	origins := parseAllowedOrigins(raw)
	if len(origins) == 0 {
		routerService.logger.Warn("CORS_ALLOWED_ORIGIN not set; cross-origin browser requests will be refused")
		return
	}

	middleware, err := newCORSMiddleware(origins)
	if err != nil {
		routerService.logger.Error("Invalid CORS_ALLOWED_ORIGIN; cross-origin requests disabled", "error", err)
		return
	}

	routerService.engine.Use(middleware)
	routerService.logger.Info("CORS enabled", "origins", origins)
}
