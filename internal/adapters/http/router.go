package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotesync/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotesync/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotesync/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default deadline for API requests.
const DefaultRequestTimeout = 30 * time.Second

// APIPrefix is where the business routes live.
const APIPrefix = "/api/v1"

// RouteRegistrar is implemented by every API handler.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RouterConfig contains what SetupRouter wires.
type RouterConfig struct {
	// ServiceName names the service in traces.
	ServiceName string

	Health *handlers.HealthHandler
	API    []RouteRegistrar

	// Timeout is the API request deadline. Zero disables it.
	Timeout time.Duration

	// NoTimeout lists API paths that keep the parent context, such as a
	// manual sync that has its own deadline.
	NoTimeout []string

	// QuietPaths are not request-logged. Clients poll notifications.
	QuietPaths []string
}

// SetupRouter applies middleware and registers routes. Middleware order:
//  1. Recovery
//  2. Request ID
//  3. Correlation ID
//  4. OpenTelemetry tracing and HTTP metrics
//  5. Logging (skips /-/ probes)
//
// API routes also get the request timeout.
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.CorrelationID(),
	)
	engine.Use(telemetry.Middleware(cfg.ServiceName)...)
	engine.Use(middleware.Logging(cfg.QuietPaths...))

	if cfg.Health != nil {
		cfg.Health.RegisterRoutes(engine)
	}

	api := engine.Group(APIPrefix)
	api.Use(middleware.Timeout(cfg.Timeout, cfg.NoTimeout...))

	for _, r := range cfg.API {
		r.RegisterRoutes(api)
	}
}
