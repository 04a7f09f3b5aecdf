package http

import (
	"net/http"
	"time"

	"checkout/api"
	"checkout/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	BaseURL               = "/api/v1"
	rateLimiterExpiresIn  = 3 * time.Minute
	reasonTooManyRequests = "Request was throttled."
)

type RouterConfig struct {
	Logger    *zap.Logger
	Metrics   *Metrics
	JWTSecret []byte

	// RateLimit is requests per second per actor; zero disables the limiter.
	RateLimit rate.Limit
	RateBurst int

	// IdempotencyStore may be nil, which disables Idempotency-Key handling.
	IdempotencyStore ports.IdempotencyStore
	IdempotencyTTL   time.Duration
}

// NewRouter builds the echo instance serving the API, health, metrics and
// swagger endpoints.
func NewRouter(server ServerInterface, cfg RouterConfig) (*echo.Echo, error) {
	logger := cfg.Logger.With(zap.String("component", "http"))

	doc, err := api.GetSwagger()
	if err != nil {
		return nil, err
	}
	validator, err := NewRequestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewErrorHandler(logger)

	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(requestLoggerConfig(logger)))
	e.Use(middleware.Recover())
	if cfg.Metrics != nil {
		e.Use(cfg.Metrics.Middleware)
		e.GET("/metrics", echo.WrapHandler(cfg.Metrics.Handler()))
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", SwaggerHandler())

	group := e.Group(BaseURL, NewAuthMiddleware(cfg.JWTSecret), RequireActor)
	if cfg.RateLimit > 0 {
		group.Use(NewRateLimiter(cfg.RateLimit, cfg.RateBurst))
	}
	group.Use(validator)
	if cfg.IdempotencyStore != nil {
		group.Use(NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL, logger))
	}

	RegisterHandlersWithBaseURL(group, server, "")

	return e, nil
}

// NewRateLimiter limits requests per actor, or per client address for
// requests without one.
func NewRateLimiter(limit rate.Limit, burst int) echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      limit,
				Burst:     burst,
				ExpiresIn: rateLimiterExpiresIn,
			}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			actor, err := actorOf(c)
			if err != nil || actor.IsAnonymous() {
				return c.RealIP(), nil
			}
			return actor.UserID().String(), nil
		},
		ErrorHandler: func(_ echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		},
		DenyHandler: func(_ echo.Context, _ string, _ error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, reasonTooManyRequests)
		},
	})
}

func requestLoggerConfig(logger *zap.Logger) middleware.RequestLoggerConfig {
	return middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			)
			return nil
		},
	}
}
