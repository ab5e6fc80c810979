package router

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"crm/internal/auth"
	"crm/internal/errors"
	"crm/internal/handler"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth     *handler.AuthHandler
	Customer *handler.CustomerHandler
	Seed     *handler.SeedHandler
	Health   *handler.HealthHandler
}

// Options carries the router's infrastructure dependencies.
type Options struct {
	JWT    *auth.JWTService
	Logger zerolog.Logger
	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// Register wires routes and middleware.
func Register(e *echo.Echo, opts Options, h Handlers) {
	if opts.Registerer == nil {
		opts.Registerer = prometheus.DefaultRegisterer
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}

	e.HTTPErrorHandler = errors.NewHTTPErrorHandler(opts.Logger)
	e.Validator = NewValidator()

	e.Use(middleware.RequestID())
	e.Use(requestLogger(opts.Logger))
	e.Use(middleware.Recover())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "crm",
		Subsystem:  "http",
		Registerer: opts.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	e.GET("/healthz", h.Health.Liveness)
	e.GET("/health/ready", h.Health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: opts.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/seed", h.Seed.Seed)

	// Secured routes (require JWT authentication)
	secured := api.Group("", bearerAuth(opts.JWT))

	secured.GET("/auth/me", h.Auth.Me)

	secured.GET("/customers", h.Customer.ListCustomers)
	secured.POST("/customers", h.Customer.CreateCustomer)
	secured.GET("/customers/search", h.Customer.SearchCustomers)
	secured.GET("/customers/registered", h.Customer.ListCustomersRegisteredBetween)
	secured.GET("/customers/region/:region", h.Customer.ListCustomersByRegion)
	secured.GET("/customers/:id", h.Customer.GetCustomer)
	secured.PUT("/customers/:id", h.Customer.UpdateCustomer)
	secured.DELETE("/customers/:id", h.Customer.DeleteCustomer)
}

// bearerAuth validates the bearer token and stores its *auth.Claims in the
// context under handler.ClaimsContextKey.
func bearerAuth(jwtService *auth.JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  handler.ClaimsContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (any, error) {
			return jwtService.ValidateToken(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errors.NewHTTPError(http.StatusUnauthorized, "missing or invalid bearer token", errors.CodeUnauthorized).
				WithInternal(err)
		},
	})
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil || v.Status >= 500 {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
