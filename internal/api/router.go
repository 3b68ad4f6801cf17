package api

import (
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"github.com/storefront/dashboard-api/internal/api/handler"
	"github.com/storefront/dashboard-api/internal/api/metrics"
	"github.com/storefront/dashboard-api/internal/api/middleware"
	"github.com/storefront/dashboard-api/internal/core/domain"
	"github.com/storefront/dashboard-api/internal/core/ports"
	infrahttp "github.com/storefront/dashboard-api/internal/infrastructure/http"
	"github.com/storefront/dashboard-api/internal/infrastructure/http/handlers"
)

const rateLimiterExpiry = 3 * time.Minute

// Dependencies are the services and settings the router wires into handlers.
type Dependencies struct {
	Log      zerolog.Logger
	Tokens   ports.TokenVerifier
	Auth     ports.AuthService
	Users    ports.UserService
	Products ports.ProductService
	Orders   ports.OrderService

	// AuthRateLimit is requests/second per client IP on the credential
	// endpoints. Zero disables the limiter.
	AuthRateLimit float64
	AuthRateBurst int

	Probes []handlers.DependencyCheck
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(metrics.Middleware())
	// Runs the error handler itself, so outer middleware see the final status.
	e.Use(requestLogger(deps.Log))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	userHandler := handler.NewUserHandler(deps.Users)
	productHandler := handler.NewProductHandler(deps.Products)
	orderHandler := handler.NewOrderHandler(deps.Orders)
	requireAuth := middleware.Auth(deps.Tokens)

	e.GET("/", handler.Index)

	// --- Credential routes (rate limited, no auth) ---
	credentials := e.Group("")
	if deps.AuthRateLimit > 0 {
		credentials.Use(authRateLimiter(deps.AuthRateLimit, deps.AuthRateBurst))
	}
	credentials.POST("/register", authHandler.Register)
	credentials.POST("/login", authHandler.Login)
	credentials.POST("/token/refresh", authHandler.Refresh)

	// --- Authenticated routes ---
	authed := e.Group("", requireAuth)
	authed.POST("/change-password", authHandler.ChangePassword)

	authed.GET("/profile", userHandler.Profile)
	authed.PATCH("/profile", userHandler.UpdateBio)
	authed.PUT("/profile", userHandler.UpdateProfile)
	authed.GET("/stats/chart", userHandler.Chart)
	authed.GET("/users", userHandler.List, middleware.RBAC(domain.RoleManager))

	authed.GET("/products", productHandler.List)
	authed.POST("/products", productHandler.Create)
	authed.GET("/products/top", orderHandler.TopProducts)
	authed.GET("/products/:id", productHandler.Get)
	authed.PUT("/products/:id", productHandler.Update)
	authed.DELETE("/products/:id", productHandler.Delete)

	authed.GET("/orders", orderHandler.LastOrders)
	authed.POST("/orders", orderHandler.Create)
	authed.GET("/orders/recent", orderHandler.RecentOrders)

	// --- Operational endpoints (no auth required) ---
	infrahttp.RegisterProbes(e, deps.Probes...)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/docs/*", echoSwagger.WrapHandler)

	return e
}

// authRateLimiter throttles credential endpoints per client IP.
func authRateLimiter(perSecond float64, burst int) echo.MiddlewareFunc {
	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(perSecond),
		Burst:     burst,
		ExpiresIn: rateLimiterExpiry,
	})
	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
	})
}

// requestLogger writes one zerolog entry per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
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
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
