package router

import (
	"net/http"

	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"ecomm/internal/auth"
	"ecomm/internal/config"
	"ecomm/internal/errors"
	"ecomm/internal/handler"
	"ecomm/internal/validation"
)

// Handlers groups the HTTP handlers served under /api.
type Handlers struct {
	Customers *handler.CustomerHandler
	Accounts  *handler.AccountHandler
	Products  *handler.ProductHandler
	Orders    *handler.OrderHandler
	Auth      *handler.AuthHandler
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log zerolog.Logger,
	validator *validation.Validator,
	jwtService *auth.JWTService,
	h Handlers,
) {
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(requestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins(),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.Validator = validator

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	requireToken := bearerAuth(jwtService)

	// Mutating routes are open unless AUTH_REQUIRED is set.
	var guard []echo.MiddlewareFunc
	if cfg.AuthRequired {
		guard = append(guard, requireToken)
	}

	// Auth routes
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/refresh", h.Auth.Refresh)
	api.POST("/auth/logout", h.Auth.Logout)
	api.GET("/me", h.Auth.Me, requireToken)

	// Customer routes
	api.GET("/customers", h.Customers.ListCustomers)
	api.GET("/customers/:id", h.Customers.GetCustomer)
	api.POST("/customers", h.Customers.CreateCustomer, guard...)
	api.PUT("/customers/:id", h.Customers.UpdateCustomer, guard...)
	api.DELETE("/customers/:id", h.Customers.DeleteCustomer, guard...)

	// Account routes
	api.GET("/accounts", h.Accounts.ListAccounts)
	api.GET("/accounts/exists", h.Accounts.AccountExists)
	api.GET("/accounts/:id", h.Accounts.GetAccount)
	api.POST("/accounts", h.Accounts.CreateAccount, guard...)
	api.PUT("/accounts/:id", h.Accounts.UpdateAccount, guard...)
	api.DELETE("/accounts/:id", h.Accounts.DeleteAccount, guard...)

	// Product routes
	api.GET("/products", h.Products.ListProducts)
	api.GET("/products/by-name", h.Products.SearchProducts)
	api.GET("/products/:id", h.Products.GetProduct)
	api.POST("/products", h.Products.CreateProduct, guard...)
	api.PUT("/products/:id", h.Products.UpdateProduct, guard...)
	api.DELETE("/products/:id", h.Products.DeleteProduct, guard...)

	// Order routes
	api.GET("/orders", h.Orders.ListOrders)
	api.GET("/orders/customer/:id", h.Orders.ListCustomerOrders)
	api.GET("/orders/:id", h.Orders.GetOrder)
	api.POST("/orders", h.Orders.CreateOrder, guard...)
	api.PUT("/orders/:id", h.Orders.UpdateOrder, guard...)
	api.DELETE("/orders/:id", h.Orders.DeleteOrder, guard...)
}

// bearerAuth validates "Authorization: Bearer <token>" with the service's own
// JWT parser and stores the *auth.Claims under the "user" context key.
func bearerAuth(jwtService *auth.JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateToken(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: "missing, invalid or expired token",
				Code:  "UNAUTHORIZED",
			})
		},
	})
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= http.StatusInternalServerError {
				ev = log.Error()
			}
			if v.Error != nil {
				ev = ev.Err(v.Error)
			}
			ev.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request completed")
			return nil
		},
	})
}
