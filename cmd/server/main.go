package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"ecomm/docs"
	"ecomm/internal/auth"
	"ecomm/internal/config"
	"ecomm/internal/db"
	"ecomm/internal/handler"
	"ecomm/internal/kv"
	"ecomm/internal/logger"
	"ecomm/internal/repository"
	"ecomm/internal/router"
	"ecomm/internal/service"
	"ecomm/internal/validation"
)

// @title E-commerce API
// @version 1.0
// @description Customers, accounts, products and orders with JWT authentication.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New("info", false)
		boot.Fatal().Err(err).Msg("load config")
	}
	log := logger.New(cfg.LogLevel, cfg.LogPretty)

	gormDB, err := db.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("database init")
	}

	if cfg.ResetDB {
		log.Warn().Msg("RESET_DB=true detected, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			log.Fatal().Err(err).Msg("reset database")
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	kvClient := kv.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer kvClient.Close()
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	if err := kvClient.Ping(pingCtx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, token refresh will fail")
	}
	cancelPing()

	store := repository.NewStore(gormDB)
	validator := validation.New()

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(kvClient)

	// Initialize services
	customerService := service.NewCustomerService(store, log)
	accountService := service.NewAccountService(store)
	productService := service.NewProductService(store, log)
	orderService := service.NewOrderService(store, log)
	authService := service.NewAuthService(store.Accounts(), jwtService, tokenStore)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	router.Register(e, cfg, log, validator, jwtService, router.Handlers{
		Customers: handler.NewCustomerHandler(customerService, validator),
		Accounts:  handler.NewAccountHandler(accountService, authService, validator),
		Products:  handler.NewProductHandler(productService, validator),
		Orders:    handler.NewOrderHandler(orderService, validator),
		Auth:      handler.NewAuthHandler(authService),
	})

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = swaggerHost(cfg.SwaggerHost)
	}
	log.Info().
		Str("url", "http://"+docs.SwaggerInfo.Host+"/swagger/index.html").
		Msg("swagger documentation available")

	go func() {
		addr := ":" + cfg.ServerPort
		log.Info().Str("addr", addr).Str("driver", cfg.DBDriver).Bool("auth_required", cfg.AuthRequired).Msg("server starting")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server start")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Info().Msg("received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("server stopped")
}

// swaggerHost strips the scheme SWAGGER_HOST may carry; swag wants a bare host.
func swaggerHost(raw string) string {
	return strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
}
