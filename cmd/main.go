package main

import (
	"log"

	"tradeflow-service/internal/handler"
	"tradeflow-service/internal/middleware"
	"tradeflow-service/internal/model"
	"tradeflow-service/pkg/config"
	"tradeflow-service/pkg/database"
	"tradeflow-service/pkg/jwtutil"
	"tradeflow-service/pkg/logger"
	"tradeflow-service/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	conf, err := config.Load("tradeflow")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	if err := logger.InitLogger(&logger.LogConfig{
		Level:       conf.Log.Level,
		Environment: conf.Server.Env,
		ServiceName: conf.ServiceName,
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	appLogger := logger.GetLogger()
	defer appLogger.Sync()

	// Initialize JWT utility and metrics
	jwtutil.Initialize(&conf.JWT)
	prometheus.InitMetrics(conf)

	// Initialize database
	if _, err := database.InitDB(&conf.DB); err != nil {
		appLogger.Fatal("Failed to initialize database", zap.Error(err))
	}
	if err := database.MigrateModels(
		&model.Company{},
		&model.User{},
		&model.Customer{},
		&model.Deal{},
		&model.Quote{},
		&model.CustomerPO{},
		&model.ActivityLog{},
		&model.NumberSequence{},
	); err != nil {
		appLogger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.Recover())
	e.Use(middleware.RequestIDMiddleware())
	e.Use(middleware.MetricsMiddleware)
	e.Use(logger.Middleware())

	// Public endpoints
	e.GET("/health", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.POST("/auth/register", handler.Register)
	e.POST("/auth/login", handler.Login)

	// Authenticated API
	api := e.Group("/api", middleware.AuthMiddleware)

	api.POST("/customers", handler.CreateCustomer)
	api.GET("/customers", handler.ListCustomers)
	api.GET("/customers/:id", handler.GetCustomer)
	api.PUT("/customers/:id", handler.UpdateCustomer)
	api.DELETE("/customers/:id", handler.DeleteCustomer)

	api.POST("/deals", handler.CreateDeal)
	api.GET("/deals", handler.ListDeals)
	api.GET("/deals/:id", handler.GetDeal)
	api.PUT("/deals/:id", handler.UpdateDeal)
	api.PATCH("/deals/:id/status", handler.ChangeDealStatus)
	api.DELETE("/deals/:id", handler.DeleteDeal)
	api.GET("/deals/:id/activity", handler.ListDealActivity)

	api.POST("/quotes", handler.CreateQuote)
	api.GET("/quotes", handler.ListQuotes)
	api.GET("/quotes/:id", handler.GetQuote)
	api.PUT("/quotes/:id", handler.UpdateQuote)
	api.PATCH("/quotes/:id/status", handler.ChangeQuoteStatus)
	api.DELETE("/quotes/:id", handler.DeleteQuote)

	api.POST("/customer-pos", handler.CreateCustomerPO)
	api.GET("/customer-pos", handler.ListCustomerPOs)
	api.GET("/customer-pos/:id", handler.GetCustomerPO)
	api.PUT("/customer-pos/:id", handler.UpdateCustomerPO)
	api.PATCH("/customer-pos/:id/status", handler.ChangeCustomerPOStatus)
	api.DELETE("/customer-pos/:id", handler.DeleteCustomerPO)

	api.GET("/activity", handler.ListActivity)

	appLogger.Info("Starting trade workflow service",
		zap.String("port", conf.Server.Port),
		zap.String("environment", conf.Server.Env))

	if err := e.Start(":" + conf.Server.Port); err != nil {
		appLogger.Fatal("Server stopped", zap.Error(err))
	}
}
