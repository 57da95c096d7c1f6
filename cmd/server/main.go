package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	orderapp "github.com/frameshop/backend/internal/application/order"
	quoteapp "github.com/frameshop/backend/internal/application/quote"
	supplyapp "github.com/frameshop/backend/internal/application/supply"
	"github.com/frameshop/backend/internal/domain/quote"
	"github.com/frameshop/backend/internal/infrastructure/cache"
	"github.com/frameshop/backend/internal/infrastructure/config"
	"github.com/frameshop/backend/internal/infrastructure/logger"
	"github.com/frameshop/backend/internal/infrastructure/persistence"
	"github.com/frameshop/backend/internal/interfaces/http/handler"
	"github.com/frameshop/backend/internal/interfaces/http/middleware"
	"github.com/frameshop/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(cfg.Log)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Frameshop Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Supply reads go through a cache; quotes hit FindByIDForStore for
	// every selected supply of every calculation.
	supplyCache := cache.NewSupplyCache(cfg.Cache, cfg.Redis, log)
	defer func() {
		if err := supplyCache.Close(); err != nil {
			log.Error("Error closing supply cache", zap.Error(err))
		}
	}()

	supplyRepo := cache.NewCachedSupplyRepository(
		persistence.NewGormSupplyRepository(db.DB),
		supplyCache,
		cfg.Cache.TTL,
		log,
	)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	orderNumbers := persistence.NewOrderNumberSequence(db.DB)

	calculator := quote.NewCalculator(
		quote.WithDefaultMarkup(decimal.NewFromFloat(cfg.Quoting.DefaultMarkup)),
		quote.WithRetailPriceFallback(cfg.Quoting.RetailPriceFallback),
	)

	quoteService := quoteapp.NewService(supplyRepo, calculator, log)
	supplyService := supplyapp.NewService(supplyRepo)
	orderService := orderapp.NewService(orderRepo, orderNumbers, quoteService, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	handler.RegisterValidations()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	quoteHandler := handler.NewQuoteHandler(quoteService)
	supplyHandler := handler.NewSupplyHandler(supplyService)
	orderHandler := handler.NewOrderHandler(orderService)
	systemHandler := handler.NewSystemHandler(db)

	quoteRoutes := router.NewDomainGroup("quotes", "/quotes")
	quoteRoutes.POST("/calculate", quoteHandler.Calculate)

	supplyRoutes := router.NewDomainGroup("supplies", "/supplies")
	supplyRoutes.POST("", supplyHandler.Create)
	supplyRoutes.GET("", supplyHandler.List)
	supplyRoutes.GET("/:id", supplyHandler.GetByID)
	supplyRoutes.GET("/code/:code", supplyHandler.GetByCode)
	supplyRoutes.PUT("/:id", supplyHandler.Update)
	supplyRoutes.POST("/:id/activate", supplyHandler.Activate)
	supplyRoutes.POST("/:id/deactivate", supplyHandler.Deactivate)
	supplyRoutes.DELETE("/:id", supplyHandler.Delete)

	orderRoutes := router.NewDomainGroup("orders", "/orders")
	orderRoutes.POST("", orderHandler.Create)
	orderRoutes.GET("", orderHandler.List)
	orderRoutes.GET("/:id", orderHandler.GetByID)
	orderRoutes.GET("/number/:number", orderHandler.GetByNumber)
	orderRoutes.PUT("/:id", orderHandler.Update)
	orderRoutes.POST("/:id/approve", orderHandler.Approve)
	orderRoutes.POST("/:id/send-to-production", orderHandler.SendToProduction)
	orderRoutes.POST("/:id/cancel", orderHandler.Cancel)
	orderRoutes.DELETE("/:id", orderHandler.Delete)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)
	systemRoutes.GET("/health", systemHandler.Health)

	router.NewRouter(engine).
		Register(quoteRoutes).
		Register(supplyRoutes).
		Register(orderRoutes).
		Register(systemRoutes).
		Setup()

	// bare liveness probe outside the versioned API
	engine.GET("/healthz", systemHandler.Health)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
