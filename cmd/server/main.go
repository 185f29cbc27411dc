package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cartapp "github.com/buildmart/backend/internal/application/cart"
	checkoutapp "github.com/buildmart/backend/internal/application/checkout"
	customerapp "github.com/buildmart/backend/internal/application/customer"
	orderapp "github.com/buildmart/backend/internal/application/order"
	"github.com/buildmart/backend/internal/infrastructure/auth"
	"github.com/buildmart/backend/internal/infrastructure/config"
	"github.com/buildmart/backend/internal/infrastructure/logger"
	"github.com/buildmart/backend/internal/infrastructure/persistence"
	"github.com/buildmart/backend/internal/interfaces/http/handler"
	"github.com/buildmart/backend/internal/interfaces/http/middleware"
	"github.com/buildmart/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//	@title			BuildMart Backend API
//	@version		1.0
//	@description	Construction-materials storefront backend: cart, checkout, and order lifecycle

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting BuildMart Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	stockRepo := persistence.NewGormStockItemRepository(db.DB)
	cartLineRepo := persistence.NewGormCartLineRepository(db.DB)
	addressRepo := persistence.NewGormAddressRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	auditRepo := persistence.NewGormAuditRepository(db.DB)

	// Transaction scopes
	checkoutScope := persistence.NewGormCheckoutTransactionScope(db.DB)
	orderScope := persistence.NewGormOrderTransactionScope(db.DB)

	// Initialize application services
	cartService := cartapp.NewService(cartLineRepo, productRepo, stockRepo, log)
	addressService := customerapp.NewAddressService(addressRepo, log)
	checkoutService := checkoutapp.NewService(
		checkoutScope, productRepo, addressRepo, cfg.Checkout.PaymentDueWindow, log,
	)
	orderService := orderapp.NewService(orderScope, orderRepo, auditRepo, log)

	// JWT service
	jwtService := auth.NewJWTService(cfg.JWT)

	// Initialize HTTP handlers
	cartHandler := handler.NewCartHandler(cartService)
	addressHandler := handler.NewAddressHandler(addressService)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)
	orderHandler := handler.NewOrderHandler(orderService)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Report JSON field names in binding errors
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	// JWT authentication for API routes
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/ping",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Cart domain
	cartRoutes := router.NewDomainGroup("cart", "/cart")
	cartRoutes.GET("", cartHandler.List)
	cartRoutes.PUT("/lines", cartHandler.UpsertLine)
	cartRoutes.DELETE("/lines/:productId", cartHandler.RemoveLine)

	// Address book
	addressRoutes := router.NewDomainGroup("addresses", "/addresses")
	addressRoutes.GET("", addressHandler.List)
	addressRoutes.GET("/default", addressHandler.GetDefault)
	addressRoutes.POST("", addressHandler.Add)
	addressRoutes.PUT("/:id", addressHandler.Update)
	addressRoutes.DELETE("/:id", addressHandler.Delete)

	// Checkout
	checkoutRoutes := router.NewDomainGroup("checkout", "/checkout")
	checkoutRoutes.POST("", checkoutHandler.Checkout)

	// Customer order routes
	orderRoutes := router.NewDomainGroup("orders", "/orders")
	orderRoutes.GET("", orderHandler.List)
	orderRoutes.GET("/:id", orderHandler.Get)
	orderRoutes.POST("/:id/payment-slip", orderHandler.AttachSlip)
	orderRoutes.POST("/:id/confirm-receipt", orderHandler.ConfirmReceipt)
	orderRoutes.POST("/:id/cancel", orderHandler.Cancel)

	// Admin order routes, guarded by the role middleware
	adminRoutes := router.NewDomainGroup("admin", "/admin")
	adminRoutes.Use(middleware.RequireAdmin())
	adminRoutes.GET("/orders", orderHandler.AdminList)
	adminRoutes.GET("/orders/summary", orderHandler.AdminStatusSummary)
	adminRoutes.GET("/orders/:id", orderHandler.AdminGet)
	adminRoutes.POST("/orders/:id/payment/accept", orderHandler.AcceptPayment)
	adminRoutes.POST("/orders/:id/payment/reject", orderHandler.RejectPayment)
	adminRoutes.POST("/orders/:id/prepare", orderHandler.StartPreparing)
	adminRoutes.POST("/orders/:id/ship", orderHandler.Ship)
	adminRoutes.POST("/orders/:id/deliver", orderHandler.MarkDelivered)
	adminRoutes.POST("/orders/:id/cancel", orderHandler.Cancel)
	adminRoutes.POST("/orders/:id/refund/confirm", orderHandler.ConfirmRefund)
	adminRoutes.POST("/orders/:id/cancel-request/resolve", orderHandler.ResolveCancel)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	// Register all domain groups
	r.Register(cartRoutes).
		Register(addressRoutes).
		Register(checkoutRoutes).
		Register(orderRoutes).
		Register(adminRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
