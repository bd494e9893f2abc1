package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	financeapp "github.com/garagehub/backend/internal/application/finance"
	garageapp "github.com/garagehub/backend/internal/application/garage"
	identityapp "github.com/garagehub/backend/internal/application/identity"
	inventoryapp "github.com/garagehub/backend/internal/application/inventory"
	"github.com/garagehub/backend/internal/infrastructure/auth"
	"github.com/garagehub/backend/internal/infrastructure/config"
	"github.com/garagehub/backend/internal/infrastructure/logger"
	"github.com/garagehub/backend/internal/infrastructure/persistence"
	"github.com/garagehub/backend/internal/infrastructure/persistence/tenantdb"
	"github.com/garagehub/backend/internal/interfaces/http/handler"
	"github.com/garagehub/backend/internal/interfaces/http/middleware"
	"github.com/garagehub/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting GarageHub Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Tenant connection registry. Connections are opened lazily on the
	// first request for each tenant domain.
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	registry := tenantdb.NewRegistry(tenantdb.PostgresOpener(cfg.Database, gormLog), cfg.Database.DBPrefix, log)
	defer func() {
		if err := registry.CloseAll(); err != nil {
			log.Error("Error closing tenant connections", zap.Error(err))
		}
	}()

	stores := persistence.NewTenantStores(registry)

	// Token blacklist: Redis when enabled, otherwise the password_changed_at
	// check in the database is the only revocation mechanism.
	var blacklist auth.TokenBlacklist = auth.NoopTokenBlacklist{}
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing redis client", zap.Error(err))
			}
		}()
		blacklist = auth.NewRedisTokenBlacklist(redisClient, cfg.JWT.RefreshTokenExpiration)
		log.Info("Redis token blacklist enabled", zap.String("addr", cfg.Redis.Addr()))
	}

	jwtService := auth.NewJWTService(cfg.JWT)
	hasher := auth.NewPasswordHasher()

	// Application services
	authService := identityapp.NewAuthService(stores, jwtService, hasher, blacklist, log)
	userService := identityapp.NewUserService(stores, hasher, log)
	roleService := identityapp.NewRoleService(stores, log)
	pageService := identityapp.NewPageService(stores, log)
	permissionService := identityapp.NewPermissionService(stores, log)
	expenseCategoryService := financeapp.NewExpenseCategoryService(stores, log)
	expenseService := financeapp.NewExpenseService(stores, log)
	incomeService := financeapp.NewIncomeService(stores, log)
	productService := inventoryapp.NewProductService(stores, log)
	warehouseService := inventoryapp.NewWarehouseService(stores, log)
	stockService := inventoryapp.NewStockService(stores, log)
	customerService := garageapp.NewCustomerService(stores, log)
	vehicleService := garageapp.NewVehicleService(stores, log)
	warrantyService := garageapp.NewWarrantyService(stores, stores, log)

	// HTTP handlers
	handlers := router.Handlers{
		System:          handler.NewSystemHandler(),
		Auth:            handler.NewAuthHandler(authService),
		User:            handler.NewUserHandler(userService),
		Role:            handler.NewRoleHandler(roleService),
		Page:            handler.NewPageHandler(pageService),
		Permission:      handler.NewPermissionHandler(permissionService),
		ExpenseCategory: handler.NewExpenseCategoryHandler(expenseCategoryService),
		Expense:         handler.NewExpenseHandler(expenseService),
		Income:          handler.NewIncomeHandler(incomeService),
		Product:         handler.NewProductHandler(productService),
		Warehouse:       handler.NewWarehouseHandler(warehouseService),
		Stock:           handler.NewStockHandler(stockService),
		Customer:        handler.NewCustomerHandler(customerService),
		Vehicle:         handler.NewVehicleHandler(vehicleService),
		Warranty:        handler.NewWarrantyHandler(warrantyService),
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORS(cfg.HTTP.CORSAllowOrigins))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(registry))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(router.Registrars(handlers, authService, permissionService)...)
	r.Setup()

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
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}

// healthHandler reports process liveness and the tenant connections
// currently open
func healthHandler(registry *tenantdb.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":         "ok",
			"open_tenants":   len(registry.Domains()),
			"tenant_domains": registry.Domains(),
		})
	}
}
