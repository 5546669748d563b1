package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	identityapp "github.com/willy-peters/SmartPOS/internal/application/identity"
	inventoryapp "github.com/willy-peters/SmartPOS/internal/application/inventory"
	reportapp "github.com/willy-peters/SmartPOS/internal/application/report"
	salesapp "github.com/willy-peters/SmartPOS/internal/application/sales"
	domsales "github.com/willy-peters/SmartPOS/internal/domain/sales"
	"github.com/willy-peters/SmartPOS/internal/infrastructure/auth"
	"github.com/willy-peters/SmartPOS/internal/infrastructure/cache"
	"github.com/willy-peters/SmartPOS/internal/infrastructure/config"
	"github.com/willy-peters/SmartPOS/internal/infrastructure/logger"
	"github.com/willy-peters/SmartPOS/internal/infrastructure/persistence"
	"github.com/willy-peters/SmartPOS/internal/interfaces/http/handler"
	"github.com/willy-peters/SmartPOS/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

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

	log.Info("Starting SmartPOS",
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

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)
	ledger := persistence.NewGormLedger(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Report cache
	var reportCache cache.ReportCache = cache.NewNoopReportCache()
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisReportCache(cfg.Redis, cfg.Report.CacheTTL)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisCache.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		reportCache = redisCache
		log.Info("Report cache enabled", zap.Duration("ttl", cfg.Report.CacheTTL))
	}

	// Services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)
	inventoryService := inventoryapp.NewInventoryService(productRepo, ledger, log)
	saleService := salesapp.NewSaleService(domsales.NewBuilder(productRepo), saleRepo, txScope, log)
	reportService := reportapp.NewReportService(reportRepo, productRepo, reportCache, cfg.Report.TopLimit, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := router.New(router.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Product: handler.NewProductHandler(inventoryService),
		Sale:    handler.NewSaleHandler(saleService),
		Report:  handler.NewReportHandler(reportService),
	}, jwtService, log)

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
