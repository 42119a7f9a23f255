package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stock-impact-scanner/internal/server/config"
	delivery "stock-impact-scanner/internal/server/delivery/http"
	_ "stock-impact-scanner/internal/server/docs"
	"stock-impact-scanner/internal/server/dto"
	"stock-impact-scanner/internal/server/repository"
	"stock-impact-scanner/internal/server/service"
	"stock-impact-scanner/pkg/logger"
	"stock-impact-scanner/pkg/postgres"
	"stock-impact-scanner/pkg/redis"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the stock news API service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting API service", logger.Field("name", cfg.App.Name))

	// Initialize database. Connectivity failures are logged, not fatal: the
	// process stays up in degraded mode for diagnosis.
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		TimeZone:        cfg.Database.TimeZone,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := db.Ping(); err != nil {
		appLogger.Error("Database unreachable, continuing in degraded mode", logger.ErrorField(err))
	}

	// Redis is optional; without it the headlines proxy skips caching.
	var redisConn *goredis.Client
	redisClient, err := redis.NewClient(redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		appLogger.Error("Redis unreachable, headlines caching disabled", logger.ErrorField(err))
	} else {
		redisConn = redisClient.Client
		defer redisClient.Close()
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.DB)
	stockRepo := repository.NewStockRepository(db.DB)
	newsRepo := repository.NewNewsRepository(db.DB)
	impactRepo := repository.NewStockImpactRepository(db.DB)
	postRepo := repository.NewForumPostRepository(db.DB)
	commentRepo := repository.NewCommentRepository(db.DB)
	ingestRunRepo := repository.NewIngestRunRepository(db.DB)
	newsAPIRepo := repository.NewNewsAPIRepository(cfg, appLogger)

	// Initialize services
	tokenTTL, err := time.ParseDuration(cfg.Auth.TokenTTL)
	if err != nil && cfg.Auth.TokenTTL != "" {
		appLogger.Fatal("Invalid token TTL", logger.ErrorField(err))
	}
	authSvc := service.NewAuthService(userRepo, service.AuthConfig{
		SecretKey:  cfg.Auth.SecretKey,
		TokenTTL:   tokenTTL,
		BcryptCost: cfg.Auth.BcryptCost,
	}, appLogger)
	userSvc := service.NewUserService(userRepo, stockRepo, appLogger)
	newsSvc := service.NewNewsService(newsRepo, impactRepo, appLogger)
	stockSvc := service.NewStockService(stockRepo, newsRepo, appLogger)
	forumSvc := service.NewForumService(postRepo, commentRepo, appLogger)
	analyzer := service.NewImpactAnalyzer()

	cacheTTL, _ := time.ParseDuration(cfg.NewsAPI.CacheTTL)
	headlinesSvc := service.NewHeadlinesService(newsAPIRepo, redisConn, cfg.NewsAPI.APIKey, cacheTTL, appLogger)

	// Seed mock data; a failure leaves empty collections but does not stop
	// startup.
	seeder := service.NewSeeder(db.DB, stockRepo, newsRepo, impactRepo, userRepo, postRepo, commentRepo, analyzer, appLogger)
	if err := seeder.Seed(ctx); err != nil {
		appLogger.Error("Database seeding failed, continuing in degraded mode", logger.ErrorField(err))
	}

	// Optional RSS ingest
	if cfg.Ingest.Enabled {
		ingestSvc := service.NewNewsIngestService(service.IngestConfig{
			Schedule: cfg.Ingest.Schedule,
			Feeds:    cfg.Ingest.Feeds,
			MaxItems: cfg.Ingest.MaxItems,
		}, stockRepo, newsRepo, impactRepo, ingestRunRepo, analyzer, appLogger)
		if err := ingestSvc.Start(ctx); err != nil {
			appLogger.Error("Failed to start news ingest", logger.ErrorField(err))
		}
	}

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	api := e.Group("/api")
	api.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Welcome to the Stock Impact News Scanner API"})
	})

	authMiddleware := delivery.BearerAuth(authSvc)
	delivery.NewUserHandler(authSvc, userSvc, appLogger).RegisterRoutes(api, authMiddleware)
	delivery.NewNewsHandler(newsSvc, appLogger).RegisterRoutes(api)
	delivery.NewStockHandler(stockSvc, appLogger).RegisterRoutes(api)
	delivery.NewForumHandler(forumSvc, appLogger).RegisterRoutes(api, authMiddleware)
	delivery.NewHeadlinesHandler(headlinesSvc, appLogger).RegisterRoutes(api)

	e.GET("/swagger/*", swagger.WrapHandler)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop()
		}
	}()

	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

// @title Stock Impact News Scanner API
// @version 1.0
// @description REST backend for stock-news aggregation with impact annotations.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	rootCmd := &cobra.Command{Use: "api-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-api.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing api-service CLI: %s\n", err)
		os.Exit(1)
	}
}
