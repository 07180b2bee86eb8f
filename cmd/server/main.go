package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"foody.backend/internal/config"
	"foody.backend/internal/domain/offer"
	"foody.backend/internal/infrastructure/models"
	"foody.backend/internal/infrastructure/repositories"
	"foody.backend/internal/interfaces/http/handlers"
	"foody.backend/internal/interfaces/http/middleware"
	"foody.backend/internal/usecases"
	"foody.backend/pkg/jwt"
	"foody.backend/pkg/logger"
	"foody.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(srv *http.Server) error {
		errCh := make(chan error, 1)
		go func() { errCh <- srv.ListenAndServe() }()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case <-quit:
			log.Println("🛑 Shutting down server...")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		}
	}
	getStdDB = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	if cfg.Database.RunMigrations {
		if err := db.AutoMigrate(&models.Merchant{}, &models.MerchantApiKey{}, &models.Offer{}); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Println("✅ Migrations applied")
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiry)

	// Initialize repositories
	offerRepo := repositories.NewOfferRepository(db)
	merchantRepo := repositories.NewMerchantRepository(db)
	apiKeyRepo := repositories.NewApiKeyRepository(db)

	// Initialize usecases
	parsePolicy := offer.PolicyFromString(cfg.Offers.ParseMode)
	offerUsecase := usecases.NewOfferUsecase(offerRepo, parsePolicy, cfg.Database.Timeout)
	catalogUsecase := usecases.NewCatalogUsecase(offerRepo, cfg.Catalog.DefaultFeedLimit, cfg.Catalog.MaxFeedLimit, cfg.Database.Timeout)
	authUsecase := usecases.NewAuthUsecase(merchantRepo, apiKeyRepo, jwtService, cfg.Database.Timeout)

	// Initialize handlers
	catalogHandler := handlers.NewCatalogHandler(catalogUsecase)
	offerHandler := handlers.NewOfferHandler(offerUsecase, catalogUsecase)
	merchantHandler := handlers.NewMerchantHandler(authUsecase)
	authHandler := handlers.NewAuthHandler(authUsecase)

	merchantAuth := middleware.MerchantAuthMiddleware(authUsecase, jwtService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r, cfg.Server.CORSOrigins)
	registerHealthRoute(r, sqlDB)
	registerAPIV1Routes(r, routeDeps{
		catalogHandler:  catalogHandler,
		offerHandler:    offerHandler,
		merchantHandler: merchantHandler,
		authHandler:     authHandler,
		merchantAuth:    merchantAuth,
	})

	log.Println("📋 Registered Routes:")
	for _, route := range r.Routes() {
		log.Printf("   %s %s", route.Method, route.Path)
	}

	log.Printf("🚀 Foody Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	srv := &http.Server{Addr: ":" + cfg.Server.Port, Handler: r}
	if err := runServer(srv); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
