package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"paylance.backend/internal/config"
	"paylance.backend/internal/infrastructure/jobs"
	"paylance.backend/internal/infrastructure/payman"
	"paylance.backend/internal/infrastructure/repositories"
	"paylance.backend/internal/interfaces/http/handlers"
	"paylance.backend/internal/interfaces/http/middleware"
	"paylance.backend/internal/usecases"
	"paylance.backend/pkg/logger"
	"paylance.backend/pkg/redis"
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
		}), &gorm.Config{})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func providerFactory(cfg *config.Config) payman.Factory {
	if cfg.Payman.UseMock {
		return func(apiKey string) (payman.Provider, error) {
			return payman.NewMock(apiKey,
				payman.WithSettleDelay(cfg.Payman.SettleDelay),
				payman.WithSuccessRate(cfg.Payman.SuccessRate),
			)
		}
	}
	return func(apiKey string) (payman.Provider, error) {
		return payman.NewClient(apiKey, cfg.Payman.BaseURL)
	}
}

func runMainProcess() error {
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

	// Initialize repositories
	contractorRepo := repositories.NewContractorRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)

	// Initialize the provider source; the credential comes from the
	// environment, a previously stored key, or a later settings call.
	source := payman.NewSource(providerFactory(cfg))

	// Initialize usecases
	contractorUsecase := usecases.NewContractorUsecase(contractorRepo)
	paymentUsecase := usecases.NewPaymentUsecase(paymentRepo, contractorRepo, source)
	bulkPayUsecase := usecases.NewBulkPayUsecase(paymentRepo, source)
	settingsUsecase := usecases.NewSettingsUsecase(source)

	if cfg.Payman.APIKey != "" {
		if err := settingsUsecase.ConfigureAPIKey(context.Background(), cfg.Payman.APIKey); err != nil {
			return fmt.Errorf("failed to configure provider from environment: %w", err)
		}
	} else if err := settingsUsecase.RestoreAPIKey(context.Background()); err != nil {
		logger.Warn(context.Background(), "Failed to restore stored API key", zap.Error(err))
	}

	// Initialize handlers
	contractorHandler := handlers.NewContractorHandler(contractorUsecase)
	paymentHandler := handlers.NewPaymentHandler(paymentUsecase)
	bulkPayHandler := handlers.NewBulkPayHandler(bulkPayUsecase)
	settingsHandler := handlers.NewSettingsHandler(settingsUsecase)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	settlementJob := jobs.NewPaymentSettlementJob(source, paymentRepo, contractorRepo, cfg.Payman.SettleInterval)
	go settlementJob.Start(ctx)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		contractorHandler: contractorHandler,
		paymentHandler:    paymentHandler,
		bulkPayHandler:    bulkPayHandler,
		settingsHandler:   settingsHandler,
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		settlementJob.Stop()
		cancel()
	}()

	log.Printf("🚀 Paylance Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
