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

	"aqua-maker.backend/internal/chains"
	"aqua-maker.backend/internal/config"
	"aqua-maker.backend/internal/infrastructure/blockchain"
	"aqua-maker.backend/internal/infrastructure/repositories"
	"aqua-maker.backend/internal/infrastructure/signing"
	"aqua-maker.backend/internal/infrastructure/upstream"
	"aqua-maker.backend/internal/interfaces/http/handlers"
	"aqua-maker.backend/internal/usecases"
	"aqua-maker.backend/pkg/logger"
	"aqua-maker.backend/pkg/redis"
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
	loadChains = chains.Load
	getStdDB   = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
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
	defer redis.Close()
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("database not available: %v (endpoints will return errors)", err)
	}

	registry, err := loadChains(cfg.Quoting.ChainsFile, cfg.Upstream.PricingURL, cfg.Upstream.StrategyURL)
	if err != nil {
		return fmt.Errorf("failed to load chains config: %w", err)
	}
	logger.Info(context.Background(), "Chains loaded", zap.Int("count", len(registry.List())))

	// Repositories
	tokenRepo := repositories.NewTokenRepository(db)
	pairRepo := repositories.NewPairRepository(db)
	strategyRepo := repositories.NewStrategyRepository(db)
	chainStateRepo := repositories.NewChainStateRepository(db)
	nonceRepo := repositories.NewNonceRepository(db)
	quoteRepo := repositories.NewQuoteRepository(db)

	// Infrastructure
	clientFactory := blockchain.NewClientFactory()
	pricingClient := upstream.NewPricingClient(cfg.Upstream.RequestTimeout)
	strategyClient := upstream.NewStrategyClient(cfg.Upstream.RequestTimeout)
	signers := signing.NewSignerCache()

	// Usecases
	tokenResolver := usecases.NewTokenResolver(tokenRepo, registry, clientFactory)
	adminUsecase := usecases.NewAdminUsecase(registry, pairRepo, strategyRepo, chainStateRepo)
	quoteUsecase := usecases.NewQuoteUsecase(
		registry, chainStateRepo, strategyRepo, pairRepo, quoteRepo, nonceRepo,
		tokenResolver, pricingClient, strategyClient, signers,
		time.Duration(cfg.Quoting.DefaultExpirySecs)*time.Second,
	)

	// Handlers
	quoteHandler := handlers.NewQuoteHandler(quoteUsecase)
	chainHandler := handlers.NewChainHandler(registry, quoteUsecase)
	adminHandler := handlers.NewAdminHandler(adminUsecase, tokenResolver)

	r := gin.New()
	registerAPIV1Routes(r, routeDeps{
		quoteHandler: quoteHandler,
		chainHandler: chainHandler,
		adminHandler: adminHandler,
		cfg:          cfg,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(context.Background(), "Server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		logger.Info(context.Background(), "Shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	logger.Info(context.Background(), "Server stopped")
	return nil
}
