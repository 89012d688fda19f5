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

	"monkframe.backend/internal/config"
	"monkframe.backend/internal/infrastructure/jobs"
	"monkframe.backend/internal/infrastructure/mail"
	"monkframe.backend/internal/infrastructure/repositories"
	"monkframe.backend/internal/interfaces/http/handlers"
	"monkframe.backend/internal/interfaces/http/middleware"
	"monkframe.backend/internal/interfaces/ws"
	"monkframe.backend/internal/usecases"
	"monkframe.backend/pkg/jwt"
	"monkframe.backend/pkg/logger"
	"monkframe.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	openRedis  = redis.New
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	newSessionStore = redis.NewSessionStore
	runServer       = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB        = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
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
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	for _, warning := range cfg.Warnings() {
		logger.Warn(context.Background(), warning)
	}

	redisClient, err := openRedis(cfg.Redis.URL(), cfg.Redis.Password)
	if err != nil {
		logger.Error(context.Background(), "Failed to connect to Redis", zap.Error(err))
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	defer redisClient.Close()
	logger.Info(context.Background(), "Redis connected")

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

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	otpRepo := repositories.NewOtpRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	assetRepo := repositories.NewAssetRepository(db)
	interactionRepo := repositories.NewInteractionRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)

	sessionStore, err := newSessionStore(redisClient, cfg.Security.SessionEncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}
	throttle := redis.NewThrottle(redisClient)

	mailer := mail.NewMailer(cfg)

	// Socket hub carries real-time fan-out
	hub := ws.NewHub()
	defer hub.Close()

	// Initialize usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, otpRepo, mailer, throttle, jwtService)
	notificationUsecase := usecases.NewNotificationUsecase(notificationRepo, hub)
	assetUsecase := usecases.NewAssetUsecase(assetRepo, interactionRepo, paymentRepo, notificationUsecase, hub)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authUsecase, sessionStore)
	notificationHandler := handlers.NewNotificationHandler(notificationUsecase)
	assetHandler := handlers.NewAssetHandler(assetUsecase)
	adminHandler := handlers.NewAdminHandler(userRepo, paymentRepo)
	socketHandler := ws.NewHandler(hub, jwtService)

	authMiddleware := middleware.AuthMiddleware(jwtService)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	purgeJob := jobs.NewOtpPurgeJob(otpRepo)
	go purgeJob.Start(ctx)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:         authHandler,
		notificationHandler: notificationHandler,
		assetHandler:        assetHandler,
		adminHandler:        adminHandler,
		socketHandler:       socketHandler,
		authMiddleware:      authMiddleware,
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		purgeJob.Stop()
		hub.Close()
		cancel()
	}()

	log.Printf("🚀 Monkframe Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("🔌 Socket: ws://localhost:%s/ws", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
