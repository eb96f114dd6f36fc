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

	"ace-zone.backend/internal/config"
	"ace-zone.backend/internal/infrastructure/blobstore"
	"ace-zone.backend/internal/infrastructure/jobs"
	"ace-zone.backend/internal/infrastructure/models"
	"ace-zone.backend/internal/infrastructure/repositories"
	"ace-zone.backend/internal/interfaces/http/handlers"
	"ace-zone.backend/internal/interfaces/http/middleware"
	"ace-zone.backend/internal/usecases"
	"ace-zone.backend/pkg/jwt"
	"ace-zone.backend/pkg/keylock"
	"ace-zone.backend/pkg/logger"
	"ace-zone.backend/pkg/redis"
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
	newBlobStore = func(ctx context.Context, cfg blobstore.Config) (handlers.BlobUploader, error) {
		return blobstore.New(ctx, cfg)
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
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

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis
	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
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
		if err := db.AutoMigrate(
			&models.Match{},
			&models.MatchParticipant{},
			&models.PaymentSubmission{},
			&models.User{},
		); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiry)

	// Initialize blob store
	blobs, err := newBlobStore(context.Background(), blobstore.Config{
		Endpoint:        cfg.Blob.Endpoint,
		AccessKeyID:     cfg.Blob.AccessKeyID,
		AccessKeySecret: cfg.Blob.AccessKeySecret,
		Bucket:          cfg.Blob.Bucket,
		PublicBaseURL:   cfg.Blob.PublicBaseURL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize blob store: %w", err)
	}

	// Initialize repositories
	matchRepo := repositories.NewMatchRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	userRepo := repositories.NewUserRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// One lock set shared by everything that mutates a match
	locks := keylock.New()

	// Initialize usecases
	matchUsecase := usecases.NewMatchUsecase(matchRepo, locks)
	bookingUsecase := usecases.NewBookingUsecase(matchRepo, uow, locks)
	paymentUsecase := usecases.NewPaymentUsecase(paymentRepo, matchRepo, uow, locks)
	profileUsecase := usecases.NewProfileUsecase(userRepo)
	reportUsecase := usecases.NewReportUsecase(matchRepo, paymentRepo, userRepo)

	// Initialize handlers
	matchHandler := handlers.NewMatchHandler(matchUsecase, bookingUsecase, reportUsecase)
	paymentHandler := handlers.NewPaymentHandler(paymentUsecase, reportUsecase, blobs)
	profileHandler := handlers.NewProfileHandler(profileUsecase, blobs)

	// Auth middleware resolves roles from the user store
	authMiddleware := middleware.AuthMiddleware(jwtService, profileUsecase)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	matchStartJob := jobs.NewMatchStartJob(matchRepo, locks, cfg.Scheduler.MatchStartInterval)
	if err := matchStartJob.Start(ctx); err != nil {
		return fmt.Errorf("failed to start match start job: %w", err)
	}

	// Initialize router
	middleware.InitMetrics()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		matchHandler:   matchHandler,
		paymentHandler: paymentHandler,
		profileHandler: profileHandler,
		authMiddleware: authMiddleware,
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		if err := matchStartJob.Stop(); err != nil {
			log.Printf("failed to stop match start job: %v", err)
		}
		cancel()
	}()

	// Start server
	log.Printf("🚀 Ace Zone Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
