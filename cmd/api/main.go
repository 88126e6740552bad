// @title TechCom API
// @version 1.0
// @description HR, recruitment and training backend.
// @host localhost:8080
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "techcom/cmd/api/docs"
	"techcom/internal/adapter"
	"techcom/internal/cache"
	"techcom/internal/config"
	"techcom/internal/database"
	"techcom/internal/domain"
	"techcom/internal/handler"
	"techcom/internal/logger"
	"techcom/internal/middleware"
	"techcom/internal/repository"
	"techcom/internal/service"
	"techcom/internal/storage"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	db, err := database.NewSQLXMySQLDB(cfg)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Redis is optional; without it reads go straight to MySQL.
	var resultCache domain.Cache
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Warn("Redis unavailable, running without read cache", zap.Error(err))
	} else {
		defer redisClient.Close()
		resultCache = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("Successfully connected to Redis")
	}

	fileStorage, err := storage.NewLocalStorage(cfg.Upload)
	if err != nil {
		appLogger.Fatal("Failed to prepare upload directory", zap.Error(err))
	}

	// Initialize repositories
	txManager := repository.NewTransactionManagerAdapter(db)
	userRepository := repository.NewSQLXUserRepository(db)
	tagRepository := repository.NewTagRepository(db)
	materialRepository := repository.NewMaterialRepository(db)
	quizRepository := repository.NewQuizRepository(db)
	questionRepository := repository.NewQuestionRepository(db)
	quizQuestionRepository := repository.NewQuizQuestionRepository(db)
	jobRepository := repository.NewJobDescriptionRepository(db)
	candidateRepository := repository.NewCandidateRepository(db)
	employeeRepository := repository.NewEmployeeRepository(db)

	// Initialize services
	results := service.NewResultCacheService(resultCache, cfg.Cache.TTL)

	authService, err := service.NewAuthService(userRepository, cfg)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}

	handlers := handler.Handlers{
		Auth:  handler.NewAuthHandler(authService),
		Users: handler.NewUserHandler(service.NewUserService(userRepository)),
		Tags: handler.NewTagHandler(service.NewTagService(
			tagRepository, materialRepository, quizRepository, txManager, results)),
		Materials: handler.NewMaterialHandler(service.NewMaterialService(
			materialRepository, quizRepository, tagRepository, fileStorage, txManager, results)),
		Quizzes: handler.NewQuizHandler(service.NewQuizService(
			quizRepository, tagRepository, txManager, results)),
		Questions: handler.NewQuestionHandler(service.NewQuestionService(
			questionRepository, quizQuestionRepository, txManager, results)),
		Composition: handler.NewCompositionHandler(service.NewCompositionService(
			quizRepository, questionRepository, quizQuestionRepository, tagRepository, txManager, results)),
		JobDescription: handler.NewJobDescriptionHandler(service.NewJobDescriptionService(jobRepository)),
		Candidates:     handler.NewCandidateHandler(service.NewCandidateService(candidateRepository, jobRepository)),
		Employees:      handler.NewEmployeeHandler(service.NewEmployeeService(employeeRepository, userRepository)),
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    cfg.Server.BodyLimitMB * 1024 * 1024,
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestLogger())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
		MaxAge:       300,
	}))
	app.Use(compress.New())
	if cfg.Server.RateLimit > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.Server.RateLimit,
			Expiration: time.Minute,
		}))
	}

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	handler.RegisterRoutes(app.Group("/api"), authService, handlers)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
