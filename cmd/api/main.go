// @title Quiz Prep API
// @version 1.0
// @description Quiz attempt tracking, study progress and tier limits for the citizenship test study guide.
// @host localhost:8090
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

	"quiz-prep/internal/adapter"
	"quiz-prep/internal/adapter/quizgen"
	"quiz-prep/internal/cache"
	"quiz-prep/internal/config"
	"quiz-prep/internal/database"
	"quiz-prep/internal/domain"
	"quiz-prep/internal/handler"
	"quiz-prep/internal/logger"
	"quiz-prep/internal/middleware"
	"quiz-prep/internal/repository"
	"quiz-prep/internal/service"
	"quiz-prep/internal/validation"

	_ "quiz-prep/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	db, err := database.NewSQLXOracleDB(startupCtx, cfg.DB, cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Redis is optional; statistics fall back to direct reads without it.
	var cacheAdapter domain.Cache
	redisClient, err := cache.NewRedisClient(startupCtx, cfg.Redis)
	if err != nil {
		appLogger.Warn("Redis unavailable, statistics cache disabled", zap.Error(err))
	} else {
		defer redisClient.Close()
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("Successfully connected to Redis")
	}

	// Initialize repositories
	txManager := repository.NewTransactionManagerAdapter(db)
	userRepository := repository.NewSQLXUserRepository(db)
	chapterRepository := repository.NewSQLXChapterRepository(db)
	flashcardRepository := repository.NewSQLXFlashcardRepository(db)
	attemptRepository := repository.NewSQLXQuizAttemptRepository(db)
	questionAttemptRepository := repository.NewSQLXQuestionAttemptRepository(db)
	progressRepository := repository.NewSQLXUserProgressRepository(db)
	sessionRepository := repository.NewSQLXStudySessionRepository(db)
	paymentRepository := repository.NewSQLXPaymentRepository(db)

	catalog, err := service.LoadChapterCatalog(startupCtx, chapterRepository)
	if err != nil {
		appLogger.Fatal("Failed to load chapter catalog", zap.Error(err))
	}
	appLogger.Info("Chapter catalog loaded", zap.Int("chapters", len(catalog.List())))

	// Initialize services
	authService, err := service.NewAuthService(cfg.JWT)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	userService := service.NewUserService(userRepository, paymentRepository)
	aggregator := service.NewProgressAggregator(attemptRepository, progressRepository, sessionRepository)
	statsService := service.NewStatsService(aggregator, cacheAdapter, cfg.CacheTTLs.Stats)
	tierGate := service.NewTierGate(attemptRepository, paymentRepository, cfg.Tiers)
	tracker := service.NewAttemptTracker(
		txManager,
		userRepository,
		attemptRepository,
		questionAttemptRepository,
		sessionRepository,
		aggregator,
		tierGate,
		statsService,
		catalog,
	)

	validator := validation.NewValidator()

	var quizHandler *handler.QuizHandler
	generator, err := quizgen.NewLLMQuestionGenerator(cfg.LLM)
	if err != nil {
		appLogger.Warn("LLM question generator disabled", zap.Error(err))
	} else {
		quizHandler = handler.NewQuizHandler(service.NewQuizGenerationService(flashcardRepository, generator, catalog), validator)
	}

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(db, cacheAdapter)
	chapterHandler := handler.NewChapterHandler(catalog)
	userHandler := handler.NewUserHandler(userService, statsService, aggregator, tierGate)
	attemptHandler := handler.NewAttemptHandler(tracker, validator)
	flashcardHandler := handler.NewFlashcardHandler(service.NewFlashcardService(txManager, flashcardRepository, catalog), validator)
	validationMiddleware := middleware.NewValidationMiddleware()

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)

	apiGroup := app.Group("/api")
	apiGroup.Get("/health", healthHandler.Health)
	apiGroup.Get("/chapters", chapterHandler.ListChapters)

	protected := middleware.Protected(authService, userService)

	apiGroup.Get("/flashcards", flashcardHandler.ListFlashcards)
	apiGroup.Get("/flashcards/:id", flashcardHandler.GetFlashcard)
	apiGroup.Post("/flashcards", protected, flashcardHandler.CreateFlashcard)
	apiGroup.Post("/flashcards/import", protected, flashcardHandler.ImportFlashcards)

	userGroup := apiGroup.Group("/users", protected)
	userGroup.Get("/me", userHandler.GetMyProfile)
	userGroup.Get("/me/stats", userHandler.GetMyStatistics)
	userGroup.Get("/me/chapter-progress", userHandler.GetMyChapterProgress)
	userGroup.Get("/me/quiz-limit", userHandler.GetMyQuizLimit)

	attemptGroup := apiGroup.Group("/quiz-attempts", protected)
	attemptGroup.Post("/", attemptHandler.StartAttempt)
	attemptGroup.Get("/:id", validationMiddleware.ValidateAttemptID(), attemptHandler.GetAttempt)
	attemptGroup.Post("/:id/answers", validationMiddleware.ValidateAttemptID(), attemptHandler.RecordAnswer)
	attemptGroup.Post("/:id/complete", validationMiddleware.ValidateAttemptID(), attemptHandler.CompleteAttempt)

	if quizHandler != nil {
		apiGroup.Post("/quizzes/generate", protected, quizHandler.GenerateQuiz)
	}

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
