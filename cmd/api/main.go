package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizgame-api/internal/config"
	"github.com/yourusername/quizgame-api/internal/handler"
	"github.com/yourusername/quizgame-api/internal/middleware"
	pgRepo "github.com/yourusername/quizgame-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/quizgame-api/internal/repository/redis"
	"github.com/yourusername/quizgame-api/internal/service"
	"github.com/yourusername/quizgame-api/internal/service/gamesession"
	ws "github.com/yourusername/quizgame-api/internal/websocket"
	"github.com/yourusername/quizgame-api/pkg/ai"
	"github.com/yourusername/quizgame-api/pkg/auth"
	"github.com/yourusername/quizgame-api/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	userRepo := pgRepo.NewUserRepo(db)
	themeRepo := pgRepo.NewThemeRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	recordRepo := pgRepo.NewRecordRepo(db)
	sectionRepo := pgRepo.NewSectionProgressRepo(db)
	trainRepo := pgRepo.NewTrainProgressRepo(db)
	errorRepo := pgRepo.NewErrorRepo(db)
	favoriteRepo := pgRepo.NewFavoriteRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// Инициализируем JWT сервис
	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	// Инициализируем AI-проверку свободных ответов (опционально)
	var aiChecker gamesession.AIChecker
	if cfg.AI.APIKey != "" {
		aiClient, err := ai.New(ai.Config{
			APIKey:     cfg.AI.APIKey,
			BaseURL:    cfg.AI.BaseURL,
			ModelName:  cfg.AI.ModelName,
			Timeout:    cfg.AI.Timeout,
			MaxRetries: cfg.AI.MaxRetries,
		})
		if err != nil {
			log.Printf("Failed to initialize AI client: %v", err)
			os.Exit(1)
		}
		aiChecker = aiClient
	} else {
		log.Println("AI_API_KEY не задан, вопросы типа ai_enter проверяться не будут")
	}

	// Инициализация WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// Инициализируем сервисы
	gameConfig := &gamesession.Config{
		StartLives:       cfg.Game.StartLives,
		SortByComplexity: cfg.Game.SortByComplexity,
	}
	evaluators := gamesession.NewRegistry(aiChecker)

	authService := service.NewAuthService(userRepo, jwtService)
	gameService := service.NewGameService(
		questionRepo, recordRepo, sectionRepo, trainRepo, errorRepo, favoriteRepo,
		cacheRepo, evaluators, wsHub, gameConfig,
	)
	progressService := service.NewProgressService(
		themeRepo, questionRepo, sectionRepo, trainRepo, errorRepo, favoriteRepo,
		recordRepo, cacheRepo,
	)

	var reportService service.ReportService
	if cfg.Email.ResendAPIKey != "" {
		reportService, err = service.NewResendReportService(
			cfg.Email.ResendAPIKey, cfg.Email.FromAddress, cfg.Email.ToAddress, questionRepo,
		)
		if err != nil {
			log.Printf("Failed to initialize ReportService: %v", err)
			os.Exit(1)
		}
	} else {
		log.Println("RESEND_API_KEY не задан, жалобы на вопросы будут только логироваться")
		reportService = &service.NoopReportService{}
	}

	// Инициализируем обработчики
	authHandler := handler.NewAuthHandler(authService)
	gameHandler := handler.NewGameHandler(gameService)
	questionHandler := handler.NewQuestionHandler(progressService, reportService)
	wsHandler := handler.NewWSHandler(wsHub, jwtService)

	// Инициализируем middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	// Инициализируем роутер Gin
	router := gin.Default()

	isProduction := gin.Mode() == gin.ReleaseMode
	if isProduction {
		// Production: не доверять прокси-заголовкам
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		// Аутентификация
		authGroup := api.Group("/auth")
		authGroup.Use(rateLimiter.Limit(middleware.StrictAuthRateLimitConfig()))
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		// Игровая сессия
		game := api.Group("/game")
		game.Use(authMiddleware.RequireAuth())
		{
			game.POST("/start", gameHandler.StartGame)
			game.POST("/next", gameHandler.NextQuestion)
			game.POST("/answer", gameHandler.Answer)
			game.POST("/reward", gameHandler.EarnReward)
			game.POST("/finish", gameHandler.FinishGame)
			game.POST("/abandon", gameHandler.AbandonGame)
		}

		// Темы, прогресс и рекорды
		themes := api.Group("/themes")
		themes.Use(authMiddleware.RequireAuth())
		{
			themes.GET("", questionHandler.Themes)
			themes.GET("/:themeID/sections", questionHandler.Sections)
		}

		authed := api.Group("")
		authed.Use(authMiddleware.RequireAuth())
		{
			authed.GET("/records", questionHandler.Records)

			authed.GET("/errors", questionHandler.Errors)
			authed.DELETE("/errors/:questionID", questionHandler.RemoveError)

			authed.GET("/favorites", questionHandler.Favorites)
			authed.POST("/favorites/:questionID", questionHandler.AddFavorite)
			authed.DELETE("/favorites/:questionID", questionHandler.RemoveFavorite)

			authed.POST("/report", questionHandler.Report)
		}
	}

	// WebSocket маршрут
	router.GET("/ws", wsHandler.Connect)

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	wsHub.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Server exited properly")
}
