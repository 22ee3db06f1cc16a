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

	"github.com/yourusername/consent-api/internal/config"
	"github.com/yourusername/consent-api/internal/handler"
	"github.com/yourusername/consent-api/internal/middleware"
	pgRepo "github.com/yourusername/consent-api/internal/repository/postgres"
	"github.com/yourusername/consent-api/internal/service"
	"github.com/yourusername/consent-api/pkg/auth"
	"github.com/yourusername/consent-api/pkg/database"
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

	// Основное хранилище: пользователи, термины, согласия
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}
	if err := database.MigrateDB(db, cfg.Database.MigrationsPath); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Реестр исключенных живет в отдельной базе: запись об исключении
	// должна пережить удаление строки пользователя
	excludedDB, err := database.NewPostgresDB(cfg.ExcludedDB.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to excluded-users database: %v", err)
		os.Exit(1)
	}
	if err := database.MigrateDB(excludedDB, cfg.ExcludedDB.MigrationsPath); err != nil {
		log.Printf("Failed to migrate excluded-users database: %v", err)
		os.Exit(1)
	}

	// Инициализируем репозитории
	userRepo := pgRepo.NewUserRepo(db)
	termRepo := pgRepo.NewTermRepo(db)
	userTermRepo := pgRepo.NewUserTermRepo(db)
	excludedRepo := pgRepo.NewExcludedUserRepo(excludedDB)

	// Сервис JWT
	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	// Сервисы домена
	consentService, err := service.NewConsentService(userTermRepo, termRepo)
	if err != nil {
		log.Printf("Failed to initialize ConsentService: %v", err)
		os.Exit(1)
	}

	termsService, err := service.NewTermsService(termRepo)
	if err != nil {
		log.Printf("Failed to initialize TermsService: %v", err)
		os.Exit(1)
	}

	authService, err := service.NewAuthService(userRepo, userTermRepo, excludedRepo, termRepo, consentService, jwtService)
	if err != nil {
		log.Printf("Failed to initialize AuthService: %v", err)
		os.Exit(1)
	}

	// Исходящая почта: Resend, либо noop если рассылка выключена
	var emailSender service.EmailSender = &service.NoopEmailSender{}
	if cfg.Email.Enabled {
		resendSender, errSender := service.NewResendEmailSender(cfg.Email.ResendAPIKey, cfg.Email.From)
		if errSender != nil {
			log.Printf("Failed to initialize ResendEmailSender: %v", errSender)
			os.Exit(1)
		}
		emailSender = resendSender
	}

	notificationService, err := service.NewNotificationService(userRepo, emailSender)
	if err != nil {
		log.Printf("Failed to initialize NotificationService: %v", err)
		os.Exit(1)
	}

	reportService, err := service.NewReportService(userTermRepo, userRepo)
	if err != nil {
		log.Printf("Failed to initialize ReportService: %v", err)
		os.Exit(1)
	}

	// Обработчики и middleware
	userHandler := handler.NewUserHandler(authService, notificationService)
	termsHandler := handler.NewTermsHandler(termsService, consentService, reportService)
	authMiddleware := middleware.NewAuthMiddleware(jwtService)

	// Rate limiting опционален: без Redis auth-маршруты просто не лимитируются
	var rateLimiter *middleware.RateLimiter
	if cfg.Redis.Addr != "" {
		redisClient, errRedis := database.NewRedisClient(cfg.Redis)
		if errRedis != nil {
			log.Printf("Redis недоступен, rate limiting выключен: %v", errRedis)
		} else {
			rateLimiter = middleware.NewRateLimiter(redisClient)
			log.Println("Successfully connected to Redis, rate limiting enabled")
		}
	}

	router := gin.Default()
	router.Use(cors.Default())

	// Маршруты пользователей
	users := router.Group("/users")
	{
		register := users.Group("")
		login := users.Group("")
		if rateLimiter != nil {
			strict := middleware.StrictAuthRateLimitConfig()
			register.Use(rateLimiter.Limit(strict))
			login.Use(rateLimiter.Limit(strict))
		}
		register.POST("/createUsuario", userHandler.Register)
		login.POST("/login", userHandler.Login)

		users.GET("/", userHandler.ListUsers)
		users.POST("/enviar-emails", userHandler.NotifyUsers)
		users.DELETE("/deleteUser/:id",
			middleware.ExtractUintParam("id", "userID"),
			userHandler.DeleteUser,
		)

		authed := users.Group("")
		authed.Use(authMiddleware.RequireAuth())
		{
			authed.GET("/profile", userHandler.GetProfile)
			authed.PUT("/updateUsuario", userHandler.UpdateUser)
		}
	}

	// Маршруты терминов
	terms := router.Group("/terms")
	{
		terms.GET("/pegartermos", termsHandler.GetActiveLatest)
		terms.POST("/cadastrartermos", termsHandler.PublishBatch)

		authedTerms := terms.Group("")
		authedTerms.Use(authMiddleware.RequireAuth())
		{
			authedTerms.PUT("/atualizartermos", termsHandler.UpdateAcceptances)
			authedTerms.GET("/termos-aceitos", termsHandler.GetHistory)
			authedTerms.GET("/export", termsHandler.ExportReport)
		}
	}

	// HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

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

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	log.Println("Server exited properly")
}
