package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"cartoonhub/database"
	"cartoonhub/internal/cache"
	"cartoonhub/internal/config"
	"cartoonhub/internal/httpapi/handler"
	"cartoonhub/internal/httpapi/middleware"
	"cartoonhub/internal/httpapi/repository"
	"cartoonhub/internal/httpapi/service"
	"cartoonhub/internal/mailer"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("could not load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("could not connect to database", "error", err)
		os.Exit(1)
	}
	if err := database.SeedAdmin(db, cfg, logger); err != nil {
		logger.Error("could not seed admin account", "error", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	chainRepo := repository.NewChainRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	cartoonRepo := repository.NewCartoonRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	registrationRepo := repository.NewRegistrationRepository(db)
	passwordResetRepo := repository.NewPasswordResetRepository(db)
	emailVerificationRepo := repository.NewEmailVerificationRepository(db)

	// Redis when configured, in-memory otherwise.
	var likeCache cache.LikeCountCache
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisLikeCountCache(cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			logger.Error("could not connect to redis", "error", err)
			os.Exit(1)
		}
		likeCache = redisCache
		logger.Info("like counts cached in redis")
	} else {
		likeCache = cache.NewMemoryLikeCountCache(cfg.CacheTTL)
		logger.Info("like counts cached in memory")
	}

	// SMTP when configured, log otherwise.
	var emailSender mailer.EmailSender
	if cfg.SMTPHost != "" {
		emailSender = mailer.NewSMTPSender(cfg, logger)
	} else {
		emailSender = &mailer.LogSender{Logger: logger}
		logger.Warn("SMTP not configured, mail goes to the log")
	}

	// Services
	otpService := service.NewOTPService(passwordResetRepo, emailVerificationRepo, cfg.OTPTTL)
	authService := service.NewAuthService(userRepo, otpService, emailSender, cfg, logger)
	userService := service.NewUserService(userRepo, otpService, emailSender, logger)
	companyService := service.NewCompanyService(companyRepo)
	chainService := service.NewChainService(chainRepo, userRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	cartoonService := service.NewCartoonService(cartoonRepo, chainRepo, categoryRepo, userRepo)
	ratingService := service.NewRatingService(db, ratingRepo, cartoonRepo)
	likeService := service.NewLikeService(likeRepo, cartoonRepo, likeCache)
	commentService := service.NewCommentService(commentRepo, cartoonRepo)
	registrationService := service.NewRegistrationService(db, registrationRepo, companyRepo, userRepo, logger)

	guard := middleware.NewGuard(authService, userRepo)
	limiter := middleware.NewRateLimiter(10, 5)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))
	router.Use(corsMiddleware(cfg.CORSOrigins))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	handler.NewAuthHandler(authService, limiter).RegisterRoutes(api)
	handler.NewUserHandler(userService, guard, limiter).RegisterRoutes(api)
	handler.NewCompanyHandler(companyService, guard).RegisterRoutes(api)
	handler.NewChainHandler(chainService, guard).RegisterRoutes(api)
	handler.NewCategoryHandler(categoryService, guard).RegisterRoutes(api)
	handler.NewCartoonHandler(cartoonService, guard).RegisterRoutes(api)
	handler.NewRatingHandler(ratingService, guard).RegisterRoutes(api)
	handler.NewLikeHandler(likeService, guard).RegisterRoutes(api)
	handler.NewCommentHandler(commentService, guard).RegisterRoutes(api)
	handler.NewRegistrationHandler(registrationService, guard, limiter).RegisterRoutes(api)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "port", cfg.HTTPPort, "env", cfg.GoEnv)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
	logger.Info("server stopped")
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"ip", c.ClientIP(),
		)
	}
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(origins))
	for _, origin := range origins {
		allowed[origin] = struct{}{}
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if _, ok := allowed[origin]; ok {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
