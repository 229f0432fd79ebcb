package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/noteduco342/storyline-backend/internal/cache"
	"github.com/noteduco342/storyline-backend/internal/config"
	"github.com/noteduco342/storyline-backend/internal/handlers"
	"github.com/noteduco342/storyline-backend/internal/httpx"
	"github.com/noteduco342/storyline-backend/internal/logging"
	"github.com/noteduco342/storyline-backend/internal/metrics"
	"github.com/noteduco342/storyline-backend/internal/middleware"
	"github.com/noteduco342/storyline-backend/internal/repository"
	"github.com/noteduco342/storyline-backend/internal/service"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		logrus.WithError(err).Fatal("Invalid log level")
	}

	// Initialize database connection
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	db, err := repository.InitDB(ctx, cfg.Database, log)
	cancel()
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	// Redis only backs the rate limiter; without it counters stay in memory.
	var limiterStorage fiber.Storage
	redisStore := cache.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.KeyPrefix)
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 2*time.Second)
	if err := redisStore.Ping(pingCtx); err != nil {
		log.WithError(err).Warn("Redis connection failed, rate limiting per instance")
		_ = redisStore.Close()
		redisStore = nil
	} else {
		limiterStorage = redisStore
		log.Info("Redis rate limit storage connected")
	}
	pingCancel()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	followRepo := repository.NewFollowRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	bookmarkRepo := repository.NewBookmarkRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// Initialize services
	userService := service.NewUserService(userRepo)
	postService := service.NewPostService(postRepo, userRepo)
	followService := service.NewFollowService(followRepo, userRepo)
	engagementService := service.NewEngagementService(likeRepo, bookmarkRepo, postRepo, userRepo)
	historyService := service.NewHistoryService(historyRepo, postRepo, userRepo, cfg.Limits.HistoryLimit)
	commentService := service.NewCommentService(commentRepo, postRepo, userRepo, cfg.Limits.MaxCommentLength)
	feedService := service.NewFeedService(postRepo, userRepo)
	statsService := service.NewStatsService(userRepo, followRepo, postRepo, likeRepo)
	discoveryService := service.NewDiscoveryService(postRepo, userRepo, cfg.Limits.SearchLimit)

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName:   cfg.Server.AppName,
		BodyLimit: cfg.Server.BodyLimit,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok {
				return httpx.Error(c, fe.Code, "http_error", fe.Message)
			}
			logging.ForRequest(log, c).WithError(err).Error("Unhandled error")
			return httpx.Internal(c, "internal_error")
		},
	})

	// Middleware
	app.Use(requestid.New())
	app.Use(logging.AccessLog(log))
	app.Use(metrics.Middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.Server.AllowedOrigins, ","),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, " + middleware.CSRFHeader,
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: len(cfg.Server.AllowedOrigins) > 0,
	}))

	handlers.RegisterRoutes(app, handlers.Handlers{
		Users:      handlers.NewUserHandler(userService, log),
		Posts:      handlers.NewPostHandler(postService, log),
		Follows:    handlers.NewFollowHandler(followService, log),
		Engagement: handlers.NewEngagementHandler(engagementService, log),
		History:    handlers.NewHistoryHandler(historyService, log),
		Comments:   handlers.NewCommentHandler(commentService, log),
		Discovery:  handlers.NewDiscoveryHandler(discoveryService, feedService, statsService, log),
	}, handlers.RouteConfig{
		JWTSecret:      cfg.Auth.JWTSecret,
		CSRFMode:       cfg.Server.CSRFMode,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RequestTimeout: cfg.Server.RequestTimeout,
		RateLimitMax:   cfg.RateLimit.Max,
		RateLimitTTL:   cfg.RateLimit.Window,
		LimiterStorage: limiterStorage,
		RoleLookup:     userService.StoredRole,
	})

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := repository.Ping(ctx, db); err != nil {
			return httpx.FromError(c, err)
		}
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": cfg.Server.AppName + " is running",
		})
	})
	app.Get("/metrics", metrics.Handler())

	go func() {
		log.WithField("port", cfg.Server.Port).Info("Server starting")
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.WithError(err).Warn("Server shutdown incomplete")
	}
	if redisStore != nil {
		_ = redisStore.Close()
	}
	if err := repository.Close(db); err != nil {
		log.WithError(err).Warn("Closing database failed")
	}
}
