package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/MahmoudEasa/ijar/config"
	"github.com/MahmoudEasa/ijar/controllers"
	"github.com/MahmoudEasa/ijar/database"
	apperrors "github.com/MahmoudEasa/ijar/errors"
	"github.com/MahmoudEasa/ijar/logger"
	"github.com/MahmoudEasa/ijar/middleware"
	"github.com/MahmoudEasa/ijar/repository"
	"github.com/MahmoudEasa/ijar/routes"
	"github.com/MahmoudEasa/ijar/services"
)

func main() {
	// Load .env file (optional, falls back to system env)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.Initialize(cfg.Env)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	// Stores
	if err := database.Connect(cfg.MongoURL, cfg.MongoDB); err != nil {
		log.Fatal("MongoDB connection failed", zap.Error(err))
	}
	defer database.Close()

	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatal("Redis connection failed", zap.Error(err))
	}

	// Repositories
	userRepo := repository.NewUserRepository(database.DB)
	carRepo := repository.NewCarRepository(database.DB)
	cartRepo := repository.NewCartRepository(database.DB)

	indexCtx, indexCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := userRepo.EnsureIndexes(indexCtx); err != nil {
		log.Warn("failed to ensure user indexes", zap.Error(err))
	}
	indexCancel()

	// Services
	tokens := services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	carCache := services.NewCarCache(redisClient, cfg.CarCacheTTL)
	authService := services.NewAuthService(userRepo, tokens)
	carService := services.NewCarService(carRepo, carCache)
	cartService := services.NewCartService(cartRepo, carRepo, carCache)

	// Controllers
	authController := controllers.NewAuthController(authService)
	carController := controllers.NewCarController(carService)
	cartController := controllers.NewCartController(cartService)

	// Router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.RequestLogger(log))
	router.Use(apperrors.ErrorMiddleware())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	router.Use(middleware.RateLimitMiddleware())

	routes.Register(router, tokens, authController, carController, cartController)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info("Ijar server is running", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Shutdown error", zap.Error(err))
	}
	log.Info("Server shutdown complete")
}
