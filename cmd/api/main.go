package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"shop-api/internal/config"
	"shop-api/internal/db"
	apihttp "shop-api/internal/http"
	"shop-api/internal/repository"
	"shop-api/internal/service"
	"shop-api/internal/storage"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	userRepo := repository.NewPgUserRepository(pool)
	productRepo := repository.NewPgProductRepository(pool)
	prefRepo := repository.NewPgPreferenceRepository(pool)
	cartRepo := repository.NewPgCartRepository(pool)
	wishlistRepo := repository.NewPgWishlistRepository(pool)

	imageStore, err := storage.NewDiskImageStore(cfg.UploadDir)
	if err != nil {
		logger.Fatal("image store init", zap.Error(err))
	}

	var (
		loginLimiter service.LoginRateLimiter
		tokenStore   service.RefreshTokenStore
		redisClient  *redis.Client
	)
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			loginLimiter = service.NewRedisLoginRateLimiter(redisClient, 10*time.Minute, 10)
			tokenStore = service.NewRedisRefreshTokenStore(redisClient)
		}
		cancel()
	}

	jwtSvc := service.NewJWTServiceWithStore(
		cfg.JWTSecret,
		time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute,
		time.Duration(cfg.JWTRefreshTTLMinutes)*time.Minute,
		tokenStore,
	)

	userSvc := service.NewUserService(logger, userRepo, loginLimiter)
	prefSvc := service.NewPreferenceService(logger, userRepo, prefRepo)
	recSvc := service.NewRecommendService(logger, userRepo, prefRepo, productRepo, service.DefaultScoringConfig())

	userHandler := apihttp.NewUserHandler(logger, userSvc, jwtSvc)
	productHandler := apihttp.NewProductHandler(logger, productRepo, imageStore)
	prefHandler := apihttp.NewPreferenceHandler(logger, prefSvc, recSvc)
	cartHandler := apihttp.NewCartHandler(logger, cartRepo, productRepo)
	wishlistHandler := apihttp.NewWishlistHandler(logger, wishlistRepo, productRepo)

	router := apihttp.NewRouter(logger, jwtSvc, userHandler, productHandler, prefHandler, cartHandler, wishlistHandler, cfg.UploadDir)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
