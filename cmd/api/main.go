package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"medchat/internal/config"
	"medchat/internal/db"
	apihttp "medchat/internal/http"
	"medchat/internal/llm"
	"medchat/internal/repository"
	"medchat/internal/service"
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

	if err := db.Ping(ctx, pool); err != nil {
		logger.Warn("db ping failed", zap.Error(err))
	}

	productRepo := repository.NewPgProductRepository(pool)
	llmClient := llm.NewOpenAIClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMMaxTokens, logger)
	prompts := service.NewSystemPromptLoader(cfg.SystemPromptFile)

	var (
		history service.HistoryStore = service.NewMemoryHistoryStore(cfg.HistoryLimit)
		limiter service.RateLimiter
	)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()

		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-memory history", zap.Error(err))
		} else {
			history = service.NewRedisHistoryStore(redisClient, cfg.HistoryLimit)
			limiter = service.NewRedisChatRateLimiter(redisClient, cfg.ChatRateWindow, cfg.ChatRateLimit)
		}
		cancel()
	}

	chatSvc := service.NewChatService(logger, llmClient, productRepo, history, prompts)
	chatHandler := apihttp.NewChatHandler(logger, chatSvc, limiter)
	router := apihttp.NewRouter(logger, chatHandler, apihttp.RouterConfig{
		StaticDir:   cfg.StaticDir,
		CORSOrigins: cfg.CORSOrigins,
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort), zap.String("model", cfg.LLMModel))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
