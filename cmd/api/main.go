package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/simonkvalheim/reducer-bank/internal/auth"
	"github.com/simonkvalheim/reducer-bank/internal/config"
	"github.com/simonkvalheim/reducer-bank/internal/handler"
	appMiddleware "github.com/simonkvalheim/reducer-bank/internal/middleware"
	"github.com/simonkvalheim/reducer-bank/internal/processor"
	"github.com/simonkvalheim/reducer-bank/internal/queue"
	"github.com/simonkvalheim/reducer-bank/internal/repository"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// The state lives only in memory; every start begins from the initial state
	stateRepo := repository.NewStateRepository()
	dispatcher := processor.NewDispatcher(stateRepo, cfg.ControlAmounts(), *cfg.Account.EnforceControls)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Async mode: actions are queued in Redis and applied by a single in-process worker
	var (
		actionQueue handler.ActionQueue
		publisher   *queue.Publisher
		worker      *queue.Worker
	)
	if cfg.Redis.AsyncMode {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.URL,
			Password: cfg.Redis.Password,
			DB:       0,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		log.Println("Connected to Redis (async mode enabled)")

		publisher = queue.NewPublisher(redisClient)
		actionQueue = publisher
		worker = queue.NewWorker(redisClient, dispatcher)
		go worker.Start(ctx)
	} else {
		log.Println("Running in sync mode (set ASYNC_MODE=true for queued dispatch)")
	}

	accountHandler := handler.NewAccountHandler(dispatcher, actionQueue)

	r := chi.NewRouter()
	r.Use(appMiddleware.CORS(appMiddleware.DefaultCORSConfig(cfg.Server.CORSOrigins)))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	if worker != nil {
		r.Get("/health", handler.HealthHandler(publisher, worker))
	} else {
		r.Get("/health", handler.HealthHandler(nil, nil))
	}

	var authMiddleware *appMiddleware.AuthMiddleware
	if cfg.AuthEnabled() {
		authConfig := auth.DefaultConfig(cfg.Auth.JWTSecret)
		authConfig.AccessTokenExpiry = cfg.Auth.TokenExpiry
		authService, err := auth.NewService(authConfig, cfg.Auth.OperatorPassword)
		if err != nil {
			log.Fatalf("Failed to initialize auth: %v", err)
		}
		handler.NewAuthHandler(authService).RegisterRoutes(r)
		authMiddleware = appMiddleware.NewAuthMiddleware(authService)
	} else {
		log.Println("WARNING: OPERATOR_PASSWORD not set, API is unauthenticated")
	}

	r.Route("/v1", func(r chi.Router) {
		if authMiddleware != nil {
			r.Use(authMiddleware.RequireAuth)
		}
		accountHandler.RegisterRoutes(r)
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	if worker != nil {
		worker.Stop()
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
