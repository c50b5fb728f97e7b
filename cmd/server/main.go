package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/robfig/cron"

	config "github.com/Retyreg/VYUD-AI-Scheduler/configs"
	"github.com/Retyreg/VYUD-AI-Scheduler/internal/api/handlers"
	"github.com/Retyreg/VYUD-AI-Scheduler/internal/api/middleware"
	job "github.com/Retyreg/VYUD-AI-Scheduler/internal/jobs"
	"github.com/Retyreg/VYUD-AI-Scheduler/internal/publisher"
	"github.com/Retyreg/VYUD-AI-Scheduler/internal/queue"
	"github.com/Retyreg/VYUD-AI-Scheduler/internal/repository"
	"github.com/Retyreg/VYUD-AI-Scheduler/internal/service"
	"github.com/Retyreg/VYUD-AI-Scheduler/internal/supabase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()
	if cfg.SupabaseURL == "" || cfg.SupabaseKey == "" {
		log.Fatal("SUPABASE_URL and SUPABASE_SERVICE_KEY are required")
	}

	store := supabase.New(cfg.SupabaseURL, cfg.SupabaseKey)

	postRepo := repository.NewPostRepository(store)
	accountRepo := repository.NewAccountRepository(store)
	analyticsRepo := repository.NewAnalyticsRepository(store)

	telegramService := service.NewTelegramService(*cfg)
	linkedinService := service.NewLinkedinService(*cfg)
	vkService := service.NewVKService(*cfg)
	postService := service.NewPostService(postRepo)
	platformService := service.NewPlatformService(*cfg, accountRepo, telegramService, linkedinService, vkService)
	analyticsService := service.NewAnalyticsService(*cfg, postRepo, accountRepo, analyticsRepo)
	aiService := service.NewAIService(*cfg)

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Minute,
		WriteTimeout: time.Minute,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	authMiddleware := middleware.NewAuthMiddleware(*cfg)

	platform := handlers.NewPlatformHandler(platformService, *cfg)
	app.Get("/auth/:platform", platform.AddSocialAccount)
	app.Get("/auth/:platform/callback", platform.CallbackHandler)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	post := handlers.NewPostHandler(postService)
	api.Post("/posts", post.CreatePost)
	api.Get("/posts", post.ListPosts)
	api.Get("/posts/:id", post.GetPost)
	api.Patch("/posts/:id", post.UpdatePost)
	api.Delete("/posts/:id", post.RemovePost)

	api.Get("/accounts", platform.ListSocialAccounts)
	api.Post("/accounts", platform.ConnectAccount)
	api.Delete("/accounts/:id", platform.DisconnectAccount)

	analytics := handlers.NewAnalyticsHandler(analyticsService, postRepo, client)
	api.Post("/analytics/refresh", analytics.Refresh)
	api.Post("/analytics/refresh-all", analytics.RefreshAll)
	api.Get("/analytics/post/:id", analytics.GetPostAnalytics)
	api.Get("/analytics/all", analytics.ListAnalytics)
	api.Get("/analytics/summary", analytics.Summary)

	ai := handlers.NewAIHandler(aiService)
	api.Get("/ai/models", ai.ListModels)
	api.Post("/ai/generate", ai.Generate)

	// cron jobs: the publisher tick and the hourly stats sweep
	dispatcher := publisher.NewDispatcher(postRepo, accountRepo, telegramService, linkedinService, vkService)
	statsSweepJob := job.NewStatsSweepJob(postRepo, client)

	c := cron.New()
	c.AddFunc(fmt.Sprintf("@every %ds", cfg.PollInterval), dispatcher.CheckAndPublish)
	c.AddFunc("@every 1h0m0s", statsSweepJob.CollectStats)
	c.Start()

	//queue
	queueW := queue.NewQueue(analyticsService)

	asynqServer := asynq.NewServer(redisConn, asynq.Config{
		Concurrency: 10,
	})

	go func() {
		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypeCollectStats, queueW.HandleCollectStatsTask)

		log.Println("Starting the Asynq server...")
		if err := asynqServer.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(":3000"); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Println("Server is running on http://localhost:3000")

	gracefulShutdown(app, c, asynqServer)
}

func gracefulShutdown(app *fiber.App, c *cron.Cron, asynqServer *asynq.Server) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	// Stop the timer first; an in-flight tick is allowed to finish.
	c.Stop()

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	asynqServer.Shutdown()
	log.Println("Server shutdown complete.")
}
