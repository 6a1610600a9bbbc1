package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"travelcompanion/app/controllers"
	"travelcompanion/app/middlewares"
	"travelcompanion/app/routes"
	"travelcompanion/app/services"
	"travelcompanion/config"
	"travelcompanion/database"
	"travelcompanion/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	app := fiber.New(fiber.Config{
		Prefork:       false,
		CaseSensitive: true,
		StrictRouting: true,
		ServerHeader:  "Fiber",
		AppName:       config.AppName,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			ctx.Status(code)
			return ctx.JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSOrigins}))

	// Initialize database first
	fmt.Println("🔌 Initializing database connection...")
	if err := database.InitDB(cfg); err != nil {
		log.Fatalf("❌ Failed to connect to the database: %v", err)
	}
	defer database.CloseAllConnections()

	healthChecks := map[string]routes.HealthCheck{}

	var (
		profiles    services.ProfileStore
		credentials services.CredentialStore
		cache       services.SessionCache
	)
	if cfg.ProfileStore == config.StoreMemory {
		log.Println("⚠️ Using in-memory stores, data is lost on restart")
		profiles = services.NewMemoryProfileStore()
		credentials = services.NewMemoryCredentialStore()
		cache = services.NewMemorySessionCache()
	} else {
		profiles = services.NewMongoProfileStore(database.MongoDB)
		credentials = services.NewMongoCredentialStore(database.MongoDB)
		healthChecks["mongodb"] = database.MongoHealthCheck

		redisService := redis.NewService(redis.Options{
			Addr:     cfg.RedisURL,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisService.Close()
		cache = redisService
		healthChecks["redis"] = redisService.Ping
	}

	var (
		sessionBackup services.SessionBackup
		recorder      services.SearchRecorder
	)
	if database.CassandraSession != nil {
		sessionBackup = services.NewCassandraSessionBackup(database.CassandraSession)
		recorder = services.NewCassandraSearchHistory(database.CassandraSession)
		healthChecks["cassandra"] = func(context.Context) error { return database.CassandraHealthCheck() }
	}

	sessionService := services.NewSessionService(cache, sessionBackup, cfg.JWTTTL)
	authService := services.NewAuthService(credentials, profiles, sessionService, cfg.JWTSecret, cfg.JWTTTL)
	chatService := services.NewChatService(services.NewOpenAICompletion(services.OpenAIConfig{
		APIKey:    cfg.OpenAIAPIKey,
		BaseURL:   cfg.OpenAIBaseURL,
		Model:     cfg.CompletionModel,
		MaxTokens: cfg.CompletionMaxTokens,
		Timeout:   cfg.CompletionTimeout,
	}))

	// Setup Socket.IO routes (this should be before regular routes)
	socketHandler := config.NewSocketHandler(authService, chatService, cfg.CompletionTimeout)
	socketHandler.SetupSocketRoutes(app)

	routes.SetupRoutes(app, routes.Handlers{
		Auth:         controllers.NewAuthController(authService),
		Profile:      controllers.NewProfileController(services.NewProfileService(profiles)),
		Search:       controllers.NewSearchController(services.NewSearchService(profiles, recorder)),
		Completion:   controllers.NewCompletionController(chatService),
		RequireAuth:  middlewares.JWTMiddleware(authService),
		HealthChecks: healthChecks,
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("⚠️ Shutdown error: %v", err)
		}
	}()

	port := cfg.ServerPort
	fmt.Printf("🚀 Server starting on port :%d (%s)\n", port, cfg.Environment)
	fmt.Printf("🔌 Socket.IO chat available at :%d/socket.io%s\n", port, config.ChatNamespace)

	if err := app.Listen(fmt.Sprintf(":%d", port)); err != nil {
		log.Printf("❌ Server stopped: %v", err)
	}
}
