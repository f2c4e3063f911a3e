package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/course-catalog/api"
	"github.com/sahilchouksey/course-catalog/config"
	"github.com/sahilchouksey/course-catalog/database"
	"github.com/sahilchouksey/course-catalog/router"
	"github.com/sahilchouksey/course-catalog/services/cron"
	"github.com/sahilchouksey/course-catalog/utils/cache"
	"github.com/sahilchouksey/course-catalog/utils/middleware"
)

const rateLimitKeyPrefix = "course-catalog:limiter:"

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	// Open the store selected by DB_DRIVER
	store, err := database.Open(getEnv)
	if err != nil {
		print("Check whether the Postgres is running or not\n")
		print("If not running, run the following command:\n")
		print("  make docker-up   (for Docker setup)\n")
		print("  make db-up       (for local PostgreSQL)\n")
		return err
	}

	if err := store.Init(); err != nil {
		print("Failed to initialize database tables\n")
		print("Error running migrations:\n")
		store.Close()
		return err
	}

	if getEnv.SEED_ON_START {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := database.RunSeeds(ctx, store)
		cancel()
		if err != nil {
			log.Printf("Warning: Failed to seed catalog: %v", err)
		}
	}

	// Rate limiter counters go to Redis when it is reachable
	var limiterStorage fiber.Storage
	var redisCache *cache.RedisCache
	if getEnv.REDIS_URL != "" {
		redisCache, err = cache.NewRedisCache(getEnv.REDIS_URL)
		if err != nil {
			log.Printf("Warning: Failed to connect to Redis: %v. Rate limiting will use in-memory storage.", err)
		} else {
			limiterStorage = cache.NewFiberStorage(redisCache, rateLimitKeyPrefix)
		}
	}

	// Initialize Cron Manager (only if enabled via environment variable)
	var cronManager *cron.CronManager
	if getEnv.CRON_ENABLED {
		cronManager = cron.NewCronManager(store)
		if err := cronManager.Start(); err != nil {
			print("Warning: Failed to start cron jobs\n")
			print("Error: ", err.Error(), "\n")
			// Don't fail the app, just log the warning
			cronManager = nil
		}
	}

	// Defer Closing DB, Redis and stopping cron jobs
	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		if redisCache != nil {
			redisCache.Close()
		}
		store.Close()
	}()

	// Init API
	var server *api.APIServer = api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))
	app := server.GetEngine()

	// Attach Middleware
	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    getEnv.ALLOWED_ORIGINS,
		RateLimitRequests: getEnv.RATE_LIMIT_REQUESTS,
		RateLimitWindow:   getEnv.RATE_LIMIT_WINDOW,
		Storage:           limiterStorage,
	})

	// Setup Routes
	router.SetupRoutes(app, store)

	// Shut down cleanly on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		if err := server.Shutdown(); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}()

	// Get the PORT & Start the Server
	return server.Run()
}
