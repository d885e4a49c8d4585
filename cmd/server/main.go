package main

import (
	"context"                    // context package is needed for Redis operations
	"microposts/internal/api"    // Custom package for route handlers
	"microposts/internal/auth"   // Custom package for authentication
	"microposts/internal/config" // Custom package for configuration
	"microposts/internal/db"     // Custom package for database setup
	"microposts/internal/store"  // Custom package for the query layer

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	if cfg.SessionSecret == "" {
		logrus.Fatal("SESSION_SECRET is not set in the environment")
	}

	// Connect to the database (pool sized from config)
	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	if cfg.AutoMigrate {
		if err := db.Migrate(gdb); err != nil {
			logrus.Fatalf("migration failed: %v", err)
		}
	}

	// Setup Redis client for sessions
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Wire the query layer, authentication and handlers
	queries := store.New(gdb)
	hasher := auth.NewBcryptHasher()
	sessions := auth.NewSessionStore(redisClient, cfg.SessionTTL)
	authn := auth.NewSessionAuthenticator(queries.Users, hasher, sessions, cfg.SessionSecret)
	handlers := api.NewHandlers(queries, authn, hasher, api.Options{
		AllowAdminSignup: cfg.AllowAdminSignup, // Admin self-service
		SecureCookies:    cfg.IsProd,           // Cookies only over TLS in production
		SessionTTL:       cfg.SessionTTL,       // Cookie lifetime
	})

	r, err := api.NewRouter(handlers, api.HealthHandler(gdb, redisClient))
	if err != nil {
		logrus.Fatalf("failed to load templates: %v", err)
	}

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	logrus.WithFields(logrus.Fields{
		"port":   cfg.AppPort,  // Listen port
		"driver": cfg.DBDriver, // Database driver
	}).Info("Server running")
	if err := r.Run(":" + cfg.AppPort); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}
