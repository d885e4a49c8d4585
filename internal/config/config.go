package config

import (
	"fmt"     // For DSN formatting
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"time"    // For session TTL parsing

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort          string        // Application port
	DBDriver         string        // Database driver: postgres or mysql
	DBUser           string        // Database user
	DBPassword       string        // Database password
	DBHost           string        // Database host
	DBPort           string        // Database port
	DBName           string        // Database name
	DBSSLMode        string        // Postgres sslmode (require = TLS without certificate verification)
	DBMaxIdleConns   int           // Minimum pool size kept warm
	DBMaxOpenConns   int           // Maximum pool size
	SessionSecret    string        // Secret used to sign session tokens
	SessionTTL       time.Duration // Lifetime of a session
	RedisAddr        string        // Redis server address
	RedisPass        string        // Redis password
	RedisDB          int           // Redis database number
	AllowAdminSignup bool          // Honor the isAdmin form field on signup and edit
	AutoMigrate      bool          // Run schema migration on server start
	IsProd           bool          // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	return &Config{
		AppPort:          getenv("APP_PORT", "8080"),
		DBDriver:         getenv("DB_DRIVER", "postgres"),
		DBUser:           getenv("DB_USER", os.Getenv("PGUSER")),
		DBPassword:       getenv("DB_PASSWORD", os.Getenv("PGPASSWORD")),
		DBHost:           getenv("DB_HOST", getenv("PGHOST", "localhost")),
		DBPort:           getenv("DB_PORT", getenv("PGPORT", "5432")),
		DBName:           getenv("DB_NAME", os.Getenv("PGDATABASE")),
		DBSSLMode:        getenv("DB_SSLMODE", "require"),
		DBMaxIdleConns:   getenvInt("DB_MAX_IDLE_CONNS", 2),
		DBMaxOpenConns:   getenvInt("DB_MAX_OPEN_CONNS", 10),
		SessionSecret:    os.Getenv("SESSION_SECRET"),
		SessionTTL:       getenvDuration("SESSION_TTL", 24*time.Hour),
		RedisAddr:        getenv("REDIS_ADDR", "localhost:6379"),
		RedisPass:        os.Getenv("REDIS_PASS"),
		RedisDB:          getenvInt("REDIS_DB", 0),
		AllowAdminSignup: os.Getenv("ALLOW_ADMIN_SIGNUP") == "true",
		AutoMigrate:      os.Getenv("AUTO_MIGRATE") == "true",
		IsProd:           os.Getenv("IS_PROD") == "true",
	}
}

// DSN builds the data source name for the configured driver
func (c *Config) DSN() string {
	if c.DBDriver == "mysql" {
		return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback // Unset or malformed
	}
	return v
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
