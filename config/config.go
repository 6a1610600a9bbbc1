// config/config.go
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Application metadata
const (
	AppName    = "TRAVEL-COMPANION"
	AppVersion = "1.0.0"
)

// Profile store drivers
const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

var (
	ErrMissingJWTSecret    = errors.New("JWT_SECRET is not set")
	ErrMissingOpenAIAPIKey = errors.New("OPENAI_API_KEY is not set")
	ErrUnknownProfileStore = errors.New("PROFILE_STORE must be mongo or memory")
)

// Config holds every deployment-scoped setting. Secrets are only ever read
// from the environment (or a local .env file), never from source.
type Config struct {
	ServerPort  int
	Environment string
	CORSOrigins string

	JWTSecret []byte
	JWTTTL    time.Duration

	ProfileStore  string
	MongoURI      string
	MongoDatabase string

	// Redis configuration
	RedisURL      string
	RedisPassword string
	RedisDB       int

	// Cassandra configuration; an empty host disables it
	CassandraHost     string
	CassandraPort     int
	CassandraUsername string
	CassandraPassword string
	CassandraKeyspace string

	// Completion Service
	OpenAIAPIKey        string
	OpenAIBaseURL       string
	CompletionModel     string
	CompletionMaxTokens int
	CompletionTimeout   time.Duration
}

// Load reads the .env file if present and then the process environment.
func Load() (*Config, error) {
	// A missing .env is fine, the environment may already be populated.
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:  getEnvInt("SERVER_PORT", 8088),
		Environment: getEnv("APP_ENV", "development"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		JWTSecret: []byte(os.Getenv("JWT_SECRET")),
		JWTTTL:    getEnvDuration("JWT_TTL", 24*time.Hour),

		ProfileStore:  strings.ToLower(getEnv("PROFILE_STORE", StoreMongo)),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "travel_companion"),

		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		CassandraHost:     getEnv("CASSANDRA_HOST", ""),
		CassandraPort:     getEnvInt("CASSANDRA_PORT", 9042),
		CassandraUsername: getEnv("CASSANDRA_USERNAME", "cassandra"),
		CassandraPassword: getEnv("CASSANDRA_PASSWORD", "cassandra"),
		CassandraKeyspace: getEnv("CASSANDRA_KEYSPACE", "travel_companion"),

		OpenAIAPIKey:        os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:       getEnv("OPENAI_BASE_URL", ""),
		CompletionModel:     getEnv("COMPLETION_MODEL", "gpt-3.5-turbo"),
		CompletionMaxTokens: getEnvInt("COMPLETION_MAX_TOKENS", 200),
		CompletionTimeout:   getEnvDuration("COMPLETION_TIMEOUT", 30*time.Second),
	}

	if len(cfg.JWTSecret) == 0 {
		return nil, ErrMissingJWTSecret
	}
	if cfg.OpenAIAPIKey == "" {
		return nil, ErrMissingOpenAIAPIKey
	}
	if cfg.ProfileStore != StoreMongo && cfg.ProfileStore != StoreMemory {
		return nil, ErrUnknownProfileStore
	}

	return cfg, nil
}

// IsProduction reports whether the service runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// CassandraEnabled reports whether a Cassandra host was configured.
func (c *Config) CassandraEnabled() bool {
	return c.CassandraHost != ""
}

// getEnv gets environment variable with fallback default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}
