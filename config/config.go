package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	// DevAPIBaseURL is where the gateway listens in development.
	DevAPIBaseURL = "http://localhost:5050"
)

type Config struct {
	Server ServerConfig
	Store  StoreConfig
	App    AppConfig
}

type ServerConfig struct {
	Port        string
	WebPort     string
	APIServer   string
	CORSOrigins []string
}

type StoreConfig struct {
	Driver             string
	MongoURI           string
	MongoDatabase      string
	MongoCollection    string
	DatabaseURL        string
	Timeout            time.Duration
	LegacyPlaceholders bool
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "5050"),
			WebPort:     getEnv("WEB_PORT", "5173"),
			APIServer:   getEnv("API_SERVER", ""),
			CORSOrigins: getEnvAsList("CORS_ORIGINS", []string{"http://localhost:5173"}),
		},
		Store: StoreConfig{
			Driver:             getEnv("STORE_DRIVER", DriverMongo),
			MongoURI:           getEnv("MONGO_URI", "mongodb://localhost:27017"),
			MongoDatabase:      getEnv("MONGO_DATABASE", "lotbook"),
			MongoCollection:    getEnv("MONGO_COLLECTION", "Projects"),
			DatabaseURL:        getEnv("DATABASE_URL", ""),
			Timeout:            getEnvAsDuration("STORE_TIMEOUT", 10*time.Second),
			LegacyPlaceholders: getEnvAsBool("LEGACY_PLACEHOLDERS", false),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", EnvDevelopment),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.App.Environment {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("APP_ENV must be %q or %q, got %q", EnvDevelopment, EnvProduction, c.App.Environment)
	}

	switch c.Store.Driver {
	case DriverMongo:
		if c.Store.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required for the mongo driver")
		}
	case DriverPostgres:
		if c.Store.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}

	if c.Store.Timeout <= 0 {
		return fmt.Errorf("STORE_TIMEOUT must be positive, got %s", c.Store.Timeout)
	}

	return nil
}

// IsProduction reports whether the app runs in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Environment == EnvProduction
}

// APIBaseURL returns the gateway URL the web UI sends every request to.
// Development always targets the local gateway; production requires
// API_SERVER.
func APIBaseURL(env, apiServer string) (string, error) {
	if env != EnvProduction {
		return DevAPIBaseURL, nil
	}
	if apiServer == "" {
		return "", fmt.Errorf("API_SERVER is required in production")
	}
	return strings.TrimRight(apiServer, "/"), nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}
