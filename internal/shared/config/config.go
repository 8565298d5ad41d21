package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for our application
type Config struct {
	// Server configuration
	Port           string
	GinMode        string
	APIPrefix      string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	RequestTimeout time.Duration
	MaxHeaderBytes int

	// Database configuration
	Database DatabaseConfig

	// Redis configuration
	Redis RedisConfig

	// Auth configuration
	Auth AuthConfig

	// Kafka configuration
	Kafka KafkaConfig

	// Rate limiting
	RateLimit RateLimitConfig

	// Logging
	LogLevel string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	DSN      string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Addr     string

	// TTL values for cached reads
	PostCacheTTL     time.Duration
	FeaturedCacheTTL time.Duration
}

// AuthConfig holds password hashing and token configuration.
// The two signing secrets are distinct so compromise of one token class does
// not compromise the other.
type AuthConfig struct {
	BcryptCost          int
	AccessSecret        string
	RefreshSecret       string
	AccessExpiresIn     time.Duration
	RefreshExpiresIn    time.Duration
	RefreshCookieMaxAge int
	Issuer              string
}

// KafkaConfig holds Kafka producer configuration
type KafkaConfig struct {
	Enabled     bool
	Brokers     []string
	EventsTopic string
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled        bool          `json:"enabled"`
	WindowDuration time.Duration `json:"window_duration"`
	PublicRequests int           `json:"public_requests"`
	AuthRequests   int           `json:"auth_requests"`
	WriteRequests  int           `json:"write_requests"`
	AdminRequests  int           `json:"admin_requests"`
	HealthRequests int           `json:"health_requests"`
	WhitelistedIPs []string      `json:"whitelisted_ips"`
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		// Server configuration
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		APIPrefix:      getEnv("API_PREFIX", "/api"),
		ReadTimeout:    getDurationEnv("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:   getDurationEnv("WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:    getDurationEnv("IDLE_TIMEOUT", 60*time.Second),
		RequestTimeout: getDurationEnv("REQUEST_TIMEOUT", 10*time.Second),
		MaxHeaderBytes: getIntEnv("MAX_HEADER_BYTES", 1<<20), // 1 MB

		// Database configuration
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "inkwell_db"),
			User:     getEnv("DB_USER", "inkwell_user"),
			Password: getEnv("DB_PASSWORD", ""),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},

		// Redis configuration
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),

			PostCacheTTL:     getDurationEnv("REDIS_POST_CACHE_TTL", 5*time.Minute),
			FeaturedCacheTTL: getDurationEnv("REDIS_FEATURED_CACHE_TTL", 10*time.Minute),
		},

		// Auth configuration. Signing secrets intentionally have no fallback;
		// Validate rejects an empty secret before the server starts.
		Auth: AuthConfig{
			BcryptCost:          getIntEnv("BCRYPT_COST", 12),
			AccessSecret:        os.Getenv("ACCESS_TOKEN_JWT_SECRET"),
			RefreshSecret:       os.Getenv("REFRESH_TOKEN_JWT_SECRET"),
			AccessExpiresIn:     getDurationEnvSeconds("ACCESS_TOKEN_JWT_EXPIRY", 15*time.Minute),
			RefreshExpiresIn:    getDurationEnvSeconds("REFRESH_TOKEN_JWT_EXPIRY", 7*24*time.Hour),
			RefreshCookieMaxAge: getIntEnv("REFRESH_TOKEN_COOKIE_EXPIRY", 7*24*3600),
			Issuer:              getEnv("JWT_ISSUER", "inkwell"),
		},

		// Kafka configuration
		Kafka: KafkaConfig{
			Enabled:     getBoolEnv("KAFKA_ENABLED", false),
			Brokers:     getStringSliceEnv("KAFKA_BROKERS", []string{"localhost:9092"}),
			EventsTopic: getEnv("KAFKA_EVENTS_TOPIC", "blog-activity"),
		},

		// Rate limiting
		RateLimit: RateLimitConfig{
			Enabled:        getBoolEnv("RATE_LIMIT_ENABLED", true),
			WindowDuration: getDurationEnv("RATE_LIMIT_WINDOW_DURATION", 60*time.Second),
			PublicRequests: getIntEnv("RATE_LIMIT_PUBLIC_REQUESTS", 100),
			AuthRequests:   getIntEnv("RATE_LIMIT_AUTH_REQUESTS", 10),
			WriteRequests:  getIntEnv("RATE_LIMIT_WRITE_REQUESTS", 30),
			AdminRequests:  getIntEnv("RATE_LIMIT_ADMIN_REQUESTS", 200),
			HealthRequests: getIntEnv("RATE_LIMIT_HEALTH_REQUESTS", 300),
			WhitelistedIPs: getStringSliceEnv("RATE_LIMIT_WHITELISTED_IPS", []string{}),
		},

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "debug"),
	}

	// Build composite values
	cfg.Database.DSN = buildDatabaseDSN(cfg.Database)
	cfg.Redis.Addr = cfg.Redis.Host + ":" + cfg.Redis.Port

	return cfg
}

// Validate checks the configuration values that cannot carry defaults.
func (c *Config) Validate() error {
	if c.Auth.AccessSecret == "" {
		return fmt.Errorf("ACCESS_TOKEN_JWT_SECRET must be set")
	}
	if c.Auth.RefreshSecret == "" {
		return fmt.Errorf("REFRESH_TOKEN_JWT_SECRET must be set")
	}
	if c.Auth.AccessSecret == c.Auth.RefreshSecret {
		return fmt.Errorf("access and refresh token secrets must differ")
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST %d outside valid range [4,31]", c.Auth.BcryptCost)
	}
	return nil
}

// buildDatabaseDSN builds the database connection string
func buildDatabaseDSN(db DatabaseConfig) string {
	return "host=" + db.Host +
		" port=" + db.Port +
		" user=" + db.User +
		" password=" + db.Password +
		" dbname=" + db.Name +
		" sslmode=" + db.SSLMode
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getIntEnv gets an integer environment variable with a fallback value
func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}

// getDurationEnv gets a duration environment variable with a fallback value
func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return fallback
}

// getDurationEnvSeconds gets an environment variable as seconds (int) and converts to time.Duration
func getDurationEnvSeconds(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

// getBoolEnv gets a boolean environment variable with a fallback value
func getBoolEnv(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

// getStringSliceEnv gets a comma-separated string environment variable as a slice
func getStringSliceEnv(key string, fallback []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		var result []string
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GinMode == "debug"
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return ":" + c.Port
}

// GetAPIBasePath returns the API base path
func (c *Config) GetAPIBasePath() string {
	return c.APIPrefix
}
