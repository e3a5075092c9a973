package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	APIKey      string // API key for service-to-service authentication
	LogLevel    string
	LogFormat   string
	LogDir      string
	ServiceName string
	Version     string
	Environment string

	// Comma-separated proxy IPs allowed to set X-Forwarded-For
	TrustedProxies  []string
	ShutdownTimeout time.Duration

	EventMaxRetries     int
	EventRetryDelay     time.Duration
	EventDeadLetterPath string

	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration
	MigrateOnStart    bool

	// Badge ledger storage: "postgres" or "redis"
	LedgerBackend string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Badge evaluation
	BadgeWateringMode   string
	BadgeTimeZone       string
	BadgeSweepInterval  time.Duration
	BadgeLedgerCacheTTL time.Duration
	// Optional JSON catalog; the embedded catalog is used when empty
	BadgeCatalogPath string

	WorkerCount     int
	WorkerQueueSize int
	MaxTreesPerUser int
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:      getEnv("API_KEY", ""),
		LogLevel:    getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:   getEnv("LOG_FORMAT", DefaultLogFormat),
		LogDir:      getEnv("LOG_DIR", "logs"),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", DefaultVersion),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),

		TrustedProxies:  getEnvAsList("TRUSTED_PROXIES"),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),

		EventMaxRetries:     getEnvAsInt("EVENT_MAX_RETRIES", DefaultEventMaxRetries),
		EventRetryDelay:     getEnvAsDuration("EVENT_RETRY_DELAY", DefaultEventRetryDelay),
		EventDeadLetterPath: getEnv("EVENT_DEADLETTER_PATH", DefaultEventDeadLetterPath),

		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "treedoctor"),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),
		MigrateOnStart:    getEnvAsBool("MIGRATE_ON_START", true),

		LedgerBackend: strings.ToLower(getEnv("LEDGER_BACKEND", LedgerBackendPostgres)),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		BadgeWateringMode:   strings.ToLower(getEnv("BADGE_WATERING_MODE", WateringModeLegacy)),
		BadgeTimeZone:       getEnv("BADGE_TIMEZONE", "UTC"),
		BadgeSweepInterval:  getEnvAsDuration("BADGE_SWEEP_INTERVAL", DefaultBadgeSweepInterval),
		BadgeLedgerCacheTTL: getEnvAsDuration("BADGE_LEDGER_CACHE_TTL", DefaultBadgeLedgerCacheTTL),
		BadgeCatalogPath:    getEnv("BADGE_CATALOG_PATH", ""),

		WorkerCount:     getEnvAsInt("WORKER_COUNT", DefaultWorkerCount),
		WorkerQueueSize: getEnvAsInt("WORKER_QUEUE_SIZE", DefaultWorkerQueueSize),
		MaxTreesPerUser: getEnvAsInt("MAX_TREES_PER_USER", DefaultMaxTreesPerUser),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.LedgerBackend {
	case LedgerBackendPostgres, LedgerBackendRedis:
	default:
		return fmt.Errorf("invalid LEDGER_BACKEND %q: expected %s or %s", c.LedgerBackend, LedgerBackendPostgres, LedgerBackendRedis)
	}

	switch c.BadgeWateringMode {
	case WateringModeLegacy, WateringModeClamped, WateringModeRaw:
	default:
		return fmt.Errorf("invalid BADGE_WATERING_MODE %q: expected %s, %s or %s",
			c.BadgeWateringMode, WateringModeLegacy, WateringModeClamped, WateringModeRaw)
	}

	if _, err := time.LoadLocation(c.BadgeTimeZone); err != nil {
		return fmt.Errorf("invalid BADGE_TIMEZONE %q: %w", c.BadgeTimeZone, err)
	}

	if c.MaxTreesPerUser < 1 {
		return fmt.Errorf("MAX_TREES_PER_USER must be at least 1, got %d", c.MaxTreesPerUser)
	}

	return nil
}

// Location returns the configured fallback time zone for badge evaluation.
// Load has already verified the zone name.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.BadgeTimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getEnvAsList splits a comma-separated variable, dropping empty entries
func getEnvAsList(key string) []string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
