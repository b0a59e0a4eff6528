package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Backends for the history sink and the idempotency cache
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
	BackendNone     = "none"
)

// Config holds every setting the server and the shell read at startup.
type Config struct {
	Port string

	HistoryBackend string
	HistoryDir     string

	DB    DBConfig
	Redis RedisConfig

	JWTSecret string
	TokenTTL  time.Duration

	AdminUsername string
	AdminPassword string

	LoginRateLimit int
	CORSOrigins    string

	IdempotencyBackend string
	IdempotencyTTL     time.Duration
}

// DBConfig describes the postgres connection used by the gorm history sink.
type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// DSN renders the connection string in the form the gorm postgres driver expects.
func (c DBConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=disable"
}

// RedisConfig describes the redis connection shared by the redis history
// sink and the idempotency cache.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int

	PoolSize     int           // Maximum number of socket connections
	MinIdleConns int           // Minimum number of idle connections
	DialTimeout  time.Duration // Timeout for establishing new connections
	ReadTimeout  time.Duration // Timeout for socket reads
	WriteTimeout time.Duration // Timeout for socket writes
}

// Addr returns host:port.
func (c RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// Load reads the environment into a Config, applying defaults.
func Load() Config {
	return Config{
		Port:           GetEnv("PORT", "3000"),
		HistoryBackend: GetEnv("HISTORY_BACKEND", BackendFile),
		HistoryDir:     GetEnv("HISTORY_DIR", "Transaction_history"),
		DB: DBConfig{
			Host:     GetEnv("DB_HOST", "localhost"),
			Port:     GetEnv("DB_PORT", "5432"),
			User:     GetEnv("DB_USER", "postgres"),
			Password: GetEnv("DB_PASSWORD", "postgres"),
			Name:     GetEnv("DB_NAME", "minibank"),
		},
		Redis: RedisConfig{
			Host:     GetEnv("REDIS_HOST", "localhost"),
			Port:     GetEnv("REDIS_PORT", "6379"),
			Password: GetEnv("REDIS_PASSWORD", ""),
			DB:       GetIntEnv("REDIS_DB", 0),

			PoolSize:     GetIntEnv("REDIS_POOL_SIZE", 10),
			MinIdleConns: GetIntEnv("REDIS_MIN_IDLE_CONNS", 5),
			DialTimeout:  GetDurationEnv("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  GetDurationEnv("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: GetDurationEnv("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		JWTSecret:      GetEnv("JWT_SECRET", "minibank"),
		TokenTTL:       GetDurationEnv("TOKEN_TTL", 15*time.Minute),
		AdminUsername:  GetEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:  GetEnv("ADMIN_PASSWORD", "admin"),
		LoginRateLimit: GetIntEnv("LOGIN_RATE_LIMIT", 5),
		CORSOrigins:    GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173"),

		IdempotencyBackend: GetEnv("IDEMPOTENCY_BACKEND", BackendMemory),
		IdempotencyTTL:     GetDurationEnv("IDEMPOTENCY_TTL", 24*time.Hour),
	}
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// GetDurationEnv returns a duration environment variable or a default value.
func GetDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
