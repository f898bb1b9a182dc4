package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port string

	// Database. DBURL wins over the discrete fields when set.
	DBURL      string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTSecret string
	JWTExpiry time.Duration

	CORSOrigins []string

	LogLevel             string
	LogFile              string
	SlowRequestThreshold time.Duration

	// Cache is disabled when RedisAddr is empty.
	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	StrictStatusTransitions    bool
	RecomputeAppointmentTotals bool

	OfferExpirySchedule string
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found")
	}

	return &Config{
		Port: getEnv("PORT", "8080"),

		DBURL:      getEnv("DB_URL", ""),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "jamaluki"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTExpiry: time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 24)) * time.Hour,

		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),

		LogLevel:             getEnv("LOG_LEVEL", "info"),
		LogFile:              getEnv("LOG_FILE", ""),
		SlowRequestThreshold: parseDuration(getEnv("SLOW_REQUEST_THRESHOLD", "200ms"), 200*time.Millisecond),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		CacheTTL:      parseDuration(getEnv("CACHE_TTL", "10m"), 10*time.Minute),

		StrictStatusTransitions:    getEnvBool("STRICT_STATUS_TRANSITIONS", false),
		RecomputeAppointmentTotals: getEnvBool("RECOMPUTE_APPOINTMENT_TOTALS", false),

		OfferExpirySchedule: getEnv("OFFER_EXPIRY_SCHEDULE", "@hourly"),
	}
}

func (c *Config) DSN() string {
	if c.DBURL != "" {
		return c.DBURL
	}
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
