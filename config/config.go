package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config stores all configuration of the application
type Config struct {
	// Server
	Port        string
	CORSOrigins []string

	// Database
	DatabaseDSN  string
	DatabaseName string
	DBLogLevel   string

	// JWT Authentication
	JWTSecret string
	JWTTTL    time.Duration

	// Uploads
	UploadDir            string
	ChannelImageDir      string
	ChannelImageMaxBytes int64
	MaxUploadBytes       int64

	// Logging
	LogLevel  string
	LogFormat string

	// Redis (token denylist); empty address keeps revocations in memory
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// MQTT (launcher refresh events); empty broker disables publishing
	MQTTBrokerURL   string
	MQTTClientID    string
	MQTTUsername    string
	MQTTPassword    string
	MQTTTopicPrefix string
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// .env is optional; real environment variables always win
	_ = godotenv.Load()

	dsn, dbName, err := resolveMySQLDSN()
	if err != nil {
		return nil, fmt.Errorf("resolve database dsn: %w", err)
	}

	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set")
	}

	return &Config{
		Port:        getEnv("PORT", "3001"),
		CORSOrigins: parseList(os.Getenv("CORS_ORIGINS")),

		DatabaseDSN:  dsn,
		DatabaseName: dbName,
		DBLogLevel:   getEnv("DB_LOG_LEVEL", "warn"),

		JWTSecret: secret,
		JWTTTL:    getEnvAsDuration("JWT_TTL", time.Hour),

		UploadDir:            getEnv("UPLOAD_DIR", "uploads"),
		ChannelImageDir:      getEnv("CHANNEL_IMAGE_DIR", "TVLauncher/livetv"),
		ChannelImageMaxBytes: int64(getEnvAsInt("CHANNEL_IMAGE_MAX_BYTES", 5*1024*1024)),
		MaxUploadBytes:       int64(getEnvAsInt("MAX_UPLOAD_BYTES", 50*1024*1024)),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		MQTTBrokerURL:   getEnv("MQTT_BROKER_URL", ""),
		MQTTClientID:    getEnv("MQTT_CLIENT_ID", "hotel-admin"),
		MQTTUsername:    getEnv("MQTT_USERNAME", ""),
		MQTTPassword:    getEnv("MQTT_PASSWORD", ""),
		MQTTTopicPrefix: getEnv("MQTT_TOPIC_PREFIX", "hotel"),
	}, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// parseList splits a comma separated value; an empty result means "*".
func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil && value > 0 {
		return value
	}
	return defaultValue
}
