package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI      string
	MongoDatabase string
	RedisAddr     string
	HTTPPort      string

	ContentRoot string
	StudyFile   string

	AdminPassword string
	JWTSecret     string
	SessionTTL    time.Duration
	AnsweredTTL   time.Duration

	RateLimit      float64 // requests per second per client IP
	RateBurst      int
	AllowedOrigins string
}

// Load reads an optional .env file and then the process environment
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not read .env: %v", err)
	}

	return &Config{
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:  getEnv("MONGO_DATABASE", "engagement_survey"),
		RedisAddr:      redisAddr(getEnv("REDIS_URI", "localhost:6379")),
		HTTPPort:       getEnv("PORT", "8080"),
		ContentRoot:    getEnv("CONTENT_ROOT", "survey_images"),
		StudyFile:      getEnv("STUDY_FILE", "study.yaml"),
		AdminPassword:  getEnv("ADMIN_PASSWORD", "password123"),
		JWTSecret:      getEnv("JWT_SECRET", "super-secret-key-change-in-production"),
		SessionTTL:     getDuration("SESSION_TTL", 2*time.Hour),
		AnsweredTTL:    getDuration("ANSWERED_CACHE_TTL", time.Minute),
		RateLimit:      getFloat("RATE_LIMIT", 20),
		RateBurst:      getInt("RATE_BURST", 40),
		AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
	}
}

// redisAddr strips the redis:// scheme go-redis Options.Addr does not accept
func redisAddr(uri string) string {
	return strings.TrimPrefix(uri, "redis://")
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err == nil {
			return d
		}
		log.Printf("Warning: invalid %s=%q, using %s", key, val, defaultVal)
	}
	return defaultVal
}

func getFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err == nil {
			return f
		}
		log.Printf("Warning: invalid %s=%q, using %v", key, val, defaultVal)
	}
	return defaultVal
}

func getInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
		log.Printf("Warning: invalid %s=%q, using %d", key, val, defaultVal)
	}
	return defaultVal
}
