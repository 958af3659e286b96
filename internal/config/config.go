package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds all the runtime settings loaded from the environment.
type Config struct {
	Port            string
	MongoURI        string
	DBName          string
	JWTSecret       string
	TokenExpiry     time.Duration
	StreamAPIKey    string
	StreamAPISecret string
	Env             string
	FrontendOrigin  string
}

// LoadConfig reads configuration from a .env file (if present) and the
// process environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file found, relying on environment variables")
	}

	expiryHours := 168 // 7 days
	if raw := os.Getenv("TOKEN_EXPIRY_HOURS"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			expiryHours = parsed
		} else {
			logrus.WithField("TOKEN_EXPIRY_HOURS", raw).Warn("Invalid token expiry, using default")
		}
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:          getEnv("DB_NAME", "lingua_connect"),
		JWTSecret:       getEnv("JWT_SECRET_KEY", ""),
		TokenExpiry:     time.Duration(expiryHours) * time.Hour,
		StreamAPIKey:    os.Getenv("STREAM_API_KEY"),
		StreamAPISecret: os.Getenv("STREAM_API_SECRET"),
		Env:             getEnv("APP_ENV", "development"),
		FrontendOrigin:  getEnv("FRONTEND_ORIGIN", "http://localhost:5173"),
	}
}

// IsProduction reports whether the app runs with production settings
// (secure cookies).
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
