package config

import (
	"fmt"
	"log"
	"os"

	"github.com/anonto42/forager-notifier/validators"
	"github.com/joho/godotenv"
)

type Config struct {
	Port                    string `validate:"required,numeric"`
	Env                     string `validate:"oneof=development staging production test"`
	FirebaseCredentialsPath string
	FirebaseProjectID       string
	PostgresConnStr         string
	MongoURI                string `validate:"omitempty,startswith=mongodb"`
	MongoDatabase           string `validate:"required_with=MongoURI"`
	TriggerAudience         string `validate:"omitempty,url"`
	TriggerJWTSecret        string `validate:"omitempty,min=16"`
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	cfg := &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		FirebaseProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
		PostgresConnStr:         getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:                getEnv("MONGO_URI", ""),
		MongoDatabase:           getEnv("MONGO_DATABASE", "forager"),
		TriggerAudience:         getEnv("TRIGGER_AUDIENCE", ""),
		TriggerJWTSecret:        getEnv("TRIGGER_JWT_SECRET", ""),
	}

	if err := validators.NewValidator().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// TriggerAuthEnabled reports whether trigger deliveries must carry a token.
func (c *Config) TriggerAuthEnabled() bool {
	return c.TriggerAudience != "" || c.TriggerJWTSecret != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
