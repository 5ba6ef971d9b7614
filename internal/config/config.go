package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds process configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string

	HTTPAddr string
	DataDir  string

	// Operator is the fixed actor identity stamped on every mutation and
	// audit event. There is no authentication model; every caller acts as
	// this operator.
	Operator string

	LogLevel  string
	LogFormat string
}

// Load reads configuration from the environment. A .env file in the working
// directory is honored when present.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: skipping .env: %v", err)
	}

	return Config{
		AppName:     getEnv("APP_NAME", "grazebox-backoffice"),
		AppVersion:  getEnv("APP_VERSION", "dev"),
		Environment: getEnv("ENVIRONMENT", "development"),
		HTTPAddr:    getEnv("HTTP_ADDR", ":8080"),
		DataDir:     getEnv("DATA_DIR", "data"),
		Operator:    getEnv("OPERATOR_IDENTITY", "admin"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
