package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DefaultMaxPDFSize is the largest PDF upload accepted, in bytes (10 MiB).
const DefaultMaxPDFSize = 10 * 1024 * 1024

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Storage
	DBPath    string
	UploadDir string

	// Ingestion limits
	MaxPDFSizeBytes int64
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port:      getEnv("PORT", "8080"),
		Env:       getEnv("ENV", "development"),
		DBPath:    getEnv("DB_PATH", "debtfreepro.db"),
		UploadDir: getEnv("UPLOAD_DIR", "uploads"),
	}

	// Parse PDF size limit
	sizeStr := getEnv("MAX_PDF_SIZE_BYTES", "")
	if sizeStr == "" {
		config.MaxPDFSizeBytes = DefaultMaxPDFSize
	} else {
		size, err := strconv.ParseInt(sizeStr, 10, 64)
		if err != nil || size <= 0 {
			log.Printf("Warning: invalid MAX_PDF_SIZE_BYTES value '%s', falling back to 10MiB\n", sizeStr)
			size = DefaultMaxPDFSize
		}
		config.MaxPDFSizeBytes = size
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
