package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	DBName    string
	JWTKey    string
	SaltRound int

	DefaultCategory  string // category applied when a listing omits one
	DeleteCodeLength int

	UploadDir      string
	ImageCloudName string // remote image provider; empty means local disk

	RatingsRepairCron string // cron spec for the repair recompute; empty disables it
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	// Initialize AppConfig with values from environment variables
	AppConfig = &Config{
		Port:      getEnv("PORT", "5000"),
		DBName:    getEnv("DB_NAME", "spotsure"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		DefaultCategory:  getEnv("DEFAULT_CATEGORY", "Service"),
		DeleteCodeLength: getEnvInt("DELETE_CODE_LENGTH", 6),

		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		ImageCloudName: getEnv("IMAGE_CLOUD_NAME", ""),

		RatingsRepairCron: getEnv("RATINGS_REPAIR_CRON", ""),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.DeleteCodeLength < 6 {
		log.Println("Warning: DELETE_CODE_LENGTH below 6 makes delete codes guessable. Using 6.")
		AppConfig.DeleteCodeLength = 6
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
