// internal/config/config.go
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"jgpos/internal/logger"
)

// Variables available everywhere
var (
	baseDir       string
	dataDirectory string
	logsDirectory string

	// Exported settings
	DatabasePath  string
	LogFileFormat string

	// Store identity printed on receipts and reports
	StoreName    string
	StoreAddress string
	StorePhone   string

	// The single register credential
	CashierEmail    string
	CashierPassword string
	CashierName     string
)

// Built-in defaults; every one of these can be overridden from the environment.
const (
	defaultStoreName    = "JGP Trading & Construction Supply"
	defaultStoreAddress = "Pedro Coleto St. Brgy. San Juan, Surigao City 8400"
	defaultStorePhone   = "09453467938"

	defaultCashierEmail    = "pastorjester@pos.com"
	defaultCashierPassword = "cashier2025"
	defaultCashierName     = "POS Cashier"
)

//
// --- Utility Helpers ---
//

// Helper: get a setting based on ENVIRONMENT (dev or prod)
func GetEnvBasedSetting(base string) string {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "dev"
	}
	return os.Getenv(fmt.Sprintf("%s_%s", base, strings.ToUpper(env)))
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Helper: log which environment is running
func LogCurrentEnvironment() {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "dev"
	}

	if env == "dev" {
		logger.LogInfo("Running in development environment")
	} else {
		logger.LogInfo("Running in production environment")
	}
}

//
// --- Loaders ---
//

// LoadEnv reads .env file
func LoadEnv() {
	wd, err := os.Getwd()
	if err != nil {
		log.Printf("Could not determine working directory: %v", err)
	} else {
		log.Printf("Current working directory: %s", wd)
	}

	err = godotenv.Load(".env")
	if err != nil {
		log.Printf("No .env file found in %s. Using system environment variables.", wd)
	} else {
		log.Printf("Loaded environment variables from .env file in %s", wd)
	}

	StoreName = envOrDefault("STORE_NAME", defaultStoreName)
	StoreAddress = envOrDefault("STORE_ADDRESS", defaultStoreAddress)
	StorePhone = envOrDefault("STORE_PHONE", defaultStorePhone)

	CashierEmail = envOrDefault("CASHIER_EMAIL", defaultCashierEmail)
	CashierPassword = envOrDefault("CASHIER_PASSWORD", defaultCashierPassword)
	CashierName = envOrDefault("CASHIER_NAME", defaultCashierName)
}

// LoggerConfig returns a logger.Config struct populated from environment
func LoggerConfig() logger.Config {
	logDir := GetEnvBasedSetting("LOGS_DIRECTORY")
	if logDir == "" {
		logDir = "./logs"
	}

	logFormat := GetEnvBasedSetting("LOG_FILE_FORMAT")
	if logFormat == "" {
		logFormat = "register_%s.log"
	}

	timezone := os.Getenv("TIME_ZONE")
	if timezone == "" {
		timezone = "Local"
	}

	return logger.Config{
		LogsDirectory: logDir,
		LogFileFormat: logFormat,
		TimeZone:      timezone,
		Debug:         os.Getenv("LOG_DEBUG") == "true",
	}
}

// ConfigurePaths sets up folders and paths
func ConfigurePaths() {
	wd, err := os.Getwd()
	if err != nil {
		logger.LogFatal("Failed to get working directory: %v", err)
	}
	baseDir = wd

	dataDir := GetEnvBasedSetting("DATA_DIRECTORY")
	if dataDir != "" {
		dataDirectory = dataDir
	} else {
		dataDirectory = filepath.Join(baseDir, "data")
	}

	logsDir := GetEnvBasedSetting("LOGS_DIRECTORY")
	if logsDir != "" {
		logsDirectory = logsDir
	} else {
		logsDirectory = filepath.Join(baseDir, "logs")
	}

	if err := os.MkdirAll(dataDirectory, 0o775); err != nil {
		logger.LogFatal("Failed to create data directory '%s': %v", dataDirectory, err)
	}

	dbPath := GetEnvBasedSetting("DATABASE_PATH")
	if dbPath != "" {
		DatabasePath = dbPath
	} else {
		DatabasePath = filepath.Join(dataDirectory, "register.db")
	}

	LogFileFormat = GetEnvBasedSetting("LOG_FILE_FORMAT")
	if LogFileFormat == "" {
		LogFileFormat = "register_%s.log"
	}
}

// DataDirectory returns the resolved data directory.
func DataDirectory() string {
	return dataDirectory
}

// LogsDirectory returns the resolved logs directory.
func LogsDirectory() string {
	return logsDirectory
}
