// Package config provides configuration management for the application.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the application.
type Config struct {
	// AWS
	AWSRegion      string
	S3Bucket       string
	SESSenderEmail string
	// NotifyEmail receives batch summaries; empty disables them.
	NotifyEmail string

	// Database
	DatabaseURLOverride string
	DBHost              string
	DBPort              int
	DBName              string
	DBUser              string
	DBPassword          string

	// Scoring
	ScoringConfigPath string
	BatchConcurrency  int

	// Application
	Stage    string
	LogLevel string
	Port     string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	_ = godotenv.Load()

	cfg := &Config{
		// AWS
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		S3Bucket:       getEnv("S3_BUCKET", "retirement-match-batches-dev"),
		SESSenderEmail: getEnv("SES_SENDER_EMAIL", ""),
		NotifyEmail:    getEnv("NOTIFY_EMAIL", ""),

		// Database
		DatabaseURLOverride: getEnv("DATABASE_URL", ""),
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnvInt("DB_PORT", 5432),
		DBName:              getEnv("DB_NAME", "retirement"),
		DBUser:              getEnv("DB_USER", "postgres"),
		DBPassword:          getEnv("DB_PASSWORD", ""),

		// Scoring
		ScoringConfigPath: getEnv("SCORING_CONFIG_PATH", ""),
		BatchConcurrency:  getEnvInt("BATCH_CONCURRENCY", 0),

		// Application
		Stage:    getEnv("STAGE", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Port:     getEnv("PORT", "8080"),
	}

	return cfg, nil
}

// DatabaseConfigured reports whether enough settings exist to attempt a
// database connection.
func (c *Config) DatabaseConfigured() bool {
	return c.DatabaseURLOverride != "" || c.DBPassword != ""
}

// DatabaseURL returns the PostgreSQL connection string.
func (c *Config) DatabaseURL() string {
	if c.DatabaseURLOverride != "" {
		return c.DatabaseURLOverride
	}
	sslMode := "require" // Use SSL for RDS
	if c.DBHost == "localhost" || c.DBHost == "127.0.0.1" {
		sslMode = "disable" // Disable SSL for local development
	}
	return "postgres://" + c.DBUser + ":" + c.DBPassword + "@" + c.DBHost + ":" + strconv.Itoa(c.DBPort) + "/" + c.DBName + "?sslmode=" + sslMode
}

// NotificationsEnabled reports whether batch summaries should be emailed.
func (c *Config) NotificationsEnabled() bool {
	return c.SESSenderEmail != "" && c.NotifyEmail != ""
}

// LoadScoringFor returns the scoring table named by ScoringConfigPath, or the
// built-in defaults when no path is set. A positive BatchConcurrency
// overrides the file.
func (c *Config) LoadScoringFor() (*Scoring, Validation, error) {
	var (
		s   *Scoring
		err error
	)
	if c.ScoringConfigPath == "" {
		s = DefaultScoring()
	} else {
		s, err = LoadScoring(c.ScoringConfigPath)
		if err != nil {
			return nil, Validation{}, err
		}
	}
	if c.BatchConcurrency > 0 {
		s.Batch.Concurrency = c.BatchConcurrency
	}
	v := s.Validate()
	if !v.OK() {
		return nil, v, v.Err()
	}
	return s, v, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an environment variable as int or returns a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
