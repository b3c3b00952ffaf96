package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/brettboylen/reddit-post-stats/api"
)

// Config holds all configuration for the application
type Config struct {
	App    AppConfig
	Reddit RedditConfig
	Export ExportConfig
}

// AppConfig holds application-level configuration
type AppConfig struct {
	Name    string
	Version string
}

// RedditConfig holds Reddit API configuration
type RedditConfig struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
	UserAgent    string
	PostLimit    int
	AuthURL      string
	APIURL       string
}

// ExportConfig holds CSV export configuration
type ExportConfig struct {
	Path string
}

// Credentials returns the Reddit credentials from the config
func (c RedditConfig) Credentials() api.Credentials {
	return api.Credentials{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		Username:     c.Username,
		Password:     c.Password,
		UserAgent:    c.UserAgent,
	}
}

// LoadConfig loads configuration from a .env file, falling back to the process environment.
// Credentials are not validated here; the fetcher reports which ones are missing.
func LoadConfig(envPath string, log *logrus.Logger) (*Config, error) {
	if envPath == "" {
		envPath = ".env"
	}

	if err := godotenv.Load(envPath); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
		log.WithField("file", envPath).Warn("No .env file found, using environment only")
	} else {
		log.WithField("file", envPath).Info("Loaded .env file")
	}

	config := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "Reddit Post Stats"),
			Version: getEnv("APP_VERSION", "1.0.0"),
		},
		Reddit: RedditConfig{
			ClientID:     getEnv("REDDIT_CLIENT_ID", ""),
			ClientSecret: getEnv("REDDIT_CLIENT_SECRET", ""),
			Username:     getEnv("REDDIT_USERNAME", ""),
			Password:     getEnv("REDDIT_PASSWORD", ""),
			UserAgent:    getEnv("REDDIT_USER_AGENT", api.DefaultUserAgent),
			PostLimit:    getEnvAsInt("REDDIT_POST_LIMIT", 10),
			AuthURL:      getEnv("REDDIT_AUTH_URL", api.DefaultAuthURL),
			APIURL:       getEnv("REDDIT_API_URL", api.DefaultBaseURL),
		},
		Export: ExportConfig{
			Path: getEnv("EXPORT_PATH", "reddit_posts_stats.csv"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// MaskSecret hides all but the edges of a secret for display
func MaskSecret(value string) string {
	if len(value) > 8 {
		return value[:4] + "..." + value[len(value)-4:]
	}
	return "****"
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// validateConfig validates the non-credential settings.
// A non-positive post limit is left for the fetcher to report like missing credentials.
func validateConfig(config *Config) error {
	if config.Export.Path == "" {
		return fmt.Errorf("EXPORT_PATH must not be empty")
	}
	return nil
}
