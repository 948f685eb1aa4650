package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"dispensary-loyalty/internal/core/domain"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode      string
	Port         string
	Locale       string
	DotEnvLoaded bool
	Database     DatabaseConfig
	JWT          JWTConfig
	Loyalty      LoyaltyConfig
	SMS          SMSConfig
	Notify       NotifyConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// JWTConfig holds the secret used to verify identity tokens
type JWTConfig struct {
	Secret string
}

// LoyaltyConfig holds the point rules
type LoyaltyConfig struct {
	VisitPoints           int
	FirstTimeSignUpPoints int
	PointsCap             int
	InvitePromptMaxVisits int
}

// SMSConfig holds Twilio credentials. Empty credentials disable SMS.
type SMSConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

// NotifyConfig holds the LINE Notify token. Empty disables push.
type NotifyConfig struct {
	LineToken string
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// .env is optional in production
	loaded := godotenv.Load() == nil

	// trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	loyalty, err := loadLoyaltyConfig()
	if err != nil {
		return nil, err
	}

	config := &Config{
		AppMode:      appMode,
		Port:         getEnv("PORT", "3000"),
		Locale:       getEnv("LOCALE", "en"),
		DotEnvLoaded: loaded,
		Database:     loadDatabaseConfig(appMode),
		JWT:          loadJWTConfig(appMode),
		Loyalty:      loyalty,
		SMS:          loadSMSConfig(appMode),
		Notify:       NotifyConfig{LineToken: getEnv("LINE_NOTIFY_TOKEN", "")},
	}

	return config, nil
}

// modePrefix returns the env prefix for mode
func modePrefix(mode string) string {
	if mode == "prod" {
		return "PROD_"
	}
	return "DEV_"
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := modePrefix(mode)

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "dispensary_loyalty"),
	}
}

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	return JWTConfig{
		Secret: getEnv(modePrefix(mode)+"JWT_SECRET", "default_secret"),
	}
}

// loadSMSConfig loads Twilio config based on mode
func loadSMSConfig(mode string) SMSConfig {
	prefix := modePrefix(mode)

	return SMSConfig{
		AccountSID: getEnv(prefix+"TWILIO_ACCOUNT_SID", ""),
		AuthToken:  getEnv(prefix+"TWILIO_AUTH_TOKEN", ""),
		FromNumber: getEnv(prefix+"TWILIO_FROM_NUMBER", ""),
	}
}

// loadLoyaltyConfig loads the point rules
func loadLoyaltyConfig() (LoyaltyConfig, error) {
	var cfg LoyaltyConfig
	fields := []struct {
		key  string
		def  int
		dest *int
	}{
		{"VISIT_POINTS", domain.DefaultVisitPoints, &cfg.VisitPoints},
		{"FIRST_TIME_SIGNUP_POINTS", domain.DefaultFirstTimeSignUpPoints, &cfg.FirstTimeSignUpPoints},
		{"POINTS_CAP", domain.DefaultPointsCap, &cfg.PointsCap},
		{"INVITE_PROMPT_MAX_VISITS", domain.DefaultInvitePromptMaxVisits, &cfg.InvitePromptMaxVisits},
	}
	for _, f := range fields {
		n, err := getEnvInt(f.key, f.def)
		if err != nil {
			return LoyaltyConfig{}, err
		}
		if n < 0 {
			return LoyaltyConfig{}, fmt.Errorf("invalid %s: %d (must not be negative)", f.key, n)
		}
		*f.dest = n
	}
	return cfg, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: '%s' (must be an integer)", key, value)
	}
	return n, nil
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "https://loyalty.example.com"
	}
	return origins
}
