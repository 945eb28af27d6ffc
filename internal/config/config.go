package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName                string
	AppEnv                 string
	AppPort                string
	DatabaseURL            string
	RedisURL               string
	JWTSecret              string
	TokenTTL               time.Duration
	OTPTTL                 time.Duration
	ResetTokenTTL          time.Duration
	SMTPHost               string
	SMTPPort               string
	SMTPUsername           string
	SMTPPassword           string
	SMTPFrom               string
	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadFolder string
	DashboardCacheTTL      time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("ALUMNET")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "AlumNet API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("jwt.ttl", "24h")
	v.SetDefault("otp.ttl", "10m")
	v.SetDefault("reset.ttl", "30m")
	v.SetDefault("smtp.port", "587")
	v.SetDefault("cloudinary.folder", "alumnet/profiles")
	v.SetDefault("dashboard.cache_ttl", "5m")

	tokenTTL, err := parseTTL(v.GetString("jwt.ttl"), "jwt ttl")
	if err != nil {
		return Config{}, err
	}

	otpTTL, err := parseTTL(v.GetString("otp.ttl"), "otp ttl")
	if err != nil {
		return Config{}, err
	}

	resetTTL, err := parseTTL(v.GetString("reset.ttl"), "reset token ttl")
	if err != nil {
		return Config{}, err
	}

	cacheTTL, err := parseTTL(v.GetString("dashboard.cache_ttl"), "dashboard cache ttl")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppName:                v.GetString("app.name"),
		AppEnv:                 v.GetString("app.env"),
		AppPort:                v.GetString("app.port"),
		DatabaseURL:            v.GetString("database.url"),
		RedisURL:               v.GetString("redis.url"),
		JWTSecret:              v.GetString("jwt.secret"),
		TokenTTL:               tokenTTL,
		OTPTTL:                 otpTTL,
		ResetTokenTTL:          resetTTL,
		SMTPHost:               v.GetString("smtp.host"),
		SMTPPort:               v.GetString("smtp.port"),
		SMTPUsername:           v.GetString("smtp.username"),
		SMTPPassword:           v.GetString("smtp.password"),
		SMTPFrom:               v.GetString("smtp.from"),
		CloudinaryCloudName:    v.GetString("cloudinary.cloud_name"),
		CloudinaryAPIKey:       v.GetString("cloudinary.api_key"),
		CloudinaryAPISecret:    v.GetString("cloudinary.api_secret"),
		CloudinaryUploadFolder: v.GetString("cloudinary.folder"),
		DashboardCacheTTL:      cacheTTL,
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	return cfg, nil
}

func parseTTL(value, name string) (time.Duration, error) {
	if value == "" {
		return 0, fmt.Errorf("%s must be provided", name)
	}

	ttl, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}

	return ttl, nil
}
