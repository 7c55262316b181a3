package utils

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	DefaultRecipesSourceURL = "https://dummyjson.com/recipes"
	DefaultConfigPath       = "config.yaml"
)

type Config struct {
	// Application
	AppPort       string `yaml:"APP_PORT"`
	AppEnv        string `yaml:"APP_ENV"`
	LogLevel      string `yaml:"LOG_LEVEL"`
	AccessLogPath string `yaml:"ACCESS_LOG_PATH"`
	RateLimitMax  int    `yaml:"RATE_LIMIT_MAX"`

	// Database configuration
	DBUser            string        `yaml:"DB_USER"`
	DBName            string        `yaml:"DB_NAME"`
	DBPassword        string        `yaml:"DB_PASSWORD"`
	DBPort            string        `yaml:"DB_PORT"`
	DBHost            string        `yaml:"DB_HOST"`
	DBSSLMode         string        `yaml:"DB_SSL_MODE"`
	DBMaxIdleConns    int           `yaml:"DB_MAX_IDLE_CONNS"`
	DBMaxOpenConns    int           `yaml:"DB_MAX_OPEN_CONNS"`
	DBConnMaxLifetime time.Duration `yaml:"DB_CONN_MAX_LIFETIME"`
	DBLogLevel        string        `yaml:"DB_LOG_LEVEL"`

	// Auth
	JWTSecret  string        `yaml:"JWT_SECRET"`
	JWTTTL     time.Duration `yaml:"JWT_TTL"`
	BcryptCost int           `yaml:"BCRYPT_COST"`

	// Recipe source
	RecipesSourceURL     string        `yaml:"RECIPES_SOURCE_URL"`
	RecipesSourceTimeout time.Duration `yaml:"RECIPES_SOURCE_TIMEOUT"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`
}

// LoadConfig reads the YAML file at path (a missing file is not an error), then
// a .env file if present, then lets environment variables override each key.
func LoadConfig(path string) (Config, error) {
	var config Config

	file, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(file, &config); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	// .env is optional
	_ = godotenv.Load()

	config.applyEnv()
	config.applyDefaults()

	if config.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	return config, nil
}

func (c *Config) applyEnv() {
	setString(&c.AppPort, "APP_PORT")
	setString(&c.AppEnv, "APP_ENV")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.AccessLogPath, "ACCESS_LOG_PATH")
	setInt(&c.RateLimitMax, "RATE_LIMIT_MAX")

	setString(&c.DBUser, "DB_USER")
	setString(&c.DBName, "DB_NAME")
	setString(&c.DBPassword, "DB_PASSWORD")
	setString(&c.DBPort, "DB_PORT")
	setString(&c.DBHost, "DB_HOST")
	setString(&c.DBSSLMode, "DB_SSL_MODE")
	setInt(&c.DBMaxIdleConns, "DB_MAX_IDLE_CONNS")
	setInt(&c.DBMaxOpenConns, "DB_MAX_OPEN_CONNS")
	setDuration(&c.DBConnMaxLifetime, "DB_CONN_MAX_LIFETIME")
	setString(&c.DBLogLevel, "DB_LOG_LEVEL")

	setString(&c.JWTSecret, "JWT_SECRET")
	setDuration(&c.JWTTTL, "JWT_TTL")
	setInt(&c.BcryptCost, "BCRYPT_COST")

	setString(&c.RecipesSourceURL, "RECIPES_SOURCE_URL")
	setDuration(&c.RecipesSourceTimeout, "RECIPES_SOURCE_TIMEOUT")

	setString(&c.SMTPHost, "SMTP_HOST")
	setString(&c.SMTPPort, "SMTP_PORT")
	setString(&c.SMTPSenderName, "SMTP_SENDER_NAME")
	setString(&c.SMTPAuthEmail, "SMTP_AUTH_EMAIL")
	setString(&c.SMTPAuthPassword, "SMTP_AUTH_PASSWORD")
}

func (c *Config) applyDefaults() {
	defaultString(&c.AppPort, "8080")
	defaultString(&c.AppEnv, "development")
	defaultString(&c.LogLevel, "info")
	defaultString(&c.AccessLogPath, "./logs/app.log")
	defaultInt(&c.RateLimitMax, 10)

	defaultString(&c.DBHost, "localhost")
	defaultString(&c.DBPort, "5432")
	defaultString(&c.DBUser, "postgres")
	defaultString(&c.DBName, "recipes")
	defaultString(&c.DBSSLMode, "disable")
	defaultInt(&c.DBMaxIdleConns, 10)
	defaultInt(&c.DBMaxOpenConns, 100)
	if c.DBConnMaxLifetime <= 0 {
		c.DBConnMaxLifetime = time.Hour
	}
	defaultString(&c.DBLogLevel, "warn")

	if c.JWTTTL <= 0 {
		c.JWTTTL = 24 * time.Hour
	}
	defaultInt(&c.BcryptCost, 12)

	defaultString(&c.RecipesSourceURL, DefaultRecipesSourceURL)
	if c.RecipesSourceTimeout <= 0 {
		c.RecipesSourceTimeout = 30 * time.Second
	}
}

// DSN returns the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost,
		c.DBUser,
		c.DBPassword,
		c.DBName,
		c.DBPort,
		c.DBSSLMode,
	)
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}

func defaultString(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

func defaultInt(dst *int, v int) {
	if *dst <= 0 {
		*dst = v
	}
}
