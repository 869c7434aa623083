package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"uidkit/internal/core/domain/model/uid"
)

const (
	DefaultHTTPPort      = "8080"
	DefaultStatsSchedule = "@every 1m"
)

type Config struct {
	HTTPPort      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSslMode     string
	Node          string
	StatsSchedule string
	LogLevel      string
}

// LoadConfig loads the given .env files into the environment (missing files are skipped,
// variables already set win) and reads the configuration from it.
func LoadConfig(envFiles ...string) (Config, error) {
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}

	config := Config{
		HTTPPort:      envOrDefault("HTTP_PORT", DefaultHTTPPort),
		DBHost:        os.Getenv("DB_HOST"),
		DBPort:        os.Getenv("DB_PORT"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		DBSslMode:     envOrDefault("DB_SSLMODE", "disable"),
		Node:          os.Getenv("UID_NODE"),
		StatsSchedule: envOrDefault("UID_STATS_SCHEDULE", DefaultStatsSchedule),
		LogLevel:      envOrDefault("LOG_LEVEL", "info"),
	}

	return config, config.Validate()
}

// Validate checks the values that cannot be checked by the components using them.
func (c Config) Validate() error {
	var errList []error
	for name, value := range map[string]string{
		"DB_HOST": c.DBHost,
		"DB_PORT": c.DBPort,
		"DB_USER": c.DBUser,
		"DB_NAME": c.DBName,
	} {
		if value == "" {
			errList = append(errList, fmt.Errorf("%s is required", name))
		}
	}
	if c.Node != "" {
		if _, err := uid.ParseNode(c.Node); err != nil {
			errList = append(errList, fmt.Errorf("UID_NODE: %w", err))
		}
	}
	if _, err := c.SlogLevel(); err != nil {
		errList = append(errList, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	return errors.Join(errList...)
}

// DSN is the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(c.LogLevel))
	return level, err
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
