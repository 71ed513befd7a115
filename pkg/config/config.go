package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

// Config holds all process-wide settings. It is constructed once at startup
// and never mutated afterwards.
type Config struct {
	DatabaseBusyTimeout       time.Duration
	DatabaseConnectRetryCount int
	DatabaseConnectRetryDelay time.Duration
	DatabaseDebug             bool
	DatabaseFilePath          string
	DatabaseMaxRetries        int
	Environment               string
	ServerHost                string
	ServerPort                int
}

// envPrefix namespaces every environment variable this process reads, e.g.
// LIBRARY_SERVER_PORT or LIBRARY_DATABASE_FILE_PATH.
const envPrefix = "LIBRARY_"

func New() (*Config, error) {
	// A local .env file is optional; missing is fine.
	_ = godotenv.Load()

	k := koanf.New(".")
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	cfg := &Config{
		DatabaseBusyTimeout:       5 * time.Second,
		DatabaseConnectRetryCount: 5,
		DatabaseConnectRetryDelay: 2 * time.Second,
		DatabaseFilePath:          "./tmp/catalog.sqlite",
		DatabaseMaxRetries:        5,
		Environment:               "development",
		ServerHost:                "127.0.0.1",
		ServerPort:                3000,
	}

	if k.Exists("environment") {
		cfg.Environment = k.String("environment")
	}
	switch cfg.Environment {
	case "development":
		cfg.DatabaseDebug = true
	case "test":
		cfg.DatabaseFilePath = ":memory:"
	case "production":
		cfg.ServerHost = ""
	}

	if k.Exists("database.file.path") {
		cfg.DatabaseFilePath = k.String("database.file.path")
	}
	if k.Exists("database.debug") {
		cfg.DatabaseDebug = k.Bool("database.debug")
	}
	if k.Exists("database.busy.timeout") {
		cfg.DatabaseBusyTimeout = k.Duration("database.busy.timeout")
	}
	if k.Exists("database.max.retries") {
		cfg.DatabaseMaxRetries = k.Int("database.max.retries")
	}
	if k.Exists("server.host") {
		cfg.ServerHost = k.String("server.host")
	}
	if k.Exists("server.port") {
		cfg.ServerPort = k.Int("server.port")
	}

	return cfg, nil
}
