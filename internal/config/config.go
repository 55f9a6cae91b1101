package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/bagdasarian/octofit-tracker/internal/apiclient"
)

type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Client   ClientConfig
	Log      LogConfig
}

type DatabaseConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"octofit"`
	Password string `env:"DB_PASSWORD" envDefault:"octofit"`
	DBName   string `env:"DB_NAME" envDefault:"octofit_db"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

// DSN returns the keyword/value connection string for the pgx driver.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

type ServerConfig struct {
	APIAddr         string        `env:"API_ADDR" envDefault:":8000"`
	DashboardAddr   string        `env:"DASHBOARD_ADDR" envDefault:":3000"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

type ClientConfig struct {
	CodespaceName string        `env:"CODESPACE_NAME"`
	APIURL        string        `env:"OCTOFIT_API_URL"`
	Timeout       time.Duration `env:"OCTOFIT_API_TIMEOUT" envDefault:"30s"`
}

type LogConfig struct {
	Level       string `env:"LOG_LEVEL" envDefault:"info"`
	Development bool   `env:"LOG_DEVELOPMENT" envDefault:"false"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MustLoad is Load that panics on a malformed environment.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// APIBaseURL is the REST API root the dashboard and CLI talk to.
func (c *Config) APIBaseURL() string {
	return apiclient.ResolveBaseURL(c.Client.APIURL, c.Client.CodespaceName)
}
