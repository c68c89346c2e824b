// Package config provides configuration management for the application.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. VIDTUBE_DATABASE_HOST.
const EnvPrefix = "VIDTUBE"

// Config holds all configuration for the application.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Storage  StorageConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
	Worker   WorkerConfig
	Sweeper  SweeperConfig
	Logging  LoggingConfig
}

// ServerConfig contains HTTP server configuration.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type ServerConfig struct {
	Port            int
	ShutdownTimeout time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	CORSOrigin      string
	MaxUploadSize   int64
	UploadDir       string
}

// DatabaseConfig contains database connection configuration.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type DatabaseConfig struct {
	Host           string
	Name           string
	User           string
	Password       string
	SSLMode        string
	Port           int
	MaxConnections int
	MinConnections int
	MaxIdleTime    time.Duration
	MaxLifetime    time.Duration
}

// AuthConfig contains access token settings.
type AuthConfig struct {
	AccessTokenSecret string
	AccessTokenTTL    time.Duration
	Issuer            string
	CookieName        string
}

// StorageConfig contains the asset host (S3 compatible) settings.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string
	Region    string
	UseSSL    bool
	Timeout   time.Duration
}

// RedisConfig contains the Redis connection used by the task queue.
type RedisConfig struct {
	URL string
}

// RabbitMQConfig contains RabbitMQ connection configuration for domain events.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type RabbitMQConfig struct {
	Enabled  bool
	Host     string
	User     string
	Password string
	Exchange string
	Port     int
}

// WorkerConfig controls the background task worker.
type WorkerConfig struct {
	Concurrency int
}

// SweeperConfig controls the orphan sweeper.
type SweeperConfig struct {
	Interval time.Duration
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level string
	File  string
}

// LoadDotEnv loads variables from a .env file in the working directory.
// A missing file is not an error.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// Load loads configuration from file and environment variables.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// DatabaseURL returns a postgres:// URL usable by both pgx and golang-migrate.
func (c *DatabaseConfig) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     c.Name,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}

// AMQPURL returns the broker URL.
func (c *RabbitMQConfig) AMQPURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/", c.User, c.Password, c.Host, c.Port)
}

func setDefaults() {
	// Server
	viper.SetDefault("server.port", 8000)
	viper.SetDefault("server.shutdowntimeout", 30*time.Second)
	viper.SetDefault("server.readtimeout", 60*time.Second)
	viper.SetDefault("server.writetimeout", 120*time.Second)
	viper.SetDefault("server.corsorigin", "http://localhost:5173")
	viper.SetDefault("server.maxuploadsize", 512<<20) // 512MB
	viper.SetDefault("server.uploaddir", "./public/temp")

	// Database
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.name", "vidtube")
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.maxconnections", 25)
	viper.SetDefault("database.minconnections", 5)
	viper.SetDefault("database.maxidletime", 30*time.Minute)
	viper.SetDefault("database.maxlifetime", 1*time.Hour)

	// Auth
	viper.SetDefault("auth.accesstokensecret", "")
	viper.SetDefault("auth.accesstokenttl", 24*time.Hour)
	viper.SetDefault("auth.issuer", "vidtube")
	viper.SetDefault("auth.cookiename", "accessToken")

	// Storage
	viper.SetDefault("storage.endpoint", "localhost:9000")
	viper.SetDefault("storage.accesskey", "minioadmin")
	viper.SetDefault("storage.secretkey", "minioadmin")
	viper.SetDefault("storage.bucket", "vidtube")
	viper.SetDefault("storage.publicurl", "http://localhost:9000")
	viper.SetDefault("storage.region", "us-east-1")
	viper.SetDefault("storage.usessl", false)
	viper.SetDefault("storage.timeout", 5*time.Minute)

	// Redis
	viper.SetDefault("redis.url", "redis://localhost:6379/0")

	// RabbitMQ
	viper.SetDefault("rabbitmq.enabled", false)
	viper.SetDefault("rabbitmq.host", "localhost")
	viper.SetDefault("rabbitmq.port", 5672)
	viper.SetDefault("rabbitmq.user", "guest")
	viper.SetDefault("rabbitmq.password", "guest")
	viper.SetDefault("rabbitmq.exchange", "vidtube.events")

	// Worker
	viper.SetDefault("worker.concurrency", 4)

	// Sweeper
	viper.SetDefault("sweeper.interval", 6*time.Hour)

	// Logging
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.file", "")
}
