package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// DiscordConfiguration holds the bot credentials and the broadcast channel.
type DiscordConfiguration struct {
	Token          string
	QueueChannelID string
}

// DatabaseConfiguration holds the driver and connection string.
// The driver can be sqlite (default) or postgres.
type DatabaseConfiguration struct {
	Driver string
	DSN    string
}

// RedisConfiguration holds the optional rank cache connection.
type RedisConfiguration struct {
	Host     string
	Port     string
	Password string
}

// BucketConfiguration holds the optional S3 bucket used for the cycle logs.
type BucketConfiguration struct {
	Region       string
	AccessKey    string
	AccessSecret string
	Endpoint     string
	LogBucket    string
}

// OverFastConfiguration holds the remote rank service settings.
type OverFastConfiguration struct {
	BaseURL      string
	RequestDelay time.Duration
}

// QueueConfiguration holds the queue cycle timings.
type QueueConfiguration struct {
	UpdateInterval time.Duration
	MaxAge         time.Duration
}

// Config is the full application configuration.
type Config struct {
	Discord  DiscordConfiguration
	Database DatabaseConfiguration
	Redis    RedisConfiguration
	Bucket   BucketConfiguration
	OverFast OverFastConfiguration
	Queue    QueueConfiguration
}

// Load reads the .env file (outside docker) and builds the configuration.
func Load() (*Config, error) {
	// Load the environment variables if not running on Docker.
	if os.Getenv("ENVIRONMENT") != "docker" {
		godotenv.Load()
	}

	cfg := &Config{
		Discord: DiscordConfiguration{
			Token:          os.Getenv("DISCORD_TOKEN"),
			QueueChannelID: os.Getenv("QUEUE_CHANNEL_ID"),
		},
		Database: DatabaseConfiguration{
			Driver: getEnvDefault("DB_DRIVER", "sqlite"),
			DSN:    getEnvDefault("DB_DSN", "data/bot.db"),
		},
		Redis: RedisConfiguration{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     os.Getenv("REDIS_PORT"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		Bucket: BucketConfiguration{
			Region:       os.Getenv("BUCKET_REGION"),
			AccessKey:    os.Getenv("BUCKET_ACCESS_KEY"),
			AccessSecret: os.Getenv("BUCKET_ACCESS_SECRET"),
			Endpoint:     os.Getenv("BUCKET_ENDPOINT"),
			LogBucket:    os.Getenv("BUCKET_LOG_BUCKET"),
		},
		OverFast: OverFastConfiguration{
			BaseURL:      getEnvDefault("OVERFAST_BASE_URL", "https://overfast-api.tekrop.fr"),
			RequestDelay: getEnvDuration("OVERFAST_REQUEST_DELAY", 100*time.Millisecond),
		},
		Queue: QueueConfiguration{
			UpdateInterval: getEnvDuration("QUEUE_UPDATE_INTERVAL", 10*time.Minute),
			MaxAge:         getEnvDuration("QUEUE_MAX_AGE", 24*time.Hour),
		},
	}

	if cfg.Discord.Token == "" {
		return nil, fmt.Errorf("DISCORD_TOKEN environment variable is not set")
	}

	return cfg, nil
}

// getEnvDefault returns the environment variable or the fallback if empty.
func getEnvDefault(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvDuration parses a duration environment variable, falling back on
// missing or invalid values.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
