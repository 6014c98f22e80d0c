// Package config loads the deployment configuration into one explicit struct
// that is passed through the dependency container. No package carries mutable
// global settings.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	Log    LogConfig
	DB     DBConfig
	Redis  RedisConfig
	AWS    AWSConfig
	SMS    SMSConfig
	Email  EmailConfig
	JWT    JWTConfig
	Worker WorkerConfig
	Portal PortalConfig
}

type ServerConfig struct {
	Port         string
	WSPort       string
	AllowOrigins string
}

type LogConfig struct {
	Level  string
	Format string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN renders the lib/pq connection string.
func (d DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AWSConfig struct {
	Region string
	Bucket string
}

// SMSConfig describes the outbound SMS gateway: basic-auth JSON endpoint.
type SMSConfig struct {
	URI      string
	Username string
	Password string
	Timeout  time.Duration
}

type EmailConfig struct {
	FromAddress string
	Timeout     time.Duration
}

type JWTConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

type WorkerConfig struct {
	Count        int
	QueueName    string
	DequeueWait  time.Duration
	MaxAttempts  int
	RetryBackoff time.Duration
}

// PortalConfig holds portal-facing values used in outbound messages.
type PortalConfig struct {
	BaseURL      string
	Organisation string
}

// Load reads configuration from environment variables (PORTAL_ prefix) and an
// optional config file in the working directory.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PORTAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("portal")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	setDefaults(v)

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetString("server.port"),
			WSPort:       v.GetString("server.ws_port"),
			AllowOrigins: v.GetString("server.allow_origins"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		DB: DBConfig{
			Host:     v.GetString("db.host"),
			Port:     v.GetString("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			Name:     v.GetString("db.name"),
			SSLMode:  v.GetString("db.sslmode"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		AWS: AWSConfig{
			Region: v.GetString("aws.region"),
			Bucket: v.GetString("aws.bucket"),
		},
		SMS: SMSConfig{
			URI:      v.GetString("sms.uri"),
			Username: v.GetString("sms.username"),
			Password: v.GetString("sms.password"),
			Timeout:  v.GetDuration("sms.timeout"),
		},
		Email: EmailConfig{
			FromAddress: v.GetString("email.from"),
			Timeout:     v.GetDuration("email.timeout"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("jwt.secret"),
			Issuer: v.GetString("jwt.issuer"),
			TTL:    v.GetDuration("jwt.ttl"),
		},
		Worker: WorkerConfig{
			Count:        v.GetInt("worker.count"),
			QueueName:    v.GetString("worker.queue_name"),
			DequeueWait:  v.GetDuration("worker.dequeue_wait"),
			MaxAttempts:  v.GetInt("worker.max_attempts"),
			RetryBackoff: v.GetDuration("worker.retry_backoff"),
		},
		Portal: PortalConfig{
			BaseURL:      v.GetString("portal.base_url"),
			Organisation: v.GetString("portal.organisation"),
		},
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt.secret (PORTAL_JWT_SECRET) is required")
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.ws_port", "8081")
	v.SetDefault("server.allow_origins", "*")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "portal")
	v.SetDefault("db.name", "portal")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("aws.region", "eu-west-1")
	v.SetDefault("sms.timeout", 10*time.Second)
	v.SetDefault("email.timeout", 15*time.Second)
	v.SetDefault("jwt.issuer", "portal")
	v.SetDefault("jwt.ttl", 12*time.Hour)
	v.SetDefault("worker.count", 4)
	v.SetDefault("worker.queue_name", "notifications")
	v.SetDefault("worker.dequeue_wait", 5*time.Second)
	v.SetDefault("worker.max_attempts", 3)
	v.SetDefault("worker.retry_backoff", 30*time.Second)
	v.SetDefault("portal.base_url", "http://localhost:8080")
	v.SetDefault("portal.organisation", "the organisation")
}
