package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Environment string         `mapstructure:"environment"`
	Server      ServerConfig   `mapstructure:"server"`
	Database    DatabaseConfig `mapstructure:"database"`
	Redis       RedisConfig    `mapstructure:"redis"`
	JWT         JWTConfig      `mapstructure:"jwt"`
	RateLimit   RateLimit      `mapstructure:"rate_limit"`
	CORS        CORSConfig     `mapstructure:"cors"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// RedisConfig is optional; an empty URL disables the queue and the worker,
// and invitation emails are logged instead of enqueued.
type RedisConfig struct {
	URL string `mapstructure:"url"`
}

type JWTConfig struct {
	PublicKeyPath string `mapstructure:"public_key_path"`
	Issuer        string `mapstructure:"issuer"`
	Audience      string `mapstructure:"audience"`
}

type RateLimit struct {
	RequestsPerMinute int64 `mapstructure:"requests_per_minute"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from config.yaml (if present) and MEMBERD_*
// environment variables, with environment taking precedence.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/memberd")

	v.SetEnvPrefix("MEMBERD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("environment", "development")
	v.SetDefault("server.port", 8080)
	v.SetDefault("database.url", "postgres://localhost:5432/memberd?sslmode=disable")
	v.SetDefault("redis.url", "")
	v.SetDefault("jwt.public_key_path", "")
	v.SetDefault("jwt.issuer", "memberd")
	v.SetDefault("jwt.audience", "memberd-api")
	v.SetDefault("rate_limit.requests_per_minute", 120)
	v.SetDefault("cors.allowed_origins", []string{"*"})

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment != "production"
}
