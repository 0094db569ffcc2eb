package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Postgres   PostgresConfig   `mapstructure:"postgres"`
	RabbitMQ   RabbitMQConfig   `mapstructure:"rabbitmq"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Consul     ConsulConfig     `mapstructure:"consul"`
	Services   ServicesConfig   `mapstructure:"services"`
	Enrichment EnrichmentConfig `mapstructure:"enrichment"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

type RabbitMQConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type ConsulConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
}

// ServicesConfig holds fallback endpoints for the lookup services, used
// when consul is disabled or has no healthy instance.
type ServicesConfig struct {
	UserURL    string `mapstructure:"user_url"`
	ProductURL string `mapstructure:"product_url"`
}

type EnrichmentConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// Load reads configuration from an optional yaml file with environment
// overrides (ORDER_SERVICE_POSTGRES_HOST etc). Defaults target local dev.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8082)
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "orders")
	v.SetDefault("postgres.password", "orders123")
	v.SetDefault("postgres.dbname", "orders")
	v.SetDefault("rabbitmq.host", "localhost")
	v.SetDefault("rabbitmq.port", 5672)
	v.SetDefault("rabbitmq.user", "guest")
	v.SetDefault("rabbitmq.password", "guest")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 5*time.Minute)
	v.SetDefault("consul.enabled", false)
	v.SetDefault("consul.host", "localhost")
	v.SetDefault("consul.port", 8500)
	v.SetDefault("services.user_url", "http://localhost:8083")
	v.SetDefault("services.product_url", "http://localhost:8084")
	v.SetDefault("enrichment.timeout", 10*time.Second)

	v.SetEnvPrefix("ORDER_SERVICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config failed: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config failed: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the fields that have no usable zero value.
func (c *Config) Validate() error {
	if c.Postgres.DBName == "" {
		return fmt.Errorf("postgres.dbname is required")
	}
	if c.Services.UserURL == "" {
		return fmt.Errorf("services.user_url is required")
	}
	if c.Services.ProductURL == "" {
		return fmt.Errorf("services.product_url is required")
	}
	if c.Enrichment.Timeout <= 0 {
		return fmt.Errorf("enrichment.timeout must be positive")
	}
	return nil
}
