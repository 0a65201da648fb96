package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const DefaultConfigFile = "config.yaml"

type HTTPServer struct {
	Port string `mapstructure:"port"`
}

type DbServer struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Pass     string `mapstructure:"pass"`
	Name     string `mapstructure:"name"`
	MaxConns int32  `mapstructure:"max_conns"`
	// DSN, when set, replaces the individual connection fields.
	DSN string `mapstructure:"dsn"`
}

func (config *DbServer) GetConnectionStr() string {
	if config.DSN != "" {
		return config.DSN
	}
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable",
		config.User, config.Pass, config.Host, config.Port, config.Name,
	)
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

func (c HTTPClient) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type ExchangeRateAPI struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type RateLimit struct {
	Rate string `mapstructure:"rate"`
}

type Idempotency struct {
	MaxItems   int64 `mapstructure:"max_items"`
	TTLSeconds int   `mapstructure:"ttl_seconds"`
}

func (c Idempotency) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

type HealthCheck struct {
	IntervalSeconds int `mapstructure:"interval_seconds"`
}

type AppConfig struct {
	HTTPServer      HTTPServer      `mapstructure:"http_server"`
	DbServer        DbServer        `mapstructure:"db_server"`
	HTTPClient      HTTPClient      `mapstructure:"http_client"`
	ExchangeRateAPI ExchangeRateAPI `mapstructure:"exchange_rate_api"`
	Logging         Logging         `mapstructure:"logging"`
	RateLimit       RateLimit       `mapstructure:"rate_limit"`
	Idempotency     Idempotency     `mapstructure:"idempotency"`
	HealthCheck     HealthCheck     `mapstructure:"health_check"`
}

// Init reads .env and the YAML config file when present, then environment variables.
// An empty path means DefaultConfigFile, which may be missing; an explicit path must exist.
func Init(path string) (*AppConfig, error) {
	var cfg AppConfig

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	bindEnv(v)

	configFile := path
	if configFile == "" {
		configFile = DefaultConfigFile
	}
	v.SetConfigFile(configFile)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		if path != "" || !isMissingFile(configFile) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if cfg.ExchangeRateAPI.APIKey == "" {
		return nil, errors.New("exchange rate api key is required")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http_server.port", "8080")
	v.SetDefault("db_server.host", "localhost")
	v.SetDefault("db_server.port", "5432")
	v.SetDefault("db_server.name", "invoices")
	v.SetDefault("db_server.max_conns", 10)
	v.SetDefault("http_client.timeout_seconds", 10)
	v.SetDefault("exchange_rate_api.base_url", "https://v6.exchangerate-api.com/v6")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("rate_limit.rate", "100-M")
	v.SetDefault("idempotency.max_items", 10000)
	v.SetDefault("idempotency.ttl_seconds", 86400)
	v.SetDefault("health_check.interval_seconds", 30)
}

func bindEnv(v *viper.Viper) {
	// http server env vars
	_ = v.BindEnv("http_server.port", "HTTP_PORT")

	// db server env vars
	_ = v.BindEnv("db_server.host", "DB_HOST")
	_ = v.BindEnv("db_server.port", "DB_PORT")
	_ = v.BindEnv("db_server.user", "DB_USER")
	_ = v.BindEnv("db_server.pass", "DB_PASS")
	_ = v.BindEnv("db_server.name", "DB_NAME")
	_ = v.BindEnv("db_server.max_conns", "DB_MAX_CONNS")
	_ = v.BindEnv("db_server.dsn", "DB_DSN")

	// http client env vars
	_ = v.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")

	// exchange rate api env vars
	_ = v.BindEnv("exchange_rate_api.base_url", "EXCHANGE_RATE_API_URL")
	_ = v.BindEnv("exchange_rate_api.api_key", "EXCHANGE_RATE_API_KEY")

	_ = v.BindEnv("logging.level", "LOG_LEVEL")
	_ = v.BindEnv("logging.format", "LOG_FORMAT")
	_ = v.BindEnv("rate_limit.rate", "RATE_LIMIT")
	_ = v.BindEnv("idempotency.max_items", "IDEMPOTENCY_MAX_ITEMS")
	_ = v.BindEnv("idempotency.ttl_seconds", "IDEMPOTENCY_TTL_SECONDS")
	_ = v.BindEnv("health_check.interval_seconds", "HEALTH_CHECK_INTERVAL_SECONDS")
}

func isMissingFile(path string) bool {
	_, err := os.Stat(path)
	return errors.Is(err, fs.ErrNotExist)
}
