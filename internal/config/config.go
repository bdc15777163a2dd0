package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// ErrMissingGeocoderKey возвращается, если ключ геокодера не задан
var ErrMissingGeocoderKey = errors.New("geocoder API key is not configured (set GEOCODER_API_KEY or MAP_TOKEN)")

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Geocoder GeocoderConfig
	Seed     SeedConfig
	Log      LogConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// GeocoderConfig - настройки провайдера геокодирования (OpenCage)
type GeocoderConfig struct {
	APIKey         string
	BaseURL        string
	RequestTimeout int // seconds
	Limit          int
}

// SeedConfig - настройки пакетного заполнения базы
type SeedConfig struct {
	Delay time.Duration
	File  string
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled       bool
	ConsumerGroup string
	BatchSize     int
	PollInterval  time.Duration
	// ClaimMinIdle - через сколько неподтвержденное сообщение забирается у другого консьюмера
	ClaimMinIdle time.Duration
}

// Load читает конфигурацию из .env (если файл есть) и переменных окружения.
// Отсутствие ключа геокодера - ошибка: геокодер нельзя собрать без него.
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile - как Load, но с явным путём к env-файлу
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	setDefaults(v)

	apiKey := v.GetString("GEOCODER_API_KEY")
	if apiKey == "" {
		apiKey = v.GetString("MAP_TOKEN")
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("API_HOST"),
			Port: v.GetInt("API_PORT"),
			Env:  v.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Geocoder: GeocoderConfig{
			APIKey:         apiKey,
			BaseURL:        v.GetString("GEOCODER_BASE_URL"),
			RequestTimeout: v.GetInt("GEOCODER_TIMEOUT"),
			Limit:          v.GetInt("GEOCODER_LIMIT"),
		},
		Seed: SeedConfig{
			Delay: time.Duration(v.GetInt("SEED_DELAY_MS")) * time.Millisecond,
			File:  v.GetString("SEED_FILE"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:       v.GetBool("WORKER_ENABLED"),
			ConsumerGroup: v.GetString("WORKER_CONSUMER_GROUP"),
			BatchSize:     v.GetInt("WORKER_BATCH_SIZE"),
			PollInterval:  time.Duration(v.GetInt("WORKER_POLL_INTERVAL_MS")) * time.Millisecond,
			ClaimMinIdle:  time.Duration(v.GetInt("WORKER_CLAIM_MIN_IDLE_MS")) * time.Millisecond,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_PORT", 8080)
	v.SetDefault("API_ENV", "development")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 300)
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", 60)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("GEOCODER_BASE_URL", "https://api.opencagedata.com/geocode/v1")
	v.SetDefault("GEOCODER_TIMEOUT", 10)
	v.SetDefault("GEOCODER_LIMIT", 5)
	v.SetDefault("SEED_DELAY_MS", 1200)
	v.SetDefault("SEED_FILE", "data/listings.json")
	v.SetDefault("WORKER_CONSUMER_GROUP", "listing-geocode-workers")
	v.SetDefault("WORKER_BATCH_SIZE", 10)
	v.SetDefault("WORKER_POLL_INTERVAL_MS", 500)
	v.SetDefault("WORKER_CLAIM_MIN_IDLE_MS", 60000)
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Geocoder.APIKey == "" {
		return ErrMissingGeocoderKey
	}
	if c.Seed.Delay < 0 {
		return fmt.Errorf("seed delay must not be negative, got %v", c.Seed.Delay)
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// DSN - строка подключения для драйвера pgx
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.DBName,
		c.SSLMode,
	)
}

func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
